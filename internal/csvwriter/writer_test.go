package csvwriter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ginjaninja78/JSON-to-CSV-conversion/internal/jsonparser"
	"github.com/ginjaninja78/JSON-to-CSV-conversion/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func docOf(t *testing.T, json string) *types.Document {
	t.Helper()
	require.True(t, gjson.Valid(json))
	return jsonparser.Records(gjson.Parse(json))
}

func readCSV(t *testing.T, data []byte) [][]string {
	t.Helper()
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWrite(t *testing.T) {
	t.Run("Should round trip a single record", func(t *testing.T) {
		var buf bytes.Buffer

		require.NoError(t, Write(&buf, docOf(t, `[{"a":"1","b":"2"}]`)))

		assert.Equal(t, "a,b\r\n1,2\r\n", buf.String())
		assert.Equal(t, [][]string{{"a", "b"}, {"1", "2"}}, readCSV(t, buf.Bytes()))
	})

	t.Run("Should write N+1 lines in header order of the first record", func(t *testing.T) {
		var buf bytes.Buffer
		doc := docOf(t, `[
			{"b":1,"a":2,"c":3},
			{"c":6,"a":5,"b":4},
			{"a":8,"b":7,"c":9}
		]`)

		require.NoError(t, Write(&buf, doc))

		rows := readCSV(t, buf.Bytes())
		require.Len(t, rows, 4)
		assert.Equal(t, []string{"b", "a", "c"}, rows[0])
		assert.Equal(t, []string{"4", "5", "6"}, rows[2])
		assert.Equal(t, 4, strings.Count(buf.String(), "\r\n"))
	})

	t.Run("Should leave missing fields empty and drop extra fields", func(t *testing.T) {
		var buf bytes.Buffer
		doc := docOf(t, `[{"a":"1","b":"2"},{"a":"3","extra":"x"},{"b":"4"}]`)

		require.NoError(t, Write(&buf, doc))

		assert.Equal(t, [][]string{
			{"a", "b"},
			{"1", "2"},
			{"3", ""},
			{"", "4"},
		}, readCSV(t, buf.Bytes()))
		assert.NotContains(t, buf.String(), "extra")
	})

	t.Run("Should render non-string values as text", func(t *testing.T) {
		var buf bytes.Buffer
		doc := docOf(t, `[{"n":12,"f":0.5,"t":true,"z":null,"s":"a,b \"q\""}]`)

		require.NoError(t, Write(&buf, doc))

		rows := readCSV(t, buf.Bytes())
		assert.Equal(t, []string{"12", "0.5", "true", "", `a,b "q"`}, rows[1])
	})

	t.Run("Should write nothing for an empty document", func(t *testing.T) {
		var buf bytes.Buffer

		require.NoError(t, Write(&buf, &types.Document{}))

		assert.Zero(t, buf.Len())
	})
}

func TestWriteFile(t *testing.T) {
	t.Run("Should replace an existing file and leave no temp files", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "out.csv")
		require.NoError(t, os.WriteFile(path, []byte("stale"), 0644))

		require.NoError(t, WriteFile(path, docOf(t, `[{"a":1}]`)))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "a\r\n1\r\n", string(data))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("Should fail when the directory does not exist", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "out.csv")

		err := WriteFile(path, docOf(t, `[{"a":1}]`))

		assert.Error(t, err)
	})
}

func TestWriteEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, []byte("old content"), 0644))

	require.NoError(t, WriteEmpty(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}
