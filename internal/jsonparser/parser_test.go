package jsonparser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ginjaninja78/JSON-to-CSV-conversion/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadFile(t *testing.T) {
	t.Run("Should report a missing file as not found", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing.json")

		_, err := ReadFile(path)

		require.Error(t, err)
		assert.Equal(t, types.KindFileNotFound, types.KindOf(err))
		assert.Contains(t, err.Error(), "missing.json")
	})

	t.Run("Should report a directory as unexpected", func(t *testing.T) {
		_, err := ReadFile(t.TempDir())

		require.Error(t, err)
		assert.Equal(t, types.KindUnexpected, types.KindOf(err))
	})

	t.Run("Should reject invalid UTF-8", func(t *testing.T) {
		path := writeFile(t, "[{\"a\":\"\xff\"}]")

		_, err := ReadFile(path)

		require.Error(t, err)
		assert.Equal(t, types.KindUnexpected, types.KindOf(err))
	})
}

func TestLoad(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		wantErr bool
	}{
		{name: "array of objects", content: `[{"a":1}]`},
		{name: "empty array", content: `[]`},
		{name: "top-level object", content: `{"a":1}`},
		{name: "top-level scalar", content: `42`},
		{name: "truncated", content: `[{"a":1}`, wantErr: true},
		{name: "empty file", content: ``, wantErr: true},
		{name: "trailing garbage", content: `[] []`, wantErr: true},
		{name: "byte order mark", content: "\ufeff[]", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, tc.content)

			_, err := Load(path)

			if tc.wantErr {
				require.Error(t, err)
				assert.Equal(t, types.KindJSONDecode, types.KindOf(err))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestRecords(t *testing.T) {
	t.Run("Should preserve key order per object", func(t *testing.T) {
		root := gjson.Parse(`[{"zeta":1,"alpha":2,"mid":3},{"mid":4,"zeta":5}]`)

		doc := Records(root)

		require.Equal(t, 2, doc.Len())
		assert.Equal(t, []string{"zeta", "alpha", "mid"}, doc.Records[0].Keys())
		assert.Equal(t, []string{"mid", "zeta"}, doc.Records[1].Keys())
		assert.Equal(t, []string{"zeta", "alpha", "mid"}, doc.Headers())
	})

	t.Run("Should keep first position and last value for repeated keys", func(t *testing.T) {
		root := gjson.Parse(`[{"a":"first","b":"x","a":"last"}]`)

		doc := Records(root)

		require.Equal(t, 1, doc.Len())
		assert.Equal(t, []string{"a", "b"}, doc.Records[0].Keys())
		v, ok := doc.Records[0].Get("a")
		require.True(t, ok)
		assert.Equal(t, "last", v.String())
	})

	t.Run("Should skip non-object elements", func(t *testing.T) {
		doc := Records(gjson.Parse(`[{"a":1}, 2, "x", [1], {"b":2}]`))

		assert.Equal(t, 2, doc.Len())
	})

	t.Run("Should return an empty document for a non-array root", func(t *testing.T) {
		doc := Records(gjson.Parse(`{"a":1}`))

		assert.True(t, doc.IsEmpty())
	})
}

func TestValueOf(t *testing.T) {
	record := RecordOf(gjson.Parse(`{"s":"héllo","i":42,"f":1.50,"e":1e3,"en":-2.5E-2,"m":-0,"t":true,"n":false,"z":null,"o":{"k": [1, 2]}}`))

	expected := []struct {
		key  string
		kind types.Kind
		text string
	}{
		{"s", types.KindString, "héllo"},
		{"i", types.KindNumber, "42"},
		{"f", types.KindNumber, "1.50"},
		{"e", types.KindNumber, "1000"},
		{"en", types.KindNumber, "-0.025"},
		{"m", types.KindNumber, "0"},
		{"t", types.KindBool, "true"},
		{"n", types.KindBool, "false"},
		{"z", types.KindNull, ""},
		{"o", types.KindRaw, `{"k":[1,2]}`},
	}

	for _, want := range expected {
		v, ok := record.Get(want.key)
		require.True(t, ok, want.key)
		assert.Equal(t, want.kind, v.Kind, want.key)
		assert.Equal(t, want.text, v.String(), want.key)
	}
}

func TestTypeName(t *testing.T) {
	assert.Equal(t, "object", TypeName(gjson.Parse(`{}`)))
	assert.Equal(t, "array", TypeName(gjson.Parse(`[]`)))
	assert.Equal(t, "number", TypeName(gjson.Parse(`1`)))
	assert.Equal(t, "string", TypeName(gjson.Parse(`"a"`)))
	assert.Equal(t, "boolean", TypeName(gjson.Parse(`true`)))
	assert.Equal(t, "null", TypeName(gjson.Parse(`null`)))
}
