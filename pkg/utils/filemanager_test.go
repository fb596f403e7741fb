package utils

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestDiscoverInputFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b.json"), "[]")
	touch(t, filepath.Join(dir, "a.json"), "[]")
	touch(t, filepath.Join(dir, "notes.txt"), "")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "dir.json"), 0755))

	fm := NewFileManager(dir, t.TempDir(), t.TempDir(), false)
	files, err := fm.DiscoverInputFiles("")

	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.json"), filepath.Join(dir, "b.json")}, files)
}

func TestArchiveInputFile(t *testing.T) {
	t.Run("Should move the file into the archive", func(t *testing.T) {
		input := filepath.Join(t.TempDir(), "events.json")
		touch(t, input, "[]")
		archiveDir := filepath.Join(t.TempDir(), "archive")
		fm := NewFileManager(filepath.Dir(input), t.TempDir(), archiveDir, true)

		archived, err := fm.ArchiveInputFile(input)

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(archiveDir, "events.json"), archived)
		assert.NoFileExists(t, input)
		assert.FileExists(t, archived)
	})

	t.Run("Should use dated subdirectories when enabled", func(t *testing.T) {
		input := filepath.Join(t.TempDir(), "events.json")
		touch(t, input, "[]")
		archiveDir := t.TempDir()
		fm := NewFileManager(filepath.Dir(input), t.TempDir(), archiveDir, true)
		fm.UseTimestampSubdirs = true

		archived, err := fm.ArchiveInputFile(input)

		require.NoError(t, err)
		now := time.Now()
		assert.Contains(t, archived, filepath.Join(archiveDir, now.Format("2006"), now.Format("01")))
	})

	t.Run("Should leave the file when archiving is off", func(t *testing.T) {
		input := filepath.Join(t.TempDir(), "events.json")
		touch(t, input, "[]")
		fm := NewFileManager(filepath.Dir(input), t.TempDir(), t.TempDir(), false)

		archived, err := fm.ArchiveInputFile(input)

		require.NoError(t, err)
		assert.Equal(t, input, archived)
		assert.FileExists(t, input)
	})
}

func TestGenerateOutputFileName(t *testing.T) {
	t.Run("Should substitute params", func(t *testing.T) {
		assert.Equal(t, "events.csv", GenerateOutputFileName("{name}.csv", map[string]string{"name": "events"}))
	})

	t.Run("Should keep an xlsx extension", func(t *testing.T) {
		assert.Equal(t, "events.xlsx", GenerateOutputFileName("{name}.xlsx", map[string]string{"name": "events"}))
	})

	t.Run("Should append csv when no known extension", func(t *testing.T) {
		assert.Equal(t, "events.csv", GenerateOutputFileName("{name}", map[string]string{"name": "events"}))
	})

	t.Run("Should expand uuid and date", func(t *testing.T) {
		name := GenerateOutputFileName("{date}_{uuid}.csv", nil)

		pattern := regexp.MustCompile(`^\d{8}_[0-9a-f-]{36}\.csv$`)
		assert.Regexp(t, pattern, name)
	})
}

func TestDefaultOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("/work", "gujarati_months_2024-2025.csv"),
		DefaultOutputPath("/work", "json-data/gujarati_months_2024-2025.json"))
	assert.Equal(t, filepath.Join("/work", "data.csv"), DefaultOutputPath("/work", "data"))
	assert.Equal(t, filepath.Join("/work", "archive.tar.csv"), DefaultOutputPath("/work", "/tmp/archive.tar.gz"))
	assert.Equal(t, filepath.Join("/work", ".hidden.csv"), DefaultOutputPath("/work", "/x/.hidden"))
	assert.Equal(t, filepath.Join("/work", ".hidden.csv"), DefaultOutputPath("/work", "/x/.hidden.json"))
}

func TestWriteFileAtomic(t *testing.T) {
	t.Run("Should write content", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.txt")

		err := WriteFileAtomic(path, func(w io.Writer) error {
			_, err := io.WriteString(w, "hello")
			return err
		})

		require.NoError(t, err)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "hello", string(data))
	})

	t.Run("Should keep the previous file when the writer fails", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "out.txt")
		touch(t, path, "previous")
		boom := errors.New("boom")

		err := WriteFileAtomic(path, func(w io.Writer) error {
			io.WriteString(w, "partial")
			return boom
		})

		require.ErrorIs(t, err, boom)
		data, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		assert.Equal(t, "previous", string(data))
		entries, readErr := os.ReadDir(dir)
		require.NoError(t, readErr)
		assert.Len(t, entries, 1)
	})

	t.Run("Should not create the file when the writer fails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.txt")

		err := WriteFileAtomic(path, func(io.Writer) error { return errors.New("boom") })

		require.Error(t, err)
		assert.NoFileExists(t, path)
	})

	t.Run("Should write through a symlink to its target", func(t *testing.T) {
		dir := t.TempDir()
		target := filepath.Join(dir, "real.csv")
		link := filepath.Join(dir, "link.csv")
		touch(t, target, "old")
		require.NoError(t, os.Symlink("real.csv", link))

		err := WriteFileAtomic(link, func(w io.Writer) error {
			_, err := io.WriteString(w, "new")
			return err
		})

		require.NoError(t, err)
		data, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Equal(t, "new", string(data))
		info, err := os.Lstat(link)
		require.NoError(t, err)
		assert.Equal(t, os.ModeSymlink, info.Mode()&os.ModeSymlink)
	})

	t.Run("Should create the target of a dangling symlink", func(t *testing.T) {
		dir := t.TempDir()
		link := filepath.Join(dir, "link.csv")
		require.NoError(t, os.Symlink("later.csv", link))

		err := WriteFileAtomic(link, func(w io.Writer) error {
			_, err := io.WriteString(w, "new")
			return err
		})

		require.NoError(t, err)
		data, err := os.ReadFile(filepath.Join(dir, "later.csv"))
		require.NoError(t, err)
		assert.Equal(t, "new", string(data))
	})

	t.Run("Should keep the mode of an existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.csv")
		touch(t, path, "old")
		require.NoError(t, os.Chmod(path, 0600))

		err := WriteFileAtomic(path, func(w io.Writer) error {
			_, err := io.WriteString(w, "new")
			return err
		})

		require.NoError(t, err)
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	})

	t.Run("Should write a device path in place", func(t *testing.T) {
		if _, err := os.Stat(os.DevNull); err != nil {
			t.Skip("no null device")
		}

		err := WriteFileAtomic(os.DevNull, func(w io.Writer) error {
			_, err := io.WriteString(w, "discarded")
			return err
		})

		require.NoError(t, err)
		info, err := os.Stat(os.DevNull)
		require.NoError(t, err)
		assert.False(t, info.Mode().IsRegular())
	})
}

func TestWriteSummaryLog(t *testing.T) {
	dir := t.TempDir()
	start := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	summary := ProcessingSummary{
		RunID:           "run-1",
		StartTime:       start,
		EndTime:         start.Add(2 * time.Second),
		TotalFiles:      2,
		SuccessfulFiles: 1,
		FailedFiles:     1,
		TotalRecords:    10,
		ProcessedFiles:  []ProcessedFileInfo{{InputFile: "a.json", OutputFile: "a.csv", Records: 10}},
		FailedFilesList: []FailedFileInfo{{InputFile: "b.json", ErrorType: "json_decode", ErrorMessage: "bad"}},
	}

	path, err := WriteSummaryLog(summary, dir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "processing_summary_20240305_100000.txt"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.True(t, strings.HasPrefix(content, "JSON to CSV Converter - Processing Summary"))
	assert.Contains(t, content, "Run ID:         run-1")
	assert.Contains(t, content, "Duration:       2s")
	assert.Contains(t, content, "Input:        a.json")
	assert.Contains(t, content, "Type:  json_decode")
}
