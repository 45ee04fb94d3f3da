package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	w, err := New(dir)
	require.NoError(t, err)
	assert.DirExists(t, w.OutputDir)
}

func TestWrite(t *testing.T) {
	w, err := New(t.TempDir())
	require.NoError(t, err)

	path, err := w.Write("processed_course", []byte("<p>x</p>"), ".html")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(w.OutputDir, "processed_course.html"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<p>x</p>", string(data))
}

func TestWriteFile_KeepsExtension(t *testing.T) {
	w, err := New(t.TempDir())
	require.NoError(t, err)

	path, err := w.WriteFile("backup-42.zip", []byte("PK"))
	require.NoError(t, err)
	assert.Equal(t, "backup-42.zip", filepath.Base(path))
}

func TestSanitize(t *testing.T) {
	tests := map[string]string{
		"course_42_activities": "course_42_activities",
		"../../etc/passwd":     "passwd",
		"week 1: intro":        "week_1__intro",
		"..":                   "output",
	}
	for in, want := range tests {
		assert.Equal(t, want, sanitize(in), in)
	}
}

func TestCourseStem(t *testing.T) {
	assert.Equal(t, "course_42_activities", CourseStem("42", "activities"))
}
