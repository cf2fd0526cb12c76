package fileutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileAndDirectoryExists(t *testing.T) {
	tempDir := filepath.Join(os.TempDir(), "fileutils-exists-test")
	err := os.MkdirAll(tempDir, 0755)
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tempDir)

	file := filepath.Join(tempDir, "a.xml")
	err = os.WriteFile(file, []byte("<a/>"), 0644)
	if err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	assert.True(t, FileExists(file))
	assert.False(t, FileExists(tempDir))
	assert.False(t, FileExists(filepath.Join(tempDir, "missing.xml")))

	assert.True(t, DirectoryExists(tempDir))
	assert.False(t, DirectoryExists(file))
}

func TestEnsureDirectoryExists(t *testing.T) {
	tempDir := filepath.Join(os.TempDir(), "fileutils-ensure-test")
	defer os.RemoveAll(tempDir)

	nested := filepath.Join(tempDir, "a", "b")
	assert.False(t, DirectoryExists(nested))
	assert.NoError(t, EnsureDirectoryExists(nested))
	assert.True(t, DirectoryExists(nested))

	// Idempotent on an existing directory
	assert.NoError(t, EnsureDirectoryExists(nested))
}

func TestReadFile(t *testing.T) {
	tempDir := filepath.Join(os.TempDir(), "fileutils-read-test")
	err := os.MkdirAll(tempDir, 0755)
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tempDir)

	file := filepath.Join(tempDir, "a.xml")
	err = os.WriteFile(file, []byte("<factura/>"), 0644)
	if err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	data, err := ReadFile(file)
	assert.NoError(t, err)
	assert.Equal(t, []byte("<factura/>"), data)

	_, err = ReadFile(filepath.Join(tempDir, "missing.xml"))
	assert.Error(t, err)
}

func TestListFilesWithExtension(t *testing.T) {
	tempDir := filepath.Join(os.TempDir(), "fileutils-list-test")
	err := os.MkdirAll(tempDir, 0755)
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tempDir)

	for _, name := range []string{"a.xml", "b.xml", "c.txt"} {
		err = os.WriteFile(filepath.Join(tempDir, name), []byte("x"), 0644)
		if err != nil {
			t.Fatalf("Failed to write test file: %v", err)
		}
	}

	files, err := ListFilesWithExtension(tempDir, ".xml")
	assert.NoError(t, err)
	assert.Len(t, files, 2)

	_, err = ListFilesWithExtension(filepath.Join(tempDir, "missing"), ".xml")
	assert.Error(t, err)
}
