package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDiskStore_SaveAndRemove(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(filepath.Join(dir, "uploads"))
	if err != nil {
		t.Fatalf("NewDiskStore error: %v", err)
	}

	data := []byte("%PDF-1.4 test")
	path, err := store.Save(data, ".pdf")
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if !strings.HasSuffix(path, ".pdf") {
		t.Errorf("saved path %q does not keep the extension", path)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading saved file: %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("stored bytes = %q, want %q", got, data)
	}

	if err := store.Remove(path); err != nil {
		t.Fatalf("Remove error: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("file still exists after Remove")
	}
}

func TestDiskStore_SaveGeneratesUniqueNames(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskStore error: %v", err)
	}

	p1, err := store.Save([]byte("a"), ".docx")
	if err != nil {
		t.Fatalf("first Save error: %v", err)
	}
	p2, err := store.Save([]byte("b"), ".docx")
	if err != nil {
		t.Fatalf("second Save error: %v", err)
	}
	if p1 == p2 {
		t.Errorf("two saves produced the same path %q", p1)
	}
}

func TestDiskStore_RemoveMissingFile(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskStore error: %v", err)
	}

	if err := store.Remove(filepath.Join(t.TempDir(), "gone.pdf")); err != nil {
		t.Errorf("Remove of a missing file should not error, got %v", err)
	}
}
