package parser

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDiscoverFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.log", "a.log", "notes.txt", "c.log.bak"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.log"), 0755); err != nil {
		t.Fatal(err)
	}

	files, err := DiscoverFiles(dir, "log")
	if err != nil {
		t.Fatalf("DiscoverFiles() error = %v", err)
	}

	want := []string{
		filepath.Join(dir, "a.log"),
		filepath.Join(dir, "b.log"),
	}
	if len(files) != len(want) {
		t.Fatalf("DiscoverFiles() = %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d] = %q, want %q", i, files[i], want[i])
		}
	}
}

func TestDiscoverFiles_LeadingDotTolerated(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.log"), nil, 0644); err != nil {
		t.Fatal(err)
	}

	files, err := DiscoverFiles(dir, ".log")
	if err != nil {
		t.Fatalf("DiscoverFiles() error = %v", err)
	}
	if len(files) != 1 {
		t.Errorf("DiscoverFiles() = %v, want one file", files)
	}
}

func TestDiscoverFiles_MissingDir(t *testing.T) {
	if _, err := DiscoverFiles(filepath.Join(t.TempDir(), "absent"), "log"); err == nil {
		t.Error("DiscoverFiles() should fail on a missing directory")
	}
}
