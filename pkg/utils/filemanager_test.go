package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLogicalName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"input/brand_input.csv", "brand"},
		{"input/news_input.xlsx", "news"},
		{"accessories.csv", "accessories"},
		{"/abs/path/parts.xlsx", "parts"},
		{"input/weird_input_input.csv", "weird_input"},
	}

	for _, tt := range tests {
		if got := LogicalName(tt.path); got != tt.want {
			t.Errorf("LogicalName(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestDiscoverInputFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b_input.csv", "a_input.csv", "c.xlsx", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("url\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	fm := NewFileManager(dir, dir, dir, false)
	files, err := fm.DiscoverInputFiles()
	if err != nil {
		t.Fatalf("DiscoverInputFiles() error = %v", err)
	}

	if len(files) != 3 {
		t.Fatalf("got %d files, want 3 (txt excluded): %v", len(files), files)
	}

	// Sorted for deterministic run order.
	want := []string{"a_input.csv", "b_input.csv", "c.xlsx"}
	for i, w := range want {
		if filepath.Base(files[i]) != w {
			t.Errorf("files[%d] = %s, want %s", i, filepath.Base(files[i]), w)
		}
	}
}

func TestWriteDocument(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "out")
	fm := NewFileManager("", outDir, "", false)

	if err := fm.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories() error = %v", err)
	}

	path, err := fm.WriteDocument("brand.xml", "<urlset/>")
	if err != nil {
		t.Fatalf("WriteDocument() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading written document: %v", err)
	}
	if string(data) != "<urlset/>" {
		t.Errorf("written content = %q", data)
	}
}

func TestArchiveInputFile(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "archive")
	src := filepath.Join(dir, "brand_input.csv")
	if err := os.WriteFile(src, []byte("url\n"), 0644); err != nil {
		t.Fatal(err)
	}

	fm := NewFileManager(dir, dir, archive, true)
	archived, err := fm.ArchiveInputFile(src)
	if err != nil {
		t.Fatalf("ArchiveInputFile() error = %v", err)
	}

	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Errorf("original file still present after archival")
	}
	if archived != filepath.Join(archive, "brand_input.csv") {
		t.Errorf("archived path = %q", archived)
	}
	if _, err := os.Stat(archived); err != nil {
		t.Errorf("archived file missing: %v", err)
	}
}

func TestArchiveInputFileDisabled(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "brand_input.csv")
	if err := os.WriteFile(src, []byte("url\n"), 0644); err != nil {
		t.Fatal(err)
	}

	fm := NewFileManager(dir, dir, filepath.Join(dir, "archive"), false)
	archived, err := fm.ArchiveInputFile(src)
	if err != nil {
		t.Fatalf("ArchiveInputFile() error = %v", err)
	}

	if archived != src {
		t.Errorf("archived path = %q, want the untouched original", archived)
	}
	if _, err := os.Stat(src); err != nil {
		t.Errorf("original file was moved despite archival being off")
	}
}
