package brief

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "brief.md")

	if err := WriteFileAtomic(path, "line1\nline2"); err != nil {
		t.Fatalf("WriteFileAtomic: %v", err)
	}
	// 覆盖写入
	if err := WriteFileAtomic(path, "new\n\n"); err != nil {
		t.Fatalf("WriteFileAtomic overwrite: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "new\n" {
		t.Fatalf("content = %q, want %q", data, "new\n")
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file should be renamed away, stat err = %v", err)
	}
}

func TestWriteFileAtomicUnwritable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no-such-dir", "brief.md")
	if err := WriteFileAtomic(path, "x"); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}

func TestWriteFileAtomicAppendsSingleNewlineToReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brief.md")
	report := Render(nil, testStart, testEnd)
	if strings.HasSuffix(report, "\n") {
		t.Fatalf("Render should not end with a newline")
	}
	if err := WriteFileAtomic(path, report); err != nil {
		t.Fatalf("WriteFileAtomic: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != report+"\n" {
		t.Fatalf("file should be the report plus one trailing newline")
	}
}
