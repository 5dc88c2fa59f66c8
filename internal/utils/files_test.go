package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSafeWriteFileCreatesParent(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "nested", "out.txt")
	if err := SafeWriteFile(p, []byte("hello")); err != nil {
		t.Fatalf("SafeWriteFile: %v", err)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(b) != "hello" {
		t.Fatalf("content = %q, want %q", b, "hello")
	}
	if _, err := os.Stat(p + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind: %v", err)
	}
}

func TestOutputPath(t *testing.T) {
	if got := OutputPath("out", "a.csv"); got != filepath.Join("out", "a.csv") {
		t.Fatalf("OutputPath = %q", got)
	}
	abs := filepath.Join(string(filepath.Separator), "tmp", "a.csv")
	if got := OutputPath("out", abs); got != abs {
		t.Fatalf("OutputPath abs = %q, want %q", got, abs)
	}
	if got := OutputPath("", "a.csv"); got != "a.csv" {
		t.Fatalf("OutputPath empty dir = %q", got)
	}
}
