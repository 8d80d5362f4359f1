//go:build windows
// +build windows

package ospath

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf16"
)

func fullPathString(t *testing.T, path string) string {
	t.Helper()
	p, err := FullPath(path)
	if err != nil {
		t.Fatalf("failed to resolve %q: %s", path, err)
	}
	return string(utf16.Decode(p))
}

func TestFullPathAbsolute(t *testing.T) {
	dir := t.TempDir()
	if got := fullPathString(t, dir); !strings.EqualFold(got, dir) {
		t.Errorf("got %q, want %q", got, dir)
	}
}

func TestFullPathStripsVerbatimPrefix(t *testing.T) {
	dir := t.TempDir()
	if got := fullPathString(t, `\\?\`+dir); !strings.EqualFold(got, dir) {
		t.Errorf("got %q, want %q", got, dir)
	}
}

func TestFullPathRelative(t *testing.T) {
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %s", err)
	}
	want := filepath.Join(cwd, "sub", "dir")
	if got := fullPathString(t, `sub\dir`); !strings.EqualFold(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFullPathNonExistent(t *testing.T) {
	// Resolution is lexical, the path does not have to exist.
	want := filepath.Join(t.TempDir(), "does", "not", "exist")
	if got := fullPathString(t, want); !strings.EqualFold(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}
