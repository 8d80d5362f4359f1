//go:build windows
// +build windows

package mountpoint

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf16"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows"

	"github.com/zanieb/junction/internal/reparse"
)

func setupJunction(t *testing.T) (target, junction string) {
	t.Helper()
	dir := t.TempDir()
	target = filepath.Join(dir, "target")
	junction = filepath.Join(dir, "junction")
	if err := os.Mkdir(target, 0777); err != nil {
		t.Fatalf("failed to create target directory: %s", err)
	}
	if err := Create(context.TODO(), target, junction); err != nil {
		t.Fatalf("failed to create junction: %s", err)
	}
	return target, junction
}

func TestCreateRoundTrip(t *testing.T) {
	target, junction := setupJunction(t)

	ok, err := Exists(context.TODO(), junction)
	if err != nil {
		t.Fatalf("failed to check junction: %s", err)
	}
	if !ok {
		t.Fatal("junction does not exist after create")
	}

	resolved, err := GetTarget(context.TODO(), junction)
	if err != nil {
		t.Fatalf("failed to get junction target: %s", err)
	}
	if !strings.EqualFold(resolved, target) {
		t.Errorf("target: got %q, want %q", resolved, target)
	}

	// The junction must actually redirect directory access.
	marker := filepath.Join(target, "marker.txt")
	if err := os.WriteFile(marker, []byte("ok"), 0666); err != nil {
		t.Fatalf("failed to write marker file: %s", err)
	}
	data, err := os.ReadFile(filepath.Join(junction, "marker.txt"))
	if err != nil {
		t.Fatalf("failed to read marker through junction: %s", err)
	}
	if string(data) != "ok" {
		t.Errorf("marker content: got %q, want %q", data, "ok")
	}
}

func TestCreatePopulatesPrintName(t *testing.T) {
	// Regression test: the reparse point must carry a non-empty PrintName
	// or a container layer snapshot will lose the junction target.
	_, junction := setupJunction(t)

	h, err := openReparsePoint(junction, false)
	if err != nil {
		t.Fatalf("failed to open reparse point: %s", err)
	}
	defer windows.CloseHandle(h)
	data, err := getReparseData(h)
	if err != nil {
		t.Fatalf("failed to read reparse data: %s", err)
	}
	mp, err := reparse.DecodeMountPoint(data)
	if err != nil {
		t.Fatalf("failed to decode reparse data: %s", err)
	}
	if len(mp.PrintName) == 0 {
		t.Fatal("PrintName must not be empty")
	}
	if got, want := string(utf16.Decode(mp.PrintName)), mp.Target(); !strings.EqualFold(got, want) {
		t.Errorf("PrintName %q does not match target %q", got, want)
	}
}

func TestCreateExistingPath(t *testing.T) {
	target, junction := setupJunction(t)
	if err := Create(context.TODO(), target, junction); !os.IsExist(err) {
		t.Fatalf("got %v, want an already exists error", err)
	}
}

func TestCreateOversizedTarget(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, strings.Repeat("a", 250), strings.Repeat("b", 9000))
	junction := filepath.Join(dir, "junction")
	err := Create(context.TODO(), target, junction)
	if !errors.Is(err, reparse.ErrTargetTooLong) {
		t.Fatalf("got %v, want ErrTargetTooLong", err)
	}
	// The bare directory may be left behind, but no reparse data may have
	// been installed.
	if ok, err := Exists(context.TODO(), junction); err != nil || ok {
		t.Fatalf("junction state after failed create: ok=%v err=%v", ok, err)
	}
}

func TestPlainDirectory(t *testing.T) {
	dir := t.TempDir()
	ok, err := Exists(context.TODO(), dir)
	if err != nil {
		t.Fatalf("failed to check directory: %s", err)
	}
	if ok {
		t.Fatal("plain directory reported as junction")
	}
	if _, err := GetTarget(context.TODO(), dir); !errors.Is(err, reparse.ErrNotMountPoint) {
		t.Fatalf("got %v, want ErrNotMountPoint", err)
	}
}

func TestAbsentPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing")
	ok, err := Exists(context.TODO(), path)
	if err != nil {
		t.Fatalf("exists on absent path: %s", err)
	}
	if ok {
		t.Fatal("absent path reported as junction")
	}
	if _, err := GetTarget(context.TODO(), path); !os.IsNotExist(err) {
		t.Fatalf("got %v, want a not found error", err)
	}
}

func TestDelete(t *testing.T) {
	_, junction := setupJunction(t)
	if err := Delete(context.TODO(), junction); err != nil {
		t.Fatalf("failed to delete junction: %s", err)
	}
	ok, err := Exists(context.TODO(), junction)
	if err != nil {
		t.Fatalf("failed to check junction: %s", err)
	}
	if ok {
		t.Fatal("junction still exists after delete")
	}
	// The carrier directory stays behind as a plain directory.
	fi, err := os.Lstat(junction)
	if err != nil {
		t.Fatalf("failed to stat deleted junction: %s", err)
	}
	if !fi.IsDir() {
		t.Error("deleted junction is not a directory")
	}
}

func TestTargetNeedNotExist(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "not-created-yet")
	junction := filepath.Join(dir, "junction")
	if err := Create(context.TODO(), target, junction); err != nil {
		t.Fatalf("failed to create junction: %s", err)
	}
	resolved, err := GetTarget(context.TODO(), junction)
	if err != nil {
		t.Fatalf("failed to get junction target: %s", err)
	}
	if !strings.EqualFold(resolved, target) {
		t.Errorf("target: got %q, want %q", resolved, target)
	}
}
