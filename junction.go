//go:build windows
// +build windows

// Package junction manages NTFS directory junctions: mount point reparse
// points that transparently redirect access from one directory to another.
// Junctions are the directory link primitive the Windows container layer
// machinery understands, so the reparse data written here is laid out to
// survive layer snapshots (in particular, the print name is always
// populated).
package junction

import (
	"context"

	"github.com/zanieb/junction/internal/mountpoint"
	"github.com/zanieb/junction/internal/reparse"
)

var (
	// ErrNotAJunction is returned by GetTarget when the path exists and
	// carries reparse data, but of a different kind than a mount point
	// (for example a symlink). Distinct from a not found error so callers
	// can branch on wrong kind versus missing.
	ErrNotAJunction = reparse.ErrNotMountPoint

	// ErrTargetTooLong is returned by Create when the target path would
	// not fit in a maximum sized reparse data buffer.
	ErrTargetTooLong = reparse.ErrTargetTooLong
)

// Create makes the directory at junction a junction pointing at target.
// junction must not exist yet; target does not have to. On failure after the
// carrier directory was created the directory is left behind without reparse
// data.
func Create(target string, junction string) error {
	return mountpoint.Create(context.Background(), target, junction)
}

// Delete removes the reparse data from the junction, leaving an empty plain
// directory behind.
func Delete(junction string) error {
	return mountpoint.Delete(context.Background(), junction)
}

// Exists reports whether junction currently is a mount point reparse point.
// Absent paths, plain directories and other reparse point kinds report false
// without an error.
func Exists(junction string) (bool, error) {
	return mountpoint.Exists(context.Background(), junction)
}

// GetTarget returns the directory the junction points at, resolved from the
// stored substitute name.
func GetTarget(junction string) (string, error) {
	return mountpoint.GetTarget(context.Background(), junction)
}
