//go:build windows
// +build windows

// Package mountpoint implements junction operations on NTFS directories:
// creating, removing and inspecting mount point reparse points.
package mountpoint

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.opencensus.io/trace"
	"golang.org/x/sys/windows"

	"github.com/zanieb/junction/internal/log"
	"github.com/zanieb/junction/internal/oc"
	"github.com/zanieb/junction/internal/ospath"
	"github.com/zanieb/junction/internal/reparse"
)

// Create makes the directory at path a junction pointing at target. The path
// must not exist yet; an empty directory is created to carry the reparse
// point. target does not have to exist. If installing the reparse point fails
// the directory is left behind, callers needing atomicity must remove it on
// error.
func Create(ctx context.Context, target string, path string) (err error) {
	title := "junction::Create"
	ctx, span := trace.StartSpan(ctx, title)
	defer span.End()
	defer func() { oc.SetSpanStatus(span, err) }()
	span.AddAttributes(
		trace.StringAttribute("target", target),
		trace.StringAttribute("path", path))
	log.G(ctx).WithFields(logrus.Fields{
		"target": target,
		"path":   path,
	}).Debug(title)

	// The reparse point stores a raw NT path, so the target has to be
	// resolved to its full Win32 form first. Forward slashes or relative
	// segments would be stored verbatim and break resolution.
	full, err := ospath.FullPath(target)
	if err != nil {
		return err
	}
	if err = os.Mkdir(path, 0777); err != nil {
		return err
	}
	data, err := reparse.EncodeMountPoint(full)
	if err != nil {
		return errors.Wrapf(err, "encode reparse point for %s", target)
	}
	h, err := openReparsePoint(path, true)
	if err != nil {
		return err
	}
	defer windows.CloseHandle(h)
	if err = setReparsePoint(h, data); err != nil {
		return &os.PathError{Op: "FSCTL_SET_REPARSE_POINT", Path: path, Err: err}
	}
	return nil
}

// Delete removes the reparse point at path, turning the junction back into an
// empty directory. The directory itself is not removed. The reparse tag is
// not checked before removal; callers are expected to only pass paths they
// created as junctions.
func Delete(ctx context.Context, path string) (err error) {
	title := "junction::Delete"
	ctx, span := trace.StartSpan(ctx, title)
	defer span.End()
	defer func() { oc.SetSpanStatus(span, err) }()
	span.AddAttributes(trace.StringAttribute("path", path))
	log.G(ctx).WithField("path", path).Debug(title)

	h, err := openReparsePoint(path, true)
	if err != nil {
		return err
	}
	defer windows.CloseHandle(h)
	if err = deleteReparsePoint(h); err != nil {
		return &os.PathError{Op: "FSCTL_DELETE_REPARSE_POINT", Path: path, Err: err}
	}
	return nil
}

// Exists reports whether path is a junction. A path with no filesystem entry,
// a plain directory and any other reparse point kind all yield false without
// an error.
func Exists(ctx context.Context, path string) (_ bool, err error) {
	title := "junction::Exists"
	ctx, span := trace.StartSpan(ctx, title)
	defer span.End()
	defer func() { oc.SetSpanStatus(span, err) }()
	span.AddAttributes(trace.StringAttribute("path", path))
	log.G(ctx).WithField("path", path).Debug(title)

	if _, err := os.Lstat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	h, err := openReparsePoint(path, false)
	if err != nil {
		return false, err
	}
	defer windows.CloseHandle(h)
	data, err := getReparseData(h)
	if err != nil {
		if errors.Is(err, windows.ERROR_NOT_A_REPARSE_POINT) {
			return false, nil
		}
		return false, &os.PathError{Op: "FSCTL_GET_REPARSE_POINT", Path: path, Err: err}
	}
	if _, err := reparse.DecodeMountPoint(data); err != nil {
		if errors.Is(err, reparse.ErrNotMountPoint) {
			return false, nil
		}
		return false, errors.Wrapf(err, "decode reparse point at %s", path)
	}
	return true, nil
}

// GetTarget returns the target directory of the junction at path. A path with
// no filesystem entry fails with a not found error; a path that is not a
// mount point reparse point fails with reparse.ErrNotMountPoint so callers
// can tell the two apart.
func GetTarget(ctx context.Context, path string) (_ string, err error) {
	title := "junction::GetTarget"
	ctx, span := trace.StartSpan(ctx, title)
	defer span.End()
	defer func() { oc.SetSpanStatus(span, err) }()
	span.AddAttributes(trace.StringAttribute("path", path))
	log.G(ctx).WithField("path", path).Debug(title)

	if _, err := os.Lstat(path); err != nil {
		return "", err
	}
	h, err := openReparsePoint(path, false)
	if err != nil {
		return "", err
	}
	defer windows.CloseHandle(h)
	data, err := getReparseData(h)
	if err != nil {
		if errors.Is(err, windows.ERROR_NOT_A_REPARSE_POINT) {
			return "", errors.Wrapf(reparse.ErrNotMountPoint, "%s", path)
		}
		return "", &os.PathError{Op: "FSCTL_GET_REPARSE_POINT", Path: path, Err: err}
	}
	mp, err := reparse.DecodeMountPoint(data)
	if err != nil {
		return "", errors.Wrapf(err, "decode reparse point at %s", path)
	}
	return mp.Target(), nil
}
