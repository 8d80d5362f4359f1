//go:build windows
// +build windows

// Package ospath resolves user supplied paths into the full Win32 form that
// gets embedded in reparse point buffers.
package ospath

import (
	"os"

	"golang.org/x/sys/windows"

	"github.com/zanieb/junction/internal/reparse"
)

// FullPath resolves path to its absolute Win32 form in UTF-16 units, with the
// `\\?\` extended-length prefix stripped when present. The reparse point
// codec adds its own `\??\` prefix, so leaving the verbatim prefix in place
// would double-prefix the stored name. The path does not need to exist;
// resolution is purely lexical against the current directory.
func FullPath(path string) ([]uint16, error) {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nil, &os.PathError{Op: "GetFullPathName", Path: path, Err: err}
	}
	n := uint32(windows.MAX_PATH)
	for {
		buf := make([]uint16, n)
		n, err = windows.GetFullPathName(p, uint32(len(buf)), &buf[0], nil)
		if err != nil {
			return nil, &os.PathError{Op: "GetFullPathName", Path: path, Err: err}
		}
		if int(n) <= len(buf) {
			return reparse.StripVerbatimPrefix(buf[:n]), nil
		}
		// n is the required buffer size including the terminator, retry
		// with a buffer that large.
	}
}
