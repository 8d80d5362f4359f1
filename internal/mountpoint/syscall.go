//go:build windows
// +build windows

package mountpoint

import (
	"os"

	"golang.org/x/sys/windows"

	"github.com/zanieb/junction/internal/reparse"
)

// openReparsePoint opens path without following the reparse point itself.
// FILE_FLAG_BACKUP_SEMANTICS is required to open a directory handle at all.
// The handle must be closed with windows.CloseHandle on every exit path.
func openReparsePoint(path string, rw bool) (windows.Handle, error) {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return windows.InvalidHandle, &os.PathError{Op: "CreateFile", Path: path, Err: err}
	}
	access := uint32(windows.GENERIC_READ)
	if rw {
		access |= windows.GENERIC_WRITE
	}
	h, err := windows.CreateFile(p,
		access,
		0,
		nil,
		windows.OPEN_EXISTING,
		windows.FILE_FLAG_OPEN_REPARSE_POINT|windows.FILE_FLAG_BACKUP_SEMANTICS,
		0)
	if err != nil {
		return windows.InvalidHandle, &os.PathError{Op: "CreateFile", Path: path, Err: err}
	}
	return h, nil
}

func setReparsePoint(h windows.Handle, data []byte) error {
	var returned uint32
	return windows.DeviceIoControl(h,
		windows.FSCTL_SET_REPARSE_POINT,
		&data[0],
		uint32(len(data)),
		nil,
		0,
		&returned,
		nil)
}

// getReparseData fetches the raw reparse data behind h. The buffer is sized
// for the largest payload the filesystem can return and trimmed to the byte
// count the control call actually filled.
func getReparseData(h windows.Handle) ([]byte, error) {
	data := make([]byte, windows.MAXIMUM_REPARSE_DATA_BUFFER_SIZE)
	var returned uint32
	err := windows.DeviceIoControl(h,
		windows.FSCTL_GET_REPARSE_POINT,
		nil,
		0,
		&data[0],
		uint32(len(data)),
		&returned,
		nil)
	if err != nil {
		return nil, err
	}
	return data[:returned], nil
}

func deleteReparsePoint(h windows.Handle) error {
	hdr := reparse.RemovalBuffer()
	var returned uint32
	return windows.DeviceIoControl(h,
		windows.FSCTL_DELETE_REPARSE_POINT,
		&hdr[0],
		uint32(len(hdr)),
		nil,
		0,
		&returned,
		nil)
}
