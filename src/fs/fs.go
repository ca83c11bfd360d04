// Package fs provides various filesystem helpers.
package fs

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// DirPermissions are the default permission bits we apply to directories.
const DirPermissions = os.ModeDir | 0775

// CopyFile copies a file from 'from' to 'to', with an attempt to perform a copy & rename
// to avoid chaos if anything goes wrong partway.
func CopyFile(from string, to string, mode os.FileMode) error {
	fromFile, err := os.Open(from)
	if err != nil {
		return err
	}
	defer fromFile.Close()
	return WriteFile(fromFile, to, mode)
}

// WriteFile writes data from a reader to the file named 'to', with an attempt to perform
// a copy & rename to avoid chaos if anything goes wrong partway.
// The temporary file is created alongside the destination so the final rename never crosses devices.
func WriteFile(fromFile io.Reader, to string, mode os.FileMode) error {
	dir, file := filepath.Split(to)
	if err := os.MkdirAll(dir, DirPermissions); err != nil {
		return err
	}
	tempFile, err := os.CreateTemp(dir, "."+file+".tmp*")
	if err != nil {
		return err
	}
	if _, err := io.Copy(tempFile, fromFile); err != nil {
		tempFile.Close()
		os.Remove(tempFile.Name())
		return err
	}
	if err := tempFile.Close(); err != nil {
		os.Remove(tempFile.Name())
		return err
	}
	// OK, now file is written; adjust permissions appropriately.
	if mode == 0 {
		mode = 0664
	}
	if err := os.Chmod(tempFile.Name(), mode); err != nil {
		os.Remove(tempFile.Name())
		return err
	}
	// And move it to its final destination.
	if err := os.Rename(tempFile.Name(), to); err != nil {
		os.Remove(tempFile.Name())
		return err
	}
	return nil
}

// Touch creates an empty file at the given path. Anything already there is replaced by the empty
// file, so the result is always a zero-byte regular file.
func Touch(filename string) error {
	return WriteFile(strings.NewReader(""), filename, 0)
}

// rename is os.Rename; tests replace it to simulate moves across devices.
var rename = os.Rename

// RenameFile moves a file from 'from' to 'to'. If they are on different devices it falls back
// to copying into place (still atomically at the destination) and removing the original.
func RenameFile(from, to string) error {
	if err := rename(from, to); err == nil || !isCrossDevice(err) {
		return err
	}
	info, err := os.Stat(from)
	if err != nil {
		return err
	}
	if err := CopyFile(from, to, info.Mode().Perm()); err != nil {
		return err
	}
	return os.Remove(from)
}

func isCrossDevice(err error) bool {
	return errors.Is(err, syscall.EXDEV)
}
