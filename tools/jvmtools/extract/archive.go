// Package extract implements pulling single entries out of .jar files and placing them at
// exact output locations. The Kotlin/JS rules use it to get the .js (and optional .js.map / .meta.js)
// files out of the jars the compiler produces.
package extract

import (
	"os"
	"strings"

	"github.com/klauspost/compress/zip"
	"gopkg.in/op/go-logging.v1"
)

var log = logging.MustGetLogger("extract")

// An Archive is an open, read-only jar file.
type Archive struct {
	// Path is the location the archive was opened from.
	Path string
	// ScratchRoot is the directory to create scratch directories in.
	// If empty they are created alongside each output so the final rename stays on one device.
	ScratchRoot string

	r *zip.ReadCloser
}

// Open opens the archive at the given path. Any failure here is a ConfigError.
func Open(path string) (*Archive, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	} else if info.IsDir() {
		return nil, &ConfigError{Path: path, Err: errIsDir}
	}
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}
	return &Archive{Path: path, r: r}, nil
}

// Close closes the underlying file.
func (a *Archive) Close() error {
	return a.r.Close()
}

// Entries returns the names of all entries in the archive, in archive order.
func (a *Archive) Entries() []string {
	ret := make([]string, len(a.r.File))
	for i, f := range a.r.File {
		ret[i] = f.Name
	}
	return ret
}

// Contains returns an error naming the first of the given entries that is not in the archive.
// Names are full paths within the archive.
func (a *Archive) Contains(names ...string) error {
	present := make(map[string]struct{}, len(a.r.File))
	for _, f := range a.r.File {
		present[f.Name] = struct{}{}
	}
	for _, name := range names {
		if _, ok := present[name]; !ok {
			return &MissingEntryError{Archive: a.Path, Selector: name}
		}
	}
	return nil
}

// find returns the first file entry matching the selector, or nil if there isn't one.
func (a *Archive) find(s Selector) *zip.File {
	for _, f := range a.r.File {
		if isDir(f) {
			continue
		}
		if s.Match(f.Name) {
			return f
		}
	}
	return nil
}

func isDir(f *zip.File) bool {
	return strings.HasSuffix(f.Name, "/") || f.Mode().IsDir()
}
