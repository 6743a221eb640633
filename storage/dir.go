package storage

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Dir is a media library rooted at a directory on a mounted volume
// (an SD card, a USB stick or any local path). Reads go through the
// fs.FS view of the directory, writes through Create.
type Dir struct {
	fs.FS
	root string
}

// NewDir returns a library for root. The directory must exist.
func NewDir(root string) (*Dir, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("library %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("library %s: not a directory", root)
	}
	return &Dir{FS: os.DirFS(root), root: root}, nil
}

// Root returns the library directory
func (d *Dir) Root() string {
	return d.root
}

// ReadDir lists a directory of the library, sorted by name
func (d *Dir) ReadDir(name string) ([]fs.DirEntry, error) {
	return fs.ReadDir(d.FS, name)
}

// Create creates or truncates name for writing. Only files directly
// inside the library directory can be created.
func (d *Dir) Create(name string) (io.WriteCloser, error) {
	if !fs.ValidPath(name) || name == "." || filepath.Base(name) != name {
		return nil, &fs.PathError{Op: "create", Path: name, Err: fs.ErrInvalid}
	}
	return os.Create(filepath.Join(d.root, name))
}
