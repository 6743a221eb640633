// Package playlist persists the list of playable files as fixed-width
// records and serves random-access lookups into it.
//
// The list file is a flat sequence of RecordSize-byte records, one per
// matching file, record i at byte offset i*RecordSize. There is no header
// and no delimiter. A name occupies at most RecordSize-1 bytes and is NUL
// padded, so every record is terminated.
package playlist

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"go-jukebox/debug"
)

// RecordSize is the width of one filename record (8.3 name plus terminator)
const RecordSize = 13

var (
	ErrCreate     = errors.New("playlist file cannot be created")
	ErrOpen       = errors.New("playlist file cannot be opened")
	ErrNoFiles    = errors.New("no playable files")
	ErrOutOfRange = errors.New("playlist index out of range")
)

// Library is the directory/file service the playlist is built from
type Library interface {
	fs.ReadDirFS
	Create(name string) (io.WriteCloser, error)
}

// Matches reports whether name carries ext, ignoring case
func Matches(name, ext string) bool {
	return strings.EqualFold(path.Ext(name), ext)
}

// EncodeRecord returns the fixed-width record for name
func EncodeRecord(name string) [RecordSize]byte {
	var rec [RecordSize]byte
	copy(rec[:RecordSize-1], name)
	return rec
}

// DecodeRecord returns the name stored in rec
func DecodeRecord(rec []byte) string {
	if i := bytes.IndexByte(rec, 0); i >= 0 {
		rec = rec[:i]
	}
	return string(rec)
}

// Build scans the library root for regular files with extension ext and
// writes one record per file into listName. It returns the record count.
// Entries that are not matching regular files, and names that do not fit
// a record, are skipped.
func Build(lib Library, listName, ext string) (int, error) {
	w, err := lib.Create(listName)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrCreate, listName, err)
	}

	entries, err := lib.ReadDir(".")
	if err != nil {
		w.Close()
		return 0, fmt.Errorf("scan library: %w", err)
	}

	count := 0
	for _, e := range entries {
		name := e.Name()
		if !e.Type().IsRegular() || !Matches(name, ext) || strings.EqualFold(name, listName) {
			debug.Log("scan", "skip %s", name)
			continue
		}
		if len(name) > RecordSize-1 {
			// a truncated name would lose its extension and never load
			debug.Log("scan", "skip %s: name longer than %d bytes", name, RecordSize-1)
			continue
		}
		rec := EncodeRecord(name)
		if _, err := w.Write(rec[:]); err != nil {
			w.Close()
			return count, fmt.Errorf("write %s record %d: %w", listName, count, err)
		}
		count++
	}

	if err := w.Close(); err != nil {
		return count, fmt.Errorf("close %s: %w", listName, err)
	}
	debug.Log("scan", "%d files listed in %s", count, listName)
	return count, nil
}

// Index is an open playlist file
type Index struct {
	f     fs.File
	count int
}

// Open opens the persisted list for reading
func Open(fsys fs.FS, listName string) (*Index, error) {
	f, err := fsys.Open(listName)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrOpen, listName, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrOpen, listName, err)
	}
	return &Index{f: f, count: int(info.Size() / RecordSize)}, nil
}

// Count returns the number of records
func (x *Index) Count() int {
	return x.count
}

// Get returns the filename at index i
func (x *Index) Get(i int) (string, error) {
	if i < 0 || i >= x.count {
		return "", fmt.Errorf("%w: %d not in [0,%d)", ErrOutOfRange, i, x.count)
	}

	var rec [RecordSize]byte
	off := int64(i) * RecordSize
	switch f := x.f.(type) {
	case io.ReaderAt:
		if _, err := f.ReadAt(rec[:], off); err != nil {
			return "", fmt.Errorf("read record %d: %w", i, err)
		}
	case io.ReadSeeker:
		if _, err := f.Seek(off, io.SeekStart); err != nil {
			return "", fmt.Errorf("seek record %d: %w", i, err)
		}
		if _, err := io.ReadFull(f, rec[:]); err != nil {
			return "", fmt.Errorf("read record %d: %w", i, err)
		}
	default:
		return "", fmt.Errorf("read record %d: list file is not seekable", i)
	}
	return DecodeRecord(rec[:]), nil
}

// Close closes the list file
func (x *Index) Close() error {
	return x.f.Close()
}
