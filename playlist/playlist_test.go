package playlist

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"go-jukebox/storage"
)

func newLibrary(t *testing.T, files ...string) *storage.Dir {
	t.Helper()
	root := t.TempDir()
	for _, name := range files {
		if err := os.WriteFile(filepath.Join(root, name), []byte("MThd"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(root, "SUB.MID"), 0755); err != nil {
		t.Fatal(err)
	}
	lib, err := storage.NewDir(root)
	if err != nil {
		t.Fatal(err)
	}
	return lib
}

func TestBuildWritesFixedWidthRecords(t *testing.T) {
	lib := newLibrary(t, "B.MID", "a.mid", "notes.txt", "C.Mid", "LONGFILENAME.MID")

	count, err := Build(lib, "PLAYLIST.DAT", ".mid")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if count != 3 {
		t.Fatalf("count = %d, expected 3", count)
	}

	data, err := fs.ReadFile(lib, "PLAYLIST.DAT")
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 3*RecordSize {
		t.Fatalf("list size = %d, expected %d", len(data), 3*RecordSize)
	}
	rec := EncodeRecord("B.MID")
	if !bytes.Equal(data[:RecordSize], rec[:]) {
		t.Errorf("record 0 = %q, expected %q", data[:RecordSize], rec[:])
	}
}

func TestBuildNoMatchingFiles(t *testing.T) {
	lib := newLibrary(t, "readme.txt")
	count, err := Build(lib, "PLAYLIST.DAT", ".mid")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d, expected 0", count)
	}
}

type failingLibrary struct{ fstest.MapFS }

func (failingLibrary) Create(string) (io.WriteCloser, error) {
	return nil, errors.New("card is write protected")
}

func TestBuildCreateFailure(t *testing.T) {
	_, err := Build(failingLibrary{fstest.MapFS{}}, "PLAYLIST.DAT", ".mid")
	if !errors.Is(err, ErrCreate) {
		t.Errorf("err = %v, expected ErrCreate", err)
	}
}

func TestIndexGet(t *testing.T) {
	lib := newLibrary(t, "A.MID", "B.MID", "C.MID")
	if _, err := Build(lib, "PLAYLIST.DAT", ".MID"); err != nil {
		t.Fatal(err)
	}

	idx, err := Open(lib, "PLAYLIST.DAT")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer idx.Close()

	if idx.Count() != 3 {
		t.Fatalf("Count = %d, expected 3", idx.Count())
	}
	for i, expected := range []string{"A.MID", "B.MID", "C.MID"} {
		got, err := idx.Get(i)
		if err != nil {
			t.Fatalf("Get(%d): %v", i, err)
		}
		if got != expected {
			t.Errorf("Get(%d) = %q, expected %q", i, got, expected)
		}
	}

	for _, i := range []int{-1, 3} {
		if _, err := idx.Get(i); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("Get(%d) err = %v, expected ErrOutOfRange", i, err)
		}
	}
}

func TestIndexGetFromMapFS(t *testing.T) {
	a, b := EncodeRecord("ONE.MID"), EncodeRecord("TWO.MID")
	fsys := fstest.MapFS{"LIST": &fstest.MapFile{Data: append(a[:], b[:]...)}}

	idx, err := Open(fsys, "LIST")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	got, err := idx.Get(1)
	if err != nil || got != "TWO.MID" {
		t.Errorf("Get(1) = %q,%v expected TWO.MID", got, err)
	}
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(fstest.MapFS{}, "PLAYLIST.DAT")
	if !errors.Is(err, ErrOpen) {
		t.Errorf("err = %v, expected ErrOpen", err)
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		{"SONG.MID", true},
		{"song.mid", true},
		{"Song.MiD", true},
		{"song.midi", false},
		{"MID", false},
		{"song.mid.txt", false},
	}
	for _, test := range tests {
		if got := Matches(test.name, ".mid"); got != test.expected {
			t.Errorf("Matches(%q) = %v, expected %v", test.name, got, test.expected)
		}
	}
}

func TestDecodeRecord(t *testing.T) {
	rec := EncodeRecord("ABCDEFGH.MID")
	if rec[RecordSize-1] != 0 {
		t.Error("record must end with a terminator")
	}
	if got := DecodeRecord(rec[:]); got != "ABCDEFGH.MID" {
		t.Errorf("DecodeRecord = %q", got)
	}
}
