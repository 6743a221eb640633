package jukebox

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"testing"
	"testing/fstest"
	"time"

	"go-jukebox/buttons"
	"go-jukebox/lcd"
	"go-jukebox/midi"
	"go-jukebox/sequencer"
)

const listName = "PLAYLIST.DAT"

// memLibrary is an in-memory card: files are written on Close
type memLibrary struct {
	fstest.MapFS
	createErr error
}

func newMemLibrary(names ...string) *memLibrary {
	lib := &memLibrary{MapFS: fstest.MapFS{}}
	for _, n := range names {
		lib.MapFS[n] = &fstest.MapFile{Data: []byte("MThd")}
	}
	return lib
}

type memFile struct {
	bytes.Buffer
	name string
	lib  *memLibrary
}

func (f *memFile) Close() error {
	f.lib.MapFS[f.name] = &fstest.MapFile{Data: f.Bytes()}
	return nil
}

func (l *memLibrary) Create(name string) (io.WriteCloser, error) {
	if l.createErr != nil {
		return nil, l.createErr
	}
	return &memFile{name: name, lib: l}, nil
}

var _ fs.ReadDirFS = (*memLibrary)(nil)

// fakeSequencer records transport calls and plays a fixed number of steps
type fakeSequencer struct {
	loadErr  error
	loaded   string
	steps    int // events left until end of data
	changes  map[int]bool
	advances int

	tempo    int
	num, den int
	paused   bool
	restarts int
	closes   int
	handler  func(midi.Event)
}

func newFakeSequencer(steps int) *fakeSequencer {
	return &fakeSequencer{steps: steps, tempo: 120, num: 4, den: 4, changes: map[int]bool{}}
}

func (s *fakeSequencer) Load(name string) error {
	if s.loadErr != nil {
		return s.loadErr
	}
	s.loaded = name
	return nil
}

func (s *fakeSequencer) EndOfData() bool { return s.loaded == "" || s.advances >= s.steps }

func (s *fakeSequencer) Advance() bool {
	if s.paused {
		return false
	}
	s.advances++
	s.handler(midi.Event{Channel: 1, Data: []byte{midi.NoteOn, 60, 100}})
	return s.changes[s.advances]
}

func (s *fakeSequencer) Tempo() int                         { return s.tempo }
func (s *fakeSequencer) TimeSignature() (int, int)          { return s.num, s.den }
func (s *fakeSequencer) Pause(p bool)                       { s.paused = p }
func (s *fakeSequencer) Restart()                           { s.restarts++; s.advances = 0 }
func (s *fakeSequencer) Close()                             { s.closes++; s.loaded = "" }
func (s *fakeSequencer) SetEventHandler(h func(midi.Event)) { s.handler = h }

// rig is a jukebox wired to fakes
type rig struct {
	t       *testing.T
	lib     *memLibrary
	display *lcd.Buffer
	btns    *buttons.Latch
	seq     *fakeSequencer
	out     *bytes.Buffer
	now     time.Time
	j       *Jukebox
}

func newRig(t *testing.T, files ...string) *rig {
	t.Helper()
	r := &rig{
		t:       t,
		lib:     newMemLibrary(files...),
		display: lcd.NewBuffer(),
		btns:    buttons.NewLatch(),
		seq:     newFakeSequencer(1000),
		out:     &bytes.Buffer{},
		now:     time.Unix(5000, 0),
	}
	r.j = New(r.lib, r.display, r.btns, r.seq, r.out, Options{
		ListName:  listName,
		Extension: ".mid",
		ErrorHold: 2 * time.Second,
		Now:       func() time.Time { return r.now },
	})
	return r
}

func (r *rig) start() {
	r.t.Helper()
	if err := r.j.Start(); err != nil {
		r.t.Fatalf("Start: %v", err)
	}
}

func (r *rig) tick(n int) {
	r.t.Helper()
	for i := 0; i < n; i++ {
		if err := r.j.Tick(); err != nil {
			r.t.Fatalf("Tick: %v", err)
		}
	}
}

// settle runs navigation from Begin up to waiting in Select
func (r *rig) settle() {
	r.t.Helper()
	r.tick(2)
}

// press latches b and runs the tick that acts on it plus the redraw
func (r *rig) press(b buttons.Button) {
	r.t.Helper()
	r.btns.Press(b)
	r.tick(2)
}

// allSoundOff is the byte stream for silencing channels 0..15
func allSoundOff() []byte {
	var out []byte
	for ch := byte(0); ch < 16; ch++ {
		out = append(out, 0xB0|ch, 120, 0)
	}
	return out
}

var errNoSuchFile = &sequencer.LoadError{Code: sequencer.CodeOpen, Name: "X.MID", Err: errors.New("no such file")}
