// Package jukebox is the control core: a navigation state machine that
// picks a file from the playlist, a playback state machine that drives the
// sequencer, and a dispatcher that runs one step of one of them per tick.
//
// Every collaborator (display, buttons, sequencer, output, storage) is
// reached through an interface, so the whole core runs in tests without
// hardware.
package jukebox

import (
	"errors"
	"fmt"
	"io"
	"time"

	"go-jukebox/buttons"
	"go-jukebox/debug"
	"go-jukebox/midi"
	"go-jukebox/playlist"
)

// ErrHalted is returned by Tick after a fatal error
var ErrHalted = errors.New("jukebox halted")

var errNotStarted = errors.New("jukebox not started")

// Mode says which state machine has control
type Mode int

const (
	NavigationMode Mode = iota
	PlaybackMode
)

func (m Mode) String() string {
	switch m {
	case NavigationMode:
		return "navigation"
	case PlaybackMode:
		return "playback"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Display is a character display with a write cursor
type Display interface {
	SetCursor(col, row int)
	Print(s string)
}

// Buttons reports latched presses. Each Pressed call consumes at most one
// press; Reset drops everything still pending.
type Buttons interface {
	Pressed(b buttons.Button) bool
	Reset()
}

// Sequencer plays a loaded file one step at a time
type Sequencer interface {
	Load(name string) error
	EndOfData() bool
	Advance() bool
	Tempo() int
	TimeSignature() (num, den int)
	Pause(paused bool)
	Restart()
	Close()
	SetEventHandler(h func(midi.Event))
}

// Context is the state shared by both machines. Only the machine that
// holds control touches it.
type Context struct {
	Display Display
	Buttons Buttons
	Library playlist.Library
	Now     func() time.Time

	ListName string
	Playlist *playlist.Index

	Cursor   int
	Selected string

	// HoldUntil keeps a transient error on screen: navigation does not
	// redraw before this time.
	HoldUntil time.Time
}

// Options configures a Jukebox
type Options struct {
	ListName  string        // playlist file inside the library
	Extension string        // media extension, e.g. ".mid"
	ErrorHold time.Duration // how long a load error stays visible
	Now       func() time.Time
}

// Jukebox is the mode dispatcher
type Jukebox struct {
	ctx  *Context
	nav  *Navigator
	play *Playback

	ext     string
	mode    Mode
	started bool
	err     error
}

// New wires the core to its collaborators. out receives every outgoing
// MIDI byte.
func New(lib playlist.Library, display Display, btns Buttons, seq Sequencer, out io.Writer, opts Options) *Jukebox {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	j := &Jukebox{
		ctx: &Context{
			Display:  display,
			Buttons:  btns,
			Library:  lib,
			Now:      opts.Now,
			ListName: opts.ListName,
		},
		nav:  &Navigator{},
		play: NewPlayback(seq, out, opts.ErrorHold),
		ext:  opts.Extension,
	}
	return j
}

// Start builds the playlist. Failing to write it, or finding no files,
// is fatal: the error is shown and the jukebox stays halted.
func (j *Jukebox) Start() error {
	if j.started {
		return j.err
	}
	j.started = true

	count, err := playlist.Build(j.ctx.Library, j.ctx.ListName, j.ext)
	if err != nil {
		return j.halt(err)
	}
	if count == 0 {
		return j.halt(fmt.Errorf("%w with extension %s", playlist.ErrNoFiles, j.ext))
	}
	debug.Log("boot", "playlist ready: %d files", count)
	return nil
}

// Tick runs one step of the machine that has control
func (j *Jukebox) Tick() error {
	if !j.started {
		return errNotStarted
	}
	if j.err != nil {
		return fmt.Errorf("%w: %v", ErrHalted, j.err)
	}

	switch j.mode {
	case NavigationMode:
		mode, err := j.nav.Step(j.ctx)
		if err != nil {
			return j.halt(err)
		}
		j.setMode(mode)
	case PlaybackMode:
		j.setMode(j.play.Step(j.ctx))
	default:
		j.setMode(NavigationMode)
	}
	return nil
}

func (j *Jukebox) setMode(m Mode) {
	if m != j.mode {
		debug.Log("boot", "mode %s -> %s", j.mode, m)
		// presses latched for one machine never reach the other
		j.ctx.Buttons.Reset()
	}
	j.mode = m
}

func (j *Jukebox) halt(err error) error {
	j.err = err
	debug.Log("boot", "fatal: %v", err)
	ShowFatal(j.ctx.Display, err)
	return err
}

// Shutdown stops playback and silences every channel
func (j *Jukebox) Shutdown() {
	j.play.shutdown()
	if j.ctx.Playlist != nil {
		j.ctx.Playlist.Close()
		j.ctx.Playlist = nil
	}
}

// Mode returns the machine that has control
func (j *Jukebox) Mode() Mode {
	return j.mode
}

// Cursor returns the playlist position
func (j *Jukebox) Cursor() int {
	return j.ctx.Cursor
}

// Selected returns the last confirmed file name
func (j *Jukebox) Selected() string {
	return j.ctx.Selected
}

// Err returns the fatal error, if any
func (j *Jukebox) Err() error {
	return j.err
}

// Halted reports whether a fatal error stopped the jukebox
func (j *Jukebox) Halted() bool {
	return j.err != nil
}
