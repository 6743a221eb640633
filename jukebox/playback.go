package jukebox

import (
	"fmt"
	"io"
	"time"

	"go-jukebox/buttons"
	"go-jukebox/debug"
	"go-jukebox/lcd"
	"go-jukebox/midi"
	"go-jukebox/sequencer"
)

type playState int

const (
	playBegin playState = iota
	playLoad
	playProcess
	playClose
)

// session is the state of one playback, from Load to Close
type session struct {
	tempo  int
	num    int
	den    int
	paused bool
}

// Playback is the playing machine: Begin -> Load -> Process -> Close
type Playback struct {
	seq       Sequencer
	out       io.Writer
	errorHold time.Duration

	state   playState
	session *session
}

// NewPlayback returns a machine driving seq and writing MIDI to out.
// It registers itself as the sequencer's event handler.
func NewPlayback(seq Sequencer, out io.Writer, errorHold time.Duration) *Playback {
	p := &Playback{seq: seq, out: out, errorHold: errorHold}
	seq.SetEventHandler(p.send)
	return p
}

// Step runs one state and returns the mode for the next tick
func (p *Playback) Step(c *Context) Mode {
	switch p.state {
	case playBegin:
		printLine(c.Display, 0, 0, c.Selected)
		printLine(c.Display, 0, 1, "T:--- S:--/--")
		p.state = playLoad

	case playLoad:
		if err := p.seq.Load(c.Selected); err != nil {
			debug.Log("play", "load %s: %v", c.Selected, err)
			printLine(c.Display, 0, 1, fmt.Sprintf("Load err %d", sequencer.ErrorCode(err)))
			c.HoldUntil = c.Now().Add(p.errorHold)
			p.state = playClose
			break
		}
		p.session = &session{}
		p.showGlyph(c.Display)
		p.refresh(c.Display)
		p.state = playProcess

	case playProcess:
		if p.seq.EndOfData() {
			p.state = playClose
		} else if p.seq.Advance() {
			p.refresh(c.Display)
		}

		switch {
		case c.Buttons.Pressed(buttons.Left): // rewind
			p.silence()
			p.seq.Restart()
			p.state = playProcess
			debug.Log("play", "rewind")
		case c.Buttons.Pressed(buttons.Right): // stop
			p.state = playClose
		case c.Buttons.Pressed(buttons.Up): // pause
			p.seq.Pause(true)
			p.session.paused = true
			p.silence()
			p.showGlyph(c.Display)
		case c.Buttons.Pressed(buttons.Down): // resume
			p.seq.Pause(false)
			p.session.paused = false
			p.showGlyph(c.Display)
		}
		c.Buttons.Reset()

	case playClose:
		p.seq.Close()
		p.silence()
		p.session = nil
		p.state = playBegin
		return NavigationMode

	default:
		p.state = playBegin
	}
	return PlaybackMode
}

// Paused reports the session pause flag
func (p *Playback) Paused() bool {
	return p.session != nil && p.session.paused
}

// refresh redraws tempo and time signature if they changed
func (p *Playback) refresh(d Display) {
	tempo := min(p.seq.Tempo(), 999)
	num, den := p.seq.TimeSignature()
	if tempo != p.session.tempo {
		p.session.tempo = tempo
		d.SetCursor(2, 1)
		d.Print(fmt.Sprintf("%3d", tempo))
	}
	if num != p.session.num || den != p.session.den {
		p.session.num, p.session.den = num, den
		printLine(d, 8, 1, fmt.Sprintf("%d/%d", num, den))
	}
}

func (p *Playback) showGlyph(d Display) {
	glyph := " >"
	if p.Paused() {
		glyph = "||"
	}
	d.SetCursor(lcd.Columns-2, 0)
	d.Print(glyph)
}

// send is the sequencer event handler: the channel goes into the low
// nibble of channel messages, other messages pass through unchanged
func (p *Playback) send(ev midi.Event) {
	if _, err := p.out.Write(midi.Encode(ev)); err != nil {
		debug.Log("out", "write % X: %v", ev.Data, err)
	}
}

// silence sends All Sound Off on every channel, lowest first
func (p *Playback) silence() {
	for ch := uint8(0); ch < midi.NumChannels; ch++ {
		p.send(midi.AllSoundOff(ch))
	}
}

func (p *Playback) shutdown() {
	if p.state != playBegin {
		p.seq.Close()
		p.state = playBegin
		p.session = nil
	}
	p.silence()
}
