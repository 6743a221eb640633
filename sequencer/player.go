package sequencer

import (
	"errors"
	"io/fs"
	"math"
	"time"

	"go-jukebox/debug"
	"go-jukebox/midi"
)

// MaxEventsPerAdvance bounds the work done by one Advance call
const MaxEventsPerAdvance = 32

// Player steps a loaded song against a clock and hands every due event
// to the registered handler. It is driven from a single goroutine.
type Player struct {
	fsys    fs.FS
	now     func() time.Time
	handler func(midi.Event)

	song *Song
	next int

	start    time.Time // wall time of song position zero
	paused   bool
	pausedAt time.Time

	tempo float64
	num   int
	den   int
}

// Option configures a Player
type Option func(*Player)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(p *Player) { p.now = now }
}

// NewPlayer returns a player reading files from fsys
func NewPlayer(fsys fs.FS, opts ...Option) *Player {
	p := &Player{
		fsys:    fsys,
		now:     time.Now,
		handler: func(midi.Event) {},
	}
	for _, opt := range opts {
		opt(p)
	}
	p.resetMeter()
	return p
}

// SetEventHandler registers the sink for outgoing events
func (p *Player) SetEventHandler(h func(midi.Event)) {
	if h == nil {
		h = func(midi.Event) {}
	}
	p.handler = h
}

// Load parses name and positions playback at its start
func (p *Player) Load(name string) error {
	p.Close()
	if name == "" {
		return &LoadError{Code: CodeBlankName, Err: errors.New("blank file name")}
	}

	f, err := p.fsys.Open(name)
	if err != nil {
		return &LoadError{Code: CodeOpen, Name: name, Err: err}
	}
	defer f.Close()

	song, err := Parse(f)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Name = name
			return le
		}
		return &LoadError{Code: CodeFormat, Name: name, Err: err}
	}

	p.song = song
	p.Restart()
	debug.Log("seq", "loaded %s: format %d, %d tracks, %d events, %s",
		name, song.Format, song.Tracks, len(song.Events), song.Duration())
	return nil
}

// EndOfData reports whether every event has been emitted
func (p *Player) EndOfData() bool {
	return p.song == nil || p.next >= len(p.song.Events)
}

// Advance emits the events whose time has come, at most
// MaxEventsPerAdvance of them. It reports whether the tempo or time
// signature changed.
func (p *Player) Advance() bool {
	if p.song == nil || p.paused {
		return false
	}

	pos := p.Position()
	changed := false
	for n := 0; n < MaxEventsPerAdvance && p.next < len(p.song.Events); n++ {
		ev := p.song.Events[p.next]
		if ev.At > pos {
			break
		}
		p.next++
		if p.dispatch(ev) {
			changed = true
		}
	}
	debug.LogEvery(500, "seq", "advance pos=%s next=%d", pos, p.next)
	return changed
}

func (p *Player) dispatch(ev TimedEvent) bool {
	msg := ev.Message
	if len(msg) == 0 {
		return false
	}

	if msg[0] == 0xFF {
		var bpm float64
		if msg.GetMetaTempo(&bpm) && bpm > 0 {
			p.tempo = bpm
			return true
		}
		var num, den uint8
		if msg.GetMetaMeter(&num, &den) {
			p.num, p.den = int(num), int(den)
			return true
		}
		return false
	}

	p.handler(midi.Split([]byte(msg)))
	return false
}

// Position returns the current song time
func (p *Player) Position() time.Duration {
	if p.song == nil {
		return 0
	}
	now := p.now()
	if p.paused {
		now = p.pausedAt
	}
	return now.Sub(p.start)
}

// Tempo returns the current tempo in whole beats per minute
func (p *Player) Tempo() int {
	return int(math.Round(p.tempo))
}

// TimeSignature returns the current numerator and denominator
func (p *Player) TimeSignature() (int, int) {
	return p.num, p.den
}

// Pause freezes (true) or resumes (false) song time
func (p *Player) Pause(paused bool) {
	if paused == p.paused {
		return
	}
	now := p.now()
	if paused {
		p.pausedAt = now
	} else {
		p.start = p.start.Add(now.Sub(p.pausedAt))
	}
	p.paused = paused
}

// Restart rewinds to the first event
func (p *Player) Restart() {
	p.next = 0
	p.start = p.now()
	p.pausedAt = p.start
	p.resetMeter()
}

// Close drops the loaded song
func (p *Player) Close() {
	p.song = nil
	p.next = 0
	p.paused = false
	p.resetMeter()
}

func (p *Player) resetMeter() {
	p.tempo = DefaultTempo
	p.num, p.den = DefaultNumerator, DefaultDenominator
}
