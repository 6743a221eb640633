package sequencer

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"gitlab.com/gomidi/midi/v2/smf"
)

// Load failure codes, shown on the display when a file cannot be played
const (
	CodeBlankName  = -1 // no file name given
	CodeOpen       = -2 // file cannot be opened
	CodeFormat     = -3 // not a Standard MIDI File
	CodeTimeFormat = -4 // SMPTE time code, only metric ticks are supported
	CodeNoTracks   = -5 // header without tracks
)

// LoadError is returned by Load and Parse
type LoadError struct {
	Code int
	Name string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("midi file error %d: %v", e.Code, e.Err)
	}
	return fmt.Sprintf("load %s: error %d: %v", e.Name, e.Code, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ErrorCode extracts the load code from err, or 0 when err is not a LoadError
func ErrorCode(err error) int {
	var le *LoadError
	if errors.As(err, &le) {
		return le.Code
	}
	return 0
}

// Defaults before any tempo or time signature meta event
const (
	DefaultTempo       = 120.0
	DefaultNumerator   = 4
	DefaultDenominator = 4
)

// TimedEvent is a message placed on the song timeline
type TimedEvent struct {
	At      time.Duration
	Tick    int64
	Track   int
	Message smf.Message
}

// Song is a parsed file with every track merged into one timeline
type Song struct {
	Format     uint16
	Tracks     int
	Resolution uint16
	Events     []TimedEvent
}

// Duration returns the time of the last event
func (s *Song) Duration() time.Duration {
	if len(s.Events) == 0 {
		return 0
	}
	return s.Events[len(s.Events)-1].At
}

// Parse reads a Standard MIDI File and merges its tracks. Events with
// the same tick keep track order, then file order.
func Parse(r io.Reader) (*Song, error) {
	file, err := smf.ReadFrom(r)
	if err != nil {
		return nil, &LoadError{Code: CodeFormat, Err: err}
	}

	ticks, ok := file.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, &LoadError{Code: CodeTimeFormat, Err: fmt.Errorf("time format %v", file.TimeFormat)}
	}
	if len(file.Tracks) == 0 {
		return nil, &LoadError{Code: CodeNoTracks, Err: errors.New("no tracks")}
	}

	song := &Song{
		Format:     file.Format(),
		Tracks:     len(file.Tracks),
		Resolution: ticks.Resolution(),
	}

	for trackNo, track := range file.Tracks {
		var abs int64
		for _, ev := range track {
			abs += int64(ev.Delta)
			song.Events = append(song.Events, TimedEvent{
				Tick:    abs,
				Track:   trackNo,
				Message: ev.Message,
			})
		}
	}
	sort.SliceStable(song.Events, func(i, j int) bool {
		return song.Events[i].Tick < song.Events[j].Tick
	})

	song.schedule()
	return song, nil
}

// schedule converts ticks to wall time, honoring tempo changes from any track
func (s *Song) schedule() {
	usPerQuarter := 60e6 / DefaultTempo
	var lastTick int64
	var lastUs float64

	for i := range s.Events {
		ev := &s.Events[i]
		lastUs += float64(ev.Tick-lastTick) * usPerQuarter / float64(s.Resolution)
		lastTick = ev.Tick
		ev.At = time.Duration(lastUs * float64(time.Microsecond))

		var bpm float64
		if ev.Message.GetMetaTempo(&bpm) && bpm > 0 {
			usPerQuarter = 60e6 / bpm
		}
	}
}
