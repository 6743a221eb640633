package midi

import (
	"fmt"
	"sync"

	"go-jukebox/debug"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// Remote turns a MIDI controller (pad box, foot controller, keyboard)
// into a button panel. NoteOn and CC messages become presses; the CC
// number is reported as the note.
type Remote struct {
	id       string
	inPort   drivers.In
	stopFunc func()

	mu        sync.Mutex // guards closed and sends on pressChan
	closed    bool
	pressChan chan Press
}

// NewRemote opens inPort and starts listening
func NewRemote(id string, inPort drivers.In) (*Remote, error) {
	r := &Remote{
		id:        id,
		inPort:    inPort,
		pressChan: make(chan Press, 32),
	}

	if inPort != nil {
		stop, err := gomidi.ListenTo(inPort, func(msg gomidi.Message, timestampms int32) {
			if p, ok := pressFromMessage(msg); ok {
				r.deliver(p)
			}
		})
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		r.stopFunc = stop
	}

	return r, nil
}

// deliver queues p unless the remote is closed. Driver callbacks can
// still arrive after the listener is stopped.
func (r *Remote) deliver(p Press) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	select {
	case r.pressChan <- p:
	default:
		debug.Log("midi", "remote %s: press dropped, queue full", r.id)
	}
}

func pressFromMessage(msg gomidi.Message) (Press, bool) {
	var channel, key, velocity uint8
	if msg.GetNoteOn(&channel, &key, &velocity) && velocity > 0 {
		return Press{Note: key, Velocity: velocity, Channel: channel}, true
	}
	var cc, value uint8
	if msg.GetControlChange(&channel, &cc, &value) && value > 0 {
		return Press{Note: cc, Velocity: value, Channel: channel}, true
	}
	return Press{}, false
}

func (r *Remote) ID() string {
	return r.id
}

func (r *Remote) Type() ControllerType {
	return ControllerRemote
}

func (r *Remote) Presses() <-chan Press {
	return r.pressChan
}

func (r *Remote) Close() error {
	if r.stopFunc != nil {
		r.stopFunc()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.closed {
		r.closed = true
		close(r.pressChan)
	}
	return nil
}
