package transport

import (
	"go-jukebox/debug"
	"go-jukebox/midi"

	gomidi "gitlab.com/gomidi/midi/v2"
)

// Port writes MIDI bytes to a MIDI output port (rtmidi). Each Write must
// carry one complete message.
type Port struct {
	send func(gomidi.Message) error
	name string
}

// OpenPort opens the first output port whose name contains pattern
func OpenPort(pattern string) (*Port, error) {
	send, name, err := midi.OpenOut(pattern)
	if err != nil {
		return nil, err
	}
	debug.Log("out", "MIDI port opened: %s", name)
	return &Port{send: send, name: name}, nil
}

func (p *Port) Write(b []byte) (int, error) {
	msg := make(gomidi.Message, len(b))
	copy(msg, b)
	if err := p.send(msg); err != nil {
		return 0, err
	}
	return len(b), nil
}

func (p *Port) Name() string {
	return p.name
}

// Close releases the MIDI driver
func (p *Port) Close() error {
	midi.CloseDriver()
	return nil
}
