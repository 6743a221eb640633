package midi

import gomidi "gitlab.com/gomidi/midi/v2"

// MIDI status bytes (channel nibble cleared)
const (
	NoteOff         uint8 = 0x80
	NoteOn          uint8 = 0x90
	PolyPressure    uint8 = 0xA0
	CC              uint8 = 0xB0
	ProgramChange   uint8 = 0xC0
	ChannelPressure uint8 = 0xD0
	PitchBend       uint8 = 0xE0
	SysEx           uint8 = 0xF0
)

// Channel mode controllers
const (
	CCAllSoundOff uint8 = 120
	CCAllNotesOff uint8 = 123
)

const NumChannels = 16

// Event is one outgoing MIDI event. For channel messages Data[0] holds the
// status with the channel nibble cleared and Channel carries the channel;
// other messages (SysEx, system) keep their bytes as-is.
type Event struct {
	Channel uint8
	Data    []byte
}

// IsChannelStatus reports whether status starts a channel voice message
func IsChannelStatus(status uint8) bool {
	return status >= NoteOff && status < SysEx
}

// Encode returns the wire bytes for ev: the channel is OR-ed into a
// channel status byte, anything else is returned unmodified.
func Encode(ev Event) []byte {
	if len(ev.Data) == 0 || !IsChannelStatus(ev.Data[0]) {
		return ev.Data
	}
	out := make([]byte, len(ev.Data))
	copy(out, ev.Data)
	out[0] = (out[0] & 0xF0) | (ev.Channel & 0x0F)
	return out
}

// Split is the inverse of Encode: it separates the channel from a raw
// channel message. Non-channel messages get channel 0.
func Split(raw []byte) Event {
	if len(raw) == 0 || !IsChannelStatus(raw[0]) {
		return Event{Data: raw}
	}
	data := make([]byte, len(raw))
	copy(data, raw)
	data[0] &= 0xF0
	return Event{Channel: raw[0] & 0x0F, Data: data}
}

// AllSoundOff returns the "All Sound Off" control change for channel
func AllSoundOff(channel uint8) Event {
	return Split(gomidi.ControlChange(channel&0x0F, CCAllSoundOff, 0))
}
