package midi

// ControllerType identifies the kind of controller
type ControllerType int

const (
	ControllerUnknown ControllerType = iota
	ControllerRemote
)

// Press is sent when a key/pad/button is pressed on a remote
type Press struct {
	Note     uint8
	Velocity uint8
	Channel  uint8
}

// Controller is the interface for MIDI input devices
type Controller interface {
	ID() string
	Type() ControllerType

	// Input events from the controller
	Presses() <-chan Press

	// Lifecycle
	Close() error
}
