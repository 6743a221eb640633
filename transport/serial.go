package transport

import (
	"fmt"

	"go-jukebox/debug"

	"go.bug.st/serial"
)

// Serial writes MIDI bytes to a serial device, e.g. a USB-serial adapter
// driving a DIN MIDI out at 31250 baud.
type Serial struct {
	port serial.Port
	name string
}

// OpenSerial opens the named serial device at the given baud rate
func OpenSerial(name string, baud int) (*Serial, error) {
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	p, err := serial.Open(name, mode)
	if err != nil {
		return nil, fmt.Errorf("serial %s at %d baud: %w", name, baud, err)
	}
	debug.Log("out", "serial port opened: %s %d baud", name, baud)
	return &Serial{port: p, name: name}, nil
}

func (s *Serial) Write(b []byte) (int, error) {
	return s.port.Write(b)
}

func (s *Serial) Name() string {
	return s.name
}

// Close closes the underlying serial port
func (s *Serial) Close() error {
	debug.Log("out", "serial: closing %s", s.name)
	return s.port.Close()
}

// SerialPorts lists serial devices present on the system
func SerialPorts() ([]string, error) {
	return serial.GetPortsList()
}
