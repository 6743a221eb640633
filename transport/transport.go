// Package transport writes outgoing MIDI bytes to a physical link.
package transport

import (
	"fmt"
	"io"

	"go-jukebox/config"
	"go-jukebox/debug"
)

// Transport is an ordered byte sink for MIDI bytes
type Transport interface {
	io.Writer
	io.Closer
	Name() string
}

// Open returns the transport selected by cfg
func Open(cfg config.OutputConfig) (Transport, error) {
	switch cfg.Kind {
	case config.OutputSerial:
		return OpenSerial(cfg.SerialDevice, cfg.BaudRate)
	case config.OutputPort:
		return OpenPort(cfg.PortName)
	case config.OutputNone, "":
		return Discard{}, nil
	default:
		return nil, fmt.Errorf("unknown output kind %q", cfg.Kind)
	}
}

// Discard drops every byte
type Discard struct{}

func (Discard) Write(b []byte) (int, error) { return len(b), nil }
func (Discard) Close() error                { return nil }
func (Discard) Name() string                { return "none" }

// Counter wraps a transport and logs byte counts, for debugging links
type Counter struct {
	Transport
	Bytes    int64
	Messages int64
}

func (c *Counter) Write(b []byte) (int, error) {
	n, err := c.Transport.Write(b)
	c.Bytes += int64(n)
	c.Messages++
	if err != nil {
		debug.Log("out", "%s: write %d bytes: %v", c.Name(), len(b), err)
	}
	debug.LogEvery(1000, "out", "%s: %d messages, %d bytes", c.Name(), c.Messages, c.Bytes)
	return n, err
}
