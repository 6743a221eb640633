package midi

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go-jukebox/debug"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver
)

// DeviceEvent is emitted when controllers connect/disconnect
type DeviceEvent struct {
	Type       DeviceEventType
	Controller Controller
	ID         string
}

type DeviceEventType int

const (
	DeviceConnected DeviceEventType = iota
	DeviceDisconnected
)

// portTimeout bounds a port scan (CoreMIDI can hang)
const portTimeout = 3 * time.Second

// DeviceManager handles hot-plug detection of MIDI remotes
type DeviceManager struct {
	pattern     string
	controllers map[string]Controller
	mu          sync.RWMutex
	events      chan DeviceEvent
	pollRate    time.Duration
}

// NewDeviceManager creates a manager that connects to input ports whose
// name contains pattern (case-insensitive)
func NewDeviceManager(pattern string) *DeviceManager {
	return &DeviceManager{
		pattern:     pattern,
		controllers: make(map[string]Controller),
		events:      make(chan DeviceEvent, 16),
		pollRate:    time.Second,
	}
}

// Events returns a channel of device connect/disconnect events
func (dm *DeviceManager) Events() <-chan DeviceEvent {
	return dm.events
}

// Run starts the polling loop (blocking - run in goroutine)
func (dm *DeviceManager) Run(ctx context.Context) {
	ticker := time.NewTicker(dm.pollRate)
	defer ticker.Stop()

	// Initial scan
	dm.scan()

	for {
		select {
		case <-ctx.Done():
			dm.closeAll()
			close(dm.events)
			return
		case <-ticker.C:
			dm.scan()
		}
	}
}

func (dm *DeviceManager) scan() {
	inPorts, _, err := ListPorts()
	if err != nil {
		// skip this scan, the next tick retries
		debug.Log("midi", "scan: %v", err)
		return
	}

	// Build map of what we see now
	seenIDs := make(map[string]bool)

	for _, inPort := range inPorts {
		id := inPort.String()
		if !MatchesPort(id, dm.pattern) {
			continue
		}
		seenIDs[id] = true

		dm.mu.RLock()
		_, exists := dm.controllers[id]
		dm.mu.RUnlock()
		if exists {
			continue
		}

		remote, err := NewRemote(id, inPort)
		if err != nil {
			debug.Log("midi", "remote %s: %v", id, err)
			continue
		}

		dm.mu.Lock()
		dm.controllers[id] = remote
		dm.mu.Unlock()

		debug.Log("midi", "remote connected: %s", id)
		dm.events <- DeviceEvent{
			Type:       DeviceConnected,
			Controller: remote,
			ID:         id,
		}
	}

	// Check for disconnects
	dm.mu.Lock()
	var toRemove []string
	for id := range dm.controllers {
		if !seenIDs[id] {
			toRemove = append(toRemove, id)
		}
	}
	for _, id := range toRemove {
		c := dm.controllers[id]
		c.Close()
		delete(dm.controllers, id)
		debug.Log("midi", "remote disconnected: %s", id)
		dm.events <- DeviceEvent{
			Type: DeviceDisconnected,
			ID:   id,
		}
	}
	dm.mu.Unlock()
}

func (dm *DeviceManager) closeAll() {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	for _, c := range dm.controllers {
		c.Close()
	}
	dm.controllers = make(map[string]Controller)
}

// MatchesPort reports whether a port name contains pattern, ignoring case.
// An empty pattern matches nothing.
func MatchesPort(name, pattern string) bool {
	if pattern == "" {
		return false
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(pattern))
}

// ListPorts returns the MIDI input and output ports, giving up after a
// few seconds if the driver does not answer.
func ListPorts() ([]drivers.In, []drivers.Out, error) {
	type portsResult struct {
		inPorts  []drivers.In
		outPorts []drivers.Out
	}

	ch := make(chan portsResult, 1)
	go func() {
		ch <- portsResult{inPorts: gomidi.GetInPorts(), outPorts: gomidi.GetOutPorts()}
	}()

	select {
	case result := <-ch:
		return result.inPorts, result.outPorts, nil
	case <-time.After(portTimeout):
		return nil, nil, fmt.Errorf("MIDI driver did not list ports within %s", portTimeout)
	}
}

// OpenOut opens the first output port whose name contains pattern and
// returns a sender for it
func OpenOut(pattern string) (func(gomidi.Message) error, string, error) {
	_, outPorts, err := ListPorts()
	if err != nil {
		return nil, "", err
	}
	for _, port := range outPorts {
		if MatchesPort(port.String(), pattern) {
			send, err := gomidi.SendTo(port)
			if err != nil {
				return nil, "", fmt.Errorf("open output %s: %w", port.String(), err)
			}
			return send, port.String(), nil
		}
	}
	return nil, "", fmt.Errorf("no MIDI output port matching %q", pattern)
}

// CloseDriver releases the MIDI driver
func CloseDriver() {
	gomidi.CloseDriver()
}
