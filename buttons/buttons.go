// Package buttons latches discrete button presses coming from any input
// source (keyboard, MIDI remote) until the jukebox polls them.
package buttons

import (
	"fmt"
	"strings"
	"sync"
)

// Button is one of the five logical front-panel buttons
type Button int

const (
	Select Button = iota
	Left
	Up
	Down
	Right

	NumButtons = 5
)

var names = [NumButtons]string{"select", "left", "up", "down", "right"}

func (b Button) String() string {
	if b < 0 || int(b) >= NumButtons {
		return fmt.Sprintf("button(%d)", int(b))
	}
	return names[b]
}

// Parse returns the button with the given name (case-insensitive)
func Parse(name string) (Button, error) {
	for i, n := range names {
		if strings.EqualFold(n, name) {
			return Button(i), nil
		}
	}
	return 0, fmt.Errorf("unknown button %q", name)
}

// maxPending caps queued presses per button so a stuck key cannot build
// an unbounded backlog.
const maxPending = 4

// Latch counts presses per button. Press may be called from any
// goroutine; Pressed consumes one press.
type Latch struct {
	mu      sync.Mutex
	pending [NumButtons]int
}

// NewLatch returns an empty latch
func NewLatch() *Latch {
	return &Latch{}
}

// Press records one press of b
func (l *Latch) Press(b Button) {
	if b < 0 || int(b) >= NumButtons {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.pending[b] < maxPending {
		l.pending[b]++
	}
}

// Pressed reports and consumes one pending press of b
func (l *Latch) Pressed(b Button) bool {
	if b < 0 || int(b) >= NumButtons {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.pending[b] == 0 {
		return false
	}
	l.pending[b]--
	return true
}

// Reset drops all pending presses
func (l *Latch) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pending = [NumButtons]int{}
}
