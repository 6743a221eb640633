// Package lcd emulates a character display module: a fixed grid of
// cells, a write cursor, and text that clips at the right edge.
package lcd

import (
	"strings"
	"sync"
)

// Size of the HD44780-style module the jukebox is laid out for
const (
	Columns = 16
	Rows    = 2
)

// Buffer is an in-memory character display. It is safe to read from the
// UI goroutine while the jukebox writes to it.
type Buffer struct {
	mu    sync.RWMutex
	cells [Rows][Columns]byte
	col   int
	row   int
}

// NewBuffer returns a blank display
func NewBuffer() *Buffer {
	b := &Buffer{}
	b.Clear()
	return b
}

// Clear blanks every cell and homes the cursor
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for r := range b.cells {
		for c := range b.cells[r] {
			b.cells[r][c] = ' '
		}
	}
	b.col, b.row = 0, 0
}

// SetCursor moves the write position. Out-of-range values are clamped.
func (b *Buffer) SetCursor(col, row int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.col = clamp(col, 0, Columns)
	b.row = clamp(row, 0, Rows-1)
}

// Print writes s at the cursor and advances it. Characters past the last
// column are dropped, non-printable bytes are shown as '?'.
func (b *Buffer) Print(s string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := 0; i < len(s) && b.col < Columns; i++ {
		c := s[i]
		if c < ' ' || c > '~' {
			c = '?'
		}
		b.cells[b.row][b.col] = c
		b.col++
	}
}

// Line returns the contents of row
func (b *Buffer) Line(row int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if row < 0 || row >= Rows {
		return ""
	}
	return string(b.cells[row][:])
}

// Lines returns every row
func (b *Buffer) Lines() []string {
	lines := make([]string, Rows)
	for r := range lines {
		lines[r] = b.Line(r)
	}
	return lines
}

// String renders the display as newline-separated rows
func (b *Buffer) String() string {
	return strings.Join(b.Lines(), "\n")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
