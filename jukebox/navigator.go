package jukebox

import (
	"go-jukebox/buttons"
	"go-jukebox/debug"
	"go-jukebox/lcd"
	"go-jukebox/playlist"
)

type navState int

const (
	navBegin navState = iota
	navShowFile
	navSelect
)

// Navigator is the file selection machine: Begin -> ShowFile -> Select
type Navigator struct {
	state navState
}

// Step runs one state. The only error it returns is fatal (the
// playlist cannot be read).
func (n *Navigator) Step(c *Context) (Mode, error) {
	switch n.state {
	case navBegin:
		if c.Now().Before(c.HoldUntil) {
			c.Buttons.Reset()
			return NavigationMode, nil
		}
		printLine(c.Display, 0, 0, "Select file:")
		if c.Playlist == nil {
			idx, err := playlist.Open(c.Library, c.ListName)
			if err != nil {
				return NavigationMode, err
			}
			c.Playlist = idx
		}
		c.Cursor = clampCursor(c.Cursor, c.Playlist.Count())
		n.state = navShowFile

	case navShowFile:
		name, err := c.Playlist.Get(c.Cursor)
		if err != nil {
			return NavigationMode, err
		}
		showEntry(c.Display, name, c.Cursor, c.Playlist.Count())
		n.state = navSelect

	case navSelect:
		// one press per poll, the losers are dropped
		defer c.Buttons.Reset()
		last := c.Playlist.Count() - 1
		switch {
		case c.Buttons.Pressed(buttons.Select):
			name, err := c.Playlist.Get(c.Cursor)
			if err != nil {
				return NavigationMode, err
			}
			c.Selected = name
			n.state = navBegin
			debug.Log("nav", "selected %d: %s", c.Cursor, name)
			return PlaybackMode, nil
		case c.Buttons.Pressed(buttons.Left):
			c.Cursor = max(c.Cursor-1, 0)
			n.state = navShowFile
		case c.Buttons.Pressed(buttons.Up):
			c.Cursor = 0
			n.state = navShowFile
		case c.Buttons.Pressed(buttons.Down):
			c.Cursor = last
			n.state = navShowFile
		case c.Buttons.Pressed(buttons.Right):
			c.Cursor = min(c.Cursor+1, last)
			n.state = navShowFile
		}

	default:
		n.state = navBegin
	}
	return NavigationMode, nil
}

// showEntry draws row 1: "<" in the first column unless at the start,
// the name, ">" in the last column unless at the end
func showEntry(d Display, name string, cursor, count int) {
	left, right := "<", ">"
	if cursor == 0 {
		left = " "
	}
	if cursor == count-1 {
		right = " "
	}
	printLine(d, 0, 1, left)
	printLine(d, 1, 1, name)
	d.SetCursor(lcd.Columns-1, 1)
	d.Print(right)
}

func clampCursor(cursor, count int) int {
	return min(max(cursor, 0), count-1)
}
