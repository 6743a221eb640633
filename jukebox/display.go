package jukebox

import (
	"errors"
	"strings"

	"go-jukebox/lcd"
	"go-jukebox/playlist"
)

// printLine writes s at (col, row) and blanks the rest of the row
func printLine(d Display, col, row int, s string) {
	width := lcd.Columns - col
	if width <= 0 {
		return
	}
	if len(s) > width {
		s = s[:width]
	}
	d.SetCursor(col, row)
	d.Print(s + strings.Repeat(" ", width-len(s)))
}

// ShowFatal reports an unrecoverable error on both rows
func ShowFatal(d Display, err error) {
	printLine(d, 0, 0, "FATAL ERROR")
	printLine(d, 0, 1, fatalMessage(err))
}

func fatalMessage(err error) string {
	switch {
	case errors.Is(err, playlist.ErrNoFiles):
		return "No MIDI files"
	case errors.Is(err, playlist.ErrCreate):
		return "Can't make list"
	case errors.Is(err, playlist.ErrOpen):
		return "Can't open list"
	case errors.Is(err, playlist.ErrOutOfRange):
		return "Bad list index"
	default:
		return "Card error"
	}
}
