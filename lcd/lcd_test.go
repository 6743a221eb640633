package lcd

import "testing"

func TestPrintAtCursor(t *testing.T) {
	b := NewBuffer()
	b.SetCursor(2, 1)
	b.Print("HELLO")

	expected := "  HELLO         "
	if got := b.Line(1); got != expected {
		t.Errorf("Line(1) = %q, expected %q", got, expected)
	}
	if got := b.Line(0); got != "                " {
		t.Errorf("Line(0) = %q, expected blank", got)
	}
}

func TestPrintClipsAtRightEdge(t *testing.T) {
	b := NewBuffer()
	b.SetCursor(12, 0)
	b.Print("ABCDEFGH")
	if got := b.Line(0); got != "            ABCD" {
		t.Errorf("Line(0) = %q", got)
	}

	// cursor sits past the edge now, further output is dropped
	b.Print("Z")
	if got := b.Line(0); got != "            ABCD" {
		t.Errorf("Line(0) after extra print = %q", got)
	}
}

func TestPrintContinuesFromCursor(t *testing.T) {
	b := NewBuffer()
	b.SetCursor(0, 0)
	b.Print("T:")
	b.Print("120")
	if got := b.Line(0)[:5]; got != "T:120" {
		t.Errorf("prefix = %q, expected T:120", got)
	}
}

func TestNonPrintableReplaced(t *testing.T) {
	b := NewBuffer()
	b.Print("a\x00b")
	if got := b.Line(0)[:3]; got != "a?b" {
		t.Errorf("prefix = %q, expected a?b", got)
	}
}

func TestSetCursorClamps(t *testing.T) {
	b := NewBuffer()
	b.SetCursor(-4, 9)
	b.Print("X")
	if got := b.Line(1)[0]; got != 'X' {
		t.Errorf("expected X at (0,1), got %q", got)
	}
}
