package theme

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadGPL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "amber.gpl")
	gpl := "GIMP Palette\nName: amber\nColumns: 2\n# comment\n  0   0   0\tblack\n255 176   0\tamber\n"
	if err := os.WriteFile(path, []byte(gpl), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Name != "amber" || len(p.Colors) != 2 {
		t.Fatalf("palette = %+v", p)
	}
	if got := p.Lookup(1); got != (RGB{255, 176, 0}) {
		t.Errorf("Lookup(1) = %v", got)
	}
	if got := p.Lookup(0.5); got != (RGB{127, 88, 0}) {
		t.Errorf("Lookup(0.5) = %v, expected midpoint", got)
	}
}

func TestLoadEmptyPathUsesDefault(t *testing.T) {
	p, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != DefaultPalette().Name {
		t.Errorf("Name = %q", p.Name)
	}
	th := New(p)
	if th.Backlight() != "#102a8c" {
		t.Errorf("Backlight = %q", th.Backlight())
	}
}

func TestParseGPLSkipsBadLines(t *testing.T) {
	gpl := "GIMP Palette\nName: odd\n1 2\n300 0 0\n10 20 30 ok\n"
	p, err := ParseGPL(strings.NewReader(gpl))
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Colors) != 1 || p.Colors[0] != (RGB{10, 20, 30}) {
		t.Errorf("Colors = %v, expected [[10 20 30]]", p.Colors)
	}
	if got := p.Lookup(0.7); got != (RGB{10, 20, 30}) {
		t.Errorf("single-color Lookup = %v", got)
	}
}

func TestLoadGPLWithoutColors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.gpl")
	if err := os.WriteFile(path, []byte("GIMP Palette\nName: empty\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for palette without colors")
	}
}
