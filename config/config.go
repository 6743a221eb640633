package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrInvalid is wrapped by Validate failures
var ErrInvalid = errors.New("invalid config")

// OutputKind selects where MIDI bytes are written
type OutputKind string

const (
	OutputPort   OutputKind = "port"   // MIDI port via rtmidi
	OutputSerial OutputKind = "serial" // raw bytes on a serial device
	OutputNone   OutputKind = "none"   // discard
)

// LibraryConfig describes where media files live
type LibraryConfig struct {
	Dir          string `json:"dir"`
	Extension    string `json:"extension"`
	PlaylistFile string `json:"playlistFile"`
}

// OutputConfig defines the MIDI output transport
type OutputConfig struct {
	Kind         OutputKind `json:"kind"`
	PortName     string     `json:"portName,omitempty"`
	SerialDevice string     `json:"serialDevice,omitempty"`
	BaudRate     int        `json:"baudRate,omitempty"`
}

// RemoteConfig maps a MIDI controller's notes to the five buttons
type RemoteConfig struct {
	PortName string           `json:"portName,omitempty"` // substring match, empty disables
	Notes    map[string]uint8 `json:"notes,omitempty"`    // button name -> note
}

// UIConfig stores UI timing and look
type UIConfig struct {
	TickMs      int    `json:"tickMs"`
	ErrorHoldMs int    `json:"errorHoldMs"`
	Palette     string `json:"palette,omitempty"` // GPL file, empty uses the built-in one
}

// Config is the main configuration structure
type Config struct {
	Library LibraryConfig `json:"library"`
	Output  OutputConfig  `json:"output"`
	Remote  RemoteConfig  `json:"remote,omitempty"`
	UI      UIConfig      `json:"ui"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Library: LibraryConfig{
			Dir:          ".",
			Extension:    ".mid",
			PlaylistFile: "PLAYLIST.DAT",
		},
		Output: OutputConfig{
			Kind:     OutputNone,
			BaudRate: 31250,
		},
		Remote: RemoteConfig{
			Notes: map[string]uint8{
				"select": 60,
				"left":   62,
				"up":     64,
				"down":   65,
				"right":  67,
			},
		},
		UI: UIConfig{
			TickMs:      2,
			ErrorHoldMs: 2000,
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-jukebox"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from the default path, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFile(path)
}

// LoadFile reads the config at path. Missing fields keep their defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	// A notes table in the file replaces the defaults as a whole, so a
	// partial remap cannot collide with a default note.
	var peek struct {
		Remote struct {
			Notes json.RawMessage `json:"notes"`
		} `json:"remote"`
	}
	if err := json.Unmarshal(data, &peek); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if peek.Remote.Notes != nil {
		cfg.Remote.Notes = nil
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes the config to the default path
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

// SaveFile writes the config to path, creating its directory
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks the fields the jukebox cannot run without
func (c *Config) Validate() error {
	if c.Library.Dir == "" {
		return fmt.Errorf("%w: library.dir is empty", ErrInvalid)
	}
	if !strings.HasPrefix(c.Library.Extension, ".") || len(c.Library.Extension) < 2 {
		return fmt.Errorf("%w: library.extension %q must look like \".mid\"", ErrInvalid, c.Library.Extension)
	}
	if c.Library.PlaylistFile == "" {
		return fmt.Errorf("%w: library.playlistFile is empty", ErrInvalid)
	}
	if strings.EqualFold(filepath.Ext(c.Library.PlaylistFile), c.Library.Extension) {
		return fmt.Errorf("%w: playlist file %q would match the media extension", ErrInvalid, c.Library.PlaylistFile)
	}

	switch c.Output.Kind {
	case OutputNone:
	case OutputPort:
		if c.Output.PortName == "" {
			return fmt.Errorf("%w: output.portName required for kind %q", ErrInvalid, c.Output.Kind)
		}
	case OutputSerial:
		if c.Output.SerialDevice == "" {
			return fmt.Errorf("%w: output.serialDevice required for kind %q", ErrInvalid, c.Output.Kind)
		}
		if c.Output.BaudRate <= 0 {
			return fmt.Errorf("%w: output.baudRate must be positive", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown output.kind %q", ErrInvalid, c.Output.Kind)
	}

	if c.UI.TickMs <= 0 {
		return fmt.Errorf("%w: ui.tickMs must be positive", ErrInvalid)
	}
	if c.UI.ErrorHoldMs < 0 {
		return fmt.Errorf("%w: ui.errorHoldMs must not be negative", ErrInvalid)
	}
	return nil
}
