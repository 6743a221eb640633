package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"go-jukebox/buttons"
	"go-jukebox/config"
	"go-jukebox/debug"
	"go-jukebox/jukebox"
	"go-jukebox/lcd"
	"go-jukebox/midi"
	"go-jukebox/sequencer"
	"go-jukebox/storage"
	"go-jukebox/theme"
	"go-jukebox/transport"
	"go-jukebox/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "config file (default ~/.config/go-jukebox/config.json)")
	dir := flag.String("dir", "", "directory holding the MIDI files")
	out := flag.String("out", "", "output kind: none, port or serial")
	port := flag.String("port", "", "MIDI output port name (substring)")
	serialDev := flag.String("serial", "", "serial device for raw MIDI output")
	baud := flag.Int("baud", 0, "serial baud rate")
	debugLog := flag.Bool("debug", false, "write a debug log to ~/.config/go-jukebox/debug.log")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	// Flags override the file
	if *dir != "" {
		cfg.Library.Dir = *dir
	}
	if *out != "" {
		cfg.Output.Kind = config.OutputKind(*out)
	}
	if *port != "" {
		cfg.Output.PortName = *port
		if *out == "" {
			cfg.Output.Kind = config.OutputPort
		}
	}
	if *serialDev != "" {
		cfg.Output.SerialDevice = *serialDev
		if *out == "" {
			cfg.Output.Kind = config.OutputSerial
		}
	}
	if *baud > 0 {
		cfg.Output.BaudRate = *baud
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if *debugLog {
		if err := debug.Enable(debug.DefaultPath()); err != nil {
			return fmt.Errorf("debug log: %w", err)
		}
		defer debug.Disable()
	}

	palette, err := theme.Load(cfg.UI.Palette)
	if err != nil {
		return fmt.Errorf("palette: %w", err)
	}
	th := theme.New(palette)

	notes, err := tui.NoteMap(cfg.Remote.Notes)
	if err != nil {
		return fmt.Errorf("remote notes: %w", err)
	}

	library, err := storage.NewDir(cfg.Library.Dir)
	if err != nil {
		return err
	}

	output, err := transport.Open(cfg.Output)
	if err != nil {
		return err
	}
	defer output.Close()
	counter := &transport.Counter{Transport: output}

	display := lcd.NewBuffer()
	latch := buttons.NewLatch()
	player := sequencer.NewPlayer(library)

	jb := jukebox.New(library, display, latch, player, counter, jukebox.Options{
		ListName:  cfg.Library.PlaylistFile,
		Extension: cfg.Library.Extension,
		ErrorHold: time.Duration(cfg.UI.ErrorHoldMs) * time.Millisecond,
	})
	// A failed start stays on the fatal screen, the UI still comes up
	if err := jb.Start(); err != nil {
		debug.Log("boot", "start: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var deviceMgr *midi.DeviceManager
	if cfg.Remote.PortName != "" {
		deviceMgr = midi.NewDeviceManager(cfg.Remote.PortName)
		go deviceMgr.Run(ctx)
	}

	m := tui.NewModel(jb, display, latch, deviceMgr, th, notes, time.Duration(cfg.UI.TickMs)*time.Millisecond)
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return err
	}
	debug.Log("boot", "exit: %s sent %d messages, %d bytes", output.Name(), counter.Messages, counter.Bytes)
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFile(path)
}
