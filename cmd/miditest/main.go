package main

import (
	"fmt"
	"os"
	"time"

	"go-jukebox/midi"
	"go-jukebox/playlist"
	"go-jukebox/sequencer"
	"go-jukebox/storage"
	"go-jukebox/transport"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	var err error
	switch os.Args[1] {
	case "list":
		err = listPorts()
	case "panic":
		err = withArg(sendPanic)
	case "scan":
		err = withArg(scanDir)
	case "dump":
		err = withArg(dumpFile)
	default:
		usage()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("MIDI Test Scripts")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list          - List MIDI ports and serial devices")
	fmt.Println("  panic <port>  - Send All Sound Off on every channel")
	fmt.Println("  scan <dir>    - Rebuild the playlist and print it")
	fmt.Println("  dump <file>   - Print the merged event timeline of a MIDI file")
}

func withArg(fn func(string) error) error {
	if len(os.Args) < 3 {
		usage()
		return nil
	}
	return fn(os.Args[2])
}

func listPorts() error {
	fmt.Println("=== MIDI Ports ===")
	fmt.Println("(waiting up to 3 seconds...)")

	ins, outs, err := midi.ListPorts()
	if err != nil {
		fmt.Println("\nTIMEOUT! CoreMIDI is hung.")
		fmt.Println("Fix: sudo killall coreaudiod midiserver")
		return err
	}
	defer midi.CloseDriver()

	fmt.Println("\nInputs:")
	for i, p := range ins {
		fmt.Printf("  %d: %s\n", i, p.String())
	}
	fmt.Println("\nOutputs:")
	for i, p := range outs {
		fmt.Printf("  %d: %s\n", i, p.String())
	}

	fmt.Println("\n=== Serial Devices ===")
	ports, err := transport.SerialPorts()
	if err != nil {
		return err
	}
	if len(ports) == 0 {
		fmt.Println("  (none)")
	}
	for _, p := range ports {
		fmt.Printf("  %s\n", p)
	}
	return nil
}

func sendPanic(pattern string) error {
	out, err := transport.OpenPort(pattern)
	if err != nil {
		return err
	}
	defer out.Close()

	for ch := uint8(0); ch < midi.NumChannels; ch++ {
		msg := midi.Encode(midi.AllSoundOff(ch))
		if _, err := out.Write(msg); err != nil {
			return fmt.Errorf("channel %d: %w", ch+1, err)
		}
		fmt.Printf("  -> %s: % X\n", out.Name(), msg)
	}
	fmt.Println("All channels silenced")
	return nil
}

func scanDir(root string) error {
	dir, err := storage.NewDir(root)
	if err != nil {
		return err
	}

	count, err := playlist.Build(dir, "PLAYLIST.DAT", ".mid")
	if err != nil {
		return err
	}
	fmt.Printf("%d files in %s\n", count, dir.Root())

	idx, err := playlist.Open(dir, "PLAYLIST.DAT")
	if err != nil {
		return err
	}
	defer idx.Close()

	for i := 0; i < idx.Count(); i++ {
		name, err := idx.Get(i)
		if err != nil {
			return err
		}
		fmt.Printf("  %3d: %s\n", i, name)
	}
	return nil
}

func dumpFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	song, err := sequencer.Parse(f)
	if err != nil {
		return fmt.Errorf("%s: %w (code %d)", path, err, sequencer.ErrorCode(err))
	}

	fmt.Printf("format %d, %d tracks, %d ticks/quarter, %d events, %s\n",
		song.Format, song.Tracks, song.Resolution, len(song.Events), song.Duration().Round(time.Millisecond))
	for _, ev := range song.Events {
		fmt.Printf("  %10s  tick %-8d trk %-2d %s\n", ev.At.Round(time.Millisecond), ev.Tick, ev.Track, ev.Message)
	}
	return nil
}
