package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-jukebox/buttons"
	"go-jukebox/debug"
	"go-jukebox/jukebox"
	"go-jukebox/lcd"
	"go-jukebox/midi"
	"go-jukebox/theme"
	"go-jukebox/widgets"
)

// DefaultKeys maps terminal keys to the five buttons
var DefaultKeys = map[string]buttons.Button{
	"enter": buttons.Select,
	" ":     buttons.Select,
	"left":  buttons.Left,
	"h":     buttons.Left,
	"up":    buttons.Up,
	"k":     buttons.Up,
	"down":  buttons.Down,
	"j":     buttons.Down,
	"right": buttons.Right,
	"l":     buttons.Right,
}

type Model struct {
	Jukebox   *jukebox.Jukebox
	Display   *lcd.Buffer
	Buttons   *buttons.Latch
	DeviceMgr *midi.DeviceManager // nil without a remote
	Theme     *theme.Theme

	keys     map[string]buttons.Button
	notes    map[uint8]buttons.Button
	tick     time.Duration
	remote   midi.Controller
	quitting bool
}

// TickMsg drives one dispatcher step
type TickMsg time.Time

type DeviceEventMsg midi.DeviceEvent

// NewModel builds the UI around a started jukebox. notes maps remote
// note numbers to buttons and may be nil.
func NewModel(jb *jukebox.Jukebox, display *lcd.Buffer, latch *buttons.Latch, deviceMgr *midi.DeviceManager, th *theme.Theme, notes map[uint8]buttons.Button, tick time.Duration) Model {
	if tick <= 0 {
		tick = 2 * time.Millisecond
	}
	return Model{
		Jukebox:   jb,
		Display:   display,
		Buttons:   latch,
		DeviceMgr: deviceMgr,
		Theme:     th,
		keys:      DefaultKeys,
		notes:     notes,
		tick:      tick,
	}
}

func doTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func ListenForDevices(deviceMgr *midi.DeviceManager) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-deviceMgr.Events()
		if !ok {
			return nil
		}
		return DeviceEventMsg(event)
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{doTick(m.tick)}
	if m.DeviceMgr != nil {
		cmds = append(cmds, ListenForDevices(m.DeviceMgr))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			m.Jukebox.Shutdown()
			return m, tea.Quit
		}
		if b, ok := m.keys[msg.String()]; ok {
			m.Buttons.Press(b)
		}

	case TickMsg:
		if m.Jukebox.Halted() {
			// frozen on the fatal screen
			return m, nil
		}
		if err := m.Jukebox.Tick(); err != nil {
			return m, nil
		}
		return m, doTick(m.tick)

	case DeviceEventMsg:
		event := midi.DeviceEvent(msg)
		switch event.Type {
		case midi.DeviceConnected:
			m.remote = event.Controller
			go m.pumpPresses(event.Controller)
		case midi.DeviceDisconnected:
			if m.remote != nil && m.remote.ID() == event.ID {
				m.remote = nil
			}
		}
		return m, ListenForDevices(m.DeviceMgr)
	}

	return m, nil
}

// pumpPresses feeds a remote's notes into the latch until it disconnects
func (m Model) pumpPresses(c midi.Controller) {
	for p := range c.Presses() {
		if b, ok := m.notes[p.Note]; ok {
			m.Buttons.Press(b)
			continue
		}
		debug.Log("remote", "%s: unmapped note %d", c.ID(), p.Note)
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())

	remote := ""
	if m.remote != nil {
		remote = "  remote:" + m.remote.ID()
	}
	header := headerStyle.Render(fmt.Sprintf("go-jukebox  %s  %s%s", strings.ToUpper(m.Jukebox.Mode().String()), m.position(), remote))

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(widgets.RenderLCD(m.Display.Lines(), lcd.Columns, m.Theme))
	out.WriteString("\n\n")
	if err := m.Jukebox.Err(); err != nil {
		out.WriteString(widgets.RenderFatal(err, m.Theme))
		out.WriteString("\n\n")
	}
	out.WriteString(dimStyle.Render(widgets.RenderKeyHelp(keyHelp(m.Jukebox.Mode()))))
	out.WriteString("\n")
	return out.String()
}

// position is the header field: the list entry while browsing, the
// playing file otherwise
func (m Model) position() string {
	if m.Jukebox.Mode() == jukebox.PlaybackMode {
		return m.Jukebox.Selected()
	}
	return fmt.Sprintf("#%d", m.Jukebox.Cursor()+1)
}

func keyHelp(mode jukebox.Mode) []widgets.KeySection {
	if mode == jukebox.PlaybackMode {
		return []widgets.KeySection{{
			Title: "Playing",
			Keys: []widgets.KeyBinding{
				{Key: "← h", Desc: "rewind"},
				{Key: "→ l", Desc: "stop"},
				{Key: "↑ k", Desc: "pause"},
				{Key: "↓ j", Desc: "resume"},
				{Key: "q", Desc: "quit"},
			},
		}}
	}
	return []widgets.KeySection{{
		Title: "Browse",
		Keys: []widgets.KeyBinding{
			{Key: "← h / → l", Desc: "previous / next"},
			{Key: "↑ k / ↓ j", Desc: "first / last"},
			{Key: "enter", Desc: "play"},
			{Key: "q", Desc: "quit"},
		},
	}}
}

// NoteMap turns the config's button->note table into a lookup by note
func NoteMap(names map[string]uint8) (map[uint8]buttons.Button, error) {
	notes := make(map[uint8]buttons.Button, len(names))
	for name, note := range names {
		b, err := buttons.Parse(name)
		if err != nil {
			return nil, err
		}
		if prev, dup := notes[note]; dup {
			return nil, fmt.Errorf("note %d mapped to both %s and %s", note, prev, b)
		}
		notes[note] = b
	}
	return notes, nil
}
