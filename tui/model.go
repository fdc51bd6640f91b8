package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"monoseq/grid"
	"monoseq/scale"
	"monoseq/sequencer"
	"monoseq/theme"
	"monoseq/widgets"
)

// redraw rate for the playhead when nothing else changes
const fps = 30

// scaleCycle is the keyboard rotation order. Names match what scale.Parse
// reports, so the current scale is found again on the next keypress.
var scaleCycle = []string{
	"B minor pentatonic",
	"C major",
	"A minor",
	"D dorian",
	"G mixolydian",
	"E major pentatonic",
	"A harmonic minor",
}

type Model struct {
	Control *sequencer.Control
	Theme   *theme.Theme

	frame    sequencer.Display
	status   sequencer.Status
	gridID   string
	playing  bool
	quitting bool
}

type UpdateMsg struct{}

type TickMsg time.Time

type DeviceEventMsg grid.DeviceEvent

func NewModel(control *sequencer.Control, th *theme.Theme) Model {
	m := Model{Control: control, Theme: th}
	m.refresh()
	return m
}

func ListenForUpdates(control *sequencer.Control) tea.Cmd {
	return func() tea.Msg {
		<-control.Updates()
		return UpdateMsg{}
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/fps, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		ListenForUpdates(m.Control),
		tick(),
	)
}

func (m *Model) refresh() {
	m.Control.RenderDisplay(&m.frame)
	m.status = m.Control.Status()
}

// tap simulates a press/release pair on one pad
func (m *Model) tap(x, y int) {
	m.Control.HandlePad(x, y, true)
	m.Control.HandlePad(x, y, false)
}

// tapShifted taps a control-row pad while holding the shift pad
func (m *Model) tapShifted(x int) {
	m.Control.HandlePad(sequencer.ColShift, 0, true)
	m.tap(x, 0)
	m.Control.HandlePad(sequencer.ColShift, 0, false)
}

// cycleScale switches to the next scale in the rotation. The sequence is
// cleared on change, so this is deliberately a single explicit key.
func (m *Model) cycleScale() {
	next := scaleCycle[0]
	for i, name := range scaleCycle {
		if name == m.status.Scale {
			next = scaleCycle[(i+1)%len(scaleCycle)]
			break
		}
	}
	sc, err := scale.Parse(next)
	if err != nil {
		return
	}
	m.Control.SetScale(sc)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case " ":
			if m.playing {
				m.Control.Stop()
			} else {
				m.Control.Start()
			}
			m.playing = !m.playing

		case "h", "left":
			m.tap(sequencer.ColPanLeft, 0)
		case "l", "right":
			m.tap(sequencer.ColPanRight, 0)
		case "k", "up":
			m.tap(sequencer.ColPanUp, 0)
		case "j", "down":
			m.tap(sequencer.ColPanDown, 0)

		case "1":
			m.tapShifted(0)
		case "2":
			m.tapShifted(1)
		case "3":
			m.tapShifted(2)
		case "4":
			m.tapShifted(3)

		case "t":
			m.Control.SetTempo(m.status.Tempo - 2)
		case "T":
			m.Control.SetTempo(m.status.Tempo + 2)

		case "s":
			m.cycleScale()
		}
		m.refresh()
		return m, nil

	case UpdateMsg:
		m.refresh()
		return m, ListenForUpdates(m.Control)

	case TickMsg:
		m.refresh()
		return m, tick()

	case DeviceEventMsg:
		switch msg.Type {
		case grid.DeviceConnected:
			m.gridID = msg.ID
		case grid.DeviceDisconnected:
			if m.gridID == msg.ID {
				m.gridID = ""
			}
		}
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return "bye\n"
	}

	surface := "no grid connected (keyboard input only)"
	if m.gridID != "" {
		surface = m.gridID
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(m.Theme.Accent())
	statusStyle := lipgloss.NewStyle().Foreground(m.Theme.FG())

	out := titleStyle.Render("monoseq") + "\n"
	out += statusStyle.Render(fmt.Sprintf(
		"%s  %g bpm  %d steps  octave %d  |  %s",
		m.status.Scale, m.status.Tempo, m.status.Width, m.status.Octave, surface,
	)) + "\n\n"

	out += widgets.RenderFrame(m.Theme, (*[8][16]uint8)(&m.frame)) + "\n\n"

	out += widgets.RenderKeyHelp(m.Theme, []widgets.KeySection{
		{Title: "Pan", Keys: []widgets.KeyBinding{
			{Key: "h/j/k/l", Desc: "pan viewport"},
		}},
		{Title: "Pattern", Keys: []widgets.KeyBinding{
			{Key: "1-4", Desc: "length 1/2/4/8 bars"},
			{Key: "s", Desc: "next scale"},
		}},
		{Title: "Transport", Keys: []widgets.KeyBinding{
			{Key: "t / T", Desc: "tempo -/+"},
			{Key: "space", Desc: "start/stop"},
			{Key: "q", Desc: "quit"},
		}},
	})

	return out
}
