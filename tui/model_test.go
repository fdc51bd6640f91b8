package tui

import (
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"monoseq/clock"
	"monoseq/config"
	"monoseq/scale"
	"monoseq/sequencer"
	"monoseq/theme"
)

func testModel(t *testing.T) Model {
	t.Helper()
	sc, err := scale.Parse("B minor pentatonic")
	if err != nil {
		t.Fatal(err)
	}
	tune := config.DefaultConfig().Tune
	g, err := sequencer.NewVirtualGrid(32, sc, tune)
	if err != nil {
		t.Fatal(err)
	}
	sender, _ := sequencer.NewQueue()
	_, rd := clock.New(120, 44100)
	control := sequencer.NewControl(g, sender, rd, tune, log.New(io.Discard))
	return NewModel(control, theme.New(theme.Varibright()))
}

func press(m Model, key rune) Model {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{key}})
	return next.(Model)
}

func TestScaleCycleKey(t *testing.T) {
	m := testModel(t)

	m = press(m, 's')
	if got := m.Control.Status().Scale; got != "C major" {
		t.Fatalf("scale after one cycle = %q, want %q", got, "C major")
	}

	m = press(m, 's')
	if got := m.Control.Status().Scale; got != "A minor" {
		t.Fatalf("scale after two cycles = %q, want %q", got, "A minor")
	}
}

func TestScaleCycleWraps(t *testing.T) {
	m := testModel(t)

	for range scaleCycle {
		m = press(m, 's')
	}
	if got := m.Control.Status().Scale; got != scaleCycle[0] {
		t.Fatalf("scale after a full cycle = %q, want %q", got, scaleCycle[0])
	}
}

func TestPanKeys(t *testing.T) {
	m := testModel(t)
	offX, _ := m.Control.Grid().Offset()

	m = press(m, 'l')
	if x, _ := m.Control.Grid().Offset(); x != offX+sequencer.Cols {
		t.Errorf("offset x = %d after pan right, want %d", x, offX+sequencer.Cols)
	}
	m = press(m, 'h')
	if x, _ := m.Control.Grid().Offset(); x != offX {
		t.Errorf("offset x = %d after pan back, want %d", x, offX)
	}
}
