package grid

import (
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"monoseq/debug"
)

// MIDIGrid speaks the note-per-pad convention used by monome-style MIDI
// bridges: note = y*16 + x covers the whole 16x8 surface, NoteOn with
// velocity > 0 is a press, NoteOff (or velocity 0) is a release. LED
// brightness goes back out as NoteOn velocity, scaled from 0-15 to 0-127.
type MIDIGrid struct {
	id       string
	send     func(msg gomidi.Message) error
	stopFunc func()

	events chan PadEvent
	prev   Frame
	lit    bool // prev holds a real frame
}

// NewMIDIGrid opens a pad surface on the given in/out port pair.
func NewMIDIGrid(id string, inPort drivers.In, outPort drivers.Out) (*MIDIGrid, error) {
	g := &MIDIGrid{
		id:     id,
		events: make(chan PadEvent, 32),
	}

	if outPort != nil {
		send, err := gomidi.SendTo(outPort)
		if err != nil {
			return nil, fmt.Errorf("grid: open output: %w", err)
		}
		g.send = send
	}

	if inPort != nil {
		stop, err := gomidi.ListenTo(inPort, func(msg gomidi.Message, timestampms int32) {
			var channel, note, velocity uint8

			switch {
			case msg.GetNoteOn(&channel, &note, &velocity) && velocity > 0:
				g.emit(note, true)
			case msg.GetNoteOn(&channel, &note, &velocity): // velocity 0
				g.emit(note, false)
			case msg.GetNoteOff(&channel, &note, &velocity):
				g.emit(note, false)
			}
		})
		if err != nil {
			return nil, fmt.Errorf("grid: open input: %w", err)
		}
		g.stopFunc = stop
	}

	return g, nil
}

func (g *MIDIGrid) emit(note uint8, down bool) {
	x, y := int(note)%Cols, int(note)/Cols
	if y >= Rows {
		return
	}
	select {
	case g.events <- PadEvent{X: x, Y: y, Down: down}:
	default:
		// input burst beyond the buffer; drop rather than stall MIDI
		debug.Log("grid", "dropped pad event x=%d y=%d", x, y)
	}
}

func (g *MIDIGrid) ID() string {
	return g.id
}

func (g *MIDIGrid) Events() <-chan PadEvent {
	return g.events
}

// SetFrame transmits the cells that changed since the last frame.
func (g *MIDIGrid) SetFrame(f *Frame) error {
	if g.send == nil {
		return nil
	}

	sent := 0
	for y := 0; y < Rows; y++ {
		for x := 0; x < Cols; x++ {
			if g.lit && g.prev[y][x] == f[y][x] {
				continue
			}
			note := uint8(y*Cols + x)
			if err := g.send(gomidi.NoteOn(0, note, levelToVelocity(f[y][x]))); err != nil {
				return err
			}
			sent++
		}
	}
	g.prev = *f
	g.lit = true

	if sent > 0 {
		debug.Log("led", "frame diff sent=%d", sent)
	}
	return nil
}

func (g *MIDIGrid) Close() error {
	// blank the surface before letting go
	if g.send != nil {
		var dark Frame
		g.lit = false
		g.SetFrame(&dark)
	}
	if g.stopFunc != nil {
		g.stopFunc()
	}
	close(g.events)
	return nil
}

// levelToVelocity spreads brightness 0-15 across the 0-127 velocity range
func levelToVelocity(level uint8) uint8 {
	if level > 15 {
		level = 15
	}
	if level == 0 {
		return 0
	}
	return level*8 + 7
}
