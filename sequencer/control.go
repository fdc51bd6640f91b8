package sequencer

import (
	"sync"

	"github.com/charmbracelet/log"

	"monoseq/clock"
	"monoseq/config"
	"monoseq/debug"
	"monoseq/scale"
)

// Display is the physical brightness buffer: row 0 is the control row,
// rows 1-7 mirror the viewport. Values are 0-15.
type Display [Rows][Cols]uint8

// Raise lifts a cell to at least level. Overlays raise, never lower.
func (d *Display) Raise(x, y int, level uint8) {
	if d[y][x] < level {
		d[y][x] = level
	}
}

// Control owns the tracker and the virtual grid, turns pad events into
// edits, and assembles the display buffer each redraw. It runs on the
// control goroutine only; the render side is reached exclusively through
// the message queue.
type Control struct {
	mu      sync.Mutex // input and redraw arrive on different goroutines
	tracker *Tracker
	grid    *VirtualGrid
	sender  *Sender
	clk     *clock.Reader
	tune    config.Tuning
	logger  *log.Logger

	// notify wakes the UI after a state change; len-1, drop on busy
	notify chan struct{}
}

// NewControl wires the control plane over an existing grid and queue.
func NewControl(g *VirtualGrid, sender *Sender, clk *clock.Reader, tune config.Tuning, logger *log.Logger) *Control {
	return &Control{
		tracker: NewTracker(Cols, Rows),
		grid:    g,
		sender:  sender,
		clk:     clk,
		tune:    tune,
		logger:  logger,
		notify:  make(chan struct{}, 1),
	}
}

// Grid exposes the virtual grid for read-side consumers (UI).
func (c *Control) Grid() *VirtualGrid { return c.grid }

// Updates signals that the display needs a redraw.
func (c *Control) Updates() <-chan struct{} { return c.notify }

// ShiftHeld reports the navigation modifier state.
func (c *Control) ShiftHeld() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tracker.ShiftHeld()
}

// HandlePad feeds one press or release into the tracker and dispatches
// the resulting action.
func (c *Control) HandlePad(x, y int, down bool) {
	if x < 0 || x >= Cols || y < 0 || y >= Rows {
		debug.Log("pad", "out of range x=%d y=%d", x, y)
		return
	}

	c.mu.Lock()
	if down {
		c.tracker.Down(x, y)
		c.mu.Unlock()
		return
	}

	act := c.tracker.Up(x, y)
	switch act.Kind {
	case ActionTick:
		c.applyTick(act.X, act.Y)
	case ActionMove:
		c.grid.Pan(act.DX*Cols, act.DY*MusicalRows)
	case ActionResize:
		width := act.Bars * 16
		c.grid.Resize(width)
		c.sender.Send(Message{Kind: MsgResize, Width: width})
	case ActionNothing:
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()
	c.poke()
}

// applyTick edits the grid locally and mirrors the edit to the render
// side in logical coordinates, with the pitch resolved here.
func (c *Control) applyTick(vx, vy int) {
	col, row, active := c.grid.Tick(vx, vy)
	pitch := c.grid.PitchAt(row)
	c.sender.Send(Message{
		Kind:   MsgTick,
		Column: col,
		Row:    row,
		Volts:  pitch.Volts(),
	})
	if active {
		debug.Log("tick", "set col=%d row=%d %s", col, row, pitch.Name)
	} else {
		debug.Log("tick", "clear col=%d row=%d", col, row)
	}
}

// SetTempo pushes a tempo change toward the clock via the render side.
func (c *Control) SetTempo(bpm float64) {
	if bpm <= 0 {
		return
	}
	c.sender.Send(Message{Kind: MsgTempoChange, Tempo: bpm})
	c.poke()
}

// SetScale swaps the playing scale. The sequence is cleared on both sides;
// the old rows index a pitch table that no longer exists.
func (c *Control) SetScale(sc *scale.Scale) {
	c.mu.Lock()
	c.grid.SetScale(sc)
	c.mu.Unlock()
	c.sender.Send(Message{Kind: MsgScaleChange, Scale: sc})
	c.logger.Info("scale changed", "scale", sc.Name())
	c.poke()
}

// Start and Stop are reserved transport hooks; the render side accepts
// them without effect.
func (c *Control) Start() { c.sender.Send(Message{Kind: MsgStart}) }
func (c *Control) Stop()  { c.sender.Send(Message{Kind: MsgStop}) }

// Tempo returns the clock's current tempo.
func (c *Control) Tempo() float64 { return c.clk.Tempo() }

// PlayheadColumn returns the logical step the clock is on right now.
func (c *Control) PlayheadColumn() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playheadLocked()
}

func (c *Control) playheadLocked() int {
	sixteenth := int(c.clk.Beat() * 4)
	return sixteenth % c.grid.Width()
}

// RenderDisplay assembles the outbound display buffer: viewport blit,
// control-row indicator, then the playhead overlay.
func (c *Control) RenderDisplay(d *Display) {
	c.mu.Lock()
	defer c.mu.Unlock()
	*d = Display{}

	var view [MusicalRows][Cols]uint8
	c.grid.RenderViewport(&view)
	for vy := 0; vy < MusicalRows; vy++ {
		d[vy+1] = view[vy]
	}

	c.renderIndicator(d)

	// playhead, musical rows only, and only when scrolled into view
	offX, _ := c.grid.Offset()
	play := c.playheadLocked()
	if play >= offX && play < offX+Cols {
		x := play - offX
		for y := 1; y < Rows; y++ {
			d.Raise(x, y, c.tune.PlayheadLevel)
		}
	}
}

// Status is a point-in-time snapshot for the UI
type Status struct {
	Tempo  float64
	Width  int
	Octave int
	Scale  string
	Shift  bool
}

// Status captures the control-side state for display.
func (c *Control) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Status{
		Tempo:  c.clk.Tempo(),
		Width:  c.grid.Width(),
		Octave: c.grid.CurrentOctave(),
		Scale:  c.grid.ScaleName(),
		Shift:  c.tracker.ShiftHeld(),
	}
}

// renderIndicator lights the control row: the octave band, or the bar
// preset while shift is held.
func (c *Control) renderIndicator(d *Display) {
	if c.tracker.ShiftHeld() {
		bars := c.grid.Width() / 16
		for i, preset := range resizeBars {
			if preset == bars {
				d.Raise(i, 0, c.tune.IndicatorLevel)
			}
		}
		return
	}
	d.Raise(c.grid.CurrentOctave(), 0, c.tune.IndicatorLevel)
}

func (c *Control) poke() {
	select {
	case c.notify <- struct{}{}:
	default:
	}
}
