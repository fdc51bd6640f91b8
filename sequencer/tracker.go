package sequencer

// Physical surface dimensions. Row 0 is the control row; rows 1-7 are the
// musical viewport.
const (
	Cols        = 16
	Rows        = 8
	MusicalRows = Rows - 1
)

// Control-row layout
const (
	ColPanLeft  = 0
	ColPanRight = 1
	ColPanUp    = 2
	ColPanDown  = 3
	ColShift    = Cols - 1
)

// Resize presets reachable from the pan columns while shift is held
var resizeBars = [4]int{1, 2, 4, 8}

// Intent is what a cell's press has armed, consumed on release
type Intent uint8

const (
	IntentNothing Intent = iota
	IntentTick
)

// ActionKind tags the semantic action produced by a release
type ActionKind uint8

const (
	ActionNothing ActionKind = iota
	ActionTick
	ActionMove
	ActionResize
)

// Action is one semantic step produced by the tracker. Tick carries
// viewport coordinates with Y already translated to a 0-based musical row;
// Move carries a direction in whole viewports; Resize carries bars.
type Action struct {
	Kind   ActionKind
	X, Y   int
	DX, DY int
	Bars   int
}

// Tracker turns raw per-cell press/release pairs into actions. A release
// with no recorded press yields Nothing; coordinates are the caller's
// contract and are not range-checked here.
type Tracker struct {
	width, height int
	intents       []Intent
}

// NewTracker creates a tracker for a width x height button surface.
func NewTracker(width, height int) *Tracker {
	return &Tracker{
		width:   width,
		height:  height,
		intents: make([]Intent, width*height),
	}
}

func (t *Tracker) idx(x, y int) int {
	return y*t.width + x
}

// Down records press intent. On the control row only the shift cell arms;
// every musical cell arms a tick.
func (t *Tracker) Down(x, y int) {
	if y == 0 {
		if x == ColShift {
			t.intents[t.idx(x, y)] = IntentTick
		} else {
			t.intents[t.idx(x, y)] = IntentNothing
		}
		return
	}
	t.intents[t.idx(x, y)] = IntentTick
}

// Up consumes the cell's intent and returns the resulting action.
func (t *Tracker) Up(x, y int) Action {
	armed := t.intents[t.idx(x, y)]
	t.intents[t.idx(x, y)] = IntentNothing

	if y == 0 {
		return t.controlUp(x)
	}

	if armed != IntentTick {
		// stray release, e.g. a press that predates startup
		return Action{Kind: ActionNothing}
	}
	return Action{Kind: ActionTick, X: x, Y: y - 1}
}

// ShiftHeld reports whether the shift cell is currently armed.
func (t *Tracker) ShiftHeld() bool {
	return t.intents[t.idx(ColShift, 0)] == IntentTick
}

func (t *Tracker) controlUp(x int) Action {
	if t.ShiftHeld() {
		if x >= 0 && x < len(resizeBars) {
			return Action{Kind: ActionResize, Bars: resizeBars[x]}
		}
		return Action{Kind: ActionNothing}
	}

	switch x {
	case ColPanLeft:
		return Action{Kind: ActionMove, DX: -1}
	case ColPanRight:
		return Action{Kind: ActionMove, DX: 1}
	case ColPanUp:
		return Action{Kind: ActionMove, DY: -1}
	case ColPanDown:
		return Action{Kind: ActionMove, DY: 1}
	}
	return Action{Kind: ActionNothing}
}
