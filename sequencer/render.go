package sequencer

import (
	"math"

	"monoseq/clock"
	"monoseq/debug"
	"monoseq/engine"
)

// voltRange is the representable CV span of the pitch output. Written
// samples are normalized volts: 0V -> 0.0, voltRange -> 1.0.
const voltRange = 10.0

// step is one slot of the render-side sequence. The row mirrors the
// control side's toggle key; volts were resolved at send time.
type step struct {
	active bool
	row    int32
	volts  float64
}

// Renderer is the render plane. It runs once per audio block inside the
// real-time callback: drains at most one message, sweeps the trigger and
// pitch outputs frame by frame, then advances the shared clock. The step
// array is fixed capacity; nothing on this path allocates or blocks.
type Renderer struct {
	msgs <-chan Message
	wr   *clock.Writer
	rd   *clock.Reader

	steps  [MaxWidth]step
	length int

	tempo       float64 // informational; timing is driven by the clock
	gateSeconds float64
	lastVolts   float64

	disconnected bool
}

// NewRenderer builds the render plane for a step buffer of width slots.
func NewRenderer(msgs <-chan Message, wr *clock.Writer, rd *clock.Reader, width int, gateMillis float64) *Renderer {
	if width < 16 {
		width = 16
	}
	if width > MaxWidth {
		width = MaxWidth
	}
	return &Renderer{
		msgs:        msgs,
		wr:          wr,
		rd:          rd,
		length:      width,
		tempo:       rd.Tempo(),
		gateSeconds: gateMillis / 1000.0,
	}
}

// Render processes one audio block. Hard real-time.
func (r *Renderer) Render(b *engine.Block) {
	r.drainOne()

	trig := b.Out[b.Trigger.Channel]
	pitch := b.Out[b.Pitch.Channel]

	if r.length == 0 {
		for i := 0; i < b.Frames; i++ {
			trig[i] = 0
			pitch[i] = 0
		}
		r.wr.Increment(b.Frames)
		return
	}

	// one beat is four sixteenth steps
	sixteenth := r.rd.Beat() * 4
	stepsPerSecond := r.rd.Tempo() / 60.0 * 4
	gateFrac := r.gateSeconds * stepsPerSecond

	// Trigger and pitch sweep separately: the domains may run at
	// different rates, so each advances by its own per-frame period.
	pos := sixteenth
	perFrame := stepsPerSecond / b.Trigger.SampleRate
	for i := 0; i < b.Frames; i++ {
		idx := int(pos) % r.length
		if r.steps[idx].active && pos-math.Floor(pos) < gateFrac {
			trig[i] = 1
		} else {
			trig[i] = 0
		}
		pos += perFrame
	}

	pos = sixteenth
	perFrame = stepsPerSecond / b.Pitch.SampleRate
	for i := 0; i < b.Frames; i++ {
		idx := int(pos) % r.length
		if s := &r.steps[idx]; s.active {
			// sample and hold: the voltage only moves on a step
			// that carries a note
			r.lastVolts = s.volts
		}
		pitch[i] = normalizeVolts(r.lastVolts)
		pos += perFrame
	}

	// advance exactly once, after all reads for this block
	r.wr.Increment(b.Frames)
}

// drainOne pops at most one pending message without blocking.
func (r *Renderer) drainOne() {
	select {
	case m, ok := <-r.msgs:
		if !ok {
			// non-fatal: keep playing the last-known sequence
			if !r.disconnected {
				r.disconnected = true
				debug.Log("render", "message queue disconnected; holding last state")
			}
			r.msgs = nil
			return
		}
		r.apply(m)
	default:
	}
}

func (r *Renderer) apply(m Message) {
	switch m.Kind {
	case MsgTick:
		s := &r.steps[m.Column]
		if s.active && int(s.row) == m.Row {
			s.active = false
		} else {
			s.active = true
			s.row = int32(m.Row)
			s.volts = m.Volts
		}

	case MsgResize:
		width := m.Width
		if width < 16 {
			width = 16
		}
		if width > MaxWidth {
			width = MaxWidth
		}
		// slots exposed by growth start empty
		for c := r.length; c < width; c++ {
			r.steps[c] = step{}
		}
		r.length = width

	case MsgScaleChange:
		// resolved pitches index the old table; drop them
		for c := range r.steps[:r.length] {
			r.steps[c] = step{}
		}

	case MsgTempoChange:
		r.tempo = m.Tempo
		r.wr.SetTempo(m.Tempo)

	case MsgStart, MsgStop:
		// reserved transport hooks
	}
}

// StepCount reports the current step buffer length.
func (r *Renderer) StepCount() int { return r.length }

// normalizeVolts maps a CV value into the output's [0,1] range, clamping
// defensively: the scale provider keeps volts in range by construction,
// but an out-of-range value must never reach the DAC unclamped.
func normalizeVolts(v float64) float32 {
	if v < 0 {
		v = 0
	}
	if v > voltRange {
		v = voltRange
	}
	return float32(v / voltRange)
}
