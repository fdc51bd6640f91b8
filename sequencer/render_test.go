package sequencer

import (
	"testing"

	"monoseq/clock"
	"monoseq/engine"
)

// test rig: 60 BPM at 1000 Hz means one step (sixteenth) is 250 frames and
// the 10ms gate is 10 frames.
func testRenderer(width int) (*Renderer, *Sender) {
	sender, msgs := NewQueue()
	wr, rd := clock.New(60, 1000)
	r := NewRenderer(msgs, wr, rd, width, 10)
	return r, sender
}

func render(r *Renderer, frames int) (trig, pitch []float32) {
	b := &engine.Block{
		Frames:  frames,
		Trigger: engine.Domain{Kind: engine.KindDigital, SampleRate: 1000, Channel: 0},
		Pitch:   engine.Domain{Kind: engine.KindAnalog, SampleRate: 1000, Channel: 1},
		Out:     [][]float32{make([]float32, frames), make([]float32, frames)},
	}
	r.Render(b)
	return b.Out[0], b.Out[1]
}

func TestTriggerTiming(t *testing.T) {
	r, sender := testRenderer(16)
	sender.Send(Message{Kind: MsgTick, Column: 0, Row: 3, Volts: 2.0})

	// one full bar: 16 steps of 250 frames
	trig, _ := render(r, 4000)

	// the gate is high for the first 10 frames of step 0 and nowhere
	// else; the frame at the exact gate boundary is skipped, it sits on
	// a floating-point knife edge
	for i := 0; i < 10; i++ {
		if trig[i] != 1 {
			t.Errorf("frame %d: trigger %g, want 1", i, trig[i])
		}
	}
	for i := 11; i < 4000; i++ {
		if trig[i] != 0 {
			t.Errorf("frame %d: trigger %g, want 0", i, trig[i])
			break
		}
	}
}

func TestTriggerWraps(t *testing.T) {
	r, sender := testRenderer(16)
	sender.Send(Message{Kind: MsgTick, Column: 0, Row: 3, Volts: 2.0})

	// first bar consumes the message; second bar must pulse again
	render(r, 4000)
	trig, _ := render(r, 4000)
	for i := 0; i < 10; i++ {
		if trig[i] != 1 {
			t.Errorf("second bar frame %d: trigger %g, want 1", i, trig[i])
		}
	}
}

func TestPitchSampleAndHold(t *testing.T) {
	r, sender := testRenderer(16)
	sender.Send(Message{Kind: MsgTick, Column: 0, Row: 3, Volts: 2.0})
	sender.Send(Message{Kind: MsgTick, Column: 4, Row: 7, Volts: 3.0})

	// two short blocks drain the two messages before the bar of interest
	render(r, 1)
	render(r, 1)

	_, pitch := render(r, 3998) // rest of the bar, still inside step 0 at start

	want0 := float32(2.0 / voltRange)
	want4 := float32(3.0 / voltRange)

	// steps 0-3 hold the first voltage (block starts 2 frames in)
	if pitch[0] != want0 || pitch[995] != want0 {
		t.Errorf("early bar pitch = %g, %g, want %g", pitch[0], pitch[995], want0)
	}
	// step 4 begins at absolute frame 1000 = index 998; check clear of
	// the boundary on both sides
	if pitch[996] != want0 {
		t.Errorf("pitch before step 4 = %g, want %g", pitch[996], want0)
	}
	if pitch[1000] != want4 {
		t.Errorf("pitch entering step 4 = %g, want %g", pitch[1000], want4)
	}
	// empty steps 5-15 keep holding the last voltage
	if pitch[3995] != want4 {
		t.Errorf("held pitch = %g, want %g", pitch[3995], want4)
	}
}

func TestMessageFIFO(t *testing.T) {
	r, sender := testRenderer(32)

	const n = 5
	for col := 0; col < n; col++ {
		sender.Send(Message{Kind: MsgTick, Column: col, Row: col, Volts: float64(col)})
	}

	// one message drains per render call, in send order
	for call := 1; call <= n; call++ {
		render(r, 16)
		for col := 0; col < n; col++ {
			want := col < call
			if r.steps[col].active != want {
				t.Fatalf("after %d calls: steps[%d].active = %v, want %v", call, col, r.steps[col].active, want)
			}
		}
	}
}

func TestTickToggleMirrorsControlSide(t *testing.T) {
	r, sender := testRenderer(16)

	// set, clear (same row), then move (different row)
	sender.Send(Message{Kind: MsgTick, Column: 2, Row: 5, Volts: 1.0})
	render(r, 1)
	if !r.steps[2].active {
		t.Fatal("step 2 should be active")
	}

	sender.Send(Message{Kind: MsgTick, Column: 2, Row: 5, Volts: 1.0})
	render(r, 1)
	if r.steps[2].active {
		t.Fatal("step 2 should have toggled off")
	}

	sender.Send(Message{Kind: MsgTick, Column: 2, Row: 5, Volts: 1.0})
	render(r, 1)
	sender.Send(Message{Kind: MsgTick, Column: 2, Row: 6, Volts: 1.5})
	render(r, 1)
	if !r.steps[2].active || r.steps[2].row != 6 || r.steps[2].volts != 1.5 {
		t.Fatalf("step 2 = %+v, want active at row 6", r.steps[2])
	}
}

func TestResizeMessage(t *testing.T) {
	r, sender := testRenderer(32)

	sender.Send(Message{Kind: MsgTick, Column: 20, Row: 1, Volts: 1.0})
	render(r, 1)

	sender.Send(Message{Kind: MsgResize, Width: 16})
	render(r, 1)
	if r.StepCount() != 16 {
		t.Fatalf("length = %d", r.StepCount())
	}

	// growth exposes empty slots, not the truncated note
	sender.Send(Message{Kind: MsgResize, Width: 32})
	render(r, 1)
	if r.steps[20].active {
		t.Error("truncated step resurrected by growth")
	}
}

func TestTempoChangeMessage(t *testing.T) {
	r, sender := testRenderer(16)

	sender.Send(Message{Kind: MsgTempoChange, Tempo: 90})
	render(r, 1)
	if r.tempo != 90 {
		t.Errorf("stored tempo = %g", r.tempo)
	}
	if got := r.rd.Tempo(); got != 90 {
		t.Errorf("clock tempo = %g", got)
	}
}

func TestStartStopAccepted(t *testing.T) {
	r, sender := testRenderer(16)

	sender.Send(Message{Kind: MsgStart})
	sender.Send(Message{Kind: MsgStop})
	render(r, 16)
	render(r, 16)
	// reserved hooks: no observable effect, no panic
}

func TestDisconnectedQueueNonFatal(t *testing.T) {
	r, sender := testRenderer(16)

	sender.Send(Message{Kind: MsgTick, Column: 0, Row: 0, Volts: 2.0})
	render(r, 250)
	sender.Close()

	// rendering continues on the last-known sequence
	trig, pitch := render(r, 250)
	if !r.disconnected {
		t.Error("disconnect not noticed")
	}
	if pitch[0] != float32(2.0/voltRange) {
		t.Errorf("pitch after disconnect = %g", pitch[0])
	}
	_ = trig

	// further renders stay quiet about it
	render(r, 250)
}

func TestVoltClamp(t *testing.T) {
	if normalizeVolts(-1) != 0 {
		t.Error("negative volts not clamped to 0")
	}
	if normalizeVolts(voltRange+5) != 1 {
		t.Error("overrange volts not clamped to full scale")
	}
	if got := normalizeVolts(5); got != 0.5 {
		t.Errorf("mid-scale = %g", got)
	}
}

func TestClockAdvancesOncePerBlock(t *testing.T) {
	r, _ := testRenderer(16)

	render(r, 300)
	// 300 frames at 60 BPM / 1000 Hz is 0.3 beats
	if b := r.rd.Beat(); b != 0.3 {
		t.Errorf("beat = %g, want 0.3", b)
	}
}
