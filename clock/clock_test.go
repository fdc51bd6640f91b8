package clock

import "testing"

func TestBeatDerivation(t *testing.T) {
	wr, rd := New(120, 44100)

	if b := rd.Beat(); b != 0 {
		t.Fatalf("beat at start = %g", b)
	}

	// 120 BPM at 44100 Hz: one beat is 22050 samples
	wr.Increment(22050)
	if b := rd.Beat(); b != 1.0 {
		t.Errorf("beat after one beat of samples = %g", b)
	}

	wr.Increment(11025)
	if b := rd.Beat(); b != 1.5 {
		t.Errorf("beat = %g, want 1.5", b)
	}
}

func TestIncrementAccumulates(t *testing.T) {
	wr, rd := New(60, 1000)

	// 60 BPM at 1000 Hz: one beat per 1000 samples, in uneven blocks
	for _, frames := range []int{64, 128, 256, 552} {
		wr.Increment(frames)
	}
	if b := rd.Beat(); b != 1.0 {
		t.Errorf("beat = %g, want 1.0", b)
	}
}

func TestSetTempo(t *testing.T) {
	wr, rd := New(120, 44100)
	wr.Increment(44100)

	wr.SetTempo(60)
	if got := rd.Tempo(); got != 60 {
		t.Errorf("tempo = %g", got)
	}
	// one second of samples at 60 BPM is one beat
	if b := rd.Beat(); b != 1.0 {
		t.Errorf("beat = %g, want 1.0", b)
	}

	// non-positive tempo is ignored
	wr.SetTempo(0)
	if got := rd.Tempo(); got != 60 {
		t.Errorf("tempo after SetTempo(0) = %g", got)
	}
}

func TestReaderCopiesShareClock(t *testing.T) {
	wr, rd := New(120, 44100)
	rd2 := *rd

	wr.Increment(22050)
	if rd.Beat() != rd2.Beat() {
		t.Error("reader copies disagree")
	}
}
