// Package clock provides the shared audio-rate clock: a single sample
// counter advanced once per audio block by the render side, read from any
// goroutine as a musical beat position. No locks; the counter and tempo are
// single atomic values, so readers never observe a partial write.
package clock

import "go.uber.org/atomic"

type state struct {
	samples    atomic.Uint64
	tempo      atomic.Float64
	sampleRate float64
}

// Writer advances the clock. Owned by the render plane: Increment must be
// called exactly once per audio block, after all beat reads for that block.
type Writer struct {
	s *state
}

// Reader derives the beat position from the shared counter. Copies of a
// Reader all observe the same clock.
type Reader struct {
	s *state
}

// New creates a clock pair for the given tempo (BPM) and sample rate.
func New(tempo float64, sampleRate int) (*Writer, *Reader) {
	s := &state{sampleRate: float64(sampleRate)}
	s.tempo.Store(tempo)
	return &Writer{s: s}, &Reader{s: s}
}

// Increment advances the sample counter by one block's worth of frames.
func (w *Writer) Increment(frames int) {
	w.s.samples.Add(uint64(frames))
}

// SetTempo updates the tempo driving the samples-to-beats conversion.
func (w *Writer) SetTempo(bpm float64) {
	if bpm > 0 {
		w.s.tempo.Store(bpm)
	}
}

// Beat returns the current beat position (quarter notes since start).
func (r *Reader) Beat() float64 {
	return float64(r.s.samples.Load()) * r.s.tempo.Load() / (60.0 * r.s.sampleRate)
}

// Tempo returns the current tempo in BPM.
func (r *Reader) Tempo() float64 {
	return r.s.tempo.Load()
}

// SampleRate returns the rate the counter is advanced at.
func (r *Reader) SampleRate() float64 {
	return r.s.sampleRate
}
