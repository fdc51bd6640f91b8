package sequencer

import (
	"go.uber.org/atomic"

	"monoseq/debug"
	"monoseq/scale"
)

// MsgKind tags the Message variant
type MsgKind uint8

const (
	MsgTick MsgKind = iota
	MsgScaleChange
	MsgResize
	MsgStart
	MsgStop
	MsgTempoChange
)

// Message carries one edit from the control side to the render side. Values
// are fully resolved before sending (the pitch voltage is looked up on the
// control side) so the render plane never touches the scale tables.
type Message struct {
	Kind   MsgKind
	Column int     // MsgTick
	Row    int     // MsgTick: logical row, for mirroring the toggle
	Volts  float64 // MsgTick: pitch CV resolved at send time
	Width  int     // MsgResize
	Tempo  float64 // MsgTempoChange
	Scale  *scale.Scale
}

// queueDepth bounds the edit backlog. The render side drains one message
// per audio block, so a burst larger than this is dropped, not blocked on.
const queueDepth = 128

// NewQueue creates the single-producer/single-consumer message channel.
func NewQueue() (*Sender, <-chan Message) {
	ch := make(chan Message, queueDepth)
	return &Sender{ch: ch}, ch
}

// Sender is the control-plane end of the queue. Send never blocks and is
// safe from multiple goroutines (pad input and UI keys both produce).
type Sender struct {
	ch      chan Message
	dropped atomic.Uint64
}

// Send enqueues a message, dropping it if the queue is full.
func (s *Sender) Send(m Message) {
	select {
	case s.ch <- m:
	default:
		n := s.dropped.Add(1)
		debug.Log("queue", "dropped message kind=%d (total %d)", m.Kind, n)
	}
}

// Close ends the queue. The render side treats a closed queue as a
// disconnect and keeps playing its last-known state.
func (s *Sender) Close() {
	close(s.ch)
}

// Dropped reports how many messages were discarded on a full queue.
func (s *Sender) Dropped() uint64 {
	return s.dropped.Load()
}
