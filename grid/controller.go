// Package grid is the tactile surface transport: it turns MIDI pad
// controllers into discrete press/release events and pushes brightness
// frames back out. The control plane only sees the Controller interface.
package grid

// Surface dimensions: 16 columns by 8 rows of varibright pads
const (
	Cols = 16
	Rows = 8
)

// PadEvent is one discrete press or release on the surface
type PadEvent struct {
	X, Y int
	Down bool
}

// Frame is a full brightness image for the surface, values 0-15
type Frame = [Rows][Cols]uint8

// Controller is a connected pad surface
type Controller interface {
	ID() string

	// Events delivers presses and releases, one at a time
	Events() <-chan PadEvent

	// SetFrame pushes a brightness frame; implementations diff against
	// the previous frame and only transmit changed cells
	SetFrame(f *Frame) error

	Close() error
}
