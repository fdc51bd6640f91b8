package sequencer

import (
	"fmt"

	"monoseq/config"
	"monoseq/scale"
)

// MaxWidth bounds the logical grid (in steps, multiples of 16).
const MaxWidth = 256

// noNote marks an empty column
const noNote = -1

// VirtualGrid owns the logical sequence and the viewport projection onto
// the physical surface. Columns are monophonic: each holds at most one
// active note, stored as a logical row index.
//
// Logical row 0 is the highest pitch: PitchAt(row) resolves degree index
// NoteCount-1-row, so panning "up" lowers offsetY.
type VirtualGrid struct {
	width  int
	notes  []int // per column: logical row, or noNote
	sc     *scale.Scale
	tune   config.Tuning
	offX   int
	offY   int
}

// NewVirtualGrid creates a grid of the given width over the scale. Width
// must be a positive multiple of 16 within MaxWidth.
func NewVirtualGrid(width int, sc *scale.Scale, tune config.Tuning) (*VirtualGrid, error) {
	if width <= 0 || width%16 != 0 || width > MaxWidth {
		return nil, fmt.Errorf("grid width %d: must be a multiple of 16 within %d", width, MaxWidth)
	}
	if sc.NoteCount() < MusicalRows {
		return nil, fmt.Errorf("scale %s too small for a %d-row viewport", sc.Name(), MusicalRows)
	}

	g := &VirtualGrid{
		width: width,
		notes: make([]int, MaxWidth),
		sc:    sc,
		tune:  tune,
	}
	for i := range g.notes {
		g.notes[i] = noNote
	}
	// start the viewport in the middle of the pitch range
	g.offY = (g.Height() - MusicalRows) / 2
	return g, nil
}

// Width returns the logical width in steps.
func (g *VirtualGrid) Width() int { return g.width }

// Height returns the logical height (the scale's note count).
func (g *VirtualGrid) Height() int { return g.sc.NoteCount() }

// Offset returns the viewport origin in logical coordinates.
func (g *VirtualGrid) Offset() (x, y int) { return g.offX, g.offY }

// ScaleName returns the display name of the current scale.
func (g *VirtualGrid) ScaleName() string { return g.sc.Name() }

// NoteAt returns the active row for a logical column.
func (g *VirtualGrid) NoteAt(col int) (row int, ok bool) {
	if g.notes[col] == noNote {
		return 0, false
	}
	return g.notes[col], true
}

// Tick toggles the note under a viewport cell. Same row clears, a
// different row moves the column's note there, an empty column gains one.
// Returns the logical coordinates and whether the cell is now active.
func (g *VirtualGrid) Tick(vx, vy int) (col, row int, active bool) {
	col = g.offX + vx
	row = g.offY + vy

	switch g.notes[col] {
	case row:
		g.notes[col] = noNote
		return col, row, false
	default:
		g.notes[col] = row
		return col, row, true
	}
}

// Pan shifts the viewport, clamped to the logical bounds. Never resizes.
func (g *VirtualGrid) Pan(dx, dy int) {
	g.offX = clamp(g.offX+dx, 0, g.width-Cols)
	g.offY = clamp(g.offY+dy, 0, g.Height()-MusicalRows)
}

// Resize grows or truncates the grid to newWidth steps. newWidth must be a
// multiple of 16; it is clamped into [16, MaxWidth]. Truncation drops notes
// beyond the new width and re-clamps the viewport.
func (g *VirtualGrid) Resize(newWidth int) {
	newWidth = clamp(newWidth, 16, MaxWidth)
	if newWidth%16 != 0 {
		newWidth -= newWidth % 16
	}

	for c := newWidth; c < g.width; c++ {
		g.notes[c] = noNote
	}
	g.width = newWidth
	g.offX = clamp(g.offX, 0, g.width-Cols)
}

// SetScale swaps the scale and clears the sequence: note rows index into
// the old pitch table and do not transfer.
func (g *VirtualGrid) SetScale(sc *scale.Scale) {
	g.sc = sc
	for i := range g.notes {
		g.notes[i] = noNote
	}
	g.offY = clamp(g.offY, 0, g.Height()-MusicalRows)
}

// PitchAt resolves the pitch of a logical row (row 0 on top).
func (g *VirtualGrid) PitchAt(row int) scale.Pitch {
	return g.sc.Degree(g.sc.NoteCount() - 1 - row)
}

// CurrentOctave returns the octave band at the viewport's vertical center,
// clamped to [0, 8].
func (g *VirtualGrid) CurrentOctave() int {
	center := g.offY + MusicalRows/2
	degree := g.sc.NoteCount() - 1 - center
	return clamp(degree/g.sc.NotesPerOctave(), 0, scale.Octaves-1)
}

// RenderViewport fills the musical rows of a brightness buffer. Baseline
// brightness comes from each row's degree class; an active note forces the
// cell to the active level.
func (g *VirtualGrid) RenderViewport(buf *[MusicalRows][Cols]uint8) {
	for vy := 0; vy < MusicalRows; vy++ {
		row := g.offY + vy
		base := g.rowBaseline(row)
		for vx := 0; vx < Cols; vx++ {
			col := g.offX + vx
			if g.notes[col] == row {
				buf[vy][vx] = g.tune.ActiveLevel
			} else {
				buf[vy][vx] = base
			}
		}
	}
}

func (g *VirtualGrid) rowBaseline(row int) uint8 {
	switch g.sc.Class(g.sc.NoteCount() - 1 - row) {
	case scale.ClassTonic:
		return g.tune.TonicLevel
	case scale.ClassDominant:
		return g.tune.DominantLevel
	case scale.ClassLeading:
		return g.tune.LeadingLevel
	default:
		return 0
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
