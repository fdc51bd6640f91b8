package scale

import (
	"fmt"
	"math"
	"strings"
)

// Octaves is the pitch range covered by every scale: octaves 0 through 8.
const Octaves = 9

// Accidental modifies the tonic by a semitone
type Accidental int

const (
	Natural Accidental = iota
	Sharp
	Flat
)

// Kind identifies the interval pattern of a scale
type Kind int

const (
	Major Kind = iota
	NaturalMinor
	HarmonicMinor
	MajorPentatonic
	MinorPentatonic
	Dorian
	Mixolydian
)

// DegreeClass is the scale-relative role of a degree, used for display shading
type DegreeClass int

const (
	ClassOther DegreeClass = iota
	ClassTonic
	ClassDominant
	ClassLeading
)

// Semitone offsets within one octave, per scale kind
var intervals = map[Kind][]int{
	Major:           {0, 2, 4, 5, 7, 9, 11},
	NaturalMinor:    {0, 2, 3, 5, 7, 8, 10},
	HarmonicMinor:   {0, 2, 3, 5, 7, 8, 11},
	MajorPentatonic: {0, 2, 4, 7, 9},
	MinorPentatonic: {0, 3, 5, 7, 10},
	Dorian:          {0, 2, 3, 5, 7, 9, 10},
	Mixolydian:      {0, 2, 4, 5, 7, 9, 10},
}

var kindNames = map[Kind]string{
	Major:           "major",
	NaturalMinor:    "minor",
	HarmonicMinor:   "harmonic minor",
	MajorPentatonic: "major pentatonic",
	MinorPentatonic: "minor pentatonic",
	Dorian:          "dorian",
	Mixolydian:      "mixolydian",
}

var noteNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Semitone of each natural tonic letter relative to C
var tonicSemitones = map[string]int{
	"C": 0, "D": 2, "E": 4, "F": 5, "G": 7, "A": 9, "B": 11,
}

// Pitch is one playable note of a scale
type Pitch struct {
	Name   string  // e.g. "F#3"
	Octave int     // 0-8
	Number int     // MIDI note number (C0 = 12); may exceed 127 at the top
	Freq   float64 // Hz, A4 = 440
}

// Volts returns the 1V/octave control voltage for the pitch, 0V at C0.
// Always within [0, 10) for octaves 0-8.
func (p Pitch) Volts() float64 {
	return float64(p.Number-12) / 12.0
}

// Scale is an ordered pitch table spanning all octaves of one key
type Scale struct {
	tonic int // semitone offset from C, 0-11
	kind  Kind
	name  string
}

// New builds a scale from a tonic letter (A-G), accidental and kind
func New(tonic string, acc Accidental, kind Kind) (*Scale, error) {
	semi, ok := tonicSemitones[strings.ToUpper(tonic)]
	if !ok {
		return nil, fmt.Errorf("%w: tonic %q", ErrBadTonic, tonic)
	}
	switch acc {
	case Sharp:
		semi = (semi + 1) % 12
	case Flat:
		semi = (semi + 11) % 12
	case Natural:
	default:
		return nil, fmt.Errorf("%w: accidental %d", ErrBadTonic, acc)
	}
	if _, ok := intervals[kind]; !ok {
		return nil, fmt.Errorf("%w: kind %d", ErrUnknownScale, kind)
	}

	name := noteNames[semi] + " " + kindNames[kind]
	return &Scale{tonic: semi, kind: kind, name: name}, nil
}

// Name returns a display name like "B minor pentatonic"
func (s *Scale) Name() string {
	return s.name
}

// NotesPerOctave returns the number of degrees in one octave
func (s *Scale) NotesPerOctave() int {
	return len(intervals[s.kind])
}

// NoteCount returns the total degrees across all octaves
func (s *Scale) NoteCount() int {
	return s.NotesPerOctave() * Octaves
}

// Degree returns the pitch at index i, counting up from the tonic at octave 0.
// i must be within [0, NoteCount()).
func (s *Scale) Degree(i int) Pitch {
	npo := s.NotesPerOctave()
	oct := i / npo
	semi := s.tonic + intervals[s.kind][i%npo]

	// C0 is MIDI note 12; the tonic may spill into the next octave
	number := 12 + oct*12 + semi
	freq := 440.0 * math.Pow(2, float64(number-69)/12.0)

	return Pitch{
		Name:   fmt.Sprintf("%s%d", noteNames[semi%12], (number-12)/12),
		Octave: oct,
		Number: number,
		Freq:   freq,
	}
}

// Class classifies degree i for display coloring. Classification is by
// interval from the tonic: unison is tonic, a perfect fifth is dominant,
// a major seventh is the leading tone.
func (s *Scale) Class(i int) DegreeClass {
	switch intervals[s.kind][i%s.NotesPerOctave()] {
	case 0:
		return ClassTonic
	case 7:
		return ClassDominant
	case 11:
		return ClassLeading
	default:
		return ClassOther
	}
}
