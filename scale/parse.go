package scale

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrBadTonic     = errors.New("scale: bad tonic")
	ErrUnknownScale = errors.New("scale: unknown scale kind")
)

// kinds by spoken name, longest-match wins ("minor pentatonic" before "minor")
var kindsByName = []struct {
	name string
	kind Kind
}{
	{"major pentatonic", MajorPentatonic},
	{"minor pentatonic", MinorPentatonic},
	{"harmonic minor", HarmonicMinor},
	{"major", Major},
	{"minor", NaturalMinor},
	{"dorian", Dorian},
	{"mixolydian", Mixolydian},
}

// Parse builds a scale from a spec like "B natural minor pentatonic",
// "F# dorian" or "Eb major". The accidental may be a word (sharp, flat,
// natural) or a suffix on the tonic (#, b).
func Parse(spec string) (*Scale, error) {
	fields := strings.Fields(strings.ToLower(spec))
	if len(fields) < 2 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScale, spec)
	}

	tonic := strings.ToUpper(fields[0][:1])
	acc := Natural
	rest := fields[1:]

	if len(fields[0]) > 1 {
		switch fields[0][1:] {
		case "#":
			acc = Sharp
		case "b":
			acc = Flat
		default:
			return nil, fmt.Errorf("%w: %q", ErrBadTonic, fields[0])
		}
	} else {
		switch rest[0] {
		case "sharp":
			acc = Sharp
			rest = rest[1:]
		case "flat":
			acc = Flat
			rest = rest[1:]
		case "natural":
			rest = rest[1:]
		}
	}

	kindName := strings.Join(rest, " ")
	for _, k := range kindsByName {
		if k.name == kindName {
			return New(tonic, acc, k.kind)
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScale, kindName)
}
