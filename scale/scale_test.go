package scale

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	cases := []struct {
		spec  string
		name  string
		notes int // per octave
	}{
		{"B minor pentatonic", "B minor pentatonic", 5},
		{"B natural minor pentatonic", "B minor pentatonic", 5},
		{"C major", "C major", 7},
		{"F# dorian", "F# dorian", 7},
		{"f sharp dorian", "F# dorian", 7},
		{"Eb major", "D# major", 7},
		{"A harmonic minor", "A harmonic minor", 7},
	}

	for _, c := range cases {
		sc, err := Parse(c.spec)
		if err != nil {
			t.Fatalf("Parse(%q): %v", c.spec, err)
		}
		if sc.Name() != c.name {
			t.Errorf("Parse(%q).Name() = %q, want %q", c.spec, sc.Name(), c.name)
		}
		if sc.NotesPerOctave() != c.notes {
			t.Errorf("Parse(%q).NotesPerOctave() = %d, want %d", c.spec, sc.NotesPerOctave(), c.notes)
		}
		if sc.NoteCount() != c.notes*Octaves {
			t.Errorf("Parse(%q).NoteCount() = %d, want %d", c.spec, sc.NoteCount(), c.notes*Octaves)
		}
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse("H major"); !errors.Is(err, ErrBadTonic) {
		t.Errorf("bad tonic: got %v", err)
	}
	if _, err := Parse("C phrygian"); !errors.Is(err, ErrUnknownScale) {
		t.Errorf("unknown kind: got %v", err)
	}
	if _, err := Parse("C"); err == nil {
		t.Error("tonic alone should not parse")
	}
}

func TestDegree(t *testing.T) {
	sc, err := New("C", Natural, Major)
	if err != nil {
		t.Fatal(err)
	}

	p := sc.Degree(0)
	if p.Name != "C0" || p.Octave != 0 || p.Number != 12 {
		t.Errorf("degree 0 = %+v", p)
	}
	if p.Volts() != 0 {
		t.Errorf("C0 volts = %g, want 0", p.Volts())
	}

	// A4 is 440 Hz; in C major it's degree 5 of octave 4
	a4 := sc.Degree(4*7 + 5)
	if a4.Name != "A4" || a4.Number != 69 {
		t.Errorf("A4 = %+v", a4)
	}
	if a4.Freq < 439.99 || a4.Freq > 440.01 {
		t.Errorf("A4 freq = %g", a4.Freq)
	}
}

func TestVoltsBounds(t *testing.T) {
	sc, err := Parse("B minor pentatonic")
	if err != nil {
		t.Fatal(err)
	}
	prev := -1.0
	for i := 0; i < sc.NoteCount(); i++ {
		v := sc.Degree(i).Volts()
		if v < 0 || v >= 10 {
			t.Fatalf("degree %d volts %g out of range", i, v)
		}
		if v <= prev {
			t.Fatalf("degree %d volts %g not increasing past %g", i, v, prev)
		}
		prev = v
	}
}

func TestClass(t *testing.T) {
	sc, err := New("C", Natural, Major)
	if err != nil {
		t.Fatal(err)
	}
	// C major: C D E F G A B
	want := []DegreeClass{ClassTonic, ClassOther, ClassOther, ClassOther, ClassDominant, ClassOther, ClassLeading}
	for i, w := range want {
		if got := sc.Class(i); got != w {
			t.Errorf("class(%d) = %d, want %d", i, got, w)
		}
		// classification repeats every octave
		if got := sc.Class(i + 7*3); got != w {
			t.Errorf("class(%d) = %d, want %d", i+7*3, got, w)
		}
	}

	pent, _ := Parse("B minor pentatonic")
	// B minor pentatonic: B D E F# A - no leading tone
	for i := 0; i < pent.NoteCount(); i++ {
		if pent.Class(i) == ClassLeading {
			t.Fatalf("pentatonic degree %d classified leading", i)
		}
	}
	if pent.Class(0) != ClassTonic {
		t.Error("pentatonic degree 0 should be tonic")
	}
	if pent.Class(3) != ClassDominant {
		t.Error("pentatonic degree 3 (F#) should be dominant")
	}
}
