package pitch

// Interval is a distance in semitones. Names are defined up to a double octave.
type Interval int

var intervalNames = [...]struct {
	name  string
	short string
}{
	{"unison", "P1"},
	{"minor second", "m2"},
	{"major second", "M2"},
	{"minor third", "m3"},
	{"major third", "M3"},
	{"perfect fourth", "P4"},
	{"tritone", "TT"},
	{"perfect fifth", "P5"},
	{"minor sixth", "m6"},
	{"major sixth", "M6"},
	{"minor seventh", "m7"},
	{"major seventh", "M7"},
	{"octave", "P8"},
	{"minor ninth", "m9"},
	{"major ninth", "M9"},
	{"minor tenth", "m10"},
	{"major tenth", "M10"},
	{"perfect eleventh", "P11"},
	{"augmented eleventh", "A11"},
	{"perfect twelfth", "P12"},
	{"minor thirteenth", "m13"},
	{"major thirteenth", "M13"},
	{"minor fourteenth", "m14"},
	{"major fourteenth", "M14"},
	{"double octave", "P15"},
}

// MaxNamedInterval is the largest interval with its own name
const MaxNamedInterval = Interval(len(intervalNames) - 1)

// Between returns the interval between two notes. Octave-qualified pairs use
// the real sounding distance; otherwise the ascending distance from a to b
// within one octave is used.
func Between(a, b Note) Interval {
	am, aok := a.MIDI()
	bm, bok := b.MIDI()
	if aok && bok {
		d := bm - am
		if d < 0 {
			d = -d
		}
		return Interval(d)
	}
	return Interval(a.PitchClass().IntervalTo(b.PitchClass()))
}

// Simple reduces a compound interval to within one octave (an octave stays an octave)
func (i Interval) Simple() Interval {
	if i < 0 {
		i = -i
	}
	if i <= 12 {
		return i
	}
	r := i % 12
	if r == 0 {
		return 12
	}
	return r
}

// named folds intervals wider than a double octave down into the named range
func (i Interval) named() Interval {
	if i < 0 {
		i = -i
	}
	for i > MaxNamedInterval {
		i -= 12
	}
	return i
}

// Name returns the full interval name, e.g. "perfect fifth"
func (i Interval) Name() string {
	return intervalNames[i.named()].name
}

// ShortName returns the abbreviated interval name, e.g. "P5"
func (i Interval) ShortName() string {
	return intervalNames[i.named()].short
}

func (i Interval) String() string {
	return i.Name()
}

// IntervalName names a semitone distance, e.g. IntervalName(7) == "perfect fifth"
func IntervalName(semitones int) string {
	return Interval(semitones).Name()
}

// IntervalShortName abbreviates a semitone distance, e.g. IntervalShortName(7) == "P5"
func IntervalShortName(semitones int) string {
	return Interval(semitones).ShortName()
}
