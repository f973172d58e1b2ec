package tonal

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/RyanBlaney/sonido-theory/algorithms/catalog"
	"github.com/RyanBlaney/sonido-theory/algorithms/chroma"
	"github.com/RyanBlaney/sonido-theory/algorithms/pitch"
	terrors "github.com/RyanBlaney/sonido-theory/errors"
)

// Chord is an immutable chord instance: a root, a quality (or custom
// intervals) and an inversion index. Like Scale it owns its interval set.
type Chord struct {
	root         pitch.Note
	quality      string
	displayName  string
	symbol       string
	family       catalog.ChordFamily
	custom       bool
	intervals    catalog.IntervalSet
	pitchClasses []pitch.PitchClass
	inversion    int
}

// NewChord builds a root-position chord from a root (Note, PitchClass, int or
// note name) and a catalog quality name or alias
func NewChord(root any, quality string) (Chord, error) {
	rootNote, err := pitch.Resolve(root)
	if err != nil {
		return Chord{}, err
	}

	cq, err := catalog.LookupChord(quality)
	if err != nil {
		return Chord{}, err
	}

	return newChord(rootNote, cq, false), nil
}

// NewCustomChord builds a root-position chord from explicit intervals
func NewCustomChord(root any, intervals []int) (Chord, error) {
	rootNote, err := pitch.Resolve(root)
	if err != nil {
		return Chord{}, err
	}

	set, err := catalog.NewIntervalSet(intervals)
	if err != nil {
		return Chord{}, err
	}

	cq := catalog.ChordQuality{
		Name:        CustomType,
		DisplayName: "Custom",
		Symbol:      customSymbol(set),
		Intervals:   set,
		Family:      catalog.FamilyOther,
	}
	return newChord(rootNote, cq, true), nil
}

func newChord(root pitch.Note, cq catalog.ChordQuality, custom bool) Chord {
	return Chord{
		root:         root,
		quality:      cq.Name,
		displayName:  cq.DisplayName,
		symbol:       cq.Symbol,
		family:       cq.Family,
		custom:       custom,
		intervals:    cq.Intervals,
		pitchClasses: cq.Intervals.PitchClasses(root.PitchClass()),
	}
}

func customSymbol(set catalog.IntervalSet) string {
	parts := make([]string, len(set))
	for i, v := range set {
		parts[i] = strconv.Itoa(v)
	}
	return "(" + strings.Join(parts, ",") + ")"
}

func (c Chord) Root() pitch.Note {
	return c.root
}

// RootPitchClass returns the normalized root
func (c Chord) RootPitchClass() pitch.PitchClass {
	return c.root.PitchClass()
}

// Quality returns the canonical quality name, or CustomType
func (c Chord) Quality() string {
	return c.quality
}

func (c Chord) DisplayName() string {
	return c.displayName
}

func (c Chord) Family() catalog.ChordFamily {
	return c.family
}

func (c Chord) IsCustom() bool {
	return c.custom
}

// Inversion returns the inversion index (0 = root position)
func (c Chord) Inversion() int {
	return c.inversion
}

// Intervals returns a copy of the interval set
func (c Chord) Intervals() catalog.IntervalSet {
	return c.intervals.Clone()
}

// PitchClasses returns the chord tones in interval (voicing) order. Extended
// chords may repeat a pitch class; use Tones or Set for distinct members.
func (c Chord) PitchClasses() []pitch.PitchClass {
	out := make([]pitch.PitchClass, len(c.pitchClasses))
	copy(out, c.pitchClasses)
	return out
}

// Tones returns the distinct chord tones in interval order
func (c Chord) Tones() []pitch.PitchClass {
	var seen chroma.PitchClassSet
	tones := make([]pitch.PitchClass, 0, len(c.pitchClasses))
	for _, pc := range c.pitchClasses {
		if !seen.Contains(pc) {
			seen = seen.Add(pc)
			tones = append(tones, pc)
		}
	}
	return tones
}

// Set returns the chord tones as an unordered set
func (c Chord) Set() chroma.PitchClassSet {
	return chroma.NewPitchClassSet(c.pitchClasses...)
}

// Cardinality is the number of distinct chord tones
func (c Chord) Cardinality() int {
	return c.Set().Len()
}

// Bass returns the lowest tone implied by the inversion. A chord without
// tones reports its root.
func (c Chord) Bass() pitch.PitchClass {
	tones := c.Tones()
	if c.inversion < 0 || c.inversion >= len(tones) {
		return c.RootPitchClass()
	}
	return tones[c.inversion]
}

// Invert returns the same chord with the nth distinct tone in the bass
func (c Chord) Invert(n int) (Chord, error) {
	tones := c.Tones()
	if n < 0 || n >= len(tones) {
		return Chord{}, terrors.NewOutOfRangeError("inversion", float64(n), 0, float64(len(tones)-1))
	}
	inverted := c
	inverted.inversion = n
	return inverted, nil
}

// InvertTo places the given pitch class in the bass
func (c Chord) InvertTo(bass pitch.PitchClass) (Chord, error) {
	bass = bass.Normalize()
	for i, pc := range c.Tones() {
		if pc == bass {
			return c.Invert(i)
		}
	}
	return Chord{}, terrors.NewInvalidNoteError(bass.String(), "bass is not a chord tone")
}

// Transpose moves the root by semitones, keeping the quality, the root
// spelling preference and the inversion
func (c Chord) Transpose(semitones int) Chord {
	root := pitch.NoteFromPitchClass(c.RootPitchClass().Transpose(semitones), c.root.IsFlat())
	t := c
	t.root = root
	t.pitchClasses = c.intervals.PitchClasses(root.PitchClass())
	return t
}

// Notes spells the chord tones (distinct, interval order) following the root spelling
func (c Chord) Notes() []pitch.Note {
	tones := c.Tones()
	notes := make([]pitch.Note, len(tones))
	for i, pc := range tones {
		notes[i] = pitch.NoteFromPitchClass(pc, c.root.IsFlat())
	}
	return notes
}

// Voicing places the chord in an octave, root at the given octave and the
// inverted tones raised above the bass. The result is sorted low to high.
func (c Chord) Voicing(octave int) ([]pitch.Note, error) {
	rootNote, err := pitch.NoteFromPitchClass(c.root.PitchClass(), c.root.IsFlat()).WithOctave(octave)
	if err != nil {
		return nil, err
	}
	base, _ := rootNote.MIDI()

	offsets := c.toneOffsets()
	if len(offsets) == 0 {
		return nil, terrors.ErrEmptyInput
	}
	bassOffset := offsets[c.inversion]
	for i := 0; i < c.inversion; i++ {
		for offsets[i] <= bassOffset {
			offsets[i] += 12
		}
	}
	sort.Ints(offsets)

	fromMidi := pitch.NoteFromMidi
	if c.root.IsFlat() {
		fromMidi = pitch.NoteFromMidiPreferFlats
	}

	notes := make([]pitch.Note, len(offsets))
	for i, offset := range offsets {
		n, err := fromMidi(base + offset)
		if err != nil {
			return nil, err
		}
		notes[i] = n
	}
	return notes, nil
}

// toneOffsets returns the interval of the first occurrence of each distinct tone
func (c Chord) toneOffsets() []int {
	var seen chroma.PitchClassSet
	offsets := make([]int, 0, len(c.intervals))
	for _, offset := range c.intervals {
		pc := pitch.NewPitchClass(offset)
		if !seen.Contains(pc) {
			seen = seen.Add(pc)
			offsets = append(offsets, offset)
		}
	}
	return offsets
}

// Symbol returns the lead-sheet symbol, e.g. "C", "F#m7", "C/E"
func (c Chord) Symbol() string {
	symbol := c.root.Spelling() + c.symbol
	if c.inversion > 0 {
		symbol += "/" + c.Bass().Name(c.root.IsFlat())
	}
	return symbol
}

// Name returns the root plus the quality display name, e.g. "C Major 7th"
func (c Chord) Name() string {
	return c.root.Spelling() + " " + c.displayName
}

// Equal compares root pitch class, quality, intervals and inversion
func (c Chord) Equal(other Chord) bool {
	return c.RootPitchClass() == other.RootPitchClass() &&
		c.quality == other.quality &&
		c.inversion == other.inversion &&
		c.intervals.Equal(other.intervals)
}

func (c Chord) String() string {
	return c.Symbol()
}

// ChordInfo is the serialisable view of a Chord
type ChordInfo struct {
	Symbol       string   `json:"symbol"`
	Root         string   `json:"root"`
	Quality      string   `json:"quality"`
	DisplayName  string   `json:"display_name"`
	Family       string   `json:"family"`
	Intervals    []int    `json:"intervals"`
	PitchClasses []int    `json:"pitch_classes"`
	Notes        []string `json:"notes"`
	Inversion    int      `json:"inversion"`
	Bass         string   `json:"bass"`
}

// Info returns the serialisable view of the chord
func (c Chord) Info() ChordInfo {
	info := ChordInfo{
		Symbol:      c.Symbol(),
		Root:        c.root.String(),
		Quality:     c.quality,
		DisplayName: c.displayName,
		Family:      c.family.String(),
		Intervals:   c.Intervals(),
		Inversion:   c.inversion,
		Bass:        c.Bass().Name(c.root.IsFlat()),
	}
	for _, pc := range c.pitchClasses {
		info.PitchClasses = append(info.PitchClasses, int(pc))
	}
	for _, n := range c.Notes() {
		info.Notes = append(info.Notes, n.String())
	}
	return info
}

func (c Chord) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Info())
}
