package tonal

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/RyanBlaney/sonido-theory/algorithms/catalog"
	"github.com/RyanBlaney/sonido-theory/algorithms/chroma"
	"github.com/RyanBlaney/sonido-theory/algorithms/pitch"
	terrors "github.com/RyanBlaney/sonido-theory/errors"
)

// CustomType is reported as the type name of scales and chords built from
// caller supplied intervals
const CustomType = "custom"

// Scale is an immutable scale instance. It owns its interval set; nothing
// built here is ever registered back into the catalog.
type Scale struct {
	root         pitch.Note
	typeName     string
	displayName  string
	family       catalog.ScaleFamily
	custom       bool
	intervals    catalog.IntervalSet
	pitchClasses []pitch.PitchClass
}

// NewScale builds a scale from a root (Note, PitchClass, int or note name)
// and a catalog scale type
func NewScale(root any, typeName string) (Scale, error) {
	rootNote, err := pitch.Resolve(root)
	if err != nil {
		return Scale{}, err
	}

	st, err := catalog.LookupScale(typeName)
	if err != nil {
		return Scale{}, err
	}

	return newScale(rootNote, st.Name, st.DisplayName, st.Family, false, st.Intervals), nil
}

// NewCustomScale builds a scale from explicit intervals without touching the catalog
func NewCustomScale(root any, intervals []int) (Scale, error) {
	rootNote, err := pitch.Resolve(root)
	if err != nil {
		return Scale{}, err
	}

	set, err := catalog.NewIntervalSet(intervals)
	if err != nil {
		return Scale{}, err
	}

	return newScale(rootNote, CustomType, "Custom", "", true, set), nil
}

func newScale(root pitch.Note, typeName, displayName string, family catalog.ScaleFamily, custom bool, intervals catalog.IntervalSet) Scale {
	return Scale{
		root:         root,
		typeName:     typeName,
		displayName:  displayName,
		family:       family,
		custom:       custom,
		intervals:    intervals,
		pitchClasses: intervals.PitchClasses(root.PitchClass()),
	}
}

// Root returns the root note as it was supplied
func (s Scale) Root() pitch.Note {
	return s.root
}

// Tonic returns the root pitch class
func (s Scale) Tonic() pitch.PitchClass {
	return s.root.PitchClass()
}

// Type returns the canonical catalog name, or CustomType
func (s Scale) Type() string {
	return s.typeName
}

func (s Scale) DisplayName() string {
	return s.displayName
}

func (s Scale) Family() catalog.ScaleFamily {
	return s.family
}

func (s Scale) IsCustom() bool {
	return s.custom
}

// Name returns e.g. "C major" or "Eb custom"
func (s Scale) Name() string {
	return s.root.Spelling() + " " + s.typeName
}

// Intervals returns a copy of the interval set
func (s Scale) Intervals() catalog.IntervalSet {
	return s.intervals.Clone()
}

// PitchClasses returns the scale members in interval order, starting at the root
func (s Scale) PitchClasses() []pitch.PitchClass {
	out := make([]pitch.PitchClass, len(s.pitchClasses))
	copy(out, s.pitchClasses)
	return out
}

// Set returns the scale members as an unordered set
func (s Scale) Set() chroma.PitchClassSet {
	return chroma.NewPitchClassSet(s.pitchClasses...)
}

// PrefersFlats reports whether the scale reads with flats. A flat root
// always does and a sharp root never does. A natural root takes whichever
// spelling repeats fewer letters, sharps on a tie, so F major gets Bb and
// D minor gets Bb where G major keeps F#.
func (s Scale) PrefersFlats() bool {
	switch {
	case s.root.IsFlat():
		return true
	case strings.HasSuffix(s.root.Spelling(), "#"):
		return false
	}
	return s.repeatedLetters(true) < s.repeatedLetters(false)
}

func (s Scale) repeatedLetters(preferFlats bool) int {
	seen := make(map[byte]bool)
	repeats := 0
	for _, pc := range s.Set().Slice() {
		letter := pc.Name(preferFlats)[0]
		if seen[letter] {
			repeats++
		}
		seen[letter] = true
	}
	return repeats
}

// Notes spells the scale members following PrefersFlats
func (s Scale) Notes() []pitch.Note {
	preferFlats := s.PrefersFlats()
	notes := make([]pitch.Note, len(s.pitchClasses))
	for i, pc := range s.pitchClasses {
		notes[i] = pitch.NoteFromPitchClass(pc, preferFlats)
	}
	return notes
}

// Len returns the number of scale members
func (s Scale) Len() int {
	return len(s.pitchClasses)
}

// Degree returns the nth member, 1-indexed. There is no wraparound.
func (s Scale) Degree(n int) (pitch.PitchClass, error) {
	if n < 1 || n > len(s.pitchClasses) {
		return 0, terrors.NewDegreeOutOfRangeError(n, len(s.pitchClasses))
	}
	return s.pitchClasses[n-1], nil
}

// DegreeOf returns the 1-indexed degree of pc, or false when pc is not in the scale
func (s Scale) DegreeOf(pc pitch.PitchClass) (int, bool) {
	pc = pc.Normalize()
	for i, member := range s.pitchClasses {
		if member == pc {
			return i + 1, true
		}
	}
	return 0, false
}

// Contains reports whether pc belongs to the scale
func (s Scale) Contains(pc pitch.PitchClass) bool {
	_, ok := s.DegreeOf(pc)
	return ok
}

// Mode rotates the scale to start on its nth degree. When the rotation
// matches a catalog type (D dorian from C major) that type is used,
// otherwise the result is a custom scale. Compound offsets fold into one
// octave, so the mode of a scale with offsets past 11 lists its members
// in ascending order and drops repeated pitch classes.
func (s Scale) Mode(n int) (Scale, error) {
	newRoot, err := s.Degree(n)
	if err != nil {
		return Scale{}, err
	}

	var members chroma.PitchClassSet
	for _, pc := range s.pitchClasses {
		members = members.Add(pitch.NewPitchClass(newRoot.IntervalTo(pc)))
	}

	rootNote := pitch.NoteFromPitchClass(newRoot, s.root.IsFlat())
	set, err := catalog.NewIntervalSet(members.Ints())
	if err != nil {
		return Scale{}, err
	}
	for _, st := range catalog.Scales() {
		if st.Intervals.Equal(set) {
			return newScale(rootNote, st.Name, st.DisplayName, st.Family, false, st.Intervals), nil
		}
	}
	return newScale(rootNote, CustomType, "Custom", "", true, set), nil
}

// Equal compares root pitch class, type and intervals
func (s Scale) Equal(other Scale) bool {
	return s.Tonic() == other.Tonic() && s.typeName == other.typeName && s.intervals.Equal(other.intervals)
}

func (s Scale) String() string {
	return s.Name()
}

// ScaleInfo is the serialisable view of a Scale
type ScaleInfo struct {
	Root         string   `json:"root"`
	Type         string   `json:"type"`
	DisplayName  string   `json:"display_name"`
	Intervals    []int    `json:"intervals"`
	PitchClasses []int    `json:"pitch_classes"`
	Notes        []string `json:"notes"`
}

// Info returns the serialisable view of the scale
func (s Scale) Info() ScaleInfo {
	info := ScaleInfo{
		Root:        s.root.String(),
		Type:        s.typeName,
		DisplayName: s.displayName,
		Intervals:   s.Intervals(),
	}
	for _, pc := range s.pitchClasses {
		info.PitchClasses = append(info.PitchClasses, int(pc))
	}
	for _, n := range s.Notes() {
		info.Notes = append(info.Notes, n.String())
	}
	return info
}

func (s Scale) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Info())
}

// requireHeptatonic guards the stacked-third constructions
func requireHeptatonic(s Scale) error {
	if s.Len() != 7 {
		return fmt.Errorf("%w: %s has %d notes", terrors.ErrNotHeptatonic, s.Name(), s.Len())
	}
	return nil
}
