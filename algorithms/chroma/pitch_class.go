package chroma

import (
	"math/bits"
	"strings"

	"github.com/RyanBlaney/sonido-theory/algorithms/common"
	"github.com/RyanBlaney/sonido-theory/algorithms/pitch"
)

// PitchClassSet is an unordered set of pitch classes stored as a 12-bit mask
// (bit 0 = C). The zero value is the empty set.
type PitchClassSet uint16

const fullMask PitchClassSet = 0x0FFF

// NewPitchClassSet builds a set from pitch classes, normalizing each mod 12
func NewPitchClassSet(pcs ...pitch.PitchClass) PitchClassSet {
	var s PitchClassSet
	for _, pc := range pcs {
		s = s.Add(pc)
	}
	return s
}

// FromInts builds a set from integers, normalizing each mod 12
func FromInts(values []int) PitchClassSet {
	var s PitchClassSet
	for _, v := range values {
		s = s.Add(pitch.NewPitchClass(v))
	}
	return s
}

// FromNotes builds the pitch-class set of a list of notes
func FromNotes(notes []pitch.Note) PitchClassSet {
	var s PitchClassSet
	for _, n := range notes {
		s = s.Add(n.PitchClass())
	}
	return s
}

// Add returns the set with pc included
func (s PitchClassSet) Add(pc pitch.PitchClass) PitchClassSet {
	return s | 1<<uint(pc.Normalize())
}

// Remove returns the set with pc excluded
func (s PitchClassSet) Remove(pc pitch.PitchClass) PitchClassSet {
	return s &^ (1 << uint(pc.Normalize()))
}

// Contains reports set membership
func (s PitchClassSet) Contains(pc pitch.PitchClass) bool {
	return s&(1<<uint(pc.Normalize())) != 0
}

func (s PitchClassSet) Union(other PitchClassSet) PitchClassSet {
	return s | other
}

func (s PitchClassSet) Intersect(other PitchClassSet) PitchClassSet {
	return s & other
}

// Difference returns the members of s not in other
func (s PitchClassSet) Difference(other PitchClassSet) PitchClassSet {
	return s &^ other
}

// IsSubsetOf reports whether every member of s is in other
func (s PitchClassSet) IsSubsetOf(other PitchClassSet) bool {
	return s&^other == 0
}

// Len returns the number of distinct pitch classes
func (s PitchClassSet) Len() int {
	return bits.OnesCount16(uint16(s & fullMask))
}

func (s PitchClassSet) IsEmpty() bool {
	return s&fullMask == 0
}

// Transpose rotates every member by semitones
func (s PitchClassSet) Transpose(semitones int) PitchClassSet {
	n := common.Mod(semitones, 12)
	m := uint16(s & fullMask)
	return PitchClassSet((m<<n | m>>(12-n)) & uint16(fullMask))
}

// Normalize expresses the set relative to root, so root becomes 0
func (s PitchClassSet) Normalize(root pitch.PitchClass) PitchClassSet {
	return s.Transpose(-int(root))
}

// Jaccard returns |s ∩ other| / |s ∪ other|; two empty sets score 0
func (s PitchClassSet) Jaccard(other PitchClassSet) float64 {
	union := s.Union(other).Len()
	if union == 0 {
		return 0.0
	}
	return float64(s.Intersect(other).Len()) / float64(union)
}

// Coverage returns the fraction of s found in other
func (s PitchClassSet) Coverage(other PitchClassSet) float64 {
	if s.IsEmpty() {
		return 0.0
	}
	return float64(s.Intersect(other).Len()) / float64(s.Len())
}

// Slice returns the members in ascending order
func (s PitchClassSet) Slice() []pitch.PitchClass {
	out := make([]pitch.PitchClass, 0, s.Len())
	for pc := pitch.C; pc <= pitch.B; pc++ {
		if s.Contains(pc) {
			out = append(out, pc)
		}
	}
	return out
}

// Ints returns the members as plain integers in ascending order
func (s PitchClassSet) Ints() []int {
	pcs := s.Slice()
	out := make([]int, len(pcs))
	for i, pc := range pcs {
		out[i] = int(pc)
	}
	return out
}

// Profile returns the set as a 12-element binary chroma vector
func (s PitchClassSet) Profile() []float64 {
	profile := make([]float64, 12)
	for _, pc := range s.Slice() {
		profile[pc] = 1.0
	}
	return profile
}

// Names returns the member names in ascending order
func (s PitchClassSet) Names(preferFlats bool) []string {
	pcs := s.Slice()
	names := make([]string, len(pcs))
	for i, pc := range pcs {
		names[i] = pc.Name(preferFlats)
	}
	return names
}

func (s PitchClassSet) String() string {
	return "{" + strings.Join(s.Names(false), ",") + "}"
}
