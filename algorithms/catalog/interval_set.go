// Package catalog holds the read-only tables of scale types and chord
// qualities. The tables are built once at package initialisation and never
// written afterwards; every lookup hands out copies.
package catalog

import (
	"fmt"

	"github.com/RyanBlaney/sonido-theory/algorithms/chroma"
	"github.com/RyanBlaney/sonido-theory/algorithms/pitch"
	terrors "github.com/RyanBlaney/sonido-theory/errors"
)

// MaxInterval is the widest offset allowed in an interval set (a major fourteenth)
const MaxInterval = 23

// IntervalSet is an ordered list of semitone offsets from a root. The first
// offset is always 0 and offsets are strictly increasing.
type IntervalSet []int

// NewIntervalSet validates and copies a caller supplied interval list
func NewIntervalSet(intervals []int) (IntervalSet, error) {
	if len(intervals) == 0 {
		return nil, terrors.NewInvalidIntervalSetError(intervals, "empty interval set")
	}
	if intervals[0] != 0 {
		return nil, terrors.NewInvalidIntervalSetError(intervals, "first interval must be 0")
	}
	for i := 1; i < len(intervals); i++ {
		if intervals[i] <= intervals[i-1] {
			return nil, terrors.NewInvalidIntervalSetError(intervals,
				fmt.Sprintf("interval %d at position %d is not greater than %d", intervals[i], i, intervals[i-1]))
		}
	}
	if last := intervals[len(intervals)-1]; last > MaxInterval {
		return nil, terrors.NewInvalidIntervalSetError(intervals,
			fmt.Sprintf("interval %d exceeds %d", last, MaxInterval))
	}
	return IntervalSet(intervals).Clone(), nil
}

// mustIntervalSet is used for the static tables only
func mustIntervalSet(intervals ...int) IntervalSet {
	s, err := NewIntervalSet(intervals)
	if err != nil {
		panic(err)
	}
	return s
}

// Clone returns an independent copy
func (s IntervalSet) Clone() IntervalSet {
	if s == nil {
		return nil
	}
	cp := make(IntervalSet, len(s))
	copy(cp, s)
	return cp
}

func (s IntervalSet) Len() int {
	return len(s)
}

// Equal compares offsets position by position
func (s IntervalSet) Equal(other IntervalSet) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// PitchClasses applies the offsets to a root in order. Compound offsets fold
// into the octave, so extended chords may repeat a pitch class.
func (s IntervalSet) PitchClasses(root pitch.PitchClass) []pitch.PitchClass {
	out := make([]pitch.PitchClass, len(s))
	for i, offset := range s {
		out[i] = root.Transpose(offset)
	}
	return out
}

// Set returns the offsets as a root-relative pitch-class set
func (s IntervalSet) Set() chroma.PitchClassSet {
	return chroma.FromInts(s)
}

// Cardinality is the number of distinct pitch classes the set produces
func (s IntervalSet) Cardinality() int {
	return s.Set().Len()
}
