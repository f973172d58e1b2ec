// Package errors defines the failure modes of the theory engine.
//
// Every typed error unwraps to one of the sentinels below, so callers can
// branch with errors.Is and still recover the offending value with errors.As.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for expected failure modes
var (
	ErrInvalidNote        = errors.New("invalid note")
	ErrOutOfRange         = errors.New("value out of range")
	ErrUnknownType        = errors.New("unknown scale or chord type")
	ErrInvalidIntervalSet = errors.New("invalid interval set")
	ErrDegreeOutOfRange   = errors.New("scale degree out of range")
	ErrNotHeptatonic      = errors.New("scale is not heptatonic")
	ErrEmptyInput         = errors.New("empty input")
	ErrInvalidChordSymbol = errors.New("invalid chord symbol")
	ErrInvalidNumeral     = errors.New("invalid roman numeral")
)

// InvalidNoteError reports note text that could not be parsed
type InvalidNoteError struct {
	Input  string
	Reason string
}

func (e *InvalidNoteError) Error() string {
	return fmt.Sprintf("invalid note %q: %s", e.Input, e.Reason)
}

func (e *InvalidNoteError) Unwrap() error {
	return ErrInvalidNote
}

// OutOfRangeError reports a numeric value outside its allowed range
type OutOfRangeError struct {
	What  string // "midi", "frequency", ...
	Value float64
	Min   float64
	Max   float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s %g out of range [%g, %g]", e.What, e.Value, e.Min, e.Max)
}

func (e *OutOfRangeError) Unwrap() error {
	return ErrOutOfRange
}

// UnknownTypeError reports a catalog miss
type UnknownTypeError struct {
	Kind string // "scale" or "chord"
	Name string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown %s type %q", e.Kind, e.Name)
}

func (e *UnknownTypeError) Unwrap() error {
	return ErrUnknownType
}

// InvalidIntervalSetError reports a malformed custom interval set
type InvalidIntervalSetError struct {
	Intervals []int
	Reason    string
}

func (e *InvalidIntervalSetError) Error() string {
	return fmt.Sprintf("invalid interval set %v: %s", e.Intervals, e.Reason)
}

func (e *InvalidIntervalSetError) Unwrap() error {
	return ErrInvalidIntervalSet
}

// DegreeOutOfRangeError reports a 1-indexed scale degree outside the scale
type DegreeOutOfRangeError struct {
	Degree int
	Size   int
}

func (e *DegreeOutOfRangeError) Error() string {
	return fmt.Sprintf("degree %d out of range for %d-note scale", e.Degree, e.Size)
}

func (e *DegreeOutOfRangeError) Unwrap() error {
	return ErrDegreeOutOfRange
}

// NewInvalidNoteError creates an InvalidNoteError
func NewInvalidNoteError(input, reason string) *InvalidNoteError {
	return &InvalidNoteError{Input: input, Reason: reason}
}

// NewOutOfRangeError creates an OutOfRangeError
func NewOutOfRangeError(what string, value, min, max float64) *OutOfRangeError {
	return &OutOfRangeError{What: what, Value: value, Min: min, Max: max}
}

// NewUnknownTypeError creates an UnknownTypeError
func NewUnknownTypeError(kind, name string) *UnknownTypeError {
	return &UnknownTypeError{Kind: kind, Name: name}
}

// NewInvalidIntervalSetError creates an InvalidIntervalSetError. The
// intervals are copied so the error never aliases caller memory.
func NewInvalidIntervalSetError(intervals []int, reason string) *InvalidIntervalSetError {
	cp := make([]int, len(intervals))
	copy(cp, intervals)
	return &InvalidIntervalSetError{Intervals: cp, Reason: reason}
}

// NewDegreeOutOfRangeError creates a DegreeOutOfRangeError
func NewDegreeOutOfRangeError(degree, size int) *DegreeOutOfRangeError {
	return &DegreeOutOfRangeError{Degree: degree, Size: size}
}
