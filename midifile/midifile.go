// Package midifile extracts the sets of simultaneously sounding keys from a
// Standard MIDI File so they can be fed to chord detection.
package midifile

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/RyanBlaney/sonido-theory/logging"
	"gitlab.com/gomidi/midi/v2/smf"
)

// NoteEvent is a note-on or note-off reduced to its key and absolute time
type NoteEvent struct {
	Offset int64 `json:"offset"` // Microseconds from the start of the file
	Key    uint8 `json:"key"`
	Off    bool  `json:"off"`
}

// NoteSet is the set of keys held down from Offset until the next set
type NoteSet struct {
	Offset int64 `json:"offset"` // Microseconds from the start of the file
	Keys   []int `json:"keys"`   // Sorted MIDI key numbers
}

var logger = logging.WithFields(logging.Fields{"component": "midifile"})

// ReadFile reads and parses a Standard MIDI File
func ReadFile(path string) (*smf.SMF, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read midi file: %w", err)
	}
	return Read(bytes.NewReader(dat))
}

// Read parses a Standard MIDI File. The parser can panic on malformed input;
// that is reported as an error.
func Read(r io.Reader) (s *smf.SMF, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			s, err = nil, fmt.Errorf("parse midi file: %v", rec)
		}
	}()

	s, err = smf.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("parse midi file: %w", err)
	}
	return s, nil
}

// Events collects the note-on and note-off events of every track in time
// order. A note-on with velocity 0 counts as a note-off.
func Events(s *smf.SMF) []NoteEvent {
	var events []NoteEvent
	for _, track := range s.Tracks {
		var absTicks int64
		for _, event := range track {
			absTicks += int64(event.Delta)
			var channel, key, velocity uint8
			switch {
			case event.Message.GetNoteOn(&channel, &key, &velocity):
				events = append(events, NoteEvent{Offset: s.TimeAt(absTicks), Key: key, Off: velocity == 0})
			case event.Message.GetNoteOff(&channel, &key, &velocity):
				events = append(events, NoteEvent{Offset: s.TimeAt(absTicks), Key: key, Off: true})
			}
		}
	}

	// earlier first, then note-offs before note-ons at the same instant
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Offset != events[j].Offset {
			return events[i].Offset < events[j].Offset
		}
		return events[i].Off && !events[j].Off
	})
	return events
}

// NoteSets groups time-ordered events into the sets of keys sounding after
// each distinct instant. Silent instants produce no set, and a set equal to
// the one before it is not repeated.
func NoteSets(events []NoteEvent) []NoteSet {
	var sets []NoteSet
	held := make(map[uint8]int)
	var previous []int

	for i := 0; i < len(events); {
		offset := events[i].Offset
		for ; i < len(events) && events[i].Offset == offset; i++ {
			e := events[i]
			if e.Off {
				if held[e.Key] > 1 {
					held[e.Key]--
				} else {
					delete(held, e.Key)
				}
				continue
			}
			held[e.Key]++
		}

		keys := sortedKeys(held)
		if len(keys) == 0 || equalKeys(keys, previous) {
			previous = keys
			continue
		}
		sets = append(sets, NoteSet{Offset: offset, Keys: keys})
		previous = keys
	}
	return sets
}

// ReadNoteSets reads a file and returns its note sets
func ReadNoteSets(path string) ([]NoteSet, error) {
	s, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	events := Events(s)
	sets := NoteSets(events)
	logger.Debug("extracted note sets", logging.Fields{
		"path":   path,
		"tracks": len(s.Tracks),
		"events": len(events),
		"sets":   len(sets),
	})
	return sets, nil
}

func sortedKeys(held map[uint8]int) []int {
	keys := make([]int, 0, len(held))
	for k := range held {
		keys = append(keys, int(k))
	}
	sort.Ints(keys)
	return keys
}

func equalKeys(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
