package tonal

import (
	"fmt"
	"strings"

	"github.com/RyanBlaney/sonido-theory/algorithms/pitch"
	terrors "github.com/RyanBlaney/sonido-theory/errors"
)

// ParseChordSymbol parses lead-sheet symbols such as "C", "F#m7", "Bbmaj9",
// "Dm7b5" or "C/E". A slash bass must be a chord tone and sets the inversion.
// "6/9" is read as a quality, not a slash chord.
func ParseChordSymbol(text string) (Chord, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return Chord{}, fmt.Errorf("%w: empty symbol", terrors.ErrInvalidChordSymbol)
	}

	body, bassText := splitSlashBass(s)

	rootText, suffix := splitRoot(body)
	if rootText == "" {
		return Chord{}, fmt.Errorf("%w: %q has no root", terrors.ErrInvalidChordSymbol, text)
	}
	root, err := pitch.ParseNote(rootText)
	if err != nil {
		return Chord{}, fmt.Errorf("%w: %q: %w", terrors.ErrInvalidChordSymbol, text, err)
	}

	quality := suffix
	if quality == "" {
		quality = "maj"
	}
	chord, err := NewChord(root, quality)
	if err != nil {
		return Chord{}, fmt.Errorf("%w: %q: %w", terrors.ErrInvalidChordSymbol, text, err)
	}

	if bassText == "" {
		return chord, nil
	}
	bass, err := pitch.ParseNote(bassText)
	if err != nil {
		return Chord{}, fmt.Errorf("%w: %q: %w", terrors.ErrInvalidChordSymbol, text, err)
	}
	inverted, err := chord.InvertTo(bass.PitchClass())
	if err != nil {
		return Chord{}, fmt.Errorf("%w: %q: %w", terrors.ErrInvalidChordSymbol, text, err)
	}
	return inverted, nil
}

// splitSlashBass separates "C/E" into "C" and "E". The part after the last
// slash only counts as a bass when it starts with a note letter.
func splitSlashBass(s string) (string, string) {
	i := strings.LastIndex(s, "/")
	if i <= 0 || i == len(s)-1 {
		return s, ""
	}
	if !strings.ContainsRune("ABCDEFGabcdefg", rune(s[i+1])) {
		return s, ""
	}
	return s[:i], s[i+1:]
}

// splitRoot takes the letter and an optional accidental off the front
func splitRoot(s string) (string, string) {
	runes := []rune(s)
	if len(runes) == 0 || !strings.ContainsRune("ABCDEFGabcdefg", runes[0]) {
		return "", s
	}
	n := 1
	if len(runes) > 1 {
		switch runes[1] {
		case '#', '♯', 'b', '♭':
			n = 2
		}
	}
	return string(runes[:n]), string(runes[n:])
}
