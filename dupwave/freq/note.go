package freq

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidNote is returned when a note name cannot be parsed.
var ErrInvalidNote = errors.New("invalid note")

var noteNames = [12]string{"C-", "C#", "D-", "D#", "E-", "F-", "F#", "G-", "G#", "A-", "A#", "B-"}

var noteBase = map[byte]int{'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11}

// ParseNote parses a three character tracker note such as "A-4" or "C#3"
// into a note number (C-0 = 0). Octaves 0-9 are supported.
func ParseNote(s string) (int, error) {
	if len(s) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNote, s)
	}

	upper := strings.ToUpper(s)
	base, ok := noteBase[upper[0]]
	if !ok {
		return 0, fmt.Errorf("%w: %q: bad note letter", ErrInvalidNote, s)
	}

	var accidental int
	switch upper[1] {
	case '#':
		accidental = 1
	case '-':
	default:
		return 0, fmt.Errorf("%w: %q: bad accidental", ErrInvalidNote, s)
	}

	if upper[2] < '0' || upper[2] > '9' {
		return 0, fmt.Errorf("%w: %q: bad octave", ErrInvalidNote, s)
	}
	octave := int(upper[2] - '0')

	return octave*12 + base + accidental, nil
}

// NoteName formats a note number as a tracker note, or "---" when out of range.
func NoteName(note int) string {
	if note < 0 || note >= 120 {
		return "---"
	}
	return fmt.Sprintf("%s%d", noteNames[note%12], note/12)
}
