// Package timecode converts between HH:MM:SS text and whole seconds.
package timecode

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatError reports a time string that is not three colon-separated integers.
type FormatError struct {
	Input string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid time %q: expected HH:MM:SS", e.Input)
}

// Parse converts "H:M:S" into total seconds. Every field must be a
// non-negative base-10 integer and the total must fit in an int.
func Parse(text string) (int, error) {
	parts := strings.Split(strings.TrimSpace(text), ":")
	if len(parts) != 3 {
		return 0, &FormatError{Input: text}
	}

	var fields [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, &FormatError{Input: text}
		}
		fields[i] = n
	}

	h, m, sec := fields[0], fields[1], fields[2]
	if h > math.MaxInt/3600 {
		return 0, &FormatError{Input: text}
	}
	total := h * 3600
	if m > (math.MaxInt-total)/60 {
		return 0, &FormatError{Input: text}
	}
	total += m * 60
	if sec > math.MaxInt-total {
		return 0, &FormatError{Input: text}
	}
	return total + sec, nil
}

// Format renders seconds as zero-padded HH:MM:SS. Hours widen past two
// digits instead of wrapping. Negative input renders as 00:00:00.
func Format(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}

// Offset is a non-negative number of seconds that encodes as HH:MM:SS text.
type Offset int

func (o Offset) String() string { return Format(int(o)) }

// Seconds returns the offset as a plain int.
func (o Offset) Seconds() int { return int(o) }

func (o Offset) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Offset) UnmarshalText(b []byte) error {
	n, err := Parse(string(b))
	if err != nil {
		return err
	}
	*o = Offset(n)
	return nil
}
