package event

import (
	"fmt"
	"strconv"
	"strings"
)

// NormalizeTime strips a redundant leading "00:" hours field from a duration
// string: "00:19:55" becomes "19:55", while "1:02:03" is left alone. The
// source site zero-pads the hours field even for sub-hour times.
func NormalizeTime(raw string) string {
	return strings.TrimPrefix(raw, "00:")
}

// ParseDuration converts a personal-best string ("MM:SS" or "H:MM:SS") to
// total seconds for comparison
func ParseDuration(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid duration %q", s)
	}

	total := 0
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		total = total*60 + n
	}

	return total, nil
}

// LessDuration reports whether duration string a is shorter than b.
// Unparseable values sort after parseable ones, so a malformed time never
// displaces a real personal best.
func LessDuration(a, b string) bool {
	secA, errA := ParseDuration(a)
	secB, errB := ParseDuration(b)
	if errA != nil {
		return false
	}
	if errB != nil {
		return true
	}
	return secA < secB
}
