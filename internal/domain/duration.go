package domain

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Jira's default time-tracking units.
const (
	SecondsPerMinute = 60
	SecondsPerHour   = 60 * SecondsPerMinute
	SecondsPerDay    = 8 * SecondsPerHour
	SecondsPerWeek   = 5 * SecondsPerDay
)

// MaxWorklogSeconds bounds a single worklog.
const MaxWorklogSeconds = math.MaxInt32

var (
	bareMinutesPattern  = regexp.MustCompile(`^\d+(\.\d+)?$`)
	durationPartPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)([a-z]+)$`)
)

var durationUnits = map[string]int{
	"w": SecondsPerWeek,
	"d": SecondsPerDay,
	"h": SecondsPerHour,
	"m": SecondsPerMinute,
}

// ParseWorklogDuration parses Jira duration notation ("1w 2d 3h 30m", "45m",
// "1.5h") into seconds. A bare number is read as minutes. Numbers are plain
// decimals: no sign, exponent or digit separators.
// FormatWorklogDuration renders the result back in canonical notation.
func ParseWorklogDuration(s string) (int, error) {
	text := strings.ToLower(strings.TrimSpace(s))
	if text == "" {
		return 0, fmt.Errorf("empty duration: %w", ErrInvalidDuration)
	}

	if bareMinutesPattern.MatchString(text) {
		n, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return 0, fmt.Errorf("%q: %w", s, ErrInvalidDuration)
		}
		return toSeconds(s, n*SecondsPerMinute)
	}

	var total float64
	for _, part := range splitDuration(text) {
		m := durationPartPattern.FindStringSubmatch(part)
		if m == nil {
			return 0, fmt.Errorf("%q: %w", s, ErrInvalidDuration)
		}
		perUnit, ok := durationUnits[m[2]]
		if !ok {
			return 0, fmt.Errorf("%q: unknown unit %q: %w", s, m[2], ErrInvalidDuration)
		}
		n, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, fmt.Errorf("%q: %w", s, ErrInvalidDuration)
		}
		total += n * float64(perUnit)
	}
	return toSeconds(s, total)
}

// splitDuration splits "1h30m" and "1h 30m" alike into unit-suffixed parts.
func splitDuration(text string) []string {
	var parts []string
	var cur strings.Builder
	prevLetter := false
	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			if cur.Len() > 0 {
				parts = append(parts, cur.String())
				cur.Reset()
			}
			prevLetter = false
			continue
		case unicode.IsLetter(r):
			prevLetter = true
		default:
			if prevLetter && cur.Len() > 0 {
				parts = append(parts, cur.String())
				cur.Reset()
			}
			prevLetter = false
		}
		cur.WriteRune(r)
	}
	if cur.Len() > 0 {
		parts = append(parts, cur.String())
	}
	return parts
}

func toSeconds(input string, total float64) (int, error) {
	if math.IsNaN(total) || math.IsInf(total, 0) || total > MaxWorklogSeconds {
		return 0, fmt.Errorf("%q: duration too large: %w", input, ErrInvalidDuration)
	}
	seconds := int(math.Round(total))
	if seconds <= 0 {
		return 0, fmt.Errorf("%q: duration must be positive: %w", input, ErrInvalidDuration)
	}
	return seconds, nil
}

// FormatWorklogDuration renders seconds in Jira notation, e.g. "1d 2h 30m".
func FormatWorklogDuration(seconds int) string {
	if seconds <= 0 {
		return "0m"
	}
	var parts []string
	for _, u := range []struct {
		suffix string
		size   int
	}{
		{"w", SecondsPerWeek},
		{"d", SecondsPerDay},
		{"h", SecondsPerHour},
		{"m", SecondsPerMinute},
	} {
		if n := seconds / u.size; n > 0 {
			parts = append(parts, strconv.Itoa(n)+u.suffix)
			seconds -= n * u.size
		}
	}
	if len(parts) == 0 {
		// under a minute
		return "1m"
	}
	return strings.Join(parts, " ")
}

// startedLayouts are accepted for a worklog start time, in local time.
var startedLayouts = []string{"2006-01-02 15:04", "2006-01-02T15:04", "2006-01-02"}

// ParseWorklogStarted parses a worklog start time in local time.
func ParseWorklogStarted(s string) (time.Time, error) {
	text := strings.TrimSpace(s)
	for _, layout := range startedLayouts {
		if t, err := time.ParseInLocation(layout, text, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("started %q: expected YYYY-MM-DD HH:MM", s)
}
