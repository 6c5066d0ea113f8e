package records

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Duration returns the hours between two HH:mm clock times, rounded to two
// decimals. An end time earlier than the start is taken to cross midnight
// once. Empty or unparseable input yields 0.
func Duration(start, end string) float64 {
	if start == "" || end == "" {
		return 0
	}
	sh, sm, err := ParseClock(start)
	if err != nil {
		return 0
	}
	eh, em, err := ParseClock(end)
	if err != nil {
		return 0
	}

	d := (float64(eh) + float64(em)/60) - (float64(sh) + float64(sm)/60)
	if d < 0 {
		d += 24
	}
	return math.Round(d*100) / 100
}

// ParseClock splits an HH:mm time into hour and minute.
func ParseClock(s string) (hour, minute int, err error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, 0, fmt.Errorf("clock time %q: expected HH:mm", s)
	}
	if hour, err = strconv.Atoi(hh); err != nil {
		return 0, 0, fmt.Errorf("clock time %q: hour: %w", s, err)
	}
	if minute, err = strconv.Atoi(mm); err != nil {
		return 0, 0, fmt.Errorf("clock time %q: minute: %w", s, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("clock time %q: out of range", s)
	}
	return hour, minute, nil
}

// SessionName derives the display name of a session from its simulator
// and date.
func SessionName(simulator, date string) string {
	return simulator + "_" + date
}
