// Package racetime parses track race times written as M:SS.hh.
//
// Times are compared as a whole number of hundredths of a second
// (minutes*6000 + seconds*100 + hundredths). Concatenating the digit groups
// instead would misorder times whose groups have different widths.
package racetime

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Time is a race time in hundredths of a second. Smaller is faster.
type Time int

const (
	hundredthsPerSecond = 100
	hundredthsPerMinute = 60 * hundredthsPerSecond

	// seconds and hundredths are two-digit groups
	maxGroup = 99
	// largest minutes value whose total still fits in an int
	maxMinutes = (math.MaxInt - maxGroup*hundredthsPerSecond - maxGroup) / hundredthsPerMinute
)

var nonFinishMarks = []string{"DNS", "DNF", "SCRATCH"}

// components are the three numeric groups of a finished race time
type components struct {
	minutes    int
	seconds    int
	hundredths int
}

// Parse converts a race time into hundredths of a second.
// DNS, DNF and SCRATCH (any case) fail with *NonFinishError; anything that is
// not M:SS.hh, optionally followed by one marker character, fails with
// *MalformedTimeError.
func Parse(raw string) (Time, error) {
	c, err := split(raw)
	if err != nil {
		return 0, err
	}
	return Time(c.minutes*hundredthsPerMinute + c.seconds*hundredthsPerSecond + c.hundredths), nil
}

// MustParse is Parse for constants; it panics on error.
func MustParse(raw string) Time {
	t, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return t
}

// ToSeconds converts a race time into fractional seconds for plotting.
func ToSeconds(raw string) (float64, error) {
	c, err := split(raw)
	if err != nil {
		return 0, err
	}
	return float64(c.minutes)*60 + float64(c.seconds) + float64(c.hundredths)/100.0, nil
}

// Compare orders two times: -1 when a is faster, 1 when b is faster, 0 when equal.
func Compare(a, b Time) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// IsNonFinish reports whether raw is one of the DNS/DNF/SCRATCH marks.
func IsNonFinish(raw string) bool {
	mark := strings.TrimSpace(raw)
	for _, m := range nonFinishMarks {
		if strings.EqualFold(mark, m) {
			return true
		}
	}
	return false
}

// String renders the canonical M:SS.hh form.
func (t Time) String() string {
	total := int(t)
	sign := ""
	if total < 0 {
		sign = "-"
		total = -total
	}
	minutes := total / hundredthsPerMinute
	seconds := (total % hundredthsPerMinute) / hundredthsPerSecond
	hundredths := total % hundredthsPerSecond
	return fmt.Sprintf("%s%d:%02d.%02d", sign, minutes, seconds, hundredths)
}

// Seconds returns t as fractional seconds.
func (t Time) Seconds() float64 {
	return float64(t) / hundredthsPerSecond
}

func split(raw string) (components, error) {
	if IsNonFinish(raw) {
		return components{}, &NonFinishError{Raw: raw}
	}

	body := strings.TrimSpace(raw)
	if n := len(body); n > 0 && !isDigit(rune(body[n-1])) {
		// hand-timing/auto-timing marker, e.g. "2:05.30a"
		body = body[:n-1]
	}

	minuteParts := strings.Split(body, ":")
	if len(minuteParts) != 2 {
		return components{}, &MalformedTimeError{Raw: raw, Reason: "expected exactly one ':'"}
	}
	secondParts := strings.Split(minuteParts[1], ".")
	if len(secondParts) != 2 {
		return components{}, &MalformedTimeError{Raw: raw, Reason: "expected exactly one '.' after ':'"}
	}

	values := make([]int, 0, 3)
	for _, part := range []string{minuteParts[0], secondParts[0], secondParts[1]} {
		v, err := digits(part)
		if err != nil {
			return components{}, &MalformedTimeError{Raw: raw, Reason: err.Error()}
		}
		values = append(values, v)
	}

	c := components{minutes: values[0], seconds: values[1], hundredths: values[2]}
	switch {
	case c.minutes > maxMinutes:
		return components{}, &MalformedTimeError{Raw: raw, Reason: "minutes out of range"}
	case c.seconds > maxGroup:
		return components{}, &MalformedTimeError{Raw: raw, Reason: "seconds out of range"}
	case c.hundredths > maxGroup:
		return components{}, &MalformedTimeError{Raw: raw, Reason: "hundredths out of range"}
	}
	return c, nil
}

// digits accepts only unsigned decimal digits; strconv.Atoi alone would let "+5" through.
func digits(part string) (int, error) {
	if part == "" {
		return 0, fmt.Errorf("empty component")
	}
	for _, r := range part {
		if !isDigit(r) {
			return 0, fmt.Errorf("non-numeric component %q", part)
		}
	}
	v, err := strconv.Atoi(part)
	if err != nil {
		return 0, fmt.Errorf("component %q out of range", part)
	}
	return v, nil
}

func isDigit(r rune) bool {
	return r < unicode.MaxASCII && unicode.IsDigit(r)
}
