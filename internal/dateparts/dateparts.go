// Package dateparts implements the per-part date/date-time editing model
// (C5): year/month/day/(hour/minute) with wrap rules and ISO parse/serialize.
package dateparts

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Format names, matching the JSON Schema "format" values this model serves.
const (
	FormatDate     = "date"
	FormatDateTime = "date-time"
)

// Parts holds the editable fields in display order: [year, month, day] for
// FormatDate, [year, month, day, hour, minute] for FormatDateTime.
type Parts struct {
	Values []int
	Cursor int
	Format string
}

var dateTimeRe = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})(?:T(\d{2}):(\d{2}))?`)

// Today returns Parts derived from the host clock.
func Today(format string) Parts {
	now := time.Now()
	if format == FormatDateTime {
		return Parts{Values: []int{now.Year(), int(now.Month()), now.Day(), now.Hour(), now.Minute()}, Format: format}
	}
	return Parts{Values: []int{now.Year(), int(now.Month()), now.Day()}, Format: format}
}

// Parse matches the date (and, for date-time, optional time) portion of an
// ISO string. A missing time portion defaults to 00:00. Returns ok=false if
// the string does not match.
func Parse(s string, format string) (Parts, bool) {
	m := dateTimeRe.FindStringSubmatch(s)
	if m == nil {
		return Parts{}, false
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	if format == FormatDateTime {
		hour, minute := 0, 0
		if m[4] != "" {
			hour, _ = strconv.Atoi(m[4])
		}
		if m[5] != "" {
			minute, _ = strconv.Atoi(m[5])
		}
		return Parts{Values: []int{year, month, day, hour, minute}, Format: format}, true
	}
	return Parts{Values: []int{year, month, day}, Format: format}, true
}

// ToString zero-pads the fields; date-time always serializes with trailing
// ":00Z" seconds to force UTC.
func ToString(p Parts) string {
	year, month, day := p.Values[0], p.Values[1], p.Values[2]
	if p.Format == FormatDateTime {
		hour, minute := p.Values[3], p.Values[4]
		return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:00Z", year, month, day, hour, minute)
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

// DaysInMonth follows Gregorian leap-year rules.
func DaysInMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if isLeap(year) {
			return 29
		}
		return 28
	default:
		return 30
	}
}

func isLeap(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// Adjust applies delta to the part at cursor, with wrap rules: year clamps
// to [1900, 2100]; month wraps mod 12 within [1,12]; day wraps within
// [1, days_in(year, month)]; hour wraps [0,23]; minute wraps [0,59]. After
// any change, day is re-clamped to days_in(year, month).
func Adjust(p Parts, cursor int, delta int) Parts {
	out := Parts{Values: append([]int(nil), p.Values...), Cursor: p.Cursor, Format: p.Format}
	if cursor < 0 || cursor >= len(out.Values) {
		return out
	}
	switch cursor {
	case 0: // year
		out.Values[0] = clamp(out.Values[0]+delta, 1900, 2100)
	case 1: // month
		out.Values[1] = wrap1(out.Values[1]+delta, 12)
	case 2: // day
		days := DaysInMonth(out.Values[0], out.Values[1])
		out.Values[2] = wrap1(out.Values[2]+delta, days)
	case 3: // hour
		out.Values[3] = wrap0(out.Values[3]+delta, 24)
	case 4: // minute
		out.Values[4] = wrap0(out.Values[4]+delta, 60)
	}
	days := DaysInMonth(out.Values[0], out.Values[1])
	if out.Values[2] > days {
		out.Values[2] = days
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// wrap1 wraps v into [1, n].
func wrap1(v, n int) int {
	v--
	v = ((v % n) + n) % n
	return v + 1
}

// wrap0 wraps v into [0, n).
func wrap0(v, n int) int {
	return ((v % n) + n) % n
}
