// Package term implements the flicker-free full-screen renderer's terminal
// I/O layer: alternate-screen lifecycle, cursor-home overwrite painting, the
// keyboard decoder, and ANSI-aware string measurement/slicing/padding.
package term

import (
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
)

var sgrPattern = regexp.MustCompile("\x1b\\[[0-9;]*m")

// StripANSI removes SGR escape sequences, leaving only the printable text.
func StripANSI(s string) string {
	return sgrPattern.ReplaceAllString(s, "")
}

// VisibleWidth returns the printable column width of s, ignoring embedded
// SGR sequences and accounting for double-width runes.
func VisibleWidth(s string) int {
	return runewidth.StringWidth(StripANSI(s))
}

// ANSISlice returns the visible substring of s starting at visible column
// offset, re-emitting at the slice boundary any SGR sequence encountered
// while skipping so styled text scrolled horizontally keeps its color.
func ANSISlice(s string, offset int) string {
	if offset <= 0 {
		return s
	}
	var b strings.Builder
	col := 0
	var skipped strings.Builder
	flushed := false
	runes := []rune(s)
	i := 0
	for i < len(runes) {
		if runes[i] == 0x1b && i+1 < len(runes) && runes[i+1] == '[' {
			j := i + 2
			for j < len(runes) && runes[j] != 'm' {
				j++
			}
			if j < len(runes) {
				seq := string(runes[i : j+1])
				if col >= offset {
					if !flushed {
						b.WriteString(skipped.String())
						flushed = true
					}
					b.WriteString(seq)
				} else {
					skipped.WriteString(seq)
				}
				i = j + 1
				continue
			}
		}
		w := runewidth.RuneWidth(runes[i])
		if col >= offset {
			if !flushed {
				b.WriteString(skipped.String())
				flushed = true
			}
			b.WriteRune(runes[i])
		}
		col += w
		i++
	}
	return b.String()
}

// FitWidth truncates or right-pads s to exactly width printable columns,
// preserving trailing SGR codes (an ellipsis replaces the last visible
// column when truncating).
func FitWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	vw := VisibleWidth(s)
	if vw == width {
		return s
	}
	if vw < width {
		return s + strings.Repeat(" ", width-vw)
	}

	// Truncate: walk runes accumulating width, stop one short to fit an
	// ellipsis, keep any SGR sequences encountered along the way.
	var b strings.Builder
	col := 0
	runes := []rune(s)
	i := 0
	target := width - 1
	if target < 0 {
		target = 0
	}
	for i < len(runes) && col < target {
		if runes[i] == 0x1b && i+1 < len(runes) && runes[i+1] == '[' {
			j := i + 2
			for j < len(runes) && runes[j] != 'm' {
				j++
			}
			if j < len(runes) {
				b.WriteString(string(runes[i : j+1]))
				i = j + 1
				continue
			}
		}
		w := runewidth.RuneWidth(runes[i])
		if col+w > target {
			break
		}
		b.WriteRune(runes[i])
		col += w
		i++
	}
	if width > 0 {
		b.WriteString("…")
		col++
	}
	for _, seq := range sgrPattern.FindAllString(string(runes[i:]), -1) {
		b.WriteString(seq)
	}
	for col < width {
		b.WriteByte(' ')
		col++
	}
	return b.String()
}
