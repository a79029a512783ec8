// Package jsonpp renders an arbitrary JSON value (a tool result) into an
// aligned, styled line sequence: object keys padded to their longest
// sibling, arrays of objects separated into blocks, scalars colored by
// kind.
package jsonpp

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	styleDim    = lipgloss.NewStyle().Faint(true)
	styleNumber = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))  // cyan
	styleBool   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))  // yellow
	styleMarker = lipgloss.NewStyle().Faint(true)
)

// Print renders v into an aligned, styled line sequence.
func Print(v any) []string {
	return printValue(v, 0)
}

func printValue(v any, indent int) []string {
	switch t := v.(type) {
	case map[string]any:
		return printObject(t, indent)
	case []any:
		return printArray(t, indent)
	default:
		return []string{pad(indent) + scalar(v)}
	}
}

func printObject(obj map[string]any, indent int) []string {
	if len(obj) == 0 {
		return nil
	}
	keys := sortedKeys(obj)
	maxKey := 0
	for _, k := range keys {
		if len(k) > maxKey {
			maxKey = len(k)
		}
	}
	var lines []string
	for _, k := range keys {
		val := obj[k]
		if isComplex(val) {
			lines = append(lines, pad(indent)+k+":")
			lines = append(lines, printValue(val, indent+2)...)
			continue
		}
		padding := strings.Repeat(" ", maxKey-len(k))
		lines = append(lines, fmt.Sprintf("%s%s%s  %s", pad(indent), k, padding, scalar(val)))
	}
	return lines
}

func printArray(arr []any, indent int) []string {
	if len(arr) == 0 {
		return nil
	}
	allObjects := true
	for _, e := range arr {
		if _, ok := e.(map[string]any); !ok {
			allObjects = false
			break
		}
	}
	var lines []string
	if allObjects {
		for i, e := range arr {
			obj := e.(map[string]any)
			lines = append(lines, printObjectBlock(obj, indent)...)
			if i < len(arr)-1 {
				lines = append(lines, "")
			}
		}
		return lines
	}
	for _, e := range arr {
		lines = append(lines, pad(indent)+styleMarker.Render("─ ")+scalar(e))
	}
	return lines
}

// printObjectBlock renders one object in an array-of-objects: the first key
// carries the "─ " marker, successive keys align under it with two-space
// indent.
func printObjectBlock(obj map[string]any, indent int) []string {
	keys := sortedKeys(obj)
	var lines []string
	for i, k := range keys {
		val := obj[k]
		prefix := "  "
		if i == 0 {
			prefix = styleMarker.Render("─ ")
		}
		if isComplex(val) {
			lines = append(lines, pad(indent)+prefix+k+":")
			lines = append(lines, printValue(val, indent+4)...)
			continue
		}
		lines = append(lines, fmt.Sprintf("%s%s%s: %s", pad(indent), prefix, k, scalar(val)))
	}
	return lines
}

func isComplex(v any) bool {
	switch t := v.(type) {
	case map[string]any:
		return len(t) > 0
	case []any:
		return len(t) > 0
	default:
		return false
	}
}

func scalar(v any) string {
	switch t := v.(type) {
	case nil:
		return styleDim.Render("null")
	case float64:
		return styleNumber.Render(trimFloat(t))
	case bool:
		if t {
			return styleBool.Render("true")
		}
		return styleBool.Render("false")
	case string:
		if t == "" {
			return styleDim.Render("–")
		}
		return t
	case map[string]any, []any:
		return "" // handled by caller via isComplex
	default:
		return fmt.Sprintf("%v", t)
	}
}

func trimFloat(f float64) string {
	s := fmt.Sprintf("%g", f)
	return s
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func pad(n int) string {
	return strings.Repeat(" ", n)
}

// IsEmptyListResult returns true if v is an empty array, or an object all of
// whose values are empty arrays, zero, null, or empty strings with at least
// one array-valued field — triggering the dedicated "no results" screen.
func IsEmptyListResult(v any) bool {
	switch t := v.(type) {
	case []any:
		return len(t) == 0
	case map[string]any:
		sawArray := false
		for _, val := range t {
			switch vv := val.(type) {
			case []any:
				sawArray = true
				if len(vv) != 0 {
					return false
				}
			case float64:
				if vv != 0 {
					return false
				}
			case string:
				if vv != "" {
					return false
				}
			case nil:
				// fine, counts as empty
			default:
				return false
			}
		}
		return sawArray
	default:
		return false
	}
}
