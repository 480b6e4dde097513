// Package textwidth measures strings in monospace terminal columns.
package textwidth

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

var ansiRegexp = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StringWidth returns the widest line of s in terminal columns. East Asian
// wide and fullwidth runes take two columns, combining marks none, and ANSI
// color sequences are ignored.
func StringWidth(s string) int {
	if s == "" {
		return 0
	}
	maxWidth := 0
	for _, line := range strings.Split(s, "\n") {
		if w := lineWidth(line); w > maxWidth {
			maxWidth = w
		}
	}
	return maxWidth
}

// PadRight appends ASCII spaces until the rendered width matches target.
func PadRight(s string, target int) string {
	diff := target - StringWidth(s)
	if diff <= 0 {
		return s
	}
	return s + strings.Repeat(" ", diff)
}

// Center pads s on both sides to target columns, extra space going right.
func Center(s string, target int) string {
	diff := target - StringWidth(s)
	if diff <= 0 {
		return s
	}
	left := diff / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", diff-left)
}

// Truncate cuts s to at most target columns without splitting a rune.
func Truncate(s string, target int) string {
	n := 0
	for i, r := range s {
		w := runeWidth(r)
		if n+w > target {
			return s[:i]
		}
		n += w
	}
	return s
}

func lineWidth(s string) int {
	n := 0
	for _, r := range stripANSI(s) {
		n += runeWidth(r)
	}
	return n
}

func runeWidth(r rune) int {
	switch {
	case r == '\r' || r == '\n':
		return 0
	case unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Me, r):
		return 0
	}
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	}
	return 1
}

func stripANSI(s string) string {
	return ansiRegexp.ReplaceAllString(s, "")
}
