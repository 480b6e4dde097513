package textwidth_test

import (
	"testing"

	"github.com/lululau/rangecal/internal/textwidth"
)

func TestStringWidthMixedScripts(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"ascii", "hello", 5},
		{"polish", "Październik", 11},
		{"weekday", "Śr", 2},
		{"chinese", "初一", 4},
		{"mixed", "A中", 3},
		{"multiline", "ab\n清明", 4},
		{"ansi", "\x1b[38;2;59;130;246m21\x1b[0m", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := textwidth.StringWidth(tt.in); got != tt.want {
				t.Fatalf("StringWidth(%q)=%d want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	got := textwidth.PadRight("Śr", 4)
	if got != "Śr  " {
		t.Fatalf("PadRight=%q want %q", got, "Śr  ")
	}
	if textwidth.PadRight("Kwiecień", 3) != "Kwiecień" {
		t.Fatalf("PadRight should not truncate")
	}
}

func TestCenter(t *testing.T) {
	if got := textwidth.Center("Maj", 8); got != "  Maj   " {
		t.Fatalf("Center=%q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := textwidth.Truncate("闰四月", 4); got != "闰四" {
		t.Fatalf("Truncate=%q", got)
	}
	if got := textwidth.Truncate("清明", 4); got != "清明" {
		t.Fatalf("Truncate=%q", got)
	}
}
