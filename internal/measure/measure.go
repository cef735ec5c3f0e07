// Package measure supplies text-width functions for tab layout. Widths
// are in the same unit the caller lays out in; the layout code never
// assumes a particular unit.
package measure

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Func reports the advance width of text.
type Func func(text string) float64

// Fixed returns a measurer that charges perRune for every rune. It is
// the estimate layout falls back to when nothing better is available.
func Fixed(perRune float64) Func {
	return func(text string) float64 {
		return perRune * float64(utf8.RuneCountInString(text))
	}
}

// Monospace returns a measurer for terminal-style rendering: each text
// cell costs cell units, with wide and combining characters counted the
// way a terminal counts them.
func Monospace(cell float64) Func {
	return func(text string) float64 {
		return cell * float64(uniseg.StringWidth(text))
	}
}
