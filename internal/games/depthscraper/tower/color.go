// Package tower provides the board and group model for Depthscraper.
// This package is UI-agnostic and deterministic given a seeded Rand.
package tower

import "strings"

// Color represents the color of a segment.
// ColorNone marks an empty segment and is not part of the playable set.
type Color uint8

const (
	ColorNone Color = iota
	ColorRed
	ColorYellow
	ColorGreen
)

// String returns the string representation of a color.
func (c Color) String() string {
	switch c {
	case ColorNone:
		return "none"
	case ColorRed:
		return "red"
	case ColorYellow:
		return "yellow"
	case ColorGreen:
		return "green"
	default:
		return "unknown"
	}
}

// Char returns a single character representation of the color for ASCII rendering.
func (c Color) Char() rune {
	switch c {
	case ColorRed:
		return 'R'
	case ColorYellow:
		return 'Y'
	case ColorGreen:
		return 'G'
	case ColorNone:
		return '.'
	default:
		return '?'
	}
}

// IsSet reports whether c is one of the playable colors.
func (c Color) IsSet() bool {
	return c != ColorNone
}

// ParseColor converts a string to a Color.
// "_", "." and "" parse as ColorNone.
func ParseColor(s string) (Color, bool) {
	switch strings.ToLower(s) {
	case "red", "r":
		return ColorRed, true
	case "yellow", "y":
		return ColorYellow, true
	case "green", "g":
		return ColorGreen, true
	case "", "_", ".", "none":
		return ColorNone, true
	default:
		return ColorNone, false
	}
}

// Colors returns the closed set of playable colors.
func Colors() []Color {
	return []Color{ColorRed, ColorYellow, ColorGreen}
}
