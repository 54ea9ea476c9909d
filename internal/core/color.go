package core

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

// Palette used by the tower renderer and the surrounding chrome.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorDimRed    // Preview of a red segment
	ColorDimGreen  // Preview of a green segment
	ColorDimYellow // Preview of a yellow segment
	ColorCyan
	ColorMagenta
	ColorWhite
	ColorGray
)
