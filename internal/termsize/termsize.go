// Package termsize reports terminal dimensions.
package termsize

import (
	"os"

	"golang.org/x/term"
)

// Size is a terminal size in cells. The zero Size means "not a terminal".
type Size struct {
	Width  int
	Height int
}

// Current returns the size of the terminal attached to stdout.
func Current() Size {
	return Of(os.Stdout)
}

// Of returns the size of the terminal behind file, or the zero Size when
// file is not a terminal.
func Of(file *os.File) Size {
	if !IsTerminal(file) {
		return Size{}
	}
	width, height, err := term.GetSize(int(file.Fd()))
	if err != nil {
		return Size{}
	}
	return Size{Width: width, Height: height}
}

// IsTerminal reports whether file is attached to a terminal.
func IsTerminal(file *os.File) bool {
	if file == nil {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

// Clamp returns width limited to [lo, hi], using fallback for a zero
// width.
func Clamp(width, lo, hi, fallback int) int {
	if width <= 0 {
		return fallback
	}
	if width < lo {
		return lo
	}
	if width > hi {
		return hi
	}
	return width
}
