// Package colorutil provides shared color utilities for the block extractor.
package colorutil

import (
	"fmt"
	"image/color"
)

// Common overlay colors used throughout the application.
var (
	Black  = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Red    = color.RGBA{R: 220, G: 40, B: 40, A: 255}
	Green  = color.RGBA{R: 40, G: 180, B: 60, A: 255}
	Yellow = color.RGBA{R: 255, G: 255, B: 0, A: 255}
)

// Byte converts a normalized color component (0-1) to the 0-255 range,
// clamping out-of-range input.
func Byte(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	default:
		return uint8(v*255 + 0.5)
	}
}

// CSSRGB formats normalized RGB components as a CSS rgb() value,
// e.g. "rgb(255, 0, 128)".
func CSSRGB(r, g, b float64) string {
	return fmt.Sprintf("rgb(%d, %d, %d)", Byte(r), Byte(g), Byte(b))
}

// RGBA converts normalized RGB components to an opaque color.RGBA.
func RGBA(r, g, b float64) color.RGBA {
	return color.RGBA{R: Byte(r), G: Byte(g), B: Byte(b), A: 255}
}

// CMYKToRGB converts CMYK components (0-1) to normalized RGB using the
// naive uncalibrated formula.
func CMYKToRGB(c, m, y, k float64) (r, g, b float64) {
	r = (1 - c) * (1 - k)
	g = (1 - m) * (1 - k)
	b = (1 - y) * (1 - k)
	return r, g, b
}
