package core

import "image/color"

// Color represents an additive RGB color with 8-bit channels
type Color struct {
	R, G, B uint8
}

// NewColor creates a new Color
func NewColor(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Add returns the clamped channel-wise sum of two colors
func (c Color) Add(other Color) Color {
	return Color{
		R: clampChannel(uint16(c.R) + uint16(other.R)),
		G: clampChannel(uint16(c.G) + uint16(other.G)),
		B: clampChannel(uint16(c.B) + uint16(other.B)),
	}
}

// Attenuate scales each channel by the matching channel of a reflectance
// color, where 255 means full reflection and 0 means full absorption.
func (c Color) Attenuate(reflects Color) Color {
	return Color{
		R: uint8(uint16(c.R) * uint16(reflects.R) / 255),
		G: uint8(uint16(c.G) * uint16(reflects.G) / 255),
		B: uint8(uint16(c.B) * uint16(reflects.B) / 255),
	}
}

// Scale multiplies each channel by a factor in [0, 1]
func (c Color) Scale(factor float64) Color {
	if factor < 0 {
		factor = 0
	} else if factor > 1 {
		factor = 1
	}
	return Color{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
	}
}

// IsBlack reports whether all channels are zero
func (c Color) IsBlack() bool {
	return c.R == 0 && c.G == 0 && c.B == 0
}

// Luminance returns the perceptual brightness of the color in [0, 1]
func (c Color) Luminance() float64 {
	return (0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)) / 255.0
}

// ToRGBA converts the color to an opaque color.RGBA
func (c Color) ToRGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

func clampChannel(v uint16) uint8 {
	if v > 255 {
		return 255
	}
	return uint8(v)
}
