// Package colour provides conversions between hex, RGB and HSL colour
// representations along with WCAG luminance and contrast calculations.
package colour

import (
	"encoding/hex"
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"
)

// ErrInvalidHex is returned by helpers that cannot fall back softly on a
// malformed hex colour.
var ErrInvalidHex = errors.New("invalid hex colour")

// RGB represents a color in RGB format.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Black and White are the reference colours for text contrast.
var (
	Black = RGB{R: 0, G: 0, B: 0}
	White = RGB{R: 255, G: 255, B: 255}
)

// String returns the RGB color as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB color as a hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// Luminance returns the relative luminance of the colour.
func (rgb RGB) Luminance() float64 {
	return RelativeLuminance(rgb.R, rgb.G, rgb.B)
}

// RGBToColor converts an RGB value to a color.Color (RGBA).
func RGBToColor(rgb RGB) color.Color {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

// ParseHex parses a "#rrggbb" or "rrggbb" string, case-insensitively.
// Any other shape, including three digit shorthand, reports false.
func ParseHex(s string) (RGB, bool) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return RGB{}, false
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return RGB{}, false
	}
	return RGB{R: b[0], G: b[1], B: b[2]}, true
}

// Parse is like ParseHex but reports malformed input as ErrInvalidHex.
func Parse(s string) (RGB, error) {
	rgb, ok := ParseHex(s)
	if !ok {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	return rgb, nil
}

// HSL is a colour in HSL space. H is in degrees [0, 360), S and L are
// percentages in [0, 100].
type HSL struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

// ToHSL converts RGB to HSL colour space.
func ToHSL(rgb RGB) HSL {
	r := float64(rgb.R) / 255.0
	g := float64(rgb.G) / 255.0
	b := float64(rgb.B) / 255.0

	maxVal := math.Max(r, math.Max(g, b))
	minVal := math.Min(r, math.Min(g, b))

	// Lightness.
	l := (maxVal + minVal) / 2.0
	var h, s float64

	if maxVal != minVal {
		delta := maxVal - minVal

		// Saturation.
		if l < 0.5 {
			s = delta / (maxVal + minVal)
		} else {
			s = delta / (2.0 - maxVal - minVal)
		}

		// Hue. Red wins ties, then green.
		switch maxVal {
		case r:
			h = (g - b) / delta
		case g:
			h = 2.0 + (b-r)/delta
		default:
			h = 4.0 + (r-g)/delta
		}
	}

	h *= 60
	if h < 0 {
		h += 360
	}

	return HSL{H: h, S: s * 100, L: l * 100}
}
