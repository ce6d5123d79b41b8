// Package palette builds the candidate colour palette from a byte-pair
// alphabet and enriches every colour with its HSL, luminance and text
// contrast metrics.
package palette

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jmylchreest/contrastgrid/internal/colour"
	"github.com/jmylchreest/contrastgrid/internal/combinatorics"
)

// Width is the number of byte-pair tokens joined into one hex colour.
const Width = 3

// DefaultRepeat is how many copies of the alphabet are fed to the
// permutation engine. Repeating lets a channel value appear more than once
// in a colour.
const DefaultRepeat = 3

// DefaultAlphabet is the web-safe channel alphabet.
var DefaultAlphabet = []string{"00", "33", "66", "99", "CC", "FF"}

// Text colour names.
const (
	TextBlack = "black"
	TextWhite = "white"
)

// Contrast holds a colour's contrast against black and white text.
type Contrast struct {
	Black float64 `json:"black"`
	White float64 `json:"white"`
	Max   float64 `json:"max"`
	Text  string  `json:"text"`
}

// Colour is a palette entry with all derived metrics.
type Colour struct {
	R         uint8    `json:"r"`
	G         uint8    `json:"g"`
	B         uint8    `json:"b"`
	Hex       string   `json:"hex"`
	H         float64  `json:"h"`
	S         float64  `json:"s"`
	L         float64  `json:"l"`
	Luminance float64  `json:"luminance"`
	Contrast  Contrast `json:"contrast"`
}

// NewColour parses hex and computes its derived metrics.
func NewColour(hex string) (Colour, error) {
	rgb, err := colour.Parse(hex)
	if err != nil {
		return Colour{}, err
	}

	hsl := colour.ToHSL(rgb)
	black := colour.Contrast(rgb, colour.Black)
	white := colour.Contrast(colour.White, rgb)

	c := Contrast{Black: black, White: white, Max: white, Text: TextWhite}
	if black > white {
		c.Max = black
		c.Text = TextBlack
	}

	return Colour{
		R:         rgb.R,
		G:         rgb.G,
		B:         rgb.B,
		Hex:       hex,
		H:         hsl.H,
		S:         hsl.S,
		L:         hsl.L,
		Luminance: rgb.Luminance(),
		Contrast:  c,
	}, nil
}

// RGB returns the colour's channels.
func (c Colour) RGB() colour.RGB {
	return colour.RGB{R: c.R, G: c.G, B: c.B}
}

// Digits returns the hex value without its leading '#'.
func (c Colour) Digits() string {
	return strings.TrimPrefix(c.Hex, "#")
}

// Builder generates palettes from a token alphabet.
type Builder struct {
	alphabet  []string
	repeat    int
	maxTuples int
}

// NewBuilder creates a Builder for alphabet, repeated repeat times.
func NewBuilder(alphabet []string, repeat int) *Builder {
	return &Builder{
		alphabet:  slices.Clone(alphabet),
		repeat:    repeat,
		maxTuples: combinatorics.DefaultMaxTuples,
	}
}

// NewDefaultBuilder creates a Builder for the web-safe alphabet.
func NewDefaultBuilder() *Builder {
	return NewBuilder(DefaultAlphabet, DefaultRepeat)
}

// WithMaxTuples sets the permutation tuple limit.
func (b *Builder) WithMaxTuples(limit int) *Builder {
	b.maxTuples = limit
	return b
}

// Tokens returns the alphabet concatenated repeat times.
func (b *Builder) Tokens() []string {
	tokens := make([]string, 0, len(b.alphabet)*b.repeat)
	for i := 0; i < b.repeat; i++ {
		tokens = append(tokens, b.alphabet...)
	}
	return tokens
}

// Candidates permutes the tokens Width at a time, joins each selection
// into a "#rrggbb" string and drops duplicates, keeping first appearance
// order.
func (b *Builder) Candidates() ([]string, error) {
	if b.repeat < 1 {
		return nil, fmt.Errorf("repeat must be at least 1, got %d", b.repeat)
	}

	perms, err := combinatorics.Permutations(b.Tokens(), Width, combinatorics.WithMaxTuples(b.maxTuples))
	if err != nil {
		return nil, fmt.Errorf("failed to permute alphabet: %w", err)
	}

	seen := make(map[string]struct{}, len(perms))
	hexes := make([]string, 0)
	for _, p := range perms {
		hex := "#" + strings.Join(p, "")
		if _, ok := seen[hex]; ok {
			continue
		}
		seen[hex] = struct{}{}
		hexes = append(hexes, hex)
	}
	return hexes, nil
}

// Build generates the candidates and enriches each into a Colour.
func (b *Builder) Build() (*Palette, error) {
	hexes, err := b.Candidates()
	if err != nil {
		return nil, err
	}

	colours := make([]Colour, len(hexes))
	for i, hex := range hexes {
		c, err := NewColour(hex)
		if err != nil {
			return nil, fmt.Errorf("candidate %d: %w", i, err)
		}
		colours[i] = c
	}
	return NewPalette(colours), nil
}
