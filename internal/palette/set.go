package palette

import (
	"cmp"
	"slices"
)

// Palette is an ordered set of unique colours.
type Palette struct {
	Colours []Colour
}

// NewPalette creates a Palette with the given colours.
func NewPalette(colours []Colour) *Palette {
	return &Palette{
		Colours: colours,
	}
}

// Len returns the number of colours in the palette.
func (p *Palette) Len() int {
	return len(p.Colours)
}

// Hexes returns the hex value of every colour in palette order.
func (p *Palette) Hexes() []string {
	hexes := make([]string, len(p.Colours))
	for i, c := range p.Colours {
		hexes[i] = c.Hex
	}
	return hexes
}

// Sorted returns a copy of the colours ordered by hue, then luminance,
// then saturation. Equal keys keep palette order.
func (p *Palette) Sorted() []Colour {
	sorted := slices.Clone(p.Colours)
	slices.SortStableFunc(sorted, func(a, b Colour) int {
		return cmp.Or(
			cmp.Compare(a.H, b.H),
			cmp.Compare(a.Luminance, b.Luminance),
			cmp.Compare(a.S, b.S),
		)
	})
	return sorted
}
