// Package swatches provides the PNG contact sheet output plugin.
package swatches

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"

	"github.com/spf13/pflag"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/jmylchreest/contrastgrid/internal/colour"
	"github.com/jmylchreest/contrastgrid/internal/config"
	"github.com/jmylchreest/contrastgrid/internal/generator"
	"github.com/jmylchreest/contrastgrid/internal/palette"
)

const (
	filename       = "swatches.png"
	defaultColumns = 18
	defaultSize    = 48
	minSize        = 8
	maxSize        = 512
	labelPadding   = 2
)

// Plugin draws every palette colour, in sorted order, as a square cell of
// a grid. Cells wide enough for the hex digits are labelled in black or
// white, whichever contrasts more.
type Plugin struct {
	columns   int
	size      int
	labels    bool
	outputDir string
}

// New creates a swatches plugin with the default configuration.
func New() *Plugin {
	p := &Plugin{
		columns: defaultColumns,
		size:    defaultSize,
		labels:  true,
	}
	p.Configure(config.Default())
	return p
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return config.OutputSwatches
}

// Description returns the plugin description.
func (p *Plugin) Description() string {
	return "Render the sorted palette as a labelled PNG contact sheet"
}

// Configure implements output.Configurable.
func (p *Plugin) Configure(cfg config.Config) {
	p.outputDir = cfg.OutputDir
}

// RegisterFlags registers plugin-specific flags.
func (p *Plugin) RegisterFlags(flags *pflag.FlagSet) {
	flags.IntVar(&p.columns, "swatches.columns", p.columns, "Swatches per row")
	flags.IntVar(&p.size, "swatches.size", p.size, "Swatch edge length in pixels")
	flags.BoolVar(&p.labels, "swatches.labels", p.labels, "Label swatches with their hex digits")
}

// Validate checks if the plugin configuration is valid.
func (p *Plugin) Validate() error {
	if p.columns < 1 {
		return fmt.Errorf("columns must be at least 1, got %d", p.columns)
	}
	if p.size < minSize || p.size > maxSize {
		return fmt.Errorf("size must be between %d and %d, got %d", minSize, maxSize, p.size)
	}
	return nil
}

// DefaultOutputDir returns the directory the contact sheet is written to.
func (p *Plugin) DefaultOutputDir() string {
	return p.outputDir
}

// Generate encodes the contact sheet as swatches.png.
func (p *Plugin) Generate(snap *generator.Snapshot) (map[string][]byte, error) {
	if snap == nil {
		return nil, fmt.Errorf("snapshot cannot be nil")
	}
	if len(snap.Sorted) == 0 {
		return nil, fmt.Errorf("palette is empty")
	}

	img := p.Draw(snap.Sorted)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode swatches: %w", err)
	}
	return map[string][]byte{filename: buf.Bytes()}, nil
}

// Draw lays colours out left to right, top to bottom. The grid is never
// wider than the number of colours.
func (p *Plugin) Draw(colours []palette.Colour) *image.RGBA {
	columns := min(p.columns, len(colours))
	rows := (len(colours) + columns - 1) / columns

	img := image.NewRGBA(image.Rect(0, 0, columns*p.size, rows*p.size))
	face := basicfont.Face7x13

	for i, c := range colours {
		x := (i % columns) * p.size
		y := (i / columns) * p.size
		cell := image.Rect(x, y, x+p.size, y+p.size)
		rgb := c.RGB()
		draw.Draw(img, cell, image.NewUniform(colour.RGBToColor(rgb)), image.Point{}, draw.Src)

		if !p.labels {
			continue
		}
		label := c.Digits()
		width := font.MeasureString(face, label).Ceil()
		if width+2*labelPadding > p.size || face.Height+2*labelPadding > p.size {
			continue
		}

		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(colour.RGBToColor(colour.TextColour(rgb))),
			Face: face,
			Dot: fixed.P(
				x+(p.size-width)/2,
				y+(p.size+face.Ascent-face.Descent)/2,
			),
		}
		d.DrawString(label)
	}
	return img
}
