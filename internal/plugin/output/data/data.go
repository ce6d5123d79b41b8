// Package data provides the palette data output plugin.
package data

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/pflag"

	"github.com/jmylchreest/contrastgrid/internal/compression"
	"github.com/jmylchreest/contrastgrid/internal/config"
	"github.com/jmylchreest/contrastgrid/internal/generator"
	"github.com/jmylchreest/contrastgrid/internal/pairing"
	"github.com/jmylchreest/contrastgrid/internal/palette"
)

const modulePrefix = "module.exports = "

// Plugin writes the cross-joined combos for the page renderer and a
// summary of the whole run.
type Plugin struct {
	format      string // "json" or "module"
	outputDir   string
	compress    bool
	compression string
	indent      bool
}

// New creates a data plugin with the default configuration.
func New() *Plugin {
	p := &Plugin{compression: string(compression.XZ)}
	p.Configure(config.Default())
	return p
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return config.OutputData
}

// Description returns the plugin description.
func (p *Plugin) Description() string {
	return "Write palette combos and contrast statistics as structured data"
}

// Configure implements output.Configurable.
func (p *Plugin) Configure(cfg config.Config) {
	p.format = cfg.DataFormat
	p.outputDir = cfg.DataDir
	p.compress = cfg.Compress
}

// RegisterFlags registers plugin-specific flags.
func (p *Plugin) RegisterFlags(flags *pflag.FlagSet) {
	flags.BoolVar(&p.indent, "data.indent", p.indent, "Indent generated JSON")
	flags.StringVar(&p.compression, "data.compression", p.compression, "Format of compressed copies (xz, gzip)")
}

// Validate checks if the plugin configuration is valid.
func (p *Plugin) Validate() error {
	if p.format != config.FormatJSON && p.format != config.FormatModule {
		return fmt.Errorf("invalid format: %s (must be '%s' or '%s')", p.format, config.FormatJSON, config.FormatModule)
	}
	if p.outputDir == "" {
		return fmt.Errorf("output directory cannot be empty")
	}
	if !compression.Format(p.compression).Valid() {
		return fmt.Errorf("invalid compression: %s (must be one of %v)", p.compression, compression.Formats())
	}
	return nil
}

// DefaultOutputDir returns the directory data files are written to.
func (p *Plugin) DefaultOutputDir() string {
	return p.outputDir
}

// Summary is the content of palette.json.
type Summary struct {
	MinimumContrast   float64           `json:"minimumContrast"`
	All               []palette.Colour  `json:"all"`
	Sorted            []palette.Colour  `json:"sorted"`
	ColorCombinations []pairing.Pair    `json:"colorCombinations"`
	ContrastCounts    pairing.Histogram `json:"contrastCounts"`
}

// Generate creates colors.js (or colors.json) holding the combos and
// palette.json holding the summary.
func (p *Plugin) Generate(snap *generator.Snapshot) (map[string][]byte, error) {
	if snap == nil {
		return nil, fmt.Errorf("snapshot cannot be nil")
	}

	combos := snap.Combos
	if combos == nil {
		combos = []pairing.Combo{}
	}
	combosJSON, err := p.marshal(combos)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal combos: %w", err)
	}

	pairs := snap.Pairs
	if pairs == nil {
		pairs = []pairing.Pair{}
	}
	summaryJSON, err := p.marshal(Summary{
		MinimumContrast:   snap.MinimumContrast,
		All:               snap.Palette.Colours,
		Sorted:            snap.Sorted,
		ColorCombinations: pairs,
		ContrastCounts:    snap.ContrastCounts,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal summary: %w", err)
	}

	files := make(map[string][]byte)
	if p.format == config.FormatModule {
		files["colors.js"] = append([]byte(modulePrefix), combosJSON...)
	} else {
		files["colors.json"] = combosJSON
	}
	files["palette.json"] = summaryJSON

	if p.compress {
		format := compression.Format(p.compression)
		for _, name := range slices.Sorted(maps.Keys(files)) {
			packed, err := compression.Compress(format, files[name])
			if err != nil {
				return nil, fmt.Errorf("failed to compress %s: %w", name, err)
			}
			files[name+format.Extension()] = packed
		}
	}

	return files, nil
}

func (p *Plugin) marshal(v any) ([]byte, error) {
	if p.indent {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
