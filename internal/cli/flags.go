package cli

import (
	"github.com/spf13/pflag"

	"github.com/jmylchreest/contrastgrid/internal/config"
)

// configFlags are command line overrides of the configuration file.
// Only flags the user set are applied.
type configFlags struct {
	alphabet        []string
	repeat          int
	minimumContrast float64
	maxTuples       int
	maxPairs        int

	// Output settings, registered by generate only.
	outputDir   string
	dataDir     string
	outputs     []string
	dataFormat  string
	compress    bool
	templateDir string
}

// registerPalette registers the flags that shape the palette.
func (f *configFlags) registerPalette(flags *pflag.FlagSet) {
	def := config.Default()
	flags.StringSliceVar(&f.alphabet, "alphabet", def.Alphabet, "two digit hex tokens the palette is built from")
	flags.IntVar(&f.repeat, "repeat", def.Repeat, "copies of the alphabet fed to the permutation engine")
	flags.Float64Var(&f.minimumContrast, "minimum-contrast", def.MinimumContrast, "contrast ratio a high contrast pair must exceed")
	flags.IntVar(&f.maxTuples, "max-tuples", def.MaxTuples, "refuse to enumerate more tuples than this")
	flags.IntVar(&f.maxPairs, "max-pairs", def.MaxPairs, "refuse to cross-join a palette into more pairs than this")
}

// registerOutput registers the flags that control emitted assets.
func (f *configFlags) registerOutput(flags *pflag.FlagSet) {
	def := config.Default()
	flags.StringVar(&f.outputDir, "output-dir", def.OutputDir, "directory for the stylesheet, page and swatches")
	flags.StringVar(&f.dataDir, "data-dir", def.DataDir, "directory for the palette data files")
	flags.StringSliceVarP(&f.outputs, "outputs", "o", def.Outputs, "output plugins to run")
	flags.StringVar(&f.dataFormat, "data-format", def.DataFormat, "data file format (json, module)")
	flags.BoolVar(&f.compress, "compress", def.Compress, "also write xz compressed data files")
	flags.StringVar(&f.templateDir, "template-dir", def.TemplateDir, "directory holding template overrides")
}

// apply copies every changed flag onto cfg.
func (f *configFlags) apply(flags *pflag.FlagSet, cfg *config.Config) {
	set := func(name string, fn func()) {
		if flag := flags.Lookup(name); flag != nil && flag.Changed {
			fn()
		}
	}

	set("alphabet", func() { cfg.Alphabet = f.alphabet })
	set("repeat", func() { cfg.Repeat = f.repeat })
	set("minimum-contrast", func() { cfg.MinimumContrast = f.minimumContrast })
	set("max-tuples", func() { cfg.MaxTuples = f.maxTuples })
	set("max-pairs", func() { cfg.MaxPairs = f.maxPairs })
	set("output-dir", func() { cfg.OutputDir = f.outputDir })
	set("data-dir", func() { cfg.DataDir = f.dataDir })
	set("outputs", func() { cfg.Outputs = f.outputs })
	set("data-format", func() { cfg.DataFormat = f.dataFormat })
	set("compress", func() { cfg.Compress = f.compress })
	set("template-dir", func() { cfg.TemplateDir = f.templateDir })
}

// loadConfig reads the configuration file, if any, applies flag overrides
// and validates the merged result.
func (a *app) loadConfig(flags *pflag.FlagSet, f *configFlags) (config.Config, error) {
	cfg := config.Default()
	if a.configPath != "" {
		loaded, err := config.Read(a.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	f.apply(flags, &cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
