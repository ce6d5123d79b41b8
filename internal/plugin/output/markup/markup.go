// Package markup provides the static HTML page output plugin.
package markup

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/contrastgrid/internal/config"
	"github.com/jmylchreest/contrastgrid/internal/generator"
	"github.com/jmylchreest/contrastgrid/internal/pairing"
	"github.com/jmylchreest/contrastgrid/internal/palette"
	"github.com/jmylchreest/contrastgrid/internal/plugin/output/common"
	tmplloader "github.com/jmylchreest/contrastgrid/internal/plugin/output/template"
)

//go:embed index.html.tmpl scripts.js
var assets embed.FS

const (
	pageFile     = "index.html"
	pageTemplate = "index.html.tmpl"
	scriptFile   = "scripts.js"
)

// Plugin renders the combos into a static page with one section per base
// colour. Clicking an accent swatch recolours the section's primary text.
type Plugin struct {
	title        string
	stylesheet   string
	outputDir    string
	templateBase string
	logger       hclog.Logger
}

// New creates a markup plugin with the default configuration.
func New() *Plugin {
	p := &Plugin{
		title:      "Accessible colour combinations",
		stylesheet: "colors.css",
		logger:     hclog.NewNullLogger(),
	}
	p.Configure(config.Default())
	return p
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return config.OutputMarkup
}

// Description returns the plugin description.
func (p *Plugin) Description() string {
	return "Render a static HTML page of accessible colour pairings"
}

// Configure implements output.Configurable.
func (p *Plugin) Configure(cfg config.Config) {
	p.outputDir = cfg.OutputDir
	p.templateBase = cfg.TemplateBase()
}

// SetLogger implements output.LoggerSetter.
func (p *Plugin) SetLogger(logger hclog.Logger) {
	p.logger = logger
}

// Loader returns the template loader, honouring the configured override
// directory. Both the page template and the script can be overridden.
func (p *Plugin) Loader() *tmplloader.Loader {
	loader := tmplloader.New(p.Name(), assets).WithLogger(p.logger)
	if p.templateBase != "" {
		loader.WithCustomBase(p.templateBase)
	}
	return loader
}

// RegisterFlags registers plugin-specific flags.
func (p *Plugin) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&p.title, "markup.title", p.title, "Page title")
	flags.StringVar(&p.stylesheet, "markup.stylesheet", p.stylesheet, "Stylesheet href linked from the page")
}

// Validate checks if the plugin configuration is valid.
func (p *Plugin) Validate() error {
	if strings.TrimSpace(p.title) == "" {
		return fmt.Errorf("title cannot be empty")
	}
	return nil
}

// DefaultOutputDir returns the directory the page is written to.
func (p *Plugin) DefaultOutputDir() string {
	return p.outputDir
}

// PageData holds data for the page template.
type PageData struct {
	Title           string
	Stylesheet      string
	Script          string
	ColourCount     int
	ComboCount      int
	PairCount       int
	MinimumContrast float64
	Sorted          []palette.Colour
	Groups          []pairing.ComboGroup
}

// Generate renders index.html and copies the click handler script.
func (p *Plugin) Generate(snap *generator.Snapshot) (map[string][]byte, error) {
	if snap == nil {
		return nil, fmt.Errorf("snapshot cannot be nil")
	}

	loader := p.Loader()
	tmplContent, _, err := loader.Load(pageTemplate)
	if err != nil {
		return nil, err
	}

	tmpl, err := template.New(pageFile).Funcs(template.FuncMap(common.TemplateFuncs())).Parse(string(tmplContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}

	data := PageData{
		Title:           p.title,
		Stylesheet:      p.stylesheet,
		Script:          scriptFile,
		ColourCount:     snap.Palette.Len(),
		ComboCount:      len(snap.Combos),
		PairCount:       len(snap.Pairs),
		MinimumContrast: snap.MinimumContrast,
		Sorted:          snap.Sorted,
		Groups:          snap.Groups,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute page template: %w", err)
	}

	script, _, err := loader.Load(scriptFile)
	if err != nil {
		return nil, err
	}

	return map[string][]byte{
		pageFile:   buf.Bytes(),
		scriptFile: script,
	}, nil
}
