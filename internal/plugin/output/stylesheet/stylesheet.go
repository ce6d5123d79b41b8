// Package stylesheet provides the colour utility class output plugin.
package stylesheet

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/contrastgrid/internal/config"
	"github.com/jmylchreest/contrastgrid/internal/generator"
	"github.com/jmylchreest/contrastgrid/internal/plugin/output/common"
	tmplloader "github.com/jmylchreest/contrastgrid/internal/plugin/output/template"
)

//go:embed *.tmpl
var templates embed.FS

const templateFile = "colors.css.tmpl"

// Plugin writes one background and one text colour class per palette colour.
type Plugin struct {
	filename     string
	outputDir    string
	templateBase string
	logger       hclog.Logger
}

// New creates a stylesheet plugin with the default configuration.
func New() *Plugin {
	p := &Plugin{
		filename: "colors.css",
		logger:   hclog.NewNullLogger(),
	}
	p.Configure(config.Default())
	return p
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return config.OutputStylesheet
}

// Description returns the plugin description.
func (p *Plugin) Description() string {
	return "Generate .bg-<hex> and .color-<hex> utility classes"
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

// RegisterFlags registers plugin-specific flags.
func (p *Plugin) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&p.filename, "stylesheet.filename", p.filename, "Stylesheet file name")
}

// Validate checks if the plugin configuration is valid.
func (p *Plugin) Validate() error {
	if p.filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}
	return nil
}

// DefaultOutputDir returns the directory the stylesheet is written to.
func (p *Plugin) DefaultOutputDir() string {
	return p.outputDir
}

// Loader returns the template loader, honouring the configured override directory.
func (p *Plugin) Loader() *tmplloader.Loader {
	loader := tmplloader.New(p.Name(), templates).WithLogger(p.logger)
	if p.templateBase != "" {
		loader.WithCustomBase(p.templateBase)
	}
	return loader
}

// Generate renders the stylesheet in palette order.
func (p *Plugin) Generate(snap *generator.Snapshot) (map[string][]byte, error) {
	if snap == nil {
		return nil, fmt.Errorf("snapshot cannot be nil")
	}

	tmplContent, _, err := p.Loader().Load(templateFile)
	if err != nil {
		return nil, err
	}

	tmpl, err := template.New(p.filename).Funcs(common.TemplateFuncs()).Parse(string(tmplContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSS template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, snap.Palette); err != nil {
		return nil, fmt.Errorf("failed to execute CSS template: %w", err)
	}
	return map[string][]byte{p.filename: buf.Bytes()}, nil
}
