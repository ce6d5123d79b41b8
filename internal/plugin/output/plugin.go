// Package output provides the interface and registry for asset emitters.
package output

import (
	"fmt"
	"slices"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/contrastgrid/internal/config"
	"github.com/jmylchreest/contrastgrid/internal/generator"
)

// Plugin represents an output plugin that turns a generation snapshot into
// one or more asset files.
type Plugin interface {
	// Name returns the plugin's name (e.g., "data", "stylesheet").
	Name() string

	// Description returns a human-readable description of the plugin.
	Description() string

	// Generate creates output file(s) from the given snapshot.
	// Returns map of filename -> content relative to DefaultOutputDir.
	Generate(snap *generator.Snapshot) (map[string][]byte, error)

	// RegisterFlags registers plugin-specific flags.
	RegisterFlags(flags *pflag.FlagSet)

	// Validate checks if the plugin configuration is valid.
	Validate() error

	// DefaultOutputDir returns the directory generated files are written to.
	DefaultOutputDir() string
}

// Configurable is implemented by plugins that take settings from the run
// configuration.
type Configurable interface {
	Configure(cfg config.Config)
}

// LoggerSetter is implemented by plugins that report progress.
type LoggerSetter interface {
	SetLogger(logger hclog.Logger)
}

// Registry holds all registered output plugins.
type Registry struct {
	plugins map[string]Plugin
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		plugins: make(map[string]Plugin),
	}
}

// Register adds a plugin to the registry.
func (r *Registry) Register(plugin Plugin) {
	r.plugins[plugin.Name()] = plugin
}

// Get retrieves a plugin by name.
func (r *Registry) Get(name string) (Plugin, bool) {
	plugin, ok := r.plugins[name]
	return plugin, ok
}

// List returns all registered plugin names in sorted order.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.plugins))
	for name := range r.plugins {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Select returns the named plugins in the order given, configured from cfg.
func (r *Registry) Select(names []string, cfg config.Config, logger hclog.Logger) ([]Plugin, error) {
	selected := make([]Plugin, 0, len(names))
	for _, name := range names {
		plugin, ok := r.Get(name)
		if !ok {
			return nil, fmt.Errorf("unknown output plugin: %s (available: %s)", name, strings.Join(r.List(), ", "))
		}
		if c, ok := plugin.(Configurable); ok {
			c.Configure(cfg)
		}
		if l, ok := plugin.(LoggerSetter); ok && logger != nil {
			l.SetLogger(logger.Named(name))
		}
		selected = append(selected, plugin)
	}
	return selected, nil
}

// RegisterFlags registers the flags of every plugin on flags.
func (r *Registry) RegisterFlags(flags *pflag.FlagSet) {
	for _, name := range r.List() {
		r.plugins[name].RegisterFlags(flags)
	}
}
