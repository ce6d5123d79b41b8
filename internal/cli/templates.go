package cli

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/contrastgrid/internal/config"
	"github.com/jmylchreest/contrastgrid/internal/plugin/output"
	tmplloader "github.com/jmylchreest/contrastgrid/internal/plugin/output/template"
)

// templated is implemented by output plugins whose templates can be
// overridden.
type templated interface {
	Loader() *tmplloader.Loader
}

func (a *app) newTemplatesCmd() *cobra.Command {
	var (
		plugins  []string
		location string
		force    bool
	)

	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Manage output plugin templates",
		Long: `List and dump the embedded output templates.

A template placed in {template-dir}/{plugin}/ is used instead of the embedded
one. The template directory defaults to ~/.config/contrastgrid/templates and
can be set with template_dir in the configuration file.`,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the templates of every templated plugin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loaders, err := a.templateLoaders(plugins, location)
			if err != nil {
				return err
			}

			table := NewTable([]string{"Plugin", "Template", "Source"})
			for _, name := range sortedKeys(loaders) {
				loader := loaders[name]
				files, err := loader.List()
				if err != nil {
					return fmt.Errorf("failed to list templates for %s: %w", name, err)
				}
				for _, file := range files {
					source := "embedded"
					if loader.HasCustomTemplate(file) {
						source = loader.CustomPath(file)
					}
					table.AddRow([]string{name, file, source})
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), table.Render())
			return nil
		},
	}
	listCmd.Flags().StringSliceVarP(&plugins, "output-plugins", "o", nil, "plugins to list (default: all)")
	listCmd.Flags().StringVarP(&location, "location", "l", "", "template directory (default: from configuration)")

	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Copy embedded templates to the template directory",
		Long: `Copy embedded templates to {template-dir}/{plugin}/ for editing.

Existing overrides are kept unless --force is given.

Examples:
  contrastgrid templates dump
  contrastgrid templates dump -o markup --force
  contrastgrid templates dump -l ./templates`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loaders, err := a.templateLoaders(plugins, location)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			var skipped []error
			for _, name := range sortedKeys(loaders) {
				dumped, err := loaders[name].DumpAll(force)
				for _, path := range dumped {
					fmt.Fprintf(out, "wrote %s\n", path)
				}
				if errors.Is(err, tmplloader.ErrExists) {
					skipped = append(skipped, err)
					continue
				}
				if err != nil {
					return err
				}
			}
			if len(skipped) > 0 {
				return fmt.Errorf("%w (use --force to overwrite)", errors.Join(skipped...))
			}
			return nil
		},
	}
	dumpCmd.Flags().StringSliceVarP(&plugins, "output-plugins", "o", nil, "plugins to dump (default: all)")
	dumpCmd.Flags().StringVarP(&location, "location", "l", "", "template directory (default: from configuration)")
	dumpCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing custom templates")

	cmd.AddCommand(listCmd, dumpCmd)
	return cmd
}

// templateLoaders returns the loaders of the named plugins, or of every
// templated plugin when names is empty, pointed at location or at the
// configured template directory.
func (a *app) templateLoaders(names []string, location string) (map[string]*tmplloader.Loader, error) {
	cfg := config.Default()
	if a.configPath != "" {
		loaded, err := config.Load(a.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if location != "" {
		cfg.TemplateDir = location
	}

	explicit := len(names) > 0
	if !explicit {
		names = a.registry.List()
	}

	loaders := make(map[string]*tmplloader.Loader)
	for _, name := range names {
		plugin, ok := a.registry.Get(name)
		if !ok {
			return nil, fmt.Errorf("unknown output plugin: %s", name)
		}
		t, ok := plugin.(templated)
		if !ok {
			if explicit {
				return nil, fmt.Errorf("plugin %s has no templates", name)
			}
			continue
		}
		if c, ok := plugin.(output.Configurable); ok {
			c.Configure(cfg)
		}
		loaders[name] = t.Loader()
	}
	return loaders, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
