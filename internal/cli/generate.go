package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/contrastgrid/internal/generator"
	"github.com/jmylchreest/contrastgrid/internal/plugin/output"
)

func (a *app) newGenerateCmd() *cobra.Command {
	var (
		flags  configFlags
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the palette assets",
		Long: `Generate the palette, cross-join it and write the selected assets.

Output plugins:
` + a.pluginHelp() + `
Every file is rendered before anything is written. If any plugin fails
nothing is written.

Examples:
  # Web-safe palette into ./public and ./src
  contrastgrid generate

  # Coarser alphabet, JSON data, PNG contact sheet
  contrastgrid generate --alphabet 00,80,FF --data-format json -o data,swatches

  # Show what would be written
  contrastgrid generate --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runGenerate(cmd, &flags, dryRun)
		},
	}

	flags.registerPalette(cmd.Flags())
	flags.registerOutput(cmd.Flags())
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "list the files that would be written without writing them")
	a.registry.RegisterFlags(cmd.Flags())

	return cmd
}

func (a *app) runGenerate(cmd *cobra.Command, flags *configFlags, dryRun bool) error {
	log := a.logger(cmd)

	cfg, err := a.loadConfig(cmd.Flags(), flags)
	if err != nil {
		return err
	}

	plugins, err := a.registry.Select(cfg.Outputs, cfg, log)
	if err != nil {
		return err
	}

	snap, err := generator.Generate(cmd.Context(), cfg, generator.WithLogger(log))
	if err != nil {
		return err
	}

	files, err := output.Render(plugins, snap, log)
	if err != nil {
		return fmt.Errorf("failed to render outputs: %w", err)
	}

	if dryRun {
		out := cmd.OutOrStdout()
		table := NewTable([]string{"Plugin", "File", "Bytes"}).AlignRight(2)
		for _, f := range files {
			table.AddRow([]string{f.Plugin, f.Path, fmt.Sprint(len(f.Content))})
		}
		fmt.Fprint(out, table.Render())
		fmt.Fprintf(out, "\n%d files would be written (dry run)\n", len(files))
		return nil
	}

	if err := output.Commit(files, log); err != nil {
		return err
	}
	log.Info("generation finished", "files", len(files))
	return nil
}

// pluginHelp lists the registered output plugins for the help text.
func (a *app) pluginHelp() string {
	var b strings.Builder
	for _, name := range a.registry.List() {
		plugin, _ := a.registry.Get(name)
		fmt.Fprintf(&b, "  %-11s %s\n", name, plugin.Description())
	}
	return b.String()
}
