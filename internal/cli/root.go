// Package cli provides the command-line interface for contrastgrid.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jmylchreest/contrastgrid/internal/plugin/output"
	"github.com/jmylchreest/contrastgrid/internal/plugin/output/data"
	"github.com/jmylchreest/contrastgrid/internal/plugin/output/markup"
	"github.com/jmylchreest/contrastgrid/internal/plugin/output/stylesheet"
	swatchesplugin "github.com/jmylchreest/contrastgrid/internal/plugin/output/swatches"
	"github.com/jmylchreest/contrastgrid/internal/version"
)

// app holds state shared by the commands of one root command.
type app struct {
	registry   *output.Registry
	configPath string
	verbose    bool
	quiet      bool
}

// NewRootCmd builds the contrastgrid command tree.
func NewRootCmd() *cobra.Command {
	a := &app{registry: newRegistry()}

	rootCmd := &cobra.Command{
		Use:   "contrastgrid",
		Short: "Build-time generator for accessible colour palettes",
		Long: `contrastgrid enumerates a palette of colours from a small alphabet of hex
digit pairs, measures the WCAG contrast of every pairing and writes the result
as static assets: palette data, a utility stylesheet and a demo page.

With no configuration it reproduces the 216 colour web-safe palette.`,
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML configuration file")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(a.newGenerateCmd())
	rootCmd.AddCommand(a.newStatsCmd())
	rootCmd.AddCommand(a.newCheckCmd())
	rootCmd.AddCommand(a.newTemplatesCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		os.Exit(1)
	}
}

// newRegistry registers every built-in output plugin.
func newRegistry() *output.Registry {
	r := output.NewRegistry()
	r.Register(data.New())
	r.Register(stylesheet.New())
	r.Register(markup.New())
	r.Register(swatchesplugin.New())
	return r
}

// logger builds the run logger. Logs go to the command's stderr and are
// coloured only when that is a terminal.
func (a *app) logger(cmd *cobra.Command) hclog.Logger {
	level := hclog.Info
	switch {
	case a.quiet:
		level = hclog.Error
	case a.verbose:
		level = hclog.Debug
	}

	out := cmd.ErrOrStderr()
	color := hclog.ColorOff
	if isTerminal(out) {
		color = hclog.AutoColor
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   "contrastgrid",
		Output: out,
		Level:  level,
		Color:  color,
	})
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) // #nosec G115 - file descriptors fit in int
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
