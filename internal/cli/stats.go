package cli

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/contrastgrid/internal/colour"
	"github.com/jmylchreest/contrastgrid/internal/generator"
	"github.com/jmylchreest/contrastgrid/internal/pairing"
)

func (a *app) newStatsCmd() *cobra.Command {
	var (
		flags   configFlags
		preview int
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print palette and contrast statistics",
		Long: `Build the palette and print how many ordered pairs exceed the minimum
contrast ratio, bucketed by whole ratio. Nothing is written.

With --preview N the N highest contrast pairs are also shown, drawn in their
own colours when stdout is a terminal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig(cmd.Flags(), &flags)
			if err != nil {
				return err
			}

			snap, err := generator.Generate(cmd.Context(), cfg, generator.WithLogger(a.logger(cmd)))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printStats(out, snap)
			if preview > 0 {
				fmt.Fprintln(out)
				printPreview(out, snap.Pairs, preview, isTerminal(out))
			}
			return nil
		},
	}

	flags.registerPalette(cmd.Flags())
	cmd.Flags().IntVar(&preview, "preview", 0, "show the N highest contrast pairs")

	return cmd
}

// printStats writes the summary and the contrast histogram.
func printStats(w io.Writer, snap *generator.Snapshot) {
	minimum := strconv.FormatFloat(snap.MinimumContrast, 'f', -1, 64)
	fmt.Fprintf(w, "%-22s%d\n", "Colours:", snap.Palette.Len())
	fmt.Fprintf(w, "%-22s%d\n", "Accessible pairings:", len(snap.Combos))
	fmt.Fprintf(w, "%-22s%d\n\n", "Pairs above "+minimum+":", len(snap.Pairs))

	table := NewTable([]string{"Contrast", "Pairs"}).AlignRight(1)
	for _, bucket := range snap.ContrastCounts.Buckets() {
		table.AddRow([]string{
			fmt.Sprintf("%d-%d", bucket, bucket+1),
			strconv.Itoa(snap.ContrastCounts[bucket]),
		})
	}
	fmt.Fprint(w, table.Render())
}

// printPreview lists the n highest contrast pairs. Ties keep palette order.
func printPreview(w io.Writer, pairs []pairing.Pair, n int, ansi bool) {
	sorted := slices.Clone(pairs)
	slices.SortStableFunc(sorted, func(a, b pairing.Pair) int {
		return cmp.Compare(b.Contrast, a.Contrast)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}

	for _, p := range sorted {
		label := fmt.Sprintf("%s on %s  %.2f:1", p.AccentColor, p.BaseColor, p.Contrast)
		if !ansi {
			fmt.Fprintln(w, label)
			continue
		}
		base, _ := colour.ParseHex(p.BaseColor)
		accent, _ := colour.ParseHex(p.AccentColor)
		fmt.Fprintln(w, colour.PairPreview(base, accent, label))
	}
}
