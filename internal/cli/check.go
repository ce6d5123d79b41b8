package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/contrastgrid/internal/colour"
	"github.com/jmylchreest/contrastgrid/internal/pairing"
	"github.com/jmylchreest/contrastgrid/internal/palette"
)

func (a *app) newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <base> <accent>",
		Short: "Check the contrast of one colour pair",
		Long: `Print the contrast ratio of accent text on a base colour and the WCAG
guidelines the pair meets.

Examples:
  contrastgrid check '#336699' '#FFFFFF'
  contrastgrid check 000000 00CCFF`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := palette.NewColour(withHash(args[0]))
			if err != nil {
				return fmt.Errorf("base colour: %w", err)
			}
			accent, err := palette.NewColour(withHash(args[1]))
			if err != nil {
				return fmt.Errorf("accent colour: %w", err)
			}

			guidelines, err := pairing.WCAG{}.Classify(base.Hex, accent.Hex)
			if err != nil {
				return err
			}
			rounded, err := pairing.RoundedRatio(base.Hex, accent.Hex)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			ratio := colour.ContrastRatio(base.RGB(), accent.RGB())
			fmt.Fprintf(out, "%s on %s\n", accent.Hex, base.Hex)
			fmt.Fprintf(out, "%-12s%.2f:1 (%s)\n", "Contrast:", rounded, strconv.FormatFloat(ratio, 'f', 4, 64))
			fmt.Fprintf(out, "%-12s%.4f / %.4f\n", "Luminance:", base.Luminance, accent.Luminance)
			fmt.Fprintf(out, "%-12s%s\n", "Base text:", base.Contrast.Text)
			if isTerminal(out) {
				fmt.Fprintf(out, "%-12s%s\n", "Swatches:", swatches(base, accent))
				fmt.Fprintf(out, "%-12s%s\n", "Preview:", colour.PairPreview(base.RGB(), accent.RGB(), "Sample text"))
			}
			fmt.Fprintln(out)

			table := NewTable([]string{"Guideline", "Minimum", "Result"})
			for _, name := range guidelines.Names() {
				result := "fail"
				if guidelines[name] {
					result = "pass"
				}
				minimum := strconv.FormatFloat(pairing.WCAGThresholds[name], 'f', -1, 64)
				table.AddRow([]string{name, minimum + ":1", result})
			}
			fmt.Fprint(out, table.Render())
			return nil
		},
	}
}

// swatchWidth is the width of a labelled swatch in characters.
const swatchWidth = 9

// swatches renders each colour as a block labelled with its hex value.
func swatches(colours ...palette.Colour) string {
	blocks := make([]string, len(colours))
	for i, c := range colours {
		blocks[i] = colour.ColourPreviewWithText(c.RGB(), c.Hex, swatchWidth)
	}
	return strings.Join(blocks, " ")
}

// withHash prefixes a bare hex value with '#'.
func withHash(s string) string {
	if strings.HasPrefix(s, "#") {
		return s
	}
	return "#" + s
}
