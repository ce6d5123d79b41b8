package colour

import (
	"fmt"
	"strings"
)

// ANSI escape codes for terminal colours.
const (
	ansiReset    = "\033[0m"
	ansiFgPrefix = "\033[38;2;"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	defaultWidth = 8
)

// TextColour returns Black or White, whichever contrasts more with bg.
// Ties go to White.
func TextColour(bg RGB) RGB {
	if Contrast(bg, Black) > Contrast(White, bg) {
		return Black
	}
	return White
}

// ColourPreviewWithText returns a colour block with centred text drawn in
// the higher contrast of black or white.
func ColourPreviewWithText(c RGB, text string, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	displayText := text
	if len(text) > width {
		displayText = text[:width]
	} else if len(text) < width {
		padding := (width - len(text)) / 2
		displayText = strings.Repeat(" ", padding) + text + strings.Repeat(" ", width-len(text)-padding)
	}

	return bgEscape(c) + fgEscape(TextColour(c)) + displayText + ansiReset
}

// PairPreview renders text in the accent colour on a block of the base colour.
func PairPreview(base, accent RGB, text string) string {
	return bgEscape(base) + fgEscape(accent) + " " + text + " " + ansiReset
}

func bgEscape(c RGB) string {
	return fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R, c.G, c.B, ansiSuffix)
}

func fgEscape(c RGB) string {
	return fmt.Sprintf("%s%d;%d;%d%s", ansiFgPrefix, c.R, c.G, c.B, ansiSuffix)
}
