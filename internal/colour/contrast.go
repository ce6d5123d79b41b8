package colour

import "math"

// RelativeLuminance calculates the relative luminance of a colour according to WCAG 2.0.
// Returns a value between 0 (darkest) and 1 (lightest).
// https://www.w3.org/TR/WCAG20/#relativeluminancedef.
func RelativeLuminance(r, g, b uint8) float64 {
	rf := gammaCorrect(float64(r) / 255.0)
	gf := gammaCorrect(float64(g) / 255.0)
	bf := gammaCorrect(float64(b) / 255.0)

	return 0.2126*rf + 0.7152*gf + 0.0722*bf
}

// gammaCorrect expands a gamma encoded sRGB component.
func gammaCorrect(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// Contrast returns (L(a)+0.05)/(L(b)+0.05) without reordering its
// arguments, so the result drops below 1 when b is the lighter colour.
func Contrast(a, b RGB) float64 {
	return (a.Luminance() + 0.05) / (b.Luminance() + 0.05)
}

// ContrastRatio calculates the contrast ratio between two colours according to WCAG 2.0.
// Returns a value between 1 and 21, where 21 is maximum contrast (black vs white).
// https://www.w3.org/TR/WCAG20/#contrast-ratiodef.
func ContrastRatio(a, b RGB) float64 {
	l1 := a.Luminance()
	l2 := b.Luminance()

	// Ensure l1 is the lighter colour.
	if l1 < l2 {
		l1, l2 = l2, l1
	}

	return (l1 + 0.05) / (l2 + 0.05)
}
