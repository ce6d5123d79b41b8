// Package pairing cross-joins a palette against itself and classifies every
// ordered pair of colours by contrast.
package pairing

import (
	"math/big"
	"sort"

	"github.com/jmylchreest/contrastgrid/internal/colour"
)

// Guideline names reported by WCAG.
const (
	GuidelineAA       = "AA"
	GuidelineAALarge  = "AALarge"
	GuidelineAAA      = "AAA"
	GuidelineAAALarge = "AAALarge"
)

// Guidelines maps a guideline name to whether a pair passes it.
type Guidelines map[string]bool

// Any reports whether at least one guideline passes.
func (g Guidelines) Any() bool {
	for _, ok := range g {
		if ok {
			return true
		}
	}
	return false
}

// All reports whether every guideline passes. An empty set never passes.
func (g Guidelines) All() bool {
	if len(g) == 0 {
		return false
	}
	for _, ok := range g {
		if !ok {
			return false
		}
	}
	return true
}

// Names returns the guideline names in sorted order.
func (g Guidelines) Names() []string {
	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Classifier decides which accessibility guidelines a pair of hex colours
// meets.
type Classifier interface {
	Classify(base, accent string) (Guidelines, error)
}

// WCAGThresholds are the minimum rounded ratios of each WCAG guideline.
var WCAGThresholds = map[string]float64{
	GuidelineAA:       4.5,
	GuidelineAALarge:  3,
	GuidelineAAA:      7,
	GuidelineAAALarge: 4.5,
}

// ClassifierFunc adapts a function to the Classifier interface.
type ClassifierFunc func(base, accent string) (Guidelines, error)

// Classify calls f(base, accent).
func (f ClassifierFunc) Classify(base, accent string) (Guidelines, error) {
	return f(base, accent)
}

// WCAG classifies pairs against the WCAG 2.0 contrast thresholds: 4.5 for
// AA, 3 for large AA text, 7 for AAA and 4.5 for large AAA text.
//
// Luminance is rounded to three decimals and the ratio to two before the
// thresholds are applied, so ratios a hair below a threshold can pass.
type WCAG struct{}

// Classify implements Classifier.
func (WCAG) Classify(base, accent string) (Guidelines, error) {
	ratio, err := RoundedRatio(base, accent)
	if err != nil {
		return nil, err
	}
	g := make(Guidelines, len(WCAGThresholds))
	for name, minimum := range WCAGThresholds {
		g[name] = ratio >= minimum
	}
	return g, nil
}

// RoundedRatio returns the symmetric contrast ratio of two hex colours
// computed from luminance rounded to three decimals, itself rounded to two.
func RoundedRatio(a, b string) (float64, error) {
	ca, err := colour.Parse(a)
	if err != nil {
		return 0, err
	}
	cb, err := colour.Parse(b)
	if err != nil {
		return 0, err
	}

	l1 := round(ca.Luminance(), 3)
	l2 := round(cb.Luminance(), 3)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return round((l1+0.05)/(l2+0.05), 2), nil
}

// round rounds v to the given number of decimals. Exact halfway cases round
// away from zero, judged on the exact binary value of v, so 9.375 becomes
// 9.38 and 1.125 becomes 1.13 while 1.005 (stored just below) stays 1.00.
func round(v float64, decimals int) float64 {
	if v < 0 {
		return -round(-v, decimals)
	}
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	x := new(big.Rat).SetFloat64(v)
	x.Mul(x, new(big.Rat).SetInt(scale))
	x.Add(x, big.NewRat(1, 2))
	n := new(big.Int).Quo(x.Num(), x.Denom())
	r, _ := new(big.Rat).SetFrac(n, scale).Float64()
	return r
}
