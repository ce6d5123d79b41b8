package pairing

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/jmylchreest/contrastgrid/internal/colour"
	"github.com/jmylchreest/contrastgrid/internal/palette"
)

// DefaultMinimumContrast is the ratio a pair must exceed to be listed by
// HighContrast.
const DefaultMinimumContrast = 10

// DefaultMaxPairs is the default upper bound on the number of ordered pairs
// a palette may be cross-joined into.
const DefaultMaxPairs = 1 << 20

// ErrTooManyPairs is returned when a palette is too large to cross-join.
var ErrTooManyPairs = errors.New("palette exceeds pair limit")

// CheckPairs reports whether cross-joining n colours stays within limit
// ordered pairs.
func CheckPairs(n, limit int) error {
	if n > 0 && n > limit/n {
		return fmt.Errorf("%w: %d colours make %d pairs, limit is %d", ErrTooManyPairs, n, n*n, limit)
	}
	return nil
}

// Combo is one cell of the palette cross-join.
type Combo struct {
	BaseColor          string           `json:"baseColor"`
	AccentColor        string           `json:"accentColor"`
	Contrast           palette.Contrast `json:"contrast"`
	ContrastGuidelines Guidelines       `json:"contrastGuidelines"`
}

// Pair is an ordered pair whose contrast ratio exceeded the minimum.
type Pair struct {
	BaseColor   string  `json:"baseColor"`
	AccentColor string  `json:"accentColor"`
	Contrast    float64 `json:"contrast"`
}

// ComboGroup holds the combos sharing a base colour.
type ComboGroup struct {
	Base     string           `json:"base"`
	Contrast palette.Contrast `json:"contrast"`
	Combos   []Combo          `json:"combos"`
}

// CrossJoin classifies every base × accent pair of colours. Pairs for which
// no guideline passes are dropped. Combos are ordered by base, then accent,
// in palette order. Cancelling ctx stops the join between base colours.
func CrossJoin(ctx context.Context, colours []palette.Colour, classifier Classifier) ([]Combo, error) {
	if classifier == nil {
		return nil, fmt.Errorf("classifier cannot be nil")
	}

	combos := make([]Combo, 0, len(colours))
	for _, base := range colours {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, accent := range colours {
			guidelines, err := classifier.Classify(base.Hex, accent.Hex)
			if err != nil {
				return nil, fmt.Errorf("failed to classify %s on %s: %w", accent.Hex, base.Hex, err)
			}
			if !guidelines.Any() {
				continue
			}
			combos = append(combos, Combo{
				BaseColor:          base.Hex,
				AccentColor:        accent.Hex,
				Contrast:           base.Contrast,
				ContrastGuidelines: guidelines,
			})
		}
	}
	return combos, nil
}

// HighContrast lists every ordered pair whose contrast ratio is strictly
// greater than minimum. Both (a, b) and (b, a) are evaluated.
func HighContrast(ctx context.Context, colours []palette.Colour, minimum float64) ([]Pair, error) {
	var pairs []Pair
	for _, base := range colours {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, accent := range colours {
			ratio := colour.ContrastRatio(base.RGB(), accent.RGB())
			if ratio > minimum {
				pairs = append(pairs, Pair{
					BaseColor:   base.Hex,
					AccentColor: accent.Hex,
					Contrast:    ratio,
				})
			}
		}
	}
	return pairs, nil
}

// Histogram counts pairs per whole contrast ratio.
type Histogram map[int]int

// CountByContrast buckets pairs by the floor of their contrast ratio.
func CountByContrast(pairs []Pair) Histogram {
	h := make(Histogram)
	for _, p := range pairs {
		h[int(math.Floor(p.Contrast))]++
	}
	return h
}

// Total returns the sum of all bucket counts.
func (h Histogram) Total() int {
	var total int
	for _, n := range h {
		total += n
	}
	return total
}

// Buckets returns the bucket keys in ascending order.
func (h Histogram) Buckets() []int {
	keys := make([]int, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// GroupByBase groups combos by base colour in order of first appearance.
func GroupByBase(combos []Combo) []ComboGroup {
	index := make(map[string]int)
	var groups []ComboGroup
	for _, c := range combos {
		i, ok := index[c.BaseColor]
		if !ok {
			i = len(groups)
			index[c.BaseColor] = i
			groups = append(groups, ComboGroup{Base: c.BaseColor, Contrast: c.Contrast})
		}
		groups[i].Combos = append(groups[i].Combos, c)
	}
	return groups
}
