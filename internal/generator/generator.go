// Package generator runs the palette pipeline once and returns an immutable
// snapshot for the asset emitters.
package generator

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/contrastgrid/internal/config"
	"github.com/jmylchreest/contrastgrid/internal/pairing"
	"github.com/jmylchreest/contrastgrid/internal/palette"
)

// Snapshot is the complete result of a generation run.
type Snapshot struct {
	Palette         *palette.Palette
	Sorted          []palette.Colour
	Combos          []pairing.Combo
	Groups          []pairing.ComboGroup
	Pairs           []pairing.Pair
	ContrastCounts  pairing.Histogram
	MinimumContrast float64
}

// Option configures Generate.
type Option func(*options)

type options struct {
	logger     hclog.Logger
	classifier pairing.Classifier
}

// WithLogger sets the logger used to report pipeline progress.
func WithLogger(logger hclog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithClassifier replaces the WCAG guideline classifier.
func WithClassifier(c pairing.Classifier) Option {
	return func(o *options) {
		if c != nil {
			o.classifier = c
		}
	}
}

// Generate builds the palette described by cfg, cross-joins it and
// computes the high contrast pairs and their histogram.
func Generate(ctx context.Context, cfg config.Config, opts ...Option) (*Snapshot, error) {
	o := options{
		logger:     hclog.NewNullLogger(),
		classifier: pairing.WCAG{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	builder := palette.NewBuilder(cfg.Alphabet, cfg.Repeat).WithMaxTuples(cfg.MaxTuples)
	log.Debug("building palette", "alphabet", cfg.Alphabet, "repeat", cfg.Repeat, "tokens", len(builder.Tokens()))

	pal, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build palette: %w", err)
	}
	log.Info("palette built", "colours", pal.Len())

	if err := pairing.CheckPairs(pal.Len(), cfg.MaxPairs); err != nil {
		return nil, err
	}

	combos, err := pairing.CrossJoin(ctx, pal.Colours, o.classifier)
	if err != nil {
		return nil, fmt.Errorf("failed to cross-join palette: %w", err)
	}
	log.Info("palette cross-joined", "combos", len(combos), "dropped", pal.Len()*pal.Len()-len(combos))

	pairs, err := pairing.HighContrast(ctx, pal.Colours, cfg.MinimumContrast)
	if err != nil {
		return nil, fmt.Errorf("failed to find high contrast pairs: %w", err)
	}
	counts := pairing.CountByContrast(pairs)
	log.Info("high contrast pairs found", "pairs", len(pairs), "minimum", cfg.MinimumContrast, "buckets", len(counts))

	snap := &Snapshot{
		Palette:         pal,
		Sorted:          pal.Sorted(),
		Combos:          combos,
		Groups:          pairing.GroupByBase(combos),
		Pairs:           pairs,
		ContrastCounts:  counts,
		MinimumContrast: cfg.MinimumContrast,
	}
	log.Debug("generation complete", "elapsed", time.Since(start))
	return snap, nil
}
