package catalog

import (
	"context"
	"fmt"

	"github.com/okian/ringside/internal/config"
	"github.com/okian/ringside/internal/domain/model"
	"github.com/okian/ringside/pkg/logger"
	"github.com/okian/ringside/pkg/metrics"
)

// document is the on-disk schema. Pointer fields distinguish a missing key
// from a zero value.
type document struct {
	Categories []record `koanf:"categories"`
}

type record struct {
	ID          *string `koanf:"id"`
	Name        *string `koanf:"name"`
	Description string  `koanf:"description"`
	Modifiers   *tuning `koanf:"modifiers"`
}

type tuning struct {
	RatingBonus           *int `koanf:"rating_bonus"`
	RatingVariance        *int `koanf:"rating_variance"`
	StaminaCostWinner     *int `koanf:"stamina_cost_winner"`
	StaminaCostLoser      *int `koanf:"stamina_cost_loser"`
	PopularityDeltaWinner *int `koanf:"popularity_delta_winner"`
	PopularityDeltaLoser  *int `koanf:"popularity_delta_loser"`
}

// Option configures Load.
type Option func(*loadOptions)

type loadOptions struct {
	logger logger.Logger
}

// WithLogger sets the logger used to report fallbacks.
func WithLogger(l logger.Logger) Option {
	return func(o *loadOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// Load reads the catalog at path. Any failure yields Defaults(); the caller
// always receives a usable, non-empty catalog.
func Load(ctx context.Context, path string, opts ...Option) *Catalog {
	o := &loadOptions{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = logger.Named("catalog")
	}

	c, err := Parse(path)
	if err != nil {
		reason := config.FallbackReason(path, err)
		o.logger.Warn(ctx, "using built-in categories",
			logger.String("path", path),
			logger.String("reason", reason),
			logger.Error(err),
		)
		metrics.RecordConfigFallback("catalog", reason)
		c = Defaults()
	} else {
		o.logger.Info(ctx, "loaded categories", logger.String("path", path), logger.Int("count", c.Len()))
	}
	metrics.UpdateCatalogSize(c.Len())
	return c
}

// Parse is the single fallible step behind Load: it returns a fully
// populated catalog or an error, never a partial catalog.
func Parse(path string) (*Catalog, error) {
	var doc document
	if err := config.LoadDocument(path, &doc); err != nil {
		return nil, err
	}
	if len(doc.Categories) == 0 {
		return nil, fmt.Errorf("%w: %w", config.ErrEmptyDocument, ErrEmptyCatalog)
	}

	categories := make([]model.Category, 0, len(doc.Categories))
	for i, r := range doc.Categories {
		cat, err := r.toModel()
		if err != nil {
			return nil, fmt.Errorf("category %d: %w", i, err)
		}
		categories = append(categories, cat)
	}

	c, err := New(categories...)
	if err != nil {
		return nil, err
	}
	c.source = SourceFile
	return c, nil
}

func (r record) toModel() (model.Category, error) {
	if r.ID == nil {
		return model.Category{}, fmt.Errorf("%w: id", ErrMissingField)
	}
	if r.Name == nil {
		return model.Category{}, fmt.Errorf("%w: name", ErrMissingField)
	}
	if r.Modifiers == nil {
		return model.Category{}, fmt.Errorf("%w: modifiers", ErrMissingField)
	}
	t := r.Modifiers
	fields := []struct {
		name string
		v    *int
	}{
		{"rating_bonus", t.RatingBonus},
		{"rating_variance", t.RatingVariance},
		{"stamina_cost_winner", t.StaminaCostWinner},
		{"stamina_cost_loser", t.StaminaCostLoser},
		{"popularity_delta_winner", t.PopularityDeltaWinner},
		{"popularity_delta_loser", t.PopularityDeltaLoser},
	}
	for _, f := range fields {
		if f.v == nil {
			return model.Category{}, fmt.Errorf("%w: modifiers.%s", ErrMissingField, f.name)
		}
	}

	return model.Category{
		ID:          *r.ID,
		Name:        *r.Name,
		Description: r.Description,
		Tuning: model.Tuning{
			RatingBonus:           *t.RatingBonus,
			RatingVariance:        *t.RatingVariance,
			StaminaCostWinner:     *t.StaminaCostWinner,
			StaminaCostLoser:      *t.StaminaCostLoser,
			PopularityDeltaWinner: *t.PopularityDeltaWinner,
			PopularityDeltaLoser:  *t.PopularityDeltaLoser,
		},
	}, nil
}
