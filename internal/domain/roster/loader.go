package roster

import (
	"context"
	"fmt"

	"github.com/okian/ringside/internal/config"
	"github.com/okian/ringside/internal/domain/model"
	"github.com/okian/ringside/pkg/logger"
	"github.com/okian/ringside/pkg/metrics"
)

type document struct {
	Competitors []record `koanf:"competitors"`
}

type record struct {
	ID            *string  `koanf:"id"`
	Name          *string  `koanf:"name"`
	Alignment     *string  `koanf:"alignment"`
	Popularity    *int     `koanf:"popularity"`
	Stamina       *int     `koanf:"stamina"`
	Proficiencies []string `koanf:"proficiencies"`
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

// Load reads the roster at path. Any failure yields Defaults().
func Load(ctx context.Context, path string, opts ...Option) *Store {
	o := &loadOptions{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = logger.Named("roster")
	}

	s, err := Parse(path)
	if err != nil {
		reason := config.FallbackReason(path, err)
		o.logger.Warn(ctx, "using built-in roster",
			logger.String("path", path),
			logger.String("reason", reason),
			logger.Error(err),
		)
		metrics.RecordConfigFallback("roster", reason)
		s = Defaults()
	} else {
		o.logger.Info(ctx, "loaded roster", logger.String("path", path), logger.Int("count", s.Len()))
	}
	metrics.UpdateRosterSize(s.Len())
	return s
}

// Parse returns a fully populated store for path or an error.
func Parse(path string) (*Store, error) {
	var doc document
	if err := config.LoadDocument(path, &doc); err != nil {
		return nil, err
	}
	if len(doc.Competitors) == 0 {
		return nil, fmt.Errorf("%w: no competitors", config.ErrEmptyDocument)
	}

	competitors := make([]model.Competitor, 0, len(doc.Competitors))
	for i, r := range doc.Competitors {
		c, err := r.toModel()
		if err != nil {
			return nil, fmt.Errorf("competitor %d: %w", i, err)
		}
		competitors = append(competitors, c)
	}

	s, err := New(competitors...)
	if err != nil {
		return nil, err
	}
	s.source = SourceFile
	return s, nil
}

func (r record) toModel() (model.Competitor, error) {
	switch {
	case r.ID == nil:
		return model.Competitor{}, fmt.Errorf("%w: id", ErrMissingField)
	case r.Name == nil:
		return model.Competitor{}, fmt.Errorf("%w: name", ErrMissingField)
	case r.Alignment == nil:
		return model.Competitor{}, fmt.Errorf("%w: alignment", ErrMissingField)
	case r.Popularity == nil:
		return model.Competitor{}, fmt.Errorf("%w: popularity", ErrMissingField)
	case r.Stamina == nil:
		return model.Competitor{}, fmt.Errorf("%w: stamina", ErrMissingField)
	}
	alignment, err := model.ParseAlignment(*r.Alignment)
	if err != nil {
		return model.Competitor{}, fmt.Errorf("%w: %w", ErrInvalidCompetitor, err)
	}
	return model.NewCompetitor(*r.ID, *r.Name, alignment, *r.Popularity, *r.Stamina, r.Proficiencies...), nil
}
