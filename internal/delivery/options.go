package delivery

import (
	"github.com/forest-guardian/agro-report-poc/internal/bands"
	"github.com/forest-guardian/agro-report-poc/internal/cache"
	"github.com/forest-guardian/agro-report-poc/internal/glossary"
	"github.com/forest-guardian/agro-report-poc/internal/index"
	"github.com/forest-guardian/agro-report-poc/internal/properties"
	"github.com/forest-guardian/agro-report-poc/internal/report"
	"github.com/rotisserie/eris"
)

// Options is what every analysis needs besides the raster itself.
type Options struct {
	Convention bands.Convention
	Engine     *index.Engine
	Context    report.Context
	// Cache may be nil.
	Cache cache.CacheService[index.Result]
}

// NewOptions builds options from BAND_CONVENTION and
// INTERPRETATION_TABLE_PATH, with the analysis cache under data/cache.
func NewOptions(ctx report.Context) (Options, error) {
	conv, err := bands.ParseConvention(properties.BandConvention())
	if err != nil {
		return Options{}, eris.Wrap(err, "invalid BAND_CONVENTION")
	}
	gloss, err := glossary.Load(properties.InterpretationTablePath())
	if err != nil {
		return Options{}, eris.Wrap(err, "failed to load interpretation table")
	}
	return Options{
		Convention: conv,
		Engine:     index.NewEngine(index.Config{Epsilon: index.DefaultEpsilon, Glossary: gloss}),
		Context:    ctx,
		Cache:      cache.NewFileCache[index.Result]("analysis"),
	}, nil
}

func (o Options) engine() *index.Engine {
	if o.Engine == nil {
		return index.NewEngine(index.DefaultConfig())
	}
	return o.Engine
}

func (o Options) convention() bands.Convention {
	if o.Convention == "" {
		return bands.ConventionRGBN
	}
	return o.Convention
}
