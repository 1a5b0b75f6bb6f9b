// Package index computes vegetation and water indices over a raster and
// reduces them to per-field means.
package index

import (
	"fmt"
	"math"

	"github.com/forest-guardian/agro-report-poc/internal/bands"
	"github.com/forest-guardian/agro-report-poc/internal/glossary"
	"github.com/forest-guardian/agro-report-poc/internal/raster"
)

const DefaultEpsilon = 1e-5

const (
	TypeMultispectral = "Multispectral"
	TypeRGB           = "RGB"
)

// Config is everything the engine depends on. Zero values fall back to
// DefaultEpsilon and glossary.Default.
type Config struct {
	Epsilon  float64
	Glossary glossary.Glossary
}

func DefaultConfig() Config {
	return Config{Epsilon: DefaultEpsilon, Glossary: glossary.Default()}
}

type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	if cfg.Epsilon <= 0 {
		cfg.Epsilon = DefaultEpsilon
	}
	if cfg.Glossary == nil {
		cfg.Glossary = glossary.Default()
	}
	return &Engine{cfg: cfg}
}

func (e *Engine) Config() Config {
	return e.cfg
}

type Meta struct {
	BandCount int            `json:"band_count"`
	HasNIR    bool           `json:"has_nir"`
	Roles     string         `json:"roles"`
	Rescaled  bool           `json:"rescaled"`
	Scale     float64        `json:"scale"`
	Georef    *raster.Georef `json:"georef,omitempty"`
}

// Result is produced fresh per raster and never mutated afterwards.
type Result struct {
	Summary Summary                `json:"summary"`
	Indices map[string][][]float64 `json:"-"`
	Type    string                 `json:"type"`
	Meta    Meta                   `json:"meta"`
	Width   int                    `json:"width"`
	Height  int                    `json:"height"`
}

// Names returns the produced index names in report order.
func (r *Result) Names() []string {
	names := []string{}
	for _, name := range Names {
		if _, ok := r.Summary[name]; ok {
			names = append(names, name)
		}
	}
	return names
}

// Compute validates r, resolves the scale and evaluates every index the
// assigned roles allow. r is not modified.
func (e *Engine) Compute(r *raster.Raster, roles bands.Assignment) (*Result, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	for _, role := range bands.Required {
		i, ok := roles.Index(role)
		if !ok {
			return nil, &raster.ValidationError{Err: bands.ErrMissingRole, Detail: string(role)}
		}
		if i >= r.BandCount() {
			return nil, &raster.ValidationError{Err: bands.ErrMissingRole, Detail: fmt.Sprintf("%s points at band %d of %d", role, i, r.BandCount())}
		}
	}

	scale := 1.0
	if maxValue := r.MaxValue(); maxValue > 1 {
		scale = maxValue
	}

	active := activeFormulas(roles)
	indices := make(map[string][][]float64, len(active))
	for _, f := range active {
		grid := make([][]float64, r.Height)
		for y := range grid {
			grid[y] = make([]float64, r.Width)
		}
		indices[f.name] = grid
	}

	read := bandReader(r, roles, scale)
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			p := pixel{
				R:  read(bands.Red, x, y),
				G:  read(bands.Green, x, y),
				B:  read(bands.Blue, x, y),
				N:  read(bands.NIR, x, y),
				RE: read(bands.RedEdge, x, y),
				S:  read(bands.SWIR, x, y),
			}
			for _, f := range active {
				v := f.eval(p, e.cfg.Epsilon)
				if math.IsInf(v, 0) {
					v = math.NaN()
				}
				indices[f.name][y][x] = v
			}
		}
	}

	hasNIR := roles.Has(bands.NIR)
	result := &Result{
		Summary: Summarize(indices),
		Indices: indices,
		Type:    TypeRGB,
		Width:   r.Width,
		Height:  r.Height,
		Meta: Meta{
			BandCount: r.BandCount(),
			HasNIR:    hasNIR,
			Roles:     roles.String(),
			Rescaled:  scale != 1,
			Scale:     scale,
			Georef:    r.Georef,
		},
	}
	if hasNIR {
		result.Type = TypeMultispectral
	}
	return result, nil
}

func bandReader(r *raster.Raster, roles bands.Assignment, scale float64) func(bands.Role, int, int) float64 {
	return func(role bands.Role, x, y int) float64 {
		i, ok := roles.Index(role)
		if !ok || i >= r.BandCount() {
			return math.NaN()
		}
		v, valid := r.Bands[i].Value(x, y)
		if !valid {
			return math.NaN()
		}
		return v / scale
	}
}

// Interpret labels a summary value, or reports insufficient data.
func (e *Engine) Interpret(name string, stat Stat) string {
	if stat.Insufficient() {
		return InsufficientData
	}
	return e.cfg.Glossary.Interpret(name, stat.Mean)
}
