package index

import (
	"math"

	"github.com/forest-guardian/agro-report-poc/internal/bands"
)

const (
	NDVI            = "NDVI"
	NDVIOrientativo = "NDVI_orientativo"
	EVI             = "EVI"
	NDWI            = "NDWI"
	SAVI            = "SAVI"
	GNDVI           = "GNDVI"
	NDMI            = "NDMI"
	NDRE            = "NDRE"
	MSAVI           = "MSAVI"
)

// Names lists every index in report order.
var Names = []string{NDVI, NDVIOrientativo, EVI, NDWI, SAVI, GNDVI, NDMI, NDRE, MSAVI}

// pixel holds reflectances for one location. Missing or absent bands are NaN
// and propagate through every formula that reads them.
type pixel struct {
	R, G, B, N, RE, S float64
}

type formula struct {
	name     string
	requires []bands.Role
	// rgbOnly formulas stand in for NIR indices and are only produced when
	// NIR is absent.
	rgbOnly bool
	eval    func(p pixel, eps float64) float64
}

var formulas = []formula{
	{
		name:     NDVI,
		requires: []bands.Role{bands.NIR},
		eval: func(p pixel, eps float64) float64 {
			return (p.N - p.R) / (p.N + p.R + eps)
		},
	},
	{
		name:    NDVIOrientativo,
		rgbOnly: true,
		eval: func(p pixel, eps float64) float64 {
			return (p.G - p.R) / (p.G + p.R + eps)
		},
	},
	{
		name:     EVI,
		requires: []bands.Role{bands.NIR},
		eval: func(p pixel, eps float64) float64 {
			return 2.5 * (p.N - p.R) / (p.N + 6*p.R - 7.5*p.B + 1 + eps)
		},
	},
	{
		name:     NDWI,
		requires: []bands.Role{bands.NIR},
		eval: func(p pixel, eps float64) float64 {
			return (p.G - p.N) / (p.G + p.N + eps)
		},
	},
	{
		name:     SAVI,
		requires: []bands.Role{bands.NIR},
		eval: func(p pixel, eps float64) float64 {
			return 1.5 * (p.N - p.R) / (p.N + p.R + 0.5 + eps)
		},
	},
	{
		name: GNDVI,
		eval: func(p pixel, eps float64) float64 {
			return (p.G - p.R) / (p.G + p.R + eps)
		},
	},
	{
		name:     NDMI,
		requires: []bands.Role{bands.NIR, bands.SWIR},
		eval: func(p pixel, eps float64) float64 {
			return (p.N - p.S) / (p.N + p.S + eps)
		},
	},
	{
		name:     NDRE,
		requires: []bands.Role{bands.RedEdge},
		eval: func(p pixel, eps float64) float64 {
			return (p.RE - p.R) / (p.RE + p.R + eps)
		},
	},
	{
		name:     MSAVI,
		requires: []bands.Role{bands.NIR},
		eval: func(p pixel, _ float64) float64 {
			a := 2*p.N + 1
			return (a - math.Sqrt(a*a-8*(p.N-p.R))) / 2
		},
	},
}

// activeFormulas applies the availability policy: without NIR only the
// RGB indices are produced, whatever other bands exist.
func activeFormulas(roles bands.Assignment) []formula {
	hasNIR := roles.Has(bands.NIR)
	active := []formula{}
	for _, f := range formulas {
		if f.rgbOnly {
			if !hasNIR {
				active = append(active, f)
			}
			continue
		}
		if !hasNIR && len(f.requires) > 0 {
			continue
		}
		available := true
		for _, role := range f.requires {
			if !roles.Has(role) {
				available = false
				break
			}
		}
		if available {
			active = append(active, f)
		}
	}
	return active
}
