package report

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/forest-guardian/agro-report-poc/internal/index"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(DateLayout, s)
	require.NoError(t, err)
	return d
}

func TestPhenologicalStage(t *testing.T) {
	tests := []struct {
		crop     string
		days     int
		expected string
	}{
		{"soja", 10, "emergence"},
		{"Soy", 30, "flowering"},
		{"soybean", 59, "flowering"},
		{"soja", 60, "grain filling / maturity"},
		{"maíz", 34, "early vegetative"},
		{"corn", 35, "flowering"},
		{"MAIZ", 90, "grain filling"},
		{"trigo", 0, "tillering"},
		{"wheat", 45, "heading"},
		{"wheat", 200, "maturity"},
		{"sunflower", 40, UnknownStage},
		{"wheat", -3, UnknownStage},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, PhenologicalStage(tt.crop, tt.days), "%s at %d days", tt.crop, tt.days)
	}
}

func multispectralResult() *index.Result {
	return &index.Result{
		Type: index.TypeMultispectral,
		Summary: index.Summary{
			index.NDVI: {Mean: 0.5, ValidPixels: 4},
			index.EVI:  {Mean: math.NaN()},
		},
		Meta: index.Meta{BandCount: 4, HasNIR: true, Scale: 1},
	}
}

func TestBuild(t *testing.T) {
	ctx := Context{
		Crop:       "soja",
		Location:   "Pergamino, Buenos Aires",
		Date:       date(t, "2024-12-20"),
		SowingDate: date(t, "2024-11-10"),
		Weather:    &Weather{Description: "Clear sky", TemperatureC: 27.4, HumidityPct: 55, RainMM: 0},
	}
	rep, err := Build(multispectralResult(), index.NewEngine(index.DefaultConfig()), ctx)
	require.NoError(t, err)

	assert.Equal(t, 40, rep.DaysSinceSowing)
	assert.Equal(t, "flowering", rep.PhenologicalStage)
	require.Len(t, rep.Indices, 2)
	assert.Equal(t, "moderate photosynthetic activity", rep.Indices[0].Interpretation)
	assert.Equal(t, index.InsufficientData, rep.Indices[1].Interpretation)

	expected := `Field report | Date: 2024-12-20
Crop: soja
Location: Pergamino, Buenos Aires
Image type: Multispectral
Days since sowing: 40 days
Estimated phenological stage: flowering
NDVI: 0.50 -> moderate photosynthetic activity
EVI: insufficient data -> insufficient data
Warning: EVI could not be computed: no valid pixels.
Current weather: Clear sky, 27.4°C, humidity 55%, rain 0.0 mm`
	assert.Equal(t, expected, rep.Text())
}

func TestBuildRGBWarning(t *testing.T) {
	result := &index.Result{
		Type: index.TypeRGB,
		Summary: index.Summary{
			index.NDVIOrientativo: {Mean: 0.12, ValidPixels: 9},
			index.GNDVI:           {Mean: 0.12, ValidPixels: 9},
		},
		Meta: index.Meta{BandCount: 3, Rescaled: true, Scale: 255},
	}
	ctx := Context{Crop: "trigo", Date: date(t, "2024-09-01"), SowingDate: date(t, "2024-09-01")}

	rep, err := Build(result, index.NewEngine(index.DefaultConfig()), ctx)
	require.NoError(t, err)

	assert.Equal(t, "tillering", rep.PhenologicalStage)
	assert.Equal(t, index.NDVIOrientativo, rep.Indices[0].Name)
	assert.Len(t, rep.Warnings, 2)
	assert.Contains(t, rep.Text(), "Warning: NDVI_orientativo is an RGB estimate")
	assert.NotContains(t, rep.Text(), "Current weather")
}

func TestBuildRejectsBadDates(t *testing.T) {
	engine := index.NewEngine(index.DefaultConfig())

	_, err := Build(multispectralResult(), engine, Context{Date: date(t, "2024-01-01"), SowingDate: date(t, "2024-02-01")})
	assert.ErrorIs(t, err, ErrSowingAfterImage)

	_, err = Build(multispectralResult(), engine, Context{Date: date(t, "2024-01-01")})
	assert.Error(t, err)
}

func TestReportJSON(t *testing.T) {
	rep, err := Build(multispectralResult(), index.NewEngine(index.DefaultConfig()), Context{
		Crop: "corn", Date: date(t, "2024-03-01"), SowingDate: date(t, "2024-01-01"),
	})
	require.NoError(t, err)

	data, err := json.Marshal(rep)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"phenological_stage":"flowering"`)
	assert.Contains(t, string(data), `"mean":null`)
}
