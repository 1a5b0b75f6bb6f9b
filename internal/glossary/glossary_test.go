package glossary

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	g := Default()
	require.NoError(t, g.Validate())
	for _, name := range []string{"NDVI", "NDVI_orientativo", "EVI", "NDWI", "SAVI", "GNDVI", "NDMI", "NDRE", "MSAVI"} {
		assert.Contains(t, g, name)
	}
}

func TestInterpretNDVI(t *testing.T) {
	g := Default()
	tests := []struct {
		value    float64
		expected string
	}{
		{-0.4, "no vegetation (water, bare soil or built surface)"},
		{0.1, "low photosynthetic activity / stress"},
		{0.3, "moderate photosynthetic activity"},
		{0.5, "moderate photosynthetic activity"},
		{0.6, "good crop health"},
		{1.0, "good crop health"},
		{1.2, NoInterpretation},
		{math.NaN(), NoInterpretation},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, g.Interpret("NDVI", tt.value), "NDVI=%v", tt.value)
	}
}

func TestInterpretEVIClamps(t *testing.T) {
	g := Default()
	assert.Equal(t, "no vegetation", g.Interpret("EVI", -7))
	assert.Equal(t, "no vegetation", g.Interpret("EVI", -0.5))
	assert.Equal(t, "sparse or stressed vegetation", g.Interpret("EVI", 0))
	assert.Equal(t, "moderate vegetation", g.Interpret("EVI", 0.2))
	assert.Equal(t, "dense healthy vegetation", g.Interpret("EVI", 0.5))
	assert.Equal(t, "very dense vegetation (check for saturation or artefacts)", g.Interpret("EVI", 0.8))
	assert.Equal(t, "very dense vegetation (check for saturation or artefacts)", g.Interpret("EVI", 40))
	assert.Equal(t, NoInterpretation, g.Interpret("EVI", math.NaN()))
}

func TestInterpretUnknownIndex(t *testing.T) {
	assert.Equal(t, NoInterpretation, Default().Interpret("PSRI", 0.2))
}

func TestTableValidate(t *testing.T) {
	tests := []struct {
		name  string
		table Table
		valid bool
	}{
		{"adjacent", Table{Intervals: []Interval{{0, 1, "a"}, {1, 2, "b"}}}, true},
		{"empty", Table{}, false},
		{"inverted", Table{Intervals: []Interval{{1, 0, "a"}}}, false},
		{"unlabeled", Table{Intervals: []Interval{{0, 1, ""}}}, false},
		{"overlapping", Table{Intervals: []Interval{{0, 1, "a"}, {0.5, 2, "b"}}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.table.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.yaml")
	content := `
NDVI:
  intervals:
    - {lo: -1, hi: 0.5, label: "poor"}
    - {lo: 0.5, hi: 1, label: "fine"}
PSRI:
  clamp: true
  intervals:
    - {lo: -1, hi: 1, label: "senescence"}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	g, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "fine", g.Interpret("NDVI", 0.5))
	assert.Equal(t, "senescence", g.Interpret("PSRI", 3))
	assert.Equal(t, "moderate vegetation", g.Interpret("EVI", 0.3))
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("NDVI:\n  intervals:\n    - {lo: 1, hi: 0, label: x}\n"), 0644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestLoadEmptyPath(t *testing.T) {
	g, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Fingerprint(), g.Fingerprint())
}

func TestFingerprintChanges(t *testing.T) {
	g := Default()
	before := g.Fingerprint()
	g["NDVI"] = Table{Intervals: []Interval{{-1, 1, "any"}}}
	assert.NotEqual(t, before, g.Fingerprint())
}
