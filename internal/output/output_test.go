package output

import (
	"image/color"
	"image/jpeg"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/forest-guardian/agro-report-poc/internal/bands"
	"github.com/forest-guardian/agro-report-poc/internal/glossary"
	"github.com/forest-guardian/agro-report-poc/internal/index"
	"github.com/forest-guardian/agro-report-poc/internal/raster"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func computeResult(t *testing.T, georef *raster.Georef) *index.Result {
	t.Helper()
	r := raster.New(
		raster.Band{Values: [][]float64{{0.2, 0.2}, {0.2, 0.2}}},
		raster.Band{Values: [][]float64{{0.3, 0.3}, {0.3, 0.3}}},
		raster.Band{Values: [][]float64{{0.1, 0.1}, {0.1, 0.1}}},
		raster.Band{Values: [][]float64{{0.6, math.NaN()}, {0.6, 0.6}}},
	)
	r.Georef = georef
	roles, err := bands.ResolveRaster(r, bands.ConventionRGBN)
	require.NoError(t, err)
	result, err := index.NewEngine(index.DefaultConfig()).Compute(r, roles)
	require.NoError(t, err)
	return result
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		value, min, max, want float64
	}{
		{0, -1, 1, 0.5},
		{-2, -1, 1, 0},
		{3, -1, 1, 1},
		{5, 2, 2, 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, normalize(tt.value, tt.min, tt.max), 1e-12)
	}
}

func TestValueToColor(t *testing.T) {
	assert.Equal(t, color.RGBA{R: 255, G: 0, B: 0, A: 255}, valueToColor(0))
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 0, A: 255}, valueToColor(0.5))
	assert.Equal(t, color.RGBA{R: 0, G: 255, B: 0, A: 255}, valueToColor(1))
}

func TestColorRange(t *testing.T) {
	lo, hi := colorRange(glossary.Default()[index.EVI])
	assert.Equal(t, -1.0, lo)
	assert.Equal(t, 2.5, hi)

	lo, hi = colorRange(glossary.Table{})
	assert.Equal(t, -1.0, lo)
	assert.Equal(t, 1.0, hi)
}

func TestCreateIndexImages(t *testing.T) {
	result := computeResult(t, nil)
	dir := filepath.Join(t.TempDir(), "maps")

	paths, err := CreateIndexImages(result, glossary.Default(), dir, "field")
	require.NoError(t, err)
	require.Len(t, paths, len(result.Names()))
	assert.Equal(t, filepath.Join(dir, "field_NDVI.jpg"), paths[0])

	file, err := os.Open(paths[0])
	require.NoError(t, err)
	defer file.Close()
	img, err := jpeg.Decode(file)
	require.NoError(t, err)

	assert.Equal(t, 256, img.Bounds().Dx())
	assert.Equal(t, 256+legendHeight, img.Bounds().Dy())

	r, g, b, _ := img.At(192, 64).RGBA()
	assert.Less(t, r>>8+g>>8+b>>8, uint32(60), "missing NDVI pixel is drawn as no data")
	_, g, _, _ = img.At(64, 64).RGBA()
	assert.Greater(t, g>>8, uint32(150), "NDVI 0.5 is drawn green")
}

func TestCreateIndexImagesEmpty(t *testing.T) {
	_, err := CreateIndexImages(&index.Result{}, glossary.Default(), t.TempDir(), "field")
	assert.Error(t, err)
}

func TestCreateFootprintGeoJSON(t *testing.T) {
	georef := raster.NewGeoref([6]float64{-60, 0.01, 0, -34, 0, -0.01}, 2, 2, "EPSG:4326")
	result := computeResult(t, georef)
	path := filepath.Join(t.TempDir(), "result", "field.geojson")
	require.NoError(t, CreateFootprintGeoJSON(result, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	fc, err := geojson.UnmarshalFeatureCollection(data)
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)

	feature := fc.Features[0]
	polygon, ok := feature.Geometry.(orb.Polygon)
	require.True(t, ok)
	assert.Equal(t, georef.Bounds, polygon.Bound())
	assert.Equal(t, index.TypeMultispectral, feature.Properties["image_type"])
	assert.Equal(t, "EPSG:4326", feature.Properties["crs"])

	means, ok := feature.Properties["indices"].(map[string]interface{})
	require.True(t, ok)
	assert.InDelta(t, 0.5, means[index.NDVI], 1e-4)
}

func TestCreateFootprintGeoJSONWithoutGeoref(t *testing.T) {
	err := CreateFootprintGeoJSON(computeResult(t, nil), filepath.Join(t.TempDir(), "x.geojson"))
	assert.Error(t, err)
}
