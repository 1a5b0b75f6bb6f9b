package dataset

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/forest-guardian/agro-report-poc/internal/bands"
	"github.com/forest-guardian/agro-report-poc/internal/index"
	"github.com/forest-guardian/agro-report-poc/internal/raster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func computeResult(t *testing.T, nir [][]float64) *index.Result {
	t.Helper()
	r := raster.New(
		raster.Band{Values: [][]float64{{0.2, 0.2}}},
		raster.Band{Values: [][]float64{{0.3, 0.3}}},
		raster.Band{Values: [][]float64{{0.1, 0.1}}},
		raster.Band{Values: nir},
	)
	r.Georef = raster.NewGeoref([6]float64{100, 10, 0, 200, 0, -10}, 2, 1, "EPSG:32720")
	roles, err := bands.ResolveRaster(r, bands.ConventionRGBN)
	require.NoError(t, err)
	result, err := index.NewEngine(index.DefaultConfig()).Compute(r, roles)
	require.NoError(t, err)
	return result
}

func TestCreatePixelDataset(t *testing.T) {
	rows := CreatePixelDataset(computeResult(t, [][]float64{{0.6, 0.6}}))
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, 0, first.X)
	assert.Equal(t, 0, first.Y)
	assert.InDelta(t, 105, first.MapX, 1e-9)
	assert.InDelta(t, 195, first.MapY, 1e-9)
	assert.InDelta(t, 0.5, first.NDVI, 1e-4)
	assert.InDelta(t, 0.5, first.Value(index.NDVI), 1e-4)
	assert.True(t, math.IsNaN(first.NDVIOrientativo))
	assert.True(t, math.IsNaN(first.NDMI))
	assert.True(t, math.IsNaN(first.Value("unknown")))
	assert.Equal(t, 1, rows[1].X)
}

func TestCreatePixelDatasetKeepsPartiallyValidPixels(t *testing.T) {
	rows := CreatePixelDataset(computeResult(t, [][]float64{{math.NaN(), 0.6}}))
	require.Len(t, rows, 2, "GNDVI is still valid where NIR is missing")
	assert.True(t, math.IsNaN(rows[0].NDVI))
	assert.False(t, math.IsNaN(rows[0].GNDVI))
}

func TestWriteAndReadPixelDataset(t *testing.T) {
	rows := CreatePixelDataset(computeResult(t, [][]float64{{0.6, 0.6}}))
	path := filepath.Join(t.TempDir(), "out", "pixels.csv")
	require.NoError(t, WritePixelDataset(rows, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	header := strings.SplitN(string(data), "\n", 2)[0]
	assert.Equal(t, "x,y,map_x,map_y,ndvi,ndvi_orientativo,evi,ndwi,savi,gndvi,ndmi,ndre,msavi", header)

	read, err := ReadPixelDataset(path)
	require.NoError(t, err)
	require.Len(t, read, 2)
	assert.InDelta(t, rows[1].NDVI, read[1].NDVI, 1e-9)
	assert.True(t, math.IsNaN(read[1].NDRE))
}

func TestReadPixelDatasetMissingFile(t *testing.T) {
	_, err := ReadPixelDataset(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
