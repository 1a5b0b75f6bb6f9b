package raster

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/airbusgeo/godal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestTiff(t *testing.T, descriptions []string, values [][]float64, width, height int) string {
	t.Helper()
	registerDrivers.Do(godal.RegisterAll)

	path := filepath.Join(t.TempDir(), "field.tif")
	ds, err := godal.Create(godal.GTiff, path, len(values), godal.Float64, width, height)
	require.NoError(t, err)

	for i, band := range ds.Bands() {
		require.NoError(t, band.Write(0, 0, values[i], width, height))
		if descriptions[i] != "" {
			require.NoError(t, band.SetDescription(descriptions[i]))
		}
	}
	require.NoError(t, ds.SetGeoTransform([6]float64{-60, 0.001, 0, -34, 0, -0.001}))
	require.NoError(t, ds.Close())
	return path
}

func TestLoad(t *testing.T) {
	values := [][]float64{
		{0.2, 0.2, 0.2, 0.2},
		{0.3, 0.3, 0.3, 0.3},
		{0.1, 0.1, 0.1, 0.1},
		{0.6, 0.6, 0.6, 0.6},
	}
	path := writeTestTiff(t, []string{"Red", "Green", "Blue", "NIR"}, values, 2, 2)

	r, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, r.Validate())

	assert.Equal(t, 2, r.Width)
	assert.Equal(t, 2, r.Height)
	assert.Equal(t, []string{"Red", "Green", "Blue", "NIR"}, r.Descriptions())
	assert.Equal(t, [][]float64{{0.6, 0.6}, {0.6, 0.6}}, r.Bands[3].Values)
	require.NotNil(t, r.Georef)
	assert.InDelta(t, -60, r.Georef.Bounds.Min.X(), 1e-9)
}

func TestLoadProjected(t *testing.T) {
	registerDrivers.Do(godal.RegisterAll)
	path := filepath.Join(t.TempDir(), "utm.tif")
	ds, err := godal.Create(godal.GTiff, path, 3, godal.Float64, 2, 2)
	require.NoError(t, err)
	for _, band := range ds.Bands() {
		require.NoError(t, band.Write(0, 0, []float64{0.1, 0.2, 0.3, 0.4}, 2, 2))
	}
	require.NoError(t, ds.SetGeoTransform([6]float64{500000, 10, 0, 6200000, 0, -10}))
	sr, err := godal.NewSpatialRefFromEPSG(32721)
	require.NoError(t, err)
	require.NoError(t, ds.SetSpatialRef(sr))
	sr.Close()
	require.NoError(t, ds.Close())

	for range 3 {
		r, err := Load(path)
		require.NoError(t, err)
		require.NotNil(t, r.Georef)
		assert.Equal(t, "EPSG:32721", r.Georef.CRS)
		assert.NotNil(t, r.Georef.LonLatBounds)
	}
}

func TestLoadBytes(t *testing.T) {
	values := [][]float64{{1, 2}, {3, 4}, {5, 6}}
	path := writeTestTiff(t, []string{"", "", ""}, values, 2, 1)
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	r, err := LoadBytes(data, "upload.tif")
	require.NoError(t, err)
	assert.Equal(t, 3, r.BandCount())
	assert.Equal(t, [][]float64{{5, 6}}, r.Bands[2].Values)
}

func TestLoadUnreadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.tif")
	require.NoError(t, os.WriteFile(path, []byte("not a tiff"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnreadable)
}

func TestLoadTooFewBands(t *testing.T) {
	path := writeTestTiff(t, []string{"", ""}, [][]float64{{1}, {2}}, 1, 1)

	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTooFewBands)
}
