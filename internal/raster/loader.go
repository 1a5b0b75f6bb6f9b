package raster

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/airbusgeo/godal"
	"github.com/forest-guardian/agro-report-poc/internal/utils"
	"github.com/paulmach/orb"
	"go.uber.org/zap"
)

var registerDrivers sync.Once

// Load opens a GDAL readable raster and reads every band into memory.
func Load(path string) (*Raster, error) {
	var (
		r   *Raster
		err error
	)
	utils.ExecuteWithMutex(func() {
		r, err = load(path)
	})
	return r, err
}

// LoadBytes loads a raster held in memory. GDAL needs a file name, so the
// buffer is spooled to a temporary file first.
func LoadBytes(data []byte, name string) (*Raster, error) {
	tmp, err := os.CreateTemp("", "raster-*"+filepath.Ext(name))
	if err != nil {
		return nil, fmt.Errorf("failed to create temp raster file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("failed to write temp raster file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to close temp raster file: %w", err)
	}

	return Load(tmp.Name())
}

func load(path string) (*Raster, error) {
	registerDrivers.Do(godal.RegisterAll)

	ds, err := godal.Open(path, godal.ErrLogger(func(ec godal.ErrorCategory, code int, msg string) error {
		if ec == godal.CE_Warning {
			return nil
		}
		return fmt.Errorf("gdal error %d: %s", code, msg)
	}))
	if err != nil {
		return nil, &ValidationError{Err: ErrUnreadable, Detail: fmt.Sprintf("%s: %v", path, err)}
	}
	defer ds.Close()

	width := ds.Structure().SizeX
	height := ds.Structure().SizeY
	dsBands := ds.Bands()
	if len(dsBands) < MinBands {
		return nil, &ValidationError{Err: ErrTooFewBands, Detail: fmt.Sprintf("%s has %d bands, need at least %d", path, len(dsBands), MinBands)}
	}

	bands := make([]Band, len(dsBands))
	for i, band := range dsBands {
		data := make([]float64, width*height)
		if err := band.Read(0, 0, data, width, height); err != nil {
			return nil, fmt.Errorf("failed to read band %d of %s: %w", i+1, path, err)
		}
		values := make([][]float64, height)
		for y := range values {
			values[y] = data[y*width : (y+1)*width]
		}

		b := Band{Description: band.Description(), Values: values}
		if nodata, ok := band.NoData(); ok {
			b.NoData = &nodata
		}
		bands[i] = b
	}

	r := &Raster{Width: width, Height: height, Bands: bands}
	if geoTransform, err := ds.GeoTransform(); err == nil {
		r.Georef = readGeoref(ds, geoTransform, width, height)
	}

	zap.L().Debug("raster loaded",
		zap.String("path", path),
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("bands", len(bands)),
		zap.Bool("georeferenced", r.Georef != nil),
	)
	return r, nil
}

func readGeoref(ds *godal.Dataset, geoTransform [6]float64, width, height int) *Georef {
	if ds.Projection() == "" {
		return NewGeoref(geoTransform, width, height, "")
	}
	srcSR := ds.SpatialRef()
	defer srcSR.Close()

	crs := ""
	if srcSR.AuthorityName("") == "EPSG" {
		crs = fmt.Sprintf("EPSG:%d", srcSR.AuthorityCode(""))
	} else if wkt, err := srcSR.WKT(); err == nil {
		crs = wkt
	}
	g := NewGeoref(geoTransform, width, height, crs)

	dstSR, err := godal.NewSpatialRefFromEPSG(4326)
	if err != nil {
		return g
	}
	defer dstSR.Close()
	tr, err := godal.NewTransform(srcSR, dstSR)
	if err != nil {
		zap.L().Debug("no transform to WGS84", zap.Error(err))
		return g
	}
	defer tr.Close()

	xs := []float64{g.Bounds.Min.X(), g.Bounds.Max.X()}
	ys := []float64{g.Bounds.Min.Y(), g.Bounds.Max.Y()}
	if err := tr.TransformEx(xs, ys, nil, nil); err != nil {
		return g
	}
	lonLat := orb.MultiPoint{{xs[0], ys[0]}, {xs[1], ys[1]}}.Bound()
	g.LonLatBounds = &lonLat
	return g
}
