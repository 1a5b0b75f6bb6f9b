// Package dataset flattens computed index maps into one row per pixel.
package dataset

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/forest-guardian/agro-report-poc/internal/index"
	"github.com/gocarina/gocsv"
)

// PixelRow is one pixel of an analysed raster. MapX and MapY are the pixel
// centre in the raster CRS and are NaN for rasters without a geotransform.
// Indices that were not produced are NaN.
type PixelRow struct {
	X               int     `csv:"x"`
	Y               int     `csv:"y"`
	MapX            float64 `csv:"map_x"`
	MapY            float64 `csv:"map_y"`
	NDVI            float64 `csv:"ndvi"`
	NDVIOrientativo float64 `csv:"ndvi_orientativo"`
	EVI             float64 `csv:"evi"`
	NDWI            float64 `csv:"ndwi"`
	SAVI            float64 `csv:"savi"`
	GNDVI           float64 `csv:"gndvi"`
	NDMI            float64 `csv:"ndmi"`
	NDRE            float64 `csv:"ndre"`
	MSAVI           float64 `csv:"msavi"`
}

func (p *PixelRow) field(name string) *float64 {
	switch name {
	case index.NDVI:
		return &p.NDVI
	case index.NDVIOrientativo:
		return &p.NDVIOrientativo
	case index.EVI:
		return &p.EVI
	case index.NDWI:
		return &p.NDWI
	case index.SAVI:
		return &p.SAVI
	case index.GNDVI:
		return &p.GNDVI
	case index.NDMI:
		return &p.NDMI
	case index.NDRE:
		return &p.NDRE
	case index.MSAVI:
		return &p.MSAVI
	default:
		return nil
	}
}

// Value returns the named index of the row, NaN when unknown.
func (p PixelRow) Value(name string) float64 {
	if f := p.field(name); f != nil {
		return *f
	}
	return math.NaN()
}

// CreatePixelDataset returns the rows in raster order. Pixels where every
// index is missing are skipped.
func CreatePixelDataset(result *index.Result) []PixelRow {
	names := result.Names()
	rows := make([]PixelRow, 0, result.Width*result.Height)
	for y := range result.Height {
		for x := range result.Width {
			row := PixelRow{X: x, Y: y, MapX: math.NaN(), MapY: math.NaN()}
			for _, name := range index.Names {
				*row.field(name) = math.NaN()
			}

			valid := false
			for _, name := range names {
				v := result.Indices[name][y][x]
				*row.field(name) = v
				if !math.IsNaN(v) {
					valid = true
				}
			}
			if !valid {
				continue
			}

			if g := result.Meta.Georef; g != nil {
				center := g.PixelCenter(x, y)
				row.MapX, row.MapY = center.X(), center.Y()
			}
			rows = append(rows, row)
		}
	}
	return rows
}

func WritePixelDataset(rows []PixelRow, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create dataset folder: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create dataset file: %w", err)
	}
	if err := gocsv.MarshalFile(&rows, file); err != nil {
		file.Close()
		return fmt.Errorf("failed to write dataset %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close dataset %s: %w", path, err)
	}
	return nil
}

func ReadPixelDataset(path string) ([]PixelRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer file.Close()

	var rows []PixelRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", path, err)
	}
	return rows, nil
}
