package delivery

import (
	"path/filepath"
	"strings"

	"github.com/forest-guardian/agro-report-poc/internal/dataset"
	"github.com/forest-guardian/agro-report-poc/internal/output"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Export lists the files written for one raster. Pixels is the row count read
// back from Dataset. GeoJSON is empty when the raster has no georeference.
type Export struct {
	Images  []string `json:"images"`
	Dataset string   `json:"dataset"`
	Pixels  int      `json:"pixels"`
	GeoJSON string   `json:"geojson,omitempty"`
}

// ExportFile writes the index heatmaps, the per-pixel CSV and the footprint
// GeoJSON of path under outDir. Per-pixel maps are never cached, so the
// raster is always recomputed.
func ExportFile(path, outDir string, opts Options) (*Export, error) {
	engine := opts.engine()
	result, err := compute(fileSource(path), opts.convention(), engine)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	images, err := output.CreateIndexImages(result, engine.Config().Glossary, filepath.Join(outDir, "images"), name)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to create index images for %s", path)
	}

	export := &Export{
		Images:  images,
		Dataset: filepath.Join(outDir, name+".csv"),
	}
	rows := dataset.CreatePixelDataset(result)
	if err := dataset.WritePixelDataset(rows, export.Dataset); err != nil {
		return nil, eris.Wrapf(err, "failed to export pixels of %s", path)
	}
	written, err := dataset.ReadPixelDataset(export.Dataset)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to verify pixels of %s", path)
	}
	if len(written) != len(rows) {
		return nil, eris.Errorf("pixel dataset %s has %d rows, expected %d", export.Dataset, len(written), len(rows))
	}
	export.Pixels = len(written)

	if result.Meta.Georef != nil {
		export.GeoJSON = filepath.Join(outDir, name+".geojson")
		if err := output.CreateFootprintGeoJSON(result, export.GeoJSON); err != nil {
			return nil, eris.Wrapf(err, "failed to export footprint of %s", path)
		}
	} else {
		zap.L().Info("raster is not georeferenced, skipping GeoJSON", zap.String("path", path))
	}
	return export, nil
}
