package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/forest-guardian/agro-report-poc/internal/index"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
)

// CreateFootprintGeoJSON writes the raster outline as a single feature whose
// properties carry the index means. Insufficient means are written as null.
func CreateFootprintGeoJSON(result *index.Result, path string) error {
	georef := result.Meta.Georef
	if georef == nil {
		return fmt.Errorf("raster has no georeference")
	}

	feature := geojson.NewFeature(georef.Footprint())
	feature.Properties["image_type"] = result.Type
	feature.Properties["crs"] = georef.CRS
	feature.Properties["wgs84"] = georef.LonLatBounds != nil
	means := map[string]interface{}{}
	for _, name := range result.Names() {
		stat := result.Summary[name]
		if stat.Insufficient() {
			means[name] = nil
			continue
		}
		means[name] = stat.Mean
	}
	feature.Properties["indices"] = means

	fc := geojson.NewFeatureCollection()
	fc.Append(feature)
	data, err := fc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("error encoding GeoJSON: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create result folder: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error creating GeoJSON file: %w", err)
	}

	zap.L().Info("footprint GeoJSON created", zap.String("path", path))
	return nil
}
