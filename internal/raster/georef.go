package raster

import (
	"math"

	"github.com/paulmach/orb"
)

// Georef is the physical placement of a raster. It is carried through the
// index computation untouched and only used for display and exports.
type Georef struct {
	GeoTransform [6]float64
	// CRS is "EPSG:<code>" when the reference has an authority, WKT otherwise.
	CRS    string
	Bounds orb.Bound
	// LonLatBounds are the bounds reprojected to WGS84 when the loader could
	// do so.
	LonLatBounds *orb.Bound
}

func NewGeoref(geoTransform [6]float64, width, height int, crs string) *Georef {
	g := &Georef{GeoTransform: geoTransform, CRS: crs}
	corners := [][2]float64{{0, 0}, {float64(width), 0}, {0, float64(height)}, {float64(width), float64(height)}}
	bound := orb.Bound{Min: orb.Point{math.Inf(1), math.Inf(1)}, Max: orb.Point{math.Inf(-1), math.Inf(-1)}}
	for _, c := range corners {
		bound = bound.Extend(g.pixelToMap(c[0], c[1]))
	}
	g.Bounds = bound
	return g
}

func (g *Georef) pixelToMap(px, py float64) orb.Point {
	gt := g.GeoTransform
	return orb.Point{
		gt[0] + gt[1]*px + gt[2]*py,
		gt[3] + gt[4]*px + gt[5]*py,
	}
}

// PixelCenter returns the map coordinate of the centre of pixel (x, y) in the
// raster CRS.
func (g *Georef) PixelCenter(x, y int) orb.Point {
	return g.pixelToMap(float64(x)+0.5, float64(y)+0.5)
}

// Footprint is the raster outline, in WGS84 when available.
func (g *Georef) Footprint() orb.Polygon {
	if g.LonLatBounds != nil {
		return g.LonLatBounds.ToPolygon()
	}
	return g.Bounds.ToPolygon()
}
