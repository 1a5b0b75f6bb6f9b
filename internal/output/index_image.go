package output

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/forest-guardian/agro-report-poc/internal/glossary"
	"github.com/forest-guardian/agro-report-poc/internal/index"
	"github.com/forest-guardian/agro-report-poc/internal/properties"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	minImageWidth = 256
	legendHeight  = 48
	jpegQuality   = 95
)

func normalize(value, min, max float64) float64 {
	if max == min {
		return 0
	}
	norm := (value - min) / (max - min)
	if norm < 0 {
		return 0
	}
	if norm > 1 {
		return 1
	}
	return norm
}

// valueToColor maps 0..1 onto red (low) through yellow to green (high).
func valueToColor(norm float64) color.RGBA {
	var r, g uint8
	if norm <= 0.5 {
		r = 255
		g = uint8(255 * norm / 0.5)
	} else {
		r = uint8(255 * (1 - (norm-0.5)/0.5))
		g = 255
	}
	return color.RGBA{R: r, G: g, B: 0, A: 255}
}

var noDataColor = color.RGBA{R: properties.ColorNoData.R, G: properties.ColorNoData.G, B: properties.ColorNoData.B, A: 255}

// colorRange is the span of the interpretation table, or [-1, 1].
func colorRange(table glossary.Table) (float64, float64) {
	if len(table.Intervals) == 0 {
		return -1, 1
	}
	return table.Intervals[0].Lo, table.Intervals[len(table.Intervals)-1].Hi
}

// CreateIndexImages writes one JPEG heatmap per produced index to
// dir/<name>_<INDEX>.jpg and returns the paths in report order.
func CreateIndexImages(result *index.Result, gloss glossary.Glossary, dir, name string) ([]string, error) {
	if result.Width == 0 || result.Height == 0 {
		return nil, fmt.Errorf("cannot draw an empty raster")
	}
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create result folder: %w", err)
	}

	names := result.Names()
	paths := make([]string, len(names))
	var g errgroup.Group
	g.SetLimit(properties.Workers())
	for i, indexName := range names {
		g.Go(func() error {
			lo, hi := colorRange(gloss[indexName])
			outputPath := filepath.Join(dir, fmt.Sprintf("%s_%s.jpg", name, indexName))
			dc := drawIndexImage(indexName, result.Indices[indexName], lo, hi)
			if err := gg.SaveJPG(outputPath, dc.Image(), jpegQuality); err != nil {
				return fmt.Errorf("failed to encode %s image: %w", indexName, err)
			}
			paths[i] = outputPath
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	zap.L().Info("index images created", zap.String("dir", dir), zap.Int("count", len(paths)))
	return paths, nil
}

func drawIndexImage(indexName string, values [][]float64, lo, hi float64) *gg.Context {
	height := len(values)
	width := len(values[0])
	scale := 1
	if width < minImageWidth {
		scale = int(math.Ceil(float64(minImageWidth) / float64(width)))
	}

	heat := image.NewRGBA(image.Rect(0, 0, width*scale, height*scale))
	for y, row := range values {
		for x, v := range row {
			clr := noDataColor
			if !math.IsNaN(v) {
				clr = valueToColor(normalize(v, lo, hi))
			}
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					heat.SetRGBA(x*scale+dx, y*scale+dy, clr)
				}
			}
		}
	}

	dc := gg.NewContext(heat.Bounds().Dx(), heat.Bounds().Dy()+legendHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.DrawImage(heat, 0, 0)
	drawLegend(dc, indexName, heat.Bounds().Dy(), lo, hi)
	return dc
}

// drawLegend paints the colour ramp and its bounds under the map.
func drawLegend(dc *gg.Context, indexName string, top int, lo, hi float64) {
	const margin = 8.0
	barTop := float64(top) + 22
	barWidth := float64(dc.Width()) - 2*margin
	steps := int(barWidth)
	for i := 0; i < steps; i++ {
		dc.SetColor(valueToColor(float64(i) / float64(steps)))
		dc.DrawRectangle(margin+float64(i), barTop, 1, 12)
		dc.Fill()
	}

	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored(indexName, float64(dc.Width())/2, float64(top)+10, 0.5, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("%.1f", lo), margin, float64(top)+10, 0, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("%.1f", hi), float64(dc.Width())-margin, float64(top)+10, 1, 0.5)
}
