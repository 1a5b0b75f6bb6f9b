package raster

import (
	"fmt"
	"math"
)

// MinBands is the number of bands needed to resolve red, green and blue.
const MinBands = 3

// Band is one spectral layer, indexed Values[y][x].
type Band struct {
	Description string
	Values      [][]float64
	NoData      *float64
	// Mask marks missing pixels with true. Optional.
	Mask [][]bool
}

// Value returns the pixel value and whether it is usable.
func (b Band) Value(x, y int) (float64, bool) {
	v := b.Values[y][x]
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v, false
	}
	if b.NoData != nil && v == *b.NoData {
		return v, false
	}
	if b.Mask != nil && b.Mask[y][x] {
		return v, false
	}
	return v, true
}

// Raster is an ordered stack of equally shaped bands.
type Raster struct {
	Width  int
	Height int
	Bands  []Band
	Georef *Georef
}

// New builds a raster sized after its first band.
func New(bands ...Band) *Raster {
	r := &Raster{Bands: bands}
	if len(bands) > 0 {
		r.Height = len(bands[0].Values)
		if r.Height > 0 {
			r.Width = len(bands[0].Values[0])
		}
	}
	return r
}

func (r *Raster) BandCount() int {
	return len(r.Bands)
}

func (r *Raster) Descriptions() []string {
	descriptions := make([]string, len(r.Bands))
	for i, band := range r.Bands {
		descriptions[i] = band.Description
	}
	return descriptions
}

// Validate checks the band count and that every band (and mask) matches
// Width x Height.
func (r *Raster) Validate() error {
	if len(r.Bands) < MinBands {
		return &ValidationError{Err: ErrTooFewBands, Detail: fmt.Sprintf("got %d, need at least %d", len(r.Bands), MinBands)}
	}
	if r.Width == 0 || r.Height == 0 {
		return &ValidationError{Err: ErrShapeMismatch, Detail: "raster has no pixels"}
	}
	for i, band := range r.Bands {
		if err := checkShape(len(band.Values), r.Height, func(y int) int { return len(band.Values[y]) }, r.Width); err != "" {
			return &ValidationError{Err: ErrShapeMismatch, Detail: fmt.Sprintf("band %d %s", i+1, err)}
		}
		if band.Mask == nil {
			continue
		}
		if err := checkShape(len(band.Mask), r.Height, func(y int) int { return len(band.Mask[y]) }, r.Width); err != "" {
			return &ValidationError{Err: ErrShapeMismatch, Detail: fmt.Sprintf("band %d mask %s", i+1, err)}
		}
	}
	return nil
}

func checkShape(rows, height int, rowLen func(int) int, width int) string {
	if rows != height {
		return fmt.Sprintf("has %d rows, expected %d", rows, height)
	}
	for y := 0; y < rows; y++ {
		if n := rowLen(y); n != width {
			return fmt.Sprintf("row %d has %d columns, expected %d", y, n, width)
		}
	}
	return ""
}

// MaxValue is the largest usable value across all bands, or NaN when every
// pixel is missing.
func (r *Raster) MaxValue() float64 {
	maxValue := math.Inf(-1)
	for _, band := range r.Bands {
		for y := 0; y < r.Height; y++ {
			for x := 0; x < r.Width; x++ {
				if v, ok := band.Value(x, y); ok && v > maxValue {
					maxValue = v
				}
			}
		}
	}
	if math.IsInf(maxValue, -1) {
		return math.NaN()
	}
	return maxValue
}
