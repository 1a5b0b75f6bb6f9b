// Package report turns index summaries and field context into the
// agronomic report text.
package report

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/forest-guardian/agro-report-poc/internal/index"
)

const DateLayout = "2006-01-02"

var ErrSowingAfterImage = errors.New("sowing date is after the image date")

// Weather is current conditions supplied by the caller.
type Weather struct {
	Description  string  `json:"description"`
	TemperatureC float64 `json:"temperature_c"`
	HumidityPct  float64 `json:"humidity_pct"`
	RainMM       float64 `json:"rain_mm"`
}

type Context struct {
	Crop       string    `json:"crop"`
	Location   string    `json:"location"`
	Date       time.Time `json:"date"`
	SowingDate time.Time `json:"sowing_date"`
	Weather    *Weather  `json:"weather,omitempty"`
}

type IndexLine struct {
	Name           string     `json:"name"`
	Stat           index.Stat `json:"stat"`
	Interpretation string     `json:"interpretation"`
}

type Report struct {
	Context           Context     `json:"context"`
	ImageType         string      `json:"image_type"`
	DaysSinceSowing   int         `json:"days_since_sowing"`
	PhenologicalStage string      `json:"phenological_stage"`
	Indices           []IndexLine `json:"indices"`
	Warnings          []string    `json:"warnings,omitempty"`
}

// Build assembles the report for one computed raster.
func Build(result *index.Result, engine *index.Engine, ctx Context) (*Report, error) {
	if ctx.Date.IsZero() || ctx.SowingDate.IsZero() {
		return nil, fmt.Errorf("image date and sowing date are required")
	}
	if ctx.SowingDate.After(ctx.Date) {
		return nil, fmt.Errorf("%w: %s > %s", ErrSowingAfterImage, ctx.SowingDate.Format(DateLayout), ctx.Date.Format(DateLayout))
	}

	days := int(ctx.Date.Sub(ctx.SowingDate).Hours() / 24)
	rep := &Report{
		Context:           ctx,
		ImageType:         result.Type,
		DaysSinceSowing:   days,
		PhenologicalStage: PhenologicalStage(ctx.Crop, days),
	}

	for _, name := range result.Names() {
		stat := result.Summary[name]
		rep.Indices = append(rep.Indices, IndexLine{
			Name:           name,
			Stat:           stat,
			Interpretation: engine.Interpret(name, stat),
		})
		if stat.Insufficient() {
			rep.Warnings = append(rep.Warnings, fmt.Sprintf("%s could not be computed: no valid pixels.", name))
		}
	}
	if _, ok := result.Summary[index.NDVIOrientativo]; ok {
		rep.Warnings = append(rep.Warnings, "NDVI_orientativo is an RGB estimate (no NIR band); it is not a true NDVI.")
	}
	if result.Meta.Rescaled {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("Pixel values were rescaled by %.0f to reflectance range; absolute values are approximate.", result.Meta.Scale))
	}
	return rep, nil
}

// Text renders the report as plain text lines.
func (r *Report) Text() string {
	lines := []string{
		fmt.Sprintf("Field report | Date: %s", r.Context.Date.Format(DateLayout)),
		fmt.Sprintf("Crop: %s", r.Context.Crop),
		fmt.Sprintf("Location: %s", r.Context.Location),
		fmt.Sprintf("Image type: %s", r.ImageType),
		fmt.Sprintf("Days since sowing: %d days", r.DaysSinceSowing),
		fmt.Sprintf("Estimated phenological stage: %s", r.PhenologicalStage),
	}
	for _, line := range r.Indices {
		lines = append(lines, fmt.Sprintf("%s: %s -> %s", line.Name, line.Stat, line.Interpretation))
	}
	for _, warning := range r.Warnings {
		lines = append(lines, "Warning: "+warning)
	}
	if w := r.Context.Weather; w != nil {
		lines = append(lines, fmt.Sprintf("Current weather: %s, %.1f°C, humidity %.0f%%, rain %.1f mm", w.Description, w.TemperatureC, w.HumidityPct, w.RainMM))
	}
	return strings.Join(lines, "\n")
}
