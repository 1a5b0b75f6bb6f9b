package index

import (
	"encoding/json"
	"fmt"
	"math"
)

const InsufficientData = "insufficient data"

// Stat is the mean of the valid pixels of one index map.
type Stat struct {
	Mean        float64
	ValidPixels int
}

func (s Stat) Insufficient() bool {
	return s.ValidPixels == 0 || math.IsNaN(s.Mean)
}

func (s Stat) String() string {
	if s.Insufficient() {
		return InsufficientData
	}
	return fmt.Sprintf("%.2f", s.Mean)
}

type statJSON struct {
	Mean        *float64 `json:"mean"`
	ValidPixels int      `json:"valid_pixels"`
}

// MarshalJSON writes a null mean for insufficient data.
func (s Stat) MarshalJSON() ([]byte, error) {
	out := statJSON{ValidPixels: s.ValidPixels}
	if !s.Insufficient() {
		mean := s.Mean
		out.Mean = &mean
	}
	return json.Marshal(out)
}

func (s *Stat) UnmarshalJSON(data []byte) error {
	var in statJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	s.ValidPixels = in.ValidPixels
	s.Mean = math.NaN()
	if in.Mean != nil {
		s.Mean = *in.Mean
	}
	return nil
}

// Summary maps an index name to its mean.
type Summary map[string]Stat

// Mean averages the non-NaN values of values.
func Mean(values [][]float64) Stat {
	var sum float64
	count := 0
	for _, row := range values {
		for _, v := range row {
			if math.IsNaN(v) {
				continue
			}
			sum += v
			count++
		}
	}
	if count == 0 {
		return Stat{Mean: math.NaN()}
	}
	return Stat{Mean: sum / float64(count), ValidPixels: count}
}

func Summarize(indices map[string][][]float64) Summary {
	summary := make(Summary, len(indices))
	for name, values := range indices {
		summary[name] = Mean(values)
	}
	return summary
}
