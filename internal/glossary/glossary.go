// Package glossary holds the interval tables used to put a label on an
// index value.
package glossary

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"math"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

const NoInterpretation = "no interpretation available"

// Interval is closed on both ends.
type Interval struct {
	Lo    float64 `yaml:"lo"`
	Hi    float64 `yaml:"hi"`
	Label string  `yaml:"label"`
}

func (i Interval) Contains(v float64) bool {
	return i.Lo <= v && v <= i.Hi
}

// Table is an ascending list of intervals. Adjacent intervals may share an
// endpoint; a value on a shared endpoint belongs to the upper interval.
type Table struct {
	Intervals []Interval `yaml:"intervals"`
	// Clamp pulls values outside the table range onto its first or last
	// interval instead of leaving them uninterpreted.
	Clamp bool `yaml:"clamp"`
}

func (t Table) Lookup(v float64) string {
	if math.IsNaN(v) || len(t.Intervals) == 0 {
		return NoInterpretation
	}
	if t.Clamp {
		v = math.Max(v, t.Intervals[0].Lo)
		v = math.Min(v, t.Intervals[len(t.Intervals)-1].Hi)
	}
	for i := len(t.Intervals) - 1; i >= 0; i-- {
		if t.Intervals[i].Contains(v) {
			return t.Intervals[i].Label
		}
	}
	return NoInterpretation
}

func (t Table) Validate() error {
	if len(t.Intervals) == 0 {
		return fmt.Errorf("table has no intervals")
	}
	for i, interval := range t.Intervals {
		if interval.Lo > interval.Hi {
			return fmt.Errorf("interval %d [%g, %g] is inverted", i, interval.Lo, interval.Hi)
		}
		if interval.Label == "" {
			return fmt.Errorf("interval %d has no label", i)
		}
		if i > 0 && interval.Lo < t.Intervals[i-1].Hi {
			return fmt.Errorf("interval %d starts at %g before interval %d ends at %g", i, interval.Lo, i-1, t.Intervals[i-1].Hi)
		}
	}
	return nil
}

// Glossary maps an index name to its table.
type Glossary map[string]Table

func (g Glossary) Interpret(name string, v float64) string {
	table, ok := g[name]
	if !ok {
		return NoInterpretation
	}
	return table.Lookup(v)
}

func (g Glossary) Validate() error {
	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := g[name].Validate(); err != nil {
			return fmt.Errorf("glossary %s: %w", name, err)
		}
	}
	return nil
}

// Fingerprint identifies the table contents, for cache keys.
func (g Glossary) Fingerprint() string {
	data, _ := yaml.Marshal(map[string]Table(g))
	sum := sha1.Sum(data)
	return hex.EncodeToString(sum[:])
}

// Load reads YAML overrides from path and merges them over Default. Tables
// in the file replace the default table of the same name entirely.
func Load(path string) (Glossary, error) {
	g := Default()
	if path == "" {
		return g, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read interpretation tables: %w", err)
	}

	var overrides map[string]Table
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse interpretation tables %s: %w", path, err)
	}
	for name, table := range overrides {
		g[name] = table
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}
