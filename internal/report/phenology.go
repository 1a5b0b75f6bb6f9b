package report

import "strings"

const UnknownStage = "unknown stage"

type stageRule struct {
	before int
	stage  string
}

// Days after sowing at which each crop leaves a stage. The last rule has no
// upper bound.
var phenology = map[string][]stageRule{
	"soy": {
		{30, "emergence"},
		{60, "flowering"},
		{-1, "grain filling / maturity"},
	},
	"corn": {
		{35, "early vegetative"},
		{70, "flowering"},
		{-1, "grain filling"},
	},
	"wheat": {
		{30, "tillering"},
		{70, "heading"},
		{-1, "maturity"},
	},
}

var cropAliases = map[string]string{
	"soy":     "soy",
	"soybean": "soy",
	"soja":    "soy",
	"corn":    "corn",
	"maize":   "corn",
	"maíz":    "corn",
	"maiz":    "corn",
	"wheat":   "wheat",
	"trigo":   "wheat",
}

// NormalizeCrop maps a user supplied crop name to soy, corn or wheat, or ""
// when the crop is not known.
func NormalizeCrop(crop string) string {
	return cropAliases[strings.ToLower(strings.TrimSpace(crop))]
}

// PhenologicalStage estimates the crop stage from the days since sowing.
func PhenologicalStage(crop string, days int) string {
	rules, ok := phenology[NormalizeCrop(crop)]
	if !ok || days < 0 {
		return UnknownStage
	}
	for _, rule := range rules {
		if rule.before < 0 || days < rule.before {
			return rule.stage
		}
	}
	return UnknownStage
}
