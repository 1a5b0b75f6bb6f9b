package glossary

// Default returns a fresh copy of the built-in tables.
func Default() Glossary {
	ndvi := []Interval{
		{-1.0, 0.0, "no vegetation (water, bare soil or built surface)"},
		{0.0, 0.3, "low photosynthetic activity / stress"},
		{0.3, 0.6, "moderate photosynthetic activity"},
		{0.6, 1.0, "good crop health"},
	}
	ndviRGB := []Interval{
		{-1.0, 0.0, "no visible vegetation (RGB estimate)"},
		{0.0, 0.1, "weak green signal (RGB estimate)"},
		{0.1, 0.3, "moderate green signal (RGB estimate)"},
		{0.3, 1.0, "strong green signal (RGB estimate)"},
	}

	return Glossary{
		"NDVI":             {Intervals: ndvi},
		"NDVI_orientativo": {Intervals: ndviRGB},
		"EVI": {
			Clamp: true,
			Intervals: []Interval{
				{-1.0, 0.0, "no vegetation"},
				{0.0, 0.2, "sparse or stressed vegetation"},
				{0.2, 0.5, "moderate vegetation"},
				{0.5, 0.8, "dense healthy vegetation"},
				{0.8, 2.5, "very dense vegetation (check for saturation or artefacts)"},
			},
		},
		"NDWI": {Intervals: []Interval{
			{-1.0, -0.3, "dry canopy, low water content"},
			{-0.3, 0.0, "moderate canopy water content"},
			{0.0, 0.2, "high water content / wet soil"},
			{0.2, 1.0, "open water or flooding"},
		}},
		"SAVI": {Intervals: []Interval{
			{-1.5, 0.1, "bare soil"},
			{0.1, 0.3, "sparse vegetation over exposed soil"},
			{0.3, 0.5, "moderate vegetation cover"},
			{0.5, 1.5, "dense vegetation cover"},
		}},
		"GNDVI": {Intervals: []Interval{
			{-1.0, 0.0, "no chlorophyll signal"},
			{0.0, 0.2, "low chlorophyll content"},
			{0.2, 0.5, "moderate chlorophyll content"},
			{0.5, 1.0, "high chlorophyll content"},
		}},
		"NDMI": {Intervals: []Interval{
			{-1.0, -0.2, "water stress"},
			{-0.2, 0.2, "moderate moisture, watch for stress"},
			{0.2, 0.4, "adequate canopy moisture"},
			{0.4, 1.0, "high canopy moisture"},
		}},
		"NDRE": {Intervals: []Interval{
			{-1.0, 0.2, "low chlorophyll / nitrogen deficiency possible"},
			{0.2, 0.6, "moderate chlorophyll"},
			{0.6, 1.0, "high chlorophyll, dense canopy"},
		}},
		"MSAVI": {Intervals: []Interval{
			{-1.0, 0.2, "bare soil or very early emergence"},
			{0.2, 0.4, "early canopy development"},
			{0.4, 0.6, "developing canopy"},
			{0.6, 1.0, "full canopy"},
		}},
	}
}
