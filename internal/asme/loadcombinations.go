package asme

// LoadCombination represents a piping load case built from primary load types.
// Based on ASME B31.3 sustained, operating, occasional and expansion cases.
type LoadCombination struct {
	ID          string `json:"id" validate:"required"`
	Description string `json:"description"`
	Category    string `json:"category"` // SUS, OPE, OCC, EXP, HYD

	// Load factors for each load type
	Dead        float64 `json:"dead"`        // W - weight (pipe, fluid, insulation, dead loads)
	Live        float64 `json:"live"`        // L - live load
	Wind        float64 `json:"wind"`        // WIN - wind load
	Seismic     float64 `json:"seismic"`     // U - seismic load
	Temperature float64 `json:"temperature"` // T - thermal load
	Pressure    float64 `json:"pressure"`    // P - internal pressure
	Slug        float64 `json:"slug"`        // SL - slug impact load
}

// B31.3 basic load cases
var LoadCombinations = []LoadCombination{
	{
		ID:          "1",
		Description: "W + P1",
		Category:    "SUS",
		Dead:        1.0,
		Pressure:    1.0,
	},
	{
		ID:          "2",
		Description: "W + T1 + P1",
		Category:    "OPE",
		Dead:        1.0,
		Temperature: 1.0,
		Pressure:    1.0,
	},
	{
		ID:          "3",
		Description: "W + L + P1",
		Category:    "SUS",
		Dead:        1.0,
		Live:        1.0,
		Pressure:    1.0,
	},
	{
		ID:          "4",
		Description: "W + T1 + P1 + WIN",
		Category:    "OCC",
		Dead:        1.0,
		Temperature: 1.0,
		Pressure:    1.0,
		Wind:        1.0,
	},
	{
		ID:          "5",
		Description: "W + T1 + P1 + U",
		Category:    "OCC",
		Dead:        1.0,
		Temperature: 1.0,
		Pressure:    1.0,
		Seismic:     1.0,
	},
	{
		ID:          "6",
		Description: "W + T1 + P1 + SL",
		Category:    "OCC",
		Dead:        1.0,
		Temperature: 1.0,
		Pressure:    1.0,
		Slug:        1.0,
	},
	{
		ID:          "7",
		Description: "T1 (OPE - SUS)",
		Category:    "EXP",
		Temperature: 1.0,
	},
}

// SimplifiedCombinations covers sustained and operating cases only.
var SimplifiedCombinations = []LoadCombination{
	LoadCombinations[0],
	LoadCombinations[1],
}

// Combine returns the factored value for a given load combination
func (lc LoadCombination) Combine(loads PrimaryLoads) float64 {
	return lc.Dead*loads.Dead +
		lc.Live*loads.Live +
		lc.Wind*loads.Wind +
		lc.Seismic*loads.Seismic +
		lc.Temperature*loads.Temperature +
		lc.Pressure*loads.Pressure +
		lc.Slug*loads.Slug
}

// PrimaryLoads holds unfactored results of a single quantity per load type
type PrimaryLoads struct {
	Dead        float64
	Live        float64
	Wind        float64
	Seismic     float64
	Temperature float64
	Pressure    float64
	Slug        float64
}

// Governing finds the maximum factored value over all combinations
func Governing(loads PrimaryLoads, combinations []LoadCombination) (float64, LoadCombination) {
	var maxValue float64
	var governing LoadCombination

	for _, combo := range combinations {
		v := combo.Combine(loads)
		if v > maxValue {
			maxValue = v
			governing = combo
		}
	}

	return maxValue, governing
}

// DefaultLoadCombinations returns a copy of the basic load cases.
func DefaultLoadCombinations() []LoadCombination {
	out := make([]LoadCombination, len(LoadCombinations))
	copy(out, LoadCombinations)
	return out
}
