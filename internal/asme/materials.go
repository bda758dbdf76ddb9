package asme

import "strings"

// Material and design constants

const (
	// Densities (kg/m³)
	DensitySteel     = 7850.0
	DensityStainless = 8000.0
	DensityWater     = 1000.0

	// Modulus of elasticity for carbon steel at ambient (MPa)
	Es = 203000.0

	// Poisson's ratio
	Nu = 0.3

	// Gravity (m/s²)
	G = 9.80665
)

// materialDensities maps common pipe material designations to density (kg/m³)
var materialDensities = map[string]float64{
	"A106":  DensitySteel,
	"A53":   DensitySteel,
	"API5L": DensitySteel,
	"A333":  DensitySteel,
	"A335":  7860,
	"A312":  DensityStainless,
	"A358":  DensityStainless,
	"B167":  8470,
	"B444":  8440,
}

// MaterialDensity looks up the density of a material by designation prefix.
// Unknown materials default to carbon steel.
func MaterialDensity(material string) float64 {
	key := strings.ToUpper(strings.NewReplacer(" ", "", "-", "").Replace(material))
	key = strings.TrimPrefix(key, "ASTM")
	key = strings.TrimPrefix(key, "ASME")
	key = strings.TrimPrefix(key, "S")
	for prefix, rho := range materialDensities {
		if strings.HasPrefix(key, prefix) {
			return rho
		}
	}
	return DensitySteel
}

// DesignParameters are passed through to the solver untouched
type DesignParameters struct {
	Code                string  `json:"code"`
	AmbientTemperature  float64 `json:"ambientTemperature"`  // °C
	ModulusOfElasticity float64 `json:"modulusOfElasticity"` // MPa
	PoissonRatio        float64 `json:"poissonRatio"`
	FrictionCoefficient float64 `json:"frictionCoefficient"`
	HydrotestFactor     float64 `json:"hydrotestFactor"`
	IncludeSIF          bool    `json:"includeSIF"`
}

// DefaultDesignParameters returns the B31.3 defaults
func DefaultDesignParameters() DesignParameters {
	return DesignParameters{
		Code:                "ASME B31.3",
		AmbientTemperature:  21,
		ModulusOfElasticity: Es,
		PoissonRatio:        Nu,
		FrictionCoefficient: 0.3,
		HydrotestFactor:     1.5,
		IncludeSIF:          true,
	}
}

// Merge fills zero fields of p from defaults.
func (p DesignParameters) Merge(defaults DesignParameters) DesignParameters {
	if p.Code == "" {
		p.Code = defaults.Code
	}
	if p.AmbientTemperature == 0 {
		p.AmbientTemperature = defaults.AmbientTemperature
	}
	if p.ModulusOfElasticity == 0 {
		p.ModulusOfElasticity = defaults.ModulusOfElasticity
	}
	if p.PoissonRatio == 0 {
		p.PoissonRatio = defaults.PoissonRatio
	}
	if p.FrictionCoefficient == 0 {
		p.FrictionCoefficient = defaults.FrictionCoefficient
	}
	if p.HydrotestFactor == 0 {
		p.HydrotestFactor = defaults.HydrotestFactor
	}
	return p
}
