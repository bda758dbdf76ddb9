package section

import (
	"math"
)

// CalculateProperties computes geometric properties and weights of the
// section. An invalid section yields zero properties.
func (s *Section) CalculateProperties() *Properties {
	props := &Properties{}
	if s.Validate() != nil {
		return props
	}

	do := s.OD
	di := s.OD - 2*s.Thickness
	props.ID = di

	props.Area = math.Pi / 4 * (do*do - di*di)
	props.I = math.Pi / 64 * (math.Pow(do, 4) - math.Pow(di, 4))
	props.J = 2 * props.I
	props.Z = props.I / (do / 2)
	props.R = math.Sqrt(props.I / props.Area)

	// Stress properties on the reduced wall
	te := s.Thickness*(1-s.MillTolerance/100) - s.CorrosionAllowance
	if te > 0 {
		die := do - 2*te
		props.EffectiveThickness = te
		props.EffectiveZ = math.Pi / 32 * (math.Pow(do, 4) - math.Pow(die, 4)) / do
	}

	props.SteelWeight = areaM2(props.Area) * s.SteelDensity
	props.FluidWeight = areaM2(math.Pi/4*di*di) * s.FluidDensity
	if s.InsulationThick > 0 {
		dins := do + 2*s.InsulationThick
		props.InsulationWeight = areaM2(math.Pi/4*(dins*dins-do*do)) * s.InsulationDensity
	}
	return props
}

// ExposedDiameter returns the outside diameter including insulation (mm).
func (s *Section) ExposedDiameter() float64 {
	return s.OD + 2*s.InsulationThick
}

// areaM2 converts mm² to m².
func areaM2(mm2 float64) float64 { return mm2 / 1e6 }
