package section

import "fmt"

// Section is a circular hollow pipe section with optional insulation and
// contents. Dimensions in mm, densities in kg/m³.
type Section struct {
	Name string `json:"name,omitempty"`

	OD        float64 `json:"od"`        // outer diameter (mm)
	Thickness float64 `json:"thickness"` // nominal wall (mm)

	// Allowances deducted from the nominal wall for stress properties
	CorrosionAllowance float64 `json:"corrosionAllowance,omitempty"` // mm
	MillTolerance      float64 `json:"millTolerance,omitempty"`      // % of nominal wall

	SteelDensity      float64 `json:"steelDensity"`
	FluidDensity      float64 `json:"fluidDensity,omitempty"`
	InsulationThick   float64 `json:"insulationThickness,omitempty"` // mm
	InsulationDensity float64 `json:"insulationDensity,omitempty"`
}

// Properties holds calculated geometric properties and weights
type Properties struct {
	ID   float64 // inner diameter (mm)
	Area float64 // metal area (mm²)

	// Bending properties about any diameter
	I float64 // second moment of area (mm⁴)
	Z float64 // elastic section modulus (mm³)
	R float64 // radius of gyration (mm)
	J float64 // polar moment (mm⁴)

	// Properties on the corroded, mill-tolerance reduced wall
	EffectiveThickness float64 // mm
	EffectiveZ         float64 // mm³

	// Weights per meter of pipe
	SteelWeight      float64 // kg/m
	FluidWeight      float64 // kg/m
	InsulationWeight float64 // kg/m
}

// TotalWeight returns the operating weight per meter (kg/m).
func (p *Properties) TotalWeight() float64 {
	return p.SteelWeight + p.FluidWeight + p.InsulationWeight
}

// Validate checks if the section definition is valid
func (s *Section) Validate() error {
	if s.OD <= 0 {
		return &ValidationError{"outer diameter must be positive"}
	}
	if s.Thickness <= 0 {
		return &ValidationError{"wall thickness must be positive"}
	}
	if 2*s.Thickness >= s.OD {
		return &ValidationError{msg: fmt.Sprintf("wall thickness %.2f mm closes a %.2f mm pipe", s.Thickness, s.OD)}
	}
	if s.MillTolerance < 0 || s.MillTolerance >= 100 {
		return &ValidationError{msg: fmt.Sprintf("mill tolerance %.1f%% out of range", s.MillTolerance)}
	}
	if s.SteelDensity < 0 || s.FluidDensity < 0 || s.InsulationDensity < 0 {
		return &ValidationError{"densities must not be negative"}
	}
	return nil
}

// ValidationError represents a section validation error
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}
