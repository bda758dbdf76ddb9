package piping

// Load kinds
const (
	LoadPoint = "Point"
	LoadUDL   = "UDL"
)

// LoadSpec is a dead, live or wind load anchored to a pipe. Point loads sit
// at Distance; UDLs span [Distance, EndDistance]. Distances are measured
// from the pipe start as drawn. Forces in kg (or kg/m for UDLs), moments in
// kg·m.
type LoadSpec struct {
	ID          string  `json:"id"`
	Pipe        string  `json:"pipe" validate:"required"`
	Kind        string  `json:"kind" validate:"omitempty,oneof=Point UDL"`
	Distance    float64 `json:"distance" validate:"gte=0"`
	EndDistance float64 `json:"endDistance" validate:"gte=0"`
	Fx          float64 `json:"fx"`
	Fy          float64 `json:"fy"`
	Fz          float64 `json:"fz"`
	Mx          float64 `json:"mx"`
	My          float64 `json:"my"`
	Mz          float64 `json:"mz"`
}

// IsUDL reports whether the load is distributed.
func (l LoadSpec) IsUDL() bool { return l.Kind == LoadUDL }

// Components returns the six load components.
func (l LoadSpec) Components() [6]float64 {
	return [6]float64{l.Fx, l.Fy, l.Fz, l.Mx, l.My, l.Mz}
}

// SlugSpec enables a slug load at the fitting ending Pipe.
type SlugSpec struct {
	Pipe          string  `json:"pipe" validate:"required"`
	Density       float64 `json:"density" validate:"gte=0"`  // kg/m³
	Velocity      float64 `json:"velocity" validate:"gte=0"` // m/s
	DynamicFactor float64 `json:"dynamicFactor"`
}

// WindConfig drives the directional wind-exposure tables.
type WindConfig struct {
	Speed       float64 `json:"speed"` // m/s
	ShapeFactor float64 `json:"shapeFactor"`
	Directions  int     `json:"directions" validate:"gte=0"` // 0 = 8
}

// DirectionCount returns the number of compass directions.
func (w WindConfig) DirectionCount() int {
	if w.Directions <= 0 {
		return 8
	}
	return w.Directions
}

// SeismicConfig holds the seismic coefficients passed to the solver.
type SeismicConfig struct {
	Method  string  `json:"method"`
	Ax      float64 `json:"ax"`
	Ay      float64 `json:"ay"`
	Az      float64 `json:"az"`
	Damping float64 `json:"damping"`
}
