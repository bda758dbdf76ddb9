package piping

// Support types
const (
	SupportAnchor      = "Anchor"
	SupportSliding     = "Sliding"
	SupportCustom      = "Custom"
	SupportCustomPlus  = "Custom+"
	SupportCustomMinus = "Custom-"
	SupportSlave       = "Slave Node"
	SupportHanger      = "Hanger"
)

// Restraint value types
const (
	ValueStiffness = "K"
	ValueAllowable = "δ allow."
	ValueApplied   = "δ appl."
)

// Support is a restraint specification attached to a segment at a distance
// from its start. Values are per translational (X, Y, Z) and rotational
// (RX, RY, RZ) axis; a nil value means not set.
type Support struct {
	ID        int      `json:"id"`
	Type      string   `json:"type" validate:"required,oneof=Anchor Sliding Custom Custom+ Custom- 'Slave Node' Hanger"`
	Direction string   `json:"direction"`
	ValueType string   `json:"valueType"`
	X         *float64 `json:"x"`
	Y         *float64 `json:"y"`
	Z         *float64 `json:"z"`
	RX        *float64 `json:"rx"`
	RY        *float64 `json:"ry"`
	RZ        *float64 `json:"rz"`
	Mu        float64  `json:"mu"`                       // friction coefficient
	Distance  float64  `json:"distance" validate:"gte=0"` // m

	// Slave Node only
	MasterPipe     string  `json:"masterPipe" validate:"required_if=Type 'Slave Node'"`
	MasterDistance float64 `json:"masterDistance"`
}

// IsSlave reports whether the support follows a node on another pipe.
func (s Support) IsSlave() bool { return s.Type == SupportSlave }

// Values returns the six axis values in X, Y, Z, RX, RY, RZ order.
func (s Support) Values() [6]*float64 {
	return [6]*float64{s.X, s.Y, s.Z, s.RX, s.RY, s.RZ}
}

// Clone returns a deep copy of s.
func (s Support) Clone() Support {
	c := s
	c.X, c.Y, c.Z = cloneFloat(s.X), cloneFloat(s.Y), cloneFloat(s.Z)
	c.RX, c.RY, c.RZ = cloneFloat(s.RX), cloneFloat(s.RY), cloneFloat(s.RZ)
	return c
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
