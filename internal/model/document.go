package model

import (
	"sort"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/dexterlegrand/threejs-asets-sub009/internal/asme"
	"github.com/dexterlegrand/threejs-asets-sub009/internal/piping"
)

// Document is the analysis model handed to the solver.
// Directional wind exposure is reported once, under WindLoads only.
type Document struct {
	ID                         string  `json:"id"`
	LineNo                     string  `json:"lineNo"`
	SystemNo                   string  `json:"systemNo"`
	StructuralNaturalFrequency float64 `json:"structuralNaturalFrequency"`

	Nodes        map[int]*Node        `json:"nodes"`
	BeamElements map[int]*BeamElement `json:"beamElements"`
	BeamNodes    map[int]*BeamNode    `json:"beamNodes"`
	Members      []*Member            `json:"members"`

	DeadLoad  *Accumulator `json:"deadLoad"`
	LiveLoad  *Accumulator `json:"liveLoad"`
	WindLoads *WindLoads   `json:"windLoads"`
	SlugLoads []*SlugLoad  `json:"slugLoads"`

	FlangeData             map[int]*FlangeRecord       `json:"flangeData"`
	NonStraightElementData map[int]*NonStraightElement `json:"nonStraightElementData"`
	ValveData              map[int]*ValveRecord        `json:"valveData"`
	SeismicData            *SeismicData                `json:"seismicData"`
	TemperatureLoad        map[int]*TemperatureRecord  `json:"temperatureLoad"`
	PressureLoad           map[int]*PressureRecord     `json:"pressureLoad"`

	LoadCombinations []asme.LoadCombination `json:"loadCombinations"`
	DesignParameters asme.DesignParameters  `json:"designParameters"`
}

// Vec3 is a JSON friendly 3D vector.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func vec3(v r3.Vec) Vec3 { return Vec3{X: v.X, Y: v.Y, Z: v.Z} }

// Node of the global node table. Coordinates in mm.
type Node struct {
	Label       int     `json:"label"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Z           float64 `json:"z"`
	MemberNames string  `json:"memberNames"`
}

// Releases are the 12 end-release flags of an element.
type Releases struct {
	Start piping.Releases `json:"start"`
	End   piping.Releases `json:"end"`
}

// BeamElement is one discretized piece.
type BeamElement struct {
	Label int                `json:"label"`
	Name  string             `json:"name"`
	Pipe  string             `json:"pipe"`
	Line  string             `json:"line"`
	Node1 int                `json:"node1"`
	Node2 int                `json:"node2"`
	Type  piping.ElementType `json:"type"`

	Params piping.Descriptor `json:"params,omitempty"`

	Temperatures [3]float64 `json:"temperatures"`
	Pressures    [3]float64 `json:"pressures"`
	Releases     Releases   `json:"releases"`
	LocalZ       Vec3       `json:"localZ"`
}

// Member carries the section and material of an element.
type Member struct {
	Label              int     `json:"label"`
	Name               string  `json:"name"`
	Pipe               string  `json:"pipe"`
	LongWeldType       string  `json:"longWeldType"`
	CorrosionAllowance float64 `json:"corrosionAllowance"`
	MillTolerance      float64 `json:"millTolerance"`
	NPS                string  `json:"nps"`
	Schedule           string  `json:"schedule"`
	CountryCode        string  `json:"countryCode"`
	OD                 float64 `json:"od"`
	Thickness          float64 `json:"thickness"`
	MaterialID         int     `json:"materialId"`
	Material           string  `json:"material"`
	Length             float64 `json:"length"` // mm

	Area   float64 `json:"area"`    // mm²
	I      float64 `json:"inertia"` // mm⁴
	Weight float64 `json:"weight"`  // kg/m operating
}

// Restraint is one support realized at a node. Only the value group
// selected by ValueType is populated.
type Restraint struct {
	SupportID int    `json:"supportId"`
	Type      string `json:"type"`
	Direction string `json:"direction"`
	ValueType string `json:"valueType"`

	Kx  *float64 `json:"Kx"`
	Ky  *float64 `json:"Ky"`
	Kz  *float64 `json:"Kz"`
	KMx *float64 `json:"KMx"`
	KMy *float64 `json:"KMy"`
	KMz *float64 `json:"KMz"`

	AllowX  *float64 `json:"allowX"`
	AllowY  *float64 `json:"allowY"`
	AllowZ  *float64 `json:"allowZ"`
	AllowRX *float64 `json:"allowRX"`
	AllowRY *float64 `json:"allowRY"`
	AllowRZ *float64 `json:"allowRZ"`

	ApplX  *float64 `json:"applX"`
	ApplY  *float64 `json:"applY"`
	ApplZ  *float64 `json:"applZ"`
	ApplRX *float64 `json:"applRX"`
	ApplRY *float64 `json:"applRY"`
	ApplRZ *float64 `json:"applRZ"`

	Mu float64 `json:"mu"`
}

// BeamNode is the boundary condition record of a node.
type BeamNode struct {
	Label      int         `json:"label"`
	Category   string      `json:"category"`
	Restraints []Restraint `json:"restraints"`
	MasterNode *int        `json:"masterNode,omitempty"`
}

// WindLoads is the wind accumulator plus the directional exposure table.
type WindLoads struct {
	*Accumulator
	Exposure []*WindDirection `json:"exposure"`
}

// WindDirection is the exposure of every element to wind from one compass
// direction in the horizontal plane.
type WindDirection struct {
	Angle     float64         `json:"angle"` // degrees from +X towards +Z
	Direction Vec3            `json:"direction"`
	Elements  []*WindExposure `json:"elements"`
	TotalArea float64         `json:"totalArea"` // m²
	Force     float64         `json:"force"`     // N
}

// WindExposure of one element
type WindExposure struct {
	Element         int     `json:"element"`
	ProjectedLength float64 `json:"projectedLength"` // mm
	Area            float64 `json:"area"`            // m²
	Force           float64 `json:"force"`           // N
}

// SlugLoad joins the data needed for an impulsive load at a bend.
type SlugLoad struct {
	Pipe     string `json:"pipe"`
	Fitting  string `json:"fitting"`
	Element  int    `json:"element"`
	Node     int    `json:"node"`
	Incoming Vec3   `json:"incoming"` // unit direction of the pipe feeding the bend
	Outgoing Vec3   `json:"outgoing"` // unit direction of the pipe leaving it
	Start    Vec3   `json:"start"`    // mm
	End      Vec3   `json:"end"`      // mm

	Density       float64 `json:"density"`
	Velocity      float64 `json:"velocity"`
	DynamicFactor float64 `json:"dynamicFactor"`
	FlowArea      float64 `json:"flowArea"` // m²
	Force         float64 `json:"force"`    // N
}

// FlangeRecord is a flange at a node.
type FlangeRecord struct {
	Node     int     `json:"node"`
	Pipe     string  `json:"pipe"`
	Mate     string  `json:"mate,omitempty"` // pipe of the mating flange
	End      string  `json:"end"`            // start, end or joint
	Type     string  `json:"type"`
	Class    string  `json:"class"`
	Material string  `json:"material"`
	Mass     float64 `json:"mass"`
}

// NonStraightElement describes a fitting-body element.
type NonStraightElement struct {
	Element         int                `json:"element"`
	Pipe            string             `json:"pipe"`
	Fitting         string             `json:"fitting"`
	Kind            piping.FittingKind `json:"kind"`
	Type            piping.ElementType `json:"type"`
	Params          piping.Descriptor  `json:"params,omitempty"`
	DevelopedLength float64            `json:"developedLength"` // mm
	LargeEnd        string             `json:"largeEnd,omitempty"`
}

// ValveRecord describes the valve carried by an element.
type ValveRecord struct {
	Element    int     `json:"element"`
	Pipe       string  `json:"pipe"`
	Type       string  `json:"type"`
	Position   string  `json:"position"`
	Length     float64 `json:"length"` // mm
	Mass       float64 `json:"mass"`
	FlangeType string  `json:"flangeType"`
}

// SeismicData holds the seismic coefficients and member masses.
type SeismicData struct {
	piping.SeismicConfig
	Masses    []MemberMass `json:"masses"`
	TotalMass float64      `json:"totalMass"` // kg
}

// MemberMass is the lumped mass of one member (kg).
type MemberMass struct {
	Member int     `json:"member"`
	Mass   float64 `json:"mass"`
}

// TemperatureRecord is the temperature set of a member (°C).
type TemperatureRecord struct {
	Member  int     `json:"member"`
	T1      float64 `json:"T1"`
	T2      float64 `json:"T2"`
	T3      float64 `json:"T3"`
	Ambient float64 `json:"ambient"`
}

// PressureRecord is the pressure set of a member (MPa).
type PressureRecord struct {
	Member int     `json:"member"`
	P1     float64 `json:"P1"`
	P2     float64 `json:"P2"`
	P3     float64 `json:"P3"`
	Hydro  float64 `json:"hydro"`
}

// SortedNodes returns the nodes in label order.
func (d *Document) SortedNodes() []*Node {
	out := make([]*Node, 0, len(d.Nodes))
	for _, n := range d.Nodes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

// SortedElements returns the beam elements in label order.
func (d *Document) SortedElements() []*BeamElement {
	out := make([]*BeamElement, 0, len(d.BeamElements))
	for _, e := range d.BeamElements {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}
