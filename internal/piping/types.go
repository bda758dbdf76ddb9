package piping

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/dexterlegrand/threejs-asets-sub009/internal/asme"
	"github.com/dexterlegrand/threejs-asets-sub009/internal/geom"
)

// LineStart is the preceding value used by the UI for the first segment of
// a line. An empty preceding means the same thing.
const LineStart = "START"

// Project is the analysis input: configuration, load tables and the full
// pipe-segment list for one or more lines.
type Project struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	LineNo              string  `json:"lineNo"`
	DiscretizationLimit float64 `json:"discretizationLimit" validate:"gt=0"` // m
	NaturalFrequency    float64 `json:"structuralNaturalFrequency" validate:"gte=0"`

	// Dead, live and wind point/UDL tables keyed by pipe name and distance
	DeadLoads []LoadSpec `json:"deadLoads" validate:"dive"`
	LiveLoads []LoadSpec `json:"liveLoads" validate:"dive"`
	WindLoads []LoadSpec `json:"windLoads" validate:"dive"`
	SlugLoads []SlugSpec `json:"slugLoads" validate:"dive"`

	// Adds pipe, fluid and insulation weight to the dead load
	SelfWeight bool `json:"selfWeight"`

	Wind    WindConfig    `json:"wind"`
	Seismic SeismicConfig `json:"seismic"`

	DesignParameters asme.DesignParameters  `json:"designParameters"`
	LoadCombinations []asme.LoadCombination `json:"loadCombinations" validate:"dive"`

	Pipes []*Segment `json:"pipes" validate:"required,min=1,dive,required"`
}

// Segment is one straight pipe run between two points, optionally ending
// in a fitting.
type Segment struct {
	ID        int    `json:"id"`
	Name      string `json:"pipe" validate:"required"`
	Line      string `json:"line" validate:"required"`
	Preceding string `json:"preceding"`

	Start r3.Vec `json:"start"` // m
	End   r3.Vec `json:"end"`   // m

	Params Params `json:"params"`

	// Offset is the distance (m) between the current start and the start as
	// drawn. Loads and master references are expressed in the drawn frame.
	Offset float64 `json:"offset,omitempty"`

	// Body is set on synthetic segments that represent a fitting body.
	Body *Body `json:"body,omitempty"`
}

// Params holds the section, material and attachments of a segment.
type Params struct {
	OD                 float64 `json:"od" validate:"gt=0"`        // mm
	Thickness          float64 `json:"thickness" validate:"gt=0"` // mm
	Material           string  `json:"material"`
	MaterialID         int     `json:"materialId"`
	MaterialDensity    float64 `json:"materialDensity"` // kg/m³, 0 = by material
	NPS                string  `json:"nps"`
	Schedule           string  `json:"schedule"`
	CountryCode        string  `json:"countryCode"`
	LongWeldType       string  `json:"longWeldType"`
	CorrosionAllowance float64 `json:"corrosionAllowance"` // mm
	MillTolerance      float64 `json:"millTolerance"`      // %

	FluidDensity float64    `json:"fluidDensity"` // kg/m³
	Insulation   Insulation `json:"insulation"`

	Temperatures  [3]float64 `json:"temperatures"` // °C
	Pressures     [3]float64 `json:"pressures"`    // MPa
	HydroPressure float64    `json:"hydroPressure"`

	EndConnector *Fitting `json:"endConnector,omitempty"`
	StartFlange  *Flange  `json:"startFlange,omitempty"`
	EndFlange    *Flange  `json:"endFlange,omitempty"`
	Valve        *Valve   `json:"valve,omitempty"`

	Supports []Support `json:"supports" validate:"dive"`

	StartReleases Releases `json:"startReleases"`
	EndReleases   Releases `json:"endReleases"`
}

// Insulation of a segment
type Insulation struct {
	Name      string  `json:"name"`
	Thickness float64 `json:"thickness"` // mm
	Density   float64 `json:"density"`   // kg/m³
}

// Flange at one end of a segment
type Flange struct {
	Type     string  `json:"type"`
	Class    string  `json:"class"`
	Material string  `json:"material"`
	Mass     float64 `json:"mass"` // kg
}

// Releases flags released forces (Fx, Fy, Fz) and moments (Mx, My, Mz) at
// one end of an element.
type Releases struct {
	Fx bool `json:"fx"`
	Fy bool `json:"fy"`
	Fz bool `json:"fz"`
	Mx bool `json:"mx"`
	My bool `json:"my"`
	Mz bool `json:"mz"`
}

// Body identifies a synthetic fitting-body segment.
type Body struct {
	ID     string      `json:"id"`
	Kind   FittingKind `json:"kind"`
	Parent string      `json:"parent"` // pipe that owns the fitting
	Index  int         `json:"index"`  // 0-based sub-body index

	// Element tag and geometric descriptor of the body
	Element    ElementType `json:"element"`
	Descriptor Descriptor  `json:"descriptor,omitempty"`

	// Developed length (m) used for the member record
	DevelopedLength float64 `json:"developedLength"`

	// Reducer only: which neighbor has the larger diameter ("start"/"end")
	LargeEnd string `json:"largeEnd,omitempty"`
}

// IsPipe reports whether s is a real pipe (not a fitting body).
func (s *Segment) IsPipe() bool { return s.Body == nil }

// IsLineStart reports whether s has no preceding segment.
func (s *Segment) IsLineStart() bool {
	return s.Preceding == "" || s.Preceding == LineStart
}

// Length of the segment (m)
func (s *Segment) Length() float64 { return geom.Distance(s.Start, s.End) }

// Direction returns the unit vector from start to end.
func (s *Segment) Direction() r3.Vec { return geom.Direction(s.Start, s.End) }

// PointAt returns the point at distance d (m) from the current start.
func (s *Segment) PointAt(d float64) r3.Vec { return geom.PointAlong(s.Start, s.End, d) }

// BaseName is the name of the real pipe a segment belongs to.
func (s *Segment) BaseName() string {
	if s.Body != nil {
		return s.Body.Parent
	}
	return s.Name
}

// Clone returns a deep copy of s.
func (s *Segment) Clone() *Segment {
	c := *s
	c.Params = s.Params.clone()
	if s.Body != nil {
		b := *s.Body
		c.Body = &b
	}
	return &c
}

func (p Params) clone() Params {
	c := p
	if p.EndConnector != nil {
		c.EndConnector = p.EndConnector.Clone()
	}
	if p.StartFlange != nil {
		f := *p.StartFlange
		c.StartFlange = &f
	}
	if p.EndFlange != nil {
		f := *p.EndFlange
		c.EndFlange = &f
	}
	if p.Valve != nil {
		v := *p.Valve
		c.Valve = &v
	}
	if p.Supports != nil {
		c.Supports = make([]Support, len(p.Supports))
		for i, sp := range p.Supports {
			c.Supports[i] = sp.Clone()
		}
	}
	return c
}

// BodyParams returns a copy of p for a fitting body: section, material and
// process data are kept, attachments are cleared.
func (p Params) BodyParams() Params {
	c := p.clone()
	c.EndConnector = nil
	c.StartFlange = nil
	c.EndFlange = nil
	c.Valve = nil
	c.Supports = nil
	c.StartReleases = Releases{}
	c.EndReleases = Releases{}
	return c
}

// CloneAll deep-copies a segment list.
func CloneAll(segs []*Segment) []*Segment {
	out := make([]*Segment, len(segs))
	for i, s := range segs {
		out[i] = s.Clone()
	}
	return out
}

// Index maps pipe names to segments and to their chain successors.
type Index struct {
	byName     map[string]*Segment
	successors map[string][]*Segment
}

// NewIndex builds the adjacency index of segs once per run.
func NewIndex(segs []*Segment) *Index {
	idx := &Index{
		byName:     make(map[string]*Segment, len(segs)),
		successors: make(map[string][]*Segment),
	}
	for _, s := range segs {
		idx.byName[s.Name] = s
	}
	for _, s := range segs {
		if s.IsLineStart() {
			continue
		}
		idx.successors[s.Preceding] = append(idx.successors[s.Preceding], s)
	}
	return idx
}

// Get returns the segment named name.
func (idx *Index) Get(name string) (*Segment, bool) {
	s, ok := idx.byName[name]
	return s, ok
}

// Successors returns the segments chained after name, in input order.
func (idx *Index) Successors(name string) []*Segment {
	return idx.successors[name]
}
