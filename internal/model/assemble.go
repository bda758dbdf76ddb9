package model

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/dexterlegrand/threejs-asets-sub009/internal/asme"
	"github.com/dexterlegrand/threejs-asets-sub009/internal/discretize"
	"github.com/dexterlegrand/threejs-asets-sub009/internal/geom"
	"github.com/dexterlegrand/threejs-asets-sub009/internal/piping"
	"github.com/dexterlegrand/threejs-asets-sub009/internal/section"
)

// Assembly is the node/element/member tables built from the pieces.
// Elements, members and pieces share indexes: element i+1 is piece i.
type Assembly struct {
	Pieces   []*discretize.Piece
	Nodes    []*Node
	Elements []*BeamElement
	Members  []*Member

	// Section properties per element label
	Sections map[int]*section.Properties

	labels map[geom.Key]int
}

// Assemble numbers the distinct piece end points (sorted by y, z, x from 1)
// and creates one element and one member per piece in piece order.
func Assemble(pieces []*discretize.Piece) *Assembly {
	a := &Assembly{
		Pieces:   pieces,
		Sections: make(map[int]*section.Properties, len(pieces)),
		labels:   make(map[geom.Key]int),
	}

	keys := make([]geom.Key, 0, 2*len(pieces))
	seen := make(map[geom.Key]bool, 2*len(pieces))
	for _, p := range pieces {
		for _, v := range []r3.Vec{p.Start, p.End} {
			k := geom.KeyOf(v)
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })

	a.Nodes = make([]*Node, len(keys))
	for i, k := range keys {
		a.labels[k] = i + 1
		a.Nodes[i] = &Node{Label: i + 1, X: k.X, Y: k.Y, Z: k.Z}
	}

	names := make([][]string, len(keys))
	for i, p := range pieces {
		label := i + 1
		n1, n2 := a.mustNode(p.Start), a.mustNode(p.End)
		names[n1-1] = append(names[n1-1], p.Name)
		names[n2-1] = append(names[n2-1], p.Name)

		s := p.Segment
		e := &BeamElement{
			Label:        label,
			Name:         p.Name,
			Pipe:         p.Pipe(),
			Line:         s.Line,
			Node1:        n1,
			Node2:        n2,
			Type:         p.Element,
			Temperatures: s.Params.Temperatures,
			Pressures:    s.Params.Pressures,
			Releases:     Releases{Start: p.StartReleases, End: p.EndReleases},
			LocalZ:       vec3(geom.LocalZ(p.Start, p.End)),
		}
		if s.Body != nil {
			e.Params = s.Body.Descriptor
		}
		a.Elements = append(a.Elements, e)

		props := pipeSection(s.Params).CalculateProperties()
		a.Sections[label] = props
		a.Members = append(a.Members, &Member{
			Label:              label,
			Name:               p.Name,
			Pipe:               p.Pipe(),
			LongWeldType:       s.Params.LongWeldType,
			CorrosionAllowance: s.Params.CorrosionAllowance,
			MillTolerance:      s.Params.MillTolerance,
			NPS:                s.Params.NPS,
			Schedule:           s.Params.Schedule,
			CountryCode:        s.Params.CountryCode,
			OD:                 s.Params.OD,
			Thickness:          s.Params.Thickness,
			MaterialID:         s.Params.MaterialID,
			Material:           s.Params.Material,
			Length:             memberLength(p),
			Area:               props.Area,
			I:                  props.I,
			Weight:             props.TotalWeight(),
		})
	}

	for i, n := range a.Nodes {
		n.MemberNames = strings.Join(names[i], ",")
	}
	return a
}

// NodeAt returns the label of the node at p.
func (a *Assembly) NodeAt(p r3.Vec) (int, bool) {
	l, ok := a.labels[geom.KeyOf(p)]
	return l, ok
}

// mustNode resolves p to a node label. A miss means the node table was not
// built from the same pieces and is a programming error.
func (a *Assembly) mustNode(p r3.Vec) int {
	l, ok := a.NodeAt(p)
	if !ok {
		panic(fmt.Errorf("no node at %v (key %v)", p, geom.KeyOf(p)))
	}
	return l
}

// memberLength returns the member length in mm: the developed length for
// fitting bodies, the chord otherwise.
func memberLength(p *discretize.Piece) float64 {
	if b := p.Segment.Body; b != nil && b.DevelopedLength > 0 {
		return geom.Round(geom.ToMM(b.DevelopedLength), 1)
	}
	return geom.Round(geom.ToMM(p.Length()), 1)
}

func pipeSection(p piping.Params) *section.Section {
	rho := p.MaterialDensity
	if rho == 0 {
		rho = asme.MaterialDensity(p.Material)
	}
	return &section.Section{
		OD:                 p.OD,
		Thickness:          p.Thickness,
		CorrosionAllowance: p.CorrosionAllowance,
		MillTolerance:      p.MillTolerance,
		SteelDensity:       rho,
		FluidDensity:       p.FluidDensity,
		InsulationThick:    p.Insulation.Thickness,
		InsulationDensity:  p.Insulation.Density,
	}
}
