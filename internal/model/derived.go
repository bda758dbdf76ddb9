package model

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/dexterlegrand/threejs-asets-sub009/internal/discretize"
	"github.com/dexterlegrand/threejs-asets-sub009/internal/geom"
	"github.com/dexterlegrand/threejs-asets-sub009/internal/piping"
)

// airDensity for the wind dynamic pressure (kg/m³)
const airDensity = 1.225

// FlangeData lists the flanges of every real pipe by the node at the
// flanged end. Two mating flanges on one node are merged into a single
// "joint" record carrying both masses.
func FlangeData(a *Assembly, segs []*piping.Segment) map[int]*FlangeRecord {
	out := make(map[int]*FlangeRecord)
	add := func(s *piping.Segment, f *piping.Flange, at r3.Vec, end string) {
		if f == nil {
			return
		}
		n, ok := a.NodeAt(at)
		if !ok {
			return
		}
		if r, ok := out[n]; ok {
			r.End = "joint"
			r.Mate = s.Name
			r.Mass += f.Mass
			if r.Type == "" {
				r.Type, r.Class, r.Material = f.Type, f.Class, f.Material
			}
			return
		}
		out[n] = &FlangeRecord{
			Node:     n,
			Pipe:     s.Name,
			End:      end,
			Type:     f.Type,
			Class:    f.Class,
			Material: f.Material,
			Mass:     f.Mass,
		}
	}
	for _, s := range segs {
		if !s.IsPipe() {
			continue
		}
		add(s, s.Params.StartFlange, s.Start, "start")
		add(s, s.Params.EndFlange, s.End, "end")
	}
	return out
}

// ValveData lists the valve carried by each element.
func ValveData(a *Assembly) map[int]*ValveRecord {
	out := make(map[int]*ValveRecord)
	for i, p := range a.Pieces {
		v := p.Valve
		if v == nil {
			continue
		}
		label := a.Elements[i].Label
		out[label] = &ValveRecord{
			Element:    label,
			Pipe:       p.Pipe(),
			Type:       v.Type,
			Position:   v.Position.String(),
			Length:     geom.ToMM(v.Length),
			Mass:       v.Mass,
			FlangeType: v.FlangeType,
		}
	}
	return out
}

// NonStraightData describes every fitting-body element.
func NonStraightData(a *Assembly) map[int]*NonStraightElement {
	out := make(map[int]*NonStraightElement)
	for i, p := range a.Pieces {
		b := p.Segment.Body
		if b == nil {
			continue
		}
		label := a.Elements[i].Label
		out[label] = &NonStraightElement{
			Element:         label,
			Pipe:            b.Parent,
			Fitting:         b.ID,
			Kind:            b.Kind,
			Type:            b.Element,
			Params:          b.Descriptor,
			DevelopedLength: geom.Round(geom.ToMM(b.DevelopedLength), 1),
			LargeEnd:        b.LargeEnd,
		}
	}
	return out
}

// ThermalData returns the temperature and pressure tables by member.
func ThermalData(a *Assembly, ambient float64) (map[int]*TemperatureRecord, map[int]*PressureRecord) {
	temps := make(map[int]*TemperatureRecord, len(a.Members))
	press := make(map[int]*PressureRecord, len(a.Members))
	for i, m := range a.Members {
		params := a.Pieces[i].Segment.Params
		t, pr := params.Temperatures, params.Pressures
		temps[m.Label] = &TemperatureRecord{Member: m.Label, T1: t[0], T2: t[1], T3: t[2], Ambient: ambient}
		press[m.Label] = &PressureRecord{Member: m.Label, P1: pr[0], P2: pr[1], P3: pr[2], Hydro: params.HydroPressure}
	}
	return temps, press
}

// WindExposureData computes, for each compass direction in the horizontal
// plane, the length of every element projected normal to the wind, its
// exposed area and the drag force.
func WindExposureData(a *Assembly, cfg piping.WindConfig) []*WindDirection {
	n := cfg.DirectionCount()
	cf := cfg.ShapeFactor
	if cf == 0 {
		cf = 0.7
	}
	q := 0.5 * airDensity * cfg.Speed * cfg.Speed

	out := make([]*WindDirection, n)
	for i := range out {
		angle := float64(i) * 360 / float64(n)
		rad := geom.Rad(angle)
		dir := r3.Vec{X: geom.Round(math.Cos(rad), 6), Z: geom.Round(math.Sin(rad), 6)}
		wd := &WindDirection{Angle: angle, Direction: vec3(dir)}

		for j, p := range a.Pieces {
			axis := r3.Sub(p.End, p.Start)
			normal := r3.Sub(axis, r3.Scale(r3.Dot(axis, dir), dir))
			proj := r3.Norm(normal)
			if proj < geom.Eps {
				continue
			}
			diameter := geom.ToM(pipeSection(p.Segment.Params).ExposedDiameter())
			area := proj * diameter
			f := q * cf * area
			wd.Elements = append(wd.Elements, &WindExposure{
				Element:         a.Elements[j].Label,
				ProjectedLength: geom.Round(geom.ToMM(proj), 1),
				Area:            area,
				Force:           f,
			})
			wd.TotalArea += area
			wd.Force += f
		}
		out[i] = wd
	}
	return out
}

// SeismicTable returns the seismic coefficients with the lumped mass of
// every member: operating weight times length plus the valve mass.
func SeismicTable(a *Assembly, cfg piping.SeismicConfig) *SeismicData {
	sd := &SeismicData{SeismicConfig: cfg}
	for i, m := range a.Members {
		mass := m.Weight * geom.ToM(m.Length)
		if v := a.Pieces[i].Valve; v != nil {
			mass += v.Mass
		}
		sd.Masses = append(sd.Masses, MemberMass{Member: m.Label, Mass: mass})
		sd.TotalMass += mass
	}
	return sd
}

// SlugData emits one record per elbow or return whose owning pipe has a
// slug specification. The record sits at the junction node between the
// pipe and the first body element.
func SlugData(a *Assembly, idx *piping.Index, specs []piping.SlugSpec) []*SlugLoad {
	if len(specs) == 0 {
		return nil
	}
	byPipe := make(map[string]piping.SlugSpec, len(specs))
	for _, s := range specs {
		byPipe[s.Pipe] = s
	}

	var out []*SlugLoad
	done := make(map[string]bool)
	for i, p := range a.Pieces {
		b := p.Segment.Body
		if b == nil || (b.Kind != piping.KindElbow && b.Kind != piping.KindReturn) || done[b.ID] {
			continue
		}
		spec, ok := byPipe[b.Parent]
		if !ok {
			continue
		}
		done[b.ID] = true

		first := p
		last := lastBody(a, i)
		sl := &SlugLoad{
			Pipe:          b.Parent,
			Fitting:       b.ID,
			Element:       a.Elements[i].Label,
			Node:          a.Elements[i].Node1,
			Start:         vec3(mm(first.Start)),
			End:           vec3(mm(last.End)),
			Density:       spec.Density,
			Velocity:      spec.Velocity,
			DynamicFactor: spec.DynamicFactor,
		}
		if sl.DynamicFactor == 0 {
			sl.DynamicFactor = 2
		}

		var in, outDir r3.Vec
		if parent, ok := idx.Get(b.Parent); ok {
			in = parent.Direction()
		}
		if succ := idx.Successors(last.Segment.Name); len(succ) > 0 {
			outDir = succ[0].Direction()
		}
		sl.Incoming, sl.Outgoing = vec3(geom.RoundVec(in, 6)), vec3(geom.RoundVec(outDir, 6))

		id := geom.ToM(first.Segment.Params.OD - 2*first.Segment.Params.Thickness)
		sl.FlowArea = math.Pi / 4 * id * id
		sl.Force = slugForce(spec.Density, spec.Velocity, sl.FlowArea, sl.DynamicFactor, geom.AngleDeg(in, outDir))
		out = append(out, sl)
	}
	return out
}

// lastBody returns the last consecutive piece of the fitting body starting
// at piece i.
func lastBody(a *Assembly, i int) *discretize.Piece {
	id := a.Pieces[i].Segment.Body.ID
	last := a.Pieces[i]
	for _, p := range a.Pieces[i+1:] {
		if p.Segment.Body == nil || p.Segment.Body.ID != id {
			break
		}
		last = p
	}
	return last
}

func mm(v r3.Vec) r3.Vec {
	k := geom.KeyOf(v)
	return r3.Vec{X: k.X, Y: k.Y, Z: k.Z}
}
