package fitting

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/dexterlegrand/threejs-asets-sub009/internal/geom"
	"github.com/dexterlegrand/threejs-asets-sub009/internal/piping"
)

// elbow truncates prev and its first successor by the center-to-face length
// R·tan(θ/2) and inserts one body per sub-arc.
func elbow(prev *piping.Segment, succ []*piping.Segment, e *piping.Elbow) (*result, string) {
	if e == nil {
		return nil, "elbow has no dimensions"
	}
	if len(succ) == 0 {
		return nil, "no successor"
	}
	next := succ[0]
	if !geom.Same(prev.End, next.Start) {
		return nil, "successor does not start at the fitting"
	}

	d1, d2 := prev.Direction(), next.Direction()
	theta := geom.AngleDeg(d1, d2)
	if theta == 0 || theta == 180 {
		return nil, "successor is collinear"
	}

	l := e.Radius * math.Tan(geom.Rad(theta)/2)
	if !carveable(prev, l) || !carveable(next, l) {
		return nil, "fitting longer than a neighbor"
	}

	p, n := trimEnd(prev, l), trimStart(next, l)

	// arc(φ) = C - R·cos(φ)·m + R·sin(φ)·d1, C = P1 + R·m
	m := r3.Unit(r3.Sub(d2, r3.Scale(r3.Dot(d2, d1), d1)))
	center := r3.Add(p.End, r3.Scale(e.Radius, m))
	arc := func(phi float64) r3.Vec {
		return r3.Add(center, r3.Add(
			r3.Scale(-e.Radius*math.Cos(phi), m),
			r3.Scale(e.Radius*math.Sin(phi), d1)))
	}

	bounds := append(append([]float64{0}, e.SplitFractions()...), 1)
	res := newResult()
	res.replaced[p.Name] = p

	preceding := p.Name
	for i := 0; i+1 < len(bounds); i++ {
		start, end := p.End, n.Start
		if i > 0 {
			start = arc(geom.Rad(theta * bounds[i]))
		}
		if i+2 < len(bounds) {
			end = arc(geom.Rad(theta * bounds[i+1]))
		}
		sweep := theta * (bounds[i+1] - bounds[i])

		b := body(prev, prev, piping.KindElbow, i, start, end)
		b.Preceding = preceding
		b.Body.Element = e.ElementType()
		b.Body.Descriptor = piping.ElbowDescriptor(e, geom.Round(sweep, geom.AnglePrecision), prev.Params.Thickness)
		b.Body.DevelopedLength = 2 * e.Radius * math.Tan(geom.Rad(sweep)/2)
		res.bodies = append(res.bodies, b)
		preceding = b.Name
	}

	n.Preceding = preceding
	res.replaced[n.Name] = n
	return res, ""
}

// ret truncates prev and its antiparallel successor by the return radius and
// inserts one U-shaped body between the truncated ends.
func ret(prev *piping.Segment, succ []*piping.Segment, r *piping.Return) (*result, string) {
	if r == nil {
		return nil, "return has no dimensions"
	}
	d1 := prev.Direction()
	var next *piping.Segment
	for _, s := range succ {
		if geom.AngleDeg(d1, s.Direction()) == 180 {
			next = s
			break
		}
	}
	if next == nil {
		return nil, "no antiparallel successor"
	}
	// the legs must be 2R apart, side by side
	off := r3.Sub(next.Start, prev.End)
	if !geom.EqualDist(r3.Norm(off), 2*r.Radius) || !geom.EqualDist(r3.Dot(off, d1), 0) {
		return nil, "return legs are not 2R apart"
	}
	if !carveable(prev, r.Radius) || !carveable(next, r.Radius) {
		return nil, "fitting longer than a neighbor"
	}

	p, n := trimEnd(prev, r.Radius), trimStart(next, r.Radius)

	th := r.Thickness
	if th == 0 {
		th = prev.Params.Thickness
	}
	b := body(prev, prev, piping.KindReturn, 0, p.End, n.Start)
	b.Preceding = p.Name
	b.Body.Element = piping.BWE
	b.Body.Descriptor = piping.BWEParams{Thickness: th, BendRadius: geom.ToMM(r.Radius), Angle: 180}
	b.Body.DevelopedLength = math.Pi * r.Radius
	n.Preceding = b.Name

	res := newResult()
	res.replaced[p.Name] = p
	res.replaced[n.Name] = n
	res.bodies = []*piping.Segment{b}
	return res, ""
}

// reducer truncates prev and its collinear successor by half the reducer
// length and inserts one tapered body.
func reducer(prev *piping.Segment, succ []*piping.Segment, r *piping.Reducer) (*result, string) {
	if r == nil {
		return nil, "reducer has no dimensions"
	}
	if len(succ) == 0 {
		return nil, "no successor"
	}
	next := succ[0]
	if !geom.Same(prev.End, next.Start) {
		return nil, "successor does not start at the fitting"
	}
	if geom.AngleDeg(prev.Direction(), next.Direction()) != 0 {
		return nil, "successor is not collinear"
	}
	half := r.Length / 2
	if !carveable(prev, half) || !carveable(next, half) {
		return nil, "fitting longer than a neighbor"
	}

	p, n := trimEnd(prev, half), trimStart(next, half)
	b := body(prev, prev, piping.KindReducer, 0, p.End, n.Start)
	b.Preceding = p.Name
	b.Body.Element = piping.PST
	b.Body.DevelopedLength = r.Length
	b.Body.LargeEnd = "start"
	if next.Params.OD > prev.Params.OD {
		b.Body.LargeEnd = "end"
	}
	if r.Thickness > 0 {
		b.Params.Thickness = r.Thickness
	}
	n.Preceding = b.Name

	res := newResult()
	res.replaced[p.Name] = p
	res.replaced[n.Name] = n
	res.bodies = []*piping.Segment{b}
	return res, ""
}

// tee truncates the run and the branch around the tee center and inserts
// the run-in, run-out and branch bodies. The 90° branch is required; the
// 0° run is optional.
func tee(prev *piping.Segment, succ []*piping.Segment, t *piping.Tee) (*result, string) {
	if t == nil {
		return nil, "tee has no dimensions"
	}
	d1 := prev.Direction()
	var run, branch *piping.Segment
	for _, s := range succ {
		if !geom.Same(prev.End, s.Start) {
			continue
		}
		switch geom.AngleDeg(d1, s.Direction()) {
		case 0:
			if run == nil {
				run = s
			}
		case 90:
			if branch == nil {
				branch = s
			}
		}
	}
	if branch == nil {
		return nil, "tee has no branch"
	}
	c, m := t.RunLength, t.BranchLength
	if c <= 0 || m <= 0 {
		return nil, "tee has no center-to-end length"
	}
	if !carveable(prev, c) || !carveable(branch, m) || (run != nil && !carveable(run, c)) {
		return nil, "fitting longer than a neighbor"
	}

	center := prev.End
	desc := piping.TeeDescriptor(t, prev.Params.Thickness)
	res := newResult()

	p := trimEnd(prev, c)
	res.replaced[p.Name] = p

	mk := func(i int, owner *piping.Segment, start, end r3.Vec, dev float64) *piping.Segment {
		b := body(prev, owner, piping.KindTee, i, start, end)
		b.Body.Element = t.ElementType()
		b.Body.Descriptor = desc
		b.Body.DevelopedLength = dev
		return b
	}

	in := mk(0, prev, p.End, center, c)
	in.Preceding = p.Name
	res.bodies = append(res.bodies, in)

	if run != nil {
		r := trimStart(run, c)
		out := mk(1, prev, center, r.Start, c)
		out.Preceding = in.Name
		r.Preceding = out.Name
		res.bodies = append(res.bodies, out)
		res.replaced[r.Name] = r
	}

	br := trimStart(branch, m)
	bb := mk(len(res.bodies), branch, center, br.Start, m)
	bb.Preceding = in.Name
	br.Preceding = bb.Name
	res.bodies = append(res.bodies, bb)
	res.replaced[br.Name] = br

	return res, ""
}
