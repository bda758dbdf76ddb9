// Package discretize walks each line in chain order and cuts its segments
// into pieces no longer than the discretization limit, with a boundary at
// every point where something is attached: supports, master points of
// slave supports, load positions and the valve.
package discretize

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/dexterlegrand/threejs-asets-sub009/internal/geom"
	"github.com/dexterlegrand/threejs-asets-sub009/internal/piping"
)

// Discretize returns the pieces of every segment in segs. Lines come in
// order of first appearance, segments in chain order within a line, pieces
// in increasing distance from their segment start.
func Discretize(p *piping.Project, segs []*piping.Segment) []*Piece {
	idx := piping.NewIndex(segs)
	extra := interestPoints(p, segs)

	var out []*Piece
	for _, line := range lines(segs) {
		for _, s := range chainOrder(line, idx) {
			out = append(out, segment(s, p.DiscretizationLimit, extra[s.Name])...)
		}
	}
	renumber(out)
	return out
}

// lines groups segs by line id in order of first appearance.
func lines(segs []*piping.Segment) [][]*piping.Segment {
	var order []string
	byLine := make(map[string][]*piping.Segment)
	for _, s := range segs {
		if _, ok := byLine[s.Line]; !ok {
			order = append(order, s.Line)
		}
		byLine[s.Line] = append(byLine[s.Line], s)
	}
	out := make([][]*piping.Segment, len(order))
	for i, l := range order {
		out[i] = byLine[l]
	}
	return out
}

// chainOrder sorts the segments of one line so that every segment follows
// its predecessor. Segments whose predecessor is not in the line start a
// chain; anything left (a cycle) follows in input order.
func chainOrder(line []*piping.Segment, idx *piping.Index) []*piping.Segment {
	inLine := make(map[string]bool, len(line))
	for _, s := range line {
		inLine[s.Name] = true
	}

	visited := make(map[string]bool, len(line))
	order := make([]*piping.Segment, 0, len(line))
	var walk func(s *piping.Segment)
	walk = func(s *piping.Segment) {
		if visited[s.Name] {
			return
		}
		visited[s.Name] = true
		order = append(order, s)
		for _, n := range idx.Successors(s.Name) {
			if inLine[n.Name] {
				walk(n)
			}
		}
	}

	for _, s := range line {
		if s.IsLineStart() || !inLine[s.Preceding] {
			walk(s)
		}
	}
	for _, s := range line {
		walk(s)
	}
	return order
}

// interestPoints collects, per pipe name, the as-drawn distances of master
// points and load boundaries.
func interestPoints(p *piping.Project, segs []*piping.Segment) map[string][]float64 {
	out := make(map[string][]float64)
	for _, s := range segs {
		for _, sp := range s.Params.Supports {
			if sp.IsSlave() && sp.MasterPipe != "" {
				out[sp.MasterPipe] = append(out[sp.MasterPipe], sp.MasterDistance)
			}
		}
	}
	for _, table := range [][]piping.LoadSpec{p.DeadLoads, p.LiveLoads, p.WindLoads} {
		for _, l := range table {
			out[l.Pipe] = append(out[l.Pipe], l.Distance)
			if l.IsUDL() {
				out[l.Pipe] = append(out[l.Pipe], l.EndDistance)
			}
		}
	}
	return out
}

type point struct {
	d  float64
	at r3.Vec
}

// points returns the deduplicated points of s at distances ds (current
// frame), sorted by distance from the start. Distances outside the segment
// are ignored.
func points(s *piping.Segment, ds []float64) []point {
	l := s.Length()
	pts := make([]point, 0, len(ds))
	for _, d := range ds {
		switch {
		case geom.EqualDist(d, 0):
			pts = append(pts, point{0, s.Start})
		case geom.EqualDist(d, l):
			pts = append(pts, point{l, s.End})
		case d > 0 && d < l:
			pts = append(pts, point{d, s.PointAt(d)})
		}
	}

	sort.SliceStable(pts, func(i, j int) bool {
		a, b := pts[i], pts[j]
		if a.d != b.d {
			return a.d < b.d
		}
		if a.at.X != b.at.X {
			return a.at.X < b.at.X
		}
		if a.at.Y != b.at.Y {
			return a.at.Y < b.at.Y
		}
		return a.at.Z < b.at.Z
	})

	seen := make(map[geom.Key]bool, len(pts))
	out := pts[:0]
	for _, pt := range pts {
		k := geom.KeyOf(pt.at)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, pt)
	}
	return out
}

// segment cuts one segment into pieces. drawn holds extra as-drawn
// distances on s (master points, load boundaries).
func segment(s *piping.Segment, limit float64, drawn []float64) []*Piece {
	l := s.Length()
	if !s.IsPipe() {
		return []*Piece{{
			Segment: s,
			Start:   s.Start,
			End:     s.End,
			EndDist: l,
			Element: s.Body.Element,
		}}
	}

	ds := []float64{0, l}
	for _, sp := range s.Params.Supports {
		ds = append(ds, sp.Distance)
	}
	for _, d := range drawn {
		ds = append(ds, d-s.Offset)
	}
	if v := s.Params.Valve; v != nil {
		ds = append(ds, v.Position.ResolveDistance(l))
	}
	pts := points(s, ds)

	var pieces []*Piece
	for i := 0; i+1 < len(pts); i++ {
		a, b := pts[i], pts[i+1]
		cur, from := a.d, a.at
		for b.d-cur > geom.Eps {
			step := b.d - cur
			if limit > 0 && step-limit > geom.Eps {
				step = limit
			}
			next := cur + step
			to := b.at
			if next < b.d {
				to = s.PointAt(next)
			} else {
				next = b.d
			}
			pieces = append(pieces, &Piece{
				Segment:   s,
				Start:     from,
				End:       to,
				StartDist: cur,
				EndDist:   next,
				Element:   piping.PST,
			})
			cur, from = next, to
		}
	}
	if len(pieces) == 0 {
		return nil
	}

	attachSupports(s, pieces)
	attachValve(s, pieces)
	pieces[0].StartReleases = s.Params.StartReleases
	pieces[len(pieces)-1].EndReleases = s.Params.EndReleases
	return pieces
}

// attachSupports places every support of s on exactly one piece end: the
// start of the first piece, or the piece ending at its distance. Supports
// that land nowhere are dropped.
func attachSupports(s *piping.Segment, pieces []*Piece) {
	for _, sp := range s.Params.Supports {
		if geom.EqualDist(sp.Distance, 0) {
			pieces[0].StartSupports = append(pieces[0].StartSupports, sp)
			continue
		}
		for _, p := range pieces {
			if geom.EqualDist(p.EndDist, sp.Distance) {
				p.EndSupports = append(p.EndSupports, sp)
				break
			}
		}
	}
}

// attachValve gives the valve to the piece whose [start, end) interval
// contains its resolved distance, or to the last piece for a valve at the
// very end.
func attachValve(s *piping.Segment, pieces []*Piece) {
	v := s.Params.Valve
	if v == nil {
		return
	}
	d := geom.Round(v.Position.ResolveDistance(s.Length()), geom.Precision)
	for _, p := range pieces {
		if geom.Round(p.StartDist, geom.Precision) <= d && d < geom.Round(p.EndDist, geom.Precision) {
			c := *v
			p.Valve = &c
			return
		}
	}
	last := pieces[len(pieces)-1]
	if d >= geom.Round(last.EndDist, geom.Precision) {
		c := *v
		last.Valve = &c
	}
}

// SplitValves splits every valve-carrying piece at the valve's physical
// extent [from, from+length] and tags the valve portion VALVE. The extent
// starts at the resolved position, or length before the end for an "END"
// valve. Only one cut is made per piece: at the start of the extent when it
// falls strictly inside the piece, otherwise at its end.
func SplitValves(pieces []*Piece) []*Piece {
	out := make([]*Piece, 0, len(pieces))
	for _, p := range pieces {
		out = append(out, splitValve(p)...)
	}
	renumber(out)
	return out
}

func splitValve(p *Piece) []*Piece {
	v := p.Valve
	if v == nil || v.Length <= 0 {
		return []*Piece{p}
	}

	l := p.Segment.Length()
	from := v.Position.ResolveDistance(l)
	if v.Position.Sentinel == piping.ValveAtEnd {
		from = math.Max(0, l-v.Length)
	}
	to := from + v.Length

	s, e := geom.Round(p.StartDist, geom.Precision), geom.Round(p.EndDist, geom.Precision)
	inside := func(d float64) bool {
		d = geom.Round(d, geom.Precision)
		return d > s && d < e
	}

	switch {
	case inside(from):
		a, b := cut(p, from)
		a.Valve = nil
		b.Element = piping.VALVE
		return []*Piece{a, b}
	case inside(to):
		a, b := cut(p, to)
		a.Element = piping.VALVE
		b.Valve = nil
		return []*Piece{a, b}
	case geom.Round(from, geom.Precision) <= s && geom.Round(to, geom.Precision) >= e:
		p.Element = piping.VALVE
	}
	return []*Piece{p}
}

// cut splits p at distance d into two pieces sharing the cut point.
func cut(p *Piece, d float64) (*Piece, *Piece) {
	at := p.Segment.PointAt(d)

	a := *p
	a.End, a.EndDist = at, d
	a.EndSupports = nil
	a.EndReleases = piping.Releases{}

	b := *p
	b.Start, b.StartDist = at, d
	b.StartSupports = nil
	b.StartReleases = piping.Releases{}
	return &a, &b
}
