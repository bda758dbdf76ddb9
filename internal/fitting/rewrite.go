// Package fitting carves fitting bodies out of chained pipe segments.
//
// A segment whose trailing end carries a fitting is shortened together with
// its chain successor(s) and one or more synthetic fitting-body segments are
// inserted between them. When the model is incomplete (no successor, a tee
// without its branch, a fitting longer than a neighbor) the segment list is
// returned unchanged and the outcome says why.
package fitting

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/dexterlegrand/threejs-asets-sub009/internal/geom"
	"github.com/dexterlegrand/threejs-asets-sub009/internal/piping"
)

// Outcome of rewriting one fitting
type Outcome struct {
	Pipe    string             `json:"pipe"`
	Kind    piping.FittingKind `json:"kind"`
	Applied bool               `json:"applied"`
	Reason  string             `json:"reason,omitempty"`
	Bodies  []string           `json:"bodies,omitempty"`
}

// Report collects the outcomes of a RewriteAll pass
type Report struct {
	Outcomes []Outcome
}

// Applied returns the number of fittings that were rewritten.
func (r Report) Applied() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Applied {
			n++
		}
	}
	return n
}

// Skipped returns the outcomes of fittings left untouched.
func (r Report) Skipped() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if !o.Applied {
			out = append(out, o)
		}
	}
	return out
}

// result of a successful rewrite: replacement segments by name and the
// bodies to insert after prev.
type result struct {
	replaced map[string]*piping.Segment
	bodies   []*piping.Segment
}

func newResult() *result {
	return &result{replaced: make(map[string]*piping.Segment)}
}

// RewriteAll rewrites every segment with a trailing fitting, in input order.
// The input list and its segments are not modified.
func RewriteAll(segs []*piping.Segment) ([]*piping.Segment, Report) {
	var report Report
	out := piping.CloneAll(segs)

	var names []string
	for _, s := range segs {
		if s.Params.EndConnector != nil && s.IsPipe() {
			names = append(names, s.Name)
		}
	}

	for _, name := range names {
		prev := find(out, name)
		if prev == nil {
			continue
		}
		var o Outcome
		out, o = Rewrite(out, prev)
		report.Outcomes = append(report.Outcomes, o)
	}
	return out, report
}

// Rewrite carves the trailing fitting of prev out of prev and its chain
// successor(s). It returns a new list; segs is not modified. When the
// rewrite cannot be applied the original list is returned.
func Rewrite(segs []*piping.Segment, prev *piping.Segment) ([]*piping.Segment, Outcome) {
	o := Outcome{Pipe: prev.Name}
	fit := prev.Params.EndConnector
	if fit == nil {
		o.Reason = "no fitting"
		return segs, o
	}
	o.Kind = fit.Kind

	succ := successors(segs, prev.Name)
	for _, s := range succ {
		if s.Body != nil && s.Body.Parent == prev.Name {
			o.Reason = "already rewritten"
			return segs, o
		}
	}

	var (
		res    *result
		reason string
	)
	switch fit.Kind {
	case piping.KindElbow:
		res, reason = elbow(prev, succ, fit.Elbow)
	case piping.KindReturn:
		res, reason = ret(prev, succ, fit.Return)
	case piping.KindReducer:
		res, reason = reducer(prev, succ, fit.Reducer)
	case piping.KindTee:
		res, reason = tee(prev, succ, fit.Tee)
	case piping.KindCap:
		reason = "cap has no body"
	default:
		reason = fmt.Sprintf("unknown fitting kind %q", fit.Kind)
	}
	if res == nil {
		o.Reason = reason
		return segs, o
	}

	out := make([]*piping.Segment, 0, len(segs)+len(res.bodies))
	for _, s := range segs {
		if r, ok := res.replaced[s.Name]; ok {
			out = append(out, r)
		} else {
			out = append(out, s)
		}
		if s.Name == prev.Name {
			out = append(out, res.bodies...)
		}
	}
	o.Applied = true
	for _, b := range res.bodies {
		o.Bodies = append(o.Bodies, b.Name)
	}
	return out, o
}

func find(segs []*piping.Segment, name string) *piping.Segment {
	for _, s := range segs {
		if s.Name == name {
			return s
		}
	}
	return nil
}

func successors(segs []*piping.Segment, name string) []*piping.Segment {
	var out []*piping.Segment
	for _, s := range segs {
		if !s.IsLineStart() && s.Preceding == name {
			out = append(out, s)
		}
	}
	return out
}

// trimEnd shortens s by d at its end. Supports that fall in the removed
// part are dropped.
func trimEnd(s *piping.Segment, d float64) *piping.Segment {
	c := s.Clone()
	newLen := s.Length() - d
	c.End = s.PointAt(newLen)

	kept := c.Params.Supports[:0]
	for _, sp := range c.Params.Supports {
		if geom.Round(sp.Distance, geom.Precision) <= geom.Round(newLen, geom.Precision) {
			kept = append(kept, sp)
		}
	}
	c.Params.Supports = kept
	return c
}

// trimStart shortens s by d at its start. Supports in the removed part are
// dropped, the others are re-based on the new start.
func trimStart(s *piping.Segment, d float64) *piping.Segment {
	c := s.Clone()
	c.Start = s.PointAt(d)
	c.Offset += d

	kept := c.Params.Supports[:0]
	for _, sp := range c.Params.Supports {
		if geom.Round(sp.Distance, geom.Precision) < geom.Round(d, geom.Precision) {
			continue
		}
		sp.Distance -= d
		kept = append(kept, sp)
	}
	c.Params.Supports = kept

	if v := c.Params.Valve; v != nil && v.Position.Sentinel == "" {
		v.Position.Distance = max(0, v.Position.Distance-d)
	}
	return c
}

// body builds the i-th synthetic segment of a fitting owned by parent.
func body(parent, owner *piping.Segment, kind piping.FittingKind, i int, start, end r3.Vec) *piping.Segment {
	return &piping.Segment{
		Name:   fmt.Sprintf("%s-%s%d", parent.Name, abbrev[kind], i+1),
		Line:   parent.Line,
		Start:  start,
		End:    end,
		Params: owner.Params.BodyParams(),
		Body: &piping.Body{
			ID:     fmt.Sprintf("%s-%s", parent.Name, kind),
			Kind:   kind,
			Parent: parent.Name,
			Index:  i,
		},
	}
}

var abbrev = map[piping.FittingKind]string{
	piping.KindElbow:   "E",
	piping.KindReturn:  "R",
	piping.KindReducer: "RD",
	piping.KindTee:     "T",
}

// carveable reports whether d can be removed from s leaving a segment.
func carveable(s *piping.Segment, d float64) bool {
	return d > 0 && s.Length()-d > geom.Eps
}
