package fitting

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/dexterlegrand/threejs-asets-sub009/internal/geom"
	"github.com/dexterlegrand/threejs-asets-sub009/internal/piping"
)

func pipe(name, preceding string, start, end r3.Vec) *piping.Segment {
	return &piping.Segment{
		Name:      name,
		Line:      "L1",
		Preceding: preceding,
		Start:     start,
		End:       end,
		Params:    piping.Params{OD: 168.3, Thickness: 7.11, Material: "A106"},
	}
}

func elbowPair(kind piping.ElementType, radius float64) []*piping.Segment {
	pp1 := pipe("PP1", piping.LineStart, r3.Vec{}, r3.Vec{X: 10})
	pp1.Params.EndConnector = &piping.Fitting{
		Kind:  piping.KindElbow,
		Elbow: &piping.Elbow{Type: kind, Radius: radius},
	}
	pp2 := pipe("PP2", "PP1", r3.Vec{X: 10}, r3.Vec{X: 10, Z: 5})
	return []*piping.Segment{pp1, pp2}
}

func byName(segs []*piping.Segment) map[string]*piping.Segment {
	m := make(map[string]*piping.Segment)
	for _, s := range segs {
		m[s.Name] = s
	}
	return m
}

func assertVec(t *testing.T, want, got r3.Vec) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-9)
	assert.InDelta(t, want.Y, got.Y, 1e-9)
	assert.InDelta(t, want.Z, got.Z, 1e-9)
}

func TestElbowBWE(t *testing.T) {
	segs := elbowPair(piping.BWE, 0.1)
	out, report := RewriteAll(segs)
	require.Equal(t, 1, report.Applied())
	require.Len(t, out, 3)

	assert.Equal(t, []string{"PP1", "PP1-E1", "PP2"}, []string{out[0].Name, out[1].Name, out[2].Name})
	m := byName(out)
	pp1, el, pp2 := m["PP1"], m["PP1-E1"], m["PP2"]

	// both neighbors truncated by 0.1 m at the shared end
	assertVec(t, r3.Vec{X: 9.9}, pp1.End)
	assertVec(t, r3.Vec{X: 10, Z: 0.1}, pp2.Start)
	assert.InDelta(t, 0.1, pp2.Offset, 1e-12)
	assert.InDelta(t, 9.9, pp1.Length(), 1e-9)
	assert.InDelta(t, 4.9, pp2.Length(), 1e-9)

	// body spans the chord between the truncated ends
	assert.Equal(t, 0.0, geom.Distance(pp1.End, el.Start))
	assert.Equal(t, 0.0, geom.Distance(el.End, pp2.Start))
	assert.InDelta(t, 0.1*math.Sqrt2, el.Length(), 1e-9)
	assert.False(t, el.IsPipe())
	assert.Equal(t, piping.BWE, el.Body.Element)
	assert.InDelta(t, 2*0.1*math.Tan(math.Pi/4), el.Body.DevelopedLength, 1e-12)
	assert.Equal(t, piping.BWEParams{Thickness: 7.11, BendRadius: 100, Angle: 90}, el.Body.Descriptor)
	assert.Equal(t, "PP1", el.Body.Parent)

	// chain stays walkable
	assert.Equal(t, "PP1", el.Preceding)
	assert.Equal(t, "PP1-E1", pp2.Preceding)

	// input untouched
	assert.Equal(t, r3.Vec{X: 10}, segs[0].End)
	assert.Equal(t, "PP1", segs[1].Preceding)
}

func TestMiterElbowSubArcs(t *testing.T) {
	for _, tc := range []struct {
		kind   piping.ElementType
		bodies int
	}{
		{piping.BCSM, 2},
		{piping.BWSM, 3},
	} {
		out, report := RewriteAll(elbowPair(tc.kind, 0.5))
		require.Equal(t, 1, report.Applied())
		require.Len(t, out, 2+tc.bodies, tc.kind)

		pp1 := out[0]
		center := r3.Vec{X: 9.5, Z: 0.5}
		var sweep, dev float64
		prevEnd := pp1.End
		for _, b := range out[1 : 1+tc.bodies] {
			assert.Equal(t, tc.kind, b.Body.Element)
			assertVec(t, prevEnd, b.Start)
			// every sub-arc point lies on the bend
			assert.InDelta(t, 0.5, geom.Distance(center, b.Start), 1e-9)
			assert.InDelta(t, 0.5, geom.Distance(center, b.End), 1e-9)
			switch d := b.Body.Descriptor.(type) {
			case piping.BCSMParams:
				sweep += d.Angle
			case piping.BWSMParams:
				sweep += d.Angle
			default:
				t.Fatalf("unexpected descriptor %T", d)
			}
			dev += b.Body.DevelopedLength
			prevEnd = b.End
		}
		assert.InDelta(t, 90, sweep, 0.02)
		assertVec(t, out[len(out)-1].Start, prevEnd)
		assert.Greater(t, dev, 0.0)
	}
}

func TestElbowFractionsOutOfOrder(t *testing.T) {
	for _, fs := range [][]float64{{0.5, 0.5}, {0.8, 0.2}, {2.0 / 3, 1.0 / 3, 2.0 / 3}} {
		segs := elbowPair(piping.BWSM, 0.5)
		segs[0].Params.EndConnector.Elbow.Fractions = fs
		out, report := RewriteAll(segs)
		require.Equal(t, 1, report.Applied(), fs)

		var sweep float64
		for _, b := range out {
			if b.IsPipe() {
				continue
			}
			assert.False(t, geom.Same(b.Start, b.End), "%v: %s has no length", fs, b.Name)
			a := b.Body.Descriptor.(piping.BWSMParams).Angle
			assert.Greater(t, a, 0.0, "%v: %s", fs, b.Name)
			sweep += a
		}
		assert.InDelta(t, 90, sweep, 0.02, fs)
	}
}

func TestElbowWithoutSuccessorIsNoOp(t *testing.T) {
	segs := elbowPair(piping.BWE, 0.1)[:1]
	out, o := Rewrite(segs, segs[0])
	assert.False(t, o.Applied)
	assert.Equal(t, "no successor", o.Reason)
	assert.Same(t, segs[0], out[0])
	assert.Len(t, out, 1)

	_, report := RewriteAll(segs)
	require.Len(t, report.Skipped(), 1)
	assert.Equal(t, piping.KindElbow, report.Skipped()[0].Kind)
}

func TestElbowTooLarge(t *testing.T) {
	_, report := RewriteAll(elbowPair(piping.BWE, 6))
	require.Len(t, report.Skipped(), 1)
	assert.Equal(t, "fitting longer than a neighbor", report.Skipped()[0].Reason)
}

func TestRewriteTwiceIsNoOp(t *testing.T) {
	out, _ := RewriteAll(elbowPair(piping.BWE, 0.1))
	again, o := Rewrite(out, out[0])
	assert.False(t, o.Applied)
	assert.Equal(t, "already rewritten", o.Reason)
	assert.Len(t, again, 3)
}

func TestSupportsInCarvedRegion(t *testing.T) {
	segs := elbowPair(piping.BWE, 0.1)
	segs[0].Params.Supports = []piping.Support{
		{ID: 1, Type: piping.SupportSliding, Distance: 5},
		{ID: 2, Type: piping.SupportSliding, Distance: 9.95},
	}
	segs[1].Params.Supports = []piping.Support{
		{ID: 3, Type: piping.SupportSliding, Distance: 0.05},
		{ID: 4, Type: piping.SupportSliding, Distance: 2},
	}
	segs[1].Params.Valve = &piping.Valve{Position: piping.AtDistance(1), Length: 0.2}

	out, _ := RewriteAll(segs)
	m := byName(out)

	require.Len(t, m["PP1"].Params.Supports, 1)
	assert.Equal(t, 1, m["PP1"].Params.Supports[0].ID)
	assert.Equal(t, 5.0, m["PP1"].Params.Supports[0].Distance)

	require.Len(t, m["PP2"].Params.Supports, 1)
	assert.Equal(t, 4, m["PP2"].Params.Supports[0].ID)
	assert.InDelta(t, 1.9, m["PP2"].Params.Supports[0].Distance, 1e-12)
	assert.InDelta(t, 0.9, m["PP2"].Params.Valve.Position.Distance, 1e-12)

	// bodies never inherit supports or attachments
	assert.Empty(t, m["PP1-E1"].Params.Supports)
	assert.Nil(t, m["PP1-E1"].Params.Valve)
	assert.Nil(t, m["PP1-E1"].Params.EndConnector)

	// original supports unchanged
	assert.Len(t, segs[0].Params.Supports, 2)
}

func TestReturn(t *testing.T) {
	pp1 := pipe("PP1", "", r3.Vec{}, r3.Vec{X: 5})
	pp1.Params.EndConnector = &piping.Fitting{Kind: piping.KindReturn, Return: &piping.Return{Radius: 0.5}}
	pp2 := pipe("PP2", "PP1", r3.Vec{X: 5, Z: 1}, r3.Vec{Z: 1})

	out, report := RewriteAll([]*piping.Segment{pp1, pp2})
	require.Equal(t, 1, report.Applied())
	m := byName(out)
	b := m["PP1-R1"]
	require.NotNil(t, b)
	assertVec(t, r3.Vec{X: 4.5}, m["PP1"].End)
	assertVec(t, r3.Vec{X: 4.5, Z: 1}, m["PP2"].Start)
	assertVec(t, m["PP1"].End, b.Start)
	assertVec(t, m["PP2"].Start, b.End)
	assert.Equal(t, piping.BWE, b.Body.Element)
	assert.Equal(t, 180.0, b.Body.Descriptor.(piping.BWEParams).Angle)
	assert.InDelta(t, math.Pi*0.5, b.Body.DevelopedLength, 1e-12)
}

func TestReturnLegsMustBeTwoRadiiApart(t *testing.T) {
	for _, end := range []r3.Vec{
		{X: 5, Z: 3},     // too far
		{X: 5, Z: 0.4},   // too close
		{X: 5.6, Z: 0.8}, // 1 m apart but staggered along the run
	} {
		pp1 := pipe("PP1", "", r3.Vec{}, r3.Vec{X: 5})
		pp1.Params.EndConnector = &piping.Fitting{Kind: piping.KindReturn, Return: &piping.Return{Radius: 0.5}}
		pp2 := pipe("PP2", "PP1", end, r3.Vec{X: -2, Z: end.Z})

		out, report := RewriteAll([]*piping.Segment{pp1, pp2})
		require.Len(t, report.Skipped(), 1, end)
		assert.Equal(t, "return legs are not 2R apart", report.Skipped()[0].Reason)
		assert.Len(t, out, 2)
	}
}

func TestReducer(t *testing.T) {
	pp1 := pipe("PP1", "", r3.Vec{}, r3.Vec{Y: 4})
	pp1.Params.EndConnector = &piping.Fitting{Kind: piping.KindReducer, Reducer: &piping.Reducer{Length: 0.2, Thickness: 6}}
	pp2 := pipe("PP2", "PP1", r3.Vec{Y: 4}, r3.Vec{Y: 8})
	pp2.Params.OD = 219.1

	out, report := RewriteAll([]*piping.Segment{pp1, pp2})
	require.Equal(t, 1, report.Applied())
	m := byName(out)
	b := m["PP1-RD1"]
	require.NotNil(t, b)
	assert.InDelta(t, 0.2, b.Length(), 1e-9)
	assert.Equal(t, piping.PST, b.Body.Element)
	assert.Nil(t, b.Body.Descriptor)
	assert.Equal(t, "end", b.Body.LargeEnd)
	assert.Equal(t, 6.0, b.Params.Thickness)
	assertVec(t, r3.Vec{Y: 3.9}, m["PP1"].End)
	assertVec(t, r3.Vec{Y: 4.1}, m["PP2"].Start)
}

func teeSegments(withRun, withBranch bool) []*piping.Segment {
	pp1 := pipe("PP1", "", r3.Vec{}, r3.Vec{X: 5})
	pp1.Params.EndConnector = &piping.Fitting{
		Kind: piping.KindTee,
		Tee:  &piping.Tee{Type: piping.TRF, RunLength: 0.2, BranchLength: 0.15, PadThickness: 8},
	}
	segs := []*piping.Segment{pp1}
	if withRun {
		segs = append(segs, pipe("PP2", "PP1", r3.Vec{X: 5}, r3.Vec{X: 9}))
	}
	if withBranch {
		br := pipe("PP3", "PP1", r3.Vec{X: 5}, r3.Vec{X: 5, Y: 3})
		br.Params.OD = 114.3
		segs = append(segs, br)
	}
	return segs
}

func TestTeeRunAndBranch(t *testing.T) {
	out, report := RewriteAll(teeSegments(true, true))
	require.Equal(t, 1, report.Applied())
	require.Len(t, out, 6)
	m := byName(out)

	in, run, br := m["PP1-T1"], m["PP1-T2"], m["PP1-T3"]
	require.NotNil(t, in)
	require.NotNil(t, run)
	require.NotNil(t, br)

	center := r3.Vec{X: 5}
	assertVec(t, r3.Vec{X: 4.8}, m["PP1"].End)
	assertVec(t, r3.Vec{X: 5.2}, m["PP2"].Start)
	assertVec(t, r3.Vec{X: 5, Y: 0.15}, m["PP3"].Start)
	assertVec(t, center, in.End)
	assertVec(t, center, run.Start)
	assertVec(t, center, br.Start)

	for _, b := range []*piping.Segment{in, run, br} {
		assert.Equal(t, piping.TRF, b.Body.Element)
		assert.Equal(t, piping.TRFParams{Thickness: 7.11, PadThickness: 8}, b.Body.Descriptor)
	}
	assert.Equal(t, 114.3, br.Params.OD)
	assert.Equal(t, "PP1-T2", m["PP2"].Preceding)
	assert.Equal(t, "PP1-T3", m["PP3"].Preceding)
	assert.Equal(t, "PP1-T1", br.Preceding)
}

func TestTeeBranchOnly(t *testing.T) {
	out, report := RewriteAll(teeSegments(false, true))
	require.Equal(t, 1, report.Applied())
	assert.Len(t, report.Outcomes[0].Bodies, 2)
	assert.Len(t, out, 4)
}

func TestTeeWithoutBranchIsNoOp(t *testing.T) {
	segs := teeSegments(true, false)
	out, report := RewriteAll(segs)
	require.Len(t, report.Skipped(), 1)
	assert.Equal(t, "tee has no branch", report.Skipped()[0].Reason)
	assert.Len(t, out, 2)
	assert.Equal(t, segs[0].End, out[0].End)
}

func TestTeeZeroLength(t *testing.T) {
	segs := teeSegments(true, true)
	segs[0].Params.EndConnector.Tee.RunLength = 0
	out, report := RewriteAll(segs)
	require.Len(t, report.Skipped(), 1)
	assert.Equal(t, "tee has no center-to-end length", report.Skipped()[0].Reason)
	assert.Len(t, out, 3)
}

func TestCapIsNoOp(t *testing.T) {
	pp1 := pipe("PP1", "", r3.Vec{}, r3.Vec{X: 5})
	pp1.Params.EndConnector = &piping.Fitting{Kind: piping.KindCap}
	out, report := RewriteAll([]*piping.Segment{pp1})
	assert.Len(t, out, 1)
	assert.Equal(t, "cap has no body", report.Outcomes[0].Reason)
}
