package discretize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/dexterlegrand/threejs-asets-sub009/internal/geom"
	"github.com/dexterlegrand/threejs-asets-sub009/internal/piping"
)

func straight(name, line, preceding string, start, end r3.Vec) *piping.Segment {
	return &piping.Segment{
		Name:      name,
		Line:      line,
		Preceding: preceding,
		Start:     start,
		End:       end,
		Params:    piping.Params{OD: 114.3, Thickness: 6.02},
	}
}

func lengths(pieces []*Piece) []float64 {
	out := make([]float64, len(pieces))
	for i, p := range pieces {
		out[i] = geom.Round(p.Length(), geom.Precision)
	}
	return out
}

func names(pieces []*Piece) []string {
	out := make([]string, len(pieces))
	for i, p := range pieces {
		out[i] = p.Name
	}
	return out
}

func TestStraightSegment(t *testing.T) {
	p := &piping.Project{DiscretizationLimit: 3}
	seg := straight("PP1", "L1", piping.LineStart, r3.Vec{}, r3.Vec{X: 10})

	pieces := Discretize(p, []*piping.Segment{seg})
	require.Len(t, pieces, 4)
	assert.Equal(t, []float64{3, 3, 3, 1}, lengths(pieces))
	assert.Equal(t, []string{"PP1.1", "PP1.2", "PP1.3", "PP1.4"}, names(pieces))
	for i, pc := range pieces {
		assert.Equal(t, piping.PST, pc.Element)
		assert.Equal(t, i+1, pc.Index)
		if i > 0 {
			assert.Equal(t, pieces[i-1].End, pc.Start)
			assert.Equal(t, pieces[i-1].EndDist, pc.StartDist)
		}
	}
	assert.Equal(t, r3.Vec{}, pieces[0].Start)
	assert.Equal(t, r3.Vec{X: 10}, pieces[3].End)
}

func TestSupportsAreBoundaries(t *testing.T) {
	p := &piping.Project{DiscretizationLimit: 3}
	seg := straight("PP1", "L1", "", r3.Vec{}, r3.Vec{X: 10})
	seg.Params.Supports = []piping.Support{
		{ID: 1, Type: piping.SupportAnchor, Distance: 0},
		{ID: 2, Type: piping.SupportSliding, Distance: 5},
		{ID: 3, Type: piping.SupportSliding, Distance: 12}, // off the pipe
	}

	pieces := Discretize(p, []*piping.Segment{seg})
	assert.Equal(t, []float64{3, 2, 3, 2}, lengths(pieces))

	require.Len(t, pieces[0].StartSupports, 1)
	assert.Equal(t, 1, pieces[0].StartSupports[0].ID)
	require.Len(t, pieces[1].EndSupports, 1)
	assert.Equal(t, 2, pieces[1].EndSupports[0].ID)
	for _, pc := range pieces[2:] {
		assert.Empty(t, pc.StartSupports)
		assert.Empty(t, pc.EndSupports)
	}
}

func TestLoadAndMasterPoints(t *testing.T) {
	p := &piping.Project{
		DiscretizationLimit: 10,
		DeadLoads: []piping.LoadSpec{
			{ID: "d1", Pipe: "PP1", Kind: piping.LoadPoint, Distance: 4.5, Fy: -10},
		},
		WindLoads: []piping.LoadSpec{
			{ID: "w1", Pipe: "PP1", Kind: piping.LoadUDL, Distance: 1, EndDistance: 2},
		},
	}
	pp1 := straight("PP1", "L1", "", r3.Vec{}, r3.Vec{X: 8})
	pp2 := straight("PP2", "L2", "", r3.Vec{Z: 2}, r3.Vec{X: 8, Z: 2})
	pp2.Params.Supports = []piping.Support{
		{ID: 5, Type: piping.SupportSlave, Distance: 7, MasterPipe: "PP1", MasterDistance: 7},
	}

	pieces := Discretize(p, []*piping.Segment{pp1, pp2})
	var ends []float64
	for _, pc := range pieces {
		if pc.Pipe() == "PP1" {
			ends = append(ends, pc.EndDist)
		}
	}
	assert.Equal(t, []float64{1, 2, 4.5, 7, 8}, ends)
}

func TestOffsetRebasesDrawnDistances(t *testing.T) {
	p := &piping.Project{
		DiscretizationLimit: 10,
		DeadLoads:           []piping.LoadSpec{{ID: "d1", Pipe: "PP1", Distance: 2.5}},
	}
	seg := straight("PP1", "L1", "", r3.Vec{X: 0.5}, r3.Vec{X: 5})
	seg.Offset = 0.5

	pieces := Discretize(p, []*piping.Segment{seg})
	require.Len(t, pieces, 2)
	assert.InDelta(t, 2.0, pieces[0].EndDist, 1e-12)
	assert.InDelta(t, 2.5, pieces[0].DrawnEnd(), 1e-12)
	assert.InDelta(t, 2.5, pieces[0].End.X, 1e-12)
}

func TestFittingBodyIsOnePiece(t *testing.T) {
	p := &piping.Project{DiscretizationLimit: 0.1}
	body := straight("PP1-E1", "L1", "PP1", r3.Vec{}, r3.Vec{X: 0.5, Z: 0.5})
	body.Body = &piping.Body{Kind: piping.KindElbow, Parent: "PP1", Element: piping.BWE}

	pieces := Discretize(p, []*piping.Segment{body})
	require.Len(t, pieces, 1)
	assert.Equal(t, piping.BWE, pieces[0].Element)
	assert.True(t, pieces[0].IsBody())
	assert.Equal(t, "PP1", pieces[0].Pipe())
	assert.Equal(t, "PP1-E1.1", pieces[0].Name)
}

func TestChainOrder(t *testing.T) {
	p := &piping.Project{DiscretizationLimit: 100}
	pp3 := straight("PP3", "L2", "", r3.Vec{Y: 5}, r3.Vec{X: 1, Y: 5})
	pp2 := straight("PP2", "L1", "PP1", r3.Vec{X: 1}, r3.Vec{X: 2})
	pp1 := straight("PP1", "L1", piping.LineStart, r3.Vec{}, r3.Vec{X: 1})
	pp4 := straight("PP4", "L1", "PP2", r3.Vec{X: 2}, r3.Vec{X: 3})

	pieces := Discretize(p, []*piping.Segment{pp2, pp3, pp4, pp1})
	assert.Equal(t, []string{"PP1.1", "PP2.1", "PP4.1", "PP3.1"}, names(pieces))
}

func TestValveCarrier(t *testing.T) {
	p := &piping.Project{DiscretizationLimit: 3}

	{ // at the end
		seg := straight("PP1", "L1", "", r3.Vec{}, r3.Vec{X: 10})
		seg.Params.Valve = &piping.Valve{Type: "Gate", Position: piping.ValvePosition{Sentinel: piping.ValveAtEnd}, Length: 0.3}
		pieces := Discretize(p, []*piping.Segment{seg})
		require.Len(t, pieces, 4)
		for _, pc := range pieces[:3] {
			assert.Nil(t, pc.Valve)
		}
		require.NotNil(t, pieces[3].Valve)
		assert.Equal(t, "Gate", pieces[3].Valve.Type)
	}
	{ // numeric position becomes a boundary
		seg := straight("PP1", "L1", "", r3.Vec{}, r3.Vec{X: 5})
		seg.Params.Valve = &piping.Valve{Position: piping.AtDistance(2.5), Length: 0.2}
		pieces := Discretize(p, []*piping.Segment{seg})
		assert.Equal(t, []float64{2.5, 2.5}, lengths(pieces))
		assert.Nil(t, pieces[0].Valve)
		assert.NotNil(t, pieces[1].Valve)
	}
}

func TestSplitValves(t *testing.T) {
	p := &piping.Project{DiscretizationLimit: 3}

	{ // END valve: the last 0.3 m of the last piece
		seg := straight("PP1", "L1", "", r3.Vec{}, r3.Vec{X: 10})
		seg.Params.EndReleases = piping.Releases{Mz: true}
		seg.Params.Valve = &piping.Valve{Position: piping.ValvePosition{Sentinel: piping.ValveAtEnd}, Length: 0.3}
		pieces := SplitValves(Discretize(p, []*piping.Segment{seg}))
		require.Len(t, pieces, 5)
		assert.Equal(t, []float64{3, 3, 3, 0.7, 0.3}, lengths(pieces))
		assert.Equal(t, "PP1.5", pieces[4].Name)
		assert.Equal(t, piping.VALVE, pieces[4].Element)
		assert.NotNil(t, pieces[4].Valve)
		assert.Equal(t, piping.PST, pieces[3].Element)
		assert.Nil(t, pieces[3].Valve)
		assert.True(t, pieces[4].EndReleases.Mz)
		assert.False(t, pieces[3].EndReleases.Mz)
	}
	{ // numeric valve: the cut is at the far end of the valve
		seg := straight("PP1", "L1", "", r3.Vec{}, r3.Vec{X: 5})
		seg.Params.Valve = &piping.Valve{Position: piping.AtDistance(2.5), Length: 0.2}
		pieces := SplitValves(Discretize(p, []*piping.Segment{seg}))
		assert.Equal(t, []float64{2.5, 0.2, 2.3}, lengths(pieces))
		assert.Equal(t, piping.VALVE, pieces[1].Element)
		assert.NotNil(t, pieces[1].Valve)
		assert.Nil(t, pieces[2].Valve)
		assert.Equal(t, []string{"PP1.1", "PP1.2", "PP1.3"}, names(pieces))
	}
	{ // zero-length valve stays a marker
		seg := straight("PP1", "L1", "", r3.Vec{}, r3.Vec{X: 5})
		seg.Params.Valve = &piping.Valve{Position: piping.AtDistance(1)}
		pieces := SplitValves(Discretize(p, []*piping.Segment{seg}))
		assert.Equal(t, []float64{1, 3, 1}, lengths(pieces))
		for _, pc := range pieces {
			assert.Equal(t, piping.PST, pc.Element)
		}
	}
}

func TestReleasesOnSegmentEnds(t *testing.T) {
	p := &piping.Project{DiscretizationLimit: 2}
	seg := straight("PP1", "L1", "", r3.Vec{}, r3.Vec{Y: 5})
	seg.Params.StartReleases = piping.Releases{Fx: true}
	seg.Params.EndReleases = piping.Releases{My: true}

	pieces := Discretize(p, []*piping.Segment{seg})
	require.Len(t, pieces, 3)
	assert.True(t, pieces[0].StartReleases.Fx)
	assert.False(t, pieces[0].EndReleases.My)
	assert.False(t, pieces[1].StartReleases.Fx)
	assert.True(t, pieces[2].EndReleases.My)
}
