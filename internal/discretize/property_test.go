package discretize

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/dexterlegrand/threejs-asets-sub009/internal/geom"
	"github.com/dexterlegrand/threejs-asets-sub009/internal/piping"
)

// TestDiscretizationInvariants checks length conservation, the length bound
// and monotonic distances on random straight segments.
func TestDiscretizationInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	build := func(length, limit, dx, dy float64, stops []float64) []*Piece {
		dir := r3.Unit(r3.Vec{X: 1 + dx, Y: dy, Z: 0.5})
		seg := straight("PP1", "L1", "", r3.Vec{X: 1, Y: 2, Z: 3}, r3.Add(r3.Vec{X: 1, Y: 2, Z: 3}, r3.Scale(length, dir)))
		for i, f := range stops {
			seg.Params.Supports = append(seg.Params.Supports, piping.Support{
				ID: i + 1, Type: piping.SupportSliding, Distance: f * length,
			})
		}
		return Discretize(&piping.Project{DiscretizationLimit: limit}, []*piping.Segment{seg})
	}

	properties.Property("sum of piece lengths equals segment length", prop.ForAll(
		func(length, limit, dx, dy float64, stops []float64) bool {
			var sum float64
			for _, p := range build(length, limit, dx, dy, stops) {
				sum += p.Length()
			}
			return math.Abs(sum-length) < 1e-6
		},
		gen.Float64Range(0.5, 60),
		gen.Float64Range(0.1, 10),
		gen.Float64Range(-1, 1),
		gen.Float64Range(-1, 1),
		gen.SliceOf(gen.Float64Range(0, 1)),
	))

	properties.Property("no piece exceeds the limit", prop.ForAll(
		func(length, limit, dx, dy float64, stops []float64) bool {
			for _, p := range build(length, limit, dx, dy, stops) {
				if p.Length() > limit+geom.Eps {
					return false
				}
			}
			return true
		},
		gen.Float64Range(0.5, 60),
		gen.Float64Range(0.1, 10),
		gen.Float64Range(-1, 1),
		gen.Float64Range(-1, 1),
		gen.SliceOf(gen.Float64Range(0, 1)),
	))

	properties.Property("pieces are contiguous with increasing distance", prop.ForAll(
		func(length, limit, dx, dy float64, stops []float64) bool {
			pieces := build(length, limit, dx, dy, stops)
			for i, p := range pieces {
				if p.EndDist <= p.StartDist {
					return false
				}
				if i > 0 && (p.Start != pieces[i-1].End || p.StartDist != pieces[i-1].EndDist) {
					return false
				}
			}
			return true
		},
		gen.Float64Range(0.5, 60),
		gen.Float64Range(0.1, 10),
		gen.Float64Range(-1, 1),
		gen.Float64Range(-1, 1),
		gen.SliceOf(gen.Float64Range(0, 1)),
	))

	properties.TestingRun(t)
}
