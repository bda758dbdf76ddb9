package geom

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// Precision is the number of decimal places (in meters) kept for
	// coordinate identity: 0.1 mm.
	Precision = 4

	// AnglePrecision is the number of decimal places kept on angles (degrees)
	// before they are compared against 0 and 90.
	AnglePrecision = 2

	// Eps is the smallest span (m) treated as non-zero when walking distances.
	Eps = 1e-6
)

// Up is the global vertical axis.
var Up = r3.Vec{Y: 1}

// Round rounds v to prec decimal places.
func Round(v float64, prec int) float64 {
	r := scalar.Round(v, prec)
	if r == 0 {
		// normalize -0
		return 0
	}
	return r
}

// RoundVec rounds each component of p to prec decimal places.
func RoundVec(p r3.Vec, prec int) r3.Vec {
	return r3.Vec{X: Round(p.X, prec), Y: Round(p.Y, prec), Z: Round(p.Z, prec)}
}

// ToMM converts meters to millimeters.
func ToMM(m float64) float64 { return m * 1000 }

// ToM converts millimeters to meters.
func ToM(mm float64) float64 { return mm / 1000 }

// Key is the identity of a point: its coordinates rounded to Precision in
// meters, expressed in millimeters. Two points are the same node iff their
// keys are equal.
type Key struct {
	X, Y, Z float64
}

// KeyOf returns the identity key of p (p in meters).
func KeyOf(p r3.Vec) Key {
	return Key{X: mmKey(p.X), Y: mmKey(p.Y), Z: mmKey(p.Z)}
}

func mmKey(m float64) float64 {
	return Round(ToMM(Round(m, Precision)), Precision-3)
}

// Vec returns the key position in meters.
func (k Key) Vec() r3.Vec {
	return r3.Vec{X: ToM(k.X), Y: ToM(k.Y), Z: ToM(k.Z)}
}

// Less orders keys by y, then z, then x.
func (k Key) Less(o Key) bool {
	if k.Y != o.Y {
		return k.Y < o.Y
	}
	if k.Z != o.Z {
		return k.Z < o.Z
	}
	return k.X < o.X
}

// Same reports whether a and b resolve to the same node.
func Same(a, b r3.Vec) bool {
	return KeyOf(a) == KeyOf(b)
}

// Distance between a and b.
func Distance(a, b r3.Vec) float64 {
	return r3.Norm(r3.Sub(b, a))
}

// Direction returns the unit vector from a to b, or the zero vector when a
// and b coincide.
func Direction(a, b r3.Vec) r3.Vec {
	d := r3.Sub(b, a)
	if r3.Norm(d) < Eps {
		return r3.Vec{}
	}
	return r3.Unit(d)
}

// PointAlong returns the point at distance d from a towards b.
func PointAlong(a, b r3.Vec, d float64) r3.Vec {
	dir := Direction(a, b)
	return r3.Add(a, r3.Scale(d, dir))
}

// AngleDeg returns the angle between u and v in degrees, rounded to
// AnglePrecision.
func AngleDeg(u, v r3.Vec) float64 {
	nu, nv := r3.Norm(u), r3.Norm(v)
	if nu < Eps || nv < Eps {
		return 0
	}
	c := r3.Dot(u, v) / (nu * nv)
	c = math.Max(-1, math.Min(1, c))
	return Round(math.Acos(c)*180/math.Pi, AnglePrecision)
}

// Rad converts degrees to radians.
func Rad(deg float64) float64 { return deg * math.Pi / 180 }

// LocalZ returns the local out-of-plane axis of an element running from
// start to end. The reference vector is global Y; vertical elements fall
// back to global X.
func LocalZ(start, end r3.Vec) r3.Vec {
	x := Direction(start, end)
	if r3.Norm(x) == 0 {
		return r3.Vec{Z: 1}
	}
	ref := Up
	if math.Abs(r3.Dot(x, Up)) > 1-1e-9 {
		ref = r3.Vec{X: 1}
	}
	return RoundVec(r3.Unit(r3.Cross(x, ref)), 6)
}

// EqualDist reports whether two distances along a segment are equal once
// rounded to Precision.
func EqualDist(a, b float64) bool {
	return Round(a, Precision) == Round(b, Precision)
}

// Within reports whether d lies in [lo, hi] after rounding.
func Within(d, lo, hi float64) bool {
	d, lo, hi = Round(d, Precision), Round(lo, Precision), Round(hi, Precision)
	return d >= lo && d <= hi
}
