package geometry

import (
	"math"
	"strconv"

	"gonum.org/v1/gonum/spatial/r2"
)

// Point is a two-dimensional coordinate.
//
// The zero value is the origin. Equality is exact component equality; callers
// that need a tolerance must compare components themselves.
type Point r2.Vec

// Pt returns the point (x, y).
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Splat returns the point (v, v). It is the broadcasting rule applied to every
// scalar operand.
func Splat(v float64) Point { return Point{X: v, Y: v} }

// Vec returns p as a gonum vector.
func (p Point) Vec() r2.Vec { return r2.Vec(p) }

// XY returns the components of p, for unpacking.
func (p Point) XY() (x, y float64) { return p.X, p.Y }

// Add returns p + q.
func (p Point) Add(q Point) Point { return Point(r2.Add(r2.Vec(p), r2.Vec(q))) }

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point(r2.Sub(r2.Vec(p), r2.Vec(q))) }

// RSub returns Splat(v) - p.
func (p Point) RSub(v float64) Point { return Splat(v).Sub(p) }

// Neg returns -p.
func (p Point) Neg() Point { return Point{X: -p.X, Y: -p.Y} }

// Mul returns the component-wise product of p and q.
func (p Point) Mul(q Point) Point { return Point{X: p.X * q.X, Y: p.Y * q.Y} }

// Scale returns p * Splat(v).
func (p Point) Scale(v float64) Point { return Point(r2.Scale(v, r2.Vec(p))) }

// Div returns the component-wise quotient p / q.
func (p Point) Div(q Point) Point { return Point{X: p.X / q.X, Y: p.Y / q.Y} }

// RDiv returns Splat(v) / p.
func (p Point) RDiv(v float64) Point { return Splat(v).Div(p) }

// Pow raises each component of p to exponent.
func (p Point) Pow(exponent float64) Point {
	return Point{X: math.Pow(p.X, exponent), Y: math.Pow(p.Y, exponent)}
}

// Dot returns the dot product of p and q.
func (p Point) Dot(q Point) float64 { return r2.Dot(r2.Vec(p), r2.Vec(q)) }

// Eq reports whether p and q have identical components.
func (p Point) Eq(q Point) bool { return p.X == q.X && p.Y == q.Y }

// String returns the point as "Point(x=1, y=2)".
func (p Point) String() string {
	return "Point(x=" + formatFloat(p.X) + ", y=" + formatFloat(p.Y) + ")"
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
