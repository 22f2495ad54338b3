// Package geometry provides the planar primitives used by floorplanning:
// points, shapes and axis-aligned rectangles.
//
// # Points
//
// [Point] is a named [r2.Vec] with value-semantics arithmetic. Every
// operation returns a new Point. Scalars are broadcast with [Splat] before
// they take part in an operation, so "2 - p" is written as p.RSub(2) and is
// identical to Splat(2).Sub(p):
//
//	p := geometry.Pt(1, 2)
//	q := p.Add(geometry.Splat(3)).Mul(geometry.Pt(2, 1)) // (8, 5)
//	x, y := q.XY()
//
// Multiplication and division are component-wise. Division by zero follows
// IEEE-754 and yields ±Inf or NaN rather than failing.
//
// # Rectangles
//
// [Rectangle] is a box described by its center and [Shape]. It is built with
// [NewRectangle] and functional options, or with [NewRectangleFromAttributes]
// when the attributes come from untyped input. Both constructors validate
// atomically:
//
//	r, err := geometry.NewRectangle(
//	    geometry.WithCenter(geometry.Pt(5, 3)),
//	    geometry.WithShape(geometry.Shape{W: 4, H: 2}),
//	)
//	r.Area()                      // 8
//	r.Inside(geometry.Pt(3, 2))   // true: the boundary counts as inside
//
// Containment is inclusive while [Rectangle.Overlap] is strict: two
// rectangles that only share an edge do not overlap.
//
// # Concurrency
//
// Points and Shapes are values and safe to share. A Rectangle has setters and
// must be owned by a single goroutine at a time.
//
// [r2.Vec]: https://pkg.go.dev/gonum.org/v1/gonum/spatial/r2#Vec
package geometry
