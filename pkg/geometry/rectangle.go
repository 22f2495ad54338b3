package geometry

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/matzehuels/frame/pkg/errors"
)

// DefaultRegion is the region assigned to rectangles that do not name one.
const DefaultRegion = "Ground"

// Shape is the width and height of a rectangle.
//
// Shape itself carries no positivity invariant; [Rectangle] enforces it.
type Shape struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Validate checks that both dimensions are strictly positive.
func (s Shape) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.W, validation.Required, validation.Min(0.0).Exclusive()),
		validation.Field(&s.H, validation.Required, validation.Min(0.0).Exclusive()),
	)
}

// Half returns the shape as a point scaled by one half.
func (s Shape) Half() Point { return Point{X: s.W / 2, Y: s.H / 2} }

// String returns the shape as "Shape(w=4, h=2)".
func (s Shape) String() string {
	return "Shape(w=" + formatFloat(s.W) + ", h=" + formatFloat(s.H) + ")"
}

// unset is the sentinel used for the center and shape of a rectangle built
// without them. It is not valid geometry.
var unset = Point{X: -1, Y: -1}

// Rectangle is an axis-aligned box with a center, a shape, a fixed flag,
// a region tag and a name.
//
// A Rectangle built without a shape keeps the sentinel shape (-1, -1) until
// [Rectangle.SetShape] is called; area and bounding box are meaningless until
// then.
type Rectangle struct {
	center Point
	shape  Shape
	fixed  bool
	region string
	name   string
}

// Option configures a Rectangle under construction.
type Option func(*rectangleConfig)

type rectangleConfig struct {
	center   Point
	shape    Shape
	shapeSet bool
	fixed    bool
	region   string
	name     string
}

// WithCenter sets the center of the rectangle.
func WithCenter(p Point) Option {
	return func(c *rectangleConfig) { c.center = p }
}

// WithShape sets the shape of the rectangle. Both dimensions must be positive.
func WithShape(s Shape) Option {
	return func(c *rectangleConfig) {
		c.shape = s
		c.shapeSet = true
	}
}

// WithFixed marks the rectangle as fixed (or not).
func WithFixed(fixed bool) Option {
	return func(c *rectangleConfig) { c.fixed = fixed }
}

// WithRegion sets the region tag. It must be a valid identifier.
func WithRegion(region string) Option {
	return func(c *rectangleConfig) { c.region = region }
}

// WithName sets the name of the rectangle.
func WithName(name string) Option {
	return func(c *rectangleConfig) { c.name = name }
}

// NewRectangle builds a rectangle from the given options.
//
// Validation runs after every option has been applied and before anything is
// returned: on error the result is nil. Errors carry
// [errors.ErrCodeInvalidShape] or [errors.ErrCodeInvalidRegion].
func NewRectangle(opts ...Option) (*Rectangle, error) {
	cfg := rectangleConfig{
		center: unset,
		shape:  Shape{W: unset.X, H: unset.Y},
		region: DefaultRegion,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.shapeSet {
		if err := validateShape(cfg.shape); err != nil {
			return nil, err
		}
	}
	if err := errors.ValidateRegion(cfg.region); err != nil {
		return nil, err
	}

	return &Rectangle{
		center: cfg.center,
		shape:  cfg.shape,
		fixed:  cfg.fixed,
		region: cfg.region,
		name:   cfg.name,
	}, nil
}

func validateShape(s Shape) error {
	if err := s.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidShape, err, "incorrect rectangle shape %s", s)
	}
	return nil
}

// Center returns the center of the rectangle.
func (r *Rectangle) Center() Point { return r.center }

// SetCenter moves the rectangle.
func (r *Rectangle) SetCenter(p Point) { r.center = p }

// Shape returns the width and height of the rectangle.
func (r *Rectangle) Shape() Shape { return r.shape }

// SetShape resizes the rectangle. Non-positive dimensions are rejected and
// leave the rectangle unchanged.
func (r *Rectangle) SetShape(s Shape) error {
	if err := validateShape(s); err != nil {
		return err
	}
	r.shape = s
	return nil
}

// Fixed reports whether the rectangle is fixed.
func (r *Rectangle) Fixed() bool { return r.fixed }

// Region returns the region tag of the rectangle.
func (r *Rectangle) Region() string { return r.region }

// SetRegion changes the region tag. Invalid identifiers are rejected and
// leave the rectangle unchanged.
func (r *Rectangle) SetRegion(region string) error {
	if err := errors.ValidateRegion(region); err != nil {
		return err
	}
	r.region = region
	return nil
}

// Name returns the name of the rectangle.
func (r *Rectangle) Name() string { return r.name }

// SetName renames the rectangle.
func (r *Rectangle) SetName(name string) { r.name = name }

// BoundingBox returns the lower-left and upper-right corners, computed from
// the current center and shape.
func (r *Rectangle) BoundingBox() (ll, ur Point) {
	half := r.shape.Half()
	return r.center.Sub(half), r.center.Add(half)
}

// Area returns width times height.
func (r *Rectangle) Area() float64 { return r.shape.W * r.shape.H }

// Inside reports whether p lies in the rectangle. Points on the boundary are
// inside.
func (r *Rectangle) Inside(p Point) bool {
	ll, ur := r.BoundingBox()
	return ll.X <= p.X && p.X <= ur.X && ll.Y <= p.Y && p.Y <= ur.Y
}

// Overlap reports whether the interiors of r and o intersect. Rectangles that
// only touch along an edge or at a corner do not overlap.
func (r *Rectangle) Overlap(o *Rectangle) bool {
	ll1, ur1 := r.BoundingBox()
	ll2, ur2 := o.BoundingBox()
	if ur1.X <= ll2.X || ur2.X <= ll1.X {
		return false
	}
	return ur1.Y > ll2.Y && ur2.Y > ll1.Y
}

// Equal reports whether r and o have the same center, shape, fixed flag,
// region and name.
func (r *Rectangle) Equal(o *Rectangle) bool {
	if r == nil || o == nil {
		return r == o
	}
	return r.center.Eq(o.center) && r.shape == o.shape && r.fixed == o.fixed &&
		r.region == o.region && r.name == o.name
}

// String returns a compact description such as
// "center=Point(x=5, y=3) shape=Shape(w=4, h=2) region=Ground fixed".
func (r *Rectangle) String() string {
	s := fmt.Sprintf("%s=%s %s=%s %s=%s", AttrCenter, r.center, AttrShape, r.shape, AttrRegion, r.region)
	if r.fixed {
		s += " " + AttrFixed
	}
	return s
}
