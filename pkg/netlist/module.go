package netlist

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/matzehuels/frame/pkg/errors"
	"github.com/matzehuels/frame/pkg/geometry"
)

// Module is a named block of the netlist owning zero or more rectangles.
//
// A module without rectangles may declare an area; [Module.CreateSquare]
// turns that area into a single square rectangle.
type Module struct {
	name       string
	area       float64
	hasArea    bool
	center     geometry.Point
	hasCenter  bool
	fixed      bool
	rectangles []*geometry.Rectangle
}

// ModuleOption configures a Module under construction.
type ModuleOption func(*Module)

// WithArea declares the area of a module that has no rectangles yet.
func WithArea(area float64) ModuleOption {
	return func(m *Module) {
		m.area = area
		m.hasArea = true
	}
}

// WithCenter sets the center used when a square is created for the module.
func WithCenter(p geometry.Point) ModuleOption {
	return func(m *Module) {
		m.center = p
		m.hasCenter = true
	}
}

// WithFixed marks the module as fixed.
func WithFixed(fixed bool) ModuleOption {
	return func(m *Module) { m.fixed = fixed }
}

// WithRectangles appends rectangles to the module.
func WithRectangles(rects ...*geometry.Rectangle) ModuleOption {
	return func(m *Module) { m.rectangles = append(m.rectangles, rects...) }
}

// NewModule builds a module. The name must pass [errors.ValidateModuleName],
// a declared area must be a non-negative finite number and every rectangle
// must have a shape.
func NewModule(name string, opts ...ModuleOption) (*Module, error) {
	if err := errors.ValidateModuleName(name); err != nil {
		return nil, err
	}

	m := &Module{name: name}
	for _, opt := range opts {
		opt(m)
	}

	if m.hasArea && (m.area < 0 || math.IsNaN(m.area) || math.IsInf(m.area, 0)) {
		return nil, errors.New(errors.ErrCodeInvalidModule, "module %q: incorrect area %v", name, m.area)
	}
	for i, r := range m.rectangles {
		if r == nil {
			return nil, errors.New(errors.ErrCodeInvalidModule, "module %q: rectangle %d is nil", name, i)
		}
		if err := r.Shape().Validate(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidModule, err, "module %q: rectangle %d has no shape", name, i)
		}
	}
	return m, nil
}

// Name returns the module name.
func (m *Module) Name() string { return m.name }

// DeclaredArea returns the area given at construction and whether one was
// given.
func (m *Module) DeclaredArea() (float64, bool) { return m.area, m.hasArea }

// Center returns the module center and whether one was given.
func (m *Module) Center() (geometry.Point, bool) { return m.center, m.hasCenter }

// Fixed reports whether the module is fixed.
func (m *Module) Fixed() bool { return m.fixed }

// Rectangles returns the rectangles of the module in order.
func (m *Module) Rectangles() []*geometry.Rectangle { return slices.Clone(m.rectangles) }

// NumRectangles returns the number of rectangles of the module.
func (m *Module) NumRectangles() int { return len(m.rectangles) }

// Area returns the sum of the rectangle areas, or the declared area when the
// module has no rectangles. A module with neither has area 0.
func (m *Module) Area() float64 {
	if len(m.rectangles) == 0 {
		return m.area
	}
	total := 0.0
	for _, r := range m.rectangles {
		total += r.Area()
	}
	return total
}

// CreateSquare gives a module without rectangles a single square of the
// module's area, centered at the module center (the origin when unset).
func (m *Module) CreateSquare() (*geometry.Rectangle, error) {
	if len(m.rectangles) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidModule, "module %q already has rectangles", m.name)
	}
	area := m.Area()
	if !(area > 0) {
		return nil, errors.New(errors.ErrCodeInvalidModule, "module %q: cannot create a square with area %v", m.name, area)
	}

	side := math.Sqrt(area)
	r, err := geometry.NewRectangle(
		geometry.WithCenter(m.center),
		geometry.WithShape(geometry.Shape{W: side, H: side}),
		geometry.WithFixed(m.fixed),
		geometry.WithName(m.name),
	)
	if err != nil {
		return nil, fmt.Errorf("module %q: %w", m.name, err)
	}
	m.rectangles = append(m.rectangles, r)
	return r, nil
}

// Equal reports whether two modules have the same name, declared area,
// center, fixed flag and rectangles.
func (m *Module) Equal(o *Module) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m.name != o.name || m.hasArea != o.hasArea || m.hasCenter != o.hasCenter || m.fixed != o.fixed {
		return false
	}
	if m.hasArea && m.area != o.area {
		return false
	}
	if m.hasCenter && !m.center.Eq(o.center) {
		return false
	}
	return slices.EqualFunc(m.rectangles, o.rectangles, (*geometry.Rectangle).Equal)
}

// String returns a short description such as "A(area=8, rectangles=2)".
func (m *Module) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s(area=%g, rectangles=%d", m.name, m.Area(), len(m.rectangles))
	if m.fixed {
		b.WriteString(", fixed")
	}
	b.WriteString(")")
	return b.String()
}
