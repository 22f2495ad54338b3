package geometry

import (
	"slices"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/frame/pkg/errors"
)

// Recognized rectangle attribute keys.
const (
	AttrCenter = "center"
	AttrShape  = "shape"
	AttrFixed  = "fixed"
	AttrRegion = "region"
	AttrName   = "name"
)

// Attributes is an untyped set of rectangle attributes, as produced by
// decoders that do not know about geometry types.
type Attributes map[string]any

// NewRectangleFromAttributes builds a rectangle from an attribute map.
//
// Only the keys center, shape, fixed, region and name are recognized; any
// other key fails with [errors.ErrCodeUnknownAttribute]. A value of the wrong
// type fails with [errors.ErrCodeInvalidType]. center and shape accept a
// Point/Shape, an r2.Vec, or a two-element numeric sequence. Keys are checked
// in sorted order so the reported error is deterministic.
func NewRectangleFromAttributes(attrs Attributes) (*Rectangle, error) {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	opts := make([]Option, 0, len(attrs))
	for _, key := range keys {
		value := attrs[key]
		switch key {
		case AttrCenter:
			p, ok := toPair(value)
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidType, "incorrect point associated to the center of the rectangle: %v", value)
			}
			opts = append(opts, WithCenter(p))
		case AttrShape:
			var s Shape
			switch v := value.(type) {
			case Shape:
				s = v
			default:
				p, ok := toPair(value)
				if !ok {
					return nil, errors.New(errors.ErrCodeInvalidType, "incorrect shape associated to the rectangle: %v", value)
				}
				s = Shape{W: p.X, H: p.Y}
			}
			opts = append(opts, WithShape(s))
		case AttrFixed:
			b, ok := value.(bool)
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidType, "incorrect value for fixed (should be a boolean): %v", value)
			}
			opts = append(opts, WithFixed(b))
		case AttrRegion:
			s, ok := value.(string)
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidType, "incorrect value for region (should be a string): %v", value)
			}
			opts = append(opts, WithRegion(s))
		case AttrName:
			s, ok := value.(string)
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidType, "incorrect value for name (should be a string): %v", value)
			}
			opts = append(opts, WithName(s))
		default:
			return nil, errors.New(errors.ErrCodeUnknownAttribute, "unknown rectangle attribute %q", key)
		}
	}
	return NewRectangle(opts...)
}

// toPair converts a point-like value to a Point.
func toPair(v any) (Point, bool) {
	switch p := v.(type) {
	case Point:
		return p, true
	case r2.Vec:
		return Point(p), true
	case [2]float64:
		return Pt(p[0], p[1]), true
	case []float64:
		if len(p) != 2 {
			return Point{}, false
		}
		return Pt(p[0], p[1]), true
	case []any:
		if len(p) != 2 {
			return Point{}, false
		}
		x, okX := ToFloat(p[0])
		y, okY := ToFloat(p[1])
		return Pt(x, y), okX && okY
	}
	return Point{}, false
}

// ToFloat converts a numeric value of any built-in numeric type to float64.
// Booleans and strings are not numbers.
func ToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}
