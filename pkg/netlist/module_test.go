package netlist

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/frame/pkg/errors"
	"github.com/matzehuels/frame/pkg/geometry"
)

func TestModuleArea(t *testing.T) {
	r1, err := geometry.NewRectangle(geometry.WithCenter(geometry.Pt(0, 0)), geometry.WithShape(geometry.Shape{W: 2, H: 3}))
	require.NoError(t, err)
	r2, err := geometry.NewRectangle(geometry.WithCenter(geometry.Pt(2, 0)), geometry.WithShape(geometry.Shape{W: 1, H: 1}))
	require.NoError(t, err)

	tests := []struct {
		name string
		opts []ModuleOption
		want float64
	}{
		{"nothing", nil, 0},
		{"declared", []ModuleOption{WithArea(5)}, 5},
		{"rectangles", []ModuleOption{WithRectangles(r1, r2)}, 7},
		{"rectangles win over declared", []ModuleOption{WithArea(100), WithRectangles(r1)}, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mustModule(t, "M", tt.opts...)
			assert.Equal(t, tt.want, m.Area())
		})
	}
}

func TestNewModuleErrors(t *testing.T) {
	shapeless, err := geometry.NewRectangle(geometry.WithCenter(geometry.Pt(1, 1)))
	require.NoError(t, err)

	tests := []struct {
		name   string
		module string
		opts   []ModuleOption
	}{
		{"empty name", "", nil},
		{"control character", "a\nb", nil},
		{"negative area", "M", []ModuleOption{WithArea(-1)}},
		{"NaN area", "M", []ModuleOption{WithArea(math.NaN())}},
		{"nil rectangle", "M", []ModuleOption{WithRectangles(nil)}},
		{"rectangle without shape", "M", []ModuleOption{WithRectangles(shapeless)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewModule(tt.module, tt.opts...)
			assert.Nil(t, m)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidModule), "got %v", err)
		})
	}
}

func TestModuleCreateSquare(t *testing.T) {
	m := mustModule(t, "M", WithArea(16), WithCenter(geometry.Pt(3, 4)), WithFixed(true))

	r, err := m.CreateSquare()
	require.NoError(t, err)
	assert.Equal(t, geometry.Shape{W: 4, H: 4}, r.Shape())
	assert.True(t, r.Center().Eq(geometry.Pt(3, 4)))
	assert.True(t, r.Fixed())
	assert.Equal(t, "M", r.Name())
	assert.Equal(t, 1, m.NumRectangles())
	assert.Equal(t, 16.0, m.Area())

	_, err = m.CreateSquare()
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidModule), "second square must fail")

	empty := mustModule(t, "E")
	_, err = empty.CreateSquare()
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidModule))
	assert.Equal(t, 0, empty.NumRectangles())
}

func TestModuleEqual(t *testing.T) {
	a := mustModule(t, "M", WithArea(2), WithCenter(geometry.Pt(1, 1)))
	b := mustModule(t, "M", WithArea(2), WithCenter(geometry.Pt(1, 1)))
	assert.True(t, a.Equal(b))

	assert.False(t, a.Equal(mustModule(t, "M", WithArea(2))))
	assert.False(t, a.Equal(mustModule(t, "N", WithArea(2), WithCenter(geometry.Pt(1, 1)))))
	assert.False(t, a.Equal(nil))

	_, err := b.CreateSquare()
	require.NoError(t, err)
	assert.False(t, a.Equal(b))
}

func TestModuleString(t *testing.T) {
	assert.Equal(t, "M(area=2, rectangles=0)", mustModule(t, "M", WithArea(2)).String())
	assert.Equal(t, "F(area=0, rectangles=0, fixed)", mustModule(t, "F", WithFixed(true)).String())
}
