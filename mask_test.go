package fdrtrace

import (
	"testing"

	"github.com/ctessum/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(x0, y0, x1, y1 float64) geom.Polygon {
	return geom.Polygon{{
		{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}, {X: x0, Y: y0},
	}}
}

func TestPolygonMask(t *testing.T) {
	m, err := NewPolygonMask(square(5, 5, 25, 25))
	require.NoError(t, err)

	assert.True(t, m.Contains(geom.Point{X: 12, Y: 12}))
	assert.True(t, m.Contains(geom.Point{X: 24.9, Y: 5.1}))
	assert.False(t, m.Contains(geom.Point{X: 2, Y: 12}))
	assert.False(t, m.Contains(geom.Point{X: 12, Y: 30}))

	b := m.Bounds()
	assert.Equal(t, geom.Point{X: 5, Y: 5}, b.Min)
	assert.Equal(t, geom.Point{X: 25, Y: 25}, b.Max)
}

func TestPolygonMask_Multi(t *testing.T) {
	m, err := NewPolygonMask(geom.MultiPolygon{square(0, 0, 10, 10), square(20, 20, 30, 30)})
	require.NoError(t, err)
	assert.True(t, m.Contains(geom.Point{X: 5, Y: 5}))
	assert.True(t, m.Contains(geom.Point{X: 25, Y: 25}))
	assert.False(t, m.Contains(geom.Point{X: 15, Y: 15}))
}

func TestNewPolygonMask_Errors(t *testing.T) {
	_, err := NewPolygonMask(geom.Point{X: 1, Y: 1})
	assert.ErrorIs(t, err, ErrNotPolygonal)
	_, err = NewPolygonMask(geom.LineString{{X: 0, Y: 0}, {X: 1, Y: 1}})
	assert.ErrorIs(t, err, ErrNotPolygonal)
}
