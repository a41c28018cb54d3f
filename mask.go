package fdrtrace

import (
	"fmt"

	"github.com/ctessum/geom"
)

// Mask restricts which traced points are kept in the output path.
type Mask interface {
	Contains(p geom.Point) bool
	Bounds() *geom.Bounds
}

// PolygonMask is a Mask backed by a polygon or multipolygon. Points on the
// boundary are not contained.
type PolygonMask struct {
	poly geom.Polygonal
}

// NewPolygonMask wraps g, which must be a Polygon or MultiPolygon.
func NewPolygonMask(g geom.Geom) (*PolygonMask, error) {
	switch p := g.(type) {
	case geom.Polygon:
		return &PolygonMask{poly: p}, nil
	case geom.MultiPolygon:
		return &PolygonMask{poly: p}, nil
	}
	return nil, fmt.Errorf("%w: got %T", ErrNotPolygonal, g)
}

// Contains reports whether p lies strictly inside the mask.
func (m *PolygonMask) Contains(p geom.Point) bool {
	return p.Within(m.poly) == geom.Inside
}

// Bounds of the mask polygon.
func (m *PolygonMask) Bounds() *geom.Bounds { return m.poly.Bounds() }
