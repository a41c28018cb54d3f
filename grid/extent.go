package grid

import (
	"fmt"
	"math"
)

// Extent is an axis-aligned rectangle in world coordinates.
type Extent struct {
	Xmin, Ymin, Xmax, Ymax float64
}

// Width of the extent.
func (e Extent) Width() float64 { return e.Xmax - e.Xmin }

// Height of the extent.
func (e Extent) Height() float64 { return e.Ymax - e.Ymin }

// Valid reports whether all bounds are finite and max >= min on both axes.
func (e Extent) Valid() bool {
	for _, v := range [4]float64{e.Xmin, e.Ymin, e.Xmax, e.Ymax} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return e.Xmax >= e.Xmin && e.Ymax >= e.Ymin
}

// Contains reports whether (x,y) lies within the closed rectangle.
func (e Extent) Contains(x, y float64) bool {
	return x >= e.Xmin && x <= e.Xmax && y >= e.Ymin && y <= e.Ymax
}

// Covers reports whether o lies entirely within e.
func (e Extent) Covers(o Extent) bool {
	return o.Xmin >= e.Xmin && o.Xmax <= e.Xmax && o.Ymin >= e.Ymin && o.Ymax <= e.Ymax
}

func (e Extent) String() string {
	return fmt.Sprintf("(%g, %g)-(%g, %g)", e.Xmin, e.Ymin, e.Xmax, e.Ymax)
}

// AlignedExtent expands mask outward, side by side, to the nearest multiple of cs
// measured from the matching side of ref. The result covers mask and shares the
// grid phase of ref.
func AlignedExtent(mask, ref Extent, cs float64) (Extent, error) {
	if !(cs > 0) || math.IsInf(cs, 0) {
		return Extent{}, fmt.Errorf("%w: cell size %v", ErrInvalidExtent, cs)
	}
	if !mask.Valid() {
		return Extent{}, fmt.Errorf("%w: mask extent %v", ErrInvalidExtent, mask)
	}
	if !ref.Valid() {
		return Extent{}, fmt.Errorf("%w: reference extent %v", ErrInvalidExtent, ref)
	}
	return Extent{
		Xmin: mask.Xmin - fmod(mask.Xmin-ref.Xmin, cs),
		Ymin: mask.Ymin - fmod(mask.Ymin-ref.Ymin, cs),
		Xmax: mask.Xmax + fmod(ref.Xmax-mask.Xmax, cs),
		Ymax: mask.Ymax + fmod(ref.Ymax-mask.Ymax, cs),
	}, nil
}

// fmod is the floored modulo, always in [0,m) for m > 0.
func fmod(a, m float64) float64 {
	r := math.Mod(a, m)
	if r < 0 {
		r += m
	}
	if r >= m { // -tiny + m rounds to m
		r = 0
	}
	return r
}
