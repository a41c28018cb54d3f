package grid

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlignedExtent(t *testing.T) {
	ref := Extent{0, 0, 100, 100}
	cases := []struct {
		name string
		mask Extent
		ref  Extent
		cs   float64
		want Extent
	}{
		{"Interior", Extent{5, 5, 25, 25}, ref, 10, Extent{0, 0, 30, 30}},
		{"AlreadyAligned", Extent{10, 20, 40, 50}, ref, 10, Extent{10, 20, 40, 50}},
		{"NegativeSide", Extent{-15, -15, 5, 5}, ref, 10, Extent{-20, -20, 10, 10}},
		{"OffsetPhase", Extent{5, 5, 25, 25}, Extent{3, 3, 103, 103}, 10, Extent{3, 3, 33, 33}},
		{"PastReference", Extent{95, 95, 112, 112}, ref, 10, Extent{90, 90, 120, 120}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := AlignedExtent(tc.mask, tc.ref, tc.cs)
			require.NoError(t, err)
			assert.InDelta(t, tc.want.Xmin, got.Xmin, 1e-9)
			assert.InDelta(t, tc.want.Ymin, got.Ymin, 1e-9)
			assert.InDelta(t, tc.want.Xmax, got.Xmax, 1e-9)
			assert.InDelta(t, tc.want.Ymax, got.Ymax, 1e-9)
		})
	}
}

func TestAlignedExtent_CoversAndSnaps(t *testing.T) {
	ref := Extent{1.5, -7, 501.5, 493}
	cs := 2.5
	for _, m := range []Extent{
		{3.2, 4.1, 17.9, 33.3},
		{-40.7, -12.25, -1.1, 0.3},
		{100, 100, 100, 100},
		{499.9, 480.01, 620.4, 611.6},
	} {
		got, err := AlignedExtent(m, ref, cs)
		require.NoError(t, err)
		assert.True(t, got.Covers(m), "%v does not cover %v", got, m)

		phase := func(a, b float64) float64 {
			q := (a - b) / cs
			return math.Abs(q - math.Round(q))
		}
		assert.Less(t, phase(got.Xmin, ref.Xmin), 1e-9)
		assert.Less(t, phase(got.Ymin, ref.Ymin), 1e-9)
		assert.Less(t, phase(got.Xmax, ref.Xmax), 1e-9)
		assert.Less(t, phase(got.Ymax, ref.Ymax), 1e-9)
		assert.Less(t, got.Xmin-m.Xmin, 1e-9)
		assert.Less(t, m.Xmin-got.Xmin, cs)
	}
}

func TestAlignedExtent_Errors(t *testing.T) {
	ok := Extent{0, 0, 10, 10}
	cases := []struct {
		name      string
		mask, ref Extent
		cs        float64
	}{
		{"ZeroCellSize", ok, ok, 0},
		{"NegativeCellSize", ok, ok, -5},
		{"NaNCellSize", ok, ok, math.NaN()},
		{"InfCellSize", ok, ok, math.Inf(1)},
		{"DegenerateMask", Extent{10, 0, 0, 10}, ok, 1},
		{"NaNMask", Extent{math.NaN(), 0, 10, 10}, ok, 1},
		{"DegenerateRef", ok, Extent{0, 10, 10, 0}, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := AlignedExtent(tc.mask, tc.ref, tc.cs)
			assert.ErrorIs(t, err, ErrInvalidExtent)
		})
	}
}

func TestExtent(t *testing.T) {
	e := Extent{0, 0, 30, 20}
	assert.Equal(t, 30., e.Width())
	assert.Equal(t, 20., e.Height())
	assert.True(t, e.Contains(0, 0))
	assert.True(t, e.Contains(30, 20))
	assert.False(t, e.Contains(30.1, 5))
	assert.True(t, e.Covers(Extent{1, 1, 29, 19}))
	assert.False(t, e.Covers(Extent{-1, 1, 29, 19}))
}
