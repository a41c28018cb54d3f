package grid

import (
	"fmt"

	hgrid "github.com/maseology/goHydro/grid"
)

// Sentinel is stored for any snapshot cell lying outside the data region of the
// source raster, and returned for lookups outside the snapshot.
const Sentinel int32 = 9999

// Snapshot is a dense, read-only block of flow direction codes covering an Extent.
// Row 0 is the northern-most row.
type Snapshot struct {
	Extent     Extent
	CellSize   float64
	Nrow, Ncol int
	a          []int32
}

// NewSnapshot copies values (indexed [row][col]) into a snapshot over e.
func NewSnapshot(e Extent, cs float64, values [][]int32) (*Snapshot, error) {
	if !(cs > 0) || !e.Valid() {
		return nil, fmt.Errorf("%w: snapshot %v at cell size %v", ErrInvalidExtent, e, cs)
	}
	nr := len(values)
	nc := 0
	if nr > 0 {
		nc = len(values[0])
	}
	a := make([]int32, 0, nr*nc)
	for i, r := range values {
		if len(r) != nc {
			return nil, fmt.Errorf("%w: row %d has %d columns, expected %d", ErrInvalidExtent, i, len(r), nc)
		}
		a = append(a, r...)
	}
	return &Snapshot{Extent: e, CellSize: cs, Nrow: nr, Ncol: nc, a: a}, nil
}

// CellValue returns the code at (row, col), or Sentinel when out of range.
func (s *Snapshot) CellValue(row, col int) int32 {
	if row < 0 || col < 0 || row >= s.Nrow || col >= s.Ncol {
		return Sentinel
	}
	return s.a[row*s.Ncol+col]
}

// Value satisfies lookups that may fail; a resident snapshot never does.
func (s *Snapshot) Value(row, col int) (int32, error) {
	return s.CellValue(row, col), nil
}

// Values returns a row-major copy of the snapshot.
func (s *Snapshot) Values() []int32 {
	o := make([]int32, len(s.a))
	copy(o, s.a)
	return o
}

// Definition returns the grid definition describing the snapshot's layout.
func (s *Snapshot) Definition() *hgrid.Definition {
	return NewDefinition(s.Extent.Xmin, s.Extent.Ymax, s.Nrow, s.Ncol, s.CellSize)
}
