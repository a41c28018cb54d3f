package grid

import (
	"fmt"

	hgrid "github.com/maseology/goHydro/grid"
)

// Raster is a fully resident flow direction raster.
type Raster struct {
	GD         *hgrid.Definition
	Codes      []int32 // row-major cell id order, len = GD.Ncells()
	NoData     int32
	Projection string // proj4 definition, empty when unknown
}

// NewRaster checks that codes fill gd.
func NewRaster(gd *hgrid.Definition, codes []int32, nodata int32) (*Raster, error) {
	if err := check(gd); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrActivation, err)
	}
	if len(codes) != gd.Ncells() {
		return nil, fmt.Errorf("%w: %d values for a %dx%d grid", ErrActivation, len(codes), gd.Nrow, gd.Ncol)
	}
	return &Raster{GD: gd, Codes: codes, NoData: nodata}, nil
}

// CellSize of the raster.
func (r *Raster) CellSize() float64 { return r.GD.Cwidth }

// Extent of the raster's data region.
func (r *Raster) Extent() Extent { return DefinitionExtent(r.GD) }

// SpatialReference returns the raster's proj4 definition.
func (r *Raster) SpatialReference() string { return r.Projection }

// Snapshot samples the raster over e. Each snapshot cell takes the value of the
// raster cell holding its centre; cells off the raster or at NoData get Sentinel.
func (r *Raster) Snapshot(e Extent) (*Snapshot, error) {
	cs := r.GD.Cwidth
	if !e.Valid() {
		return nil, fmt.Errorf("%w: snapshot extent %v", ErrInvalidExtent, e)
	}
	nr, nc := Dims(e, cs)
	re := r.Extent()
	a := make([]int32, nr*nc)
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			x, y := CellCenter(i, j, e, cs)
			row, col := WorldToCell(x, y, re, cs)
			k := CellID(r.GD, row, col)
			switch {
			case k < 0, r.Codes[k] == r.NoData:
				a[i*nc+j] = Sentinel
			default:
				a[i*nc+j] = r.Codes[k]
			}
		}
	}
	return &Snapshot{Extent: e, CellSize: cs, Nrow: nr, Ncol: nc, a: a}, nil
}
