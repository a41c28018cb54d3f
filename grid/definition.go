package grid

import (
	"fmt"

	hgrid "github.com/maseology/goHydro/grid"
	"github.com/maseology/mmio"
)

// ReadGDEF imports a grid definition file (origin easting/northing, rotation, rows,
// cols and a U-prefixed uniform cell size). (Eorig, Norig) is the upper-left corner.
func ReadGDEF(fp string) (*hgrid.Definition, error) {
	if _, ok := mmio.FileExists(fp); !ok {
		return nil, fmt.Errorf("%w: grid definition %s not found", ErrActivation, fp)
	}
	gd, err := hgrid.ReadGDEF(fp, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrActivation, err)
	}
	if err := check(gd); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrActivation, fp, err)
	}
	return gd, nil
}

// NewDefinition returns the definition of an nr by nc grid of cs cells whose
// upper-left corner is (oe, on). Every cell is active.
func NewDefinition(oe, on float64, nr, nc int, cs float64) *hgrid.Definition {
	gd := &hgrid.Definition{Eorig: oe, Norig: on, Nrow: nr, Ncol: nc, Cwidth: cs}
	cids := make([]int, nr*nc)
	for i := range cids {
		cids[i] = i
	}
	gd.ResetActives(cids)
	return gd
}

// DefinitionExtent returns the world extent covered by gd.
func DefinitionExtent(gd *hgrid.Definition) Extent {
	return Extent{
		Xmin: gd.Eorig,
		Ymin: gd.Norig - float64(gd.Nrow)*gd.Cwidth,
		Xmax: gd.Eorig + float64(gd.Ncol)*gd.Cwidth,
		Ymax: gd.Norig,
	}
}

// CellID row-major cell index of gd, -1 if out of range.
func CellID(gd *hgrid.Definition, row, col int) int {
	if row < 0 || col < 0 || row >= gd.Nrow || col >= gd.Ncol {
		return -1
	}
	return row*gd.Ncol + col
}

func check(gd *hgrid.Definition) error {
	switch {
	case gd == nil:
		return fmt.Errorf("no grid definition")
	case gd.Nrow <= 0 || gd.Ncol <= 0:
		return fmt.Errorf("invalid dimensions %dx%d", gd.Nrow, gd.Ncol)
	case !(gd.Cwidth > 0.):
		return fmt.Errorf("invalid cell size %v", gd.Cwidth)
	}
	return nil
}
