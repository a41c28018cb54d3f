package fdrtrace

import (
	"context"
	"fmt"

	"github.com/ctessum/geom"
	"github.com/maseology/fdrtrace/grid"
)

// Source is a flow direction raster that can materialise a snapshot of any extent.
// *grid.Raster satisfies it.
type Source interface {
	CellSize() float64
	Extent() grid.Extent
	Snapshot(e grid.Extent) (*grid.Snapshot, error)
}

// Options tune a trace.
type Options struct {
	MaxSteps       int
	StopOnMaskExit bool
}

// Trace snapshots src over the grid-aligned extent of mask (the whole raster when
// mask is nil) and walks it from start. start and mask must already be in the
// raster's spatial reference.
func Trace(ctx context.Context, src Source, start geom.Point, mask Mask, opts Options, diag *Diagnostics) (*Result, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: no flow direction source", ErrActivation)
	}
	cs := src.CellSize()
	ref := src.Extent()

	me := ref
	if mask != nil {
		b := mask.Bounds()
		if b == nil {
			return nil, fmt.Errorf("%w: mask has no bounds", ErrInvalidExtent)
		}
		me = grid.Extent{Xmin: b.Min.X, Ymin: b.Min.Y, Xmax: b.Max.X, Ymax: b.Max.Y}
	}
	ext, err := grid.AlignedExtent(me, ref, cs)
	if err != nil {
		return nil, err
	}

	snap, err := src.Snapshot(ext)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	diag.Info("flow direction snapshot", "extent", ext.String(), "rows", snap.Nrow, "cols", snap.Ncol, "cellsize", cs)

	t := Tracer{
		Grid:           snap,
		Extent:         ext,
		CellSize:       cs,
		Mask:           mask,
		MaxSteps:       opts.MaxSteps,
		StopOnMaskExit: opts.StopOnMaskExit,
		Diag:           diag,
	}
	res, err := t.Walk(ctx, start)
	if res != nil {
		diag.Info("trace complete", "state", res.State.String(), "steps", res.Steps, "points", len(res.Path))
	}
	return res, err
}
