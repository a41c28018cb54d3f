package fdrtrace

import (
	"errors"

	"github.com/maseology/fdrtrace/grid"
)

var (
	// ErrActivation indicates the flow direction raster or an input geometry could not be opened.
	ErrActivation = grid.ErrActivation
	// ErrInvalidExtent indicates a non-positive cell size or degenerate extent.
	ErrInvalidExtent = grid.ErrInvalidExtent
	// ErrSourceUnavailable indicates the first cell lookup could not be performed at all.
	ErrSourceUnavailable = errors.New("fdrtrace: flow direction source unavailable")
	// ErrNotPolygonal indicates a mask geometry that is not a polygon or multipolygon.
	ErrNotPolygonal = errors.New("fdrtrace: mask geometry must be polygonal")
)
