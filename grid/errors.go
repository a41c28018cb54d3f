package grid

import "errors"

var (
	// ErrInvalidExtent indicates a non-positive cell size or a degenerate extent.
	ErrInvalidExtent = errors.New("grid: invalid extent")
	// ErrActivation indicates a raster source could not be opened or decoded.
	ErrActivation = errors.New("grid: raster could not be activated")
)
