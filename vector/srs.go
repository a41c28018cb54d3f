package vector

import (
	"errors"
	"fmt"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/proj"
)

// ErrUnknownSRS indicates an EPSG code with no known proj4 definition.
var ErrUnknownSRS = errors.New("vector: unknown spatial reference")

var builtin = map[int]string{
	4326:  "+proj=longlat +datum=WGS84 +no_defs",
	4269:  "+proj=longlat +ellps=GRS80 +towgs84=0,0,0,0,0,0,0 +no_defs",
	3857:  "+proj=merc +a=6378137 +b=6378137 +lat_ts=0.0 +lon_0=0.0 +x_0=0.0 +y_0=0 +k=1.0 +units=m +no_defs",
	26917: "+proj=utm +zone=17 +ellps=GRS80 +towgs84=0,0,0,0,0,0,0 +units=m +no_defs",
	26918: "+proj=utm +zone=18 +ellps=GRS80 +towgs84=0,0,0,0,0,0,0 +units=m +no_defs",
}

// Registry maps EPSG codes to proj4 definitions.
type Registry struct {
	defs map[int]string
}

// NewRegistry returns the built-in definitions overlaid with extra.
func NewRegistry(extra map[int]string) *Registry {
	r := &Registry{defs: make(map[int]string, len(builtin)+len(extra))}
	for k, v := range builtin {
		r.defs[k] = v
	}
	for k, v := range extra {
		r.defs[k] = v
	}
	return r
}

// Definition returns the proj4 string of code.
func (r *Registry) Definition(code int) (string, bool) {
	s, ok := r.defs[code]
	return s, ok
}

// SRS returns the parsed spatial reference of code.
func (r *Registry) SRS(code int) (*proj.SR, error) {
	s, ok := r.defs[code]
	if !ok {
		return nil, fmt.Errorf("%w: EPSG:%d", ErrUnknownSRS, code)
	}
	return Parse(s)
}

// Parse a proj4 definition.
func Parse(def string) (*proj.SR, error) {
	sr, err := proj.Parse(def)
	if err != nil {
		return nil, fmt.Errorf("vector: parsing %q: %v", def, err)
	}
	return sr, nil
}

// Reproject transforms g from one spatial reference to another. A nil reference
// on either side leaves g unchanged.
func Reproject(g geom.Geom, from, to *proj.SR) (geom.Geom, error) {
	if from == nil || to == nil || from == to {
		return g, nil
	}
	t, err := from.NewTransform(to)
	if err != nil {
		return nil, fmt.Errorf("vector: %v", err)
	}
	o, err := g.Transform(t)
	if err != nil {
		return nil, fmt.Errorf("vector: reprojecting: %v", err)
	}
	return o, nil
}
