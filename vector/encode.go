package vector

import (
	"fmt"

	"github.com/ctessum/geom"
)

// Geometry is a GeoJSON geometry object. Single-part lines and polygons are
// written as LineString/Polygon, multi-part ones as MultiLineString/MultiPolygon.
type Geometry struct {
	Type        string `json:"type"`
	Coordinates any    `json:"coordinates"`
}

// Encode converts g to its GeoJSON form. A nil g encodes to nil.
func Encode(g geom.Geom) (*Geometry, error) {
	switch v := g.(type) {
	case nil:
		return nil, nil
	case geom.Point:
		return &Geometry{"Point", xy(v)}, nil
	case geom.LineString:
		return &Geometry{"LineString", line(v)}, nil
	case geom.MultiLineString:
		if len(v) == 1 {
			return &Geometry{"LineString", line(v[0])}, nil
		}
		parts := make([][][2]float64, len(v))
		for i, l := range v {
			parts[i] = line(l)
		}
		return &Geometry{"MultiLineString", parts}, nil
	case geom.Polygon:
		return &Geometry{"Polygon", rings(v)}, nil
	case geom.MultiPolygon:
		if len(v) == 1 {
			return &Geometry{"Polygon", rings(v[0])}, nil
		}
		parts := make([][][][2]float64, len(v))
		for i, p := range v {
			parts[i] = rings(p)
		}
		return &Geometry{"MultiPolygon", parts}, nil
	}
	return nil, fmt.Errorf("vector: cannot encode %T", g)
}

func xy(p geom.Point) [2]float64 { return [2]float64{p.X, p.Y} }

func line(l []geom.Point) [][2]float64 {
	o := make([][2]float64, len(l))
	for i, p := range l {
		o[i] = xy(p)
	}
	return o
}

func rings(p geom.Polygon) [][][2]float64 {
	o := make([][][2]float64, len(p))
	for i, r := range p {
		o[i] = line(r)
	}
	return o
}
