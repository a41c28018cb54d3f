// Package vector reads GeoJSON features, reprojects geometries and encodes
// results as GeoJSON geometry objects.
package vector

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/geojson"
)

var (
	// ErrNoFeatures indicates an empty FeatureCollection.
	ErrNoFeatures = errors.New("vector: feature collection has no features")
	// ErrNoGeometry indicates a feature with a null geometry.
	ErrNoGeometry = errors.New("vector: feature has no geometry")
)

type object struct {
	Type     string            `json:"type"`
	Geometry json.RawMessage   `json:"geometry"`
	Features []json.RawMessage `json:"features"`
	CRS      *crsObject        `json:"crs"`
}

type crsObject struct {
	Type       string `json:"type"`
	Properties struct {
		Name string `json:"name"`
	} `json:"properties"`
}

// ReadFeature returns the geometry of a GeoJSON Feature, of the first feature of a
// FeatureCollection, or of a bare geometry object, along with the EPSG code of its
// "crs" member (0 when absent).
func ReadFeature(b []byte) (geom.Geom, int, error) {
	var o object
	if err := json.Unmarshal(b, &o); err != nil {
		return nil, 0, fmt.Errorf("vector: %v", err)
	}
	code, err := o.epsg()
	if err != nil {
		return nil, 0, err
	}

	switch strings.ToLower(o.Type) {
	case "featurecollection":
		if len(o.Features) == 0 {
			return nil, 0, ErrNoFeatures
		}
		g, fc, err := ReadFeature(o.Features[0])
		if fc != 0 {
			code = fc
		}
		return g, code, err
	case "feature":
		if len(o.Geometry) == 0 || string(o.Geometry) == "null" {
			return nil, 0, ErrNoGeometry
		}
		g, err := geojson.Decode(o.Geometry)
		if err != nil {
			return nil, 0, fmt.Errorf("vector: %v", err)
		}
		return g, code, nil
	case "":
		return nil, 0, fmt.Errorf("vector: missing GeoJSON type")
	default:
		g, err := geojson.Decode(b)
		if err != nil {
			return nil, 0, fmt.Errorf("vector: %v", err)
		}
		return g, code, nil
	}
}

func (o *object) epsg() (int, error) {
	if o.CRS == nil || o.CRS.Properties.Name == "" {
		return 0, nil
	}
	return EPSGCode(o.CRS.Properties.Name)
}

// EPSGCode parses a named CRS such as "EPSG:4326", "urn:ogc:def:crs:EPSG::26917"
// or "urn:ogc:def:crs:OGC:1.3:CRS84".
func EPSGCode(name string) (int, error) {
	n := strings.ToUpper(strings.TrimSpace(name))
	if strings.HasSuffix(n, "CRS84") {
		return 4326, nil
	}
	i := strings.LastIndex(n, "EPSG")
	if i < 0 {
		return 0, fmt.Errorf("vector: unrecognised crs %q", name)
	}
	s := strings.TrimLeft(n[i+4:], ":")
	if j := strings.LastIndex(s, ":"); j >= 0 { // urn version segment
		s = s[j+1:]
	}
	c, err := strconv.Atoi(s)
	if err != nil || c <= 0 {
		return 0, fmt.Errorf("vector: unrecognised crs %q", name)
	}
	return c, nil
}
