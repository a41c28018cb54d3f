package grid

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/maseology/mmio"
)

// ReadASC loads an ESRI ASCII grid of flow direction codes. Anisotropic cells
// (dx/dy header) are averaged to a single cell size.
func ReadASC(fp string) (*Raster, error) {
	if _, ok := mmio.FileExists(fp); !ok {
		return nil, fmt.Errorf("%w: %s not found", ErrActivation, fp)
	}
	lns, err := mmio.ReadTextLines(fp)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrActivation, err)
	}
	r, err := parseASC(lns)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrActivation, fp, err)
	}
	r.Projection = readPRJ(fp)
	return r, nil
}

func parseASC(lns []string) (*Raster, error) {
	hdr := make(map[string]float64, 8)
	k := 0
	for ; k < len(lns); k++ {
		f := strings.Fields(lns[k])
		if len(f) == 0 {
			continue
		}
		if _, err := strconv.ParseFloat(f[0], 64); err == nil {
			break // first data row
		}
		if len(f) != 2 {
			return nil, fmt.Errorf("malformed header line %q", lns[k])
		}
		v, err := strconv.ParseFloat(f[1], 64)
		if err != nil {
			return nil, fmt.Errorf("header %s: %v", f[0], err)
		}
		hdr[strings.ToLower(f[0])] = v
	}

	nc, okc := hdr["ncols"]
	nr, okr := hdr["nrows"]
	if !okc || !okr {
		return nil, fmt.Errorf("missing ncols/nrows")
	}
	cs, ok := hdr["cellsize"]
	if !ok {
		dx, okx := hdr["dx"]
		dy, oky := hdr["dy"]
		if !okx || !oky {
			return nil, fmt.Errorf("missing cellsize")
		}
		cs = (dx + dy) / 2.
	}

	nrow, ncol := int(nr), int(nc)
	var oe, on float64
	switch {
	case has(hdr, "xllcorner"):
		oe = hdr["xllcorner"]
	case has(hdr, "xllcenter"):
		oe = hdr["xllcenter"] - cs/2.
	default:
		return nil, fmt.Errorf("missing xllcorner/xllcenter")
	}
	switch {
	case has(hdr, "yllcorner"):
		on = hdr["yllcorner"] + float64(nrow)*cs
	case has(hdr, "yllcenter"):
		on = hdr["yllcenter"] - cs/2. + float64(nrow)*cs
	default:
		return nil, fmt.Errorf("missing yllcorner/yllcenter")
	}
	nodata := int32(-9999)
	if v, ok := hdr["nodata_value"]; ok {
		nodata = int32(v)
	}
	if nrow <= 0 || ncol <= 0 || !(cs > 0.) {
		return nil, fmt.Errorf("invalid grid %dx%d at cell size %v", nrow, ncol, cs)
	}

	codes := make([]int32, 0, nrow*ncol)
	for ; k < len(lns); k++ {
		for _, s := range strings.Fields(lns[k]) {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("value %q: %v", s, err)
			}
			codes = append(codes, int32(v))
		}
	}
	return NewRaster(NewDefinition(oe, on, nrow, ncol, cs), codes, nodata)
}

func has(m map[string]float64, k string) bool {
	_, ok := m[k]
	return ok
}
