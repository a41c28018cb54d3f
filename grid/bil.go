package grid

import (
	"fmt"
	"io"
	"os"
	"strings"

	hgrid "github.com/maseology/goHydro/grid"
	"github.com/maseology/mmio"
)

// ReadBIL loads a single-band, row-major, little-endian .bil raster. The grid
// definition is read from the .gdef of the same name. Element width (uint8,
// int16 or int32) is taken from the file size.
func ReadBIL(fp string) (*Raster, error) {
	gd, err := ReadGDEF(mmio.RemoveExtension(fp) + ".gdef")
	if err != nil {
		return nil, err
	}
	fi, err := os.Stat(fp)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrActivation, err)
	}
	n := gd.Ncells()
	if fi.Size()%int64(n) != 0 {
		return nil, fmt.Errorf("%w: %s: file size %d does not match %d cells", ErrActivation, fp, fi.Size(), n)
	}

	var codes []int32
	nodata := int32(-9999)
	switch fi.Size() / int64(n) {
	case 1:
		b, err := io.ReadAll(mmio.OpenBinary(fp))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrActivation, fp, err)
		}
		codes, nodata = make([]int32, n), 255
		for i, v := range b {
			codes[i] = int32(v)
		}
	case 2:
		var g hgrid.Indx
		g.LoadGDef(gd)
		g.NewShort(fp, false)
		codes = indxCodes(gd, g.Values())
	case 4:
		var g hgrid.Indx
		g.LoadGDef(gd)
		g.New(fp, false)
		codes = indxCodes(gd, g.Values())
	default:
		return nil, fmt.Errorf("%w: %s: %d-byte cells not supported", ErrActivation, fp, fi.Size()/int64(n))
	}

	r, err := NewRaster(gd, codes, nodata)
	if err != nil {
		return nil, err
	}
	r.Projection = readPRJ(fp)
	return r, nil
}

// indxCodes lays out cell id keyed values over gd; missing cells get -9999.
func indxCodes(gd *hgrid.Definition, m map[int]int) []int32 {
	o := gd.NullInt32(-9999)
	for cid, v := range m {
		if cid >= 0 && cid < len(o) {
			o[cid] = int32(v)
		}
	}
	return o
}

// WriteBIL writes an int32 .bil raster and its .gdef.
func WriteBIL(fp string, gd *hgrid.Definition, a []int32) error {
	if len(a) != gd.Ncells() {
		return fmt.Errorf("WriteBIL: %d values for %d cells", len(a), gd.Ncells())
	}
	if err := mmio.WriteBinary(fp, a); err != nil {
		return fmt.Errorf("WriteBIL failed: %v", err)
	}
	if err := gd.SaveAs(mmio.RemoveExtension(fp) + ".gdef"); err != nil {
		return fmt.Errorf("WriteBIL failed: %v", err)
	}
	return nil
}

// readPRJ returns the proj4 string held in the raster's .prj sidecar, if any.
func readPRJ(fp string) string {
	prj := mmio.RemoveExtension(fp) + ".prj"
	if _, ok := mmio.FileExists(prj); !ok {
		return ""
	}
	lns, err := mmio.ReadTextLines(prj)
	if err != nil || len(lns) == 0 {
		return ""
	}
	return strings.TrimSpace(strings.Join(lns, " "))
}
