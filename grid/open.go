package grid

import (
	"fmt"

	"github.com/maseology/mmio"
)

// Open loads a flow direction raster, selecting the reader by file extension.
func Open(fp string) (*Raster, error) {
	switch ext := mmio.GetExtension(fp); ext {
	case ".bil", ".bin":
		return ReadBIL(fp)
	case ".asc", ".txt":
		return ReadASC(fp)
	default:
		return nil, fmt.Errorf("%w: unsupported raster type %q", ErrActivation, ext)
	}
}
