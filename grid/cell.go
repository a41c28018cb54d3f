package grid

import "math"

// WorldToCell returns the (row, col) of the cell holding (x,y) in a grid whose
// upper-left corner is (e.Xmin, e.Ymax). Rows increase southward. Cells are
// half-open, so a point on a grid line belongs to the cell to its right/below.
// Negative indices are returned for points west or north of the extent.
func WorldToCell(x, y float64, e Extent, cs float64) (row, col int) {
	col = int(math.Floor((x - e.Xmin) / cs))
	row = int(math.Floor((e.Ymax - y) / cs))
	return
}

// CellToWorld returns the upper-left corner of cell (row, col).
func CellToWorld(row, col int, e Extent, cs float64) (x, y float64) {
	return e.Xmin + float64(col)*cs, e.Ymax - float64(row)*cs
}

// CellCenter returns the centroid of cell (row, col).
func CellCenter(row, col int, e Extent, cs float64) (x, y float64) {
	x, y = CellToWorld(row, col, e, cs)
	return x + cs/2., y - cs/2.
}

// Dims returns the number of whole cells spanned by e.
func Dims(e Extent, cs float64) (nrow, ncol int) {
	return int(math.Round(e.Height() / cs)), int(math.Round(e.Width() / cs))
}
