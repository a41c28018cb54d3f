// Package fdrtrace traces upstream flow paths across a D8 flow direction grid.
// At each cell the path steps to the neighbour named by the cell's code (see
// Code.Offset); rasters are expected to code the neighbour draining into the cell.
package fdrtrace

import (
	"context"
	"fmt"

	"github.com/ctessum/geom"
	"github.com/maseology/fdrtrace/grid"
)

// Lookup returns the flow direction code stored at a cell. An error means the
// lookup could not be performed; out-of-range cells return grid.Sentinel instead.
type Lookup interface {
	Value(row, col int) (int32, error)
}

// State of a walk.
type State int

const (
	Walking State = iota
	StoppedSink
	StoppedOutOfRange // left the snapshot, or the mask when StopOnMaskExit is set
	StoppedNoLookup
	StoppedInvalidCode
	StoppedCycle
	StoppedStepLimit
	StoppedCancelled
)

func (s State) String() string {
	switch s {
	case Walking:
		return "walking"
	case StoppedSink:
		return "stopped: sink"
	case StoppedOutOfRange:
		return "stopped: out of mask or range"
	case StoppedNoLookup:
		return "stopped: lookup failed"
	case StoppedInvalidCode:
		return "stopped: invalid flow direction"
	case StoppedCycle:
		return "stopped: cycle"
	case StoppedStepLimit:
		return "stopped: step limit"
	case StoppedCancelled:
		return "stopped: cancelled"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Result of a walk. Path holds the points that fell inside the mask, in traversal
// order; Cells holds every (row, col) looked up, relative to Extent.
type Result struct {
	Path     []geom.Point
	Cells    [][2]int
	State    State
	Steps    int
	Extent   grid.Extent
	CellSize float64
}

// Empty reports whether no point was kept. An empty result is not an error.
func (r *Result) Empty() bool { return r == nil || len(r.Path) == 0 }

// Line returns the path as a line geometry.
func (r *Result) Line() geom.LineString {
	o := make(geom.LineString, len(r.Path))
	copy(o, r.Path)
	return o
}

// Tracer walks a flow direction grid one cell at a time.
type Tracer struct {
	Grid     Lookup
	Extent   grid.Extent // extent of Grid; row 0 is at Extent.Ymax
	CellSize float64
	Mask     Mask // nil: every point within Extent is kept

	// MaxSteps caps the number of cell lookups; 0 means no cap. Revisiting a
	// cell always stops the walk, so a finite grid terminates regardless.
	MaxSteps int
	// StopOnMaskExit ends the walk the first time it leaves the mask after
	// having been inside it, instead of walking on without recording points.
	StopOnMaskExit bool

	Diag *Diagnostics
}

// Walk traces from start until a stop condition is met. Only a failure of the very
// first lookup is an error (ErrSourceUnavailable); every other stop returns the
// points collected so far. Cancelling ctx stops the walk with StoppedCancelled and
// returns the partial result together with ctx's error.
func (t *Tracer) Walk(ctx context.Context, start geom.Point) (*Result, error) {
	if !(t.CellSize > 0) {
		return nil, fmt.Errorf("%w: cell size %v", ErrInvalidExtent, t.CellSize)
	}
	if t.Grid == nil {
		return nil, fmt.Errorf("%w: no grid", ErrSourceUnavailable)
	}

	res := &Result{State: Walking, Extent: t.Extent, CellSize: t.CellSize}
	visited := make(map[[2]int]bool)
	entered := false
	p := start

	for res.State == Walking {
		if err := ctx.Err(); err != nil {
			res.State = StoppedCancelled
			t.Diag.Warn("trace cancelled", "steps", res.Steps)
			return res, err
		}
		if t.MaxSteps > 0 && res.Steps >= t.MaxSteps {
			res.State = StoppedStepLimit
			t.Diag.Warn("trace step limit reached", "steps", res.Steps)
			break
		}

		row, col := grid.WorldToCell(p.X, p.Y, t.Extent, t.CellSize)
		rc := [2]int{row, col}
		if visited[rc] {
			res.State = StoppedCycle
			t.Diag.Warn("flow direction cycle detected", "row", row, "col", col)
			break
		}
		visited[rc] = true

		if t.contains(p) {
			res.Path = append(res.Path, p)
			entered = true
		} else if entered && t.StopOnMaskExit {
			res.State = StoppedOutOfRange
			break
		}

		if row < 0 || col < 0 {
			res.State = StoppedOutOfRange
			break
		}

		v, err := t.Grid.Value(row, col)
		if err != nil {
			if res.Steps == 0 {
				return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
			}
			t.Diag.Error("flow direction lookup failed", "row", row, "col", col, "err", err)
			res.State = StoppedNoLookup
			break
		}
		res.Steps++
		res.Cells = append(res.Cells, rc)

		if v == grid.Sentinel {
			res.State = StoppedOutOfRange
			break
		}
		fd := Code(v)
		drow, dcol, ok := fd.Offset()
		switch {
		case !ok:
			res.State = StoppedInvalidCode
			t.Diag.Warn("invalid flow direction", "code", v, "row", row, "col", col)
		case fd == Sink:
			res.State = StoppedSink
			t.Diag.Info("Flow direction cell = 0, possible sink hole.")
		default:
			p = geom.Point{
				X: p.X + float64(dcol)*t.CellSize,
				Y: p.Y - float64(drow)*t.CellSize,
			}
		}
	}
	return res, nil
}

func (t *Tracer) contains(p geom.Point) bool {
	if t.Mask != nil {
		return t.Mask.Contains(p)
	}
	e := t.Extent
	return p.X >= e.Xmin && p.X < e.Xmax && p.Y > e.Ymin && p.Y <= e.Ymax
}
