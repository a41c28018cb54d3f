package service

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/maseology/fdrtrace"
	"github.com/maseology/fdrtrace/grid"
	"github.com/maseology/mmaths"
)

// CodeCount is the number of snapshot cells holding a flow direction code.
type CodeCount struct {
	Code, Count int
}

// CheckFiles names the rasters written by Check.
type CheckFiles struct {
	Snapshot string      // flow direction codes over the traced extent
	Trace    string      // visit order of every cell looked up, -9999 elsewhere
	Codes    []CodeCount // code frequencies of the snapshot, most frequent first
	Ncells   int
}

// Check runs req and writes check rasters of the snapshot and the walked cells to
// dir, for inspection in a GIS alongside the trace.
func (s *Service) Check(ctx context.Context, req Request, dir string) (*CheckFiles, error) {
	diag := fdrtrace.NewDiagnostics(s.log)
	tr, err := s.run(ctx, req, diag)
	if err != nil {
		return nil, err
	}

	snap, err := tr.raster.Snapshot(tr.res.Extent)
	if err != nil {
		return nil, fmt.Errorf("service.Check: %w", err)
	}
	gd := snap.Definition()

	cf := &CheckFiles{
		Snapshot: filepath.Join(dir, "fdr.snapshot.bil"),
		Trace:    filepath.Join(dir, "fdr.trace.bil"),
		Ncells:   gd.Ncells(),
	}
	a := snap.Values()
	if err := grid.WriteBIL(cf.Snapshot, gd, a); err != nil {
		return nil, fmt.Errorf("service.Check: %w", err)
	}

	ord := gd.NullInt32(-9999)
	for i, rc := range tr.res.Cells {
		if c := grid.CellID(gd, rc[0], rc[1]); c >= 0 {
			ord[c] = int32(i)
		}
	}
	if err := grid.WriteBIL(cf.Trace, gd, ord); err != nil {
		return nil, fmt.Errorf("service.Check: %w", err)
	}

	m := make(map[int]int)
	for _, v := range a {
		m[int(v)]++
	}
	k, v := mmaths.SortMapInt(m)
	for i := len(k) - 1; i >= 0; i-- {
		cf.Codes = append(cf.Codes, CodeCount{Code: k[i], Count: v[i]})
	}

	s.log.Info("check rasters written", "snapshot", cf.Snapshot, "trace", cf.Trace, "codes", len(m))
	return cf, nil
}
