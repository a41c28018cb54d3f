// Package service runs trace requests end to end: it opens the configured flow
// direction raster, reads the GeoJSON inputs, reprojects them to the raster, traces
// and returns the result envelope printed by the command line tool.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/proj"
	"github.com/maseology/fdrtrace"
	"github.com/maseology/fdrtrace/config"
	"github.com/maseology/fdrtrace/grid"
	"github.com/maseology/fdrtrace/internal/logging"
	"github.com/maseology/fdrtrace/vector"
)

var (
	// ErrTraceFailed is returned when a trace produced no points.
	ErrTraceFailed = errors.New("service: trace failed")
	// ErrStartPoint indicates a start geometry that is not a point.
	ErrStartPoint = errors.New("service: start geometry must be a point")
)

// Request is one trace invocation. StartPoint and Mask are GeoJSON (Feature,
// FeatureCollection or geometry); Mask may be empty. OutSRID, when zero, falls back
// to the configured default and applies to inputs that carry no crs member.
type Request struct {
	StartPoint json.RawMessage
	Mask       json.RawMessage
	OutSRID    int
}

// ErrorBody carries the diagnostic messages of a failed request.
type ErrorBody struct {
	Message string `json:"message"`
}

// Results is the JSON envelope returned for a request.
type Results struct {
	Trace   *vector.Geometry `json:"trace,omitempty"`
	Message string           `json:"Message,omitempty"`
	Error   *ErrorBody       `json:"error,omitempty"`
}

// Service holds the configuration and the flow direction raster shared by traces.
// It is safe for concurrent use.
type Service struct {
	cfg *config.Config
	log *slog.Logger
	srs *vector.Registry

	mu     sync.Mutex
	raster *grid.Raster
}

// New returns a service for cfg; l may be nil. The raster is opened on first use.
func New(cfg *config.Config, l *slog.Logger) *Service {
	if l == nil {
		l = logging.NewNop()
	}
	return &Service{cfg: cfg, log: l, srs: vector.NewRegistry(cfg.SRS)}
}

// Raster opens the configured flow direction raster once and returns it.
func (s *Service) Raster() (*grid.Raster, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.raster != nil {
		return s.raster, nil
	}
	r, err := grid.Open(s.cfg.FDR)
	if err != nil {
		return nil, fmt.Errorf("Flow direction could not be activated: %w", err)
	}
	s.raster = r
	return r, nil
}

// Execute runs req and never fails: errors are reported in Results.Error.
func (s *Service) Execute(ctx context.Context, req Request) Results {
	t0 := time.Now()
	diag := fdrtrace.NewDiagnostics(s.log)
	diag.Info("Start routine")

	tr, err := s.run(ctx, req, diag)
	if err == nil {
		var g *vector.Geometry
		if g, err = vector.Encode(tr.line); err == nil {
			diag.Info(fmt.Sprintf("Finished.  Total time elapsed: %.2f minutes", time.Since(t0).Minutes()))
			return Results{Trace: g, Message: diag.Join()}
		}
	}
	diag.Error("Error executing trace", "error", err)
	return Results{Error: &ErrorBody{Message: diag.Join()}}
}

type traced struct {
	res    *fdrtrace.Result
	raster *grid.Raster
	line   geom.Geom // in the output spatial reference
}

func (s *Service) run(ctx context.Context, req Request, diag *fdrtrace.Diagnostics) (*traced, error) {
	outSRID := req.OutSRID
	if outSRID == 0 {
		outSRID = s.cfg.OutSRID
	}

	r, err := s.Raster()
	if err != nil {
		return nil, err
	}
	rsr, err := s.rasterSRS(r)
	if err != nil {
		return nil, err
	}

	g, err := s.readInput(req.StartPoint, outSRID, rsr)
	if err != nil {
		return nil, fmt.Errorf("start point: %w", err)
	}
	pt, ok := g.(geom.Point)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", ErrStartPoint, g)
	}

	var mask fdrtrace.Mask
	if len(req.Mask) > 0 && string(req.Mask) != "null" {
		mg, err := s.readInput(req.Mask, outSRID, rsr)
		if err != nil {
			return nil, fmt.Errorf("mask: %w", err)
		}
		pm, err := fdrtrace.NewPolygonMask(mg)
		if err != nil {
			return nil, fmt.Errorf("mask: %w", err)
		}
		mask = pm
	}

	res, err := fdrtrace.Trace(ctx, r, pt, mask, fdrtrace.Options{
		MaxSteps:       s.cfg.MaxSteps,
		StopOnMaskExit: s.cfg.StopOnMaskExit,
	}, diag)
	if err != nil {
		return nil, err
	}
	if res.Empty() {
		return nil, fmt.Errorf("%w: %s", ErrTraceFailed, res.State)
	}

	var osr *proj.SR
	if rsr != nil {
		if osr, err = s.srs.SRS(outSRID); err != nil {
			return nil, fmt.Errorf("output: %w", err)
		}
	}
	line, err := vector.Reproject(res.Line(), rsr, osr)
	if err != nil {
		return nil, err
	}
	return &traced{res: res, raster: r, line: line}, nil
}

// readInput decodes a GeoJSON input and reprojects it to the raster reference.
// Inputs without a crs member are taken to be in defSRID.
func (s *Service) readInput(b []byte, defSRID int, rsr *proj.SR) (geom.Geom, error) {
	if len(b) == 0 {
		return nil, vector.ErrNoGeometry
	}
	g, code, err := vector.ReadFeature(b)
	if err != nil {
		return nil, err
	}
	if rsr == nil {
		return g, nil
	}
	if code == 0 {
		code = defSRID
	}
	sr, err := s.srs.SRS(code)
	if err != nil {
		return nil, err
	}
	return vector.Reproject(g, sr, rsr)
}

// rasterSRS resolves the raster's spatial reference: the configured proj4 string,
// then the configured EPSG code, then the raster's .prj sidecar. nil means inputs
// are taken to be in the raster's reference already.
func (s *Service) rasterSRS(r *grid.Raster) (*proj.SR, error) {
	switch {
	case s.cfg.Projection != "":
		return vector.Parse(s.cfg.Projection)
	case s.cfg.ProjectionEPSG > 0:
		return s.srs.SRS(s.cfg.ProjectionEPSG)
	case r.SpatialReference() != "":
		return vector.Parse(r.SpatialReference())
	}
	return nil, nil
}
