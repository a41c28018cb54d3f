package service

import (
	"context"
	"encoding/json"
	"math"
	"path/filepath"
	"testing"

	"github.com/maseology/fdrtrace/config"
	"github.com/maseology/fdrtrace/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 10x10 raster over (0,0)-(100,100) draining south into a row of sinks at row 7.
func southRaster(t *testing.T) string {
	t.Helper()
	gd := grid.NewDefinition(0, 100, 10, 10, 10)
	a := make([]int32, gd.Ncells())
	for i := range a {
		if i/gd.Ncol != 7 {
			a[i] = 4
		}
	}
	fp := filepath.Join(t.TempDir(), "fdr.bil")
	require.NoError(t, grid.WriteBIL(fp, gd, a))
	return fp
}

func newService(t *testing.T) *Service {
	cfg := config.Default()
	cfg.FDR = southRaster(t)
	return New(cfg, nil)
}

const startPoint = `{"type":"Feature","properties":{},"geometry":{"type":"Point","coordinates":[15,85]}}`

func TestExecute(t *testing.T) {
	s := newService(t)
	res := s.Execute(context.Background(), Request{StartPoint: json.RawMessage(startPoint)})
	require.Nil(t, res.Error)
	require.NotNil(t, res.Trace)
	assert.Equal(t, "LineString", res.Trace.Type)
	assert.Equal(t, [][2]float64{{15, 85}, {15, 75}, {15, 65}, {15, 55}, {15, 45}, {15, 35}, {15, 25}}, res.Trace.Coordinates)
	assert.Contains(t, res.Message, "Start routine;")
	assert.Contains(t, res.Message, "possible sink hole")
	assert.Contains(t, res.Message, "Finished.")

	b, err := json.Marshal(res)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"trace":{"type":"LineString","coordinates":[[15,85],[15,75]`)
	assert.NotContains(t, string(b), `"error"`)
}

func TestExecute_Mask(t *testing.T) {
	s := newService(t)
	mask := `{"type":"FeatureCollection","features":[{"type":"Feature","properties":{},"geometry":{"type":"Polygon","coordinates":[[[10,40],[40,40],[40,90],[10,90],[10,40]]]}}]}`
	res := s.Execute(context.Background(), Request{
		StartPoint: json.RawMessage(startPoint),
		Mask:       json.RawMessage(mask),
	})
	require.Nil(t, res.Error)
	assert.Equal(t, [][2]float64{{15, 85}, {15, 75}, {15, 65}, {15, 55}, {15, 45}}, res.Trace.Coordinates)
}

func TestExecute_Errors(t *testing.T) {
	cases := []struct {
		name  string
		fdr   string
		start string
		want  string
	}{
		{"no raster", "missing.bil", startPoint, "Flow direction could not be activated"},
		{"not a point", "", `{"type":"LineString","coordinates":[[15,85],[25,85]]}`, "start geometry must be a point"},
		{"outside raster", "", `{"type":"Point","coordinates":[150,150]}`, "trace failed"},
		{"no start", "", ``, "start point"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.FDR = southRaster(t)
			if tc.fdr != "" {
				cfg.FDR = filepath.Join(t.TempDir(), tc.fdr)
			}
			res := New(cfg, nil).Execute(context.Background(), Request{StartPoint: json.RawMessage(tc.start)})
			assert.Nil(t, res.Trace)
			require.NotNil(t, res.Error)
			assert.Contains(t, res.Error.Message, "Start routine;")
			assert.Contains(t, res.Error.Message, tc.want)

			b, err := json.Marshal(res)
			require.NoError(t, err)
			assert.Contains(t, string(b), `{"error":{"message":"Start routine;`)
		})
	}
}

func TestRaster_Cached(t *testing.T) {
	s := newService(t)
	r1, err := s.Raster()
	require.NoError(t, err)
	r2, err := s.Raster()
	require.NoError(t, err)
	assert.Same(t, r1, r2)
}

func TestCheck(t *testing.T) {
	s := newService(t)
	dir := t.TempDir()
	cf, err := s.Check(context.Background(), Request{StartPoint: json.RawMessage(startPoint)}, dir)
	require.NoError(t, err)

	snap, err := grid.ReadBIL(cf.Snapshot)
	require.NoError(t, err)
	assert.Equal(t, 10, snap.GD.Nrow)
	assert.Equal(t, int32(4), snap.Codes[0])
	assert.Equal(t, int32(0), snap.Codes[71])

	tr, err := grid.ReadBIL(cf.Trace)
	require.NoError(t, err)
	for row := 1; row <= 7; row++ {
		assert.Equal(t, int32(row-1), tr.Codes[row*10+1], "row %d", row)
	}
	assert.Equal(t, int32(-9999), tr.Codes[0])

	assert.Equal(t, 100, cf.Ncells)
	counts := make(map[int]int)
	for _, c := range cf.Codes {
		counts[c.Code] = c.Count
	}
	assert.Equal(t, map[int]int{4: 90, 0: 10}, counts)
	assert.Equal(t, int32(-9999), tr.Codes[81])
}

func TestExecute_OutSRID(t *testing.T) {
	cfg := config.Default()
	cfg.FDR = southRaster(t)
	cfg.ProjectionEPSG = 3857
	s := New(cfg, nil)

	start := `{"type":"Feature","properties":{},"geometry":{"type":"Point","coordinates":[15,85]},"crs":{"type":"name","properties":{"name":"EPSG:3857"}}}`
	res := s.Execute(context.Background(), Request{StartPoint: json.RawMessage(start), OutSRID: 4326})
	require.Nil(t, res.Error)
	require.Len(t, res.Trace.Coordinates, 7)

	// metres on the sphere to degrees
	deg := func(m float64) float64 { return m / 6378137. * 180. / math.Pi }
	first, last := res.Trace.Coordinates[0], res.Trace.Coordinates[6]
	assert.InDelta(t, deg(15), first[0], 1e-6)
	assert.InDelta(t, deg(85), first[1], 1e-6)
	assert.InDelta(t, deg(15), last[0], 1e-6)
	assert.InDelta(t, deg(25), last[1], 1e-6)
}
