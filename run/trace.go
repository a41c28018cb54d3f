package main

import (
	"encoding/json"
	"fmt"

	"github.com/maseology/fdrtrace/service"
	"github.com/spf13/cobra"
)

const defaultStartPoint = `{"type":"Feature","geometry":{"type":"Point","coordinates":[-84.088548,39.79728106]}}`

var traceCmd = &cobra.Command{
	Use:   "trace",
	Short: "Trace the flow path from a start point",
	Long: `Reads the start point (and optional mask) as GeoJSON, traces the flow path and
prints Results=<json> on stdout. Failures are reported inside the envelope.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := readRequest(cmd)
		if err != nil {
			return err
		}
		cfg, log, c, err := setup(cmd)
		if err != nil {
			return err
		}
		defer c.Close()

		res := service.New(cfg, log).Execute(cmd.Context(), req)
		b, err := json.Marshal(res)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Results=%s\n", b)
		return nil
	},
}

func init() {
	addRequestFlags(traceCmd)
	rootCmd.AddCommand(traceCmd)
}

func addRequestFlags(cmd *cobra.Command) {
	cmd.Flags().String("startpoint", defaultStartPoint, "Start point as a GeoJSON Feature or geometry")
	cmd.Flags().Int("outsrid", 0, "EPSG code of the inputs and the returned trace (default from config)")
	cmd.Flags().String("maskjson", "", "Mask as a GeoJSON Feature or FeatureCollection of polygons")
}

func readRequest(cmd *cobra.Command) (service.Request, error) {
	sp, _ := cmd.Flags().GetString("startpoint")
	srid, _ := cmd.Flags().GetInt("outsrid")
	mask, _ := cmd.Flags().GetString("maskjson")
	if !json.Valid([]byte(sp)) {
		return service.Request{}, fmt.Errorf("startpoint: invalid JSON")
	}
	req := service.Request{StartPoint: json.RawMessage(sp), OutSRID: srid}
	if mask != "" {
		if !json.Valid([]byte(mask)) {
			return service.Request{}, fmt.Errorf("maskjson: invalid JSON")
		}
		req.Mask = json.RawMessage(mask)
	}
	return req, nil
}
