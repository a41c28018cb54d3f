package main

import (
	"fmt"
	"path/filepath"

	"github.com/maseology/fdrtrace/service"
	"github.com/maseology/mmio"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [outdir]",
	Short: "Write check rasters of a trace",
	Long: `Runs a trace and writes the flow direction snapshot and the visit order of the
walked cells as .bil rasters (with .gdef) for inspection. outdir defaults to
<workingdirectory>/check.`,
	Args: cobra.MaximumNArgs(1),
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

		dir := filepath.Join(cfg.WorkingDirectory, "check")
		if len(args) > 0 {
			dir = args[0]
		}
		mmio.MakeDir(dir)

		tt := mmio.NewTimer()
		cf, err := service.New(cfg, log).Check(cmd.Context(), req, dir)
		if err != nil {
			return err
		}
		tt.Print("check complete")
		w := cmd.OutOrStdout()
		fmt.Fprintln(w, cf.Snapshot)
		fmt.Fprintln(w, cf.Trace)
		fmt.Fprintf(w, "\n%10s %11s\n", "code", "cells")
		for _, c := range cf.Codes {
			fmt.Fprintf(w, "%10d %10.1f%%\n", c.Code, float64(c.Count)*100./float64(cf.Ncells))
		}
		return nil
	},
}

func init() {
	addRequestFlags(checkCmd)
	rootCmd.AddCommand(checkCmd)
}
