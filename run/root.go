package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/maseology/fdrtrace/config"
	"github.com/maseology/fdrtrace/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fdrtrace",
	Short: "Trace upstream flow paths over a D8 flow direction raster",
	Long: `fdrtrace walks upstream from a start point, cell by cell, stepping to the
neighbour named by each cell's D8 code (1 east, clockwise to 128 north-east; the
raster codes the neighbour draining into the cell). It stops at a sink, at the
raster edge or on leaving the mask, and returns the path as GeoJSON.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "config.yaml", "Configuration file (YAML or JSON)")
	rootCmd.PersistentFlags().String("fdr", "", "Flow direction raster; overrides the configuration")
}

// setup loads the configuration named by the command's flags and opens the logger.
// The returned closer must be closed when the command completes.
func setup(cmd *cobra.Command) (*config.Config, *slog.Logger, io.Closer, error) {
	fp, _ := cmd.Flags().GetString("config")
	cfg := config.Default()
	if _, err := os.Stat(fp); err == nil {
		if cfg, err = config.Load(fp); err != nil {
			return nil, nil, nil, err
		}
	} else if cmd.Flags().Changed("config") {
		return nil, nil, nil, fmt.Errorf("failed to read config: %w", err)
	}
	if fdr, _ := cmd.Flags().GetString("fdr"); fdr != "" {
		cfg.FDR = fdr
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, err
	}

	lvl := logging.ParseLevel(cfg.LogLevel)
	if cfg.LogFile {
		l, c, err := logging.NewFile(lvl, cfg.TempDir(), "fdrtrace.log")
		if err != nil {
			return nil, nil, nil, err
		}
		return cfg, l, c, nil
	}
	return cfg, logging.New(lvl), io.NopCloser(nil), nil
}
