package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/icco/launchdash/lib/dataset"
	"github.com/icco/launchdash/lib/db"
	"github.com/icco/launchdash/lib/figures"
	"github.com/icco/launchdash/lib/render"
	"github.com/spf13/cobra"
)

var (
	renderSite string
	renderLow  float64
	renderHigh float64
	renderOut  string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Write the pie and scatter charts for one selection as PNG files",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}

		ds, gormDB, err := loadDataset(cmd.Context(), cfg, logger)
		if err != nil {
			logger.Error("Failed to load dataset", slog.Any("error", err))
			return err
		}
		if gormDB != nil {
			defer func() { _ = db.Close(gormDB) }()
		}

		rng := defaultPayloadRange(ds)
		if cmd.Flags().Changed("low") {
			rng.Low = renderLow
		}
		if cmd.Flags().Changed("high") {
			rng.High = renderHigh
		}

		opts := render.Options{Width: cfg.Dashboard.Chart.Width, Height: cfg.Dashboard.Chart.Height}
		paths, err := renderCharts(ds, renderSite, rng, renderOut, opts)
		if err != nil {
			logger.Error("Failed to render charts", slog.Any("error", err))
			return err
		}

		for _, p := range paths {
			logger.Info("Wrote chart", slog.String("path", p))
		}
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVar(&renderSite, "site", figures.AllSites, "launch site, or ALL")
	renderCmd.Flags().Float64Var(&renderLow, "low", 0, "lower payload bound in kg (defaults to the dataset minimum)")
	renderCmd.Flags().Float64Var(&renderHigh, "high", 0, "upper payload bound in kg (defaults to the dataset maximum)")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", ".", "output directory")
	rootCmd.AddCommand(renderCmd)
}

func defaultPayloadRange(ds *dataset.Dataset) figures.PayloadRange {
	lo, hi := ds.PayloadBounds()
	return figures.PayloadRange{Low: lo, High: hi}
}

// renderCharts writes pie.png and scatter.png for the selection into dir and
// returns the paths written.
func renderCharts(ds *dataset.Dataset, site string, rng figures.PayloadRange, dir string, opts render.Options) ([]string, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	records := ds.Records()
	charts := []struct {
		name string
		fig  figures.Figure
	}{
		{name: "pie.png", fig: figures.Pie(records, site)},
		{name: "scatter.png", fig: figures.Scatter(records, site, rng)},
	}

	paths := make([]string, 0, len(charts))
	for _, c := range charts {
		path := filepath.Join(dir, c.name)
		if err := writeChart(path, c.fig, opts); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeChart(path string, fig figures.Figure, opts render.Options) (err error) {
	// #nosec G304 - path is built from the output directory flag
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	if err := render.PNG(f, fig, opts); err != nil {
		return fmt.Errorf("failed to render %s: %w", path, err)
	}
	return nil
}
