package main

import (
	"log/slog"

	"github.com/icco/launchdash/lib/config"
	"github.com/icco/launchdash/lib/dataset"
	"github.com/icco/launchdash/lib/db"
	"github.com/icco/launchdash/lib/layout"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Log an overview of the configured dataset and flag data problems",
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

		inspect(ds, cfg.Dashboard, logger)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

// inspectReport collects what inspect found so callers can act on it.
type inspectReport struct {
	Records         int
	EmptySites      int
	EmptyCategories int
	BadClasses      int
	NegativePayload int
	MissingSites    []string // configured in the dropdown but absent from the data
	ExtraSites      []string // present in the data but not offered in the dropdown
}

// Healthy reports whether the dataset can back the dashboard as configured.
func (r inspectReport) Healthy() bool {
	return r.Records > 0 &&
		r.EmptySites == 0 &&
		r.BadClasses == 0 &&
		r.NegativePayload == 0 &&
		len(r.MissingSites) == 0
}

func inspect(ds *dataset.Dataset, dash config.DashboardConfig, logger *slog.Logger) inspectReport {
	report := inspectReport{Records: ds.Len()}
	stats := dataset.Summarize(ds)

	logger.Info("=== DATASET OVERVIEW ===")
	logger.Info("Launch records",
		slog.Int("total", stats.TotalLaunches),
		slog.Int("successes", stats.Successes),
		slog.Int("failures", stats.Failures),
		slog.Float64("min_payload_kg", stats.MinPayload),
		slog.Float64("max_payload_kg", stats.MaxPayload))

	logger.Info("=== LAUNCH SITES ===")
	for _, s := range stats.Sites {
		logger.Info("Launch site",
			slog.String("site", s.Site),
			slog.Int("launches", s.Launches),
			slog.Int("successes", s.Successes),
			slog.Float64("success_rate", s.SuccessRate))
	}

	logger.Info("=== BOOSTER CATEGORIES ===")
	for _, c := range stats.BoosterCategories {
		logger.Info("Booster category", slog.String("category", c.Category), slog.Int("count", c.Count))
	}

	logger.Info("=== DATA VALIDATION ===")
	for _, rec := range ds.Records() {
		if rec.LaunchSite == "" {
			report.EmptySites++
		}
		if rec.BoosterVersionCategory == "" {
			report.EmptyCategories++
		}
		if rec.Class != 0 && rec.Class != 1 {
			report.BadClasses++
		}
		if rec.PayloadMassKg < 0 {
			report.NegativePayload++
		}
	}
	logger.Info("Records with empty launch site", slog.Int("count", report.EmptySites))
	logger.Info("Records with empty booster category", slog.Int("count", report.EmptyCategories))
	logger.Info("Records with class other than 0 or 1", slog.Int("count", report.BadClasses))
	logger.Info("Records with negative payload", slog.Int("count", report.NegativePayload))

	present := make(map[string]bool)
	for _, site := range ds.Sites() {
		present[site] = true
	}
	for _, site := range dash.Sites {
		if !present[site] {
			report.MissingSites = append(report.MissingSites, site)
		}
	}
	l := layout.Build(dash, stats.MinPayload, stats.MaxPayload)
	for _, site := range ds.Sites() {
		if !l.HasSite(site) {
			report.ExtraSites = append(report.ExtraSites, site)
		}
	}

	logger.Info("=== DIAGNOSIS ===")
	switch {
	case report.Records == 0:
		logger.Info("ISSUE: The dataset holds no launch records")
		logger.Info("SOLUTION: Check data.csv_path or run launchdash import")
	case len(report.MissingSites) > 0:
		logger.Info("ISSUE: Dropdown sites have no launches and will show empty charts",
			slog.Any("sites", report.MissingSites))
		logger.Info("SOLUTION: Fix dashboard.sites in the config file")
	case !report.Healthy():
		logger.Info("ISSUE: Some records carry invalid values and may skew the charts")
	default:
		logger.Info("SUCCESS: The dataset matches the dashboard configuration")
	}
	if len(report.ExtraSites) > 0 {
		logger.Info("Launch sites only reachable through All Sites", slog.Any("sites", report.ExtraSites))
	}

	return report
}
