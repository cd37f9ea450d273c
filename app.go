package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/icco/launchdash/handlers"
	"github.com/icco/launchdash/lib/config"
	"github.com/icco/launchdash/lib/dataset"
	"github.com/icco/launchdash/lib/db"
	"github.com/icco/launchdash/lib/health"
	"github.com/icco/launchdash/lib/layout"
	"github.com/icco/launchdash/lib/render"
	"gorm.io/gorm"
)

// App holds the read-only dataset and everything the HTTP routes need.
type App struct {
	cfg    *config.Config
	logger *slog.Logger
	ds     *dataset.Dataset
	db     *gorm.DB // nil unless the dataset came from SQLite
	layout layout.Layout
	router *chi.Mux
}

// NewApp loads the dataset once and wires the routes around it.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	ds, gormDB, err := loadDataset(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	lo, hi := ds.PayloadBounds()
	app := &App{
		cfg:    cfg,
		logger: logger,
		ds:     ds,
		db:     gormDB,
		layout: layout.Build(cfg.Dashboard, lo, hi),
		router: chi.NewRouter(),
	}

	app.setupRoutes()
	return app, nil
}

func (a *App) setupRoutes() {
	chartOpts := render.Options{
		Width:  a.cfg.Dashboard.Chart.Width,
		Height: a.cfg.Dashboard.Chart.Height,
	}

	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.RealIP)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)

	a.router.Get("/", handlers.HandleDashboard(a.layout))
	a.router.Get("/healthz", health.Check(a.ds, a.db))

	a.router.Route("/api", func(r chi.Router) {
		r.Get("/layout", handlers.HandleLayout(a.layout))
		r.Get("/stats", handlers.HandleStats(a.ds))
		r.Get("/figures/pie", handlers.HandlePieFigure(a.ds))
		r.Get("/figures/scatter", handlers.HandleScatterFigure(a.ds))
		r.Post("/update", handlers.HandleUpdate(a.ds))
	})

	a.router.Get("/charts/pie.png", handlers.HandlePieChart(a.ds, chartOpts))
	a.router.Get("/charts/scatter.png", handlers.HandleScatterChart(a.ds, chartOpts))

	a.router.NotFound(handlers.HandleNotFound)
}

// Close releases the database connection, if any.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return db.Close(a.db)
}

// loadDataset reads launch records from the configured source. The returned
// *gorm.DB is nil for the CSV source.
func loadDataset(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*dataset.Dataset, *gorm.DB, error) {
	switch cfg.Data.Source {
	case config.SourceSQLite:
		gormDB, err := db.Open(ctx, cfg.Data.DBPath, logger)
		if err != nil {
			return nil, nil, err
		}
		records, err := db.LoadRecords(ctx, gormDB)
		if err != nil {
			_ = db.Close(gormDB)
			return nil, nil, err
		}
		if len(records) == 0 {
			_ = db.Close(gormDB)
			return nil, nil, fmt.Errorf("database %s holds no launch records; run launchdash import first", cfg.Data.DBPath)
		}
		logger.Info("Loaded launch records from database",
			slog.String("path", cfg.Data.DBPath),
			slog.Int("records", len(records)))
		return dataset.New(records), gormDB, nil

	default:
		ds, err := dataset.Load(ctx, csvSource(cfg))
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Loaded launch records from CSV",
			slog.String("path", cfg.Data.CSVPath),
			slog.String("url", cfg.Data.URL),
			slog.Int("records", ds.Len()))
		return ds, nil, nil
	}
}

func csvSource(cfg *config.Config) dataset.Source {
	return dataset.Source{FilePath: cfg.Data.CSVPath, URL: cfg.Data.URL}
}
