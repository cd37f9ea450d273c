package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"log/slog"

	"github.com/icco/launchdash/lib/dataset"
	"gorm.io/gorm"
)

// Health represents the health check response structure.
// It includes the overall status, timestamp, dataset and database health information.
type Health struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Dataset   struct {
		Status     string  `json:"status"`
		Records    int     `json:"records"`
		MinPayload float64 `json:"min_payload_kg"`
		MaxPayload float64 `json:"max_payload_kg"`
	} `json:"dataset"`
	DB *DBHealth `json:"db,omitempty"`
}

// DBHealth is reported only when the dataset is backed by a database.
type DBHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Check returns an HTTP handler reporting on the loaded dataset and, when the
// dataset came from SQLite, the database connection. db may be nil.
func Check(ds *dataset.Dataset, db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		health := Health{
			Status:    "ok",
			Timestamp: time.Now(),
		}

		if ds == nil {
			health.Status = "degraded"
			health.Dataset.Status = "missing"
			writeHealth(w, health, http.StatusServiceUnavailable)
			return
		}
		health.Dataset.Status = "ok"
		health.Dataset.Records = ds.Len()
		health.Dataset.MinPayload, health.Dataset.MaxPayload = ds.PayloadBounds()

		if db == nil {
			writeHealth(w, health, http.StatusOK)
			return
		}

		health.DB = &DBHealth{}

		sqlDB, err := db.DB()
		if err != nil {
			health.Status = "degraded"
			health.DB.Status = "error"
			health.DB.Message = "Failed to get database connection"
			writeHealth(w, health, http.StatusServiceUnavailable)
			return
		}

		if err := sqlDB.PingContext(ctx); err != nil {
			health.Status = "degraded"
			health.DB.Status = "error"
			health.DB.Message = "Database ping failed"
			writeHealth(w, health, http.StatusServiceUnavailable)
			return
		}

		health.DB.Status = "ok"
		writeHealth(w, health, http.StatusOK)
	}
}

// writeHealth writes the health check response to the HTTP response writer.
func writeHealth(w http.ResponseWriter, health Health, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(health); err != nil {
		slog.Error("Failed to encode health response", slog.Any("error", err))
	}
}
