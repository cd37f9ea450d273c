package validation

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/icco/launchdash/lib/figures"
)

// Query parameter names shared by the figure and chart endpoints.
const (
	ParamSite = "site"
	ParamLow  = "low"
	ParamHigh = "high"
)

// SiteParam returns the site query parameter as sent, defaulting to all sites
// when it is absent or empty.
func SiteParam(q url.Values) string {
	site := q.Get(ParamSite)
	if site == "" {
		return figures.AllSites
	}
	return site
}

// PayloadRangeParams reads the low and high query parameters. A missing bound
// takes its value from fallback; a bound that is not a finite number is an error.
func PayloadRangeParams(q url.Values, fallback figures.PayloadRange) (figures.PayloadRange, error) {
	rng := fallback

	low, err := floatParam(q, ParamLow)
	if err != nil {
		return rng, err
	}
	if low != nil {
		rng.Low = *low
	}

	high, err := floatParam(q, ParamHigh)
	if err != nil {
		return rng, err
	}
	if high != nil {
		rng.High = *high
	}

	return rng, nil
}

func floatParam(q url.Values, name string) (*float64, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("invalid %s: %q is not a number", name, raw)
	}
	return &v, nil
}

// WriteError writes a validation error response to the HTTP response writer.
// It takes a response writer, error message, and HTTP status code.
func WriteError(w http.ResponseWriter, err error, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"error": err.Error(),
	}); err != nil {
		slog.Error("Failed to encode error response", slog.Any("error", err))
	}
}
