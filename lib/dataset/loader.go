package dataset

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/icco/launchdash/models"
)

// Column names of the launch CSV.
const (
	ColumnLaunchSite             = "Launch Site"
	ColumnPayloadMass            = "Payload Mass (kg)"
	ColumnClass                  = "class"
	ColumnBoosterVersionCategory = "Booster Version Category"
	ColumnFlightNumber           = "Flight Number"
	ColumnBoosterVersion         = "Booster Version"
)

var requiredColumns = []string{
	ColumnLaunchSite,
	ColumnPayloadMass,
	ColumnClass,
	ColumnBoosterVersionCategory,
}

// Source names where the launch CSV comes from. FilePath wins over URL.
type Source struct {
	FilePath string
	URL      string
}

// Load reads the CSV named by src and returns the parsed Dataset.
func Load(ctx context.Context, src Source) (*Dataset, error) {
	raw, err := readSource(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("failed to load data source: %w", err)
	}

	records, err := ParseCSV(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse launch data: %w", err)
	}

	ds := New(records)
	lo, hi := ds.PayloadBounds()
	slog.Debug("Loaded launch dataset",
		slog.Int("records", ds.Len()),
		slog.Float64("min_payload", lo),
		slog.Float64("max_payload", hi))

	return ds, nil
}

// ParseCSV parses launch records from CSV data with a header row.
// Unknown columns are ignored; a missing required column or an unparseable
// number fails the whole parse.
func ParseCSV(r io.Reader) ([]models.LaunchRecord, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty CSV: missing header row")
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}

	var records []models.LaunchRecord
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", line, err)
		}

		rec, err := parseRow(row, cols)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		rec.Position = len(records)
		records = append(records, rec)
	}

	return records, nil
}

func parseRow(row []string, cols map[string]int) (models.LaunchRecord, error) {
	field := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	payload, err := strconv.ParseFloat(field(ColumnPayloadMass), 64)
	if err != nil {
		return models.LaunchRecord{}, fmt.Errorf("invalid %s: %w", ColumnPayloadMass, err)
	}

	class, err := strconv.ParseFloat(field(ColumnClass), 64)
	if err != nil {
		return models.LaunchRecord{}, fmt.Errorf("invalid %s: %w", ColumnClass, err)
	}

	rec := models.LaunchRecord{
		LaunchSite:             field(ColumnLaunchSite),
		PayloadMassKg:          payload,
		Class:                  int(class),
		BoosterVersion:         field(ColumnBoosterVersion),
		BoosterVersionCategory: field(ColumnBoosterVersionCategory),
	}

	if v := field(ColumnFlightNumber); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return models.LaunchRecord{}, fmt.Errorf("invalid %s: %w", ColumnFlightNumber, err)
		}
		rec.FlightNumber = n
	}

	return rec, nil
}

func readSource(ctx context.Context, src Source) ([]byte, error) {
	switch {
	case src.FilePath != "":
		return os.ReadFile(src.FilePath)
	case src.URL != "":
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to make request: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	default:
		return nil, errors.New("either file or url must be provided")
	}
}
