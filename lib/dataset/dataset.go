package dataset

import (
	"sort"

	"github.com/icco/launchdash/lib/types"
	"github.com/icco/launchdash/models"
)

// Dataset is the ordered, read-only collection of launch records loaded at startup.
// It is never mutated after New returns, so it can be shared between requests
// without locking.
type Dataset struct {
	records    []models.LaunchRecord
	minPayload float64
	maxPayload float64
}

// New builds a Dataset from records and computes the payload bounds.
// The records are copied; later changes to the argument are not observed.
func New(records []models.LaunchRecord) *Dataset {
	ds := &Dataset{records: make([]models.LaunchRecord, len(records))}
	copy(ds.records, records)

	for i, rec := range ds.records {
		ds.records[i].Position = i
		if i == 0 || rec.PayloadMassKg < ds.minPayload {
			ds.minPayload = rec.PayloadMassKg
		}
		if i == 0 || rec.PayloadMassKg > ds.maxPayload {
			ds.maxPayload = rec.PayloadMassKg
		}
	}

	return ds
}

// Records returns the records in load order. Callers must not modify the slice.
func (d *Dataset) Records() []models.LaunchRecord {
	return d.records
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.records)
}

// PayloadBounds returns the smallest and largest payload mass in the dataset.
// Both are zero for an empty dataset.
func (d *Dataset) PayloadBounds() (min, max float64) {
	return d.minPayload, d.maxPayload
}

// Sites returns the distinct launch sites in order of first appearance.
func (d *Dataset) Sites() []string {
	seen := make(map[string]bool)
	var sites []string
	for _, rec := range d.records {
		if !seen[rec.LaunchSite] {
			seen[rec.LaunchSite] = true
			sites = append(sites, rec.LaunchSite)
		}
	}
	return sites
}

// Summarize computes per-site and per-booster-category statistics.
func Summarize(d *Dataset) types.StatsData {
	stats := types.StatsData{
		TotalLaunches: d.Len(),
	}
	stats.MinPayload, stats.MaxPayload = d.PayloadBounds()

	siteIndex := make(map[string]int)
	categoryIndex := make(map[string]int)
	for _, rec := range d.records {
		if rec.Succeeded() {
			stats.Successes++
		} else {
			stats.Failures++
		}

		i, ok := siteIndex[rec.LaunchSite]
		if !ok {
			i = len(stats.Sites)
			siteIndex[rec.LaunchSite] = i
			stats.Sites = append(stats.Sites, types.SiteStats{Site: rec.LaunchSite})
		}
		stats.Sites[i].Launches++
		if rec.Succeeded() {
			stats.Sites[i].Successes++
		}

		j, ok := categoryIndex[rec.BoosterVersionCategory]
		if !ok {
			j = len(stats.BoosterCategories)
			categoryIndex[rec.BoosterVersionCategory] = j
			stats.BoosterCategories = append(stats.BoosterCategories, types.CategoryCount{Category: rec.BoosterVersionCategory})
		}
		stats.BoosterCategories[j].Count++
	}

	for i := range stats.Sites {
		stats.Sites[i].SuccessRate = float64(stats.Sites[i].Successes) / float64(stats.Sites[i].Launches)
	}

	// Most flown categories first; ties keep first-appearance order.
	sort.SliceStable(stats.BoosterCategories, func(a, b int) bool {
		return stats.BoosterCategories[a].Count > stats.BoosterCategories[b].Count
	})

	return stats
}
