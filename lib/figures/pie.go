package figures

import (
	"sort"
	"strconv"

	"github.com/icco/launchdash/models"
)

// Pie builds the success pie chart for the selected site.
//
// For AllSites there is one slice per launch site holding that site's number of
// successful launches. For a single site there is one slice per outcome class
// present, holding the number of launches with that class. A site that matches no
// rows produces a figure with no slices.
func Pie(records []models.LaunchRecord, site string) Figure {
	fig := Figure{
		Kind:  KindPie,
		Title: site,
	}

	if site == AllSites {
		fig.Slices = successesBySite(records)
		return fig
	}

	fig.Slices = outcomesForSite(records, site)
	return fig
}

func successesBySite(records []models.LaunchRecord) []Slice {
	index := make(map[string]int)
	var slices []Slice
	for _, rec := range records {
		i, ok := index[rec.LaunchSite]
		if !ok {
			i = len(slices)
			index[rec.LaunchSite] = i
			slices = append(slices, Slice{Label: rec.LaunchSite})
		}
		slices[i].Value += float64(rec.Class)
	}
	return slices
}

func outcomesForSite(records []models.LaunchRecord, site string) []Slice {
	counts := make(map[int]int)
	for _, rec := range records {
		if rec.LaunchSite == site {
			counts[rec.Class]++
		}
	}

	classes := make([]int, 0, len(counts))
	for class := range counts {
		classes = append(classes, class)
	}
	sort.Ints(classes)

	slices := make([]Slice, 0, len(classes))
	for _, class := range classes {
		slices = append(slices, Slice{
			Label: strconv.Itoa(class),
			Value: float64(counts[class]),
		})
	}
	return slices
}
