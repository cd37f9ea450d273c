package figures

import (
	"github.com/icco/launchdash/models"
)

// Scatter builds the payload/outcome scatter chart for the selected site and
// payload range. Points are grouped into one series per booster version category,
// in order of first appearance. Nothing matching yields a figure with no series.
func Scatter(records []models.LaunchRecord, site string, rng PayloadRange) Figure {
	fig := Figure{
		Kind:   KindScatter,
		Title:  site,
		XLabel: ScatterXLabel,
		YLabel: ScatterYLabel,
		Range:  &rng,
	}

	index := make(map[string]int)
	for _, rec := range records {
		if !rng.Contains(rec.PayloadMassKg) {
			continue
		}
		if site != AllSites && rec.LaunchSite != site {
			continue
		}

		i, ok := index[rec.BoosterVersionCategory]
		if !ok {
			i = len(fig.Series)
			index[rec.BoosterVersionCategory] = i
			fig.Series = append(fig.Series, Series{Name: rec.BoosterVersionCategory})
		}
		fig.Series[i].Points = append(fig.Series[i].Points, Point{
			X:    rec.PayloadMassKg,
			Y:    float64(rec.Class),
			Site: rec.LaunchSite,
		})
	}

	return fig
}
