package types

// SiteStats summarizes the launches from a single launch site.
type SiteStats struct {
	Site        string  `json:"site"`
	Launches    int     `json:"launches"`
	Successes   int     `json:"successes"`
	SuccessRate float64 `json:"success_rate"`
}

// CategoryCount is the number of launches flown by one booster version category.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// StatsData represents statistics about the loaded launch dataset.
type StatsData struct {
	TotalLaunches     int             `json:"total_launches"`
	Successes         int             `json:"successes"`
	Failures          int             `json:"failures"`
	MinPayload        float64         `json:"min_payload_kg"`
	MaxPayload        float64         `json:"max_payload_kg"`
	Sites             []SiteStats     `json:"sites"`
	BoosterCategories []CategoryCount `json:"booster_categories"`
}
