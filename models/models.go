package models

// LaunchRecord is one row of the launch dataset.
type LaunchRecord struct {
	ID                     uint    `gorm:"primaryKey" json:"-"`
	Position               int     `gorm:"index" json:"-"`
	FlightNumber           int     `json:"flight_number,omitempty"`
	LaunchSite             string  `gorm:"index" json:"launch_site"`
	PayloadMassKg          float64 `json:"payload_mass_kg"`
	Class                  int     `json:"class"` // 1 = success, 0 = failure
	BoosterVersion         string  `json:"booster_version,omitempty"`
	BoosterVersionCategory string  `json:"booster_version_category"`
}

// Succeeded reports whether the launch outcome was a success.
func (r LaunchRecord) Succeeded() bool {
	return r.Class == 1
}
