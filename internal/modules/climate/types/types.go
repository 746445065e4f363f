package types

import "time"

// Reading is one indoor/outdoor temperature sample from the readings store.
// Temperatures stay decimal strings end to end; parsing happens at display
// and analysis time so a malformed value degrades a single figure, not the row.
type Reading struct {
	ID               string    `json:"id"`
	Time             time.Time `json:"time"`
	OutdoorTemp      string    `json:"outdoorTemp"`
	IndoorTemp       string    `json:"indoorTemp"`
	TempDifferential string    `json:"tempDifferential,omitempty"`
}
