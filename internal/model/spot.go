package model

import "time"

// SpotStatus is the coarse operational state of a parking spot.  It is
// an operational override only: bookability for a concrete time window
// is always derived from the bookings table, never from this flag.
type SpotStatus string

const (
	SpotAvailable   SpotStatus = "available"
	SpotBooked      SpotStatus = "booked"
	SpotMaintenance SpotStatus = "maintenance"
)

// IsValid reports whether s is one of the recognised spot statuses.
func (s SpotStatus) IsValid() bool {
	switch s {
	case SpotAvailable, SpotBooked, SpotMaintenance:
		return true
	}
	return false
}

// SpotType classifies a parking spot for pricing and display.
type SpotType string

const (
	SpotStandard SpotType = "standard"
	SpotPremium  SpotType = "premium"
	SpotReserved SpotType = "reserved"
)

// ParkingSpot is a single physical parking space as stored in the
// `parking_spots` table.
//
// Fields:
//  ID         – primary key (UUID string).
//  SpotNumber – unique human-facing spot number (e.g. "A-12").
//  Location   – free-form location description (level, zone).
//  Type       – spot classification (standard, premium, reserved).
//  HourlyRate – rate in whole currency units per hour.
//  Status     – coarse operational status (available, booked, maintenance).
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type ParkingSpot struct {
	ID         string     // parking_spots.id
	SpotNumber string     // parking_spots.spot_number
	Location   string     // parking_spots.location
	Type       SpotType   // parking_spots.type
	HourlyRate int64      // parking_spots.hourly_rate
	Status     SpotStatus // parking_spots.status
	CreatedAt  time.Time  // parking_spots.created_at
	UpdatedAt  time.Time  // parking_spots.updated_at
}

// SpotAvailability is the per-spot result of an availability query for
// a concrete date and time window.
type SpotAvailability struct {
	SpotID      string   `json:"spot_id"`
	SpotNumber  string   `json:"spot_number"`
	IsAvailable bool     `json:"is_available"`
	HourlyRate  int64    `json:"hourly_rate"`
	Type        SpotType `json:"type"`
	Location    string   `json:"location"`
}
