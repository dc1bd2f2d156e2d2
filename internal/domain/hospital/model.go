package hospital

import (
	"time"

	"github.com/google/uuid"
)

// Hospital is a read-only directory entry. Rows are seeded by migration
// and never mutated through the API.
type Hospital struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Address      string    `json:"address" db:"address"`
	Latitude     float64   `json:"latitude" db:"latitude"`
	Longitude    float64   `json:"longitude" db:"longitude"`
	Rating       float64   `json:"rating" db:"rating"`
	BedCount     int       `json:"bed_count" db:"bed_count"`
	HasEmergency bool      `json:"has_emergency" db:"has_emergency"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// NearbyHospital is a directory entry annotated with its distance in
// kilometers from the requested origin.
type NearbyHospital struct {
	Hospital
	DistanceKm float64 `json:"distance_km"`
}
