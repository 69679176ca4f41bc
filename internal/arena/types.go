package arena

import (
	"database/sql"
	"sync"
)

// store handles all database operations for profiles, venues, courts and bookings.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Profile represents a registered player.
type Profile struct {
	ID         string `json:"id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Position   string `json:"position,omitempty"`
	SkillLevel string `json:"skill_level,omitempty"`
}

// Venue represents a sports venue. Coordinates are optional; venues without
// them cannot offer proximity check-in.
type Venue struct {
	ID        string   `json:"id"`
	OwnerID   string   `json:"owner_id"`
	Name      string   `json:"name"`
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// HasCoordinates reports whether the venue can be used for proximity check-in.
func (v *Venue) HasCoordinates() bool {
	return v.Latitude != nil && v.Longitude != nil
}

// Court represents a bookable court at a venue.
type Court struct {
	ID           string  `json:"id"`
	VenueID      string  `json:"venue_id"`
	Name         string  `json:"name"`
	Sport        string  `json:"sport"`
	PricePerHour float64 `json:"price_per_hour"`
}

// BookingStatus is the stored status of a booking.
type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking represents a court reservation made by a player.
type Booking struct {
	ID        string        `json:"id"`
	VenueID   string        `json:"venue_id"`
	CourtID   string        `json:"court_id"`
	PlayerID  string        `json:"player_id"`
	Date      string        `json:"date"`
	StartTime string        `json:"start_time"`
	EndTime   string        `json:"end_time"`
	Status    BookingStatus `json:"status"`
	CreatedAt int64         `json:"created_at"`
}

// VenueBooking is a booking joined with its court and customer for the venue portal.
type VenueBooking struct {
	Booking
	CourtName     string `json:"court_name"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
}
