package match

import (
	"database/sql"
	"errors"
	"sync"
)

// store handles all database operations for matches, participants and ratings.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Status is the stored lifecycle status of a match. The upcoming/ongoing/finished
// phase is never stored; it is derived from the clock (see phase.go).
type Status string

const (
	StatusOpen      Status = "open"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Match represents a scheduled match at a venue.
type Match struct {
	ID                string  `json:"id"`
	VenueID           string  `json:"venue_id"`
	Sport             string  `json:"sport"`
	Date              string  `json:"date"`       // YYYY-MM-DD
	StartTime         string  `json:"start_time"` // HH:MM:SS wall clock
	EndTime           string  `json:"end_time"`   // HH:MM:SS wall clock
	Status            Status  `json:"status"`
	Capacity          int     `json:"capacity"`
	PricePerPlayer    float64 `json:"price_per_player"`
	CreatedAt         int64   `json:"created_at"`
	BookingNotifiedTs *int64  `json:"booking_notified_ts,omitempty"`
}

// Participant links a player to a match and carries the check-in state.
type Participant struct {
	MatchID        string   `json:"match_id"`
	PlayerID       string   `json:"player_id"`
	CheckedInAt    *int64   `json:"checked_in_at,omitempty"`
	CheckInLat     *float64 `json:"check_in_latitude,omitempty"`
	CheckInLng     *float64 `json:"check_in_longitude,omitempty"`
}

// Rating captures the three 1-5 scores a player submits after a match.
type Rating struct {
	MatchID      string `json:"match_id"`
	PlayerID     string `json:"player_id"`
	VenueRating  int    `json:"venue_rating"`
	TeamRating   int    `json:"team_rating"`
	SystemRating int    `json:"system_rating"`
	CreatedAt    int64  `json:"created_at"`
}

var (
	// ErrNotRegistered is returned when a check-in targets a (match, player)
	// pair with no participant row.
	ErrNotRegistered = errors.New("player is not registered for this match")
	// ErrAlreadyCheckedIn is returned when the participant row exists but the
	// check-in timestamp was already set (first write wins).
	ErrAlreadyCheckedIn = errors.New("player is already checked in")
	// ErrAlreadyRated is returned on a duplicate rating submission.
	ErrAlreadyRated = errors.New("player has already rated this match")
	// ErrInvalidRating is returned when any score is outside 1-5.
	ErrInvalidRating = errors.New("all ratings must be between 1 and 5")
	// ErrNotFound is returned when a match does not exist.
	ErrNotFound = errors.New("match not found")
	// ErrInsufficientFunds is returned when a player's wallet cannot cover
	// the match fee; the registration is rolled back with it.
	ErrInsufficientFunds = errors.New("insufficient wallet balance for match fee")
)
