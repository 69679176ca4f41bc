package processor

import (
	"github.com/arenax/arenax-server/internal/arena"
	"github.com/arenax/arenax-server/internal/match"
	"github.com/arenax/arenax-server/internal/notifier"
)

// Store defines the match operations required by the processor.
type Store interface {
	GetMatchesForProcessing() ([]*match.Match, error)
	UpdateStatus(matchID string, status match.Status) error
	MarkBookingNotified(matchID string, ts int64) error
}

// VenueStore defines the venue lookups required by the processor.
type VenueStore interface {
	GetVenue(venueID string) (*arena.Venue, error)
}

// Notifier defines the notification operations required by the processor.
// This is now an alias for the main notifier interface for decoupling.
type Notifier interface {
	notifier.Notifier
}
