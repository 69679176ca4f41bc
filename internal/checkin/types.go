package checkin

import (
	"errors"
	"time"

	"github.com/arenax/arenax-server/internal/match"
)

// Position is a device location sample in degrees.
type Position struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Failure modes of the device geolocation API, as reported by clients.
var (
	ErrPermissionDenied = errors.New("location permission denied")
	ErrTimeout          = errors.New("location request timed out")
	ErrUnavailable      = errors.New("position unavailable")
)

// LocationProvider supplies the most recent known position of a player.
type LocationProvider interface {
	Current(playerID string) (Position, error)
}

// Store defines the match operations the monitor needs.
type Store interface {
	CheckIn(matchID, playerID string, lat, lng float64, now int64) error
}

// EventType identifies a typed event emitted by a Monitor.
type EventType string

const (
	EventPhaseChanged  EventType = "phase-changed"
	EventGateOpened    EventType = "gate-opened"
	EventGateClosed    EventType = "gate-closed"
	EventCheckedIn     EventType = "checked-in"
	EventCheckInFailed EventType = "check-in-failed"
	EventLocationError EventType = "location-error"
	EventFinished      EventType = "finished"
)

// Event is a single notification emitted on a Monitor's event channel.
type Event struct {
	Type     EventType   `json:"type"`
	MatchID  string      `json:"match_id"`
	PlayerID string      `json:"player_id"`
	Phase    match.Phase `json:"phase,omitempty"`
	Distance float64     `json:"distance_meters,omitempty"`
	Auto     bool        `json:"auto,omitempty"`
	Error    string      `json:"error,omitempty"`
	At       time.Time   `json:"at"`
}
