package notifier

import (
	"github.com/arenax/arenax-server/internal/match"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For matches whose booking window opened
	SendBookingNotification(m *match.Match, venueName string, dryRun bool) error
	// For matches that reached their end time
	SendMatchCompletedNotification(m *match.Match, venueName string, dryRun bool) error
	// For a player checking in, manually or by proximity
	SendCheckInNotification(m *match.Match, playerName string, auto bool, dryRun bool) error
	// For a confirmed wallet top-up
	SendPaymentNotification(userID string, amount float64, dryRun bool) error
}
