package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub. Each event
// type maps to a topic of the same name.
type EventType string

const (
	EventMatchCheckedIn  EventType = "match-checked-in"
	EventMatchCompleted  EventType = "match-completed"
	EventBookingCreated  EventType = "booking-created"
	EventBookingNotified EventType = "booking-notified"
	EventWalletCredited  EventType = "wallet-credited"
)
