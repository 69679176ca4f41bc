package notifier

import (
	"sync"

	"github.com/arenax/arenax-server/internal/match"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	SendBookingNotificationFunc func(m *match.Match, venueName string, dryRun bool) error

	// Call records
	SendBookingNotificationCalls []struct {
		Match     *match.Match
		VenueName string
	}
	SendMatchCompletedNotificationCalls []struct {
		Match     *match.Match
		VenueName string
	}
	SendCheckInNotificationCalls []struct {
		Match      *match.Match
		PlayerName string
		Auto       bool
	}
	SendPaymentNotificationCalls []struct {
		UserID string
		Amount float64
	}
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendBookingNotificationCalls = nil
	m.SendMatchCompletedNotificationCalls = nil
	m.SendCheckInNotificationCalls = nil
	m.SendPaymentNotificationCalls = nil
}

func (m *Mock) SendBookingNotification(mt *match.Match, venueName string, dryRun bool) error {
	m.mu.Lock()
	m.SendBookingNotificationCalls = append(m.SendBookingNotificationCalls, struct {
		Match     *match.Match
		VenueName string
	}{mt, venueName})
	fn := m.SendBookingNotificationFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(mt, venueName, dryRun)
	}
	return nil
}

func (m *Mock) SendMatchCompletedNotification(mt *match.Match, venueName string, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchCompletedNotificationCalls = append(m.SendMatchCompletedNotificationCalls, struct {
		Match     *match.Match
		VenueName string
	}{mt, venueName})
	return nil
}

func (m *Mock) SendCheckInNotification(mt *match.Match, playerName string, auto bool, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendCheckInNotificationCalls = append(m.SendCheckInNotificationCalls, struct {
		Match      *match.Match
		PlayerName string
		Auto       bool
	}{mt, playerName, auto})
	return nil
}

func (m *Mock) SendPaymentNotification(userID string, amount float64, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendPaymentNotificationCalls = append(m.SendPaymentNotificationCalls, struct {
		UserID string
		Amount float64
	}{userID, amount})
	return nil
}
