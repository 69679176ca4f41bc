package processor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arenax/arenax-server/internal/arena"
	"github.com/arenax/arenax-server/internal/match"
	"github.com/arenax/arenax-server/internal/metrics"
	"github.com/arenax/arenax-server/internal/notifier"
	"github.com/arenax/arenax-server/internal/pubsub"
)

func newTestProcessor(store *match.MockStore, now time.Time) (*Processor, *notifier.Mock, *metrics.Mock, *pubsub.MockPubSubClient) {
	venues := arena.NewMock()
	venues.GetVenueFunc = func(venueID string) (*arena.Venue, error) {
		return &arena.Venue{ID: venueID, Name: "Arena One"}, nil
	}
	notif := notifier.NewMock()
	metr := metrics.NewMock()
	ps := pubsub.NewMock("TEST")
	p := New(store, venues, notif, metr, ps)
	p.now = func() time.Time { return now }
	return p, notif, metr, ps
}

func upcomingMatch() *match.Match {
	return &match.Match{
		ID:        "m1",
		VenueID:   "v1",
		Sport:     "futsal",
		Date:      "2026-08-29",
		StartTime: "18:00:00",
		EndTime:   "19:00:00",
		Status:    match.StatusOpen,
	}
}

func TestProcessor_ProcessMatches(t *testing.T) {
	t.Run("upcoming unannounced match sends booking notification", func(t *testing.T) {
		store := match.NewMock()
		m := upcomingMatch()
		store.GetMatchesForProcessingFunc = func() ([]*match.Match, error) {
			return []*match.Match{m}, nil
		}

		p, notif, _, ps := newTestProcessor(store, time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC))
		p.ProcessMatches(false)

		require.Len(t, notif.SendBookingNotificationCalls, 1, "A booking notification should be sent")
		assert.Equal(t, "m1", notif.SendBookingNotificationCalls[0].Match.ID)
		assert.Equal(t, "Arena One", notif.SendBookingNotificationCalls[0].VenueName)
		require.Len(t, store.MarkNotifiedCalls, 1)
		require.Len(t, ps.SendMessageCalls, 1)
		assert.Equal(t, string(pubsub.EventBookingNotified), ps.SendMessageCalls[0].Topic)
		assert.Empty(t, store.UpdateStatusCalls, "Status should not change for an upcoming match")
	})

	t.Run("announced upcoming match is left alone", func(t *testing.T) {
		store := match.NewMock()
		m := upcomingMatch()
		ts := int64(1700000000)
		m.BookingNotifiedTs = &ts
		store.GetMatchesForProcessingFunc = func() ([]*match.Match, error) {
			return []*match.Match{m}, nil
		}

		p, notif, _, ps := newTestProcessor(store, time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC))
		p.ProcessMatches(false)

		assert.Empty(t, notif.SendBookingNotificationCalls)
		assert.Empty(t, store.MarkNotifiedCalls)
		assert.Empty(t, store.UpdateStatusCalls)
		assert.Empty(t, ps.SendMessageCalls)
	})

	t.Run("finished match is completed and announced", func(t *testing.T) {
		store := match.NewMock()
		m := upcomingMatch()
		ts := int64(1700000000)
		m.BookingNotifiedTs = &ts
		store.GetMatchesForProcessingFunc = func() ([]*match.Match, error) {
			return []*match.Match{m}, nil
		}

		p, notif, metr, ps := newTestProcessor(store, time.Date(2026, 8, 29, 19, 30, 0, 0, time.UTC))
		p.ProcessMatches(false)

		require.Len(t, store.UpdateStatusCalls, 1)
		assert.Equal(t, match.StatusCompleted, store.UpdateStatusCalls[0].Status)
		require.Len(t, notif.SendMatchCompletedNotificationCalls, 1)
		require.Len(t, ps.SendMessageCalls, 1)
		assert.Equal(t, string(pubsub.EventMatchCompleted), ps.SendMessageCalls[0].Topic)
		assert.Equal(t, 1, metr.MatchesProcessed())
	})

	t.Run("ongoing match is left alone", func(t *testing.T) {
		store := match.NewMock()
		m := upcomingMatch()
		ts := int64(1700000000)
		m.BookingNotifiedTs = &ts
		store.GetMatchesForProcessingFunc = func() ([]*match.Match, error) {
			return []*match.Match{m}, nil
		}

		p, notif, _, _ := newTestProcessor(store, time.Date(2026, 8, 29, 18, 30, 0, 0, time.UTC))
		p.ProcessMatches(false)

		assert.Empty(t, store.UpdateStatusCalls)
		assert.Empty(t, notif.SendMatchCompletedNotificationCalls)
	})

	t.Run("dry run touches nothing", func(t *testing.T) {
		store := match.NewMock()
		store.GetMatchesForProcessingFunc = func() ([]*match.Match, error) {
			return []*match.Match{upcomingMatch()}, nil
		}

		p, notif, _, ps := newTestProcessor(store, time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC))
		p.ProcessMatches(true)

		require.Len(t, notif.SendBookingNotificationCalls, 1, "Dry run still renders the notification")
		assert.Empty(t, store.MarkNotifiedCalls)
		assert.Empty(t, store.UpdateStatusCalls)
		assert.Empty(t, ps.SendMessageCalls)
	})
}
