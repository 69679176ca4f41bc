package checkin

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerWatchDrivesAutoCheckIn(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 8, 29, 17, 50, 0, 0, time.UTC)}
	store := NewMockStore()
	provider := NewMockLocationProvider()
	// Between the two radii: the gate opens but nothing commits yet.
	provider.Set(Position{Latitude: venueLat + 0.00135, Longitude: venueLng})

	var mu sync.Mutex
	var seen []Event
	mg := NewManager(store, provider, func(ev Event) {
		mu.Lock()
		seen = append(seen, ev)
		mu.Unlock()
	})
	mg.TickInterval = time.Hour
	mg.PollInterval = 5 * time.Millisecond
	mg.Now = clock.Now

	mg.Watch(testMatch(), "player-1", ptr(venueLat), ptr(venueLng))
	// A second Watch for the same pair must not spawn a second monitor.
	mg.Watch(testMatch(), "player-1", ptr(venueLat), ptr(venueLng))
	assert.Equal(t, 1, mg.Running())

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		for _, ev := range seen {
			if ev.Type == EventGateOpened {
				return true
			}
		}
		return false
	}, 2*time.Second, 5*time.Millisecond)
	assert.Empty(t, store.Calls())

	// Stepping inside the auto radius commits and retires the monitor.
	provider.Set(Position{Latitude: venueLat + 0.0007, Longitude: venueLng})
	require.Eventually(t, func() bool {
		return len(store.Calls()) > 0 && mg.Running() == 0
	}, 2*time.Second, 5*time.Millisecond)

	mg.Shutdown()

	calls := store.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "match-1", calls[0].MatchID)
	assert.Equal(t, "player-1", calls[0].PlayerID)

	mu.Lock()
	defer mu.Unlock()
	var checkedIn *Event
	for i := range seen {
		if seen[i].Type == EventCheckedIn {
			checkedIn = &seen[i]
		}
	}
	require.NotNil(t, checkedIn, "the sink should see the check-in event")
	assert.True(t, checkedIn.Auto)
	assert.Equal(t, "player-1", checkedIn.PlayerID)
}

func TestManagerStopCancelsMonitor(t *testing.T) {
	store := NewMockStore()
	provider := NewMockLocationProvider()
	provider.SetError(ErrUnavailable)

	mg := NewManager(store, provider, nil)
	mg.TickInterval = time.Hour
	mg.PollInterval = time.Hour

	mg.Watch(testMatch(), "player-1", ptr(venueLat), ptr(venueLng))
	require.Equal(t, 1, mg.Running())

	mg.Stop("match-1", "player-1")
	require.Eventually(t, func() bool { return mg.Running() == 0 }, 2*time.Second, 5*time.Millisecond)

	// Shutdown returns promptly with nothing left to wait for.
	mg.Shutdown()
	assert.Empty(t, store.Calls())
}

func TestManagerSkipsVenueWithoutCoordinates(t *testing.T) {
	mg := NewManager(NewMockStore(), NewMockLocationProvider(), nil)

	mg.Watch(testMatch(), "player-1", nil, nil)
	assert.Equal(t, 0, mg.Running())
	mg.Shutdown()
}

func TestManagerRefusesWatchAfterShutdown(t *testing.T) {
	mg := NewManager(NewMockStore(), NewMockLocationProvider(), nil)
	mg.Shutdown()

	mg.Watch(testMatch(), "player-1", ptr(venueLat), ptr(venueLng))
	assert.Equal(t, 0, mg.Running())
}
