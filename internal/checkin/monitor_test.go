package checkin

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arenax/arenax-server/internal/match"
	"github.com/arenax/arenax-server/internal/metrics"
)

// fakeClock is a settable Now source safe for use across goroutines.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func ptr(f float64) *float64 { return &f }

func testMatch() *match.Match {
	return &match.Match{
		ID:        "match-1",
		VenueID:   "venue-1",
		Sport:     "futsal",
		Date:      "2026-08-29",
		StartTime: "18:00",
		EndTime:   "19:00",
		Status:    match.StatusOpen,
	}
}

func waitEvent(t *testing.T, events <-chan Event) Event {
	t.Helper()
	select {
	case ev := <-events:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for monitor event")
		return Event{}
	}
}

func waitEventOfType(t *testing.T, events <-chan Event, want EventType) Event {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev := <-events:
			if ev.Type == want {
				return ev
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %q event", want)
		}
	}
}

// Venue at KLCC. A latitude offset of 0.00135 degrees is about 150m,
// 0.0007 degrees about 78m.
const (
	venueLat = 3.1579
	venueLng = 101.7116
)

func TestMonitorGateOpensWithoutAutoCheckIn(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 8, 29, 17, 50, 0, 0, time.UTC)}
	store := NewMockStore()
	provider := NewMockLocationProvider()
	provider.Set(Position{Latitude: venueLat + 0.00135, Longitude: venueLng})

	metr := metrics.NewMock()
	events := make(chan Event, 16)
	mon := NewMonitor(store, provider, events, Config{
		Match:        testMatch(),
		PlayerID:     "player-1",
		VenueLat:     ptr(venueLat),
		VenueLng:     ptr(venueLng),
		TickInterval: time.Hour,
		PollInterval: 5 * time.Millisecond,
		Now:          clock.Now,
		Metrics:      metr,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		mon.Run(ctx)
		close(done)
	}()

	ev := waitEventOfType(t, events, EventGateOpened)
	assert.InDelta(t, 150, ev.Distance, 5)
	assert.Equal(t, "match-1", ev.MatchID)
	assert.Equal(t, "player-1", ev.PlayerID)

	// Between the two radii the gate is open but nothing commits.
	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, store.Calls())

	// Stepping inside the auto radius commits the check-in and stops the run.
	provider.Set(Position{Latitude: venueLat + 0.0007, Longitude: venueLng})
	ev = waitEventOfType(t, events, EventCheckedIn)
	assert.True(t, ev.Auto)
	assert.InDelta(t, 78, ev.Distance, 5)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("monitor did not stop after check-in")
	}

	calls := store.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "match-1", calls[0].MatchID)
	assert.Equal(t, "player-1", calls[0].PlayerID)
	assert.Equal(t, clock.Now().Unix(), calls[0].Now)
	assert.Equal(t, 1, metr.AutoCheckIns())
}

func TestMonitorPhaseTransitions(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 8, 29, 17, 0, 0, 0, time.UTC)}
	store := NewMockStore()
	provider := NewMockLocationProvider()
	provider.SetError(ErrUnavailable)

	events := make(chan Event, 16)
	mon := NewMonitor(store, provider, events, Config{
		Match:        testMatch(),
		PlayerID:     "player-1",
		VenueLat:     ptr(venueLat),
		VenueLng:     ptr(venueLng),
		TickInterval: 5 * time.Millisecond,
		PollInterval: time.Hour,
		Now:          clock.Now,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		mon.Run(ctx)
		close(done)
	}()

	ev := waitEventOfType(t, events, EventPhaseChanged)
	assert.Equal(t, match.PhaseUpcoming, ev.Phase)

	clock.Set(time.Date(2026, 8, 29, 18, 30, 0, 0, time.UTC))
	ev = waitEventOfType(t, events, EventPhaseChanged)
	assert.Equal(t, match.PhaseOngoing, ev.Phase)

	clock.Set(time.Date(2026, 8, 29, 19, 0, 0, 0, time.UTC))
	ev = waitEventOfType(t, events, EventPhaseChanged)
	assert.Equal(t, match.PhaseFinished, ev.Phase)

	waitEventOfType(t, events, EventFinished)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("monitor did not stop after the match finished")
	}
}

func TestMonitorLocationErrorKeepsGateClosed(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 8, 29, 17, 55, 0, 0, time.UTC)}
	store := NewMockStore()
	provider := NewMockLocationProvider()
	provider.SetError(ErrPermissionDenied)

	events := make(chan Event, 16)
	mon := NewMonitor(store, provider, events, Config{
		Match:        testMatch(),
		PlayerID:     "player-1",
		VenueLat:     ptr(venueLat),
		VenueLng:     ptr(venueLng),
		TickInterval: time.Hour,
		PollInterval: 5 * time.Millisecond,
		Now:          clock.Now,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go mon.Run(ctx)

	ev := waitEvent(t, events)
	assert.Equal(t, EventLocationError, ev.Type)
	assert.Equal(t, ErrPermissionDenied.Error(), ev.Error)
	assert.Empty(t, store.Calls())

	// A fresh position inside the auto radius recovers.
	provider.Set(Position{Latitude: venueLat, Longitude: venueLng})
	waitEventOfType(t, events, EventCheckedIn)
}

func TestMonitorLosingRaceToManualCheckInIsSuccess(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 8, 29, 18, 0, 0, 0, time.UTC)}
	store := NewMockStore()
	store.CheckInFunc = func(matchID, playerID string, lat, lng float64, now int64) error {
		return match.ErrAlreadyCheckedIn
	}
	provider := NewMockLocationProvider()
	provider.Set(Position{Latitude: venueLat, Longitude: venueLng})

	events := make(chan Event, 16)
	mon := NewMonitor(store, provider, events, Config{
		Match:        testMatch(),
		PlayerID:     "player-1",
		VenueLat:     ptr(venueLat),
		VenueLng:     ptr(venueLng),
		TickInterval: time.Hour,
		PollInterval: time.Hour,
		Now:          clock.Now,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		mon.Run(ctx)
		close(done)
	}()

	ev := waitEventOfType(t, events, EventCheckedIn)
	assert.True(t, ev.Auto)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("monitor did not stop")
	}
	assert.Len(t, store.Calls(), 1)
}

func TestMonitorReportsCheckInFailure(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 8, 29, 18, 0, 0, 0, time.UTC)}
	store := NewMockStore()
	store.CheckInFunc = func(matchID, playerID string, lat, lng float64, now int64) error {
		return errors.New("db locked")
	}
	provider := NewMockLocationProvider()
	provider.Set(Position{Latitude: venueLat, Longitude: venueLng})

	events := make(chan Event, 16)
	mon := NewMonitor(store, provider, events, Config{
		Match:        testMatch(),
		PlayerID:     "player-1",
		VenueLat:     ptr(venueLat),
		VenueLng:     ptr(venueLng),
		TickInterval: time.Hour,
		PollInterval: time.Hour,
		Now:          clock.Now,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go mon.Run(ctx)

	ev := waitEventOfType(t, events, EventCheckInFailed)
	assert.True(t, ev.Auto)
	assert.Equal(t, "db locked", ev.Error)
}

func TestMonitorSkipsVenueWithoutCoordinates(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 8, 29, 18, 0, 0, 0, time.UTC)}
	store := NewMockStore()
	provider := NewMockLocationProvider()
	provider.Set(Position{Latitude: venueLat, Longitude: venueLng})

	events := make(chan Event, 16)
	mon := NewMonitor(store, provider, events, Config{
		Match:        testMatch(),
		PlayerID:     "player-1",
		TickInterval: time.Hour,
		PollInterval: 5 * time.Millisecond,
		Now:          clock.Now,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		mon.Run(ctx)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("monitor did not stop on cancellation")
	}
	assert.Empty(t, provider.CurrentCalls)
	assert.Empty(t, store.Calls())
	assert.Empty(t, events)
}

func TestMonitorStopsOnCancel(t *testing.T) {
	store := NewMockStore()
	provider := NewMockLocationProvider()
	provider.SetError(ErrUnavailable)

	events := make(chan Event, 16)
	mon := NewMonitor(store, provider, events, Config{
		Match:    testMatch(),
		PlayerID: "player-1",
		VenueLat: ptr(venueLat),
		VenueLng: ptr(venueLng),
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		mon.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("monitor did not stop on cancellation")
	}
}
