package checkin

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/arenax/arenax-server/internal/match"
	"github.com/arenax/arenax-server/internal/metrics"
)

// EventSink receives events from running monitors. Sinks run on the monitor's
// consumer goroutine and should not block for long.
type EventSink func(ev Event)

// Manager owns the running auto check-in monitors. One monitor runs per
// registered (match, player) pair: Watch spawns it, a check-in or the end of
// the match retires it, and Shutdown cancels whatever is left.
type Manager struct {
	store     Store
	locations LocationProvider
	sink      EventSink

	// Cadence and clock handed to spawned monitors; zero values use the
	// monitor defaults. Metrics is optional.
	TickInterval time.Duration
	PollInterval time.Duration
	Now          func() time.Time
	Metrics      metrics.Metrics

	mu       sync.Mutex
	monitors map[string]*monitorHandle
	closed   bool
	wg       sync.WaitGroup
}

type monitorHandle struct {
	cancel context.CancelFunc
}

// NewManager creates a Manager. The sink may be nil when nobody consumes the
// emitted events.
func NewManager(store Store, locations LocationProvider, sink EventSink) *Manager {
	return &Manager{
		store:     store,
		locations: locations,
		sink:      sink,
		monitors:  make(map[string]*monitorHandle),
	}
}

func monitorKey(matchID, playerID string) string {
	return matchID + "/" + playerID
}

// Watch spawns a monitor for the player unless one is already running. The
// monitor reads positions from the manager's LocationProvider and commits the
// auto check-in through the manager's store; everything else it observes is
// forwarded to the sink.
func (mg *Manager) Watch(m *match.Match, playerID string, venueLat, venueLng *float64) {
	if venueLat == nil || venueLng == nil {
		log.Debug("Venue has no coordinates; not monitoring", "matchID", m.ID, "playerID", playerID)
		return
	}

	key := monitorKey(m.ID, playerID)
	mg.mu.Lock()
	if mg.closed || mg.monitors[key] != nil {
		mg.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	handle := &monitorHandle{cancel: cancel}
	mg.monitors[key] = handle
	mg.wg.Add(2)
	mg.mu.Unlock()

	events := make(chan Event, 16)
	mon := NewMonitor(mg.store, mg.locations, events, Config{
		Match:        m,
		PlayerID:     playerID,
		VenueLat:     venueLat,
		VenueLng:     venueLng,
		TickInterval: mg.TickInterval,
		PollInterval: mg.PollInterval,
		Now:          mg.Now,
		Metrics:      mg.Metrics,
	})

	go func() {
		defer mg.wg.Done()
		mon.Run(ctx)
		cancel()
		// Run has returned, so nothing emits anymore and the consumer
		// below can drain and exit.
		close(events)
		mg.mu.Lock()
		if mg.monitors[key] == handle {
			delete(mg.monitors, key)
		}
		mg.mu.Unlock()
	}()
	go func() {
		defer mg.wg.Done()
		for ev := range events {
			if mg.sink != nil {
				mg.sink(ev)
			}
		}
	}()
}

// Stop cancels the monitor for one (match, player) pair, if any. Called when
// the player checks in manually so the monitor does not outlive its purpose.
func (mg *Manager) Stop(matchID, playerID string) {
	key := monitorKey(matchID, playerID)
	mg.mu.Lock()
	handle := mg.monitors[key]
	delete(mg.monitors, key)
	mg.mu.Unlock()
	if handle != nil {
		handle.cancel()
	}
}

// Running reports how many monitors are currently alive.
func (mg *Manager) Running() int {
	mg.mu.Lock()
	defer mg.mu.Unlock()
	return len(mg.monitors)
}

// Shutdown cancels all monitors, refuses new ones and waits for the running
// ones to drain.
func (mg *Manager) Shutdown() {
	mg.mu.Lock()
	mg.closed = true
	handles := make([]*monitorHandle, 0, len(mg.monitors))
	for _, h := range mg.monitors {
		handles = append(handles, h)
	}
	mg.monitors = make(map[string]*monitorHandle)
	mg.mu.Unlock()

	for _, h := range handles {
		h.cancel()
	}
	mg.wg.Wait()
}
