package checkin

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/arenax/arenax-server/internal/geo"
	"github.com/arenax/arenax-server/internal/match"
	"github.com/arenax/arenax-server/internal/metrics"
)

// Default monitor cadence: a 1-second phase tick and a 30-second location poll.
const (
	DefaultTickInterval = time.Second
	DefaultPollInterval = 30 * time.Second
)

// Config configures a Monitor for one (match, player) pair.
type Config struct {
	Match    *match.Match
	PlayerID string
	// Venue coordinates; nil disables the gate entirely.
	VenueLat *float64
	VenueLng *float64

	TickInterval time.Duration
	PollInterval time.Duration
	Now          func() time.Time
	// Metrics is optional; a nil value disables counting.
	Metrics metrics.Metrics
}

// Monitor watches a single player's check-in window for one match. It replaces
// the browser's pair of free-running timers with a task whose lifetime is bound
// to a context: spawned on view entry, cancelled deterministically on exit.
// It emits typed events on its channel and commits the auto check-in itself.
type Monitor struct {
	store     Store
	locations LocationProvider
	events    chan<- Event
	cfg       Config

	checkedIn bool
	inFlight  bool
	gateOpen  bool
	lastPhase match.Phase
}

// NewMonitor creates a Monitor. The events channel is owned by the caller and
// is never closed by the monitor.
func NewMonitor(store Store, locations LocationProvider, events chan<- Event, cfg Config) *Monitor {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultTickInterval
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Monitor{
		store:     store,
		locations: locations,
		events:    events,
		cfg:       cfg,
	}
}

// Run drives the monitor until the context is cancelled, the player checks in,
// or the match finishes. It performs an immediate poll on entry and then
// re-arms on its two tickers.
func (m *Monitor) Run(ctx context.Context) {
	tick := time.NewTicker(m.cfg.TickInterval)
	defer tick.Stop()
	poll := time.NewTicker(m.cfg.PollInterval)
	defer poll.Stop()

	log.Info("Check-in monitor started", "matchID", m.cfg.Match.ID, "playerID", m.cfg.PlayerID)
	defer log.Info("Check-in monitor stopped", "matchID", m.cfg.Match.ID, "playerID", m.cfg.PlayerID)

	if done := m.pollLocation(ctx); done {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			if done := m.tickPhase(ctx); done {
				return
			}
		case <-poll.C:
			if done := m.pollLocation(ctx); done {
				return
			}
		}
	}
}

// tickPhase recomputes the derived phase and reports transitions. Returns true
// once the match is finished.
func (m *Monitor) tickPhase(ctx context.Context) bool {
	now := m.cfg.Now()
	phase, err := m.cfg.Match.PhaseAt(now)
	if err != nil {
		log.Error("Failed to derive match phase", "error", err, "matchID", m.cfg.Match.ID)
		return false
	}
	if phase != m.lastPhase {
		m.lastPhase = phase
		m.emit(ctx, Event{Type: EventPhaseChanged, Phase: phase, At: now})
	}
	if phase == match.PhaseFinished {
		m.emit(ctx, Event{Type: EventFinished, Phase: phase, At: now})
		return true
	}
	return false
}

// pollLocation samples the player's position and evaluates the proximity gate.
// Returns true once the player is checked in.
func (m *Monitor) pollLocation(ctx context.Context) bool {
	now := m.cfg.Now()

	// A venue without coordinates never opens the gate.
	if m.cfg.VenueLat == nil || m.cfg.VenueLng == nil {
		log.Debug("Venue has no coordinates; proximity check-in disabled", "matchID", m.cfg.Match.ID)
		return false
	}

	pos, err := m.locations.Current(m.cfg.PlayerID)
	if err != nil {
		// Fail safe: the gate stays closed on any location failure.
		log.Warn("Geolocation error in proximity check", "error", err, "playerID", m.cfg.PlayerID)
		m.emit(ctx, Event{Type: EventLocationError, Error: err.Error(), At: now})
		m.setGate(ctx, false, 0, now)
		return false
	}

	untilStart, err := m.cfg.Match.UntilStart(now)
	if err != nil {
		log.Error("Failed to compute time to start", "error", err, "matchID", m.cfg.Match.ID)
		return false
	}

	dist := geo.Haversine(pos.Latitude, pos.Longitude, *m.cfg.VenueLat, *m.cfg.VenueLng)
	decision := Evaluate(dist, untilStart)
	log.Debug("Proximity evaluated", "matchID", m.cfg.Match.ID, "distance_m", dist, "until_start", untilStart, "open", decision.Open, "auto", decision.Auto)

	m.setGate(ctx, decision.Open, dist, now)

	if decision.Auto && !m.checkedIn && !m.inFlight {
		return m.commit(ctx, pos, dist, now)
	}
	return false
}

// commit performs the auto check-in. First write wins in the store, so losing
// a race to a manual check-in is treated as success.
func (m *Monitor) commit(ctx context.Context, pos Position, dist float64, now time.Time) bool {
	m.inFlight = true
	err := m.store.CheckIn(m.cfg.Match.ID, m.cfg.PlayerID, pos.Latitude, pos.Longitude, now.Unix())
	m.inFlight = false

	if err != nil && !errors.Is(err, match.ErrAlreadyCheckedIn) {
		log.Error("Auto check-in failed", "error", err, "matchID", m.cfg.Match.ID, "playerID", m.cfg.PlayerID)
		if m.cfg.Metrics != nil {
			m.cfg.Metrics.IncCheckInsFailed()
		}
		m.emit(ctx, Event{Type: EventCheckInFailed, Distance: dist, Auto: true, Error: err.Error(), At: now})
		return false
	}

	m.checkedIn = true
	if m.cfg.Metrics != nil {
		m.cfg.Metrics.IncAutoCheckIns()
	}
	m.emit(ctx, Event{Type: EventCheckedIn, Distance: dist, Auto: true, At: now})
	return true
}

func (m *Monitor) setGate(ctx context.Context, open bool, dist float64, now time.Time) {
	if open == m.gateOpen {
		return
	}
	m.gateOpen = open
	if open {
		m.emit(ctx, Event{Type: EventGateOpened, Distance: dist, At: now})
	} else {
		m.emit(ctx, Event{Type: EventGateClosed, Distance: dist, At: now})
	}
}

func (m *Monitor) emit(ctx context.Context, ev Event) {
	ev.MatchID = m.cfg.Match.ID
	ev.PlayerID = m.cfg.PlayerID
	select {
	case m.events <- ev:
	case <-ctx.Done():
	}
}
