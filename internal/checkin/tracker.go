package checkin

import (
	"sync"
	"time"
)

// MaxPositionAge is how long a reported position is trusted before the
// provider reports it unavailable again.
const MaxPositionAge = 2 * time.Minute

type trackedPosition struct {
	pos        Position
	reportedAt time.Time
	err        error
}

// Tracker is a LocationProvider fed by client reports. Browsers sample the
// device geolocation API and POST the result (or its failure mode) here; the
// monitor polls Tracker instead of talking to a device directly.
type Tracker struct {
	mu        sync.RWMutex
	positions map[string]trackedPosition
	now       func() time.Time
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{
		positions: make(map[string]trackedPosition),
		now:       time.Now,
	}
}

// Report records a fresh position sample for a player.
func (t *Tracker) Report(playerID string, pos Position) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.positions[playerID] = trackedPosition{pos: pos, reportedAt: t.now()}
}

// ReportError records a geolocation failure for a player. Subsequent Current
// calls return the failure until a fresh position is reported.
func (t *Tracker) ReportError(playerID string, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.positions[playerID] = trackedPosition{reportedAt: t.now(), err: err}
}

// Current returns the last reported position of a player. Stale or missing
// samples surface as ErrUnavailable.
func (t *Tracker) Current(playerID string) (Position, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	tp, ok := t.positions[playerID]
	if !ok {
		return Position{}, ErrUnavailable
	}
	if tp.err != nil {
		return Position{}, tp.err
	}
	if t.now().Sub(tp.reportedAt) > MaxPositionAge {
		return Position{}, ErrUnavailable
	}
	return tp.pos, nil
}
