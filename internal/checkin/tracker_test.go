package checkin

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackerReportAndCurrent(t *testing.T) {
	tr := NewTracker()

	_, err := tr.Current("player-1")
	assert.ErrorIs(t, err, ErrUnavailable)

	tr.Report("player-1", Position{Latitude: 3.1390, Longitude: 101.6869})

	pos, err := tr.Current("player-1")
	require.NoError(t, err)
	assert.Equal(t, 3.1390, pos.Latitude)
	assert.Equal(t, 101.6869, pos.Longitude)

	// Other players are unaffected.
	_, err = tr.Current("player-2")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestTrackerReportError(t *testing.T) {
	tr := NewTracker()
	tr.Report("player-1", Position{Latitude: 1, Longitude: 2})

	tr.ReportError("player-1", ErrPermissionDenied)
	_, err := tr.Current("player-1")
	assert.ErrorIs(t, err, ErrPermissionDenied)

	// A fresh sample clears the failure.
	tr.Report("player-1", Position{Latitude: 1, Longitude: 2})
	_, err = tr.Current("player-1")
	assert.NoError(t, err)
}

func TestTrackerStaleness(t *testing.T) {
	tr := NewTracker()
	current := time.Date(2026, 8, 29, 18, 0, 0, 0, time.UTC)
	tr.now = func() time.Time { return current }

	tr.Report("player-1", Position{Latitude: 1, Longitude: 2})

	current = current.Add(MaxPositionAge)
	_, err := tr.Current("player-1")
	assert.NoError(t, err, "sample at the age limit is still fresh")

	current = current.Add(time.Second)
	_, err = tr.Current("player-1")
	assert.ErrorIs(t, err, ErrUnavailable)
}
