package checkin

import "time"

// Gate thresholds. The gate opens from EarlyWindow before the start until
// LateWindow after it, for players within CheckInRadius of the venue.
// Auto check-in additionally requires AutoCheckInRadius.
const (
	CheckInRadiusMeters     = 200.0
	AutoCheckInRadiusMeters = 100.0
	EarlyWindow             = 15 * time.Minute
	LateWindow              = 60 * time.Minute
)

// Decision is the outcome of a proximity gate evaluation.
type Decision struct {
	Open     bool
	Auto     bool
	Distance float64
}

// Evaluate applies the proximity gate rule to a distance (meters) and the
// signed time until the match start (negative once the start has passed).
// The gate is monotonic in distance: if it opens at distance d, it opens for
// any d' < d at the same time offset.
func Evaluate(distanceMeters float64, untilStart time.Duration) Decision {
	d := Decision{Distance: distanceMeters}
	if untilStart > EarlyWindow || untilStart < -LateWindow {
		return d
	}
	if distanceMeters > CheckInRadiusMeters {
		return d
	}
	d.Open = true
	d.Auto = distanceMeters <= AutoCheckInRadiusMeters
	return d
}
