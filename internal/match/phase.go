package match

import (
	"fmt"
	"time"
)

// Phase is the clock-derived view state of a match. It is recomputed on demand
// and never persisted.
type Phase string

const (
	PhaseUpcoming Phase = "upcoming"
	PhaseOngoing  Phase = "ongoing"
	PhaseFinished Phase = "finished"
)

// Interval parses the match's wall-clock date and times in the given location.
// End times at or before the start are NOT adjusted for midnight rollover; such
// matches read as finished from the start. Whether that is unsupported by design
// or an oversight is an open product question, so the behavior is preserved.
func (m *Match) Interval(loc *time.Location) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation("2006-01-02T15:04:05", m.Date+"T"+normalizeClock(m.StartTime), loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid match start: %w", err)
	}
	end, err := time.ParseInLocation("2006-01-02T15:04:05", m.Date+"T"+normalizeClock(m.EndTime), loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid match end: %w", err)
	}
	return start, end, nil
}

// PhaseAt derives the phase from the now-vs-interval comparison:
// now < start -> upcoming, start <= now < end -> ongoing, now >= end -> finished.
func (m *Match) PhaseAt(now time.Time) (Phase, error) {
	start, end, err := m.Interval(now.Location())
	if err != nil {
		return "", err
	}
	if now.Before(start) {
		return PhaseUpcoming, nil
	}
	if now.Before(end) {
		return PhaseOngoing, nil
	}
	return PhaseFinished, nil
}

// Countdown returns the time remaining until the start, clamped at zero.
func (m *Match) Countdown(now time.Time) (time.Duration, error) {
	start, _, err := m.Interval(now.Location())
	if err != nil {
		return 0, err
	}
	d := start.Sub(now)
	if d < 0 {
		return 0, nil
	}
	return d, nil
}

// Elapsed returns the time since the start, clamped to [0, end-start].
func (m *Match) Elapsed(now time.Time) (time.Duration, error) {
	start, end, err := m.Interval(now.Location())
	if err != nil {
		return 0, err
	}
	if now.Before(start) {
		return 0, nil
	}
	if !now.Before(end) {
		return end.Sub(start), nil
	}
	return now.Sub(start), nil
}

// UntilStart returns the signed duration from now until the match start.
// Negative values mean the start has passed.
func (m *Match) UntilStart(now time.Time) (time.Duration, error) {
	start, _, err := m.Interval(now.Location())
	if err != nil {
		return 0, err
	}
	return start.Sub(now), nil
}

// FormatClock renders a duration as HH:MM:SS for the countdown/elapsed views.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// normalizeClock accepts HH:MM and HH:MM:SS wall-clock strings.
func normalizeClock(s string) string {
	if len(s) == 5 {
		return s + ":00"
	}
	return s
}
