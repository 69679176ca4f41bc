package processor

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/arenax/arenax-server/internal/match"
	"github.com/arenax/arenax-server/internal/metrics"
	"github.com/arenax/arenax-server/internal/pubsub"
)

// New creates a new Processor.
func New(store Store, venues VenueStore, notifier Notifier, metrics metrics.Metrics, pubsub pubsub.PubSubClient) *Processor {
	return &Processor{
		store:    store,
		venues:   venues,
		pubsub:   pubsub,
		notifier: notifier,
		metrics:  metrics,
		now:      time.Now,
	}
}

// ProcessMatches fetches matches that are not yet terminal and advances them
// based on the clock: fresh bookings get announced, matches past their end
// time get completed. Safe to run repeatedly; each transition happens once.
func (p *Processor) ProcessMatches(dryRun bool) {
	log.Info("Starting match processing...")
	matches, err := p.store.GetMatchesForProcessing()
	if err != nil {
		log.Error("Failed to get matches for processing", "error", err)
		return
	}

	if len(matches) == 0 {
		log.Info("No matches to process.")
		return
	}

	log.Info("Found matches to process", "count", len(matches))
	for _, m := range matches {
		startTime := time.Now()
		p.processMatch(m, dryRun)
		duration := time.Since(startTime).Seconds()
		p.metrics.ObserveProcessingDuration(duration)
	}
	log.Info("Match processing finished.")
}

func (p *Processor) processMatch(m *match.Match, dryRun bool) {
	now := p.now()
	phase, err := m.PhaseAt(now)
	if err != nil {
		log.Error("Failed to derive match phase", "error", err, "matchID", m.ID)
		return
	}
	log.Debug("Processing match", "matchID", m.ID, "status", m.Status, "phase", phase)

	venueName := m.VenueID
	if venue, err := p.venues.GetVenue(m.VenueID); err == nil {
		venueName = venue.Name
	} else {
		log.Warn("Failed to look up venue for match", "error", err, "matchID", m.ID, "venueID", m.VenueID)
	}

	if m.BookingNotifiedTs == nil && phase == match.PhaseUpcoming {
		log.Info("Match is upcoming and unannounced. Sending booking notification.", "matchID", m.ID)
		if err := p.notifier.SendBookingNotification(m, venueName, dryRun); err != nil {
			log.Error("Failed to send booking notification", "error", err, "matchID", m.ID)
			return
		}
		if dryRun {
			return
		}
		ts := now.Unix()
		if err := p.store.MarkBookingNotified(m.ID, ts); err != nil {
			log.Error("Failed to mark booking as notified", "error", err, "matchID", m.ID)
			return
		}
		m.BookingNotifiedTs = &ts
		p.pubsub.SendMessage(pubsub.EventBookingNotified, m)
		return
	}

	if phase == match.PhaseFinished {
		log.Info("Match reached its end time. Marking as completed.", "matchID", m.ID)
		if dryRun {
			return
		}
		if err := p.store.UpdateStatus(m.ID, match.StatusCompleted); err != nil {
			log.Error("Failed to complete match", "error", err, "matchID", m.ID)
			return
		}
		m.Status = match.StatusCompleted
		p.notifier.SendMatchCompletedNotification(m, venueName, dryRun)
		p.pubsub.SendMessage(pubsub.EventMatchCompleted, m)
		p.metrics.IncMatchesProcessed()
	}
}

// Run sweeps on the given interval until the context signals shutdown via done.
func (p *Processor) Run(done <-chan struct{}, interval time.Duration, dryRun bool) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			log.Info("Match processor stopped")
			return
		case <-ticker.C:
			p.ProcessMatches(dryRun)
		}
	}
}
