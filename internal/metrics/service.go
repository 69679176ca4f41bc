package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		CheckIns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arenax_check_ins_total",
			Help: "The total number of successful match check-ins.",
		}),
		AutoCheckIns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arenax_auto_check_ins_total",
			Help: "The total number of check-ins committed automatically by proximity.",
		}),
		CheckInsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arenax_check_ins_failed_total",
			Help: "The total number of rejected or failed check-in attempts.",
		}),
		RatingsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arenax_ratings_submitted_total",
			Help: "The total number of accepted match ratings.",
		}),
		MatchesProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arenax_matches_processed_total",
			Help: "The total number of matches processed by the lifecycle sweeper.",
		}),
		ProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "arenax_match_processing_duration_seconds",
			Help:    "The duration of individual match processing.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		WebhooksProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arenax_payment_webhooks_processed_total",
			Help: "The total number of payment webhook deliveries applied.",
		}),
		WebhookDuplicates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arenax_payment_webhook_duplicates_total",
			Help: "The total number of duplicate payment webhook deliveries ignored.",
		}),
		NotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arenax_notifications_sent_total",
			Help: "The total number of notifications successfully sent.",
		}),
		NotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arenax_notifications_failed_total",
			Help: "The total number of notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "arenax_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.CheckIns,
		s.AutoCheckIns,
		s.CheckInsFailed,
		s.RatingsSubmitted,
		s.MatchesProcessed,
		s.ProcessingDuration,
		s.WebhooksProcessed,
		s.WebhookDuplicates,
		s.NotifSent,
		s.NotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncCheckIns() {
	s.CheckIns.Inc()
}

func (s *Service) IncAutoCheckIns() {
	s.AutoCheckIns.Inc()
}

func (s *Service) IncCheckInsFailed() {
	s.CheckInsFailed.Inc()
}

func (s *Service) IncRatingsSubmitted() {
	s.RatingsSubmitted.Inc()
}

func (s *Service) IncMatchesProcessed() {
	s.MatchesProcessed.Inc()
}

func (s *Service) ObserveProcessingDuration(duration float64) {
	s.ProcessingDuration.Observe(duration)
}

func (s *Service) IncWebhooksProcessed() {
	s.WebhooksProcessed.Inc()
}

func (s *Service) IncWebhookDuplicates() {
	s.WebhookDuplicates.Inc()
}

func (s *Service) IncNotifSent() {
	s.NotifSent.Inc()
}

func (s *Service) IncNotifFailed() {
	s.NotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
