package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	CheckIns           prometheus.Counter
	AutoCheckIns       prometheus.Counter
	CheckInsFailed     prometheus.Counter
	RatingsSubmitted   prometheus.Counter
	MatchesProcessed   prometheus.Counter
	ProcessingDuration prometheus.Histogram
	WebhooksProcessed  prometheus.Counter
	WebhookDuplicates  prometheus.Counter
	NotifSent          prometheus.Counter
	NotifFailed        prometheus.Counter
	StartupTimeSeconds prometheus.Gauge
}
