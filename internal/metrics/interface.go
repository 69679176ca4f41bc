package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncCheckIns()
	IncAutoCheckIns()
	IncCheckInsFailed()
	IncRatingsSubmitted()
	IncMatchesProcessed()
	ObserveProcessingDuration(duration float64)
	IncWebhooksProcessed()
	IncWebhookDuplicates()
	IncNotifSent()
	IncNotifFailed()
	SetStartupTime(duration float64)
}
