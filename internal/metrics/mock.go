package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                  sync.Mutex
	checkIns            int
	autoCheckIns        int
	checkInsFailed      int
	ratingsSubmitted    int
	matchesProcessed    int
	processingDurations []float64
	webhooksProcessed   int
	webhookDuplicates   int
	notifSent           int
	notifFailed         int
	startupTime         float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		processingDurations: make([]float64, 0),
	}
}

func (m *Mock) IncCheckIns() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checkIns++
}

func (m *Mock) IncAutoCheckIns() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.autoCheckIns++
}

func (m *Mock) IncCheckInsFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checkInsFailed++
}

func (m *Mock) IncRatingsSubmitted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ratingsSubmitted++
}

func (m *Mock) IncMatchesProcessed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesProcessed++
}

func (m *Mock) ObserveProcessingDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.processingDurations = append(m.processingDurations, duration)
}

func (m *Mock) IncWebhooksProcessed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.webhooksProcessed++
}

func (m *Mock) IncWebhookDuplicates() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.webhookDuplicates++
}

func (m *Mock) IncNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifSent++
}

func (m *Mock) IncNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// CheckIns returns the number of times IncCheckIns was called.
func (m *Mock) CheckIns() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.checkIns
}

// AutoCheckIns returns the number of times IncAutoCheckIns was called.
func (m *Mock) AutoCheckIns() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.autoCheckIns
}

// CheckInsFailed returns the number of times IncCheckInsFailed was called.
func (m *Mock) CheckInsFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.checkInsFailed
}

// RatingsSubmitted returns the number of times IncRatingsSubmitted was called.
func (m *Mock) RatingsSubmitted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ratingsSubmitted
}

// MatchesProcessed returns the number of times IncMatchesProcessed was called.
func (m *Mock) MatchesProcessed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesProcessed
}

// WebhooksProcessed returns the number of times IncWebhooksProcessed was called.
func (m *Mock) WebhooksProcessed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.webhooksProcessed
}

// WebhookDuplicates returns the number of times IncWebhookDuplicates was called.
func (m *Mock) WebhookDuplicates() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.webhookDuplicates
}

// NotifSent returns the number of times IncNotifSent was called.
func (m *Mock) NotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifSent
}

// NotifFailed returns the number of times IncNotifFailed was called.
func (m *Mock) NotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifFailed
}
