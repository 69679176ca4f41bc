package processor

import (
	"time"

	"github.com/arenax/arenax-server/internal/metrics"
	"github.com/arenax/arenax-server/internal/pubsub"
)

// Processor handles the business logic of sweeping matches through their
// lifecycle.
type Processor struct {
	store    Store
	venues   VenueStore
	pubsub   pubsub.PubSubClient
	notifier Notifier
	metrics  metrics.Metrics
	now      func() time.Time
}
