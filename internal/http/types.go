package http

import (
	"net/http"

	"github.com/arenax/arenax-server/internal/arena"
	"github.com/arenax/arenax-server/internal/checkin"
	"github.com/arenax/arenax-server/internal/config"
	"github.com/arenax/arenax-server/internal/match"
	"github.com/arenax/arenax-server/internal/metrics"
	"github.com/arenax/arenax-server/internal/notifier"
	"github.com/arenax/arenax-server/internal/processor"
	"github.com/arenax/arenax-server/internal/pubsub"
	"github.com/arenax/arenax-server/internal/wallet"
	"github.com/arenax/arenax-server/internal/xendit"
)

type Server struct {
	Matches        match.MatchStore
	Arena          arena.ArenaStore
	Wallets        wallet.WalletStore
	Tracker        *checkin.Tracker
	Monitors       *checkin.Manager
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	XenditClient   xendit.InvoiceClient
	Notifier       notifier.Notifier
	Processor      *processor.Processor
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient

	// handler is the Router wrapped with the cross-origin policy for the
	// player and venue portals.
	handler http.Handler
}
