package http

import (
	"net/http"

	"github.com/rs/cors"

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

func NewServer(
	matches match.MatchStore,
	arenaStore arena.ArenaStore,
	wallets wallet.WalletStore,
	tracker *checkin.Tracker,
	metricsSvc metrics.Metrics,
	metricsHandler http.Handler,
	cfg config.Config,
	xenditClient xendit.InvoiceClient,
	notifier notifier.Notifier,
	processor *processor.Processor,
	pubsub pubsub.PubSubClient,
) *Server {
	server := &Server{
		Matches:        matches,
		Arena:          arenaStore,
		Wallets:        wallets,
		Tracker:        tracker,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		XenditClient:   xenditClient,
		Notifier:       notifier,
		Processor:      processor,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	// Auto check-in monitors read positions from the tracker and announce
	// their check-ins the same way manual ones are announced.
	server.Monitors = checkin.NewManager(matches, tracker, server.applyMonitorEvent)
	server.Monitors.Metrics = metricsSvc

	server.routes()

	// The player and venue portals are served from other origins.
	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})
	server.handler = c.Handler(server.Router)

	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/clear", Chain(s.ClearStoreHandler(), paramsMiddleware))

	s.Router.Handle("/profiles", Chain(s.ProfilesHandler(), paramsMiddleware))
	s.Router.Handle("/venues", Chain(s.VenuesHandler(), paramsMiddleware))
	s.Router.Handle("/courts", Chain(s.CourtsHandler(), paramsMiddleware))
	s.Router.Handle("/bookings", Chain(s.BookingsHandler(), paramsMiddleware))
	s.Router.Handle("/bookings/status", Chain(s.BookingStatusHandler(), paramsMiddleware))

	s.Router.Handle("/matches", Chain(s.ListMatchesHandler(), paramsMiddleware))
	s.Router.Handle("/match", Chain(s.MatchHandler(), paramsMiddleware))
	s.Router.Handle("/match/join", Chain(s.JoinMatchHandler(), paramsMiddleware))
	s.Router.Handle("/match/participants", Chain(s.ListParticipantsHandler(), paramsMiddleware))
	s.Router.Handle("/match/check-in", Chain(s.CheckInHandler(), paramsMiddleware))
	s.Router.Handle("/match/rate", Chain(s.RateMatchHandler(), paramsMiddleware))
	s.Router.Handle("/match/ratings", Chain(s.ListRatingsHandler(), paramsMiddleware))

	s.Router.Handle("/location", Chain(s.ReportLocationHandler(), paramsMiddleware))

	s.Router.Handle("/wallet", Chain(s.WalletHandler(), paramsMiddleware))
	s.Router.Handle("/wallet/topup", Chain(s.TopupHandler(), paramsMiddleware))
	s.Router.Handle("/wallet/webhook", Chain(s.PaymentWebhookHandler(), paramsMiddleware))
	s.Router.Handle("/transactions", Chain(s.ListTransactionsHandler(), paramsMiddleware))

	s.Router.Handle("/process", Chain(s.ProcessMatchesHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}
