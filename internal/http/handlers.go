package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/arenax/arenax-server/internal/arena"
	"github.com/arenax/arenax-server/internal/checkin"
	"github.com/arenax/arenax-server/internal/geo"
	"github.com/arenax/arenax-server/internal/match"
	"github.com/arenax/arenax-server/internal/pubsub"
	"github.com/arenax/arenax-server/internal/wallet"
	"github.com/arenax/arenax-server/internal/xendit"
)

// writeJSON encodes v as the response body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) ClearStoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-admin-token") != s.Cfg.AdminToken {
			log.Warn("Clear request with bad admin token")
			http.Error(w, "Invalid admin token", http.StatusUnauthorized)
			return
		}
		matchID := r.URL.Query().Get("matchID")
		if matchID != "" {
			log.Info("Received request to clear a specific match", "matchID", matchID)
			s.Matches.ClearMatch(matchID)
			w.WriteHeader(http.StatusOK)
			fmt.Fprintf(w, "Cleared match %s from store!", matchID)
			return
		}
		log.Info("Received request to clear entire store")
		s.Matches.Clear()
		s.Wallets.Clear()
		s.Arena.Clear()
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Store cleared!")
	}
}

func (s *Server) ProfilesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			profiles, err := s.Arena.GetAllProfiles()
			if err != nil {
				log.Error("Failed to get profiles from store", "error", err)
				http.Error(w, "Failed to get profiles", http.StatusInternalServerError)
				return
			}
			writeJSON(w, http.StatusOK, profiles)
		case http.MethodPost:
			var p arena.Profile
			if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
				http.Error(w, "Invalid JSON", http.StatusBadRequest)
				return
			}
			if p.ID == "" {
				p.ID = uuid.NewString()
			}
			if err := s.Arena.UpsertProfile(&p); err != nil {
				log.Error("Failed to upsert profile", "error", err, "playerID", p.ID)
				http.Error(w, "Failed to save profile", http.StatusInternalServerError)
				return
			}
			writeJSON(w, http.StatusOK, p)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func (s *Server) VenuesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			if venueID := r.URL.Query().Get("venueID"); venueID != "" {
				venue, err := s.Arena.GetVenue(venueID)
				if err != nil {
					http.Error(w, "Venue not found", http.StatusNotFound)
					return
				}
				writeJSON(w, http.StatusOK, venue)
				return
			}
			venues, err := s.Arena.GetAllVenues()
			if err != nil {
				log.Error("Failed to get venues from store", "error", err)
				http.Error(w, "Failed to get venues", http.StatusInternalServerError)
				return
			}
			writeJSON(w, http.StatusOK, venues)
		case http.MethodPost:
			var v arena.Venue
			if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
				http.Error(w, "Invalid JSON", http.StatusBadRequest)
				return
			}
			if v.ID == "" {
				v.ID = uuid.NewString()
			}
			if err := s.Arena.UpsertVenue(&v); err != nil {
				log.Error("Failed to upsert venue", "error", err, "venueID", v.ID)
				http.Error(w, "Failed to save venue", http.StatusInternalServerError)
				return
			}
			writeJSON(w, http.StatusOK, v)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func (s *Server) CourtsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			venueID := r.URL.Query().Get("venueID")
			if venueID == "" {
				http.Error(w, "venueID is required", http.StatusBadRequest)
				return
			}
			courts, err := s.Arena.ListCourts(venueID)
			if err != nil {
				log.Error("Failed to list courts", "error", err, "venueID", venueID)
				http.Error(w, "Failed to get courts", http.StatusInternalServerError)
				return
			}
			writeJSON(w, http.StatusOK, courts)
		case http.MethodPost:
			var c arena.Court
			if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
				http.Error(w, "Invalid JSON", http.StatusBadRequest)
				return
			}
			if c.ID == "" {
				c.ID = uuid.NewString()
			}
			if c.VenueID == "" {
				http.Error(w, "venue_id is required", http.StatusBadRequest)
				return
			}
			if err := s.Arena.UpsertCourt(&c); err != nil {
				log.Error("Failed to upsert court", "error", err, "courtID", c.ID)
				http.Error(w, "Failed to save court", http.StatusInternalServerError)
				return
			}
			writeJSON(w, http.StatusOK, c)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func (s *Server) BookingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			venueID := r.URL.Query().Get("venueID")
			if venueID == "" {
				http.Error(w, "venueID is required", http.StatusBadRequest)
				return
			}
			bookings, err := s.Arena.ListVenueBookings(venueID)
			if err != nil {
				log.Error("Failed to list venue bookings", "error", err, "venueID", venueID)
				http.Error(w, "Failed to get bookings", http.StatusInternalServerError)
				return
			}
			writeJSON(w, http.StatusOK, bookings)
		case http.MethodPost:
			var b arena.Booking
			if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
				http.Error(w, "Invalid JSON", http.StatusBadRequest)
				return
			}
			if b.ID == "" {
				b.ID = uuid.NewString()
			}
			if b.Status == "" {
				b.Status = arena.BookingConfirmed
			}
			if b.CreatedAt == 0 {
				b.CreatedAt = time.Now().Unix()
			}
			if err := s.Arena.CreateBooking(&b); err != nil {
				log.Error("Failed to create booking", "error", err, "bookingID", b.ID)
				http.Error(w, "Failed to save booking", http.StatusInternalServerError)
				return
			}
			if !isDryRunFromContext(r) {
				s.pubsub.SendMessage(pubsub.EventBookingCreated, &b)
			}
			writeJSON(w, http.StatusOK, b)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func (s *Server) BookingStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			BookingID string              `json:"booking_id"`
			Status    arena.BookingStatus `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if req.Status != arena.BookingConfirmed && req.Status != arena.BookingCancelled {
			http.Error(w, "Invalid booking status", http.StatusBadRequest)
			return
		}
		if err := s.Arena.UpdateBookingStatus(req.BookingID, req.Status); err != nil {
			log.Error("Failed to update booking status", "error", err, "bookingID", req.BookingID)
			http.Error(w, "Failed to update booking", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

func (s *Server) ListMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := s.Matches.GetAllMatches()
		if err != nil {
			log.Error("Failed to get matches from store", "error", err)
			http.Error(w, "Failed to get matches", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, matches)
	}
}

// matchView is a match plus its clock-derived state.
type matchView struct {
	*match.Match
	Phase            match.Phase `json:"phase"`
	CountdownSeconds int64       `json:"countdown_seconds"`
	ElapsedSeconds   int64       `json:"elapsed_seconds"`
}

func (s *Server) MatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			matchID := r.URL.Query().Get("matchID")
			if matchID == "" {
				http.Error(w, "matchID is required", http.StatusBadRequest)
				return
			}
			m, err := s.Matches.GetMatch(matchID)
			if errors.Is(err, match.ErrNotFound) {
				http.Error(w, "Match not found", http.StatusNotFound)
				return
			}
			if err != nil {
				log.Error("Failed to get match", "error", err, "matchID", matchID)
				http.Error(w, "Failed to get match", http.StatusInternalServerError)
				return
			}
			now := time.Now()
			phase, err := m.PhaseAt(now)
			if err != nil {
				log.Error("Failed to derive match phase", "error", err, "matchID", matchID)
				http.Error(w, "Invalid match times", http.StatusInternalServerError)
				return
			}
			countdown, _ := m.Countdown(now)
			elapsed, _ := m.Elapsed(now)
			writeJSON(w, http.StatusOK, matchView{
				Match:            m,
				Phase:            phase,
				CountdownSeconds: int64(countdown.Seconds()),
				ElapsedSeconds:   int64(elapsed.Seconds()),
			})
		case http.MethodPost:
			var m match.Match
			if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
				http.Error(w, "Invalid JSON", http.StatusBadRequest)
				return
			}
			if m.ID == "" {
				m.ID = uuid.NewString()
			}
			if m.CreatedAt == 0 {
				m.CreatedAt = time.Now().Unix()
			}
			if _, err := s.Arena.GetVenue(m.VenueID); err != nil {
				http.Error(w, "Venue not found", http.StatusNotFound)
				return
			}
			if err := s.Matches.CreateMatch(&m); err != nil {
				log.Error("Failed to create match", "error", err, "matchID", m.ID)
				http.Error(w, "Failed to save match", http.StatusInternalServerError)
				return
			}
			writeJSON(w, http.StatusOK, m)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func (s *Server) JoinMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			MatchID  string `json:"match_id"`
			PlayerID string `json:"player_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if !s.Arena.IsKnownPlayer(req.PlayerID) {
			http.Error(w, "Unknown player", http.StatusNotFound)
			return
		}
		m, err := s.Matches.GetMatch(req.MatchID)
		if errors.Is(err, match.ErrNotFound) {
			http.Error(w, "Match not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, "Failed to get match", http.StatusInternalServerError)
			return
		}

		// Registration and the fee debit commit in one store transaction;
		// a re-join is a no-op and never charges again.
		fee := m.PricePerPlayer
		if isDryRunFromContext(r) {
			fee = 0
		}
		err = s.Matches.AddPaidParticipant(req.MatchID, req.PlayerID, fee, uuid.NewString(), time.Now().Unix())
		if errors.Is(err, match.ErrInsufficientFunds) {
			http.Error(w, "Insufficient wallet balance", http.StatusPaymentRequired)
			return
		}
		if err != nil {
			log.Error("Failed to join match", "error", err, "matchID", req.MatchID, "playerID", req.PlayerID)
			http.Error(w, "Failed to join match", http.StatusInternalServerError)
			return
		}

		if !isDryRunFromContext(r) {
			s.watchCheckIn(m, req.PlayerID)
		}
		w.Write([]byte("OK"))
	}
}

// watchCheckIn spawns the auto check-in monitor for a registered player when
// the match's venue has coordinates.
func (s *Server) watchCheckIn(m *match.Match, playerID string) {
	venue, err := s.Arena.GetVenue(m.VenueID)
	if err != nil {
		log.Warn("No venue found for check-in monitor", "error", err, "venueID", m.VenueID)
		return
	}
	if !venue.HasCoordinates() {
		return
	}
	s.Monitors.Watch(m, playerID, venue.Latitude, venue.Longitude)
}

// applyMonitorEvent fans a monitor's side effects out to the notifier and the
// event bus. The store write already happened inside the monitor.
func (s *Server) applyMonitorEvent(ev checkin.Event) {
	switch ev.Type {
	case checkin.EventCheckedIn:
		m, err := s.Matches.GetMatch(ev.MatchID)
		if err != nil {
			log.Error("Failed to load match for check-in event", "error", err, "matchID", ev.MatchID)
			return
		}
		playerName := ev.PlayerID
		if profile, err := s.Arena.GetProfile(ev.PlayerID); err == nil {
			playerName = profile.FirstName + " " + profile.LastName
		}
		s.Notifier.SendCheckInNotification(m, playerName, ev.Auto, false)
		s.pubsub.SendMessage(pubsub.EventMatchCheckedIn, map[string]any{
			"match_id":  ev.MatchID,
			"player_id": ev.PlayerID,
			"auto":      ev.Auto,
		})
	case checkin.EventCheckInFailed:
		log.Warn("Monitor reported a failed check-in", "matchID", ev.MatchID, "playerID", ev.PlayerID, "error", ev.Error)
	}
}

func (s *Server) ListParticipantsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.URL.Query().Get("matchID")
		if matchID == "" {
			http.Error(w, "matchID is required", http.StatusBadRequest)
			return
		}
		participants, err := s.Matches.ListParticipants(matchID)
		if err != nil {
			log.Error("Failed to list participants", "error", err, "matchID", matchID)
			http.Error(w, "Failed to get participants", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, participants)
	}
}

// CheckInHandler commits a manual check-in. The proximity gate is enforced
// here, server side, from the submitted position; the stored first-write-wins
// rule settles any race with the auto check-in monitor.
func (s *Server) CheckInHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			MatchID   string  `json:"match_id"`
			PlayerID  string  `json:"player_id"`
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		m, err := s.Matches.GetMatch(req.MatchID)
		if errors.Is(err, match.ErrNotFound) {
			http.Error(w, "Match not found", http.StatusNotFound)
			return
		}
		if err != nil {
			log.Error("Failed to get match", "error", err, "matchID", req.MatchID)
			http.Error(w, "Failed to get match", http.StatusInternalServerError)
			return
		}

		venue, err := s.Arena.GetVenue(m.VenueID)
		if err != nil {
			log.Error("Failed to get venue for check-in", "error", err, "venueID", m.VenueID)
			http.Error(w, "Venue not found", http.StatusNotFound)
			return
		}
		if !venue.HasCoordinates() {
			s.Metrics.IncCheckInsFailed()
			http.Error(w, "Check-in is not available for this venue", http.StatusConflict)
			return
		}

		// The submitted sample also feeds the proximity monitors.
		pos := checkin.Position{Latitude: req.Latitude, Longitude: req.Longitude}
		s.Tracker.Report(req.PlayerID, pos)

		now := time.Now()
		untilStart, err := m.UntilStart(now)
		if err != nil {
			http.Error(w, "Invalid match times", http.StatusInternalServerError)
			return
		}
		dist := geo.Haversine(req.Latitude, req.Longitude, *venue.Latitude, *venue.Longitude)
		decision := checkin.Evaluate(dist, untilStart)
		if !decision.Open {
			s.Metrics.IncCheckInsFailed()
			log.Info("Check-in rejected by proximity gate", "matchID", req.MatchID, "playerID", req.PlayerID, "distance_m", dist, "until_start", untilStart)
			writeJSON(w, http.StatusForbidden, map[string]any{
				"error":           "check-in window is closed or you are too far from the venue",
				"distance_meters": dist,
			})
			return
		}

		if isDryRunFromContext(r) {
			writeJSON(w, http.StatusOK, decision)
			return
		}

		err = s.Matches.CheckIn(req.MatchID, req.PlayerID, req.Latitude, req.Longitude, now.Unix())
		switch {
		case errors.Is(err, match.ErrNotRegistered):
			s.Metrics.IncCheckInsFailed()
			http.Error(w, "Player is not registered for this match", http.StatusNotFound)
			return
		case errors.Is(err, match.ErrAlreadyCheckedIn):
			s.Metrics.IncCheckInsFailed()
			http.Error(w, "Player is already checked in", http.StatusConflict)
			return
		case err != nil:
			log.Error("Failed to check in", "error", err, "matchID", req.MatchID, "playerID", req.PlayerID)
			http.Error(w, "Failed to check in", http.StatusInternalServerError)
			return
		}

		s.Metrics.IncCheckIns()
		s.Monitors.Stop(req.MatchID, req.PlayerID)
		playerName := req.PlayerID
		if profile, err := s.Arena.GetProfile(req.PlayerID); err == nil {
			playerName = profile.FirstName + " " + profile.LastName
		}
		s.Notifier.SendCheckInNotification(m, playerName, false, false)
		s.pubsub.SendMessage(pubsub.EventMatchCheckedIn, map[string]any{
			"match_id":  req.MatchID,
			"player_id": req.PlayerID,
		})
		writeJSON(w, http.StatusOK, map[string]any{
			"checked_in":      true,
			"distance_meters": dist,
		})
	}
}

func (s *Server) RateMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var rating match.Rating
		if err := json.NewDecoder(r.Body).Decode(&rating); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		m, err := s.Matches.GetMatch(rating.MatchID)
		if errors.Is(err, match.ErrNotFound) {
			http.Error(w, "Match not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, "Failed to get match", http.StatusInternalServerError)
			return
		}
		phase, err := m.PhaseAt(time.Now())
		if err != nil {
			http.Error(w, "Invalid match times", http.StatusInternalServerError)
			return
		}
		if phase != match.PhaseFinished {
			http.Error(w, "Match is not finished yet", http.StatusConflict)
			return
		}

		rating.CreatedAt = time.Now().Unix()
		err = s.Matches.SubmitRating(&rating)
		switch {
		case errors.Is(err, match.ErrInvalidRating):
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		case errors.Is(err, match.ErrAlreadyRated):
			http.Error(w, err.Error(), http.StatusConflict)
			return
		case err != nil:
			log.Error("Failed to submit rating", "error", err, "matchID", rating.MatchID)
			http.Error(w, "Failed to submit rating", http.StatusInternalServerError)
			return
		}

		s.Metrics.IncRatingsSubmitted()
		w.Write([]byte("OK"))
	}
}

func (s *Server) ListRatingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.URL.Query().Get("matchID")
		if matchID == "" {
			http.Error(w, "matchID is required", http.StatusBadRequest)
			return
		}
		ratings, err := s.Matches.ListRatings(matchID)
		if err != nil {
			log.Error("Failed to list ratings", "error", err, "matchID", matchID)
			http.Error(w, "Failed to get ratings", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, ratings)
	}
}

// ReportLocationHandler ingests device position samples (or their failure
// modes) from clients. The proximity monitors read from the tracker.
func (s *Server) ReportLocationHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			PlayerID  string  `json:"player_id"`
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
			Error     string  `json:"error,omitempty"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if req.PlayerID == "" {
			http.Error(w, "player_id is required", http.StatusBadRequest)
			return
		}

		switch req.Error {
		case "":
			s.Tracker.Report(req.PlayerID, checkin.Position{Latitude: req.Latitude, Longitude: req.Longitude})
		case "permission-denied":
			s.Tracker.ReportError(req.PlayerID, checkin.ErrPermissionDenied)
		case "timeout":
			s.Tracker.ReportError(req.PlayerID, checkin.ErrTimeout)
		default:
			s.Tracker.ReportError(req.PlayerID, checkin.ErrUnavailable)
		}
		w.Write([]byte("OK"))
	}
}

func (s *Server) WalletHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("userID")
		if userID == "" {
			http.Error(w, "userID is required", http.StatusBadRequest)
			return
		}
		wlt, err := s.Wallets.GetWallet(userID)
		if err != nil {
			log.Error("Failed to get wallet", "error", err, "userID", userID)
			http.Error(w, "Failed to get wallet", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, wlt)
	}
}

func (s *Server) ListTransactionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("userID")
		if userID == "" {
			http.Error(w, "userID is required", http.StatusBadRequest)
			return
		}
		txns, err := s.Wallets.ListTransactions(userID)
		if err != nil {
			log.Error("Failed to list transactions", "error", err, "userID", userID)
			http.Error(w, "Failed to get transactions", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, txns)
	}
}

// TopupHandler creates a pending top-up transaction and issues an invoice for
// it. The wallet is only credited once the provider confirms over the webhook.
func (s *Server) TopupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			UserID     string  `json:"user_id"`
			Amount     float64 `json:"amount"`
			PayerEmail string  `json:"payer_email,omitempty"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if req.UserID == "" || req.Amount <= 0 {
			http.Error(w, "user_id and a positive amount are required", http.StatusBadRequest)
			return
		}

		now := time.Now().Unix()
		txn := &wallet.Transaction{
			ID:            uuid.NewString(),
			UserID:        req.UserID,
			Amount:        req.Amount,
			Type:          wallet.TypeTopup,
			Status:        wallet.StatusPending,
			PaymentMethod: "invoice",
			Description:   "Wallet top-up",
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := s.Wallets.CreateTransaction(txn); err != nil {
			log.Error("Failed to create top-up transaction", "error", err, "userID", req.UserID)
			http.Error(w, "Failed to create transaction", http.StatusInternalServerError)
			return
		}

		invoice, err := s.XenditClient.CreateInvoice(&xendit.CreateInvoiceRequest{
			ExternalID:  txn.ID,
			Amount:      req.Amount,
			Description: "ArenaX wallet top-up",
			PayerEmail:  req.PayerEmail,
		})
		if err != nil {
			log.Error("Failed to create invoice", "error", err, "transactionID", txn.ID)
			http.Error(w, "Failed to create invoice", http.StatusBadGateway)
			return
		}
		if err := s.Wallets.SetExternalID(txn.ID, invoice.ID); err != nil {
			log.Error("Failed to record invoice ID", "error", err, "transactionID", txn.ID)
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"transaction_id": txn.ID,
			"invoice_id":     invoice.ID,
			"invoice_url":    invoice.InvoiceURL,
		})
	}
}

// PaymentWebhookHandler applies invoice callbacks from the payment provider.
// Deliveries are verified by the shared callback token and deduplicated by
// event ID in the store.
func (s *Server) PaymentWebhookHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if r.Header.Get("x-callback-token") != s.Cfg.Xendit.WebhookToken {
			log.Warn("Webhook delivery with bad callback token")
			http.Error(w, "Invalid callback token", http.StatusUnauthorized)
			return
		}

		var payload struct {
			ID         string  `json:"id"`
			ExternalID string  `json:"external_id"`
			Status     string  `json:"status"`
			PaidAmount float64 `json:"paid_amount"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		eventID := r.Header.Get("webhook-id")
		if eventID == "" {
			// Fall back to a delivery-stable key so replays still dedupe.
			eventID = payload.ID + ":" + payload.Status
		}

		result, err := s.Wallets.ProcessInvoiceEvent(&wallet.InvoiceEvent{
			EventID:    eventID,
			InvoiceID:  payload.ID,
			ExternalID: payload.ExternalID,
			Status:     payload.Status,
			Amount:     payload.PaidAmount,
		}, time.Now().Unix())
		if errors.Is(err, wallet.ErrTransactionNotFound) {
			http.Error(w, "Unknown transaction", http.StatusNotFound)
			return
		}
		if err != nil {
			log.Error("Failed to process webhook event", "error", err, "eventID", eventID)
			http.Error(w, "Failed to process event", http.StatusInternalServerError)
			return
		}

		switch result {
		case wallet.ResultDuplicate:
			s.Metrics.IncWebhookDuplicates()
		case wallet.ResultCredited:
			s.Metrics.IncWebhooksProcessed()
			txn, err := s.Wallets.GetTransaction(payload.ExternalID)
			if err == nil {
				s.Notifier.SendPaymentNotification(txn.UserID, txn.Amount, isDryRunFromContext(r))
				s.pubsub.SendMessage(pubsub.EventWalletCredited, txn)
			}
		default:
			s.Metrics.IncWebhooksProcessed()
		}

		writeJSON(w, http.StatusOK, map[string]string{"result": string(result)})
	}
}

func (s *Server) ProcessMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Starting match processing...")
		isDryRun := isDryRunFromContext(r)

		s.Processor.ProcessMatches(isDryRun)

		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Match processing completed.")
		log.Info("Match processing finished.")
	}
}
