package match

import (
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
)

// New creates a new MatchStore.
func New(db *sql.DB) MatchStore {
	return &store{
		db: db,
	}
}

// CreateMatch inserts a new match or updates an existing one. It is "dumb" and
// does not change the stored status of an existing match.
func (s *store) CreateMatch(m *Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m.Status == "" {
		m.Status = StatusOpen
	}

	_, err := s.db.Exec(`
		INSERT INTO matches (id, venue_id, sport, date, start_time, end_time, status, capacity, price_per_player, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			venue_id = excluded.venue_id,
			sport = excluded.sport,
			date = excluded.date,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			capacity = excluded.capacity,
			price_per_player = excluded.price_per_player;
	`, m.ID, m.VenueID, m.Sport, m.Date, m.StartTime, m.EndTime, m.Status, m.Capacity, m.PricePerPlayer, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create match: %w", err)
	}
	return nil
}

// GetMatch retrieves a single match by its ID.
func (s *store) GetMatch(matchID string) (*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, venue_id, sport, date, start_time, end_time, status, capacity, price_per_player, created_at, booking_notified_ts
		FROM matches WHERE id = ?
	`, matchID)
	m, err := scanMatch(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	return m, nil
}

// GetAllMatches retrieves all matches, newest first.
func (s *store) GetAllMatches() ([]*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryMatches(`
		SELECT id, venue_id, sport, date, start_time, end_time, status, capacity, price_per_player, created_at, booking_notified_ts
		FROM matches ORDER BY date DESC, start_time DESC
	`)
}

// GetMatchesForProcessing retrieves all matches that are not yet in a terminal state.
func (s *store) GetMatchesForProcessing() ([]*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryMatches(`
		SELECT id, venue_id, sport, date, start_time, end_time, status, capacity, price_per_player, created_at, booking_notified_ts
		FROM matches WHERE status NOT IN (?, ?)
	`, StatusCompleted, StatusCancelled)
}

func (s *store) queryMatches(query string, args ...any) ([]*Match, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []*Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			log.Error("Failed to scan match row", "error", err)
			continue
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// scanMatch is a helper to scan a single match row.
func scanMatch(scanner interface{ Scan(...any) error }) (*Match, error) {
	var m Match
	var notifiedTs sql.NullInt64
	err := scanner.Scan(
		&m.ID, &m.VenueID, &m.Sport, &m.Date, &m.StartTime, &m.EndTime,
		&m.Status, &m.Capacity, &m.PricePerPlayer, &m.CreatedAt, &notifiedTs,
	)
	if err != nil {
		return nil, err
	}
	if notifiedTs.Valid {
		m.BookingNotifiedTs = &notifiedTs.Int64
	}
	return &m, nil
}

// UpdateStatus transitions a match to a new stored status.
func (s *store) UpdateStatus(matchID string, status Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("UPDATE matches SET status = ? WHERE id = ?", status, matchID)
	return err
}

// MarkBookingNotified records when the booking notification for a match was sent.
func (s *store) MarkBookingNotified(matchID string, ts int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("UPDATE matches SET booking_notified_ts = ? WHERE id = ?", ts, matchID)
	return err
}

// AddParticipant registers a player for a match. The (match, player) pair is
// unique; re-joining is a no-op.
func (s *store) AddParticipant(matchID, playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO match_players (match_id, player_id)
		VALUES (?, ?)
		ON CONFLICT(match_id, player_id) DO NOTHING;
	`, matchID, playerID)
	if err != nil {
		return fmt.Errorf("failed to add participant: %w", err)
	}
	return nil
}

// AddPaidParticipant registers a player and charges the match fee from their
// wallet in the same SQL transaction, so a failed registration never leaves
// the fee debited. Re-joining commits nothing and charges nothing, and an
// uncoverable fee rolls the registration back.
func (s *store) AddPaidParticipant(matchID, playerID string, fee float64, txnID string, now int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO match_players (match_id, player_id)
		VALUES (?, ?)
		ON CONFLICT(match_id, player_id) DO NOTHING;
	`, matchID, playerID)
	if err != nil {
		return fmt.Errorf("failed to add participant: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Already registered, so the fee was already paid.
		return tx.Commit()
	}

	if fee > 0 {
		res, err = tx.Exec(`
			UPDATE wallets SET balance = balance - ?, updated_at = ?
			WHERE user_id = ? AND balance >= ?
		`, fee, now, playerID, fee)
		if err != nil {
			return fmt.Errorf("failed to debit wallet: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrInsufficientFunds
		}
		_, err = tx.Exec(`
			INSERT INTO transactions (id, user_id, amount, type, status, payment_method, description, created_at, updated_at)
			VALUES (?, ?, ?, 'payment', 'completed', 'wallet', ?, ?, ?)
		`, txnID, playerID, -fee, fmt.Sprintf("Match fee for %s", matchID), now, now)
		if err != nil {
			return fmt.Errorf("failed to record match fee: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit join: %w", err)
	}
	log.Info("Player joined match", "matchID", matchID, "playerID", playerID, "fee", fee)
	return nil
}

// GetParticipant retrieves a single participant row.
func (s *store) GetParticipant(matchID, playerID string) (*Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT match_id, player_id, checked_in_at, check_in_latitude, check_in_longitude
		FROM match_players WHERE match_id = ? AND player_id = ?
	`, matchID, playerID)
	p, err := scanParticipant(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotRegistered
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}
	return p, nil
}

// ListParticipants retrieves all participants of a match with their check-in state.
func (s *store) ListParticipants(matchID string) ([]Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT match_id, player_id, checked_in_at, check_in_latitude, check_in_longitude
		FROM match_players WHERE match_id = ? ORDER BY player_id
	`, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var participants []Participant
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			log.Error("Failed to scan participant row", "error", err, "matchID", matchID)
			continue
		}
		participants = append(participants, *p)
	}
	return participants, rows.Err()
}

func scanParticipant(scanner interface{ Scan(...any) error }) (*Participant, error) {
	var p Participant
	var checkedInAt sql.NullInt64
	var lat, lng sql.NullFloat64
	if err := scanner.Scan(&p.MatchID, &p.PlayerID, &checkedInAt, &lat, &lng); err != nil {
		return nil, err
	}
	if checkedInAt.Valid {
		p.CheckedInAt = &checkedInAt.Int64
	}
	if lat.Valid {
		p.CheckInLat = &lat.Float64
	}
	if lng.Valid {
		p.CheckInLng = &lng.Float64
	}
	return &p, nil
}

// CheckIn commits a check-in for a registered participant. The guard is in the
// WHERE clause: only a row whose timestamp is still NULL is updated, so the
// first write wins and concurrent commits cannot overwrite each other.
func (s *store) CheckIn(matchID, playerID string, lat, lng float64, now int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`
		UPDATE match_players
		SET checked_in_at = ?, check_in_latitude = ?, check_in_longitude = ?
		WHERE match_id = ? AND player_id = ? AND checked_in_at IS NULL
	`, now, lat, lng, matchID, playerID)
	if err != nil {
		return fmt.Errorf("failed to commit check-in: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected > 0 {
		log.Info("Player checked in", "matchID", matchID, "playerID", playerID)
		return nil
	}

	var exists bool
	err = s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM match_players WHERE match_id = ? AND player_id = ?)", matchID, playerID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to verify participant: %w", err)
	}
	if !exists {
		return ErrNotRegistered
	}
	return ErrAlreadyCheckedIn
}

// SubmitRating inserts one rating row per (match, player). All three scores are
// required; zero means unset and is rejected before touching the database.
func (s *store) SubmitRating(r *Rating) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, score := range []int{r.VenueRating, r.TeamRating, r.SystemRating} {
		if score < 1 || score > 5 {
			return ErrInvalidRating
		}
	}

	res, err := s.db.Exec(`
		INSERT INTO match_ratings (match_id, player_id, venue_rating, team_rating, system_rating, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(match_id, player_id) DO NOTHING;
	`, r.MatchID, r.PlayerID, r.VenueRating, r.TeamRating, r.SystemRating, r.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to submit rating: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrAlreadyRated
	}
	log.Info("Rating submitted", "matchID", r.MatchID, "playerID", r.PlayerID)
	return nil
}

// ListRatings retrieves all ratings submitted for a match.
func (s *store) ListRatings(matchID string) ([]Rating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT match_id, player_id, venue_rating, team_rating, system_rating, created_at
		FROM match_ratings WHERE match_id = ? ORDER BY created_at
	`, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ratings []Rating
	for rows.Next() {
		var r Rating
		if err := rows.Scan(&r.MatchID, &r.PlayerID, &r.VenueRating, &r.TeamRating, &r.SystemRating, &r.CreatedAt); err != nil {
			log.Error("Failed to scan rating row", "error", err, "matchID", matchID)
			continue
		}
		ratings = append(ratings, r)
	}
	return ratings, rows.Err()
}

func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		log.Error("Failed to begin transaction for clearing match store", "error", err)
		return
	}
	for _, table := range []string{"match_ratings", "match_players", "matches"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			log.Error("Failed to clear table", "error", err, "table", table)
			tx.Rollback()
			return
		}
	}
	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit transaction for clearing match store", "error", err)
	}
}

func (s *store) ClearMatch(matchID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec("DELETE FROM matches WHERE id = ?", matchID)
	if err != nil {
		log.Error("Failed to clear match", "error", err, "matchID", matchID)
	}
}
