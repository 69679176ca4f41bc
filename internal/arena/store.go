package arena

import (
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
)

// New creates a new ArenaStore.
func New(db *sql.DB) ArenaStore {
	return &store{
		db: db,
	}
}

func (s *store) UpsertProfile(p *Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.upsertProfileLocked(p)
}

func (s *store) upsertProfileLocked(p *Profile) error {
	_, err := s.db.Exec(`
		INSERT INTO profiles (id, first_name, last_name, email, position, skill_level)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			email = excluded.email,
			position = excluded.position,
			skill_level = excluded.skill_level;
	`, p.ID, p.FirstName, p.LastName, p.Email, p.Position, p.SkillLevel)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

func (s *store) UpsertProfiles(profiles []Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range profiles {
		if err := s.upsertProfileLocked(&profiles[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *store) GetProfile(playerID string) (*Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var p Profile
	var email, position, skill sql.NullString
	err := s.db.QueryRow(`
		SELECT id, first_name, last_name, email, position, skill_level
		FROM profiles WHERE id = ?
	`, playerID).Scan(&p.ID, &p.FirstName, &p.LastName, &email, &position, &skill)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("profile %s not found", playerID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	p.Email = email.String
	p.Position = position.String
	p.SkillLevel = skill.String
	return &p, nil
}

func (s *store) GetAllProfiles() ([]Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT id, first_name, last_name, email, position, skill_level FROM profiles ORDER BY last_name, first_name")
	if err != nil {
		log.Error("Failed to query all profiles", "error", err)
		return nil, err
	}
	defer rows.Close()

	var profiles []Profile
	for rows.Next() {
		var p Profile
		var email, position, skill sql.NullString
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &email, &position, &skill); err != nil {
			log.Error("Failed to scan profile row", "error", err)
			continue
		}
		p.Email = email.String
		p.Position = position.String
		p.SkillLevel = skill.String
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (s *store) IsKnownPlayer(playerID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var exists bool
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM profiles WHERE id = ?)", playerID).Scan(&exists)
	if err != nil {
		log.Error("Failed to check if player exists", "error", err, "playerID", playerID)
		return false
	}
	return exists
}

func (s *store) UpsertVenue(v *Venue) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO venues (id, owner_id, name, address, latitude, longitude)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			owner_id = excluded.owner_id,
			name = excluded.name,
			address = excluded.address,
			latitude = excluded.latitude,
			longitude = excluded.longitude;
	`, v.ID, v.OwnerID, v.Name, v.Address, v.Latitude, v.Longitude)
	if err != nil {
		return fmt.Errorf("failed to upsert venue: %w", err)
	}
	return nil
}

func (s *store) GetVenue(venueID string) (*Venue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow("SELECT id, owner_id, name, address, latitude, longitude FROM venues WHERE id = ?", venueID)
	v, err := scanVenue(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("venue %s not found", venueID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get venue: %w", err)
	}
	return v, nil
}

func (s *store) GetAllVenues() ([]*Venue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT id, owner_id, name, address, latitude, longitude FROM venues ORDER BY name")
	if err != nil {
		log.Error("Failed to query all venues", "error", err)
		return nil, err
	}
	defer rows.Close()

	var venues []*Venue
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			log.Error("Failed to scan venue row", "error", err)
			continue
		}
		venues = append(venues, v)
	}
	return venues, rows.Err()
}

func scanVenue(scanner interface{ Scan(...any) error }) (*Venue, error) {
	var v Venue
	var lat, lng sql.NullFloat64
	if err := scanner.Scan(&v.ID, &v.OwnerID, &v.Name, &v.Address, &lat, &lng); err != nil {
		return nil, err
	}
	if lat.Valid {
		v.Latitude = &lat.Float64
	}
	if lng.Valid {
		v.Longitude = &lng.Float64
	}
	return &v, nil
}

func (s *store) UpsertCourt(c *Court) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO courts (id, venue_id, name, sport, price_per_hour)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			venue_id = excluded.venue_id,
			name = excluded.name,
			sport = excluded.sport,
			price_per_hour = excluded.price_per_hour;
	`, c.ID, c.VenueID, c.Name, c.Sport, c.PricePerHour)
	if err != nil {
		return fmt.Errorf("failed to upsert court: %w", err)
	}
	return nil
}

func (s *store) ListCourts(venueID string) ([]Court, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT id, venue_id, name, sport, price_per_hour FROM courts WHERE venue_id = ? ORDER BY name", venueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courts []Court
	for rows.Next() {
		var c Court
		if err := rows.Scan(&c.ID, &c.VenueID, &c.Name, &c.Sport, &c.PricePerHour); err != nil {
			log.Error("Failed to scan court row", "error", err, "venueID", venueID)
			continue
		}
		courts = append(courts, c)
	}
	return courts, rows.Err()
}

func (s *store) CreateBooking(b *Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b.Status == "" {
		b.Status = BookingConfirmed
	}
	_, err := s.db.Exec(`
		INSERT INTO bookings (id, venue_id, court_id, player_id, date, start_time, end_time, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, b.ID, b.VenueID, b.CourtID, b.PlayerID, b.Date, b.StartTime, b.EndTime, b.Status, b.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// ListVenueBookings retrieves all bookings for a venue joined with the court
// name and the customer profile, newest date first.
func (s *store) ListVenueBookings(venueID string) ([]VenueBooking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT b.id, b.venue_id, b.court_id, b.player_id, b.date, b.start_time, b.end_time, b.status, b.created_at,
			c.name, COALESCE(p.first_name || ' ' || p.last_name, 'Unknown User'), COALESCE(p.email, '-')
		FROM bookings b
		JOIN courts c ON b.court_id = c.id
		LEFT JOIN profiles p ON b.player_id = p.id
		WHERE b.venue_id = ?
		ORDER BY b.date DESC, b.start_time ASC
	`, venueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []VenueBooking
	for rows.Next() {
		var vb VenueBooking
		err := rows.Scan(
			&vb.ID, &vb.VenueID, &vb.CourtID, &vb.PlayerID, &vb.Date, &vb.StartTime, &vb.EndTime, &vb.Status, &vb.CreatedAt,
			&vb.CourtName, &vb.CustomerName, &vb.CustomerEmail,
		)
		if err != nil {
			log.Error("Failed to scan booking row", "error", err, "venueID", venueID)
			continue
		}
		bookings = append(bookings, vb)
	}
	return bookings, rows.Err()
}

func (s *store) UpdateBookingStatus(bookingID string, status BookingStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("UPDATE bookings SET status = ? WHERE id = ?", status, bookingID)
	return err
}

func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		log.Error("Failed to begin transaction for clearing arena store", "error", err)
		return
	}
	for _, table := range []string{"bookings", "courts", "venues", "profiles"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			log.Error("Failed to clear table", "error", err, "table", table)
			tx.Rollback()
			return
		}
	}
	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit transaction for clearing arena store", "error", err)
	}
}
