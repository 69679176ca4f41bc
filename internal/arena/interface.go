package arena

// ArenaStore defines the interface for interacting with the platform's
// profiles, venues, courts and bookings.
type ArenaStore interface {
	UpsertProfile(p *Profile) error
	UpsertProfiles(profiles []Profile) error
	GetProfile(playerID string) (*Profile, error)
	GetAllProfiles() ([]Profile, error)
	IsKnownPlayer(playerID string) bool

	UpsertVenue(v *Venue) error
	GetVenue(venueID string) (*Venue, error)
	GetAllVenues() ([]*Venue, error)

	UpsertCourt(c *Court) error
	ListCourts(venueID string) ([]Court, error)

	CreateBooking(b *Booking) error
	ListVenueBookings(venueID string) ([]VenueBooking, error)
	UpdateBookingStatus(bookingID string, status BookingStatus) error

	Clear()
}
