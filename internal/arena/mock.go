package arena

import "sync"

// MockStore is a hand-written mock implementation of ArenaStore for testing.
type MockStore struct {
	mu sync.Mutex

	UpsertProfileFunc       func(p *Profile) error
	GetProfileFunc          func(playerID string) (*Profile, error)
	GetAllProfilesFunc      func() ([]Profile, error)
	IsKnownPlayerFunc       func(playerID string) bool
	UpsertVenueFunc         func(v *Venue) error
	GetVenueFunc            func(venueID string) (*Venue, error)
	GetAllVenuesFunc        func() ([]*Venue, error)
	UpsertCourtFunc         func(c *Court) error
	ListCourtsFunc          func(venueID string) ([]Court, error)
	CreateBookingFunc       func(b *Booking) error
	ListVenueBookingsFunc   func(venueID string) ([]VenueBooking, error)
	UpdateBookingStatusFunc func(bookingID string, status BookingStatus) error

	CreateBookingCalls []*Booking
	UpsertProfileCalls []*Profile
	ClearCalls         int
}

// NewMock creates a new mock ArenaStore.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) UpsertProfile(p *Profile) error {
	m.mu.Lock()
	m.UpsertProfileCalls = append(m.UpsertProfileCalls, p)
	m.mu.Unlock()
	if m.UpsertProfileFunc != nil {
		return m.UpsertProfileFunc(p)
	}
	return nil
}

func (m *MockStore) UpsertProfiles(profiles []Profile) error {
	for i := range profiles {
		if err := m.UpsertProfile(&profiles[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *MockStore) GetProfile(playerID string) (*Profile, error) {
	if m.GetProfileFunc != nil {
		return m.GetProfileFunc(playerID)
	}
	return &Profile{ID: playerID}, nil
}

func (m *MockStore) GetAllProfiles() ([]Profile, error) {
	if m.GetAllProfilesFunc != nil {
		return m.GetAllProfilesFunc()
	}
	return nil, nil
}

func (m *MockStore) IsKnownPlayer(playerID string) bool {
	if m.IsKnownPlayerFunc != nil {
		return m.IsKnownPlayerFunc(playerID)
	}
	return true
}

func (m *MockStore) UpsertVenue(v *Venue) error {
	if m.UpsertVenueFunc != nil {
		return m.UpsertVenueFunc(v)
	}
	return nil
}

func (m *MockStore) GetVenue(venueID string) (*Venue, error) {
	if m.GetVenueFunc != nil {
		return m.GetVenueFunc(venueID)
	}
	return &Venue{ID: venueID}, nil
}

func (m *MockStore) GetAllVenues() ([]*Venue, error) {
	if m.GetAllVenuesFunc != nil {
		return m.GetAllVenuesFunc()
	}
	return nil, nil
}

func (m *MockStore) UpsertCourt(c *Court) error {
	if m.UpsertCourtFunc != nil {
		return m.UpsertCourtFunc(c)
	}
	return nil
}

func (m *MockStore) ListCourts(venueID string) ([]Court, error) {
	if m.ListCourtsFunc != nil {
		return m.ListCourtsFunc(venueID)
	}
	return nil, nil
}

func (m *MockStore) CreateBooking(b *Booking) error {
	m.mu.Lock()
	m.CreateBookingCalls = append(m.CreateBookingCalls, b)
	m.mu.Unlock()
	if m.CreateBookingFunc != nil {
		return m.CreateBookingFunc(b)
	}
	return nil
}

func (m *MockStore) ListVenueBookings(venueID string) ([]VenueBooking, error) {
	if m.ListVenueBookingsFunc != nil {
		return m.ListVenueBookingsFunc(venueID)
	}
	return nil, nil
}

func (m *MockStore) UpdateBookingStatus(bookingID string, status BookingStatus) error {
	if m.UpdateBookingStatusFunc != nil {
		return m.UpdateBookingStatusFunc(bookingID, status)
	}
	return nil
}

func (m *MockStore) Clear() {
	m.mu.Lock()
	m.ClearCalls++
	m.mu.Unlock()
}
