package arena_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/arenax/arenax-server/internal/arena"
	"github.com/arenax/arenax-server/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) (arena.ArenaStore, *sql.DB, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	store := arena.New(db)
	return store, db, dbTeardown
}

func TestUpsertAndGetProfile(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.UpsertProfile(&arena.Profile{ID: "p1", FirstName: "Aisha", LastName: "Rahman", Email: "aisha@example.com", SkillLevel: "intermediate"}))

	assert.True(t, store.IsKnownPlayer("p1"))
	assert.False(t, store.IsKnownPlayer("p2"))

	p, err := store.GetProfile("p1")
	require.NoError(t, err)
	assert.Equal(t, "Aisha", p.FirstName)
	assert.Equal(t, "intermediate", p.SkillLevel)

	// Upsert updates in place.
	require.NoError(t, store.UpsertProfile(&arena.Profile{ID: "p1", FirstName: "Aisha", LastName: "Rahman", SkillLevel: "advanced"}))
	p, err = store.GetProfile("p1")
	require.NoError(t, err)
	assert.Equal(t, "advanced", p.SkillLevel)

	all, err := store.GetAllProfiles()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestVenueCoordinates(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	lat, lng := 3.139, 101.6869
	require.NoError(t, store.UpsertVenue(&arena.Venue{ID: "v1", OwnerID: "o1", Name: "Arena One", Address: "1 Main St", Latitude: &lat, Longitude: &lng}))
	require.NoError(t, store.UpsertVenue(&arena.Venue{ID: "v2", OwnerID: "o1", Name: "Arena Two", Address: "2 Main St"}))

	v1, err := store.GetVenue("v1")
	require.NoError(t, err)
	assert.True(t, v1.HasCoordinates())
	assert.Equal(t, lat, *v1.Latitude)

	v2, err := store.GetVenue("v2")
	require.NoError(t, err)
	assert.False(t, v2.HasCoordinates(), "venue without coordinates cannot offer proximity check-in")

	venues, err := store.GetAllVenues()
	require.NoError(t, err)
	assert.Len(t, venues, 2)
}

func TestCourtsAndBookings(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.UpsertVenue(&arena.Venue{ID: "v1", OwnerID: "o1", Name: "Arena One", Address: "1 Main St"}))
	require.NoError(t, store.UpsertCourt(&arena.Court{ID: "c1", VenueID: "v1", Name: "Court A", Sport: "futsal", PricePerHour: 80}))
	require.NoError(t, store.UpsertProfile(&arena.Profile{ID: "p1", FirstName: "Ben", LastName: "Ng", Email: "ben@example.com"}))

	courts, err := store.ListCourts("v1")
	require.NoError(t, err)
	require.Len(t, courts, 1)
	assert.Equal(t, "Court A", courts[0].Name)

	b := &arena.Booking{
		ID:        "b1",
		VenueID:   "v1",
		CourtID:   "c1",
		PlayerID:  "p1",
		Date:      "2026-08-29",
		StartTime: "18:00:00",
		EndTime:   "19:00:00",
		CreatedAt: time.Now().Unix(),
	}
	require.NoError(t, store.CreateBooking(b))

	bookings, err := store.ListVenueBookings("v1")
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "Court A", bookings[0].CourtName)
	assert.Equal(t, "Ben Ng", bookings[0].CustomerName)
	assert.Equal(t, arena.BookingConfirmed, bookings[0].Status)

	require.NoError(t, store.UpdateBookingStatus("b1", arena.BookingCancelled))
	bookings, err = store.ListVenueBookings("v1")
	require.NoError(t, err)
	assert.Equal(t, arena.BookingCancelled, bookings[0].Status)
}

func TestListVenueBookings_UnknownCustomer(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.UpsertVenue(&arena.Venue{ID: "v1", OwnerID: "o1", Name: "Arena One", Address: "1 Main St"}))
	require.NoError(t, store.UpsertCourt(&arena.Court{ID: "c1", VenueID: "v1", Name: "Court A", Sport: "futsal"}))

	require.NoError(t, store.CreateBooking(&arena.Booking{
		ID: "b1", VenueID: "v1", CourtID: "c1", PlayerID: "deleted-user",
		Date: "2026-08-29", StartTime: "10:00:00", EndTime: "11:00:00", CreatedAt: 1,
	}))

	bookings, err := store.ListVenueBookings("v1")
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "Unknown User", bookings[0].CustomerName)
	assert.Equal(t, "-", bookings[0].CustomerEmail)
}
