package match_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/arenax/arenax-server/internal/database"
	"github.com/arenax/arenax-server/internal/match"
	"github.com/arenax/arenax-server/internal/wallet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (match.MatchStore, *sql.DB, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	store := match.New(db)
	return store, db, dbTeardown
}

func seedMatch(t *testing.T, db *sql.DB, store match.MatchStore, matchID string, players ...string) {
	t.Helper()

	_, err := db.Exec(`INSERT INTO venues (id, owner_id, name, address, latitude, longitude) VALUES ('v1', 'o1', 'Arena One', '1 Main St', 3.139, 101.6869) ON CONFLICT(id) DO NOTHING`)
	require.NoError(t, err)

	err = store.CreateMatch(&match.Match{
		ID:        matchID,
		VenueID:   "v1",
		Sport:     "futsal",
		Date:      "2026-08-29",
		StartTime: "18:00:00",
		EndTime:   "19:00:00",
		Capacity:  10,
		CreatedAt: time.Now().Unix(),
	})
	require.NoError(t, err)

	for _, p := range players {
		_, err := db.Exec(`INSERT INTO profiles (id, first_name, last_name) VALUES (?, 'Test', 'Player') ON CONFLICT(id) DO NOTHING`, p)
		require.NoError(t, err)
		require.NoError(t, store.AddParticipant(matchID, p))
	}
}

func TestCreateAndGetMatch(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	seedMatch(t, db, store, "m1")

	m, err := store.GetMatch("m1")
	require.NoError(t, err)
	assert.Equal(t, "m1", m.ID)
	assert.Equal(t, match.StatusOpen, m.Status)
	assert.Equal(t, "18:00:00", m.StartTime)

	_, err = store.GetMatch("missing")
	assert.ErrorIs(t, err, match.ErrNotFound)
}

func TestCreateMatch_UpsertKeepsStatus(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	seedMatch(t, db, store, "m1")
	require.NoError(t, store.UpdateStatus("m1", match.StatusCompleted))

	// Re-creating the match must not resurrect its stored status.
	seedMatch(t, db, store, "m1")
	m, err := store.GetMatch("m1")
	require.NoError(t, err)
	assert.Equal(t, match.StatusCompleted, m.Status)
}

func TestGetMatchesForProcessing(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	seedMatch(t, db, store, "m1")
	seedMatch(t, db, store, "m2")
	require.NoError(t, store.UpdateStatus("m2", match.StatusCompleted))

	matches, err := store.GetMatchesForProcessing()
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "m1", matches[0].ID)
}

func TestCheckIn_NotRegistered(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	seedMatch(t, db, store, "m1")

	err := store.CheckIn("m1", "ghost", 3.139, 101.6869, time.Now().Unix())
	assert.ErrorIs(t, err, match.ErrNotRegistered)
}

func TestCheckIn_FirstWriteWins(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	seedMatch(t, db, store, "m1", "p1")

	require.NoError(t, store.CheckIn("m1", "p1", 3.139, 101.6869, 100))

	// A second commit (manual click racing the auto trigger) must not overwrite
	// the recorded timestamp or coordinates.
	err := store.CheckIn("m1", "p1", 9.999, 99.999, 200)
	assert.ErrorIs(t, err, match.ErrAlreadyCheckedIn)

	p, err := store.GetParticipant("m1", "p1")
	require.NoError(t, err)
	require.NotNil(t, p.CheckedInAt)
	assert.Equal(t, int64(100), *p.CheckedInAt)
	require.NotNil(t, p.CheckInLat)
	assert.Equal(t, 3.139, *p.CheckInLat)

	// Exactly one participant row, exactly one non-null timestamp.
	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM match_players WHERE match_id='m1' AND checked_in_at IS NOT NULL").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestAddParticipant_Idempotent(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	seedMatch(t, db, store, "m1", "p1")
	require.NoError(t, store.AddParticipant("m1", "p1"))

	participants, err := store.ListParticipants("m1")
	require.NoError(t, err)
	assert.Len(t, participants, 1)
}

// fundWallet credits a player's wallet through the wallet store so the join
// fee tests run against real balances.
func fundWallet(t *testing.T, db *sql.DB, playerID string, amount float64) wallet.WalletStore {
	t.Helper()
	wallets := wallet.New(db)
	now := time.Now().Unix()
	require.NoError(t, wallets.CreateTransaction(&wallet.Transaction{
		ID: "fund-" + playerID, UserID: playerID, Amount: amount,
		Type: wallet.TypeTopup, PaymentMethod: "invoice", CreatedAt: now, UpdatedAt: now,
	}))
	res, err := wallets.ProcessInvoiceEvent(&wallet.InvoiceEvent{
		EventID: "evt-fund-" + playerID, ExternalID: "fund-" + playerID,
		Status: wallet.InvoicePaid, Amount: amount,
	}, now)
	require.NoError(t, err)
	require.Equal(t, wallet.ResultCredited, res)
	return wallets
}

func TestAddPaidParticipant(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	seedMatch(t, db, store, "m1", "p1")
	now := time.Now().Unix()

	t.Run("fee and registration commit together", func(t *testing.T) {
		wallets := fundWallet(t, db, "p1", 50)

		require.NoError(t, store.AddPaidParticipant("m1", "p1", 15, "txn-join-1", now))

		w, err := wallets.GetWallet("p1")
		require.NoError(t, err)
		assert.Equal(t, 35.0, w.Balance)
		txn, err := wallets.GetTransaction("txn-join-1")
		require.NoError(t, err)
		assert.Equal(t, wallet.TypePayment, txn.Type)
		assert.Equal(t, -15.0, txn.Amount)
	})

	t.Run("re-join is a no-op and charges nothing", func(t *testing.T) {
		wallets := wallet.New(db)

		require.NoError(t, store.AddPaidParticipant("m1", "p1", 15, "txn-join-2", now))

		w, err := wallets.GetWallet("p1")
		require.NoError(t, err)
		assert.Equal(t, 35.0, w.Balance, "a second join must not debit again")
		_, err = wallets.GetTransaction("txn-join-2")
		assert.ErrorIs(t, err, wallet.ErrTransactionNotFound)
	})

	t.Run("insufficient balance rolls the registration back", func(t *testing.T) {
		_, err := db.Exec(`INSERT INTO profiles (id, first_name, last_name) VALUES ('p2', 'Test', 'Player')`)
		require.NoError(t, err)

		err = store.AddPaidParticipant("m1", "p2", 15, "txn-join-3", now)
		assert.ErrorIs(t, err, match.ErrInsufficientFunds)

		_, err = store.GetParticipant("m1", "p2")
		assert.ErrorIs(t, err, match.ErrNotRegistered, "a join the player could not pay for must not register them")
	})

	t.Run("failed registration debits nothing", func(t *testing.T) {
		wallets := fundWallet(t, db, "p3", 50)
		_, err := db.Exec(`INSERT INTO profiles (id, first_name, last_name) VALUES ('p3', 'Test', 'Player')`)
		require.NoError(t, err)

		// The participant insert fails on the match foreign key, so the
		// whole transaction rolls back and the fee stays in the wallet.
		err = store.AddPaidParticipant("no-such-match", "p3", 15, "txn-join-4", now)
		require.Error(t, err)

		w, err := wallets.GetWallet("p3")
		require.NoError(t, err)
		assert.Equal(t, 50.0, w.Balance)
		_, err = wallets.GetTransaction("txn-join-4")
		assert.ErrorIs(t, err, wallet.ErrTransactionNotFound)
	})
}

func TestSubmitRating(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	seedMatch(t, db, store, "m1", "p1")

	t.Run("unset score is rejected with no row inserted", func(t *testing.T) {
		err := store.SubmitRating(&match.Rating{MatchID: "m1", PlayerID: "p1", VenueRating: 0, TeamRating: 4, SystemRating: 5})
		assert.ErrorIs(t, err, match.ErrInvalidRating)

		ratings, err := store.ListRatings("m1")
		require.NoError(t, err)
		assert.Empty(t, ratings)
	})

	t.Run("valid rating is stored once", func(t *testing.T) {
		r := &match.Rating{MatchID: "m1", PlayerID: "p1", VenueRating: 5, TeamRating: 4, SystemRating: 3, CreatedAt: time.Now().Unix()}
		require.NoError(t, store.SubmitRating(r))

		err := store.SubmitRating(r)
		assert.ErrorIs(t, err, match.ErrAlreadyRated)

		ratings, err := store.ListRatings("m1")
		require.NoError(t, err)
		require.Len(t, ratings, 1)
		assert.Equal(t, 5, ratings[0].VenueRating)
	})
}

func TestMarkBookingNotified(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	seedMatch(t, db, store, "m1")
	require.NoError(t, store.MarkBookingNotified("m1", 1234))

	m, err := store.GetMatch("m1")
	require.NoError(t, err)
	require.NotNil(t, m.BookingNotifiedTs)
	assert.Equal(t, int64(1234), *m.BookingNotifiedTs)
}

func TestClearMatch(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	seedMatch(t, db, store, "m1")
	store.ClearMatch("m1")

	_, err := store.GetMatch("m1")
	assert.ErrorIs(t, err, match.ErrNotFound)
}
