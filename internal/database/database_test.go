package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB_RunsMigrations(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err, "InitDB should not return an error")
	defer teardown()

	for _, table := range []string{"profiles", "venues", "courts", "bookings", "matches", "match_players", "match_ratings", "wallets", "transactions", "webhook_events"} {
		var name string
		err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, "Querying for %s table should not produce an error", table)
		assert.Equal(t, table, name)
	}
}

func TestInitDB_ParticipantUniqueness(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	defer teardown()

	_, err = db.Exec(`INSERT INTO profiles (id, first_name, last_name) VALUES ('p1', 'Alex', 'Tan')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO venues (id, owner_id, name, address) VALUES ('v1', 'o1', 'Arena One', '1 Main St')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO matches (id, venue_id, sport, date, start_time, end_time, created_at) VALUES ('m1', 'v1', 'futsal', '2026-08-29', '18:00:00', '19:00:00', 0)`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO match_players (match_id, player_id) VALUES ('m1', 'p1')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO match_players (match_id, player_id) VALUES ('m1', 'p1')`)
	assert.Error(t, err, "duplicate participant rows must be rejected by the schema")
}
