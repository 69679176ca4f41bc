package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/arenax/arenax-server/internal/arena"
	"github.com/arenax/arenax-server/internal/database"
	"github.com/arenax/arenax-server/internal/match"
)

// Simplified config loading for the script
func loadConfig() (dbName, migrationsDir string) {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	dbName = os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "arenax.db"
	}
	migrationsDir = os.Getenv("MIGRATIONS_DIR")
	if migrationsDir == "" {
		migrationsDir = "migrations"
	}
	return dbName, migrationsDir
}

func main() {
	log.Info("Starting database seeder...")
	dbName, migrationsDir := loadConfig()

	db, teardown, err := database.InitDB(dbName, os.Getenv("TURSO_PRIMARY_URL"), os.Getenv("TURSO_AUTH_TOKEN"), migrationsDir)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	arenaStore := arena.New(db)
	matchStore := match.New(db)

	klccLat, klccLng := 3.1579, 101.7116
	pjLat, pjLng := 3.1073, 101.6067

	venues := []arena.Venue{
		{ID: "venue-klcc", OwnerID: "owner-1", Name: "KLCC Sports Arena", Address: "Jalan Ampang, Kuala Lumpur", Latitude: &klccLat, Longitude: &klccLng},
		{ID: "venue-pj", OwnerID: "owner-2", Name: "PJ Community Courts", Address: "Petaling Jaya, Selangor", Latitude: &pjLat, Longitude: &pjLng},
		// No coordinates: proximity check-in is unavailable here.
		{ID: "venue-kampung", OwnerID: "owner-2", Name: "Kampung Futsal Hall", Address: "Sungai Buloh"},
	}
	for i := range venues {
		if err := arenaStore.UpsertVenue(&venues[i]); err != nil {
			log.Fatalf("Failed to seed venue %s: %s", venues[i].Name, err)
		}
	}
	log.Info("Seeded venues", "count", len(venues))

	profiles := []arena.Profile{
		{ID: "player-1", FirstName: "Aisha", LastName: "Rahman", Email: "aisha@example.com", Position: "striker", SkillLevel: "intermediate"},
		{ID: "player-2", FirstName: "Budi", LastName: "Santoso", Email: "budi@example.com", SkillLevel: "beginner"},
		{ID: "player-3", FirstName: "Chen", LastName: "Wei", Email: "chen@example.com", SkillLevel: "advanced"},
		{ID: "player-4", FirstName: "Dina", LastName: "Kamal", Email: "dina@example.com", SkillLevel: "intermediate"},
	}
	if err := arenaStore.UpsertProfiles(profiles); err != nil {
		log.Fatalf("Failed to seed profiles: %s", err)
	}
	log.Info("Seeded profiles", "count", len(profiles))

	sports := []string{"futsal", "badminton", "basketball"}
	for _, v := range venues[:2] {
		for i, sport := range sports {
			court := arena.Court{
				ID:           fmt.Sprintf("%s-court-%d", v.ID, i+1),
				VenueID:      v.ID,
				Name:         fmt.Sprintf("Court %d", i+1),
				Sport:        sport,
				PricePerHour: 60 + float64(i)*20,
			}
			if err := arenaStore.UpsertCourt(&court); err != nil {
				log.Fatalf("Failed to seed court: %s", err)
			}
		}
	}
	log.Info("Seeded courts")

	// One match later today and one tomorrow evening.
	now := time.Now()
	matches := []match.Match{
		{
			ID:             uuid.NewString(),
			VenueID:        "venue-klcc",
			Sport:          "futsal",
			Date:           now.Format("2006-01-02"),
			StartTime:      now.Add(2 * time.Hour).Format("15:04:05"),
			EndTime:        now.Add(3 * time.Hour).Format("15:04:05"),
			Capacity:       10,
			PricePerPlayer: 15,
			CreatedAt:      now.Unix(),
		},
		{
			ID:             uuid.NewString(),
			VenueID:        "venue-pj",
			Sport:          "badminton",
			Date:           now.AddDate(0, 0, 1).Format("2006-01-02"),
			StartTime:      "20:00:00",
			EndTime:        "22:00:00",
			Capacity:       4,
			PricePerPlayer: 12,
			CreatedAt:      now.Unix(),
		},
	}
	for i := range matches {
		if err := matchStore.CreateMatch(&matches[i]); err != nil {
			log.Fatalf("Failed to seed match: %s", err)
		}
		for _, p := range profiles[:2] {
			if err := matchStore.AddParticipant(matches[i].ID, p.ID); err != nil {
				log.Fatalf("Failed to register player %s: %s", p.ID, err)
			}
		}
	}
	log.Info("Seeded matches", "count", len(matches))

	log.Info("Seeding complete")
}
