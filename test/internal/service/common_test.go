package service

import (
	"context"
	"go-event-platform/config"
	"go-event-platform/internal/database"
	"go-event-platform/internal/model"
	"log"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var testDB *pgxpool.Pool

func TestMain(m *testing.M) {
	cfg := config.LoadTestConfig()

	var err error
	testDB, err = database.InitDatabase(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize test database: %v", err)
	}

	if err := testDB.Ping(context.Background()); err != nil {
		log.Fatalf("Failed to ping test database: %v", err)
	}

	if err := database.Migrate(context.Background(), testDB); err != nil {
		log.Fatalf("Failed to migrate test database: %v", err)
	}

	log.Println("Test database connected successfully")
	log.Println("Running service tests...")

	code := m.Run()

	testDB.Close()
	log.Println("Test database closed")

	os.Exit(code)
}

func setupTestWithTruncate(t *testing.T) func() {
	t.Helper()
	ctx := context.Background()

	_, err := testDB.Exec(ctx,
		"TRUNCATE requests, compilation_events, compilations, subscriptions, events, categories, users RESTART IDENTITY CASCADE")
	if err != nil {
		t.Fatalf("Failed to truncate tables: %v", err)
	}

	return func() {}
}

func getTestDB() *pgxpool.Pool {
	if testDB == nil {
		panic("testDB is not initialized. Make sure TestMain has run.")
	}
	return testDB
}

func createTestUser(t *testing.T, name, email string) int64 {
	t.Helper()
	ctx := context.Background()

	query := `
		INSERT INTO users (name, email)
		VALUES ($1, $2)
		RETURNING id
	`

	var id int64
	err := testDB.QueryRow(ctx, query, name, email).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return id
}

func createTestCategory(t *testing.T, name string) int64 {
	t.Helper()
	ctx := context.Background()

	query := `
		INSERT INTO categories (name)
		VALUES ($1)
		RETURNING id
	`

	var id int64
	err := testDB.QueryRow(ctx, query, name).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test category: %v", err)
	}

	return id
}

func createTestEvent(t *testing.T, initiatorID, categoryID int64, state model.EventState, participantLimit int64, requestModeration bool) int64 {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	publishedOn := time.Time{}
	if state == model.EventStatePublished {
		publishedOn = now
	}

	query := `
		INSERT INTO events (
			annotation, category_id, created_on, description, event_date, initiator_id,
			location_lat, location_lon, is_paid, participant_limit, published_on,
			request_moderation, state, title
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`

	var id int64
	err := testDB.QueryRow(ctx, query,
		"Annotation", categoryID, now, "Description", now.Add(48*time.Hour), initiatorID,
		55.75, 37.62, false, participantLimit, publishedOn,
		requestModeration, state, "Test Event",
	).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test event: %v", err)
	}

	return id
}

func countRequestsByStatus(t *testing.T, eventID int64, status model.RequestStatus) int {
	t.Helper()
	ctx := context.Background()

	var count int
	err := testDB.QueryRow(ctx,
		"SELECT COUNT(*) FROM requests WHERE event_id = $1 AND status = $2",
		eventID, status,
	).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count requests: %v", err)
	}

	return count
}
