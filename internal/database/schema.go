package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(250) NOT NULL,
		email VARCHAR(254) NOT NULL UNIQUE,
		is_public BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(50) NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS events (
		id BIGSERIAL PRIMARY KEY,
		annotation VARCHAR(2000) NOT NULL,
		category_id BIGINT NOT NULL REFERENCES categories (id),
		created_on TIMESTAMP NOT NULL,
		description VARCHAR(7000) NOT NULL,
		event_date TIMESTAMP NOT NULL,
		initiator_id BIGINT NOT NULL REFERENCES users (id),
		location_lat DOUBLE PRECISION NOT NULL,
		location_lon DOUBLE PRECISION NOT NULL,
		is_paid BOOLEAN NOT NULL DEFAULT FALSE,
		participant_limit BIGINT NOT NULL DEFAULT 0,
		published_on TIMESTAMP NOT NULL,
		request_moderation BOOLEAN NOT NULL DEFAULT TRUE,
		state VARCHAR(20) NOT NULL,
		title VARCHAR(120) NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_events_initiator ON events (initiator_id)`,
	`CREATE INDEX IF NOT EXISTS idx_events_category ON events (category_id)`,
	`CREATE TABLE IF NOT EXISTS requests (
		id BIGSERIAL PRIMARY KEY,
		created TIMESTAMP NOT NULL,
		event_id BIGINT NOT NULL REFERENCES events (id),
		requester_id BIGINT NOT NULL REFERENCES users (id),
		status VARCHAR(20) NOT NULL,
		UNIQUE (requester_id, event_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_requests_event ON requests (event_id)`,
	`CREATE TABLE IF NOT EXISTS compilations (
		id BIGSERIAL PRIMARY KEY,
		title VARCHAR(120) NOT NULL,
		pinned BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS compilation_events (
		compilation_id BIGINT NOT NULL REFERENCES compilations (id) ON DELETE CASCADE,
		event_id BIGINT NOT NULL REFERENCES events (id),
		PRIMARY KEY (compilation_id, event_id)
	)`,
	`CREATE TABLE IF NOT EXISTS subscriptions (
		id BIGSERIAL PRIMARY KEY,
		subscriber_id BIGINT NOT NULL REFERENCES users (id),
		initiator_id BIGINT NOT NULL REFERENCES users (id),
		status VARCHAR(20) NOT NULL,
		created TIMESTAMP NOT NULL,
		UNIQUE (subscriber_id, initiator_id)
	)`,
}

// Migrate 建立缺少的資料表，可重複執行
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
