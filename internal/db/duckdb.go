// Package db persists weights, feedback, leads, officers and the
// notification log in DuckDB.
package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/marcboeker/go-duckdb"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS scoring_weights (
		weight_key  VARCHAR PRIMARY KEY,
		weight      DOUBLE NOT NULL,
		signal_type VARCHAR NOT NULL,
		updated_at  TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS leads (
		id                  VARCHAR PRIMARY KEY,
		canonical_key       VARCHAR NOT NULL,
		company             VARCHAR NOT NULL,
		industry            VARCHAR NOT NULL,
		source              VARCHAR NOT NULL,
		score               INTEGER NOT NULL,
		confidence          INTEGER NOT NULL,
		priority            VARCHAR NOT NULL,
		status              VARCHAR NOT NULL,
		assigned_officer_id VARCHAR,
		dossier             VARCHAR NOT NULL,
		created_at          TIMESTAMP NOT NULL,
		updated_at          TIMESTAMP NOT NULL
	)`,
	`CREATE SEQUENCE IF NOT EXISTS lead_feedback_seq START 1`,
	`CREATE TABLE IF NOT EXISTS lead_feedback (
		id         BIGINT PRIMARY KEY DEFAULT nextval('lead_feedback_seq'),
		lead_id    VARCHAR NOT NULL,
		outcome    VARCHAR NOT NULL,
		officer_id VARCHAR,
		notes      VARCHAR,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS sales_officers (
		id         VARCHAR PRIMARY KEY,
		name       VARCHAR NOT NULL,
		phone      VARCHAR,
		email      VARCHAR,
		region     VARCHAR,
		is_active  BOOLEAN NOT NULL DEFAULT true,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE SEQUENCE IF NOT EXISTS notification_log_seq START 1`,
	`CREATE TABLE IF NOT EXISTS notification_log (
		id                BIGINT PRIMARY KEY DEFAULT nextval('notification_log_seq'),
		officer_id        VARCHAR NOT NULL,
		channel           VARCHAR NOT NULL,
		notification_type VARCHAR NOT NULL,
		title             VARCHAR NOT NULL,
		body              VARCHAR NOT NULL,
		lead_id           VARCHAR,
		sent_at           TIMESTAMP NOT NULL
	)`,
}

// Open opens (creating if needed) the DuckDB database at path and applies
// the schema. An empty path opens an in-memory database.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open DuckDB: %w", err)
	}

	// one connection serialises writes and keeps in-memory databases alive
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

// LoadJSON makes DuckDB's JSON reader available, installing the extension
// when it is not bundled.
func LoadJSON(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, "LOAD json"); err == nil {
		return nil
	}

	if _, err := db.ExecContext(ctx, "INSTALL json"); err != nil {
		return fmt.Errorf("failed to install JSON extension: %w", err)
	}

	if _, err := db.ExecContext(ctx, "LOAD json"); err != nil {
		return fmt.Errorf("failed to load JSON extension: %w", err)
	}

	return nil
}
