// Package postgres es el storage opcional para despliegues compartidos,
// vía pgx sobre database/sql.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var ErrNotFound = errors.New("not found")

// Open abre una conexión pool a Postgres usando pgx (database/sql).
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	// defaults razonables (ajustable luego)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS pets (
			id         BIGSERIAL PRIMARY KEY,
			name       TEXT NOT NULL,
			species    TEXT NOT NULL,
			gender     TEXT NOT NULL,
			birthday   TEXT NOT NULL,
			photo_uri  TEXT,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);

		CREATE TABLE IF NOT EXISTS daily_records (
			id           BIGSERIAL PRIMARY KEY,
			pet_id       BIGINT NOT NULL REFERENCES pets(id) ON DELETE CASCADE,
			record_date  TEXT NOT NULL,
			weight       DOUBLE PRECISION,
			observations JSONB NOT NULL DEFAULT '[]',
			notes        TEXT,
			created_at   TIMESTAMPTZ NOT NULL,
			updated_at   TIMESTAMPTZ NOT NULL,
			UNIQUE (pet_id, record_date)
		);

		CREATE INDEX IF NOT EXISTS idx_daily_records_pet_date
			ON daily_records (pet_id, record_date DESC);
	`)
	return err
}

// withTx corre fn dentro de una transacción: commit si devuelve nil,
// rollback si no.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
