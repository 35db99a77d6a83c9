// Package sqlite es el storage por defecto: un archivo local, sin
// servidor, manejado vía database/sql con el driver modernc (cgo-free).
package sqlite

import (
	"database/sql"
	"errors"
	"sync"

	_ "modernc.org/sqlite"
)

var ErrNotFound = errors.New("not found")

var (
	sharedOnce sync.Once
	sharedDB   *sql.DB
	sharedErr  error
)

// Shared abre (una sola vez por proceso) la base en path y devuelve
// siempre el mismo handle. Llamadas posteriores ignoran el path y
// reciben la conexión ya inicializada, o el error de la primera vez.
func Shared(path string) (*sql.DB, error) {
	sharedOnce.Do(func() {
		sharedDB, sharedErr = Open(path)
	})
	return sharedDB, sharedErr
}

// Open abre la base y aplica el schema. SQLite no banca escritores
// concurrentes sobre un mismo archivo, así que el pool queda en 1.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS pets (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			name       TEXT NOT NULL,
			species    TEXT NOT NULL,
			gender     TEXT NOT NULL,
			birthday   TEXT NOT NULL,
			photo_uri  TEXT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS daily_records (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			pet_id       INTEGER NOT NULL REFERENCES pets(id) ON DELETE CASCADE,
			record_date  TEXT NOT NULL,
			weight       REAL,
			observations TEXT NOT NULL DEFAULT '[]',
			notes        TEXT,
			created_at   TEXT NOT NULL,
			updated_at   TEXT NOT NULL,
			UNIQUE (pet_id, record_date)
		);

		CREATE INDEX IF NOT EXISTS idx_daily_records_pet_date
			ON daily_records (pet_id, record_date DESC);
	`)
	return err
}

// withTx corre fn dentro de una transacción: commit si devuelve nil,
// rollback si no.
func withTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
