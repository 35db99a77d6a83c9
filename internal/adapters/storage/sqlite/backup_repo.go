package sqlite

import (
	"context"
	"database/sql"
	"time"

	"pocket-squeak/internal/domain/pets"
	"pocket-squeak/internal/domain/records"
)

// BackupRepo implementa el replace atómico de un restore: todo dentro
// de una transacción, con los ids del snapshot insertados tal cual.
type BackupRepo struct {
	db *sql.DB
}

func NewBackupRepo(db *sql.DB) *BackupRepo {
	return &BackupRepo{db: db}
}

func (r *BackupRepo) ReplaceAll(ctx context.Context, ps []pets.Pet, recs []records.DailyRecord) error {
	return withTx(r.db, func(tx *sql.Tx) error {
		// Tablas del formato viejo: si quedaron de una versión anterior
		// se descartan, no se recrean.
		if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS weight_logs`); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS health_logs`); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM daily_records`); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM pets`); err != nil {
			return err
		}

		for _, p := range ps {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO pets (
					id, name, species, gender, birthday, photo_uri,
					created_at, updated_at
				) VALUES (?,?,?,?,?,?,?,?)
			`,
				p.ID,
				p.Name,
				string(p.Species),
				string(p.Gender),
				p.Birthday,
				p.PhotoURI,
				p.CreatedAt.Format(time.RFC3339),
				p.UpdatedAt.Format(time.RFC3339),
			); err != nil {
				return err
			}
		}

		for _, rec := range recs {
			obs, err := marshalObservations(rec.Observations)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO daily_records (
					id, pet_id, record_date, weight, observations, notes,
					created_at, updated_at
				) VALUES (?,?,?,?,?,?,?,?)
			`,
				rec.ID,
				rec.PetID,
				rec.RecordDate,
				rec.Weight,
				obs,
				rec.Notes,
				rec.CreatedAt.Format(time.RFC3339),
				rec.UpdatedAt.Format(time.RFC3339),
			); err != nil {
				return err
			}
		}

		return nil
	})
}
