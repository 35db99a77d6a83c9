package postgres

import (
	"context"
	"database/sql"

	"pocket-squeak/internal/domain/pets"
	"pocket-squeak/internal/domain/records"
)

// BackupRepo implementa el replace atómico de un restore en una sola
// transacción, preservando los ids del snapshot.
type BackupRepo struct {
	db *sql.DB
}

func NewBackupRepo(db *sql.DB) *BackupRepo {
	return &BackupRepo{db: db}
}

func (r *BackupRepo) ReplaceAll(ctx context.Context, ps []pets.Pet, recs []records.DailyRecord) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
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
				) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
			`,
				p.ID,
				p.Name,
				string(p.Species),
				string(p.Gender),
				p.Birthday,
				p.PhotoURI,
				p.CreatedAt,
				p.UpdatedAt,
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
				) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
			`,
				rec.ID,
				rec.PetID,
				rec.RecordDate,
				rec.Weight,
				obs,
				rec.Notes,
				rec.CreatedAt,
				rec.UpdatedAt,
			); err != nil {
				return err
			}
		}

		// Los inserts con id explícito no avanzan las secuencias; sin
		// esto el próximo INSERT normal chocaría con un id restaurado.
		if _, err := tx.ExecContext(ctx, `
			SELECT setval(pg_get_serial_sequence('pets','id'), COALESCE(MAX(id),0)+1, false) FROM pets
		`); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
			SELECT setval(pg_get_serial_sequence('daily_records','id'), COALESCE(MAX(id),0)+1, false) FROM daily_records
		`); err != nil {
			return err
		}

		return nil
	})
}
