package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"pocket-squeak/internal/domain/records"
)

type RecordsRepo struct {
	db *sql.DB
}

func NewRecordsRepo(db *sql.DB) *RecordsRepo {
	return &RecordsRepo{db: db}
}

func (r *RecordsRepo) Insert(ctx context.Context, rec records.DailyRecord) (records.DailyRecord, error) {
	obs, err := marshalObservations(rec.Observations)
	if err != nil {
		return records.DailyRecord{}, err
	}

	err = r.db.QueryRowContext(ctx, `
		INSERT INTO daily_records (
			pet_id, record_date, weight, observations, notes,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id
	`,
		rec.PetID,
		rec.RecordDate,
		rec.Weight,
		obs,
		rec.Notes,
		rec.CreatedAt,
		rec.UpdatedAt,
	).Scan(&rec.ID)
	if err != nil {
		return records.DailyRecord{}, err
	}
	return rec, nil
}

func (r *RecordsRepo) Update(ctx context.Context, rec records.DailyRecord) error {
	obs, err := marshalObservations(rec.Observations)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE daily_records
		SET
			weight = $2,
			observations = $3,
			notes = $4,
			updated_at = $5
		WHERE id = $1
	`,
		rec.ID,
		rec.Weight,
		obs,
		rec.Notes,
		rec.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return records.ErrNotFound
	}
	return nil
}

func (r *RecordsRepo) GetByPetAndDate(ctx context.Context, petID int64, date string) (records.DailyRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, pet_id, record_date, weight, observations, notes,
			created_at, updated_at
		FROM daily_records
		WHERE pet_id = $1 AND record_date = $2
	`, petID, date)

	rec, err := scanRecord(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return records.DailyRecord{}, records.ErrNotFound
		}
		return records.DailyRecord{}, err
	}
	return rec, nil
}

func (r *RecordsRepo) ListByPet(ctx context.Context, petID int64, since string) ([]records.DailyRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, pet_id, record_date, weight, observations, notes,
			created_at, updated_at
		FROM daily_records
		WHERE pet_id = $1 AND ($2 = '' OR record_date >= $2)
		ORDER BY record_date DESC
	`, petID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]records.DailyRecord, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *RecordsRepo) LatestWeights(ctx context.Context, petID int64, limit int) ([]records.WeightPoint, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT record_date, weight
		FROM daily_records
		WHERE pet_id = $1 AND weight IS NOT NULL
		ORDER BY record_date DESC
		LIMIT $2
	`, petID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]records.WeightPoint, 0)
	for rows.Next() {
		var wp records.WeightPoint
		if err := rows.Scan(&wp.RecordDate, &wp.Weight); err != nil {
			return nil, err
		}
		out = append(out, wp)
	}
	return out, rows.Err()
}

func (r *RecordsRepo) ListForDateRange(ctx context.Context, start, end string) ([]records.RecordWithPet, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			d.id, d.pet_id, d.record_date, d.weight, d.observations, d.notes,
			d.created_at, d.updated_at,
			p.name, p.species
		FROM daily_records d
		JOIN pets p ON p.id = d.pet_id
		WHERE d.record_date >= $1 AND d.record_date <= $2
		ORDER BY d.record_date DESC, p.name ASC
	`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]records.RecordWithPet, 0)
	for rows.Next() {
		var (
			rec           records.DailyRecord
			obs           []byte
			notes         sql.NullString
			name, species string
		)
		if err := rows.Scan(
			&rec.ID,
			&rec.PetID,
			&rec.RecordDate,
			&rec.Weight,
			&obs,
			&notes,
			&rec.CreatedAt,
			&rec.UpdatedAt,
			&name,
			&species,
		); err != nil {
			return nil, err
		}

		if err := json.Unmarshal(obs, &rec.Observations); err != nil {
			return nil, err
		}
		if notes.Valid {
			v := notes.String
			rec.Notes = &v
		}

		out = append(out, records.RecordWithPet{
			DailyRecord: rec,
			PetName:     name,
			PetSpecies:  species,
		})
	}
	return out, rows.Err()
}

func scanRecord(row rowScanner) (records.DailyRecord, error) {
	var (
		rec   records.DailyRecord
		obs   []byte
		notes sql.NullString
	)
	if err := row.Scan(
		&rec.ID,
		&rec.PetID,
		&rec.RecordDate,
		&rec.Weight,
		&obs,
		&notes,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	); err != nil {
		return records.DailyRecord{}, err
	}

	if err := json.Unmarshal(obs, &rec.Observations); err != nil {
		return records.DailyRecord{}, err
	}
	if notes.Valid {
		v := notes.String
		rec.Notes = &v
	}
	return rec, nil
}

// Las observaciones viven en una columna JSONB.
func marshalObservations(obs []string) ([]byte, error) {
	if obs == nil {
		obs = []string{}
	}
	return json.Marshal(obs)
}
