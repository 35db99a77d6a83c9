package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

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

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO daily_records (
			pet_id, record_date, weight, observations, notes,
			created_at, updated_at
		) VALUES (?,?,?,?,?,?,?)
	`,
		rec.PetID,
		rec.RecordDate,
		rec.Weight,
		obs,
		rec.Notes,
		rec.CreatedAt.Format(time.RFC3339),
		rec.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return records.DailyRecord{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return records.DailyRecord{}, err
	}
	rec.ID = id
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
			weight = ?,
			observations = ?,
			notes = ?,
			updated_at = ?
		WHERE id = ?
	`,
		rec.Weight,
		obs,
		rec.Notes,
		rec.UpdatedAt.Format(time.RFC3339),
		rec.ID,
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
		WHERE pet_id = ? AND record_date = ?
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
		WHERE pet_id = ? AND (? = '' OR record_date >= ?)
		ORDER BY record_date DESC
	`, petID, since, since)
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
		WHERE pet_id = ? AND weight IS NOT NULL
		ORDER BY record_date DESC
		LIMIT ?
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
		WHERE d.record_date >= ? AND d.record_date <= ?
		ORDER BY d.record_date DESC, p.name ASC
	`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]records.RecordWithPet, 0)
	for rows.Next() {
		var (
			rec                  records.DailyRecord
			obs                  string
			notes                sql.NullString
			createdAt, updatedAt string
			name, species        string
		)
		if err := rows.Scan(
			&rec.ID,
			&rec.PetID,
			&rec.RecordDate,
			&rec.Weight,
			&obs,
			&notes,
			&createdAt,
			&updatedAt,
			&name,
			&species,
		); err != nil {
			return nil, err
		}

		if err := json.Unmarshal([]byte(obs), &rec.Observations); err != nil {
			return nil, err
		}
		if notes.Valid {
			v := notes.String
			rec.Notes = &v
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		rec.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

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
		rec                  records.DailyRecord
		obs                  string
		notes                sql.NullString
		createdAt, updatedAt string
	)
	if err := row.Scan(
		&rec.ID,
		&rec.PetID,
		&rec.RecordDate,
		&rec.Weight,
		&obs,
		&notes,
		&createdAt,
		&updatedAt,
	); err != nil {
		return records.DailyRecord{}, err
	}

	if err := json.Unmarshal([]byte(obs), &rec.Observations); err != nil {
		return records.DailyRecord{}, err
	}
	if notes.Valid {
		v := notes.String
		rec.Notes = &v
	}
	rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	rec.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return rec, nil
}

// Las observaciones se guardan como JSON array en una columna TEXT.
func marshalObservations(obs []string) (string, error) {
	if obs == nil {
		obs = []string{}
	}
	data, err := json.Marshal(obs)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
