package postgres

import (
	"context"
	"database/sql"

	"pocket-squeak/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) (pets.Pet, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO pets (
			name, species, gender, birthday, photo_uri,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id
	`,
		p.Name,
		string(p.Species),
		string(p.Gender),
		p.Birthday,
		p.PhotoURI,
		p.CreatedAt,
		p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		return pets.Pet{}, err
	}
	return p, nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id int64) (pets.Pet, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, name, species, gender, birthday, photo_uri,
			created_at, updated_at
		FROM pets
		WHERE id = $1
	`, id)

	p, err := scanPet(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, err
	}
	return p, nil
}

func (r *PetsRepo) List(ctx context.Context) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, name, species, gender, birthday, photo_uri,
			created_at, updated_at
		FROM pets
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET
			name = $2,
			species = $3,
			gender = $4,
			birthday = $5,
			photo_uri = $6,
			updated_at = $7
		WHERE id = $1
	`,
		p.ID,
		p.Name,
		string(p.Species),
		string(p.Gender),
		p.Birthday,
		p.PhotoURI,
		p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

// Delete borra la mascota; los daily_records caen por ON DELETE CASCADE.
func (r *PetsRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPet(row rowScanner) (pets.Pet, error) {
	var (
		p               pets.Pet
		species, gender string
		photo           sql.NullString
	)
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&species,
		&gender,
		&p.Birthday,
		&photo,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return pets.Pet{}, err
	}

	p.Species = pets.Species(species)
	p.Gender = pets.Gender(gender)
	if photo.Valid {
		v := photo.String
		p.PhotoURI = &v
	}
	return p, nil
}
