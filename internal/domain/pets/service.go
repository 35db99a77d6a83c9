package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"pocket-squeak/internal/ports/media"
)

var ErrInvalidInput = errors.New("invalid input")

type Service struct {
	repo  Repository
	media media.Cleaner
	log   zerolog.Logger
	now   func() time.Time
}

func NewService(repo Repository, cleaner media.Cleaner, log zerolog.Logger) *Service {
	if cleaner == nil {
		cleaner = media.Noop{}
	}
	return &Service{
		repo:  repo,
		media: cleaner,
		log:   log,
		now:   time.Now,
	}
}

type CreateInput struct {
	Name     string
	Species  string
	Gender   string
	Birthday string // YYYY-MM-DD
	PhotoURI *string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Pet, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Pet{}, ErrInvalidInput
	}

	species := Species(strings.TrimSpace(in.Species))
	if !ValidSpecies(species) {
		return Pet{}, ErrInvalidInput
	}

	gender := Gender(strings.TrimSpace(in.Gender))
	if gender == "" {
		gender = GenderUnknown
	}
	if !ValidGender(gender) {
		return Pet{}, ErrInvalidInput
	}

	if _, err := time.Parse(time.DateOnly, in.Birthday); err != nil {
		return Pet{}, ErrInvalidInput
	}

	now := s.now()
	p := Pet{
		Name:      name,
		Species:   species,
		Gender:    gender,
		Birthday:  in.Birthday,
		PhotoURI:  in.PhotoURI,
		CreatedAt: now,
		UpdatedAt: now,
	}

	return s.repo.Create(ctx, p)
}

func (s *Service) GetByID(ctx context.Context, id int64) (Pet, error) {
	if id <= 0 {
		return Pet{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Pet, error) {
	return s.repo.List(ctx)
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Name     *string
	Species  *string
	Gender   *string
	Birthday *string // YYYY-MM-DD
	PhotoURI *string
	// ClearPhoto distingue "borrar la foto" de "no enviada".
	ClearPhoto bool
}

func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (Pet, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Pet{}, ErrInvalidInput
		}
		p.Name = name
	}
	if in.Species != nil {
		species := Species(strings.TrimSpace(*in.Species))
		if !ValidSpecies(species) {
			return Pet{}, ErrInvalidInput
		}
		p.Species = species
	}
	if in.Gender != nil {
		gender := Gender(strings.TrimSpace(*in.Gender))
		if !ValidGender(gender) {
			return Pet{}, ErrInvalidInput
		}
		p.Gender = gender
	}
	if in.Birthday != nil {
		if _, err := time.Parse(time.DateOnly, *in.Birthday); err != nil {
			return Pet{}, ErrInvalidInput
		}
		p.Birthday = *in.Birthday
	}
	if in.ClearPhoto {
		p.PhotoURI = nil
	} else if in.PhotoURI != nil {
		p.PhotoURI = in.PhotoURI
	}

	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// Delete borra la mascota; el store hace la cascada sobre sus registros.
// La foto se limpia después del borrado y de forma best-effort: si la
// limpieza falla, el borrado no se revierte.
func (s *Service) Delete(ctx context.Context, id int64) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if p.PhotoURI != nil {
		if err := s.media.DeletePetImages(ctx, id); err != nil {
			s.log.Warn().Err(err).Int64("pet_id", id).Msg("pet photo cleanup failed")
		}
	}

	return nil
}
