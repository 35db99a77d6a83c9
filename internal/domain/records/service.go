package records

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"pocket-squeak/internal/domain/pets"
)

var ErrInvalidInput = errors.New("invalid input")

const (
	// DefaultHistoryDays es la ventana por defecto de las consultas de historia.
	DefaultHistoryDays = 30

	// WeightHistoryLimit acota cuántas pesadas se devuelven por defecto.
	WeightHistoryLimit = 30
)

// PetLookup es lo único que records necesita del módulo pets.
type PetLookup interface {
	GetByID(ctx context.Context, id int64) (pets.Pet, error)
}

type Service struct {
	repo Repository
	pets PetLookup
	log  zerolog.Logger
	now  func() time.Time
}

func NewService(repo Repository, petLookup PetLookup, log zerolog.Logger) *Service {
	return &Service{
		repo: repo,
		pets: petLookup,
		log:  log,
		now:  time.Now,
	}
}

func (s *Service) today() string {
	return s.now().Format(time.DateOnly)
}

// UpsertToday aplica el patch sobre el registro de hoy: lo crea si no
// existe o lo mergea si ya hay uno (ver Merge). Es seguro llamarlo
// varias veces el mismo día. Devuelve el registro post-merge.
//
// Si la mascota no existe falla con pets.ErrNotFound: elegimos validar
// acá en vez de depender del FK del store, porque el adapter en memoria
// no tiene FKs (decisión documentada en DESIGN).
func (s *Service) UpsertToday(ctx context.Context, petID int64, in UpsertInput) (DailyRecord, error) {
	return s.upsertForDate(ctx, petID, s.today(), in)
}

func (s *Service) upsertForDate(ctx context.Context, petID int64, date string, in UpsertInput) (DailyRecord, error) {
	if petID <= 0 {
		return DailyRecord{}, ErrInvalidInput
	}
	if in.Weight != nil && *in.Weight <= 0 {
		return DailyRecord{}, ErrInvalidInput
	}

	if _, err := s.pets.GetByID(ctx, petID); err != nil {
		return DailyRecord{}, err
	}

	now := s.now()

	existing, err := s.repo.GetByPetAndDate(ctx, petID, date)
	switch {
	case err == nil:
		merged := Merge(existing, in, now)
		if err := s.repo.Update(ctx, merged); err != nil {
			return DailyRecord{}, err
		}
		return merged, nil

	case errors.Is(err, ErrNotFound):
		fresh := DailyRecord{
			PetID:        petID,
			RecordDate:   date,
			Observations: unionObservations(nil, in.Observations),
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if in.Weight != nil {
			w := *in.Weight
			fresh.Weight = &w
		}
		if in.Notes != nil {
			n := *in.Notes
			fresh.Notes = &n
		}
		return s.repo.Insert(ctx, fresh)

	default:
		return DailyRecord{}, err
	}
}

// Today devuelve el registro de hoy, o ErrNotFound si aún no hay.
func (s *Service) Today(ctx context.Context, petID int64) (DailyRecord, error) {
	return s.repo.GetByPetAndDate(ctx, petID, s.today())
}

// History devuelve los últimos days días de registros (default 30).
func (s *Service) History(ctx context.Context, petID int64, days int) ([]DailyRecord, error) {
	if days <= 0 {
		days = DefaultHistoryDays
	}
	since := s.now().AddDate(0, 0, -days).Format(time.DateOnly)
	return s.repo.ListByPet(ctx, petID, since)
}

// LatestWeights devuelve las últimas pesadas del animal.
func (s *Service) LatestWeights(ctx context.Context, petID int64, limit int) ([]WeightPoint, error) {
	if limit <= 0 {
		limit = WeightHistoryLimit
	}
	return s.repo.LatestWeights(ctx, petID, limit)
}

type seedSample struct {
	daysAgo int
	delta   float64 // contra el peso de referencia de la especie
	obs     []string
	notes   string
}

var seedSamples = []seedSample{
	{daysAgo: 1, delta: 2, obs: []string{"normal"}},
	{daysAgo: 2, delta: 0, obs: []string{"normal"}, notes: "Active and eating well"},
	{daysAgo: 3, delta: -2, obs: []string{"sneeze"}},
	{daysAgo: 4, delta: 1, obs: []string{"normal"}},
	{daysAgo: 5, delta: -1, obs: []string{"soft_stool"}, notes: "Changed bedding"},
	{daysAgo: 6, delta: -3, obs: []string{"normal", "porphyrin"}, notes: "Mild stress signs"},
	{daysAgo: 7, delta: 0, obs: []string{"normal"}},
}

// SeedHistory inserta una semana de datos de ejemplo para la mascota.
// Es la única vía que crea registros en fechas pasadas; respeta la
// unicidad (mascota, fecha): los días que ya tienen registro se saltan.
func (s *Service) SeedHistory(ctx context.Context, petID int64) error {
	pet, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		return err
	}

	base := pets.DefaultWeights[pet.Species]
	if base == 0 {
		base = pets.DefaultWeights[pets.SpeciesRat]
	}

	for _, sample := range seedSamples {
		ts := s.now().AddDate(0, 0, -sample.daysAgo)
		date := ts.Format(time.DateOnly)

		_, err := s.repo.GetByPetAndDate(ctx, petID, date)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrNotFound) {
			return err
		}

		weight := base + sample.delta
		rec := DailyRecord{
			PetID:        petID,
			RecordDate:   date,
			Weight:       &weight,
			Observations: unionObservations(nil, sample.obs),
			CreatedAt:    ts,
			UpdatedAt:    ts,
		}
		if sample.notes != "" {
			n := sample.notes
			rec.Notes = &n
		}

		if _, err := s.repo.Insert(ctx, rec); err != nil {
			return err
		}
	}

	s.log.Debug().Int64("pet_id", petID).Msg("seeded sample history")
	return nil
}
