package backup

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"pocket-squeak/internal/domain/pets"
	"pocket-squeak/internal/domain/records"
)

// backupLookbackYears acota cuánta historia entra en un snapshot.
const backupLookbackYears = 10

type PetSource interface {
	List(ctx context.Context) ([]pets.Pet, error)
}

type RecordSource interface {
	ListByPet(ctx context.Context, petID int64, since string) ([]records.DailyRecord, error)
}

// Replacer reemplaza atómicamente TODO el contenido del store por el
// set dado, preservando los ids textuales. O entra todo o no entra
// nada: ante cualquier fallo el estado previo queda intacto.
type Replacer interface {
	ReplaceAll(ctx context.Context, ps []pets.Pet, recs []records.DailyRecord) error
}

type Service struct {
	pets     PetSource
	records  RecordSource
	replacer Replacer
	log      zerolog.Logger
	now      func() time.Time
}

func NewService(petSource PetSource, recordSource RecordSource, replacer Replacer, log zerolog.Logger) *Service {
	return &Service{
		pets:     petSource,
		records:  recordSource,
		replacer: replacer,
		log:      log,
		now:      time.Now,
	}
}

// Create arma la imagen completa: todas las mascotas y hasta diez años
// de registros de cada una.
func (s *Service) Create(ctx context.Context) (*Snapshot, error) {
	ps, err := s.pets.List(ctx)
	if err != nil {
		return nil, err
	}

	since := s.now().AddDate(-backupLookbackYears, 0, 0).Format(time.DateOnly)

	snap := &Snapshot{
		Version:      SnapshotVersion,
		CreatedAt:    s.now().UTC(),
		Pets:         make([]PetRecord, 0, len(ps)),
		DailyRecords: []DailyRecordEntry{},
	}

	for _, p := range ps {
		snap.Pets = append(snap.Pets, toPetRecord(p))

		recs, err := s.records.ListByPet(ctx, p.ID, since)
		if err != nil {
			return nil, err
		}
		for _, rec := range recs {
			snap.DailyRecords = append(snap.DailyRecords, toRecordEntry(rec))
		}
	}

	s.log.Info().
		Int("pets", len(snap.Pets)).
		Int("records", len(snap.DailyRecords)).
		Msg("backup snapshot created")

	return snap, nil
}

// Restore reemplaza el contenido del store por el snapshot, con los ids
// originales intactos (replace exacto, no import re-keyed). Los backups
// del formato viejo se migran primero. Nunca mergea con lo existente.
func (s *Service) Restore(ctx context.Context, snap *Snapshot) error {
	if snap == nil {
		return ErrInvalidFormat
	}

	snap.migrateLegacyLogs()

	ps := make([]pets.Pet, 0, len(snap.Pets))
	for _, pr := range snap.Pets {
		ps = append(ps, fromPetRecord(pr))
	}

	recs := make([]records.DailyRecord, 0, len(snap.DailyRecords))
	for _, entry := range snap.DailyRecords {
		recs = append(recs, fromRecordEntry(entry))
	}

	if err := s.replacer.ReplaceAll(ctx, ps, recs); err != nil {
		return err
	}

	s.log.Info().
		Int("pets", len(ps)).
		Int("records", len(recs)).
		Msg("backup restored")

	return nil
}

func toPetRecord(p pets.Pet) PetRecord {
	return PetRecord{
		ID:        p.ID,
		Name:      p.Name,
		Species:   string(p.Species),
		Gender:    string(p.Gender),
		Birthday:  p.Birthday,
		PhotoURI:  p.PhotoURI,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func fromPetRecord(pr PetRecord) pets.Pet {
	return pets.Pet{
		ID:        pr.ID,
		Name:      pr.Name,
		Species:   pets.Species(pr.Species),
		Gender:    pets.Gender(pr.Gender),
		Birthday:  pr.Birthday,
		PhotoURI:  pr.PhotoURI,
		CreatedAt: pr.CreatedAt,
		UpdatedAt: pr.UpdatedAt,
	}
}

func toRecordEntry(rec records.DailyRecord) DailyRecordEntry {
	obs := rec.Observations
	if obs == nil {
		obs = []string{}
	}
	return DailyRecordEntry{
		ID:           rec.ID,
		PetID:        rec.PetID,
		RecordDate:   rec.RecordDate,
		Weight:       rec.Weight,
		Observations: obs,
		Notes:        rec.Notes,
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
	}
}

func fromRecordEntry(entry DailyRecordEntry) records.DailyRecord {
	obs := entry.Observations
	if obs == nil {
		obs = []string{}
	}
	return records.DailyRecord{
		ID:           entry.ID,
		PetID:        entry.PetID,
		RecordDate:   entry.RecordDate,
		Weight:       entry.Weight,
		Observations: obs,
		Notes:        entry.Notes,
		CreatedAt:    entry.CreatedAt,
		UpdatedAt:    entry.UpdatedAt,
	}
}
