// Package memory implementa el storage completo en maps protegidos por
// un solo mutex. Es el fallback cuando no hay SQLite ni Postgres
// configurados, y el store de los tests.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"pocket-squeak/internal/domain/pets"
	"pocket-squeak/internal/domain/records"
)

type Store struct {
	mu           sync.RWMutex
	pets         map[int64]pets.Pet
	records      map[int64]records.DailyRecord
	nextPetID    int64
	nextRecordID int64
}

func NewStore() *Store {
	return &Store{
		pets:         make(map[int64]pets.Pet),
		records:      make(map[int64]records.DailyRecord),
		nextPetID:    1,
		nextRecordID: 1,
	}
}

// Pets devuelve la vista repositorio de mascotas sobre este store.
func (s *Store) Pets() pets.Repository { return &petRepo{store: s} }

// Records devuelve la vista repositorio de registros diarios.
func (s *Store) Records() records.Repository { return &recordRepo{store: s} }

// ReplaceAll reemplaza todo el contenido por el set dado, con los ids
// originales. Valida primero sobre estructuras nuevas y recién entonces
// hace el swap: si algo está mal, el estado previo no se toca.
func (s *Store) ReplaceAll(ctx context.Context, ps []pets.Pet, recs []records.DailyRecord) error {
	newPets := make(map[int64]pets.Pet, len(ps))
	var maxPetID int64
	for _, p := range ps {
		if p.ID <= 0 {
			return fmt.Errorf("pet %q: invalid id %d", p.Name, p.ID)
		}
		if _, dup := newPets[p.ID]; dup {
			return fmt.Errorf("duplicate pet id %d", p.ID)
		}
		newPets[p.ID] = p
		if p.ID > maxPetID {
			maxPetID = p.ID
		}
	}

	newRecords := make(map[int64]records.DailyRecord, len(recs))
	byPetDate := make(map[string]struct{}, len(recs))
	var maxRecordID int64
	for _, rec := range recs {
		if rec.ID <= 0 {
			return fmt.Errorf("record for pet %d: invalid id %d", rec.PetID, rec.ID)
		}
		if _, dup := newRecords[rec.ID]; dup {
			return fmt.Errorf("duplicate record id %d", rec.ID)
		}
		if _, ok := newPets[rec.PetID]; !ok {
			return fmt.Errorf("record %d references unknown pet %d", rec.ID, rec.PetID)
		}
		key := fmt.Sprintf("%d|%s", rec.PetID, rec.RecordDate)
		if _, dup := byPetDate[key]; dup {
			return fmt.Errorf("duplicate record for pet %d on %s", rec.PetID, rec.RecordDate)
		}
		byPetDate[key] = struct{}{}
		newRecords[rec.ID] = rec
		if rec.ID > maxRecordID {
			maxRecordID = rec.ID
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pets = newPets
	s.records = newRecords
	s.nextPetID = maxPetID + 1
	s.nextRecordID = maxRecordID + 1
	return nil
}

var errDuplicateRecord = errors.New("record already exists for pet and date")
