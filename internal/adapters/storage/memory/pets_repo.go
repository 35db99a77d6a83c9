package memory

import (
	"context"
	"sort"

	"pocket-squeak/internal/domain/pets"
)

type petRepo struct {
	store *Store
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) (pets.Pet, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.nextPetID
	s.nextPetID++
	s.pets[p.ID] = clonePet(p)
	return p, nil
}

func (r *petRepo) GetByID(ctx context.Context, id int64) (pets.Pet, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.pets[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return clonePet(p), nil
}

func (r *petRepo) List(ctx context.Context) ([]pets.Pet, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]pets.Pet, 0, len(s.pets))
	for _, p := range s.pets {
		out = append(out, clonePet(p))
	}

	// Más recientes primero; id como desempate para orden estable.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})

	return out, nil
}

func (r *petRepo) Update(ctx context.Context, p pets.Pet) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pets[p.ID]; !ok {
		return pets.ErrNotFound
	}
	s.pets[p.ID] = clonePet(p)
	return nil
}

// Delete borra la mascota y, bajo el mismo lock, todos sus registros
// diarios. El cascade vive acá y no en el servicio.
func (r *petRepo) Delete(ctx context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pets[id]; !ok {
		return pets.ErrNotFound
	}
	delete(s.pets, id)

	for recID, rec := range s.records {
		if rec.PetID == id {
			delete(s.records, recID)
		}
	}
	return nil
}

// clonePet copia el puntero de foto para que los callers no puedan
// mutar lo guardado en el map (mismo criterio que cloneRecord).
func clonePet(p pets.Pet) pets.Pet {
	out := p
	if p.PhotoURI != nil {
		v := *p.PhotoURI
		out.PhotoURI = &v
	}
	return out
}
