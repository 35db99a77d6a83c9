package memory

import (
	"context"
	"sort"

	"pocket-squeak/internal/domain/records"
)

type recordRepo struct {
	store *Store
}

func (r *recordRepo) Insert(ctx context.Context, rec records.DailyRecord) (records.DailyRecord, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.records {
		if existing.PetID == rec.PetID && existing.RecordDate == rec.RecordDate {
			return records.DailyRecord{}, errDuplicateRecord
		}
	}

	rec.ID = s.nextRecordID
	s.nextRecordID++
	s.records[rec.ID] = cloneRecord(rec)
	return rec, nil
}

func (r *recordRepo) Update(ctx context.Context, rec records.DailyRecord) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[rec.ID]; !ok {
		return records.ErrNotFound
	}
	s.records[rec.ID] = cloneRecord(rec)
	return nil
}

func (r *recordRepo) GetByPetAndDate(ctx context.Context, petID int64, date string) (records.DailyRecord, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.records {
		if rec.PetID == petID && rec.RecordDate == date {
			return cloneRecord(rec), nil
		}
	}
	return records.DailyRecord{}, records.ErrNotFound
}

func (r *recordRepo) ListByPet(ctx context.Context, petID int64, since string) ([]records.DailyRecord, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]records.DailyRecord, 0)
	for _, rec := range s.records {
		if rec.PetID != petID {
			continue
		}
		if since != "" && rec.RecordDate < since {
			continue
		}
		out = append(out, cloneRecord(rec))
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].RecordDate > out[j].RecordDate
	})

	return out, nil
}

func (r *recordRepo) LatestWeights(ctx context.Context, petID int64, limit int) ([]records.WeightPoint, error) {
	s := r.store
	s.mu.RLock()

	withWeight := make([]records.DailyRecord, 0)
	for _, rec := range s.records {
		if rec.PetID == petID && rec.Weight != nil {
			withWeight = append(withWeight, rec)
		}
	}
	s.mu.RUnlock()

	sort.Slice(withWeight, func(i, j int) bool {
		return withWeight[i].RecordDate > withWeight[j].RecordDate
	})

	if limit > 0 && len(withWeight) > limit {
		withWeight = withWeight[:limit]
	}

	out := make([]records.WeightPoint, 0, len(withWeight))
	for _, rec := range withWeight {
		out = append(out, records.WeightPoint{RecordDate: rec.RecordDate, Weight: *rec.Weight})
	}
	return out, nil
}

func (r *recordRepo) ListForDateRange(ctx context.Context, start, end string) ([]records.RecordWithPet, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]records.RecordWithPet, 0)
	for _, rec := range s.records {
		if rec.RecordDate < start || rec.RecordDate > end {
			continue
		}
		p, ok := s.pets[rec.PetID]
		if !ok {
			continue
		}
		out = append(out, records.RecordWithPet{
			DailyRecord: cloneRecord(rec),
			PetName:     p.Name,
			PetSpecies:  string(p.Species),
		})
	}

	// Fecha descendente, nombre ascendente dentro del mismo día.
	sort.Slice(out, func(i, j int) bool {
		if out[i].RecordDate != out[j].RecordDate {
			return out[i].RecordDate > out[j].RecordDate
		}
		return out[i].PetName < out[j].PetName
	})

	return out, nil
}

// cloneRecord copia punteros y slice para que los callers no puedan
// mutar lo guardado en el map.
func cloneRecord(rec records.DailyRecord) records.DailyRecord {
	out := rec
	if rec.Weight != nil {
		w := *rec.Weight
		out.Weight = &w
	}
	if rec.Notes != nil {
		n := *rec.Notes
		out.Notes = &n
	}
	if rec.Observations != nil {
		out.Observations = append([]string(nil), rec.Observations...)
	}
	return out
}
