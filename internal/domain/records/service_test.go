package records

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"pocket-squeak/internal/domain/pets"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID   map[int64]DailyRecord
	nextID int64
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[int64]DailyRecord{}, nextID: 1}
}

func (r *testRepo) Insert(ctx context.Context, rec DailyRecord) (DailyRecord, error) {
	for _, existing := range r.byID {
		if existing.PetID == rec.PetID && existing.RecordDate == rec.RecordDate {
			return DailyRecord{}, errors.New("repo: duplicate pet/date")
		}
	}
	rec.ID = r.nextID
	r.nextID++
	r.byID[rec.ID] = rec
	return rec, nil
}

func (r *testRepo) Update(ctx context.Context, rec DailyRecord) error {
	if _, ok := r.byID[rec.ID]; !ok {
		return ErrNotFound
	}
	r.byID[rec.ID] = rec
	return nil
}

func (r *testRepo) GetByPetAndDate(ctx context.Context, petID int64, date string) (DailyRecord, error) {
	for _, rec := range r.byID {
		if rec.PetID == petID && rec.RecordDate == date {
			return rec, nil
		}
	}
	return DailyRecord{}, ErrNotFound
}

func (r *testRepo) ListByPet(ctx context.Context, petID int64, since string) ([]DailyRecord, error) {
	out := make([]DailyRecord, 0)
	for _, rec := range r.byID {
		if rec.PetID != petID {
			continue
		}
		if since != "" && rec.RecordDate < since {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *testRepo) LatestWeights(ctx context.Context, petID int64, limit int) ([]WeightPoint, error) {
	return nil, nil
}

func (r *testRepo) ListForDateRange(ctx context.Context, start, end string) ([]RecordWithPet, error) {
	return nil, nil
}

type testPets struct {
	byID map[int64]pets.Pet
}

func (p *testPets) GetByID(ctx context.Context, id int64) (pets.Pet, error) {
	pet, ok := p.byID[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return pet, nil
}

func newTestService(repo *testRepo) *Service {
	lookup := &testPets{byID: map[int64]pets.Pet{
		1: {ID: 1, Name: "Canela", Species: pets.SpeciesRat},
	}}
	svc := NewService(repo, lookup, zerolog.Nop())
	svc.now = func() time.Time {
		return time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	}
	return svc
}

// -------------------------
// Tests
// -------------------------

func TestService_UpsertToday_CreatesThenMerges(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	first, err := svc.UpsertToday(ctx, 1, UpsertInput{
		Weight:       f64(350),
		Observations: []string{"normal"},
	})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if first.RecordDate != "2026-03-10" {
		t.Fatalf("expected record date 2026-03-10, got %s", first.RecordDate)
	}

	// segundo upsert del mismo día: no crea otro registro
	second, err := svc.UpsertToday(ctx, 1, UpsertInput{
		Observations: []string{"sneeze"},
		Notes:        str("sneezing after cleaning"),
	})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	if len(repo.byID) != 1 {
		t.Fatalf("expected 1 record for pet/day, got %d", len(repo.byID))
	}
	if second.ID != first.ID {
		t.Fatalf("expected same record id, got %d and %d", first.ID, second.ID)
	}
	if second.Weight == nil || *second.Weight != 350 {
		t.Fatalf("weight must survive a patch without weight, got %v", second.Weight)
	}
	if len(second.Observations) != 2 {
		t.Fatalf("expected union of observations, got %v", second.Observations)
	}
}

func TestService_UpsertToday_UnknownPet(t *testing.T) {
	svc := newTestService(newTestRepo())

	_, err := svc.UpsertToday(context.Background(), 99, UpsertInput{Weight: f64(100)})
	if !errors.Is(err, pets.ErrNotFound) {
		t.Fatalf("expected pets.ErrNotFound, got %v", err)
	}
}

func TestService_UpsertToday_RejectsNonPositiveWeight(t *testing.T) {
	svc := newTestService(newTestRepo())

	for _, w := range []float64{0, -5} {
		_, err := svc.UpsertToday(context.Background(), 1, UpsertInput{Weight: f64(w)})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("weight %v: expected ErrInvalidInput, got %v", w, err)
		}
	}
}

func TestService_Today_NotFoundBeforeFirstUpsert(t *testing.T) {
	svc := newTestService(newTestRepo())

	_, err := svc.Today(context.Background(), 1)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_SeedHistory_SkipsExistingDates(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	if err := svc.SeedHistory(ctx, 1); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if len(repo.byID) != len(seedSamples) {
		t.Fatalf("expected %d seeded records, got %d", len(seedSamples), len(repo.byID))
	}

	// segunda pasada: los días ya sembrados no se duplican ni se pisan
	if err := svc.SeedHistory(ctx, 1); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if len(repo.byID) != len(seedSamples) {
		t.Fatalf("second seed must be a no-op, got %d records", len(repo.byID))
	}
}
