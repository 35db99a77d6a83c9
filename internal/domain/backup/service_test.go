package backup

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pocket-squeak/internal/domain/pets"
	"pocket-squeak/internal/domain/records"
)

type testPetSource struct {
	pets []pets.Pet
}

func (s *testPetSource) List(ctx context.Context) ([]pets.Pet, error) {
	return s.pets, nil
}

type testRecordSource struct {
	byPet map[int64][]records.DailyRecord
}

func (s *testRecordSource) ListByPet(ctx context.Context, petID int64, since string) ([]records.DailyRecord, error) {
	return s.byPet[petID], nil
}

type capturingReplacer struct {
	pets    []pets.Pet
	records []records.DailyRecord
	err     error
	calls   int
}

func (r *capturingReplacer) ReplaceAll(ctx context.Context, ps []pets.Pet, recs []records.DailyRecord) error {
	r.calls++
	if r.err != nil {
		return r.err
	}
	r.pets = ps
	r.records = recs
	return nil
}

func TestService_Create_SnapshotsEverything(t *testing.T) {
	w := 350.0
	petSource := &testPetSource{pets: []pets.Pet{
		{ID: 1, Name: "Canela", Species: pets.SpeciesRat},
		{ID: 2, Name: "Bigotes", Species: pets.SpeciesHamster},
	}}
	recordSource := &testRecordSource{byPet: map[int64][]records.DailyRecord{
		1: {{ID: 10, PetID: 1, RecordDate: "2026-03-10", Weight: &w}},
		2: {},
	}}

	svc := NewService(petSource, recordSource, &capturingReplacer{}, zerolog.Nop())
	svc.now = func() time.Time {
		return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	}

	snap, err := svc.Create(context.Background())
	require.NoError(t, err)

	assert.Equal(t, SnapshotVersion, snap.Version)
	assert.Len(t, snap.Pets, 2)
	assert.Len(t, snap.DailyRecords, 1)
	assert.Equal(t, int64(10), snap.DailyRecords[0].ID)
	assert.Equal(t, "pocket_squeak_backup_2026-03-10.json", snap.Filename())
}

func TestService_Restore_PassesDataWithOriginalIDs(t *testing.T) {
	replacer := &capturingReplacer{}
	svc := NewService(&testPetSource{}, &testRecordSource{}, replacer, zerolog.Nop())

	w := 42.5
	snap := &Snapshot{
		Version: SnapshotVersion,
		Pets:    []PetRecord{{ID: 7, Name: "Trufa", Species: "guinea_pig"}},
		DailyRecords: []DailyRecordEntry{
			{ID: 31, PetID: 7, RecordDate: "2026-03-01", Weight: &w},
		},
	}

	require.NoError(t, svc.Restore(context.Background(), snap))
	require.Len(t, replacer.pets, 1)
	require.Len(t, replacer.records, 1)
	assert.Equal(t, int64(7), replacer.pets[0].ID)
	assert.Equal(t, int64(31), replacer.records[0].ID)
	assert.NotNil(t, replacer.records[0].Observations, "observations must never restore as nil")
}

func TestService_Restore_NilSnapshot(t *testing.T) {
	svc := NewService(&testPetSource{}, &testRecordSource{}, &capturingReplacer{}, zerolog.Nop())

	err := svc.Restore(context.Background(), nil)
	assert.True(t, errors.Is(err, ErrInvalidFormat))
}

func TestService_Restore_PropagatesReplacerFailure(t *testing.T) {
	boom := errors.New("disk full")
	replacer := &capturingReplacer{err: boom}
	svc := NewService(&testPetSource{}, &testRecordSource{}, replacer, zerolog.Nop())

	err := svc.Restore(context.Background(), &Snapshot{Version: SnapshotVersion})
	assert.True(t, errors.Is(err, boom))
	// el replacer es el único punto de escritura: si falló, nada se tocó
	assert.Nil(t, replacer.pets)
}

func TestService_Restore_MigratesLegacySnapshot(t *testing.T) {
	replacer := &capturingReplacer{}
	svc := NewService(&testPetSource{}, &testRecordSource{}, replacer, zerolog.Nop())

	snap := &Snapshot{
		Version: SnapshotVersion,
		Pets:    []PetRecord{{ID: 1, Name: "Canela"}},
		WeightLogs: []LegacyWeightLog{
			{PetID: 1, Weight: 348, RecordedAt: "2026-03-05T10:00:00Z"},
		},
		HealthLogs: []LegacyHealthLog{
			{PetID: 1, Tags: []string{"sneeze"}, RecordedAt: "2026-03-05T18:00:00Z"},
		},
	}

	require.NoError(t, svc.Restore(context.Background(), snap))
	require.Len(t, replacer.records, 1, "legacy logs for the same day must fold into one record")

	rec := replacer.records[0]
	assert.Equal(t, "2026-03-05", rec.RecordDate)
	assert.Equal(t, 348.0, *rec.Weight)
	assert.Equal(t, []string{"sneeze"}, rec.Observations)
}
