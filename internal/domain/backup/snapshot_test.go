package backup

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSnapshot_ValidMinimal(t *testing.T) {
	data := []byte(`{
		"version": 1,
		"createdAt": "2026-03-10T12:00:00Z",
		"pets": [],
		"dailyRecords": []
	}`)

	snap, err := ParseSnapshot(data)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Version)
	assert.Empty(t, snap.Pets)
	assert.Empty(t, snap.DailyRecords)
}

func TestParseSnapshot_Invalid(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"not json", `this is not json`},
		{"missing version", `{"pets": [], "dailyRecords": []}`},
		{"version not a number", `{"version": "1", "pets": [], "dailyRecords": []}`},
		{"pets not an array", `{"version": 1, "pets": {}, "dailyRecords": []}`},
		{"dailyRecords not an array", `{"version": 1, "pets": [], "dailyRecords": 3}`},
		{"future version", `{"version": 99, "pets": [], "dailyRecords": []}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseSnapshot([]byte(tc.data))
			assert.True(t, errors.Is(err, ErrInvalidFormat), "got %v", err)
		})
	}
}

func TestParseSnapshot_RoundTrip(t *testing.T) {
	w := 350.5
	snap := &Snapshot{
		Version: SnapshotVersion,
		Pets: []PetRecord{
			{ID: 1, Name: "Canela", Species: "rat", Gender: "female", Birthday: "2025-01-15"},
		},
		DailyRecords: []DailyRecordEntry{
			{ID: 1, PetID: 1, RecordDate: "2026-03-10", Weight: &w, Observations: []string{"normal"}},
		},
	}

	data, err := snap.Encode()
	require.NoError(t, err)

	decoded, err := ParseSnapshot(data)
	require.NoError(t, err)
	assert.Equal(t, snap.Pets, decoded.Pets)
	assert.Equal(t, snap.DailyRecords, decoded.DailyRecords)
}

func TestMigrateLegacyLogs_FoldsIntoDailyRecords(t *testing.T) {
	notes := "vet visit"
	existing := 340.0
	snap := &Snapshot{
		Version: SnapshotVersion,
		Pets:    []PetRecord{{ID: 1, Name: "Canela"}},
		DailyRecords: []DailyRecordEntry{
			{ID: 7, PetID: 1, RecordDate: "2026-03-09", Weight: &existing, Observations: []string{"normal"}},
		},
		WeightLogs: []LegacyWeightLog{
			// mismo día que el registro 7: el peso existente no se pisa
			{PetID: 1, Weight: 999, RecordedAt: "2026-03-09T08:00:00Z"},
			// día nuevo: se sintetiza registro
			{PetID: 1, Weight: 345, RecordedAt: "2026-03-08T08:00:00Z"},
		},
		HealthLogs: []LegacyHealthLog{
			{PetID: 1, Tags: []string{"sneeze", "normal"}, Notes: &notes, RecordedAt: "2026-03-09T09:30:00Z"},
		},
	}

	snap.migrateLegacyLogs()

	require.Len(t, snap.DailyRecords, 2)
	assert.Nil(t, snap.WeightLogs)
	assert.Nil(t, snap.HealthLogs)

	day9 := snap.DailyRecords[0]
	assert.Equal(t, 340.0, *day9.Weight, "existing weight must win over legacy log")
	assert.Equal(t, []string{"normal", "sneeze"}, day9.Observations)
	assert.Equal(t, "vet visit", *day9.Notes)

	day8 := snap.DailyRecords[1]
	assert.Equal(t, "2026-03-08", day8.RecordDate)
	assert.Equal(t, 345.0, *day8.Weight)
	// id sintetizado por encima del máximo existente
	assert.Greater(t, day8.ID, int64(7))
}

func TestSnapshot_Filename(t *testing.T) {
	snap, err := ParseSnapshot([]byte(`{"version":1,"createdAt":"2026-03-10T12:00:00Z","pets":[],"dailyRecords":[]}`))
	require.NoError(t, err)
	assert.Equal(t, "pocket_squeak_backup_2026-03-10.json", snap.Filename())
}
