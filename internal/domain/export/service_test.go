package export

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"pocket-squeak/internal/domain/records"
)

type testSource struct {
	rows []records.RecordWithPet

	gotStart, gotEnd string
}

func (s *testSource) ListForDateRange(ctx context.Context, start, end string) ([]records.RecordWithPet, error) {
	s.gotStart, s.gotEnd = start, end

	out := make([]records.RecordWithPet, 0)
	for _, row := range s.rows {
		if row.RecordDate >= start && row.RecordDate <= end {
			out = append(out, row)
		}
	}
	return out, nil
}

func f64(v float64) *float64 { return &v }
func str(v string) *string   { return &v }

func newExportService(src *testSource) *Service {
	svc := NewService(src, zerolog.Nop())
	svc.now = func() time.Time {
		return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestService_Export_DefaultRangeAndContent(t *testing.T) {
	src := &testSource{rows: []records.RecordWithPet{
		{
			DailyRecord: records.DailyRecord{
				PetID:        1,
				RecordDate:   "2026-03-10",
				Weight:       f64(350.5),
				Observations: []string{"normal", "sneeze"},
				Notes:        str("ate well, active"),
			},
			PetName:    "Canela",
			PetSpecies: "rat",
		},
		{
			DailyRecord: records.DailyRecord{
				PetID:      2,
				RecordDate: "2026-03-09",
			},
			PetName:    "Bigotes",
			PetSpecies: "hamster",
		},
	}}

	res, err := newExportService(src).Export(context.Background(), Options{})
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	// default: 30 días hacia atrás desde hoy
	if src.gotStart != "2026-02-08" || src.gotEnd != "2026-03-10" {
		t.Fatalf("unexpected default range %s..%s", src.gotStart, src.gotEnd)
	}
	if res.Filename != "pocket_squeak_export_2026-02-08_2026-03-10.csv" {
		t.Fatalf("unexpected filename %s", res.Filename)
	}

	lines := strings.Split(strings.TrimRight(res.CSV, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "Date,Pet Name,Species,Weight,Observations,Notes" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if lines[1] != `2026-03-10,Canela,rat,350.5,"normal, sneeze","ate well, active"` {
		t.Fatalf("unexpected row %q", lines[1])
	}
	// registro sin peso ni notas: campos vacíos
	if lines[2] != "2026-03-09,Bigotes,hamster,,," {
		t.Fatalf("unexpected empty-fields row %q", lines[2])
	}
}

func TestService_Export_FiltersByPet(t *testing.T) {
	src := &testSource{rows: []records.RecordWithPet{
		{DailyRecord: records.DailyRecord{PetID: 1, RecordDate: "2026-03-10"}, PetName: "Canela", PetSpecies: "rat"},
		{DailyRecord: records.DailyRecord{PetID: 2, RecordDate: "2026-03-10"}, PetName: "Bigotes", PetSpecies: "hamster"},
	}}

	res, err := newExportService(src).Export(context.Background(), Options{PetIDs: []int64{2}})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if strings.Contains(res.CSV, "Canela") {
		t.Fatalf("pet 1 should have been filtered out:\n%s", res.CSV)
	}
	if !strings.Contains(res.CSV, "Bigotes") {
		t.Fatalf("pet 2 missing from export:\n%s", res.CSV)
	}
}

func TestService_Export_NoData(t *testing.T) {
	src := &testSource{}

	_, err := newExportService(src).Export(context.Background(), Options{})
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}

	// filtro que deja el set vacío también es ErrNoData
	src.rows = []records.RecordWithPet{
		{DailyRecord: records.DailyRecord{PetID: 1, RecordDate: "2026-03-10"}, PetName: "Canela"},
	}
	_, err = newExportService(src).Export(context.Background(), Options{PetIDs: []int64{42}})
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData after filter, got %v", err)
	}
}

func TestService_Export_RejectsBadDates(t *testing.T) {
	svc := newExportService(&testSource{})

	_, err := svc.Export(context.Background(), Options{StartDate: "10/03/2026"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
