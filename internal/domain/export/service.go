package export

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"pocket-squeak/internal/domain/records"
)

var (
	// ErrNoData es una condición visible para el usuario: un export sin
	// filas no produce un archivo vacío silencioso.
	ErrNoData = errors.New("no records for the selected criteria")

	ErrInvalidInput = errors.New("invalid input")
)

// defaultRangeDays es la ventana por defecto cuando no se pide rango.
const defaultRangeDays = 30

var csvHeader = []string{"Date", "Pet Name", "Species", "Weight", "Observations", "Notes"}

type RecordSource interface {
	ListForDateRange(ctx context.Context, start, end string) ([]records.RecordWithPet, error)
}

type Options struct {
	PetIDs    []int64 // vacío = todas las mascotas
	StartDate string  // YYYY-MM-DD; vacío = hoy - 30 días
	EndDate   string  // YYYY-MM-DD; vacío = hoy
}

type Result struct {
	Filename string
	CSV      string
}

type Service struct {
	records RecordSource
	log     zerolog.Logger
	now     func() time.Time
}

func NewService(recordSource RecordSource, log zerolog.Logger) *Service {
	return &Service{
		records: recordSource,
		log:     log,
		now:     time.Now,
	}
}

// Export arma el CSV del rango pedido: un header y una fila por
// registro, en el orden del store (fecha desc, nombre asc). Cada campo
// pasa por EscapeField.
func (s *Service) Export(ctx context.Context, opts Options) (Result, error) {
	end := opts.EndDate
	if end == "" {
		end = s.now().Format(time.DateOnly)
	}
	start := opts.StartDate
	if start == "" {
		start = s.now().AddDate(0, 0, -defaultRangeDays).Format(time.DateOnly)
	}

	if _, err := time.Parse(time.DateOnly, start); err != nil {
		return Result{}, ErrInvalidInput
	}
	if _, err := time.Parse(time.DateOnly, end); err != nil {
		return Result{}, ErrInvalidInput
	}

	rows, err := s.records.ListForDateRange(ctx, start, end)
	if err != nil {
		return Result{}, err
	}

	if len(opts.PetIDs) > 0 {
		wanted := make(map[int64]struct{}, len(opts.PetIDs))
		for _, id := range opts.PetIDs {
			wanted[id] = struct{}{}
		}

		filtered := rows[:0]
		for _, row := range rows {
			if _, ok := wanted[row.PetID]; ok {
				filtered = append(filtered, row)
			}
		}
		rows = filtered
	}

	if len(rows) == 0 {
		return Result{}, ErrNoData
	}

	var b strings.Builder
	b.WriteString(strings.Join(csvHeader, ","))
	b.WriteByte('\n')

	for _, row := range rows {
		weight := ""
		if row.Weight != nil {
			weight = strconv.FormatFloat(*row.Weight, 'f', -1, 64)
		}
		notes := ""
		if row.Notes != nil {
			notes = *row.Notes
		}

		fields := []string{
			row.RecordDate,
			row.PetName,
			row.PetSpecies,
			weight,
			strings.Join(row.Observations, ", "),
			notes,
		}
		for i, f := range fields {
			fields[i] = EscapeField(f)
		}

		b.WriteString(strings.Join(fields, ","))
		b.WriteByte('\n')
	}

	s.log.Info().
		Str("start", start).
		Str("end", end).
		Int("rows", len(rows)).
		Msg("csv export generated")

	return Result{
		Filename: fmt.Sprintf("pocket_squeak_export_%s_%s.csv", start, end),
		CSV:      b.String(),
	}, nil
}
