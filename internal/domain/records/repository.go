package records

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("daily record not found")

type Repository interface {
	// Insert persiste un registro nuevo y devuelve la copia con ID.
	// Falla si ya existe un registro para (PetID, RecordDate).
	Insert(ctx context.Context, rec DailyRecord) (DailyRecord, error)
	Update(ctx context.Context, rec DailyRecord) error

	GetByPetAndDate(ctx context.Context, petID int64, date string) (DailyRecord, error)

	// ListByPet devuelve los registros con record_date >= since
	// (since vacío = todos), ordenados por fecha descendente.
	ListByPet(ctx context.Context, petID int64, since string) ([]DailyRecord, error)

	// LatestWeights devuelve las últimas pesadas del animal (solo
	// registros con peso), por fecha descendente.
	LatestWeights(ctx context.Context, petID int64, limit int) ([]WeightPoint, error)

	// ListForDateRange une con la mascota dueña; orden: fecha
	// descendente y, a igual fecha, nombre ascendente.
	ListForDateRange(ctx context.Context, start, end string) ([]RecordWithPet, error)
}
