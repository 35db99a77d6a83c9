package pets

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("pet not found")

type Repository interface {
	// Create persiste la mascota y devuelve la copia con ID asignado.
	Create(ctx context.Context, p Pet) (Pet, error)
	GetByID(ctx context.Context, id int64) (Pet, error)
	// List devuelve todas las mascotas, las más nuevas primero.
	List(ctx context.Context) ([]Pet, error)
	Update(ctx context.Context, p Pet) error
	// Delete borra la mascota y, en cascada, todos sus registros diarios.
	Delete(ctx context.Context, id int64) error
}
