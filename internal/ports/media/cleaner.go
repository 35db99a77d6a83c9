// Package media define la limpieza de fotos de mascotas como colaborador externo.
package media

import "context"

// Cleaner borra las imágenes asociadas a una mascota. Se invoca después
// de un borrado exitoso en el store; el store es la autoridad (ver DESIGN).
type Cleaner interface {
	DeletePetImages(ctx context.Context, petID int64) error
}

// Noop para deployments sin almacenamiento de fotos.
type Noop struct{}

func (Noop) DeletePetImages(context.Context, int64) error { return nil }
