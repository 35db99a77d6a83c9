// Package notify define el colaborador de notificaciones que consume el core.
package notify

import "context"

// HealthAlert es el aviso de pérdida de peso de una mascota.
// Se emite como máximo una vez por mascota por ciclo de refresco;
// no se persiste ningún log de alertas.
type HealthAlert struct {
	PetID         int64
	PetName       string
	ChangePercent float64
}

type Notifier interface {
	HealthAlert(ctx context.Context, alert HealthAlert)
}

// Noop descarta las alertas (tests, CLI).
type Noop struct{}

func (Noop) HealthAlert(context.Context, HealthAlert) {}
