// Package notify implementa el notificador de alertas sobre zerolog.
// En el dispositivo real esto termina en una notificación push; acá el
// boundary es un warn estructurado que la capa de UI puede observar.
package notify

import (
	"context"

	"github.com/rs/zerolog"

	"pocket-squeak/internal/platform/metrics"
	port "pocket-squeak/internal/ports/notify"
)

type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) HealthAlert(ctx context.Context, a port.HealthAlert) {
	metrics.HealthAlerts.Inc()

	n.log.Warn().
		Int64("pet_id", a.PetID).
		Str("pet", a.PetName).
		Float64("change_percent", a.ChangePercent).
		Msg("weight loss warning")
}
