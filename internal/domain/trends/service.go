package trends

import (
	"context"

	"github.com/rs/zerolog"

	"pocket-squeak/internal/domain/pets"
	"pocket-squeak/internal/domain/records"
	"pocket-squeak/internal/ports/notify"
)

type PetLister interface {
	List(ctx context.Context) ([]pets.Pet, error)
}

// WeightSource entrega las últimas pesadas de un animal; los registros
// sin peso no cuentan para localizar "la anterior".
type WeightSource interface {
	LatestWeights(ctx context.Context, petID int64, limit int) ([]records.WeightPoint, error)
}

// PetOverview es una mascota con su estado derivado.
type PetOverview struct {
	Pet pets.Pet

	LatestWeight        *float64
	WeightChangePercent *float64 // nil = sin resultado (no 0%)
	Alert               AlertStatus
}

type Service struct {
	pets     PetLister
	weights  WeightSource
	notifier notify.Notifier
	log      zerolog.Logger
}

func NewService(lister PetLister, weights WeightSource, notifier notify.Notifier, log zerolog.Logger) *Service {
	if notifier == nil {
		notifier = notify.Noop{}
	}
	return &Service{
		pets:     lister,
		weights:  weights,
		notifier: notifier,
		log:      log,
	}
}

// Overview lista las mascotas (más nuevas primero) con última pesada,
// cambio porcentual y alerta, recalculados en este mismo call. Cada
// loss_warning dispara una notificación, una por mascota por refresh.
func (s *Service) Overview(ctx context.Context) ([]PetOverview, error) {
	ps, err := s.pets.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]PetOverview, 0, len(ps))
	for _, p := range ps {
		pts, err := s.weights.LatestWeights(ctx, p.ID, 2)
		if err != nil {
			return nil, err
		}

		var current, previous *float64
		if len(pts) > 0 {
			current = &pts[0].Weight
		}
		if len(pts) > 1 {
			previous = &pts[1].Weight
		}

		pct, ok := WeightChangePercent(current, previous)
		status := ClassifyAlert(pct, ok)

		ov := PetOverview{Pet: p, LatestWeight: current, Alert: status}
		if ok {
			v := pct
			ov.WeightChangePercent = &v
		}

		if status == AlertLossWarning {
			s.notifier.HealthAlert(ctx, notify.HealthAlert{
				PetID:         p.ID,
				PetName:       p.Name,
				ChangePercent: pct,
			})
		}

		out = append(out, ov)
	}

	return out, nil
}
