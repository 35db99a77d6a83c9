package records

import "time"

// UpsertInput es el patch de un upsert diario. nil = no tocar el campo.
type UpsertInput struct {
	Weight       *float64
	Observations []string
	Notes        *string
}

// Merge es el reducer (registroExistente, patch) -> registroNuevo que
// define el contrato de upsert del día:
//   - el peso se sobreescribe solo si viene en el patch;
//   - las observaciones se unen como conjunto, nunca se reemplazan;
//   - las notas se sobreescriben solo si vienen;
//   - UpdatedAt se actualiza siempre, aunque ningún campo durable cambie.
//
// Es una función pura para poder testear el merge sin storage.
func Merge(existing DailyRecord, patch UpsertInput, now time.Time) DailyRecord {
	out := existing

	if patch.Weight != nil {
		w := *patch.Weight
		out.Weight = &w
	}
	if patch.Notes != nil {
		n := *patch.Notes
		out.Notes = &n
	}
	if len(patch.Observations) > 0 {
		out.Observations = unionObservations(existing.Observations, patch.Observations)
	}

	out.UpdatedAt = now
	return out
}

// unionObservations une conservando el orden de primera aparición.
// Llamar dos veces con el mismo set es idempotente.
func unionObservations(existing, incoming []string) []string {
	out := make([]string, 0, len(existing)+len(incoming))
	seen := make(map[string]struct{}, len(existing)+len(incoming))

	for _, list := range [][]string{existing, incoming} {
		for _, obs := range list {
			if _, ok := seen[obs]; ok {
				continue
			}
			seen[obs] = struct{}{}
			out = append(out, obs)
		}
	}

	return out
}
