// Package trends deriva tendencia de peso y estado de alerta. Todo es
// derivado: se recalcula en cada carga y no se persiste nada.
package trends

// Umbrales de alerta en porcentaje. Deben mantenerse exactamente
// simétricos: |WeightLossWarning| == WeightGainNotable (invariante
// cubierta por test).
const (
	WeightLossWarning = -5.0
	WeightGainNotable = 5.0
)

// AlertStatus es el estado derivado de una mascota.
type AlertStatus string

const (
	AlertNoData      AlertStatus = "no_data"
	AlertNormal      AlertStatus = "normal"
	AlertGainNotable AlertStatus = "gain_notable"
	AlertLossWarning AlertStatus = "loss_warning"
)

// WeightChangePercent calcula el cambio porcentual entre la pesada
// actual y la anterior. Devuelve ok=false ("sin resultado", distinto de
// 0% y nunca un error) cuando falta alguna de las dos o cuando la
// anterior es 0 (guarda de división por cero).
func WeightChangePercent(current, previous *float64) (float64, bool) {
	if current == nil || previous == nil || *previous == 0 {
		return 0, false
	}
	return (*current - *previous) / *previous * 100, true
}

// ClassifyAlert clasifica el cambio contra los umbrales fijos.
func ClassifyAlert(changePercent float64, ok bool) AlertStatus {
	if !ok {
		return AlertNoData
	}
	switch {
	case changePercent <= WeightLossWarning:
		return AlertLossWarning
	case changePercent >= WeightGainNotable:
		return AlertGainNotable
	default:
		return AlertNormal
	}
}
