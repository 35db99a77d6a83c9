package records

// Severity clasifica una observación para la UI; no afecta el merge.
type Severity string

const (
	SeverityNeutral Severity = "neutral"
	SeverityCaution Severity = "caution"
	SeverityDanger  Severity = "danger"
)

// PresetObservations es el vocabulario fijo de tags. Cualquier otro
// string se acepta como observación custom y se trata como opaco.
var PresetObservations = map[string]Severity{
	"normal":           SeverityNeutral,
	"sneeze":           SeverityCaution,
	"porphyrin":        SeverityCaution,
	"soft_stool":       SeverityCaution,
	"lethargic":        SeverityDanger,
	"loss_of_appetite": SeverityDanger,
}

// PresetOrder fija el orden de presentación del vocabulario.
var PresetOrder = []string{
	"normal",
	"sneeze",
	"porphyrin",
	"soft_stool",
	"lethargic",
	"loss_of_appetite",
}

// ObservationSeverity devuelve la severidad del tag; los custom son neutrales.
func ObservationSeverity(tag string) Severity {
	if s, ok := PresetObservations[tag]; ok {
		return s
	}
	return SeverityNeutral
}
