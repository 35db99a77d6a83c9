// Package export proyecta registros diarios a CSV con codificación
// segura contra inyección de fórmulas de planilla.
package export

import "strings"

// EscapeField escapa un campo para CSV:
//   - si el primer carácter es = + - @ tab o CR, se prefija un apóstrofe
//     ANTES de decidir el entrecomillado (neutraliza fórmulas tipo
//     =SUM(...); el prefijo en sí fuerza el entrecomillado);
//   - las comillas embebidas se duplican;
//   - se envuelve en comillas si hay coma, comilla o salto de línea;
//   - todo lo demás sale tal cual, sin comillas innecesarias.
//
// No usamos encoding/csv: su salida RFC 4180 no puede expresar la
// secuencia apóstrofe-luego-comillas ni el entrecomillado condicional
// de este contrato.
func EscapeField(value string) string {
	escaped := value

	if len(escaped) > 0 {
		switch escaped[0] {
		case '=', '+', '-', '@', '\t', '\r':
			escaped = "'" + escaped
		}
	}

	escaped = strings.ReplaceAll(escaped, `"`, `""`)

	if escaped != value || strings.ContainsAny(escaped, ",\"\n\r") {
		return `"` + escaped + `"`
	}
	return escaped
}
