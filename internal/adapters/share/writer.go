// Package share escribe archivos de backup/export en el directorio de
// share del dispositivo, de donde los toma el colaborador de la plataforma.
package share

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type Writer struct {
	dir string
}

func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Save escribe data bajo un nombre derivado de filename con un sufijo
// corto aleatorio, para no pisar archivos previos del mismo rango/fecha.
// Devuelve la ruta final.
func (w *Writer) Save(filename string, data []byte) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("share dir: %w", err)
	}

	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)
	name := fmt.Sprintf("%s_%s%s", base, uuid.NewString()[:8], ext)

	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("share write: %w", err)
	}

	return path, nil
}
