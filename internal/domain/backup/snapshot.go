// Package backup serializa el grafo completo de mascotas y registros a
// un snapshot versionado y lo restaura de forma atómica.
package backup

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// SnapshotVersion es la versión actual del formato de backup.
const SnapshotVersion = 1

var ErrInvalidFormat = errors.New("invalid backup format")

// Snapshot es la imagen completa, versionada y autocontenida del store.
// Restaurarla reemplaza todo lo que haya; nunca se mezcla con datos
// existentes.
type Snapshot struct {
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"createdAt"`

	Pets         []PetRecord        `json:"pets"`
	DailyRecords []DailyRecordEntry `json:"dailyRecords"`

	// Solo presentes en backups del formato viejo de la app (tablas de
	// logs separadas); se pliegan en DailyRecords al restaurar.
	WeightLogs []LegacyWeightLog `json:"weightLogs,omitempty"`
	HealthLogs []LegacyHealthLog `json:"healthLogs,omitempty"`
}

// PetRecord replica el contrato JSON del archivo de backup (camelCase,
// distinto del API HTTP a propósito: el formato de archivo es estable).
type PetRecord struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Species   string    `json:"species"`
	Gender    string    `json:"gender"`
	Birthday  string    `json:"birthday"`
	PhotoURI  *string   `json:"photoUri,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type DailyRecordEntry struct {
	ID           int64     `json:"id"`
	PetID        int64     `json:"petId"`
	RecordDate   string    `json:"recordDate"`
	Weight       *float64  `json:"weight,omitempty"`
	Observations []string  `json:"observations"`
	Notes        *string   `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type LegacyWeightLog struct {
	PetID      int64   `json:"petId"`
	Weight     float64 `json:"weight"`
	RecordedAt string  `json:"recordedAt"` // RFC3339
}

type LegacyHealthLog struct {
	PetID      int64    `json:"petId"`
	Tags       []string `json:"tags"`
	Notes      *string  `json:"notes,omitempty"`
	RecordedAt string   `json:"recordedAt"`
}

// ParseSnapshot decodifica y valida la forma estructural del backup
// antes de cualquier acción destructiva: version tiene que ser un
// número JSON y pets/dailyRecords secuencias. Cualquier otra cosa es
// ErrInvalidFormat.
func ParseSnapshot(data []byte) (*Snapshot, error) {
	var probe struct {
		Version      json.RawMessage `json:"version"`
		Pets         json.RawMessage `json:"pets"`
		DailyRecords json.RawMessage `json:"dailyRecords"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, ErrInvalidFormat
	}

	var version float64
	if len(probe.Version) == 0 || json.Unmarshal(probe.Version, &version) != nil {
		return nil, ErrInvalidFormat
	}
	if !isJSONArray(probe.Pets) || !isJSONArray(probe.DailyRecords) {
		return nil, ErrInvalidFormat
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, ErrInvalidFormat
	}
	if snap.Version > SnapshotVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidFormat, snap.Version)
	}

	return &snap, nil
}

func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

// Filename sugiere el nombre de archivo del snapshot.
func (s *Snapshot) Filename() string {
	return fmt.Sprintf("pocket_squeak_backup_%s.json", s.CreatedAt.Format(time.DateOnly))
}

// Encode serializa el snapshot en UTF-8 indentado.
func (s *Snapshot) Encode() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}
