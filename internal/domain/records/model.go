package records

import "time"

// DailyRecord es la fila única por (mascota, día calendario). Esa
// unicidad es la invariante central del sistema: el primer write del
// día crea la fila y todos los siguientes la mutan vía merge.
type DailyRecord struct {
	ID    int64
	PetID int64

	RecordDate string // YYYY-MM-DD, día local del dispositivo

	Weight       *float64 // gramos; nil = sin pesada ese día
	Observations []string
	Notes        *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RecordWithPet es el registro unido con la identidad de su mascota,
// tal como lo devuelve el scan por rango de fechas (export).
type RecordWithPet struct {
	DailyRecord

	PetName    string
	PetSpecies string
}

// WeightPoint es una pesada puntual dentro de la serie de un animal.
type WeightPoint struct {
	RecordDate string
	Weight     float64
}
