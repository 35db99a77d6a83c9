package pets

import "time"

// Species define las especies soportadas.
// @Enum rat, guinea_pig, hamster, gerbil, mouse
type Species string

const (
	SpeciesRat       Species = "rat"
	SpeciesGuineaPig Species = "guinea_pig"
	SpeciesHamster   Species = "hamster"
	SpeciesGerbil    Species = "gerbil"
	SpeciesMouse     Species = "mouse"
)

// AllSpecies fija el orden de presentación del catálogo.
var AllSpecies = []Species{
	SpeciesRat,
	SpeciesGuineaPig,
	SpeciesHamster,
	SpeciesGerbil,
	SpeciesMouse,
}

func ValidSpecies(s Species) bool {
	switch s {
	case SpeciesRat, SpeciesGuineaPig, SpeciesHamster, SpeciesGerbil, SpeciesMouse:
		return true
	}
	return false
}

// Gender define el sexo de la mascota.
// @Enum male, female, unknown
type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderUnknown Gender = "unknown"
)

func ValidGender(g Gender) bool {
	switch g {
	case GenderMale, GenderFemale, GenderUnknown:
		return true
	}
	return false
}

// DefaultWeights son pesos adultos de referencia por especie, en gramos.
// Se usan para el seed de historia y como hint de UI.
var DefaultWeights = map[Species]float64{
	SpeciesRat:       350,
	SpeciesGuineaPig: 900,
	SpeciesHamster:   40,
	SpeciesGerbil:    70,
	SpeciesMouse:     25,
}

// SpeciesNames nombres para mostrar.
var SpeciesNames = map[Species]string{
	SpeciesRat:       "Rat",
	SpeciesGuineaPig: "Guinea Pig",
	SpeciesHamster:   "Hamster",
	SpeciesGerbil:    "Gerbil",
	SpeciesMouse:     "Mouse",
}

// Pet representa el perfil de un animal registrado.
// El ID lo asigna el store y es inmutable; borrar una mascota elimina
// en cascada todos sus registros diarios.
type Pet struct {
	ID int64

	Name    string
	Species Species
	Gender  Gender

	Birthday string // YYYY-MM-DD
	PhotoURI *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
