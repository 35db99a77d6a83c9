package pets

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta el CRUD de mascotas. El listado (GET /pets) lo
// sirve el módulo trends, que recalcula tendencia y alertas en cada
// carga; se inyecta acá para no duplicar el patrón de ruta.
func RegisterRoutes(r chi.Router, svc *Service, listWithTrends http.HandlerFunc) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc))
		pr.Get("/", listWithTrends)

		pr.Get("/{petID}", getPetHandler(svc))
		pr.Patch("/{petID}", updatePetHandler(svc))
		pr.Delete("/{petID}", deletePetHandler(svc))
	})

	r.Get("/species", speciesHandler())
}

type createPetRequest struct {
	Name     string  `json:"name"`
	Species  string  `json:"species" enums:"rat,guinea_pig,hamster,gerbil,mouse"`
	Gender   string  `json:"gender" enums:"male,female,unknown"`
	Birthday string  `json:"birthday"` // YYYY-MM-DD
	PhotoURI *string `json:"photo_uri"`
}

type petResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Species   string    `json:"species"`
	Gender    string    `json:"gender"`
	Birthday  string    `json:"birthday"`
	PhotoURI  *string   `json:"photo_uri,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type updatePetRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Name     *string `json:"name"`
	Species  *string `json:"species"`
	Gender   *string `json:"gender"`
	Birthday *string `json:"birthday"`
	PhotoURI *string `json:"photo_uri"` // "photo_uri": null borra la foto
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:        p.ID,
		Name:      p.Name,
		Species:   string(p.Species),
		Gender:    string(p.Gender),
		Birthday:  p.Birthday,
		PhotoURI:  p.PhotoURI,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// createPetHandler godoc
// @Summary Registrar mascota
// @Tags pets
// @Accept json
// @Produce json
// @Success 201 {object} petResponse
// @Router /pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Create(r.Context(), CreateInput{
			Name:     req.Name,
			Species:  req.Species,
			Gender:   req.Gender,
			Birthday: req.Birthday,
			PhotoURI: req.PhotoURI,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

// getPetHandler godoc
// @Summary Perfil de mascota
// @Tags pets
// @Produce json
// @Success 200 {object} petResponse
// @Router /pets/{petID} [get]
func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := petIDParam(r)
		if !ok {
			http.Error(w, "invalid pet id", http.StatusBadRequest)
			return
		}

		p, err := svc.GetByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "pet not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

// updatePetHandler godoc
// @Summary Actualizar mascota (PATCH parcial)
// @Tags pets
// @Accept json
// @Produce json
// @Success 200 {object} petResponse
// @Router /pets/{petID} [patch]
func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := petIDParam(r)
		if !ok {
			http.Error(w, "invalid pet id", http.StatusBadRequest)
			return
		}

		var buf bytes.Buffer
		if _, err := buf.ReadFrom(r.Body); err != nil {
			http.Error(w, "invalid body", http.StatusBadRequest)
			return
		}

		var req updatePetRequest
		if err := json.Unmarshal(buf.Bytes(), &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		// Para diferenciar "photo_uri": null (borrar) de campo ausente
		// hay que mirar el JSON crudo.
		var raw map[string]json.RawMessage
		_ = json.Unmarshal(buf.Bytes(), &raw)
		clearPhoto := false
		if v, present := raw["photo_uri"]; present && string(bytes.TrimSpace(v)) == "null" {
			clearPhoto = true
		}

		p, err := svc.Update(r.Context(), id, UpdateInput{
			Name:       req.Name,
			Species:    req.Species,
			Gender:     req.Gender,
			Birthday:   req.Birthday,
			PhotoURI:   req.PhotoURI,
			ClearPhoto: clearPhoto,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				http.Error(w, "pet not found", http.StatusNotFound)
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

// deletePetHandler godoc
// @Summary Borrar mascota y todos sus registros
// @Tags pets
// @Success 204
// @Router /pets/{petID} [delete]
func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := petIDParam(r)
		if !ok {
			http.Error(w, "invalid pet id", http.StatusBadRequest)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "pet not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

type speciesResponse struct {
	Species       string  `json:"species"`
	DisplayName   string  `json:"display_name"`
	DefaultWeight float64 `json:"default_weight"`
}

// speciesHandler godoc
// @Summary Catálogo de especies soportadas
// @Description Nombre para mostrar y peso adulto de referencia (gramos) por especie.
// @Tags pets
// @Produce json
// @Success 200 {array} speciesResponse
// @Router /species [get]
func speciesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out := make([]speciesResponse, 0, len(AllSpecies))
		for _, sp := range AllSpecies {
			out = append(out, speciesResponse{
				Species:       string(sp),
				DisplayName:   SpeciesNames[sp],
				DefaultWeight: DefaultWeights[sp],
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func petIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "petID"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// writeJSON está duplicado a propósito en los handlers de cada módulo
// para mantener los paquetes de dominio sin dependencias cruzadas.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
