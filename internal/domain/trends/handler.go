package trends

import (
	"encoding/json"
	"net/http"
	"time"
)

type petOverviewResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Species   string    `json:"species"`
	Gender    string    `json:"gender"`
	Birthday  string    `json:"birthday"`
	PhotoURI  *string   `json:"photo_uri,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	LatestWeight        *float64 `json:"latest_weight,omitempty"`
	WeightChangePercent *float64 `json:"weight_change_percent,omitempty"`
	Alert               string   `json:"alert"`
}

// ListPetsHandler godoc
// @Summary Listado de mascotas con tendencia y alerta
// @Description La tendencia se recalcula en cada carga; no hay estado de alerta persistido.
// @Tags pets
// @Produce json
// @Success 200 {array} petOverviewResponse
// @Router /pets [get]
func ListPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Overview(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]petOverviewResponse, 0, len(items))
		for _, ov := range items {
			out = append(out, petOverviewResponse{
				ID:                  ov.Pet.ID,
				Name:                ov.Pet.Name,
				Species:             string(ov.Pet.Species),
				Gender:              string(ov.Pet.Gender),
				Birthday:            ov.Pet.Birthday,
				PhotoURI:            ov.Pet.PhotoURI,
				CreatedAt:           ov.Pet.CreatedAt,
				UpdatedAt:           ov.Pet.UpdatedAt,
				LatestWeight:        ov.LatestWeight,
				WeightChangePercent: ov.WeightChangePercent,
				Alert:               string(ov.Alert),
			})
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// writeJSON está duplicado a propósito en los handlers de cada módulo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
