package records

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"pocket-squeak/internal/domain/pets"
	"pocket-squeak/internal/platform/metrics"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets/{petID}/records", func(rr chi.Router) {
		rr.Put("/today", upsertTodayHandler(svc))
		rr.Get("/today", todayHandler(svc))
		rr.Get("/", historyHandler(svc))

		// Seed de historia de ejemplo (única vía de escribir fechas pasadas)
		rr.Post("/seed", seedHandler(svc))
	})

	r.Get("/pets/{petID}/weights", weightsHandler(svc))
	r.Get("/observations", observationsHandler())
}

type upsertRequest struct {
	Weight       *float64 `json:"weight"`
	Observations []string `json:"observations"`
	Notes        *string  `json:"notes"`
}

type recordResponse struct {
	ID           int64     `json:"id"`
	PetID        int64     `json:"pet_id"`
	RecordDate   string    `json:"record_date"`
	Weight       *float64  `json:"weight,omitempty"`
	Observations []string  `json:"observations"`
	Notes        *string   `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type weightPointResponse struct {
	RecordDate string  `json:"record_date"`
	Weight     float64 `json:"weight"`
}

func toRecordResponse(rec DailyRecord) recordResponse {
	obs := rec.Observations
	if obs == nil {
		obs = []string{}
	}
	return recordResponse{
		ID:           rec.ID,
		PetID:        rec.PetID,
		RecordDate:   rec.RecordDate,
		Weight:       rec.Weight,
		Observations: obs,
		Notes:        rec.Notes,
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
	}
}

// upsertTodayHandler godoc
// @Summary Upsert del registro de hoy (merge, no replace)
// @Description Peso y notas pisan el valor anterior solo si vienen; las observaciones se unen como conjunto.
// @Tags records
// @Accept json
// @Produce json
// @Success 200 {object} recordResponse
// @Router /pets/{petID}/records/today [put]
func upsertTodayHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, ok := petIDParam(r)
		if !ok {
			http.Error(w, "invalid pet id", http.StatusBadRequest)
			return
		}

		var req upsertRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		rec, err := svc.UpsertToday(r.Context(), petID, UpsertInput{
			Weight:       req.Weight,
			Observations: req.Observations,
			Notes:        req.Notes,
		})
		if err != nil {
			switch {
			case errors.Is(err, pets.ErrNotFound):
				http.Error(w, "pet not found", http.StatusNotFound)
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		metrics.RecordsUpserted.Inc()
		writeJSON(w, http.StatusOK, toRecordResponse(rec))
	}
}

// todayHandler godoc
// @Summary Registro de hoy
// @Tags records
// @Produce json
// @Success 200 {object} recordResponse
// @Router /pets/{petID}/records/today [get]
func todayHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, ok := petIDParam(r)
		if !ok {
			http.Error(w, "invalid pet id", http.StatusBadRequest)
			return
		}

		rec, err := svc.Today(r.Context(), petID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "no record for today", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toRecordResponse(rec))
	}
}

// historyHandler godoc
// @Summary Historia de registros diarios
// @Tags records
// @Produce json
// @Param days query int false "ventana en días (default 30)"
// @Success 200 {array} recordResponse
// @Router /pets/{petID}/records [get]
func historyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, ok := petIDParam(r)
		if !ok {
			http.Error(w, "invalid pet id", http.StatusBadRequest)
			return
		}

		days := 0
		if v := r.URL.Query().Get("days"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				http.Error(w, "days must be a positive integer", http.StatusBadRequest)
				return
			}
			days = n
		}

		recs, err := svc.History(r.Context(), petID, days)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]recordResponse, 0, len(recs))
		for _, rec := range recs {
			out = append(out, toRecordResponse(rec))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// weightsHandler godoc
// @Summary Serie de pesadas (solo registros con peso)
// @Tags records
// @Produce json
// @Param limit query int false "máximo de pesadas (default 30)"
// @Success 200 {array} weightPointResponse
// @Router /pets/{petID}/weights [get]
func weightsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, ok := petIDParam(r)
		if !ok {
			http.Error(w, "invalid pet id", http.StatusBadRequest)
			return
		}

		limit := 0
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
				return
			}
			limit = n
		}

		pts, err := svc.LatestWeights(r.Context(), petID, limit)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]weightPointResponse, 0, len(pts))
		for _, p := range pts {
			out = append(out, weightPointResponse{RecordDate: p.RecordDate, Weight: p.Weight})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func seedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, ok := petIDParam(r)
		if !ok {
			http.Error(w, "invalid pet id", http.StatusBadRequest)
			return
		}

		if err := svc.SeedHistory(r.Context(), petID); err != nil {
			if errors.Is(err, pets.ErrNotFound) {
				http.Error(w, "pet not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

type observationResponse struct {
	Tag      string `json:"tag"`
	Severity string `json:"severity"`
}

// observationsHandler godoc
// @Summary Vocabulario de observaciones preset con su severidad
// @Tags records
// @Produce json
// @Success 200 {array} observationResponse
// @Router /observations [get]
func observationsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out := make([]observationResponse, 0, len(PresetObservations))
		for _, tag := range PresetOrder {
			out = append(out, observationResponse{
				Tag:      tag,
				Severity: string(ObservationSeverity(tag)),
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

// writeJSON está duplicado a propósito en los handlers de cada módulo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
