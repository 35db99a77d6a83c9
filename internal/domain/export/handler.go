package export

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"pocket-squeak/internal/platform/metrics"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/export", exportHandler(svc))
}

// exportHandler godoc
// @Summary Exportar registros a CSV
// @Description Rango default: últimos 30 días. pets filtra por ids separados por coma.
// @Tags export
// @Produce text/csv
// @Param pets query string false "ids de mascotas, separados por coma"
// @Param start query string false "YYYY-MM-DD"
// @Param end query string false "YYYY-MM-DD"
// @Success 200 {string} string
// @Router /export [get]
func exportHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		var petIDs []int64
		if raw := strings.TrimSpace(q.Get("pets")); raw != "" {
			for _, part := range strings.Split(raw, ",") {
				id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
				if err != nil || id <= 0 {
					http.Error(w, "pets must be a comma-separated list of ids", http.StatusBadRequest)
					return
				}
				petIDs = append(petIDs, id)
			}
		}

		res, err := svc.Export(r.Context(), Options{
			PetIDs:    petIDs,
			StartDate: q.Get("start"),
			EndDate:   q.Get("end"),
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrNoData):
				http.Error(w, err.Error(), http.StatusNotFound)
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, "start/end must be YYYY-MM-DD", http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		metrics.ExportsGenerated.Inc()

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Filename))
		_, _ = w.Write([]byte(res.CSV))
	}
}
