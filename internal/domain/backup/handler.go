package backup

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pocket-squeak/internal/platform/metrics"
)

// Límite de tamaño para un archivo de backup subido.
const maxSnapshotBytes = 32 << 20

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/backup", downloadBackupHandler(svc))
	r.Post("/backup/restore", restoreBackupHandler(svc))
}

// downloadBackupHandler godoc
// @Summary Descargar snapshot completo (JSON versionado)
// @Tags backup
// @Produce json
// @Success 200 {object} Snapshot
// @Router /backup [get]
func downloadBackupHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := svc.Create(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		data, err := snap.Encode()
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		metrics.BackupsCreated.Inc()

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", snap.Filename()))
		_, _ = w.Write(data)
	}
}

// restoreBackupHandler godoc
// @Summary Restaurar un snapshot (reemplaza TODOS los datos)
// @Description Todo o nada: si algo falla, el estado previo queda intacto.
// @Tags backup
// @Accept json
// @Success 204
// @Router /backup/restore [post]
func restoreBackupHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxSnapshotBytes))
		if err != nil {
			http.Error(w, "invalid body", http.StatusBadRequest)
			return
		}

		snap, err := ParseSnapshot(body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if err := svc.Restore(r.Context(), snap); err != nil {
			if errors.Is(err, ErrInvalidFormat) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "restore failed", http.StatusInternalServerError)
			return
		}

		metrics.BackupsRestored.Inc()
		w.WriteHeader(http.StatusNoContent)
	}
}
