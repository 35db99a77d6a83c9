// Package metrics define los contadores Prometheus de la app.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecordsUpserted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pocketsqueak_records_upserted_total",
		Help: "Upserts de registros diarios aplicados.",
	})

	BackupsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pocketsqueak_backups_created_total",
		Help: "Snapshots de backup generados.",
	})

	BackupsRestored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pocketsqueak_backups_restored_total",
		Help: "Snapshots restaurados con éxito.",
	})

	ExportsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pocketsqueak_exports_generated_total",
		Help: "Exports CSV generados.",
	})

	HealthAlerts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pocketsqueak_health_alerts_total",
		Help: "Alertas de pérdida de peso emitidas.",
	})
)
