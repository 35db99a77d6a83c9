package router

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	mem "pocket-squeak/internal/adapters/storage/memory"
	pg "pocket-squeak/internal/adapters/storage/postgres"
	sqlitedb "pocket-squeak/internal/adapters/storage/sqlite"
	"pocket-squeak/internal/domain/backup"
	"pocket-squeak/internal/domain/export"
	"pocket-squeak/internal/domain/pets"
	"pocket-squeak/internal/domain/records"
	"pocket-squeak/internal/domain/trends"
	"pocket-squeak/internal/middleware"
	"pocket-squeak/internal/ports/media"
	"pocket-squeak/internal/ports/notify"
)

type Options struct {
	// Opcional: si viene, usa Postgres. Si no, SQLitePath; y si tampoco
	// hay path, in-memory (tests y demos).
	DB         *sql.DB
	SQLitePath string

	Log      zerolog.Logger
	Notifier notify.Notifier
	Media    media.Cleaner
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(opts.Log))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	var (
		petRepo    pets.Repository
		recordRepo records.Repository
		replacer   backup.Replacer
	)

	switch {
	case opts.DB != nil:
		petRepo = pg.NewPetsRepo(opts.DB)
		recordRepo = pg.NewRecordsRepo(opts.DB)
		replacer = pg.NewBackupRepo(opts.DB)
	case opts.SQLitePath != "":
		db, err := sqlitedb.Shared(opts.SQLitePath)
		if err != nil {
			opts.Log.Fatal().Err(err).Str("path", opts.SQLitePath).Msg("cannot open sqlite database")
		}
		petRepo = sqlitedb.NewPetsRepo(db)
		recordRepo = sqlitedb.NewRecordsRepo(db)
		replacer = sqlitedb.NewBackupRepo(db)
	default:
		store := mem.NewStore()
		petRepo = store.Pets()
		recordRepo = store.Records()
		replacer = store
	}

	notifier := opts.Notifier
	if notifier == nil {
		notifier = notify.Noop{}
	}

	// Services por módulo
	petsSvc := pets.NewService(petRepo, opts.Media, opts.Log)
	recordsSvc := records.NewService(recordRepo, petsSvc, opts.Log)
	trendsSvc := trends.NewService(petsSvc, recordRepo, notifier, opts.Log)
	backupSvc := backup.NewService(petsSvc, recordRepo, replacer, opts.Log)
	exportSvc := export.NewService(recordRepo, opts.Log)

	// Rutas por módulo. GET /pets lo sirve trends porque el listado
	// viene enriquecido con el estado de peso de cada mascota.
	pets.RegisterRoutes(r, petsSvc, trends.ListPetsHandler(trendsSvc))
	records.RegisterRoutes(r, recordsSvc)
	backup.RegisterRoutes(r, backupSvc)
	export.RegisterRoutes(r, exportSvc)

	registerSwagger(r)

	return r
}
