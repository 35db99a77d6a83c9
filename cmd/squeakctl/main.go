// squeakctl opera sobre la base local sin levantar el server: backups,
// restores, exports CSV y seed de historial de ejemplo.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"pocket-squeak/internal/adapters/share"
	sqlitedb "pocket-squeak/internal/adapters/storage/sqlite"
	"pocket-squeak/internal/domain/backup"
	"pocket-squeak/internal/domain/export"
	"pocket-squeak/internal/domain/pets"
	"pocket-squeak/internal/domain/records"
	"pocket-squeak/internal/platform/config"
	"pocket-squeak/internal/platform/logger"
)

var (
	dbPath string
	outDir string
)

// toolbox junta los services que usan los subcomandos, todos sobre la
// misma conexión sqlite.
type toolbox struct {
	pets    *pets.Service
	records *records.Service
	backup  *backup.Service
	export  *export.Service
	writer  *share.Writer
}

func openToolbox() (*toolbox, error) {
	log := logger.New("squeakctl", "warn")

	db, err := sqlitedb.Open(dbPath)
	if err != nil {
		return nil, err
	}

	petRepo := sqlitedb.NewPetsRepo(db)
	recordRepo := sqlitedb.NewRecordsRepo(db)
	replacer := sqlitedb.NewBackupRepo(db)

	petsSvc := pets.NewService(petRepo, nil, log)
	recordsSvc := records.NewService(recordRepo, petsSvc, log)

	return &toolbox{
		pets:    petsSvc,
		records: recordsSvc,
		backup:  backup.NewService(petsSvc, recordRepo, replacer, log),
		export:  export.NewService(recordRepo, log),
		writer:  share.NewWriter(outDir),
	}, nil
}

func main() {
	rootCmd := &cobra.Command{
		Use:           "squeakctl",
		Short:         "Herramientas de línea de comandos para la base de pocket-squeak",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Misma configuración que el server (env + .env); los flags pisan.
	cfg := config.Load()
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", cfg.SQLitePath, "ruta del archivo sqlite")
	rootCmd.PersistentFlags().StringVar(&outDir, "out", cfg.ShareDir, "directorio de salida para archivos generados")

	rootCmd.AddCommand(
		newBackupCmd(),
		newRestoreCmd(),
		newExportCmd(),
		newSeedCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrln("error:", err)
		os.Exit(1)
	}
}
