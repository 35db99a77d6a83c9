// Package config carga la configuración desde variables de entorno.
// Si hay un .env en el directorio de trabajo se carga primero (dev).
package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr        string // direccion de escucha del server HTTP
	DatabaseDSN string // DSN Postgres; vacío => sqlite local
	SQLitePath  string // ruta del archivo sqlite
	ShareDir    string // directorio donde se dejan backups/exports
	AppName     string
	LogLevel    string
}

// Load lee env con defaults razonables para correr en local.
func Load() Config {
	// .env opcional; en producción todo viene del entorno
	_ = godotenv.Load()

	cfg := Config{
		Addr:       ":8080",
		SQLitePath: "pocket-squeak.db",
		ShareDir:   "share",
		AppName:    "pocket-squeak",
		LogLevel:   "info",
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Addr = ":" + v
	}
	if v := os.Getenv("DB_DSN"); v != "" {
		cfg.DatabaseDSN = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.SQLitePath = v
	}
	if v := os.Getenv("SHARE_DIR"); v != "" {
		cfg.ShareDir = v
	}
	if v := os.Getenv("APP_NAME"); v != "" {
		cfg.AppName = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	return cfg
}
