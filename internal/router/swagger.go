package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"
)

// swaggerDoc es el documento OpenAPI servido en /swagger/doc.json.
// Mantenido a mano; las anotaciones godoc de los handlers son la
// referencia por endpoint.
const swaggerDoc = `{
  "swagger": "2.0",
  "info": {
    "title": "Pocket Squeak API",
    "description": "Seguimiento de salud para mascotas pequeñas: registros diarios, tendencias de peso, backups y export CSV.",
    "version": "1.0"
  },
  "basePath": "/",
  "paths": {
    "/pets": {
      "get": {"tags": ["pets"], "summary": "Listar mascotas con su estado de peso"},
      "post": {"tags": ["pets"], "summary": "Crear mascota"}
    },
    "/pets/{petID}": {
      "get": {"tags": ["pets"], "summary": "Obtener mascota"},
      "patch": {"tags": ["pets"], "summary": "Actualizar mascota"},
      "delete": {"tags": ["pets"], "summary": "Borrar mascota y sus registros"}
    },
    "/pets/{petID}/records": {
      "get": {"tags": ["records"], "summary": "Historial de registros diarios"}
    },
    "/pets/{petID}/records/today": {
      "get": {"tags": ["records"], "summary": "Registro de hoy"},
      "put": {"tags": ["records"], "summary": "Upsert del registro de hoy"}
    },
    "/pets/{petID}/records/seed": {
      "post": {"tags": ["records"], "summary": "Sembrar historial de ejemplo"}
    },
    "/pets/{petID}/weights": {
      "get": {"tags": ["records"], "summary": "Últimos pesos registrados"}
    },
    "/observations": {
      "get": {"tags": ["records"], "summary": "Vocabulario de observaciones preset"}
    },
    "/species": {
      "get": {"tags": ["pets"], "summary": "Catálogo de especies soportadas"}
    },
    "/backup": {
      "get": {"tags": ["backup"], "summary": "Descargar snapshot JSON"}
    },
    "/backup/restore": {
      "post": {"tags": ["backup"], "summary": "Restaurar snapshot (reemplaza todo)"}
    },
    "/export": {
      "get": {"tags": ["export"], "summary": "Exportar registros a CSV"}
    }
  }
}`

func registerSwagger(r chi.Router) {
	r.Get("/swagger/doc.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(swaggerDoc))
	})
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
}
