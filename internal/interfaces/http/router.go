package http

import (
	"github.com/gofiber/fiber/v2"
)

// SnapshotReader acceso de solo lectura al snapshot publicado.
type SnapshotReader interface {
	ReadDocument() ([]byte, error)
}

// RouterDeps dependencias para el servidor de previsualización.
type RouterDeps struct {
	Snapshots SnapshotReader
	PublicDir string // raíz del sitio estático; vacío desactiva el file serving
}

// Router registra las rutas del servidor de previsualización local. El
// servidor es de solo lectura: en producción el hosting estático sirve estos
// mismos archivos y este proceso no corre.
func Router(app *fiber.App, deps RouterDeps) {
	stockHandler := NewStockHandler(deps.Snapshots)

	api := app.Group("/api")
	api.Get("/stock", stockHandler.GetSnapshot)

	app.Get("/healthz", Healthz)

	if deps.PublicDir != "" {
		app.Static("/", deps.PublicDir)
	}
}
