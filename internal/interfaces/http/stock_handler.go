package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/service-stock-sync/internal/domain"
)

// errorResponse cuerpo de error JSON del servidor de previsualización.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StockHandler expone el snapshot de stock publicado.
type StockHandler struct {
	snapshots SnapshotReader
}

// NewStockHandler construye el handler.
func NewStockHandler(snapshots SnapshotReader) *StockHandler {
	return &StockHandler{snapshots: snapshots}
}

// GetSnapshot devuelve el snapshot publicado byte a byte como está en disco,
// exactamente lo que el front-end vería tras un deploy.
// GET /api/stock
func (h *StockHandler) GetSnapshot(c *fiber.Ctx) error {
	doc, err := h.snapshots.ReadDocument()
	if errors.Is(err, domain.ErrSnapshotNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(errorResponse{
			Code: "NOT_FOUND", Message: "todavía no se publicó ningún snapshot; ejecutar el comando sync",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.Send(doc)
}

// Healthz endpoint de salud del servidor local.
// GET /healthz
func Healthz(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
