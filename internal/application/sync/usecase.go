package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/service-stock-sync/internal/domain"
	"github.com/jhoicas/service-stock-sync/internal/domain/stock"
	"github.com/jhoicas/service-stock-sync/pkg/logger"
)

// UseCase orquesta una corrida completa de sincronización: descarga de la
// tabla, normalización y publicación del snapshot. Una invocación por tick
// del scheduler externo; no hay estado compartido entre corridas.
type UseCase struct {
	fetcher    TableFetcher
	writer     SnapshotWriter
	normalizer *stock.Normalizer
	log        *logger.Logger
	now        func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(fetcher TableFetcher, writer SnapshotWriter, normalizer *stock.Normalizer, log *logger.Logger) *UseCase {
	return &UseCase{
		fetcher:    fetcher,
		writer:     writer,
		normalizer: normalizer,
		log:        log,
		now:        time.Now,
	}
}

// Result resumen de una corrida de sincronización.
type Result struct {
	RunID   string
	Records int
	Report  stock.Report
}

// Run ejecuta una corrida. Si la tabla no devuelve filas, el snapshot
// anterior se conserva (no se sobrescribe con uno vacío) y se propaga
// domain.ErrEmptyTable para que el job programado quede en rojo y el
// siguiente tick lo reintente.
func (uc *UseCase) Run(ctx context.Context) (*Result, error) {
	runID := uuid.New().String()
	zl := uc.log.With().Str("run_id", runID).Logger()
	start := uc.now()

	zl.Info().Msg("descargando filas de la tabla")
	rows, err := uc.fetcher.FetchRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("obtener filas de la tabla: %w", err)
	}

	snap, rep, err := uc.normalizer.Normalize(rows, uc.now().UTC())
	if err != nil {
		if errors.Is(err, domain.ErrEmptyTable) {
			zl.Warn().Msg("la tabla no devolvió filas; se conserva el snapshot anterior")
		}
		return nil, err
	}

	if err := uc.writer.WriteSnapshot(ctx, snap); err != nil {
		return nil, fmt.Errorf("publicar snapshot: %w", err)
	}

	zl.Info().
		Int("total", rep.Total).
		Int("kept", rep.Kept).
		Int("dropped_sku", rep.DroppedSKU).
		Int("coerced_qty", rep.CoercedQty).
		Int("duplicates", rep.Duplicates).
		Dur("elapsed", uc.now().Sub(start)).
		Msg("snapshot publicado")

	return &Result{RunID: runID, Records: len(snap.Records), Report: rep}, nil
}
