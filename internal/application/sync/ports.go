package sync

import (
	"context"

	"github.com/jhoicas/service-stock-sync/internal/domain/entity"
)

// TableFetcher define el puerto de entrada de datos: obtiene la secuencia
// ordenada de filas crudas de la tabla del workbook. La implementación
// concreta habla con Microsoft Graph; para tests se inyecta un stub.
type TableFetcher interface {
	FetchRows(ctx context.Context) ([]entity.RawRow, error)
}

// SnapshotWriter define el puerto de salida: publica el snapshot normalizado
// en el árbol estático que consume el front-end.
type SnapshotWriter interface {
	WriteSnapshot(ctx context.Context, snap *entity.StockSnapshot) error
}
