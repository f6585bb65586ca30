package sync_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appsync "github.com/jhoicas/service-stock-sync/internal/application/sync"
	"github.com/jhoicas/service-stock-sync/internal/domain"
	"github.com/jhoicas/service-stock-sync/internal/domain/entity"
	"github.com/jhoicas/service-stock-sync/internal/domain/stock"
	"github.com/jhoicas/service-stock-sync/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Stubs de los puertos
// ──────────────────────────────────────────────────────────────────────────────

type stubFetcher struct {
	rows []entity.RawRow
	err  error
}

func (s *stubFetcher) FetchRows(_ context.Context) ([]entity.RawRow, error) {
	return s.rows, s.err
}

type stubWriter struct {
	written *entity.StockSnapshot
	calls   int
	err     error
}

func (s *stubWriter) WriteSnapshot(_ context.Context, snap *entity.StockSnapshot) error {
	s.calls++
	s.written = snap
	return s.err
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func testRows() []entity.RawRow {
	return []entity.RawRow{
		{
			"SKU":   entity.TextCell("B2"),
			"Model": entity.TextCell("TE-CD 18"),
			"Qty":   entity.NumberCell(decimal.NewFromInt(3)),
		},
		{
			"SKU":   entity.TextCell("A1"),
			"Model": entity.TextCell("GC-EM 1500"),
			"Qty":   entity.TextCell("abc"),
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestRun_PublicaSnapshotNormalizado(t *testing.T) {
	fetcher := &stubFetcher{rows: testRows()}
	writer := &stubWriter{}
	uc := appsync.NewUseCase(fetcher, writer, stock.NewNormalizer(stock.ColumnMapping{}), testLogger())

	res, err := uc.Run(context.Background())

	require.NoError(t, err)
	require.Equal(t, 1, writer.calls, "una corrida exitosa escribe exactamente una vez")
	require.Len(t, writer.written.Records, 2)
	assert.Equal(t, "A1", writer.written.Records[0].SKU, "el snapshot publicado va ordenado por SKU")
	assert.Equal(t, int64(0), writer.written.Records[0].Qty)
	assert.Equal(t, 2, res.Records)
	assert.NotEmpty(t, res.RunID)
}

func TestRun_TablaVaciaNoSobrescribe(t *testing.T) {
	fetcher := &stubFetcher{rows: nil}
	writer := &stubWriter{}
	uc := appsync.NewUseCase(fetcher, writer, stock.NewNormalizer(stock.ColumnMapping{}), testLogger())

	res, err := uc.Run(context.Background())

	require.ErrorIs(t, err, domain.ErrEmptyTable)
	assert.Nil(t, res)
	assert.Zero(t, writer.calls, "con tabla vacía el snapshot anterior debe quedar intacto")
}

func TestRun_ErrorDelFetcherSePropaga(t *testing.T) {
	fetchErr := errors.New("HTTP 403")
	fetcher := &stubFetcher{err: fetchErr}
	writer := &stubWriter{}
	uc := appsync.NewUseCase(fetcher, writer, stock.NewNormalizer(stock.ColumnMapping{}), testLogger())

	_, err := uc.Run(context.Background())

	require.ErrorIs(t, err, fetchErr)
	assert.Zero(t, writer.calls)
}

func TestRun_ErrorDelWriterSePropaga(t *testing.T) {
	writeErr := errors.New("disco lleno")
	fetcher := &stubFetcher{rows: testRows()}
	writer := &stubWriter{err: writeErr}
	uc := appsync.NewUseCase(fetcher, writer, stock.NewNormalizer(stock.ColumnMapping{}), testLogger())

	_, err := uc.Run(context.Background())

	require.ErrorIs(t, err, writeErr)
}
