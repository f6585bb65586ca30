package staticsite_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/service-stock-sync/internal/domain"
	"github.com/jhoicas/service-stock-sync/internal/domain/entity"
	"github.com/jhoicas/service-stock-sync/internal/infrastructure/staticsite"
)

func testSnapshot() *entity.StockSnapshot {
	return &entity.StockSnapshot{
		GeneratedAt: time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC),
		Records: []entity.StockRecord{
			{SKU: "A1", Model: "GC-EM 1500", Qty: 5},
			{SKU: "B2", Model: "Модель <1>", Qty: 0},
		},
	}
}

func TestWriteSnapshot_CreaDirectoriosYContrato(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "public", "data", "service_stock.json")
	store := staticsite.NewSnapshotStore(path)

	err := store.WriteSnapshot(context.Background(), testSnapshot())
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc struct {
		GeneratedAt string `json:"generated_at"`
		Records     []struct {
			SKU   string `json:"sku"`
			Model string `json:"model"`
			Qty   int64  `json:"qty"`
		} `json:"records"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))

	assert.Equal(t, "2025-06-01T12:30:00Z", doc.GeneratedAt, "generated_at va en RFC 3339 UTC")
	require.Len(t, doc.Records, 2)
	assert.Equal(t, "A1", doc.Records[0].SKU)
	assert.Equal(t, int64(5), doc.Records[0].Qty)
	assert.Contains(t, string(raw), "Модель <1>", "el texto no ASCII se publica sin escapar")
}

func TestWriteSnapshot_SobrescrituraCompletaSinTemporales(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "service_stock.json")
	store := staticsite.NewSnapshotStore(path)

	require.NoError(t, store.WriteSnapshot(context.Background(), testSnapshot()))

	// Segunda corrida con menos registros: el archivo se reemplaza entero
	small := &entity.StockSnapshot{
		GeneratedAt: time.Now(),
		Records:     []entity.StockRecord{{SKU: "Z9", Model: "", Qty: 1}},
	}
	require.NoError(t, store.WriteSnapshot(context.Background(), small))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "A1", "no debe quedar rastro del snapshot anterior")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "el rename no debe dejar archivos temporales")
}

func TestReadDocument_SinSnapshotPrevio(t *testing.T) {
	store := staticsite.NewSnapshotStore(filepath.Join(t.TempDir(), "no-existe.json"))

	_, err := store.ReadDocument()

	require.ErrorIs(t, err, domain.ErrSnapshotNotFound)
}

func TestReadDocument_DevuelveBytesTalCual(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "service_stock.json")
	store := staticsite.NewSnapshotStore(path)
	require.NoError(t, store.WriteSnapshot(context.Background(), testSnapshot()))

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	read, err := store.ReadDocument()
	require.NoError(t, err)

	assert.Equal(t, written, read)
}

func TestStylesheetWriter_EscribeCSS(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "public", "styles.css")
	w := staticsite.NewStylesheetWriter(path)

	err := w.WriteStylesheet(":root{\n  --brand:#E2001A;\n}\n")
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "--brand:#E2001A;")
}
