package staticsite

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/jhoicas/service-stock-sync/internal/domain"
	"github.com/jhoicas/service-stock-sync/internal/domain/entity"
)

// snapshotDocument forma en disco del snapshot publicado. Es el contrato con
// el front-end estático: generated_at en RFC 3339 UTC y records ordenados
// ascendente por sku.
type snapshotDocument struct {
	GeneratedAt string           `json:"generated_at"`
	Records     []recordDocument `json:"records"`
}

type recordDocument struct {
	SKU   string `json:"sku"`
	Model string `json:"model"`
	Qty   int64  `json:"qty"`
}

// SnapshotStore publica el snapshot como JSON en el árbol estático.
// Implementa el puerto sync.SnapshotWriter. La escritura es atómica (archivo
// temporal + rename) para que el archivo publicado nunca se observe a medio
// escribir, ni por el deploy del hosting ni por el servidor local.
type SnapshotStore struct {
	path string
}

// NewSnapshotStore construye el store sobre la ruta del JSON publicado.
func NewSnapshotStore(path string) *SnapshotStore {
	return &SnapshotStore{path: path}
}

// WriteSnapshot serializa y publica el snapshot, creando los directorios
// intermedios si no existen.
func (s *SnapshotStore) WriteSnapshot(_ context.Context, snap *entity.StockSnapshot) error {
	doc := snapshotDocument{
		GeneratedAt: snap.GeneratedAt.UTC().Format(time.RFC3339),
		Records:     make([]recordDocument, 0, len(snap.Records)),
	}
	for _, r := range snap.Records {
		doc.Records = append(doc.Records, recordDocument{SKU: r.SKU, Model: r.Model, Qty: r.Qty})
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false) // los modelos pueden traer texto no ASCII; se publica tal cual
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("serializar snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("crear directorio %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".service_stock-*.json")
	if err != nil {
		return fmt.Errorf("crear archivo temporal: %w", err)
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("escribir snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("cerrar archivo temporal: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("publicar snapshot: %w", err)
	}
	return nil
}

// ReadDocument devuelve los bytes del snapshot publicado tal cual están en
// disco. Si todavía no existe devuelve domain.ErrSnapshotNotFound.
func (s *SnapshotStore) ReadDocument() ([]byte, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrSnapshotNotFound
	}
	return b, err
}
