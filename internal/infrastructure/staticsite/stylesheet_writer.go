package staticsite

import (
	"fmt"
	"os"
	"path/filepath"
)

// StylesheetWriter escribe la hoja de estilos generada en el árbol estático.
// Implementa el puerto theme.StylesheetWriter.
type StylesheetWriter struct {
	path string
}

// NewStylesheetWriter construye el writer sobre la ruta del CSS publicado.
func NewStylesheetWriter(path string) *StylesheetWriter {
	return &StylesheetWriter{path: path}
}

// WriteStylesheet escribe el CSS, creando los directorios intermedios.
// El CSS es pequeño y lo consume solo el navegador tras un deploy completo,
// así que no necesita la escritura atómica del snapshot.
func (w *StylesheetWriter) WriteStylesheet(css string) error {
	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("crear directorio %s: %w", dir, err)
	}
	if err := os.WriteFile(w.path, []byte(css), 0o644); err != nil {
		return fmt.Errorf("escribir %s: %w", w.path, err)
	}
	return nil
}
