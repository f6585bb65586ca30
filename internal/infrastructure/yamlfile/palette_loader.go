package yamlfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/jhoicas/service-stock-sync/internal/domain/theme"
	"gopkg.in/yaml.v3"
)

// PaletteLoader lee la paleta de colores desde un archivo YAML con los mapas
// light y dark. Implementa el puerto theme.PaletteLoader.
type PaletteLoader struct {
	path string
}

// NewPaletteLoader construye el loader sobre la ruta del archivo de paleta.
func NewPaletteLoader(path string) *PaletteLoader {
	return &PaletteLoader{path: path}
}

// Load devuelve la paleta del archivo. Un archivo ausente no es un error:
// se devuelve una paleta vacía y el caso de uso publica los defaults. Un
// archivo presente pero ilegible sí se reporta, para que el error quede en
// el log del job en lugar de pasar inadvertido.
func (l *PaletteLoader) Load() (theme.Palette, error) {
	b, err := os.ReadFile(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return theme.Palette{}, nil
	}
	if err != nil {
		return theme.Palette{}, fmt.Errorf("leer paleta %s: %w", l.path, err)
	}

	var p theme.Palette
	if err := yaml.Unmarshal(b, &p); err != nil {
		return theme.Palette{}, fmt.Errorf("parsear paleta %s: %w", l.path, err)
	}
	return p, nil
}
