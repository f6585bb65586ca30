package theme

import (
	"fmt"

	domaintheme "github.com/jhoicas/service-stock-sync/internal/domain/theme"
	"github.com/jhoicas/service-stock-sync/pkg/logger"
)

// PaletteLoader define el puerto de lectura de la paleta definida por el
// usuario. Una paleta ausente se reporta como paleta vacía, no como error.
type PaletteLoader interface {
	Load() (domaintheme.Palette, error)
}

// StylesheetWriter define el puerto de escritura de la hoja de estilos
// generada en el árbol estático.
type StylesheetWriter interface {
	WriteStylesheet(css string) error
}

// GenerateUseCase regenera la hoja de estilos publicada a partir de la
// paleta. Independiente del flujo de stock: puede correr sin credenciales.
type GenerateUseCase struct {
	loader PaletteLoader
	writer StylesheetWriter
	log    *logger.Logger
}

// NewGenerateUseCase construye el caso de uso.
func NewGenerateUseCase(loader PaletteLoader, writer StylesheetWriter, log *logger.Logger) *GenerateUseCase {
	return &GenerateUseCase{loader: loader, writer: writer, log: log}
}

// Generate carga la paleta, la mezcla sobre los defaults y escribe el CSS.
// Una paleta ilegible no es fatal: se registra y se publican los defaults,
// para que un YAML roto nunca deje el sitio sin estilos.
func (uc *GenerateUseCase) Generate() error {
	pal, err := uc.loader.Load()
	if err != nil {
		uc.log.Warn().Err(err).Msg("paleta ilegible; se usan los colores por defecto")
		pal = domaintheme.Palette{}
	}

	css := domaintheme.RenderCSS(domaintheme.Merge(pal))
	if err := uc.writer.WriteStylesheet(css); err != nil {
		return fmt.Errorf("escribir hoja de estilos: %w", err)
	}

	uc.log.Info().Int("bytes", len(css)).Msg("hoja de estilos regenerada")
	return nil
}
