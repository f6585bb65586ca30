package theme_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apptheme "github.com/jhoicas/service-stock-sync/internal/application/theme"
	domaintheme "github.com/jhoicas/service-stock-sync/internal/domain/theme"
	"github.com/jhoicas/service-stock-sync/pkg/logger"
)

type stubLoader struct {
	pal domaintheme.Palette
	err error
}

func (s *stubLoader) Load() (domaintheme.Palette, error) { return s.pal, s.err }

type stubStylesheetWriter struct {
	css string
	err error
}

func (s *stubStylesheetWriter) WriteStylesheet(css string) error {
	s.css = css
	return s.err
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func TestGenerate_EscribeCSSConPaletaDelUsuario(t *testing.T) {
	loader := &stubLoader{pal: domaintheme.Palette{
		Light: map[string]string{"brand": "#abcdef"},
	}}
	writer := &stubStylesheetWriter{}
	uc := apptheme.NewGenerateUseCase(loader, writer, testLogger())

	err := uc.Generate()

	require.NoError(t, err)
	assert.Contains(t, writer.css, "--brand:#abcdef;")
	assert.Contains(t, writer.css, "html[data-theme=\"dark\"]", "siempre se emiten ambas variantes")
}

func TestGenerate_PaletaIlegibleUsaDefaults(t *testing.T) {
	loader := &stubLoader{err: errors.New("yaml inválido")}
	writer := &stubStylesheetWriter{}
	uc := apptheme.NewGenerateUseCase(loader, writer, testLogger())

	err := uc.Generate()

	require.NoError(t, err, "una paleta rota no debe dejar el sitio sin estilos")
	assert.True(t, strings.HasPrefix(writer.css, ":root{"))
	assert.Contains(t, writer.css, "--brand:#E2001A;", "se publica el brand por defecto")
}

func TestGenerate_ErrorDeEscrituraSePropaga(t *testing.T) {
	writer := &stubStylesheetWriter{err: errors.New("disco lleno")}
	uc := apptheme.NewGenerateUseCase(&stubLoader{}, writer, testLogger())

	err := uc.Generate()

	require.Error(t, err)
}
