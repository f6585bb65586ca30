package graph

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"github.com/jhoicas/service-stock-sync/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// toCell convierte un valor crudo del workbook (decodificado con UseNumber)
// a la variante etiquetada del dominio. Los booleanos del workbook se tratan
// como texto, igual que hace Excel al mostrarlos.
func toCell(v any) entity.CellValue {
	switch t := v.(type) {
	case nil:
		return entity.EmptyCell()
	case json.Number:
		d, err := decimal.NewFromString(t.String())
		if err != nil {
			return entity.TextCell(t.String())
		}
		return entity.NumberCell(d)
	case string:
		return entity.TextCell(t)
	case bool:
		return entity.TextCell(strconv.FormatBool(t))
	default:
		return entity.EmptyCell()
	}
}

// normalizeSitePath lleva la ruta del sitio al patrón /sites/... que Graph
// espera, tolerando valores como "common" o "/common" en la configuración.
func normalizeSitePath(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "/") {
		s = "/" + s
	}
	if !strings.HasPrefix(s, "/sites/") {
		s = "/sites" + s
	}
	return s
}

// normalizeDrivePath deja la ruta del archivo relativa a la raíz del drive,
// como la espera el patrón "root:/ruta/al/archivo.xlsx".
func normalizeDrivePath(raw string) string {
	return strings.TrimLeft(strings.TrimSpace(raw), "/")
}

// escapePath escapa cada segmento de una ruta de drive preservando los "/".
func escapePath(p string) string {
	segs := strings.Split(p, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return strings.Join(segs, "/")
}
