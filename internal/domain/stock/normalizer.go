package stock

import (
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/service-stock-sync/internal/domain"
	"github.com/jhoicas/service-stock-sync/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Nombres de columna por defecto cuando la configuración no define overrides.
const (
	DefaultSKUColumn   = "SKU"
	DefaultModelColumn = "Model"
	DefaultQtyColumn   = "Qty"
)

// ColumnMapping indica qué columna cruda alimenta cada campo semántico.
// La búsqueda es por coincidencia exacta y sensible a mayúsculas; una columna
// renombrada en el Excel se resuelve con el override de configuración, no
// adivinando nombres parecidos.
type ColumnMapping struct {
	SKUColumn   string
	ModelColumn string
	QtyColumn   string
}

func (m ColumnMapping) withDefaults() ColumnMapping {
	if m.SKUColumn == "" {
		m.SKUColumn = DefaultSKUColumn
	}
	if m.ModelColumn == "" {
		m.ModelColumn = DefaultModelColumn
	}
	if m.QtyColumn == "" {
		m.QtyColumn = DefaultQtyColumn
	}
	return m
}

// Report contadores de una pasada de normalización, para logging y
// diagnóstico. Ningún contador representa un error: las filas problemáticas
// se recuperan localmente y nunca abortan la corrida.
type Report struct {
	Total      int // filas recibidas del fetcher
	Kept       int // registros en el snapshot final
	DroppedSKU int // filas descartadas por SKU ausente o vacío tras trim
	CoercedQty int // cantidades sustituidas por 0 (ausentes, no numéricas o negativas)
	Duplicates int // SKUs repetidos resueltos con last-write-wins
}

// Normalizer convierte la secuencia ordenada de filas crudas del workbook en
// un snapshot de stock determinista. Transformación pura de una sola pasada:
// no guarda estado entre invocaciones ni conoce el snapshot anterior.
type Normalizer struct {
	mapping ColumnMapping
}

// NewNormalizer construye el normalizador. Los campos vacíos del mapping
// toman los nombres de columna por defecto.
func NewNormalizer(mapping ColumnMapping) *Normalizer {
	return &Normalizer{mapping: mapping.withDefaults()}
}

// Normalize aplica el contrato de normalización:
//
//   - SKU ausente o vacío tras trim: la fila se descarta (una entrada de
//     stock sin SKU no significa nada).
//   - Model ausente: cadena vacía.
//   - Qty ausente, no numérica o negativa: 0.
//   - SKU repetido: gana la fila posterior en el orden de entrada, reflejando
//     el orden de edición de la hoja de cálculo.
//   - Salida ordenada ascendente por SKU, no por orden de inserción.
//
// Una secuencia de entrada vacía devuelve domain.ErrEmptyTable para que el
// llamador decida conservar el snapshot anterior.
func (n *Normalizer) Normalize(rows []entity.RawRow, generatedAt time.Time) (*entity.StockSnapshot, Report, error) {
	rep := Report{Total: len(rows)}
	if len(rows) == 0 {
		return nil, rep, domain.ErrEmptyTable
	}

	index := make(map[string]int, len(rows))
	records := make([]entity.StockRecord, 0, len(rows))

	for _, row := range rows {
		sku := strings.TrimSpace(row[n.mapping.SKUColumn].String())
		if sku == "" {
			rep.DroppedSKU++
			continue
		}

		model := strings.TrimSpace(row[n.mapping.ModelColumn].String())
		qty, coerced := coerceQty(row[n.mapping.QtyColumn])
		if coerced {
			rep.CoercedQty++
		}

		rec := entity.StockRecord{SKU: sku, Model: model, Qty: qty}
		if i, ok := index[sku]; ok {
			// Last-write-wins: la fila posterior reemplaza a la anterior.
			rep.Duplicates++
			records[i] = rec
			continue
		}
		index[sku] = len(records)
		records = append(records, rec)
	}

	// Los SKUs ya son únicos, así que el orden resultante es total y estable.
	sort.Slice(records, func(i, j int) bool { return records[i].SKU < records[j].SKU })

	rep.Kept = len(records)
	return &entity.StockSnapshot{GeneratedAt: generatedAt, Records: records}, rep, nil
}

// coerceQty lleva una celda a un entero >= 0. Acepta enteros y decimales con
// parte fraccionaria nula; el texto se parsea tras quitar espacios y NBSP
// usados como separador de miles en el Excel de origen. Cualquier otro valor,
// y cualquier negativo, se sustituye por 0: el stock de reserva no puede ser
// negativo, se recorta en lugar de rechazarse.
func coerceQty(cell entity.CellValue) (int64, bool) {
	switch cell.Kind() {
	case entity.CellNumber:
		d, _ := cell.Number()
		if d.IsInteger() && !d.IsNegative() {
			return d.IntPart(), false
		}
		return 0, true
	case entity.CellText:
		raw, _ := cell.Text()
		s := stripThousandSeparators(raw)
		if s == "" {
			return 0, true
		}
		d, err := decimal.NewFromString(s)
		if err != nil || !d.IsInteger() || d.IsNegative() {
			return 0, true
		}
		return d.IntPart(), false
	default:
		return 0, true
	}
}

func stripThousandSeparators(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '\u00a0' {
			return -1
		}
		return r
	}, strings.TrimSpace(s))
}
