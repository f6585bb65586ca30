package entity

import "github.com/shopspring/decimal"

// CellKind identifica el tipo de valor presente en una celda de la tabla.
type CellKind int

const (
	// CellEmpty celda vacía o nula.
	CellEmpty CellKind = iota
	// CellText celda con contenido textual.
	CellText
	// CellNumber celda con contenido numérico.
	CellNumber
)

// CellValue es la variante etiquetada texto | número | vacío de una celda
// cruda. Graph devuelve los valores del workbook sin tipar; el fetcher los
// convierte a esta variante para que el dominio no manipule interface{}.
// El cero de CellValue es una celda vacía, así que indexar una columna
// inexistente en una RawRow equivale a una celda ausente.
type CellValue struct {
	kind CellKind
	text string
	num  decimal.Decimal
}

// TextCell construye una celda de texto.
func TextCell(s string) CellValue {
	return CellValue{kind: CellText, text: s}
}

// NumberCell construye una celda numérica.
func NumberCell(d decimal.Decimal) CellValue {
	return CellValue{kind: CellNumber, num: d}
}

// EmptyCell construye una celda vacía.
func EmptyCell() CellValue {
	return CellValue{}
}

// Kind devuelve la etiqueta de la variante.
func (v CellValue) Kind() CellKind {
	return v.kind
}

// Text devuelve el contenido textual y si la celda es de texto.
func (v CellValue) Text() (string, bool) {
	return v.text, v.kind == CellText
}

// Number devuelve el contenido numérico y si la celda es numérica.
func (v CellValue) Number() (decimal.Decimal, bool) {
	return v.num, v.kind == CellNumber
}

// IsEmpty indica si la celda está vacía.
func (v CellValue) IsEmpty() bool {
	return v.kind == CellEmpty
}

// String devuelve la representación textual de la celda: el texto tal cual,
// el número formateado, o cadena vacía para celdas vacías.
func (v CellValue) String() string {
	switch v.kind {
	case CellText:
		return v.text
	case CellNumber:
		return v.num.String()
	default:
		return ""
	}
}

// RawRow es una fila sin procesar de la tabla: nombre de columna -> celda.
// No tiene identidad propia más allá de su posición en el resultado del fetch.
type RawRow map[string]CellValue
