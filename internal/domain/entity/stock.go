package entity

import "time"

// StockRecord entrada de stock de servicio normalizada y validada.
// Qty siempre es un entero >= 0; los valores no numéricos o negativos de la
// fuente se llevan a 0 durante la normalización.
type StockRecord struct {
	SKU   string // no vacío, sin espacios circundantes
	Model string
	Qty   int64
}

// StockSnapshot artefacto completo de una corrida de sincronización: el único
// estado persistido del sistema. Se regenera entero en cada corrida; no hay
// actualización incremental ni historial.
type StockSnapshot struct {
	GeneratedAt time.Time
	Records     []StockRecord // orden ascendente por SKU, sin SKUs repetidos
}
