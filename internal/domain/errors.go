package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	// ErrEmptyTable la tabla no devolvió filas. El caso de uso de sync lo usa
	// para conservar el snapshot anterior en lugar de publicar uno vacío.
	ErrEmptyTable = errors.New("la tabla no devolvió filas")

	// ErrSnapshotNotFound todavía no existe un snapshot publicado en disco.
	ErrSnapshotNotFound = errors.New("snapshot no encontrado")

	ErrInvalidInput = errors.New("entrada inválida")
)
