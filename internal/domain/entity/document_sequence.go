package entity

// DocumentSequence contador consecutivo por (serie, tipo de documento, año).
// El read-modify-write es atómico frente a callers concurrentes; un número
// asignado jamás se reutiliza (los huecos por rollback son aceptables).
type DocumentSequence struct {
	Series       string
	DocumentType DocumentType
	Year         int
	NextNumber   int64
}
