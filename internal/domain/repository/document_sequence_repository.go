package repository

import "github.com/gestionpro/stock-ledger-api/internal/domain/entity"

// DocumentSequenceRepository puerto del consecutivo de documentos.
type DocumentSequenceRepository interface {
	// Next incrementa y devuelve el consecutivo de (serie, tipo, año) como un
	// read-modify-write atómico frente a callers concurrentes. Arranca en 1.
	Next(series string, docType entity.DocumentType, year int) (int64, error)
	// FindSeries devuelve la serie ya configurada para (tipo, año), o "" si no hay.
	FindSeries(docType entity.DocumentType, year int) (string, error)
}
