package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gestionpro/stock-ledger-api/internal/domain/entity"
	"github.com/gestionpro/stock-ledger-api/internal/domain/repository"
)

var _ repository.DocumentSequenceRepository = (*DocumentSequenceRepo)(nil)

// DocumentSequenceRepo consecutivos por (serie, tipo, año) sobre PostgreSQL.
type DocumentSequenceRepo struct {
	q Querier
}

// NewDocumentSequenceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentSequenceRepository(q Querier) *DocumentSequenceRepo {
	return &DocumentSequenceRepo{q: q}
}

// Next incrementa y devuelve el consecutivo en una sola sentencia: el upsert
// con RETURNING es el read-modify-write atómico; dos transacciones concurrentes
// sobre la misma serie se serializan en el bloqueo de fila del UPDATE.
// Debe llamarse con un repo atado a la tx del documento: si esta se revierte,
// el número queda sin usar (hueco aceptable, jamás duplicado).
func (r *DocumentSequenceRepo) Next(series string, docType entity.DocumentType, year int) (int64, error) {
	query := `
		INSERT INTO document_sequences (series, document_type, year, next_number)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (series, document_type, year)
		DO UPDATE SET next_number = document_sequences.next_number + 1
		RETURNING next_number`
	var n int64
	err := r.q.QueryRow(context.Background(), query, series, docType, year).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("next sequence number: %w", err)
	}
	return n, nil
}

// FindSeries devuelve la serie ya configurada para (tipo, año), o "" si no hay.
// Con varias series configuradas gana la primera alfabéticamente (determinista).
func (r *DocumentSequenceRepo) FindSeries(docType entity.DocumentType, year int) (string, error) {
	query := `
		SELECT series FROM document_sequences
		WHERE document_type = $1 AND year = $2
		ORDER BY series ASC LIMIT 1`
	var series string
	err := r.q.QueryRow(context.Background(), query, docType, year).Scan(&series)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("find series: %w", err)
	}
	return series, nil
}
