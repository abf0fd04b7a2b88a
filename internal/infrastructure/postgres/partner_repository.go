package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gestionpro/stock-ledger-api/internal/domain/entity"
	"github.com/gestionpro/stock-ledger-api/internal/domain/repository"
)

var _ repository.PartnerRepository = (*PartnerRepo)(nil)

// PartnerRepo lectura de terceros sobre PostgreSQL (usable con pool o tx).
type PartnerRepo struct {
	q Querier
}

// NewPartnerRepository construye el adaptador de terceros. Pasar pool o tx (Querier).
func NewPartnerRepository(q Querier) *PartnerRepo {
	return &PartnerRepo{q: q}
}

// GetByID obtiene un tercero por ID (nil si no existe).
func (r *PartnerRepo) GetByID(id string) (*entity.Partner, error) {
	query := `SELECT id, tax_id, name, is_active, created_at FROM partners WHERE id = $1`
	var p entity.Partner
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.TaxID, &p.Name, &p.IsActive, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get partner: %w", err)
	}
	return &p, nil
}
