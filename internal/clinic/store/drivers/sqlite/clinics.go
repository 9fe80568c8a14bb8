package sqlite

import (
	"context"

	"github.com/carebridgehq/clinicd/internal/clinic/domain"
)

type clinicsRepo struct {
	q querier
}

func (r *clinicsRepo) GetClinicByID(ctx context.Context, id string) (domain.Clinic, error) {
	var c domain.Clinic
	err := r.q.QueryRowContext(ctx, `
		SELECT id, name, owner_id, created_at, updated_at
		FROM clinics
		WHERE id = ?`, id,
	).Scan(&c.ID, &c.Name, &c.OwnerID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return domain.Clinic{}, mapNotFound(err)
	}
	return c, nil
}

func (r *clinicsRepo) CreateClinic(ctx context.Context, c domain.Clinic) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO clinics (id, name, owner_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.OwnerID, c.CreatedAt, c.UpdatedAt,
	)
	return mapUnique(err)
}
