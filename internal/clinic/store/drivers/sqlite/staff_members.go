package sqlite

import (
	"context"
	"database/sql"

	"github.com/carebridgehq/clinicd/internal/clinic/domain"
)

type staffMembersRepo struct {
	q querier
}

const staffColumns = `id, clinic_id, user_id, role, status, staff_id, created_at, updated_at`

func scanStaff(row *sql.Row) (domain.StaffMembership, error) {
	var m domain.StaffMembership
	err := row.Scan(
		&m.ID, &m.ClinicID, &m.UserID, &m.Role, &m.Status,
		&m.StaffID, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return domain.StaffMembership{}, mapNotFound(err)
	}
	return m, nil
}

func (r *staffMembersRepo) CreateStaffMembership(ctx context.Context, m domain.StaffMembership) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO staff_members (
			id, clinic_id, user_id, role, status, staff_id, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.ClinicID, m.UserID, m.Role, m.Status, m.StaffID, m.CreatedAt, m.UpdatedAt,
	)
	return mapUnique(err)
}

func (r *staffMembersRepo) GetMembership(
	ctx context.Context,
	clinicID, userID string,
) (domain.StaffMembership, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT `+staffColumns+`
		FROM staff_members
		WHERE clinic_id = ? AND user_id = ?`, clinicID, userID)
	return scanStaff(row)
}

func (r *staffMembersRepo) GetOwnerMembershipForUser(
	ctx context.Context,
	userID string,
) (domain.StaffMembership, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT `+staffColumns+`
		FROM staff_members
		WHERE user_id = ? AND role = 'owner'
		LIMIT 1`, userID)
	return scanStaff(row)
}

func (r *staffMembersRepo) ListClinicStaff(
	ctx context.Context,
	clinicID string,
) ([]domain.StaffMembership, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT `+staffColumns+`
		FROM staff_members
		WHERE clinic_id = ?
		ORDER BY CASE role WHEN 'owner' THEN 0 ELSE 1 END, created_at`, clinicID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.StaffMembership
	for rows.Next() {
		var m domain.StaffMembership
		if err := rows.Scan(
			&m.ID, &m.ClinicID, &m.UserID, &m.Role, &m.Status,
			&m.StaffID, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *staffMembersRepo) UpdateStaffStatus(
	ctx context.Context,
	clinicID, userID string,
	status domain.StaffStatus,
) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE staff_members
		SET status = ?, updated_at = ?
		WHERE clinic_id = ? AND user_id = ?`,
		status, now(), clinicID, userID,
	)
	if err != nil {
		return err
	}
	return requireRowsAffected(res)
}

func (r *staffMembersRepo) DeleteStaffMembership(ctx context.Context, clinicID, userID string) error {
	res, err := r.q.ExecContext(ctx, `
		DELETE FROM staff_members
		WHERE clinic_id = ? AND user_id = ?`, clinicID, userID)
	if err != nil {
		return err
	}
	return requireRowsAffected(res)
}
