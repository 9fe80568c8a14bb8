package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/carebridgehq/clinicd/internal/clinic/domain"
)

type invitesRepo struct {
	q querier
}

const inviteColumns = `id, token_hash, clinic_id, email, full_name, role, invited_by,
	expires_at, accepted_at, accepted_by, created_at, updated_at`

func scanInvite(row *sql.Row) (domain.Invite, error) {
	var (
		inv        domain.Invite
		acceptedAt sql.NullTime
		acceptedBy sql.NullString
	)
	err := row.Scan(
		&inv.ID, &inv.TokenHash, &inv.ClinicID, &inv.Email, &inv.FullName,
		&inv.Role, &inv.InvitedBy, &inv.ExpiresAt, &acceptedAt, &acceptedBy,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return domain.Invite{}, mapNotFound(err)
	}
	inv.AcceptedAt = mapNullTimePtr(acceptedAt)
	inv.AcceptedBy = mapNullString(acceptedBy)
	return inv, nil
}

func (r *invitesRepo) CreateInvite(ctx context.Context, inv domain.Invite) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO staff_invites (
			id, token_hash, clinic_id, email, full_name, role, invited_by,
			expires_at, accepted_at, accepted_by, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.TokenHash, inv.ClinicID, strings.ToLower(inv.Email),
		inv.FullName, inv.Role, inv.InvitedBy, inv.ExpiresAt,
		mapOptionalTime(inv.AcceptedAt), mapStringNull(inv.AcceptedBy),
		inv.CreatedAt, inv.UpdatedAt,
	)
	return mapUnique(err)
}

func (r *invitesRepo) GetInviteByID(ctx context.Context, id string) (domain.Invite, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT `+inviteColumns+`
		FROM staff_invites
		WHERE id = ?`, id)
	return scanInvite(row)
}

func (r *invitesRepo) GetInviteByTokenHash(ctx context.Context, hash string) (domain.Invite, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT `+inviteColumns+`
		FROM staff_invites
		WHERE token_hash = ?`, hash)
	return scanInvite(row)
}

func (r *invitesRepo) GetActiveInviteForEmail(
	ctx context.Context,
	clinicID, email string,
) (domain.Invite, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT `+inviteColumns+`
		FROM staff_invites
		WHERE clinic_id = ?
		  AND email = ?
		  AND accepted_at IS NULL
		  AND expires_at > ?
		LIMIT 1`, clinicID, strings.ToLower(email), now())
	return scanInvite(row)
}

func (r *invitesRepo) ListPendingInvitesByClinic(
	ctx context.Context,
	clinicID string,
) ([]domain.Invite, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT `+inviteColumns+`
		FROM staff_invites
		WHERE clinic_id = ?
		  AND accepted_at IS NULL
		  AND expires_at > ?
		ORDER BY created_at`, clinicID, now())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Invite
	for rows.Next() {
		var (
			inv        domain.Invite
			acceptedAt sql.NullTime
			acceptedBy sql.NullString
		)
		if err := rows.Scan(
			&inv.ID, &inv.TokenHash, &inv.ClinicID, &inv.Email, &inv.FullName,
			&inv.Role, &inv.InvitedBy, &inv.ExpiresAt, &acceptedAt, &acceptedBy,
			&inv.CreatedAt, &inv.UpdatedAt,
		); err != nil {
			return nil, err
		}
		inv.AcceptedAt = mapNullTimePtr(acceptedAt)
		inv.AcceptedBy = mapNullString(acceptedBy)
		out = append(out, inv)
	}
	return out, rows.Err()
}

// MarkInviteAccepted is the serialization point for concurrent accepts. The
// WHERE clause only matches a still-pending row, so exactly one caller sees a
// row affected and every other caller gets store.ErrNotFound.
func (r *invitesRepo) MarkInviteAccepted(ctx context.Context, inviteID, acceptedBy string) error {
	ts := now()
	res, err := r.q.ExecContext(ctx, `
		UPDATE staff_invites
		SET accepted_at = ?, accepted_by = ?, updated_at = ?
		WHERE id = ? AND accepted_at IS NULL`,
		ts, acceptedBy, ts, inviteID,
	)
	if err != nil {
		return err
	}
	return requireRowsAffected(res)
}

func (r *invitesRepo) DeleteInvite(ctx context.Context, inviteID string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM staff_invites WHERE id = ?`, inviteID)
	if err != nil {
		return err
	}
	return requireRowsAffected(res)
}

func (r *invitesRepo) DeleteExpiredInvites(ctx context.Context) error {
	_, err := r.q.ExecContext(ctx, `
		DELETE FROM staff_invites
		WHERE accepted_at IS NULL AND expires_at <= ?`, now())
	return err
}
