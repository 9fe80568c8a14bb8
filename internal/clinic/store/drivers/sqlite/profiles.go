package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/carebridgehq/clinicd/internal/clinic/domain"
	"github.com/carebridgehq/clinicd/internal/clinic/store"
)

type profilesRepo struct {
	q querier
}

const profileColumns = `id, email, full_name, phone, specialty, password_hash,
	email_verified_at, created_at, updated_at`

func scanProfile(row *sql.Row) (domain.Profile, error) {
	var (
		p        domain.Profile
		verified sql.NullTime
	)
	err := row.Scan(
		&p.ID, &p.Email, &p.FullName, &p.Phone, &p.Specialty,
		&p.PasswordHash, &verified, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return domain.Profile{}, mapNotFound(err)
	}
	p.EmailVerifiedAt = mapNullTimePtr(verified)
	return p, nil
}

func (r *profilesRepo) GetProfileByID(ctx context.Context, id string) (domain.Profile, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT `+profileColumns+`
		FROM profiles
		WHERE id = ?`, id)
	return scanProfile(row)
}

func (r *profilesRepo) GetProfileByEmail(ctx context.Context, email string) (domain.Profile, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT `+profileColumns+`
		FROM profiles
		WHERE email = ?`, strings.ToLower(email))
	return scanProfile(row)
}

func (r *profilesRepo) CreateProfile(ctx context.Context, p domain.Profile) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO profiles (
			id, email, full_name, phone, specialty, password_hash,
			email_verified_at, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, strings.ToLower(p.Email), p.FullName, p.Phone, p.Specialty,
		p.PasswordHash, mapOptionalTime(p.EmailVerifiedAt), p.CreatedAt, p.UpdatedAt,
	)
	return mapUnique(err)
}

func (r *profilesRepo) UpdateProfileDetails(
	ctx context.Context,
	userID, fullName, phone, specialty string,
) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE profiles
		SET full_name = ?, phone = ?, specialty = ?, updated_at = ?
		WHERE id = ?`,
		fullName, phone, specialty, now(), userID,
	)
	if err != nil {
		return err
	}
	return requireRowsAffected(res)
}

func (r *profilesRepo) MarkEmailVerified(ctx context.Context, userID string) error {
	ts := now()
	res, err := r.q.ExecContext(ctx, `
		UPDATE profiles
		SET email_verified_at = ?, updated_at = ?
		WHERE id = ?`,
		ts, ts, userID,
	)
	if err != nil {
		return err
	}
	return requireRowsAffected(res)
}

func (r *profilesRepo) DeleteProfile(ctx context.Context, userID string) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM profiles WHERE id = ?`, userID)
	return err
}

// mapUnique turns sqlite's unique constraint violation into
// store.ErrAlreadyExists so services do not depend on driver errors.
func mapUnique(err error) error {
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return store.ErrAlreadyExists
	}
	return err
}

// requireRowsAffected maps a zero-row UPDATE to store.ErrNotFound.
func requireRowsAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
