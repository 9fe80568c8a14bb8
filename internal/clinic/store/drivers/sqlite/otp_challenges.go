package sqlite

import (
	"context"
	"strings"

	"github.com/carebridgehq/clinicd/internal/clinic/domain"
)

type otpChallengesRepo struct {
	q querier
}

func (r *otpChallengesRepo) CreateOTPChallenge(ctx context.Context, c domain.OTPChallenge) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO otp_challenges (id, email, purpose, secret, attempts, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, strings.ToLower(c.Email), c.Purpose, c.Secret, c.Attempts,
		c.ExpiresAt, c.CreatedAt,
	)
	return mapUnique(err)
}

func (r *otpChallengesRepo) GetOTPChallenge(
	ctx context.Context,
	email string,
	purpose domain.OTPPurpose,
) (domain.OTPChallenge, error) {
	var c domain.OTPChallenge
	err := r.q.QueryRowContext(ctx, `
		SELECT id, email, purpose, secret, attempts, expires_at, created_at
		FROM otp_challenges
		WHERE email = ? AND purpose = ? AND expires_at > ?
		ORDER BY created_at DESC
		LIMIT 1`, strings.ToLower(email), purpose, now(),
	).Scan(&c.ID, &c.Email, &c.Purpose, &c.Secret, &c.Attempts, &c.ExpiresAt, &c.CreatedAt)
	if err != nil {
		return domain.OTPChallenge{}, mapNotFound(err)
	}
	return c, nil
}

func (r *otpChallengesRepo) IncrementOTPAttempts(
	ctx context.Context,
	id string,
) (domain.OTPChallenge, error) {
	var c domain.OTPChallenge
	err := r.q.QueryRowContext(ctx, `
		UPDATE otp_challenges
		SET attempts = attempts + 1
		WHERE id = ?
		RETURNING id, email, purpose, secret, attempts, expires_at, created_at`, id,
	).Scan(&c.ID, &c.Email, &c.Purpose, &c.Secret, &c.Attempts, &c.ExpiresAt, &c.CreatedAt)
	if err != nil {
		return domain.OTPChallenge{}, mapNotFound(err)
	}
	return c, nil
}

func (r *otpChallengesRepo) DeleteOTPChallenge(ctx context.Context, id string) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM otp_challenges WHERE id = ?`, id)
	return err
}

func (r *otpChallengesRepo) DeleteOTPChallengesForEmail(
	ctx context.Context,
	email string,
	purpose domain.OTPPurpose,
) error {
	_, err := r.q.ExecContext(ctx, `
		DELETE FROM otp_challenges
		WHERE email = ? AND purpose = ?`, strings.ToLower(email), purpose)
	return err
}

func (r *otpChallengesRepo) DeleteExpiredOTPChallenges(ctx context.Context) error {
	_, err := r.q.ExecContext(ctx, `
		DELETE FROM otp_challenges
		WHERE expires_at <= ?`, now())
	return err
}
