package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/carebridgehq/clinicd/internal/clinic/domain"
	"github.com/carebridgehq/clinicd/internal/clinic/store"
	"github.com/carebridgehq/clinicd/pkg/cryptox"
	"github.com/carebridgehq/clinicd/pkg/idx"
	"github.com/carebridgehq/clinicd/pkg/slogx"
)

var ErrInvalidRegistration = errors.New("invalid clinic registration")

// ClinicService registers clinics. Registration is a three-step saga:
// profile, clinic, owner membership. A failure at any later step compensates
// the earlier writes so a half-registered clinic never survives.
type ClinicService struct {
	Store store.Store
}

// RegistrationResult is what a successful registration returns.
type RegistrationResult struct {
	Profile    domain.Profile
	Clinic     domain.Clinic
	Membership domain.StaffMembership
}

// Register creates the owner account and clinic in one go. When the owner
// email already has a profile the existing account is reused, provided the
// password matches and the user owns nothing yet; a brand-new profile created
// here is deleted again if a later step fails.
func (s *ClinicService) Register(
	ctx context.Context,
	clinicName string,
	ownerEmail string,
	ownerPassword string,
	ownerFullName string,
) (RegistrationResult, error) {
	log := slogx.FromContext(ctx)

	clinicName = strings.TrimSpace(clinicName)
	ownerEmail = strings.ToLower(strings.TrimSpace(ownerEmail))
	if clinicName == "" || ownerEmail == "" || ownerPassword == "" {
		return RegistrationResult{}, ErrInvalidRegistration
	}

	// 1. Resolve or create the owner profile.
	profile, createdProfile, err := s.resolveOwnerProfile(ctx, ownerEmail, ownerPassword, ownerFullName)
	if err != nil {
		return RegistrationResult{}, err
	}

	// 2. One ownership per user, ever.
	_, err = s.Store.StaffMembers().GetOwnerMembershipForUser(ctx, profile.ID)
	if err == nil {
		return RegistrationResult{}, ErrAlreadyOwnerElsewhere
	}
	if !errors.Is(err, store.ErrNotFound) {
		return RegistrationResult{}, err
	}

	now := time.Now().UTC()
	clinic := domain.Clinic{
		ID:        idx.New().String(),
		Name:      clinicName,
		OwnerID:   profile.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	membership := domain.StaffMembership{
		ID:        idx.New().String(),
		ClinicID:  clinic.ID,
		UserID:    profile.ID,
		Role:      domain.RoleOwner,
		Status:    domain.StaffActive,
		StaffID:   "ST-" + idx.New().String(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	// 3. Clinic and membership commit together; a failure inside the
	// transaction leaves only the profile, which is compensated below.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Clinics().CreateClinic(ctx, clinic); err != nil {
			return err
		}
		return tx.StaffMembers().CreateStaffMembership(ctx, membership)
	})
	if err != nil {
		if createdProfile {
			if delErr := s.Store.Profiles().DeleteProfile(ctx, profile.ID); delErr != nil {
				log.Error("failed to compensate owner profile",
					slog.String("user_id", profile.ID),
					slog.Any("error", delErr),
				)
			}
		}
		log.Error("clinic registration failed", slog.Any("error", err))
		return RegistrationResult{}, err
	}

	log.Info("clinic registered",
		slog.String("clinic_id", clinic.ID),
		slog.String("owner_id", profile.ID),
	)
	return RegistrationResult{Profile: profile, Clinic: clinic, Membership: membership}, nil
}

func (s *ClinicService) resolveOwnerProfile(
	ctx context.Context,
	email string,
	password string,
	fullName string,
) (domain.Profile, bool, error) {
	existing, err := s.Store.Profiles().GetProfileByEmail(ctx, email)
	if err == nil {
		// Reusing an account requires proving it is yours.
		if err := cryptox.VerifyPassword(password, existing.PasswordHash); err != nil {
			if errors.Is(err, cryptox.ErrPasswordMismatch) {
				return domain.Profile{}, false, ErrInvalidCredentials
			}
			return domain.Profile{}, false, err
		}
		return existing, false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return domain.Profile{}, false, err
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.Profile{}, false, err
	}

	now := time.Now().UTC()
	profile := domain.Profile{
		ID:           idx.New().String(),
		Email:        email,
		FullName:     fullName,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Store.Profiles().CreateProfile(ctx, profile); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Profile{}, false, ErrEmailAlreadyRegistered
		}
		return domain.Profile{}, false, err
	}
	return profile, true, nil
}
