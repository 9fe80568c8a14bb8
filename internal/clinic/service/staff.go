package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/carebridgehq/clinicd/internal/clinic/domain"
	"github.com/carebridgehq/clinicd/internal/clinic/store"
	"github.com/carebridgehq/clinicd/pkg/slogx"
)

var (
	ErrStaffNotFound     = errors.New("staff member not found")
	ErrInvalidStatus     = errors.New("invalid staff status")
	ErrCannotModifyOwner = errors.New("owner membership cannot be modified")
)

// StaffService is the owner's view of their roster: list, change status,
// remove. Owner memberships themselves are off limits; ownership only moves
// through clinic-level operations.
type StaffService struct {
	Store store.Store
}

func (s *StaffService) requireOwner(ctx context.Context, clinicID, requestedBy string) error {
	clinic, err := s.Store.Clinics().GetClinicByID(ctx, clinicID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrStaffNotFound
		}
		return err
	}
	if clinic.OwnerID != requestedBy {
		return ErrNotClinicOwner
	}
	return nil
}

// ListStaff returns the clinic roster, owner first.
func (s *StaffService) ListStaff(
	ctx context.Context,
	clinicID string,
	requestedBy string,
) ([]domain.StaffMembership, error) {
	if err := s.requireOwner(ctx, clinicID, requestedBy); err != nil {
		return nil, err
	}
	return s.Store.StaffMembers().ListClinicStaff(ctx, clinicID)
}

// SetStaffStatus moves a manager between active, inactive and suspended.
func (s *StaffService) SetStaffStatus(
	ctx context.Context,
	clinicID string,
	userID string,
	status domain.StaffStatus,
	requestedBy string,
) error {
	log := slogx.FromContext(ctx)

	if !domain.ValidStaffStatus(status) {
		return ErrInvalidStatus
	}
	if err := s.requireOwner(ctx, clinicID, requestedBy); err != nil {
		return err
	}

	member, err := s.Store.StaffMembers().GetMembership(ctx, clinicID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrStaffNotFound
		}
		return err
	}
	if member.Role == domain.RoleOwner {
		return ErrCannotModifyOwner
	}

	if err := s.Store.StaffMembers().UpdateStaffStatus(ctx, clinicID, userID, status); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrStaffNotFound
		}
		return err
	}

	log.Info("staff status updated",
		slog.String("clinic_id", clinicID),
		slog.String("user_id", userID),
		slog.String("status", string(status)),
	)
	return nil
}

// RemoveStaff deletes a manager membership. The profile itself survives; the
// user may be invited again later.
func (s *StaffService) RemoveStaff(
	ctx context.Context,
	clinicID string,
	userID string,
	requestedBy string,
) error {
	log := slogx.FromContext(ctx)

	if err := s.requireOwner(ctx, clinicID, requestedBy); err != nil {
		return err
	}

	member, err := s.Store.StaffMembers().GetMembership(ctx, clinicID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrStaffNotFound
		}
		return err
	}
	if member.Role == domain.RoleOwner {
		return ErrCannotModifyOwner
	}

	if err := s.Store.StaffMembers().DeleteStaffMembership(ctx, clinicID, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrStaffNotFound
		}
		return err
	}

	log.Info("staff member removed",
		slog.String("clinic_id", clinicID),
		slog.String("user_id", userID),
	)
	return nil
}
