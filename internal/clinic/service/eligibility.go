package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/carebridgehq/clinicd/internal/clinic/store"
)

var (
	ErrAlreadyOwner          = errors.New("user already owns this clinic")
	ErrAlreadyOwnerElsewhere = errors.New("user already owns another clinic")
	ErrAlreadyMember         = errors.New("user is already a staff member of this clinic")
)

// EligibilityService answers whether a user may join a clinic as staff. It is
// read only and idempotent, so the same check runs at invite creation and
// again at acceptance without side effects.
type EligibilityService struct {
	Store store.Store
}

// Check returns nil when the user may join clinicID. Ownership anywhere
// disqualifies before plain membership is even considered, so an owner of
// this clinic gets ErrAlreadyOwner rather than ErrAlreadyMember.
func (s *EligibilityService) Check(ctx context.Context, userID, clinicID string) error {
	owned, err := s.Store.StaffMembers().GetOwnerMembershipForUser(ctx, userID)
	if err == nil {
		if owned.ClinicID == clinicID {
			return ErrAlreadyOwner
		}
		return ErrAlreadyOwnerElsewhere
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	member, err := s.Store.StaffMembers().GetMembership(ctx, clinicID, userID)
	if err == nil {
		return fmt.Errorf("%w (role %s, status %s)", ErrAlreadyMember, member.Role, member.Status)
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	return nil
}
