package domain

import "time"

// StaffRole is the role a user holds within a clinic. The set is closed:
// every clinic has exactly one owner, and invited staff join as managers.
type StaffRole string

const (
	RoleOwner   StaffRole = "owner"
	RoleManager StaffRole = "manager"
)

// StaffStatus is the lifecycle state of a membership.
type StaffStatus string

const (
	StaffActive    StaffStatus = "active"
	StaffInactive  StaffStatus = "inactive"
	StaffSuspended StaffStatus = "suspended"
)

// StaffMembership binds a user, a clinic, a role, and a status. A user holds
// at most one membership per clinic.
type StaffMembership struct {
	ID        string
	ClinicID  string
	UserID    string
	Role      StaffRole
	Status    StaffStatus
	StaffID   string // human-facing identifier, e.g. "ST-01JX…"
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidStaffStatus reports whether s is one of the known statuses.
func ValidStaffStatus(s StaffStatus) bool {
	switch s {
	case StaffActive, StaffInactive, StaffSuspended:
		return true
	}
	return false
}
