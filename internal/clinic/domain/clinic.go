package domain

import "time"

// Clinic is the tenant entity. OwnerID always references the profile that
// holds the clinic's single owner membership.
type Clinic struct {
	ID        string
	Name      string
	OwnerID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
