package domain

import "time"

// SubjectType identifies the kind of authenticated principal.
type SubjectType string

const (
	SubjectTypeStaff SubjectType = "STAFF"
)

// StaffRole enumerates workshop operator roles.
type StaffRole string

const (
	StaffRoleTechnician StaffRole = "TECHNICIAN"
	StaffRoleManager    StaffRole = "MANAGER"
	StaffRoleAdmin      StaffRole = "ADMIN"
)

// StaffMember models a workshop technician, manager or administrator.
type StaffMember struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         StaffRole
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
