package dto

import (
	"time"

	"github.com/fixlane/repair-service/internal/domain"
)

// StaffLoginRequest is the credential payload for staff sign-in.
type StaffLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PasswordResetRequest starts a reset flow for the given account.
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// PasswordResetConfirmRequest completes a reset flow.
type PasswordResetConfirmRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// PasswordChangeRequest changes the authenticated staff member's password.
type PasswordChangeRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// CreateStaffRequest is the admin staff-provisioning payload.
type CreateStaffRequest struct {
	Name     string           `json:"name"`
	Email    string           `json:"email"`
	Password string           `json:"password"`
	Role     domain.StaffRole `json:"role"`
}

// StaffResponse is the public view of a staff member.
type StaffResponse struct {
	ID    string           `json:"id"`
	Name  string           `json:"name"`
	Email string           `json:"email"`
	Role  domain.StaffRole `json:"role"`
}

// AuthResponse carries a signed token and its expiry.
type AuthResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expiresAt"`
	Staff     StaffResponse `json:"staff"`
}

// NewStaffResponse converts the domain staff member.
func NewStaffResponse(staff *domain.StaffMember) StaffResponse {
	return StaffResponse{
		ID:    staff.ID,
		Name:  staff.Name,
		Email: staff.Email,
		Role:  staff.Role,
	}
}
