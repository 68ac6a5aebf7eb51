package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/fixlane/repair-service/internal/auth"
	"github.com/fixlane/repair-service/internal/config"
	"github.com/fixlane/repair-service/internal/domain"
	"github.com/fixlane/repair-service/internal/repository"
	apperrors "github.com/fixlane/repair-service/pkg/errorutil"
)

// StaffCreateInput is the admin staff-provisioning payload.
type StaffCreateInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.StaffRole
}

// StaffService manages workshop staff accounts.
type StaffService struct {
	staff      repository.StaffRepository
	bcryptCost int
	bootstrap  config.AuthConfig
	logger     *zap.Logger
}

// NewStaffService builds the service.
func NewStaffService(cfg config.Config, staff repository.StaffRepository, logger *zap.Logger) *StaffService {
	return &StaffService{
		staff:      staff,
		bcryptCost: cfg.Auth.BcryptCost,
		bootstrap:  cfg.Auth,
		logger:     logger,
	}
}

// CreateStaff provisions a staff member with a hashed password.
func (s *StaffService) CreateStaff(ctx context.Context, input StaffCreateInput) (*domain.StaffMember, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))

	invalid := map[string]any{}
	if name == "" {
		invalid["name"] = "required"
	}
	if email == "" {
		invalid["email"] = "required"
	}
	if len(input.Password) < 8 {
		invalid["password"] = "must be at least 8 characters"
	}
	if !knownStaffRole(input.Role) {
		invalid["role"] = "unknown role"
	}
	if len(invalid) > 0 {
		return nil, apperrors.NewValidationError("invalid staff payload", invalid)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	staff := &domain.StaffMember{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         input.Role,
		Active:       true,
	}
	if err := s.staff.Create(ctx, staff); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.NewConflict("email already registered", map[string]any{"email": email})
		}
		return nil, err
	}
	return staff, nil
}

// ListStaff returns staff accounts matching the filter.
func (s *StaffService) ListStaff(ctx context.Context, filter repository.StaffFilter) ([]domain.StaffMember, error) {
	return s.staff.List(ctx, filter)
}

// EnsureBootstrapAdmin seeds the configured admin account when it does not
// exist yet. A no-op without AUTH_BOOTSTRAP_ADMIN_EMAIL/PASSWORD.
func (s *StaffService) EnsureBootstrapAdmin(ctx context.Context) error {
	email := strings.ToLower(strings.TrimSpace(s.bootstrap.BootstrapAdminEmail))
	password := s.bootstrap.BootstrapAdminPassword
	if email == "" || password == "" {
		return nil
	}

	if _, err := s.staff.GetByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	created, err := s.CreateStaff(ctx, StaffCreateInput{
		Name:     s.bootstrap.BootstrapAdminName,
		Email:    email,
		Password: password,
		Role:     domain.StaffRoleAdmin,
	})
	if err != nil {
		return err
	}
	s.logger.Info("bootstrap admin seeded", zap.String("email", created.Email))
	return nil
}

func knownStaffRole(role domain.StaffRole) bool {
	switch role {
	case domain.StaffRoleTechnician, domain.StaffRoleManager, domain.StaffRoleAdmin:
		return true
	}
	return false
}
