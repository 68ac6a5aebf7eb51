package service

import (
	"context"
	"strconv"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/fixlane/repair-service/internal/auth"
	"github.com/fixlane/repair-service/internal/config"
	"github.com/fixlane/repair-service/internal/domain"
	"github.com/fixlane/repair-service/internal/repository"
	apperrors "github.com/fixlane/repair-service/pkg/errorutil"
)

type fakeStaffRepo struct {
	byEmail    map[string]*domain.StaffMember
	lastFilter repository.StaffFilter
}

func newFakeStaffRepo() *fakeStaffRepo {
	return &fakeStaffRepo{byEmail: map[string]*domain.StaffMember{}}
}

func (f *fakeStaffRepo) Create(_ context.Context, staff *domain.StaffMember) error {
	if _, exists := f.byEmail[staff.Email]; exists {
		return &pgconn.PgError{Code: "23505"}
	}
	staff.ID = "staff-" + strconv.Itoa(len(f.byEmail)+1)
	f.byEmail[staff.Email] = staff
	return nil
}

func (f *fakeStaffRepo) Update(_ context.Context, staff *domain.StaffMember) error {
	f.byEmail[staff.Email] = staff
	return nil
}

func (f *fakeStaffRepo) GetByID(_ context.Context, id string) (*domain.StaffMember, error) {
	for _, staff := range f.byEmail {
		if staff.ID == id {
			return staff, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeStaffRepo) GetByEmail(_ context.Context, email string) (*domain.StaffMember, error) {
	staff, ok := f.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return staff, nil
}

func (f *fakeStaffRepo) List(_ context.Context, filter repository.StaffFilter) ([]domain.StaffMember, error) {
	f.lastFilter = filter
	result := make([]domain.StaffMember, 0, len(f.byEmail))
	for _, staff := range f.byEmail {
		result = append(result, *staff)
	}
	return result, nil
}

func staffTestConfig() config.Config {
	return config.Config{Auth: config.AuthConfig{BcryptCost: 4}}
}

func TestCreateStaffHashesPasswordAndNormalizesEmail(t *testing.T) {
	repo := newFakeStaffRepo()
	svc := NewStaffService(staffTestConfig(), repo, zap.NewNop())

	staff, err := svc.CreateStaff(context.Background(), StaffCreateInput{
		Name:     "Sam Ortiz",
		Email:    "  Sam.Ortiz@Example.COM ",
		Password: "hunter2hunter2",
		Role:     domain.StaffRoleTechnician,
	})
	if err != nil {
		t.Fatalf("CreateStaff: %v", err)
	}
	if staff.Email != "sam.ortiz@example.com" {
		t.Fatalf("email not normalized: %q", staff.Email)
	}
	if !staff.Active {
		t.Fatalf("new staff must be active")
	}
	if staff.PasswordHash == "hunter2hunter2" || staff.PasswordHash == "" {
		t.Fatalf("password stored unhashed")
	}
	if err := auth.ComparePassword(staff.PasswordHash, "hunter2hunter2"); err != nil {
		t.Fatalf("hash does not verify: %v", err)
	}
}

func TestCreateStaffRejectsInvalidInput(t *testing.T) {
	svc := NewStaffService(staffTestConfig(), newFakeStaffRepo(), zap.NewNop())

	cases := []struct {
		name  string
		input StaffCreateInput
	}{
		{"blank name", StaffCreateInput{Email: "a@b.c", Password: "longenough", Role: domain.StaffRoleManager}},
		{"blank email", StaffCreateInput{Name: "Sam", Password: "longenough", Role: domain.StaffRoleManager}},
		{"short password", StaffCreateInput{Name: "Sam", Email: "a@b.c", Password: "short", Role: domain.StaffRoleManager}},
		{"unknown role", StaffCreateInput{Name: "Sam", Email: "a@b.c", Password: "longenough", Role: "INTERN"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateStaff(context.Background(), tc.input)
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if apperrors.ToDomainError(err).Code != "VALIDATION_FAILED" {
				t.Fatalf("expected VALIDATION_FAILED, got %s", apperrors.ToDomainError(err).Code)
			}
		})
	}
}

func TestCreateStaffDuplicateEmailConflicts(t *testing.T) {
	repo := newFakeStaffRepo()
	svc := NewStaffService(staffTestConfig(), repo, zap.NewNop())
	input := StaffCreateInput{Name: "Sam", Email: "sam@example.com", Password: "longenough", Role: domain.StaffRoleManager}

	if _, err := svc.CreateStaff(context.Background(), input); err != nil {
		t.Fatalf("CreateStaff: %v", err)
	}
	_, err := svc.CreateStaff(context.Background(), input)
	if err == nil {
		t.Fatalf("expected conflict")
	}
	if apperrors.ToDomainError(err).Code != "CONFLICT" {
		t.Fatalf("expected CONFLICT, got %s", apperrors.ToDomainError(err).Code)
	}
}

func TestEnsureBootstrapAdminSeedsOnce(t *testing.T) {
	repo := newFakeStaffRepo()
	cfg := staffTestConfig()
	cfg.Auth.BootstrapAdminName = "Administrator"
	cfg.Auth.BootstrapAdminEmail = "Admin@Example.com"
	cfg.Auth.BootstrapAdminPassword = "changeme-now"
	svc := NewStaffService(cfg, repo, zap.NewNop())

	if err := svc.EnsureBootstrapAdmin(context.Background()); err != nil {
		t.Fatalf("EnsureBootstrapAdmin: %v", err)
	}
	admin, err := repo.GetByEmail(context.Background(), "admin@example.com")
	if err != nil {
		t.Fatalf("admin not seeded: %v", err)
	}
	if admin.Role != domain.StaffRoleAdmin || !admin.Active {
		t.Fatalf("seeded admin malformed: %+v", admin)
	}

	if err := svc.EnsureBootstrapAdmin(context.Background()); err != nil {
		t.Fatalf("second run must be a no-op: %v", err)
	}
	if len(repo.byEmail) != 1 {
		t.Fatalf("expected a single account, got %d", len(repo.byEmail))
	}
}

func TestEnsureBootstrapAdminNoopWithoutConfig(t *testing.T) {
	repo := newFakeStaffRepo()
	svc := NewStaffService(staffTestConfig(), repo, zap.NewNop())

	if err := svc.EnsureBootstrapAdmin(context.Background()); err != nil {
		t.Fatalf("EnsureBootstrapAdmin: %v", err)
	}
	if len(repo.byEmail) != 0 {
		t.Fatalf("no account should be created without bootstrap config")
	}
}

func TestListStaffPassesFilter(t *testing.T) {
	repo := newFakeStaffRepo()
	svc := NewStaffService(staffTestConfig(), repo, zap.NewNop())

	role := domain.StaffRoleManager
	if _, err := svc.ListStaff(context.Background(), repository.StaffFilter{Role: &role, Limit: 10}); err != nil {
		t.Fatalf("ListStaff: %v", err)
	}
	if repo.lastFilter.Role == nil || *repo.lastFilter.Role != role {
		t.Fatalf("role filter not forwarded")
	}
	if repo.lastFilter.Limit != 10 {
		t.Fatalf("limit not forwarded: %d", repo.lastFilter.Limit)
	}
}
