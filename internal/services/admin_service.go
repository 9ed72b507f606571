package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mindora/wellness/internal/analytics"
	"github.com/mindora/wellness/internal/dto"
	"github.com/mindora/wellness/internal/report"
	"github.com/mindora/wellness/internal/repository"
	"github.com/mindora/wellness/internal/validation"
)

// ErrProtectedAccount is returned when an action would modify a super admin.
var ErrProtectedAccount = errors.New("super admin accounts cannot be modified")

// activeWindow is how recently an account must have been created to count as
// active in platform stats.
const activeWindow = 30 * 24 * time.Hour

type AdminService struct {
	store *repository.Store
	auth  *AuthService
	now   func() time.Time
}

func NewAdminService(store *repository.Store, auth *AuthService) *AdminService {
	return &AdminService{store: store, auth: auth, now: time.Now}
}

// ListUsers returns every account with its entry counts, newest first.
func (s *AdminService) ListUsers(ctx context.Context) ([]dto.AdminUser, error) {
	users, err := s.store.Users.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AdminUser, 0, len(users))
	for _, u := range users {
		row := dto.AdminUser{
			ID:                 u.ID,
			Email:              u.Email,
			Name:               u.Name,
			IsAdmin:            u.IsAdmin,
			IsSuperAdmin:       u.IsSuperAdmin,
			OnboardingComplete: u.OnboardingComplete,
			CreatedAt:          u.CreatedAt,
		}
		if row.MoodCount, err = s.store.Moods.CountByUser(ctx, u.ID); err != nil {
			return nil, fmt.Errorf("count moods: %w", err)
		}
		if row.JournalCount, err = s.store.Journals.CountByUser(ctx, u.ID); err != nil {
			return nil, fmt.Errorf("count journals: %w", err)
		}
		if row.ExerciseCount, err = s.store.Exercises.CountByUser(ctx, u.ID); err != nil {
			return nil, fmt.Errorf("count exercise sessions: %w", err)
		}
		out = append(out, row)
	}
	return out, nil
}

func (s *AdminService) Stats(ctx context.Context) (*dto.PlatformStats, error) {
	data, err := s.exportData(ctx)
	if err != nil {
		return nil, err
	}

	cutoff := s.now().Add(-activeWindow)
	active := 0
	for _, u := range data.Users {
		if !u.CreatedAt.Before(cutoff) {
			active++
		}
	}

	return &dto.PlatformStats{
		TotalUsers:     len(data.Users),
		ActiveUsers:    active,
		TotalMoods:     len(data.Moods),
		TotalJournals:  len(data.Journals),
		TotalExercises: len(data.Exercises),
		AverageMood:    analytics.FormatAverage(analytics.Scores(data.Moods)),
	}, nil
}

// DeleteUser removes an account and all of its entries.
func (s *AdminService) DeleteUser(ctx context.Context, req *dto.DeleteUserRequest) error {
	if err := validation.Struct(req); err != nil {
		return err
	}
	if err := s.checkTarget(ctx, req.UserID); err != nil {
		return err
	}
	if err := s.store.Users.Delete(ctx, req.UserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// ChangePassword resets another user's password.
func (s *AdminService) ChangePassword(ctx context.Context, req *dto.ChangePasswordRequest) error {
	if err := validation.Struct(req); err != nil {
		return err
	}
	if err := s.checkTarget(ctx, req.UserID); err != nil {
		return err
	}
	hash, err := HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.store.Users.UpdatePassword(ctx, req.UserID, hash); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

func (s *AdminService) CreateAdmin(ctx context.Context, req *dto.CreateAdminRequest) (string, error) {
	user, err := s.auth.CreateAdmin(ctx, req)
	if err != nil {
		return "", err
	}
	return user.ID, nil
}

// Export renders the whole dataset as a workbook.
func (s *AdminService) Export(ctx context.Context) (*report.Document, error) {
	data, err := s.exportData(ctx)
	if err != nil {
		return nil, err
	}
	return report.RenderAdminExport(*data, s.now())
}

// checkTarget verifies that admin actions may modify the user.
func (s *AdminService) checkTarget(ctx context.Context, id string) error {
	user, err := s.store.Users.FindByID(ctx, id)
	if err != nil {
		return mapUserErr(err)
	}
	if user.IsSuperAdmin {
		return ErrProtectedAccount
	}
	return nil
}

func (s *AdminService) exportData(ctx context.Context) (*report.ExportData, error) {
	var (
		data report.ExportData
		err  error
	)
	if data.Users, err = s.store.Users.List(ctx); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if data.Moods, err = s.store.Moods.ListAll(ctx); err != nil {
		return nil, fmt.Errorf("list moods: %w", err)
	}
	if data.Journals, err = s.store.Journals.ListAll(ctx); err != nil {
		return nil, fmt.Errorf("list journals: %w", err)
	}
	if data.Exercises, err = s.store.Exercises.ListAll(ctx); err != nil {
		return nil, fmt.Errorf("list exercise sessions: %w", err)
	}
	return &data, nil
}
