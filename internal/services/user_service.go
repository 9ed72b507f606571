package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mindora/wellness/internal/dto"
	"github.com/mindora/wellness/internal/models"
	"github.com/mindora/wellness/internal/repository"
	"github.com/mindora/wellness/internal/validation"
)

type UserService struct {
	users repository.UserRepository
	now   func() time.Time
}

func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users, now: time.Now}
}

func (s *UserService) Get(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, mapUserErr(err)
	}
	return user, nil
}

// UpdateProfile replaces the profile fields and renames the user when a
// name is given.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*models.User, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		user.Name = name
	}
	user.Profile = req.Profile()
	user.UpdatedAt = s.now()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

// CompleteOnboarding marks onboarding as done. A false flag is a no-op.
func (s *UserService) CompleteOnboarding(ctx context.Context, userID string, completed bool) error {
	if !completed {
		return nil
	}
	user, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	if user.OnboardingComplete {
		return nil
	}
	user.OnboardingComplete = true
	user.UpdatedAt = s.now()
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to complete onboarding: %w", err)
	}
	return nil
}

func mapUserErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	return fmt.Errorf("find user: %w", err)
}
