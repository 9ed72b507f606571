package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/mindora/wellness/internal/cache"
	"github.com/mindora/wellness/internal/config"
	"github.com/mindora/wellness/internal/dto"
	"github.com/mindora/wellness/internal/models"
	"github.com/mindora/wellness/internal/repository"
	"github.com/mindora/wellness/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSuperAdminExists   = errors.New("super admin already exists")
	ErrUserNotFound       = errors.New("user not found")
)

const superAdminName = "Super Admin"

type AuthService struct {
	users    repository.UserRepository
	denylist cache.Denylist
	cfg      *config.Config
	now      func() time.Time
}

func NewAuthService(users repository.UserRepository, denylist cache.Denylist, cfg *config.Config) *AuthService {
	return &AuthService{users: users, denylist: denylist, cfg: cfg, now: time.Now}
}

// Signup creates a regular account and returns it with a fresh token.
func (s *AuthService) Signup(ctx context.Context, req *dto.SignupRequest) (*models.User, string, error) {
	req.Email = normalizeEmail(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if err := validation.Struct(req); err != nil {
		return nil, "", err
	}

	user, err := s.createUser(ctx, req.Email, req.Password, req.Name, func(u *models.User) {
		u.Preferences = models.DefaultPreferences()
	})
	if err != nil {
		return nil, "", err
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*models.User, string, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validation.Struct(req); err != nil {
		return nil, "", err
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("find user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Logout revokes the token until its natural expiry.
func (s *AuthService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return nil
	}
	return s.denylist.Revoke(ctx, tokenID, expiresAt.Sub(s.now()))
}

// IsRevoked reports whether the token id was logged out.
func (s *AuthService) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}
	return s.denylist.IsRevoked(ctx, tokenID)
}

func (s *AuthService) HasSuperAdmin(ctx context.Context) (bool, error) {
	return s.users.HasSuperAdmin(ctx)
}

// SetupSuperAdmin bootstraps the first super admin. It fails once one exists.
func (s *AuthService) SetupSuperAdmin(ctx context.Context, req *dto.SetupSuperAdminRequest) (*models.User, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	exists, err := s.users.HasSuperAdmin(ctx)
	if err != nil {
		return nil, fmt.Errorf("check super admin: %w", err)
	}
	if exists {
		return nil, ErrSuperAdminExists
	}

	return s.createUser(ctx, req.Email, req.Password, superAdminName, func(u *models.User) {
		u.IsSuperAdmin = true
		u.IsAdmin = true
		u.OnboardingComplete = true
	})
}

// CreateAdmin adds an administrator account. Callers must already hold super
// admin rights.
func (s *AuthService) CreateAdmin(ctx context.Context, req *dto.CreateAdminRequest) (*models.User, error) {
	req.Email = normalizeEmail(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	return s.createUser(ctx, req.Email, req.Password, req.Name, func(u *models.User) {
		u.IsAdmin = true
		u.OnboardingComplete = true
	})
}

func (s *AuthService) createUser(ctx context.Context, email, password, name string, init func(*models.User)) (*models.User, error) {
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("find user: %w", err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	user := &models.User{
		ID:        uuid.NewString(),
		Email:     email,
		Password:  hash,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if init != nil {
		init(user)
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// IssueToken signs an HS256 access token for user.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"jti":   uuid.NewString(),
		"iat":   now.Unix(),
		"exp":   now.Add(s.cfg.JWTExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// HashPassword bcrypt-hashes a password with the default cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
