// Package repository persists users and their wellness entries. Three
// backends implement the same interfaces: PostgreSQL through GORM, MongoDB,
// and an in-process store used for local runs and tests.
package repository

import (
	"context"
	"errors"

	"github.com/mindora/wellness/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// List returns every user, newest first.
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, id, hash string) error
	// Delete removes the user together with all of their entries.
	Delete(ctx context.Context, id string) error
	HasSuperAdmin(ctx context.Context) (bool, error)
}

type MoodRepository interface {
	Create(ctx context.Context, entry *models.MoodEntry) error
	// ListByUser returns the latest entries first. A limit <= 0 means no limit.
	ListByUser(ctx context.Context, userID string, limit int) ([]models.MoodEntry, error)
	ListAll(ctx context.Context) ([]models.MoodEntry, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
}

type JournalRepository interface {
	Create(ctx context.Context, entry *models.JournalEntry) error
	FindByID(ctx context.Context, id string) (*models.JournalEntry, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]models.JournalEntry, error)
	ListAll(ctx context.Context) ([]models.JournalEntry, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	Update(ctx context.Context, entry *models.JournalEntry) error
	Delete(ctx context.Context, id string) error
}

type ExerciseRepository interface {
	Create(ctx context.Context, session *models.ExerciseSession) error
	ListByUser(ctx context.Context, userID string, limit int) ([]models.ExerciseSession, error)
	ListAll(ctx context.Context) ([]models.ExerciseSession, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
}

// Store groups the repositories of one backend.
type Store struct {
	Users     UserRepository
	Moods     MoodRepository
	Journals  JournalRepository
	Exercises ExerciseRepository

	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

// Ping checks that the backend is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

// Close releases the backend connection.
func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}
