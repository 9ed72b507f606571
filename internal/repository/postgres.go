package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mindora/wellness/internal/models"
	"gorm.io/gorm"
)

// NewPostgresStore wraps an open GORM connection. Schema migration is the
// caller's job (database.Migrate).
func NewPostgresStore(db *gorm.DB) *Store {
	return &Store{
		Users:     &gormUsers{db: db},
		Moods:     &gormMoods{db: db},
		Journals:  &gormJournals{db: db},
		Exercises: &gormExercises{db: db},
		ping: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		close: func(context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}
}

func gormErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	}
	return err
}

func withLimit(q *gorm.DB, limit int) *gorm.DB {
	if limit > 0 {
		return q.Limit(limit)
	}
	return q
}

type gormUsers struct{ db *gorm.DB }

func (r *gormUsers) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", gormErr(err))
	}
	return nil
}

func (r *gormUsers) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, gormErr(err)
	}
	return &user, nil
}

func (r *gormUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("LOWER(email) = ?", strings.ToLower(email)).First(&user).Error; err != nil {
		return nil, gormErr(err)
	}
	return &user, nil
}

func (r *gormUsers) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *gormUsers) Update(ctx context.Context, user *models.User) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", user.ID).Select("*").Omit("id", "created_at").Updates(user)
	if result.Error != nil {
		return fmt.Errorf("update user: %w", gormErr(result.Error))
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormUsers) UpdatePassword(ctx context.Context, id, hash string) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("password", hash)
	if result.Error != nil {
		return fmt.Errorf("update password: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormUsers) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.MoodEntry{}).Error; err != nil {
			return fmt.Errorf("delete moods: %w", err)
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.JournalEntry{}).Error; err != nil {
			return fmt.Errorf("delete journals: %w", err)
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.ExerciseSession{}).Error; err != nil {
			return fmt.Errorf("delete exercise sessions: %w", err)
		}
		result := tx.Where("id = ?", id).Delete(&models.User{})
		if result.Error != nil {
			return fmt.Errorf("delete user: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *gormUsers) HasSuperAdmin(ctx context.Context) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("is_super_admin = ?", true).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

type gormMoods struct{ db *gorm.DB }

func (r *gormMoods) Create(ctx context.Context, entry *models.MoodEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("create mood entry: %w", err)
	}
	return nil
}

func (r *gormMoods) ListByUser(ctx context.Context, userID string, limit int) ([]models.MoodEntry, error) {
	var entries []models.MoodEntry
	q := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("date DESC")
	if err := withLimit(q, limit).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list mood entries: %w", err)
	}
	return entries, nil
}

func (r *gormMoods) ListAll(ctx context.Context) ([]models.MoodEntry, error) {
	var entries []models.MoodEntry
	if err := r.db.WithContext(ctx).Order("date DESC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list all mood entries: %w", err)
	}
	return entries, nil
}

func (r *gormMoods) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.MoodEntry{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

type gormJournals struct{ db *gorm.DB }

func (r *gormJournals) Create(ctx context.Context, entry *models.JournalEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("create journal entry: %w", err)
	}
	return nil
}

func (r *gormJournals) FindByID(ctx context.Context, id string) (*models.JournalEntry, error) {
	var entry models.JournalEntry
	if err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		return nil, gormErr(err)
	}
	return &entry, nil
}

func (r *gormJournals) ListByUser(ctx context.Context, userID string, limit int) ([]models.JournalEntry, error) {
	var entries []models.JournalEntry
	q := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("date DESC")
	if err := withLimit(q, limit).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}
	return entries, nil
}

func (r *gormJournals) ListAll(ctx context.Context) ([]models.JournalEntry, error) {
	var entries []models.JournalEntry
	if err := r.db.WithContext(ctx).Order("date DESC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list all journal entries: %w", err)
	}
	return entries, nil
}

func (r *gormJournals) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.JournalEntry{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *gormJournals) Update(ctx context.Context, entry *models.JournalEntry) error {
	result := r.db.WithContext(ctx).Model(&models.JournalEntry{}).Where("id = ?", entry.ID).Updates(map[string]interface{}{
		"content":    entry.Content,
		"title":      entry.Title,
		"date":       entry.Date,
		"updated_at": entry.UpdatedAt,
	})
	if result.Error != nil {
		return fmt.Errorf("update journal entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormJournals) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.JournalEntry{})
	if result.Error != nil {
		return fmt.Errorf("delete journal entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type gormExercises struct{ db *gorm.DB }

func (r *gormExercises) Create(ctx context.Context, session *models.ExerciseSession) error {
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return fmt.Errorf("create exercise session: %w", err)
	}
	return nil
}

func (r *gormExercises) ListByUser(ctx context.Context, userID string, limit int) ([]models.ExerciseSession, error) {
	var sessions []models.ExerciseSession
	q := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("completed_at DESC")
	if err := withLimit(q, limit).Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("list exercise sessions: %w", err)
	}
	return sessions, nil
}

func (r *gormExercises) ListAll(ctx context.Context) ([]models.ExerciseSession, error) {
	var sessions []models.ExerciseSession
	if err := r.db.WithContext(ctx).Order("completed_at DESC").Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("list all exercise sessions: %w", err)
	}
	return sessions, nil
}

func (r *gormExercises) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ExerciseSession{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
