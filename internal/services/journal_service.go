package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mindora/wellness/internal/dto"
	"github.com/mindora/wellness/internal/models"
	"github.com/mindora/wellness/internal/repository"
	"github.com/mindora/wellness/internal/validation"
)

var ErrJournalNotFound = errors.New("journal entry not found")

const journalListLimit = 50

type JournalService struct {
	journals repository.JournalRepository
	now      func() time.Time
}

func NewJournalService(journals repository.JournalRepository) *JournalService {
	return &JournalService{journals: journals, now: time.Now}
}

func (s *JournalService) Create(ctx context.Context, userID string, req *dto.CreateJournalRequest) (*models.JournalEntry, error) {
	req.Content = strings.TrimSpace(req.Content)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	now := s.now()
	entry := &models.JournalEntry{
		ID:        uuid.NewString(),
		UserID:    userID,
		Date:      now,
		Title:     strings.TrimSpace(req.Title),
		Content:   req.Content,
		Mood:      req.Mood,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Date != nil && !req.Date.IsZero() {
		entry.Date = *req.Date
	}

	if err := s.journals.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}
	return entry, nil
}

func (s *JournalService) List(ctx context.Context, userID string) ([]models.JournalEntry, error) {
	return s.journals.ListByUser(ctx, userID, journalListLimit)
}

// Update replaces the content, and optionally the date, of an entry the
// caller owns.
func (s *JournalService) Update(ctx context.Context, userID, id string, req *dto.UpdateJournalRequest) (*models.JournalEntry, error) {
	req.Content = strings.TrimSpace(req.Content)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	entry, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	entry.Content = req.Content
	if req.Date != nil && !req.Date.IsZero() {
		entry.Date = *req.Date
	}
	entry.UpdatedAt = s.now()

	if err := s.journals.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to update journal entry: %w", err)
	}
	return entry, nil
}

func (s *JournalService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	if err := s.journals.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrJournalNotFound
		}
		return fmt.Errorf("failed to delete journal entry: %w", err)
	}
	return nil
}

func (s *JournalService) owned(ctx context.Context, userID, id string) (*models.JournalEntry, error) {
	entry, err := s.journals.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrJournalNotFound
		}
		return nil, fmt.Errorf("find journal entry: %w", err)
	}
	// Another user's entry is indistinguishable from a missing one.
	if entry.UserID != userID {
		return nil, ErrJournalNotFound
	}
	return entry, nil
}
