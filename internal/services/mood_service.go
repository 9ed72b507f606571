package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mindora/wellness/internal/dto"
	"github.com/mindora/wellness/internal/models"
	"github.com/mindora/wellness/internal/repository"
	"github.com/mindora/wellness/internal/validation"
	"gorm.io/datatypes"
)

const moodListLimit = 30

type MoodService struct {
	moods repository.MoodRepository
	now   func() time.Time
}

func NewMoodService(moods repository.MoodRepository) *MoodService {
	return &MoodService{moods: moods, now: time.Now}
}

func (s *MoodService) Create(ctx context.Context, userID string, req *dto.CreateMoodRequest) (*models.MoodEntry, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	now := s.now()
	entry := &models.MoodEntry{
		ID:        uuid.NewString(),
		UserID:    userID,
		Date:      now,
		Mood:      req.Mood,
		Note:      strings.TrimSpace(req.Note),
		Triggers:  cleanTriggers(req.Triggers),
		CreatedAt: now,
	}
	if req.Date != nil && !req.Date.IsZero() {
		entry.Date = *req.Date
	}

	if err := s.moods.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save mood entry: %w", err)
	}
	return entry, nil
}

// List returns the caller's most recent check-ins.
func (s *MoodService) List(ctx context.Context, userID string) ([]models.MoodEntry, error) {
	return s.moods.ListByUser(ctx, userID, moodListLimit)
}

func cleanTriggers(in []string) datatypes.JSONSlice[string] {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(in))
	out := make(datatypes.JSONSlice[string], 0, len(in))
	for _, t := range in {
		t = strings.TrimSpace(t)
		key := strings.ToLower(t)
		if t == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	return out
}
