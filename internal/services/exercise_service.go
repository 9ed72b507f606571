package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/mindora/wellness/internal/analytics"
	"github.com/mindora/wellness/internal/catalog"
	"github.com/mindora/wellness/internal/dto"
	"github.com/mindora/wellness/internal/models"
	"github.com/mindora/wellness/internal/repository"
	"github.com/mindora/wellness/internal/validation"
)

var ErrExerciseNotFound = errors.New("exercise not found")

// recentMoodWindow is how many of the latest check-ins drive recommendations.
const recentMoodWindow = 7

// ExerciseService serves the catalog and records completed sessions.
type ExerciseService struct {
	catalog  *catalog.Catalog
	sessions repository.ExerciseRepository
	moods    repository.MoodRepository
	now      func() time.Time
}

func NewExerciseService(c *catalog.Catalog, sessions repository.ExerciseRepository, moods repository.MoodRepository) *ExerciseService {
	return &ExerciseService{catalog: c, sessions: sessions, moods: moods, now: time.Now}
}

func (s *ExerciseService) Exercises(difficulty string) []catalog.Exercise {
	return s.catalog.Exercises(difficulty)
}

func (s *ExerciseService) Articles(category string) []catalog.Article {
	return s.catalog.Articles(category)
}

func (s *ExerciseService) Categories() []string {
	return s.catalog.Categories()
}

// RecommendedExercises picks exercises for the caller's recent mood. Without
// any check-ins the whole catalog is returned.
func (s *ExerciseService) RecommendedExercises(ctx context.Context, userID string) (*dto.Recommendation[catalog.Exercise], error) {
	avg, err := s.recentAverage(ctx, userID)
	if err != nil {
		return nil, err
	}
	if avg == nil {
		return &dto.Recommendation[catalog.Exercise]{Items: s.catalog.Exercises("")}, nil
	}
	return &dto.Recommendation[catalog.Exercise]{
		MoodAverage: avg,
		Band:        catalog.Band(*avg),
		Items:       s.catalog.RecommendedExercises(*avg),
	}, nil
}

func (s *ExerciseService) RecommendedArticles(ctx context.Context, userID string) (*dto.Recommendation[catalog.Article], error) {
	avg, err := s.recentAverage(ctx, userID)
	if err != nil {
		return nil, err
	}
	if avg == nil {
		return &dto.Recommendation[catalog.Article]{Items: s.catalog.Articles("")}, nil
	}
	return &dto.Recommendation[catalog.Article]{
		MoodAverage: avg,
		Band:        catalog.Band(*avg),
		Items:       s.catalog.RecommendedArticles(*avg),
	}, nil
}

func (s *ExerciseService) recentAverage(ctx context.Context, userID string) (*float64, error) {
	recent, err := s.moods.ListByUser(ctx, userID, recentMoodWindow)
	if err != nil {
		return nil, fmt.Errorf("list recent moods: %w", err)
	}
	mean, ok := analytics.Mean(analytics.Scores(recent))
	if !ok {
		return nil, nil
	}
	mean = math.Round(mean*100) / 100
	return &mean, nil
}

// RecordSession stores a completed exercise. Duration falls back to the
// catalog length when the client does not report one.
func (s *ExerciseService) RecordSession(ctx context.Context, userID string, req *dto.ExerciseSessionRequest) (*models.ExerciseSession, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	ex, ok := s.catalog.Exercise(req.ExerciseID)
	if !ok {
		return nil, ErrExerciseNotFound
	}

	session := &models.ExerciseSession{
		ID:           uuid.NewString(),
		UserID:       userID,
		ExerciseID:   ex.ID,
		ExerciseName: ex.Title,
		Duration:     req.Duration,
		CompletedAt:  s.now(),
	}
	if session.Duration == 0 {
		session.Duration = ex.DurationSeconds
	}
	if req.CompletedAt != nil && !req.CompletedAt.IsZero() {
		session.CompletedAt = *req.CompletedAt
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save exercise session: %w", err)
	}
	return session, nil
}
