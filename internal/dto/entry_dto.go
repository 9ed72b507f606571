package dto

import (
	"time"

	"github.com/mindora/wellness/internal/models"
)

type CreateMoodRequest struct {
	Mood     int        `json:"mood" validate:"mood"`
	Note     string     `json:"note" validate:"max=2000"`
	Triggers []string   `json:"triggers" validate:"max=20,dive,max=64"`
	Date     *time.Time `json:"date"`
}

type MoodListResponse struct {
	Moods []models.MoodEntry `json:"moods"`
}

type CreateJournalRequest struct {
	Content string     `json:"content" validate:"required"`
	Title   string     `json:"title" validate:"max=200"`
	Mood    *int       `json:"mood" validate:"omitempty,mood"`
	Date    *time.Time `json:"date"`
}

type UpdateJournalRequest struct {
	Content string     `json:"content" validate:"required"`
	Date    *time.Time `json:"date"`
}

type JournalListResponse struct {
	Entries []models.JournalEntry `json:"entries"`
}

type ExerciseSessionRequest struct {
	ExerciseID  string     `json:"exerciseId" validate:"required"`
	CompletedAt *time.Time `json:"completedAt"`
	// Duration in seconds; the catalog duration is used when zero.
	Duration int `json:"duration" validate:"gte=0"`
}

type CreatedResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

// Recommendation pairs catalog items with the recent mood they were picked
// for. MoodAverage is nil when the caller has no check-ins yet.
type Recommendation[T any] struct {
	MoodAverage *float64 `json:"moodAverage"`
	Band        string   `json:"band,omitempty"`
	Items       []T      `json:"items"`
}
