package models

import (
	"time"

	"gorm.io/datatypes"
)

// MoodEntry is a single self-reported check-in on a 1..5 scale.
type MoodEntry struct {
	ID        string                      `gorm:"type:uuid;primaryKey" bson:"_id" json:"id"`
	UserID    string                      `gorm:"type:uuid;not null;index:idx_mood_user_date" bson:"userId" json:"userId"`
	Date      time.Time                   `gorm:"not null;index:idx_mood_user_date" bson:"date" json:"date"`
	Mood      int                         `gorm:"not null" bson:"mood" json:"mood"`
	Note      string                      `gorm:"type:text" bson:"note,omitempty" json:"note,omitempty"`
	Triggers  datatypes.JSONSlice[string] `gorm:"type:jsonb" bson:"triggers,omitempty" json:"triggers,omitempty"`
	CreatedAt time.Time                   `bson:"createdAt" json:"createdAt"`
}

func (e MoodEntry) EntryDate() time.Time { return e.Date }

type JournalEntry struct {
	ID        string    `gorm:"type:uuid;primaryKey" bson:"_id" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;index:idx_journal_user_date" bson:"userId" json:"userId"`
	Date      time.Time `gorm:"not null;index:idx_journal_user_date" bson:"date" json:"date"`
	Title     string    `gorm:"size:255" bson:"title,omitempty" json:"title,omitempty"`
	Content   string    `gorm:"type:text;not null" bson:"content" json:"content"`
	Mood      *int      `bson:"mood,omitempty" json:"mood,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (e JournalEntry) EntryDate() time.Time { return e.Date }

// ExerciseSession records a completed guided exercise. Duration is in seconds.
type ExerciseSession struct {
	ID           string    `gorm:"type:uuid;primaryKey" bson:"_id" json:"id"`
	UserID       string    `gorm:"type:uuid;not null;index" bson:"userId" json:"userId"`
	ExerciseID   string    `gorm:"size:100;not null" bson:"exerciseId" json:"exerciseId"`
	ExerciseName string    `gorm:"size:255" bson:"exerciseName" json:"exerciseName"`
	Duration     int       `bson:"duration" json:"duration"`
	CompletedAt  time.Time `gorm:"not null;index" bson:"completedAt" json:"completedAt"`
}

func (s ExerciseSession) EntryDate() time.Time { return s.CompletedAt }
