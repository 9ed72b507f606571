package dto

import "time"

type AdminUser struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	Name               string    `json:"name"`
	IsAdmin            bool      `json:"isAdmin"`
	IsSuperAdmin       bool      `json:"isSuperAdmin"`
	OnboardingComplete bool      `json:"onboardingComplete"`
	CreatedAt          time.Time `json:"createdAt"`
	MoodCount          int64     `json:"moodCount"`
	JournalCount       int64     `json:"journalCount"`
	ExerciseCount      int64     `json:"exerciseCount"`
}

type AdminUsersResponse struct {
	Users []AdminUser `json:"users"`
}

type PlatformStats struct {
	TotalUsers     int    `json:"totalUsers"`
	ActiveUsers    int    `json:"activeUsers"`
	TotalMoods     int    `json:"totalMoods"`
	TotalJournals  int    `json:"totalJournals"`
	TotalExercises int    `json:"totalExercises"`
	AverageMood    string `json:"averageMood"`
}

type DeleteUserRequest struct {
	UserID string `json:"userId" validate:"required"`
}

type ChangePasswordRequest struct {
	UserID      string `json:"userId" validate:"required"`
	NewPassword string `json:"newPassword" validate:"password"`
}

type CreateAdminRequest struct {
	Name     string `json:"name" validate:"name"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"password"`
}
