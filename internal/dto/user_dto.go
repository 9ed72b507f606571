package dto

import "github.com/mindora/wellness/internal/models"

type MeResponse struct {
	ID                 string             `json:"id"`
	Email              string             `json:"email"`
	Name               string             `json:"name"`
	OnboardingComplete bool               `json:"onboardingComplete"`
	IsAdmin            bool               `json:"isAdmin"`
	IsSuperAdmin       bool               `json:"isSuperAdmin"`
	Preferences        models.Preferences `json:"preferences"`
}

type ProfileResponse struct {
	Name    string         `json:"name"`
	Email   string         `json:"email"`
	Profile models.Profile `json:"profile"`
}

// UpdateProfileRequest replaces every profile field. Name is only changed
// when non-empty.
type UpdateProfileRequest struct {
	Name             string `json:"name" validate:"omitempty,name"`
	Phone            string `json:"phone" validate:"max=32"`
	DateOfBirth      string `json:"dateOfBirth" validate:"max=32"`
	Gender           string `json:"gender" validate:"max=32"`
	Address          string `json:"address" validate:"max=500"`
	EmergencyContact string `json:"emergencyContact" validate:"max=200"`
	MedicalHistory   string `json:"medicalHistory" validate:"max=5000"`
	TherapistName    string `json:"therapistName" validate:"max=200"`
	TherapistContact string `json:"therapistContact" validate:"max=200"`
}

func (r UpdateProfileRequest) Profile() models.Profile {
	return models.Profile{
		Phone:            r.Phone,
		DateOfBirth:      r.DateOfBirth,
		Gender:           r.Gender,
		Address:          r.Address,
		EmergencyContact: r.EmergencyContact,
		MedicalHistory:   r.MedicalHistory,
		TherapistName:    r.TherapistName,
		TherapistContact: r.TherapistContact,
	}
}

type OnboardingRequest struct {
	Completed bool `json:"completed"`
}
