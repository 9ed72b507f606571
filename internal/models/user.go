package models

import "time"

// User is an account holder. Profile fields are optional and only leave the
// service through the profile endpoints or a report generated with personal
// details included.
type User struct {
	ID                 string      `gorm:"type:uuid;primaryKey" bson:"_id" json:"id"`
	Email              string      `gorm:"not null;size:255;uniqueIndex" bson:"email" json:"email"`
	Password           string      `gorm:"not null" bson:"password" json:"-"`
	Name               string      `gorm:"size:255" bson:"name" json:"name"`
	OnboardingComplete bool        `gorm:"default:false" bson:"onboardingComplete" json:"onboardingComplete"`
	IsAdmin            bool        `gorm:"default:false" bson:"isAdmin" json:"isAdmin"`
	IsSuperAdmin       bool        `gorm:"default:false;index" bson:"isSuperAdmin" json:"isSuperAdmin"`
	Profile            Profile     `gorm:"embedded;embeddedPrefix:profile_" bson:"profile" json:"profile"`
	Preferences        Preferences `gorm:"embedded;embeddedPrefix:pref_" bson:"preferences" json:"preferences"`
	CreatedAt          time.Time   `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time   `bson:"updatedAt" json:"updatedAt"`
}

type Profile struct {
	Phone            string `gorm:"size:50" bson:"phone,omitempty" json:"phone,omitempty"`
	DateOfBirth      string `gorm:"size:32" bson:"dateOfBirth,omitempty" json:"dateOfBirth,omitempty"`
	Gender           string `gorm:"size:50" bson:"gender,omitempty" json:"gender,omitempty"`
	Address          string `gorm:"type:text" bson:"address,omitempty" json:"address,omitempty"`
	EmergencyContact string `gorm:"size:255" bson:"emergencyContact,omitempty" json:"emergencyContact,omitempty"`
	MedicalHistory   string `gorm:"type:text" bson:"medicalHistory,omitempty" json:"medicalHistory,omitempty"`
	TherapistName    string `gorm:"size:255" bson:"therapistName,omitempty" json:"therapistName,omitempty"`
	TherapistContact string `gorm:"size:255" bson:"therapistContact,omitempty" json:"therapistContact,omitempty"`
}

type Preferences struct {
	Notifications bool   `gorm:"default:true" bson:"notifications" json:"notifications"`
	Theme         string `gorm:"size:20;default:'light'" bson:"theme" json:"theme"`
}

// DefaultPreferences are applied to new accounts.
func DefaultPreferences() Preferences {
	return Preferences{Notifications: true, Theme: "light"}
}

// Birthdate parses DateOfBirth. Accepted layouts are ISO dates, RFC 3339
// timestamps and US style month/day/year.
func (p Profile) Birthdate() (time.Time, bool) {
	if p.DateOfBirth == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339, "01/02/2006", "1/2/2006"} {
		if t, err := time.Parse(layout, p.DateOfBirth); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// AgeAt returns whole years elapsed between the birthdate and now.
func (p Profile) AgeAt(now time.Time) (int, bool) {
	dob, ok := p.Birthdate()
	if !ok {
		return 0, false
	}
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	if age < 0 {
		return 0, false
	}
	return age, true
}
