package validation

import (
	"errors"
	"testing"
)

type signup struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"password"`
	Name     string `json:"name" validate:"name"`
}

type session struct {
	ExerciseID string `json:"exerciseId" validate:"required"`
	Mood       int    `json:"mood" validate:"mood"`
}

func TestStructMessages(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"valid", signup{"a@b.co", "Secret123", "Jo"}, ""},
		{"missing email", signup{"", "Secret123", "Jo"}, "Email is required"},
		{"bad email", signup{"nope", "Secret123", "Jo"}, "Please enter a valid email address"},
		{"short password", signup{"a@b.co", "Ab1", "Jo"}, "Password must be at least 8 characters"},
		{"no upper", signup{"a@b.co", "secret123", "Jo"}, "Password must contain at least one uppercase letter"},
		{"no lower", signup{"a@b.co", "SECRET123", "Jo"}, "Password must contain at least one lowercase letter"},
		{"no digit", signup{"a@b.co", "SecretPass", "Jo"}, "Password must contain at least one number"},
		{"blank name", signup{"a@b.co", "Secret123", "   "}, "Name is required"},
		{"short name", signup{"a@b.co", "Secret123", " J "}, "Name must be at least 2 characters"},
		{"exercise id", session{"", 3}, "Exercise ID is required"},
		{"mood zero", session{"box", 0}, "Invalid mood value"},
		{"mood high", session{"box", 6}, "Invalid mood value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.input)
			if tt.want == "" {
				if err != nil {
					t.Fatalf("Struct() = %v, want nil", err)
				}
				return
			}
			var verr *Error
			if !errors.As(err, &verr) {
				t.Fatalf("Struct() = %v, want *Error", err)
			}
			if verr.Message != tt.want {
				t.Errorf("message = %q, want %q", verr.Message, tt.want)
			}
		})
	}
}

func TestPasswordProblem(t *testing.T) {
	if got := PasswordProblem("  "); got != "Password is required" {
		t.Errorf("blank password = %q", got)
	}
	if got := PasswordProblem("Str0ngPass"); got != "" {
		t.Errorf("strong password = %q, want empty", got)
	}
}
