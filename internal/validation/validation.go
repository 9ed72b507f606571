// Package validation wraps a shared validator/v10 instance with the custom
// rules and user-facing messages of the API.
package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

// Validator returns the process-wide validator with custom rules registered.
func Validator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(jsonName)
		_ = validate.RegisterValidation("password", passwordRule)
		_ = validate.RegisterValidation("name", nameRule)
		_ = validate.RegisterValidation("mood", moodRule)
	})
	return validate
}

// Struct validates s and returns the message for the first failing field,
// or nil.
func Struct(s any) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return &Error{Field: fieldErrs[0].Field(), Message: message(fieldErrs[0])}
	}
	return err
}

// Error is a single user-facing validation failure.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string { return e.Message }

// PasswordProblem describes why password is too weak, or returns "".
func PasswordProblem(password string) string {
	if strings.TrimSpace(password) == "" {
		return "Password is required"
	}
	if len(password) < 8 {
		return "Password must be at least 8 characters"
	}
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	switch {
	case !upper:
		return "Password must contain at least one uppercase letter"
	case !lower:
		return "Password must contain at least one lowercase letter"
	case !digit:
		return "Password must contain at least one number"
	}
	return ""
}

func jsonName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

func passwordRule(fl validator.FieldLevel) bool {
	return PasswordProblem(fl.Field().String()) == ""
}

func nameRule(fl validator.FieldLevel) bool {
	return len([]rune(strings.TrimSpace(fl.Field().String()))) >= 2
}

func moodRule(fl validator.FieldLevel) bool {
	v := fl.Field().Int()
	return v >= 1 && v <= 5
}

func message(fe validator.FieldError) string {
	value, _ := fe.Value().(string)
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return label(field) + " is required"
	case "email":
		return "Please enter a valid email address"
	case "password":
		return PasswordProblem(value)
	case "name":
		if strings.TrimSpace(value) == "" {
			return "Name is required"
		}
		return "Name must be at least 2 characters"
	case "mood":
		return "Invalid mood value"
	case "max":
		return label(field) + " is too long"
	}
	return label(field) + " is invalid"
}

var labels = map[string]string{
	"exerciseId":  "Exercise ID",
	"userId":      "User ID",
	"newPassword": "New password",
}

func label(field string) string {
	if l, ok := labels[field]; ok {
		return l
	}
	if field == "" {
		return field
	}
	return strings.ToUpper(field[:1]) + field[1:]
}
