package dto

import (
	"regexp"
	"strings"
)

// FieldError is one (field, message) validation failure. Callers surface the
// first entry; the full list is returned for form highlighting.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func ValidEmail(email string) bool {
	return emailRe.MatchString(strings.TrimSpace(email))
}

type RegisterRequest struct {
	UserName string `json:"user_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Terms    bool   `json:"terms"`
}

// Validate applies the registration rules. Pure: no I/O, no DB.
func (r RegisterRequest) Validate() []FieldError {
	var errs []FieldError
	if strings.TrimSpace(r.UserName) == "" {
		errs = append(errs, FieldError{"user_name", "Name is required"})
	}
	if !ValidEmail(r.Email) {
		errs = append(errs, FieldError{"email", "Invalid email address"})
	}
	if len(r.Password) < 8 {
		errs = append(errs, FieldError{"password", "Password must be at least 8 characters"})
	}
	if !r.Terms {
		errs = append(errs, FieldError{"terms", "Please accept the terms and conditions"})
	}
	return errs
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() []FieldError {
	var errs []FieldError
	if !ValidEmail(r.Email) {
		errs = append(errs, FieldError{"email", "Invalid email address"})
	}
	if strings.TrimSpace(r.Password) == "" {
		errs = append(errs, FieldError{"password", "Password is required"})
	}
	return errs
}

// AsMap shapes field errors for the 422 envelope.
func AsMap(errs []FieldError) map[string][]string {
	out := make(map[string][]string, len(errs))
	for _, e := range errs {
		out[e.Field] = append(out[e.Field], e.Message)
	}
	return out
}
