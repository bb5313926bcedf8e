package auth

import (
	"fmt"
	"strings"

	"studentportal/internal/models"
)

// ValidateSignup checks a SignupRequest for errors.
func ValidateSignup(req *models.SignupRequest) error {
	if err := validateName(req.Name); err != nil {
		return err
	}

	if err := validateEmail(req.Email); err != nil {
		return err
	}

	if err := validatePassword(req.Password); err != nil {
		return err
	}

	return nil
}

// ValidateLogin checks a LoginRequest for errors.
func ValidateLogin(req *models.LoginRequest) error {
	if req.Email == "" || req.Password == "" {
		return fmt.Errorf("missing email or password")
	}
	return nil
}

// Validators.

func validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email must be a non-empty string")
	}
	if parts := strings.Split(email, "@"); len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return fmt.Errorf("malformed email string: %q", email)
	}
	return nil
}

func validatePassword(val string) error {
	if len(val) < 6 {
		return fmt.Errorf("password must be a string at least 6 characters long")
	}
	return nil
}

func validateName(val string) error {
	if val == "" {
		return fmt.Errorf("name must be a non-empty string")
	}
	return nil
}
