package portal

import (
	"context"
	"errors"
	"time"

	"github.com/golang/glog"
)

// SignupForm holds the raw signup inputs.
type SignupForm struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// Validate checks the signup inputs. A violation blocks submission; no
// request is made for an invalid form.
func (f *SignupForm) Validate() error {
	if f.Name == "" || f.Email == "" || f.Password == "" || f.ConfirmPassword == "" {
		return errors.New("Please fill in all fields.")
	}
	if f.Password != f.ConfirmPassword {
		return errors.New("Passwords do not match.")
	}
	if len(f.Password) < 6 {
		return errors.New("Password must be at least 6 characters long.")
	}
	return nil
}

// LoginForm holds the raw login inputs.
type LoginForm struct {
	Email    string
	Password string
}

// Validate checks the login inputs.
func (f *LoginForm) Validate() error {
	if f.Email == "" || f.Password == "" {
		return errors.New("Please fill in all fields.")
	}
	return nil
}

const (
	signupFallbackMessage = "Signup failed. Please try again."
	loginFallbackMessage  = "Login failed. Please try again."

	defaultSignupRedirectDelay = 2 * time.Second
)

// AuthForms submits the signup and login forms and interprets the response:
// navigate on success, status text on failure.
type AuthForms struct {
	client *Client
	status *StatusChannel
	nav    Navigator

	// RedirectDelay is how long the signup success notice stays on screen
	// before navigating to the login page.
	RedirectDelay time.Duration
}

// NewAuthForms wires the form handlers to the API client, the status line
// and the navigator.
func NewAuthForms(client *Client, status *StatusChannel, nav Navigator) *AuthForms {
	return &AuthForms{
		client:        client,
		status:        status,
		nav:           nav,
		RedirectDelay: defaultSignupRedirectDelay,
	}
}

// SubmitSignup validates and submits the signup form. On success the user
// is sent to the login page after a short delay.
func (a *AuthForms) SubmitSignup(ctx context.Context, form SignupForm) {
	if err := form.Validate(); err != nil {
		a.status.Set(err.Error(), StatusError)
		return
	}

	if _, err := a.client.Signup(ctx, form.Name, form.Email, form.Password); err != nil {
		a.status.Set(submissionErrorText(err, signupFallbackMessage), StatusError)
		return
	}

	a.status.Set("Signup successful! Redirecting to login...", StatusSuccess)
	time.AfterFunc(a.RedirectDelay, a.nav.ToLogin)
}

// SubmitLogin validates and submits the login form. On success the user is
// sent straight to the dashboard.
func (a *AuthForms) SubmitLogin(ctx context.Context, form LoginForm) {
	if err := form.Validate(); err != nil {
		a.status.Set(err.Error(), StatusError)
		return
	}

	if err := a.client.Login(ctx, form.Email, form.Password); err != nil {
		a.status.Set(submissionErrorText(err, loginFallbackMessage), StatusError)
		return
	}

	a.nav.ToDashboard()
}

// submissionErrorText prefers the server-supplied message and falls back to
// a generic one, covering transport failures as well.
func submissionErrorText(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return fallback
	}

	glog.Errorf("form submission failed: %v", err)
	return connectivityMessage
}
