package auth

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/golang/glog"

	"studentportal/internal/config"
	"studentportal/internal/models"
)

// Routes registers the signup, login and logout endpoints on r.
// None of them require an authenticated session.
func Routes(r chi.Router, s *Service) {
	r.Post("/signup", s.signupHandler)
	r.Post("/login", s.loginHandler)
	r.Post("/logout", s.logoutHandler)
}

// POST: /signup
func (s *Service) signupHandler(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, r, http.StatusBadRequest, "Malformed request body.")
		return
	}

	if err := ValidateSignup(&req); err != nil {
		respondMessage(w, r, http.StatusBadRequest, err.Error())
		return
	}

	_, err := s.SignUp(&req)
	if err == EmailExistsError {
		respondMessage(w, r, http.StatusConflict, "Email already exists.")
		return
	}
	if err != nil {
		glog.Errorf("signup failed for %s: %v", req.Email, err)
		respondMessage(w, r, http.StatusInternalServerError, "Signup failed due to a server error.")
		return
	}

	respondMessage(w, r, http.StatusCreated, "Signup successful")
}

// POST: /login
func (s *Service) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, r, http.StatusBadRequest, "Malformed request body.")
		return
	}
	if err := ValidateLogin(&req); err != nil {
		respondMessage(w, r, http.StatusBadRequest, "Missing email or password.")
		return
	}

	user, session, err := s.LogIn(&req)
	if err == InvalidCredentialsError {
		respondMessage(w, r, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		glog.Errorf("login failed for %s: %v", req.Email, err)
		respondMessage(w, r, http.StatusInternalServerError, "Login failed due to a server error.")
		return
	}

	http.SetCookie(w, sessionCookie(session.ID, int(config.Config.SessionCookieExpiration.Seconds())))

	render.JSON(w, r, map[string]interface{}{
		"message": "Login successful",
		"user":    user.Profile(),
	})
}

// POST: /logout
func (s *Service) logoutHandler(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(config.Config.SessionCookieName); err == nil {
		if err := s.LogOut(cookie.Value); err != nil {
			glog.Warningf("failed to remove session: %v", err)
		}
	}

	http.SetCookie(w, sessionCookie("", -1))
	respondMessage(w, r, http.StatusOK, "Logout successful")
}

func sessionCookie(value string, maxAge int) *http.Cookie {
	var sameSite http.SameSite
	if config.Config.IsHTTPS {
		sameSite = http.SameSiteNoneMode
	} else {
		sameSite = http.SameSiteLaxMode
	}

	return &http.Cookie{
		Name:     config.Config.SessionCookieName,
		Value:    value,
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: sameSite,
		Secure:   config.Config.IsHTTPS,
		Path:     "/",
	}
}

func respondMessage(w http.ResponseWriter, r *http.Request, status int, text string) {
	render.Status(r, status)
	render.JSON(w, r, map[string]string{"message": text})
}
