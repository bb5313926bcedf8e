package auth

import (
	"context"
	"net/http"

	"github.com/go-chi/render"

	"studentportal/internal/config"
	"studentportal/internal/models"
)

type contextKey string

const userContextKey contextKey = "currentUser"

// RequireAuth is a middleware that rejects requests without a valid session
// cookie. The User associated with the request is added to the request
// context, and can be accessed via GetUserFromRequest.
func (s *Service) RequireAuth() func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(config.Config.SessionCookieName)
			if err != nil {
				// Missing session cookie.
				rejectUnauthorizedRequest(w, r)
				return
			}

			user, err := s.UserForSession(cookie.Value)
			if err != nil {
				// Unknown, expired or orphaned session.
				rejectUnauthorizedRequest(w, r)
				return
			}

			ctxWithUser := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctxWithUser))
		})
	}
}

// GetUserFromRequest returns a User if it exists within the request context.
// Only works with routes that implement the RequireAuth middleware.
func GetUserFromRequest(r *http.Request) (*models.User, error) {
	user, ok := r.Context().Value(userContextKey).(*models.User)
	if !ok || user == nil {
		return nil, UserNotFoundError
	}

	return user, nil
}

// Helpers

func rejectUnauthorizedRequest(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusUnauthorized)
	render.JSON(w, r, map[string]string{"message": "Authentication required."})
}
