package course

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/golang/glog"

	"studentportal/internal/auth"
	"studentportal/internal/models"
)

// Routes registers the dashboard and enrollment endpoints on r. All of them
// require an authenticated session.
func Routes(r chi.Router, s *Service, authService *auth.Service) {
	r.Group(func(g chi.Router) {
		g.Use(authService.RequireAuth())

		g.Get("/dashboard", s.dashboardHandler)
		g.Post("/enroll", s.enrollHandler)
		g.Post("/disenroll", s.disenrollHandler)
		g.Post("/course/finish", s.finishHandler)
	})
}

// GET: /dashboard
func (s *Service) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	dashboard, err := s.Dashboard(user)
	if err != nil {
		glog.Errorf("failed to load dashboard for user %d: %v", user.ID, err)
		respondMessage(w, r, http.StatusInternalServerError, "Could not load dashboard.")
		return
	}

	render.JSON(w, r, dashboard)
}

// POST: /enroll
func (s *Service) enrollHandler(w http.ResponseWriter, r *http.Request) {
	s.actionHandler(w, r, func(user *models.User, courseID int) (string, error) {
		return s.Enroll(user, courseID)
	})
}

// POST: /disenroll
func (s *Service) disenrollHandler(w http.ResponseWriter, r *http.Request) {
	s.actionHandler(w, r, func(user *models.User, courseID int) (string, error) {
		return s.Disenroll(user, courseID)
	})
}

// POST: /course/finish
func (s *Service) finishHandler(w http.ResponseWriter, r *http.Request) {
	s.actionHandler(w, r, func(user *models.User, courseID int) (string, error) {
		return s.Finish(user, courseID)
	})
}

// actionHandler runs the shared decode/respond cycle of the three mutation
// endpoints.
func (s *Service) actionHandler(w http.ResponseWriter, r *http.Request, action func(*models.User, int) (string, error)) {
	user, err := auth.GetUserFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	var req models.CourseActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, r, http.StatusBadRequest, "Missing courseId.")
		return
	}
	if req.CourseID <= 0 {
		respondMessage(w, r, http.StatusBadRequest, "Invalid courseId format.")
		return
	}

	message, err := action(user, req.CourseID)
	switch err {
	case nil:
		respondMessage(w, r, http.StatusOK, message)
	case AlreadyEnrolledError:
		respondMessage(w, r, http.StatusConflict, "Already enrolled in this course.")
	case NotEnrolledError:
		respondMessage(w, r, http.StatusConflict, "Course not found or not currently enrolled.")
	case CourseNotFoundError:
		respondMessage(w, r, http.StatusNotFound, "Course not found.")
	default:
		glog.Errorf("course action failed for user %d on course %d: %v", user.ID, req.CourseID, err)
		respondMessage(w, r, http.StatusInternalServerError, "Action failed due to a server error.")
	}
}

func respondMessage(w http.ResponseWriter, r *http.Request, status int, text string) {
	render.Status(r, status)
	render.JSON(w, r, map[string]string{"message": text})
}
