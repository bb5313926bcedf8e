package portal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang/glog"
)

// Renderer receives the rendered dashboard. The view is a pure projection;
// implementations only display what they are handed.
type Renderer interface {
	SetStudentName(name string)
	RenderBucket(bucket Bucket, rows []Row)
}

// Navigator switches pages. Page internals are outside the session's scope.
type Navigator interface {
	ToLogin()
	ToDashboard()
}

// State is the lifecycle position of the dashboard view.
type State string

const (
	StateLoading     State = "loading"
	StateReady       State = "ready"
	StateMutating    State = "mutating"
	StateRedirecting State = "redirecting"
)

const (
	fallbackStudentName    = "Student"
	loadFailurePlaceholder = "Could not load courses."
	connectivityMessage    = "Could not connect to the server."

	defaultRedirectDelay = 1500 * time.Millisecond
	defaultClearDelay    = 5 * time.Second
)

// DashboardSession orchestrates one dashboard page: it pulls state from the
// server, renders it, dispatches the three mutation actions and re-pulls
// after each one. Failures are terminal per action and surface only as
// status text.
type DashboardSession struct {
	client *Client
	view   Renderer
	status *StatusChannel
	nav    Navigator

	state State

	// RedirectDelay is how long the unauthorized notice stays on screen
	// before navigating to the login page.
	RedirectDelay time.Duration
	// ClearDelay is how long an action's status text lingers.
	ClearDelay time.Duration
}

// NewDashboardSession creates the controller for one page load.
func NewDashboardSession(client *Client, view Renderer, status *StatusChannel, nav Navigator) *DashboardSession {
	return &DashboardSession{
		client:        client,
		view:          view,
		status:        status,
		nav:           nav,
		state:         StateLoading,
		RedirectDelay: defaultRedirectDelay,
		ClearDelay:    defaultClearDelay,
	}
}

// State returns the session's current lifecycle position.
func (s *DashboardSession) State() State {
	return s.state
}

// LoadDashboard fetches the dashboard and renders all three buckets. An
// unauthorized response routes to the login page; any other failure leaves
// the view in a degraded ready state with explicit placeholders.
func (s *DashboardSession) LoadDashboard(ctx context.Context) {
	dashboard, err := s.client.Dashboard(ctx)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			if apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden {
				s.redirectToLogin()
				return
			}
			s.degrade("Could not load dashboard: " + apiErr.Error())
			return
		}

		glog.Errorf("dashboard fetch failed: %v", err)
		s.degrade(connectivityMessage)
		return
	}

	name := fallbackStudentName
	if dashboard.Student != nil && dashboard.Student.Name != "" {
		name = dashboard.Student.Name
	}
	s.view.SetStudentName(name)

	// Missing arrays decode as nil and render as empty buckets.
	s.view.RenderBucket(BucketEnrolled, Render(BucketEnrolled, dashboard.Enrolled))
	s.view.RenderBucket(BucketAvailable, Render(BucketAvailable, dashboard.Available))
	s.view.RenderBucket(BucketFinished, Render(BucketFinished, dashboard.Finished))

	s.state = StateReady
}

// Dispatch resolves a delegated action to the matching mutation. An action
// without a course id is a wiring bug: it is logged and surfaced, and no
// request is made.
func (s *DashboardSession) Dispatch(ctx context.Context, action Action) {
	if action.CourseID == 0 {
		glog.Errorf("dispatched %s action without a course id", action.Kind)
		s.status.Set("Something went wrong. Please try again.", StatusError)
		return
	}

	switch action.Kind {
	case ActionEnroll:
		s.Enroll(ctx, action.CourseID)
	case ActionDisenroll:
		s.Disenroll(ctx, action.CourseID)
	case ActionFinish:
		s.MarkFinished(ctx, action.CourseID)
	default:
		glog.Errorf("dispatched unknown action kind %q", action.Kind)
		s.status.Set("Something went wrong. Please try again.", StatusError)
	}
}

// Enroll enrolls in the course and re-syncs the buckets.
func (s *DashboardSession) Enroll(ctx context.Context, courseID int) {
	s.mutate(ctx, "Enrolling in course...", "Enrolled successfully.", "Enrollment failed",
		func() (string, error) { return s.client.Enroll(ctx, courseID) })
}

// Disenroll drops the course and re-syncs the buckets.
func (s *DashboardSession) Disenroll(ctx context.Context, courseID int) {
	s.mutate(ctx, "Disenrolling from course...", "Disenrolled successfully.", "Disenrollment failed",
		func() (string, error) { return s.client.Disenroll(ctx, courseID) })
}

// MarkFinished marks the course finished and re-syncs the buckets.
func (s *DashboardSession) MarkFinished(ctx context.Context, courseID int) {
	s.mutate(ctx, "Updating course status...", "Course marked as finished.", "Update failed",
		func() (string, error) { return s.client.MarkFinished(ctx, courseID) })
}

// mutate runs the shared action cycle: in-progress status, request, result
// status, and on success an awaited re-fetch so the visible buckets always
// reflect a fetch that happened after the mutation. The auto-clear is armed
// last either way.
func (s *DashboardSession) mutate(ctx context.Context, progress, successDefault, failureVerb string, call func() (string, error)) {
	s.state = StateMutating
	s.status.Set(progress, StatusInfo)

	message, err := call()
	if err != nil {
		s.state = StateReady
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			text := apiErr.Message
			if text == "" {
				text = fmt.Sprintf("%s (HTTP %d).", failureVerb, apiErr.StatusCode)
			}
			s.status.Set(text, StatusError)
		} else {
			glog.Errorf("%s: %v", failureVerb, err)
			s.status.Set(connectivityMessage, StatusError)
		}
		s.status.ScheduleClear(s.ClearDelay)
		return
	}

	if message == "" {
		message = successDefault
	}
	s.status.Set(message, StatusSuccess)

	s.LoadDashboard(ctx)
	s.status.ScheduleClear(s.ClearDelay)
}

func (s *DashboardSession) redirectToLogin() {
	s.state = StateRedirecting
	s.status.Set("Your session has expired. Redirecting to login...", StatusInfo)
	time.AfterFunc(s.RedirectDelay, s.nav.ToLogin)
}

func (s *DashboardSession) degrade(message string) {
	s.status.Set(message, StatusError)
	for _, bucket := range Buckets {
		s.view.RenderBucket(bucket, []Row{{Placeholder: loadFailurePlaceholder}})
	}
	s.state = StateReady
}
