package portal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// testView records what the session rendered.
type testView struct {
	mu          sync.Mutex
	studentName string
	buckets     map[Bucket][]Row
}

func newTestView() *testView {
	return &testView{buckets: make(map[Bucket][]Row)}
}

func (v *testView) SetStudentName(name string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.studentName = name
}

func (v *testView) RenderBucket(bucket Bucket, rows []Row) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.buckets[bucket] = rows
}

func (v *testView) bucket(bucket Bucket) []Row {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.buckets[bucket]
}

func (v *testView) rendered() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.buckets) > 0
}

// testNavigator records page switches.
type testNavigator struct {
	login     chan struct{}
	dashboard chan struct{}
}

func newTestNavigator() *testNavigator {
	return &testNavigator{
		login:     make(chan struct{}, 1),
		dashboard: make(chan struct{}, 1),
	}
}

func (n *testNavigator) ToLogin() {
	select {
	case n.login <- struct{}{}:
	default:
	}
}

func (n *testNavigator) ToDashboard() {
	select {
	case n.dashboard <- struct{}{}:
	default:
	}
}

const dashboardJSON = `{
	"student": {"id": 1, "name": "Ada", "email": "ada@example.com"},
	"enrolled": [{"course_id": 1, "name": "Algorithms", "description": "Graphs."}],
	"available": [{"course_id": 2, "name": "Compilers", "description": "Parsing."}],
	"finished": []
}`

func newSessionFixture(t *testing.T, handler http.Handler) (*DashboardSession, *testView, *testNavigator, *StatusChannel, func()) {
	t.Helper()

	server := httptest.NewServer(handler)
	client, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	view := newTestView()
	nav := newTestNavigator()
	status := NewStatusChannel()
	session := NewDashboardSession(client, view, status, nav)
	session.RedirectDelay = 0

	return session, view, nav, status, server.Close
}

func TestLoadDashboardRendersBuckets(t *testing.T) {
	session, view, _, _, closeServer := newSessionFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(dashboardJSON))
	}))
	defer closeServer()

	session.LoadDashboard(context.Background())

	if session.State() != StateReady {
		t.Errorf("Expected state ready, got %s", session.State())
	}
	if view.studentName != "Ada" {
		t.Errorf("Expected student name Ada, got %q", view.studentName)
	}

	enrolled := view.bucket(BucketEnrolled)
	if len(enrolled) != 1 || enrolled[0].CourseID != 1 || len(enrolled[0].Actions) != 2 {
		t.Errorf("Expected one enrolled row with two actions, got %+v", enrolled)
	}

	finished := view.bucket(BucketFinished)
	if len(finished) != 1 || finished[0].Placeholder != "No courses finished yet." {
		t.Errorf("Expected the finished placeholder, got %+v", finished)
	}
}

func TestLoadDashboardMissingArraysTreatedAsEmpty(t *testing.T) {
	session, view, _, _, closeServer := newSessionFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer closeServer()

	session.LoadDashboard(context.Background())

	if view.studentName != "Student" {
		t.Errorf("Expected the fallback student name, got %q", view.studentName)
	}
	for _, bucket := range Buckets {
		rows := view.bucket(bucket)
		if len(rows) != 1 || rows[0].Placeholder == "" {
			t.Errorf("Expected a placeholder for missing %s bucket, got %+v", bucket, rows)
		}
	}
}

func TestLoadDashboardUnauthorizedRedirects(t *testing.T) {
	session, view, nav, _, closeServer := newSessionFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message": "Authentication required."}`))
	}))
	defer closeServer()

	session.LoadDashboard(context.Background())

	if session.State() != StateRedirecting {
		t.Errorf("Expected state redirecting, got %s", session.State())
	}
	if view.rendered() {
		t.Errorf("Expected no bucket data to be rendered on 401")
	}

	select {
	case <-nav.login:
	case <-time.After(time.Second):
		t.Errorf("Expected navigation to the login page")
	}
}

func TestLoadDashboardServerErrorDegrades(t *testing.T) {
	session, view, _, status, closeServer := newSessionFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}))
	defer closeServer()

	session.LoadDashboard(context.Background())

	if session.State() != StateReady {
		t.Errorf("Expected a degraded ready state, got %s", session.State())
	}
	if status.Current().Kind != StatusError {
		t.Errorf("Expected an error status, got %+v", status.Current())
	}
	for _, bucket := range Buckets {
		rows := view.bucket(bucket)
		if len(rows) != 1 || rows[0].Placeholder != "Could not load courses." {
			t.Errorf("Expected the could-not-load placeholder in %s, got %+v", bucket, rows)
		}
	}
}

func TestLoadDashboardNetworkFailureDegrades(t *testing.T) {
	session, view, _, status, closeServer := newSessionFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	closeServer() // the request never completes

	session.LoadDashboard(context.Background())

	if status.Current().Text != "Could not connect to the server." {
		t.Errorf("Expected the connectivity message, got %+v", status.Current())
	}
	for _, bucket := range Buckets {
		rows := view.bucket(bucket)
		if len(rows) != 1 || rows[0].Placeholder != "Could not load courses." {
			t.Errorf("Expected the could-not-load placeholder in %s, got %+v", bucket, rows)
		}
	}
}

func TestEnrollSuccessRefetchesExactlyOnce(t *testing.T) {
	var dashboardCalls int64
	session, view, _, status, closeServer := newSessionFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/dashboard":
			atomic.AddInt64(&dashboardCalls, 1)
			w.Write([]byte(dashboardJSON))
		case r.Method == http.MethodPost && r.URL.Path == "/api/enroll":
			w.Write([]byte(`{"message": "Enrolled!"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer closeServer()

	session.Enroll(context.Background(), 2)

	if n := atomic.LoadInt64(&dashboardCalls); n != 1 {
		t.Errorf("Expected exactly one dashboard re-fetch after enroll, got %d", n)
	}
	current := status.Current()
	if current.Text != "Enrolled!" || current.Kind != StatusSuccess {
		t.Errorf("Expected the server's success message, got %+v", current)
	}
	if !view.rendered() {
		t.Errorf("Expected the re-fetch to render the buckets")
	}
}

func TestEnrollConflictShowsServerMessageWithoutRefetch(t *testing.T) {
	var dashboardCalls int64
	session, _, _, status, closeServer := newSessionFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/dashboard":
			atomic.AddInt64(&dashboardCalls, 1)
			w.Write([]byte(dashboardJSON))
		case r.Method == http.MethodPost && r.URL.Path == "/api/enroll":
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"message": "Already enrolled"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer closeServer()

	session.Enroll(context.Background(), 2)

	if n := atomic.LoadInt64(&dashboardCalls); n != 0 {
		t.Errorf("Expected no dashboard re-fetch on a failed enroll, got %d", n)
	}
	current := status.Current()
	if current.Kind != StatusError || !strings.Contains(current.Text, "Already enrolled") {
		t.Errorf("Expected an error status containing the server message, got %+v", current)
	}
}

func TestActionNetworkFailureShowsConnectivityMessage(t *testing.T) {
	session, _, _, status, closeServer := newSessionFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	closeServer()

	session.Disenroll(context.Background(), 2)

	current := status.Current()
	if current.Kind != StatusError || current.Text != "Could not connect to the server." {
		t.Errorf("Expected the connectivity error status, got %+v", current)
	}
}

func TestDispatchWithoutCourseIDMakesNoRequest(t *testing.T) {
	var requests int64
	session, _, _, status, closeServer := newSessionFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&requests, 1)
	}))
	defer closeServer()

	session.Dispatch(context.Background(), Action{Kind: ActionEnroll})

	if n := atomic.LoadInt64(&requests); n != 0 {
		t.Errorf("Expected no request for an action without a course id, got %d", n)
	}
	if status.Current().Kind != StatusError {
		t.Errorf("Expected an error status, got %+v", status.Current())
	}
}
