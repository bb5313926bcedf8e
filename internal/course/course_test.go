package course

import (
	"errors"
	"reflect"
	"testing"

	"studentportal/internal/models"
)

type recordingSender struct {
	recipients []string
	courses    []string
	err        error
}

func (s *recordingSender) SendEnrollmentConfirmation(recipient, studentName, courseName string) error {
	s.recipients = append(s.recipients, recipient)
	s.courses = append(s.courses, courseName)
	return s.err
}

func newFixture(t *testing.T) (*Service, Repository, *models.User) {
	t.Helper()

	repo := NewMemoryRepository()
	for _, name := range []string{"Algorithms", "Compilers", "Databases"} {
		if _, err := repo.CreateCourse(name, name+" course."); err != nil {
			t.Fatalf("CreateCourse: %v", err)
		}
	}

	user := &models.User{ID: 1, Name: "Ada", Email: "ada@example.com"}
	return NewService(repo, nil), repo, user
}

func courseIDs(courses []models.Course) []int {
	var ids []int
	for _, c := range courses {
		ids = append(ids, c.ID)
	}
	return ids
}

func TestDashboardPartitionsCourses(t *testing.T) {
	service, _, user := newFixture(t)

	if _, err := service.Enroll(user, 1); err != nil {
		t.Fatalf("Enroll: %v", err)
	}
	if _, err := service.Enroll(user, 2); err != nil {
		t.Fatalf("Enroll: %v", err)
	}
	if _, err := service.Finish(user, 2); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	dashboard, err := service.Dashboard(user)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}

	if !reflect.DeepEqual(courseIDs(dashboard.Enrolled), []int{1}) {
		t.Errorf("Expected enrolled courses [1], got %v", courseIDs(dashboard.Enrolled))
	}
	if !reflect.DeepEqual(courseIDs(dashboard.Available), []int{3}) {
		t.Errorf("Expected available courses [3], got %v", courseIDs(dashboard.Available))
	}
	if !reflect.DeepEqual(courseIDs(dashboard.Finished), []int{2}) {
		t.Errorf("Expected finished courses [2], got %v", courseIDs(dashboard.Finished))
	}
	if dashboard.Student == nil || dashboard.Student.Name != "Ada" {
		t.Errorf("Expected the student profile on the dashboard, got %+v", dashboard.Student)
	}
}

func TestEnrollUnknownCourseFails(t *testing.T) {
	service, repo, user := newFixture(t)

	if _, err := service.Enroll(user, 999); !errors.Is(err, CourseNotFoundError) {
		t.Fatalf("Expected CourseNotFoundError, got %v", err)
	}

	// No phantom enrollment row is left behind.
	if _, ok, _ := repo.EnrollmentStatus(user.ID, 999); ok {
		t.Errorf("Expected no enrollment to be recorded for an unknown course")
	}

	dashboard, err := service.Dashboard(user)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if len(dashboard.Enrolled) != 0 {
		t.Errorf("Expected the enrolled bucket to stay empty, got %v", courseIDs(dashboard.Enrolled))
	}
}

func TestEnrollTwiceFails(t *testing.T) {
	service, _, user := newFixture(t)

	if _, err := service.Enroll(user, 1); err != nil {
		t.Fatalf("Enroll: %v", err)
	}
	if _, err := service.Enroll(user, 1); !errors.Is(err, AlreadyEnrolledError) {
		t.Errorf("Expected AlreadyEnrolledError, got %v", err)
	}
}

func TestDisenrollToleratesMissingEnrollment(t *testing.T) {
	service, _, user := newFixture(t)

	message, err := service.Disenroll(user, 1)
	if err != nil {
		t.Fatalf("Disenroll: %v", err)
	}
	if message != "User was not enrolled or already disenrolled." {
		t.Errorf("Expected the tolerant message, got %q", message)
	}
}

func TestDisenrollRemovesEnrollment(t *testing.T) {
	service, repo, user := newFixture(t)

	if _, err := service.Enroll(user, 1); err != nil {
		t.Fatalf("Enroll: %v", err)
	}
	if _, err := service.Disenroll(user, 1); err != nil {
		t.Fatalf("Disenroll: %v", err)
	}

	if _, ok, _ := repo.EnrollmentStatus(user.ID, 1); ok {
		t.Errorf("Expected the enrollment to be removed")
	}
}

func TestFinishTransitions(t *testing.T) {
	service, _, user := newFixture(t)

	if _, err := service.Finish(user, 1); !errors.Is(err, NotEnrolledError) {
		t.Errorf("Expected NotEnrolledError for a course never enrolled, got %v", err)
	}

	if _, err := service.Enroll(user, 1); err != nil {
		t.Fatalf("Enroll: %v", err)
	}

	message, err := service.Finish(user, 1)
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if message != "Course marked as finished." {
		t.Errorf("Expected the finished message, got %q", message)
	}

	// Finishing again is reported as success.
	message, err = service.Finish(user, 1)
	if err != nil {
		t.Fatalf("Finish (again): %v", err)
	}
	if message != "Course was already marked as finished." {
		t.Errorf("Expected the already-finished message, got %q", message)
	}
}

func TestEnrollSendsConfirmationEmail(t *testing.T) {
	repo := NewMemoryRepository()
	if _, err := repo.CreateCourse("Algorithms", "Graphs."); err != nil {
		t.Fatalf("CreateCourse: %v", err)
	}

	sender := &recordingSender{}
	service := NewService(repo, sender)
	user := &models.User{ID: 1, Name: "Ada", Email: "ada@example.com"}

	if _, err := service.Enroll(user, 1); err != nil {
		t.Fatalf("Enroll: %v", err)
	}

	if !reflect.DeepEqual(sender.recipients, []string{"ada@example.com"}) {
		t.Errorf("Expected one confirmation email to the student, got %v", sender.recipients)
	}
	if !reflect.DeepEqual(sender.courses, []string{"Algorithms"}) {
		t.Errorf("Expected the email to name the course, got %v", sender.courses)
	}
}

func TestEnrollSucceedsWhenEmailFails(t *testing.T) {
	repo := NewMemoryRepository()
	if _, err := repo.CreateCourse("Algorithms", "Graphs."); err != nil {
		t.Fatalf("CreateCourse: %v", err)
	}

	sender := &recordingSender{err: errors.New("smtp unreachable")}
	service := NewService(repo, sender)
	user := &models.User{ID: 1, Name: "Ada", Email: "ada@example.com"}

	message, err := service.Enroll(user, 1)
	if err != nil {
		t.Fatalf("Enroll: %v", err)
	}
	if message != "Enrollment successful" {
		t.Errorf("Expected the enrollment to succeed despite the email failure, got %q", message)
	}
}
