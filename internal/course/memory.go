package course

import (
	"sync"

	"studentportal/internal/models"
)

type enrollmentKey struct {
	userID   int
	courseID int
}

// memoryRepository keeps courses and enrollments in process memory. It backs
// the test suites and the standalone demo mode of cmd/server.
type memoryRepository struct {
	mu          sync.RWMutex
	nextID      int
	courses     map[int]*models.Course
	enrollments map[enrollmentKey]models.EnrollmentStatus
}

// NewMemoryRepository creates a course repository backed by in-memory maps.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		nextID:      1,
		courses:     make(map[int]*models.Course),
		enrollments: make(map[enrollmentKey]models.EnrollmentStatus),
	}
}

func (r *memoryRepository) GetCourse(courseID int) (*models.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if course, ok := r.courses[courseID]; ok {
		return course, nil
	}
	return nil, CourseNotFoundError
}

func (r *memoryRepository) CreateCourse(name, description string) (*models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	course := &models.Course{ID: r.nextID, Name: name, Description: description}
	r.courses[course.ID] = course
	r.nextID++
	return course, nil
}

func (r *memoryRepository) CoursesByStatus(userID int, status models.EnrollmentStatus) ([]models.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var courses []models.Course
	for id := 1; id < r.nextID; id++ {
		course, ok := r.courses[id]
		if !ok {
			continue
		}
		if r.enrollments[enrollmentKey{userID, id}] == status {
			courses = append(courses, *course)
		}
	}
	return courses, nil
}

func (r *memoryRepository) AvailableCourses(userID int) ([]models.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var courses []models.Course
	for id := 1; id < r.nextID; id++ {
		course, ok := r.courses[id]
		if !ok {
			continue
		}
		if _, enrolled := r.enrollments[enrollmentKey{userID, id}]; !enrolled {
			courses = append(courses, *course)
		}
	}
	return courses, nil
}

func (r *memoryRepository) EnrollmentStatus(userID, courseID int) (models.EnrollmentStatus, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	status, ok := r.enrollments[enrollmentKey{userID, courseID}]
	return status, ok, nil
}

func (r *memoryRepository) CreateEnrollment(userID, courseID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := enrollmentKey{userID, courseID}
	if _, ok := r.enrollments[key]; ok {
		return AlreadyEnrolledError
	}
	r.enrollments[key] = models.StatusEnrolled
	return nil
}

func (r *memoryRepository) DeleteEnrollment(userID, courseID int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := enrollmentKey{userID, courseID}
	if _, ok := r.enrollments[key]; !ok {
		return false, nil
	}
	delete(r.enrollments, key)
	return true, nil
}

func (r *memoryRepository) FinishEnrollment(userID, courseID int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := enrollmentKey{userID, courseID}
	if r.enrollments[key] != models.StatusEnrolled {
		return false, nil
	}
	r.enrollments[key] = models.StatusFinished
	return true, nil
}
