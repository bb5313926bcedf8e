package course

import (
	"database/sql"

	"github.com/lib/pq"

	"studentportal/internal/models"
)

// Repository encapsulates the logic to access courses and enrollments from
// a database.
type Repository interface {
	// GetCourse returns the course with the given ID.
	GetCourse(courseID int) (*models.Course, error)
	// CreateCourse saves a new course into the database.
	CreateCourse(name, description string) (*models.Course, error)

	// CoursesByStatus returns the courses the user has an enrollment with
	// the given status for.
	CoursesByStatus(userID int, status models.EnrollmentStatus) ([]models.Course, error)
	// AvailableCourses returns the courses the user has no enrollment for.
	AvailableCourses(userID int) ([]models.Course, error)

	// EnrollmentStatus reports the status of the user's enrollment in the
	// course, or ok=false when there is none.
	EnrollmentStatus(userID, courseID int) (status models.EnrollmentStatus, ok bool, err error)
	// CreateEnrollment records a new 'enrolled' enrollment.
	CreateEnrollment(userID, courseID int) error
	// DeleteEnrollment removes the user's enrollment in the course and
	// reports whether a row was removed.
	DeleteEnrollment(userID, courseID int) (bool, error)
	// FinishEnrollment moves an 'enrolled' enrollment to 'finished' and
	// reports whether a row was updated.
	FinishEnrollment(userID, courseID int) (bool, error)
}

// postgresRepository queries and persists courses and enrollments in Postgres.
type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new course repository with Postgres as the
// database.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) GetCourse(courseID int) (*models.Course, error) {
	course := &models.Course{}
	err := r.db.QueryRow(
		`SELECT course_id, name, description FROM courses WHERE course_id = $1`, courseID).
		Scan(&course.ID, &course.Name, &course.Description)
	if err == sql.ErrNoRows {
		return nil, CourseNotFoundError
	}
	if err != nil {
		return nil, err
	}
	return course, nil
}

func (r *postgresRepository) CreateCourse(name, description string) (*models.Course, error) {
	course := &models.Course{Name: name, Description: description}
	err := r.db.QueryRow(
		`INSERT INTO courses (name, description) VALUES ($1, $2) RETURNING course_id`,
		name, description).Scan(&course.ID)
	if err != nil {
		return nil, err
	}
	return course, nil
}

func (r *postgresRepository) CoursesByStatus(userID int, status models.EnrollmentStatus) ([]models.Course, error) {
	rows, err := r.db.Query(
		`SELECT c.course_id, c.name, c.description
		 FROM courses c
		 JOIN enrollments e ON c.course_id = e.course_id
		 WHERE e.user_id = $1 AND e.status = $2
		 ORDER BY c.course_id`, userID, status)
	if err != nil {
		return nil, err
	}
	return collectCourses(rows)
}

func (r *postgresRepository) AvailableCourses(userID int) ([]models.Course, error) {
	rows, err := r.db.Query(
		`SELECT c.course_id, c.name, c.description
		 FROM courses c
		 WHERE c.course_id NOT IN (SELECT course_id FROM enrollments WHERE user_id = $1)
		 ORDER BY c.course_id`, userID)
	if err != nil {
		return nil, err
	}
	return collectCourses(rows)
}

func (r *postgresRepository) EnrollmentStatus(userID, courseID int) (models.EnrollmentStatus, bool, error) {
	var status models.EnrollmentStatus
	err := r.db.QueryRow(
		`SELECT status FROM enrollments WHERE user_id = $1 AND course_id = $2`,
		userID, courseID).Scan(&status)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return status, true, nil
}

func (r *postgresRepository) CreateEnrollment(userID, courseID int) error {
	_, err := r.db.Exec(
		`INSERT INTO enrollments (user_id, course_id, status) VALUES ($1, $2, $3)`,
		userID, courseID, models.StatusEnrolled)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
		return AlreadyEnrolledError
	}
	return err
}

func (r *postgresRepository) DeleteEnrollment(userID, courseID int) (bool, error) {
	res, err := r.db.Exec(
		`DELETE FROM enrollments WHERE user_id = $1 AND course_id = $2`, userID, courseID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *postgresRepository) FinishEnrollment(userID, courseID int) (bool, error) {
	res, err := r.db.Exec(
		`UPDATE enrollments SET status = $1
		 WHERE user_id = $2 AND course_id = $3 AND status = $4`,
		models.StatusFinished, userID, courseID, models.StatusEnrolled)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func collectCourses(rows *sql.Rows) ([]models.Course, error) {
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(&course.ID, &course.Name, &course.Description); err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}
	return courses, rows.Err()
}
