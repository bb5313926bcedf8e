package models

import "time"

// EnrollmentStatus represents the lifecycle of an enrollment.
type EnrollmentStatus string

const (
	StatusEnrolled EnrollmentStatus = "enrolled"
	StatusFinished EnrollmentStatus = "finished"
)

// User represents a registered student.
type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"-"`
}

// Profile is the client-safe subset of a user sent on the dashboard.
// This struct separates profile information from internal user metadata.
type Profile struct {
	ID    int    `json:"id" mapstructure:"id"`
	Name  string `json:"name" mapstructure:"name"`
	Email string `json:"email" mapstructure:"email"`
}

// Profile returns the client-safe view of the user.
func (u *User) Profile() *Profile {
	return &Profile{ID: u.ID, Name: u.Name, Email: u.Email}
}

// Course represents a course offered on the portal.
type Course struct {
	ID          int    `json:"course_id" mapstructure:"course_id"`
	Name        string `json:"name" mapstructure:"name"`
	Description string `json:"description" mapstructure:"description"`
}

// Session is a server-held login session tied to a cookie value.
type Session struct {
	ID        string
	UserID    int
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Dashboard is the full payload for GET /api/dashboard: the student plus
// the three course buckets.
type Dashboard struct {
	Student   *Profile `json:"student" mapstructure:"student"`
	Enrolled  []Course `json:"enrolled" mapstructure:"enrolled"`
	Available []Course `json:"available" mapstructure:"available"`
	Finished  []Course `json:"finished" mapstructure:"finished"`
}

// SignupRequest is the parameter struct for the SignUp function.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the parameter struct for the LogIn function.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CourseActionRequest is the shared parameter struct for the enroll,
// disenroll and finish endpoints.
type CourseActionRequest struct {
	CourseID int `json:"courseId"`
}
