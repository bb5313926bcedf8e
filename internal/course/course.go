package course

import (
	"github.com/golang/glog"

	"studentportal/internal/models"
)

// EmailSender delivers the enrollment confirmation email. Sending is
// best-effort: a failure never fails the enrollment itself.
type EmailSender interface {
	SendEnrollmentConfirmation(recipient, studentName, courseName string) error
}

// Service provides the dashboard and the enrollment operations on top of a
// Repository.
type Service struct {
	repository Repository
	email      EmailSender
}

// NewService creates a course service backed by the given repository.
// email may be nil, in which case confirmation emails are skipped.
func NewService(repository Repository, email EmailSender) *Service {
	return &Service{repository: repository, email: email}
}

// Dashboard assembles the student's three course buckets.
func (s *Service) Dashboard(user *models.User) (*models.Dashboard, error) {
	enrolled, err := s.repository.CoursesByStatus(user.ID, models.StatusEnrolled)
	if err != nil {
		return nil, err
	}
	available, err := s.repository.AvailableCourses(user.ID)
	if err != nil {
		return nil, err
	}
	finished, err := s.repository.CoursesByStatus(user.ID, models.StatusFinished)
	if err != nil {
		return nil, err
	}

	return &models.Dashboard{
		Student:   user.Profile(),
		Enrolled:  enrolled,
		Available: available,
		Finished:  finished,
	}, nil
}

// Enroll registers the user in the course and fires the confirmation email.
func (s *Service) Enroll(user *models.User, courseID int) (string, error) {
	course, err := s.repository.GetCourse(courseID)
	if err != nil {
		glog.Warningf("user %d attempted to enroll in unknown course %d", user.ID, courseID)
		return "", err
	}

	if _, ok, err := s.repository.EnrollmentStatus(user.ID, courseID); err != nil {
		return "", err
	} else if ok {
		glog.Warningf("user %d attempted to re-enroll in course %d", user.ID, courseID)
		return "", AlreadyEnrolledError
	}

	if err := s.repository.CreateEnrollment(user.ID, courseID); err != nil {
		return "", err
	}
	glog.Infof("user %d enrolled in course %d", user.ID, courseID)

	if s.email != nil {
		if err := s.email.SendEnrollmentConfirmation(user.Email, user.Name, course.Name); err != nil {
			// Enrollment already succeeded; the email is not critical.
			glog.Errorf("failed to send enrollment email to %s for course %d: %v",
				user.Email, courseID, err)
		}
	}

	return "Enrollment successful", nil
}

// Disenroll removes the user's enrollment. Removing an enrollment that does
// not exist is reported as success: the end state is "not enrolled" either way.
func (s *Service) Disenroll(user *models.User, courseID int) (string, error) {
	removed, err := s.repository.DeleteEnrollment(user.ID, courseID)
	if err != nil {
		return "", err
	}
	if !removed {
		glog.Warningf("user %d not enrolled in course %d, disenrollment requested", user.ID, courseID)
		return "User was not enrolled or already disenrolled.", nil
	}

	glog.Infof("user %d disenrolled from course %d", user.ID, courseID)
	return "Successfully disenrolled.", nil
}

// Finish marks an 'enrolled' enrollment as 'finished'. Finishing a course
// that is already finished is reported as success.
func (s *Service) Finish(user *models.User, courseID int) (string, error) {
	updated, err := s.repository.FinishEnrollment(user.ID, courseID)
	if err != nil {
		return "", err
	}
	if updated {
		glog.Infof("course %d marked as finished for user %d", courseID, user.ID)
		return "Course marked as finished.", nil
	}

	status, ok, err := s.repository.EnrollmentStatus(user.ID, courseID)
	if err != nil {
		return "", err
	}
	if ok && status == models.StatusFinished {
		return "Course was already marked as finished.", nil
	}
	return "", NotEnrolledError
}
