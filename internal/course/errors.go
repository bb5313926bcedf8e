package course

import (
	"errors"
)

var (
	CourseNotFoundError  = errors.New("course not found")
	AlreadyEnrolledError = errors.New("already enrolled in this course")
	NotEnrolledError     = errors.New("course not found or not currently enrolled")
)
