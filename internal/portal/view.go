package portal

import (
	"studentportal/internal/models"
)

// Bucket is one of the three course-list partitions shown on the dashboard.
type Bucket string

const (
	BucketEnrolled  Bucket = "enrolled"
	BucketAvailable Bucket = "available"
	BucketFinished  Bucket = "finished"
)

// Buckets lists the dashboard partitions in display order.
var Buckets = []Bucket{BucketEnrolled, BucketAvailable, BucketFinished}

// ActionKind identifies the affordance a rendered row exposes.
type ActionKind string

const (
	ActionEnroll    ActionKind = "enroll"
	ActionDisenroll ActionKind = "disenroll"
	ActionFinish    ActionKind = "finish"
)

// Action is a clickable affordance carrying the course it acts on.
type Action struct {
	Kind     ActionKind
	CourseID int
}

// Row is one rendered line of a course list. A placeholder row has only
// Placeholder set; a course row never sets it.
type Row struct {
	Placeholder string

	CourseID    int
	Name        string
	Description string
	Actions     []Action
	Badge       string
}

const (
	fallbackCourseName  = "Unnamed Course"
	fallbackDescription = "No description available."
	completedBadge      = "Completed"
)

// Render projects a course bucket into rendered rows. It has no side
// effects, and rendering the same input twice yields the same output.
func Render(bucket Bucket, courses []models.Course) []Row {
	if len(courses) == 0 {
		return []Row{{Placeholder: emptyPlaceholder(bucket)}}
	}

	rows := make([]Row, 0, len(courses))
	for _, course := range courses {
		row := Row{
			CourseID:    course.ID,
			Name:        course.Name,
			Description: course.Description,
		}
		if row.Name == "" {
			row.Name = fallbackCourseName
		}
		if row.Description == "" {
			row.Description = fallbackDescription
		}

		switch bucket {
		case BucketAvailable:
			row.Actions = []Action{{Kind: ActionEnroll, CourseID: course.ID}}
		case BucketEnrolled:
			row.Actions = []Action{
				{Kind: ActionDisenroll, CourseID: course.ID},
				{Kind: ActionFinish, CourseID: course.ID},
			}
		case BucketFinished:
			row.Badge = completedBadge
		}

		rows = append(rows, row)
	}
	return rows
}

func emptyPlaceholder(bucket Bucket) string {
	switch bucket {
	case BucketEnrolled:
		return "No courses currently enrolled."
	case BucketAvailable:
		return "No courses available for enrollment."
	case BucketFinished:
		return "No courses finished yet."
	default:
		return "No courses to display."
	}
}
