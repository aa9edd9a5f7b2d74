package models

// Course is a sellable programme of study.
type Course struct {
	ID             int64             `json:"id"`
	Name           string            `json:"name"`
	Code           string            `json:"code,omitempty"`
	DurationMonths int               `json:"durationMonths,omitempty"`
	Fee            float64           `json:"fee,omitempty"`
	IsActive       bool              `json:"isActive"`
	Remarks        string            `json:"remarks,omitempty"`
	Instructors    []CourseInstructor `json:"courseInstructors,omitempty"`
	Classrooms     []CourseClassroom  `json:"courseClassrooms,omitempty"`
}

// CourseInstructor links a course to an instructor. IsPrimaryInstructor marks
// the lead instructor; new links created in the admin UI default it to true.
type CourseInstructor struct {
	CourseID            int64       `json:"courseId,omitempty"`
	InstructorID        int64       `json:"instructorId"`
	IsPrimaryInstructor bool        `json:"isPrimaryInstructor"`
	Instructor          *Instructor `json:"instructor,omitempty"`
}

// CourseClassroom links a course to a classroom it may be taught in. New links
// default IsAvailable to true.
type CourseClassroom struct {
	CourseID    int64      `json:"courseId,omitempty"`
	ClassroomID int64      `json:"classroomId"`
	IsAvailable bool       `json:"isAvailable"`
	Classroom   *Classroom `json:"classroom,omitempty"`
}
