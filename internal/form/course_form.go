package form

import (
	"context"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/tims-dev/tims-admin-bff/internal/assoc"
	"github.com/tims-dev/tims-admin-bff/internal/backend"
	"github.com/tims-dev/tims-admin-bff/internal/models"
)

type courseAPI interface {
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	Insert(ctx context.Context, payload models.Course) backend.Result[models.Course]
	Update(ctx context.Context, id int64, payload models.Course) backend.Result[models.Course]
}

// CourseOptionSource supplies the instructor and classroom option sets.
type CourseOptionSource interface {
	Instructors(ctx context.Context) ([]models.Instructor, error)
	Classrooms(ctx context.Context) ([]models.Classroom, error)
}

// CourseValues are the scalar fields of the course form.
type CourseValues struct {
	Name           string  `json:"name" validate:"required"`
	Code           string  `json:"code"`
	DurationMonths int     `json:"durationMonths"`
	Fee            float64 `json:"fee"`
	IsActive       bool    `json:"isActive"`
	Remarks        string  `json:"remarks"`
}

// CourseForm drives the course workflow with two junction-backed
// associations: instructors (IsPrimaryInstructor) and classrooms
// (IsAvailable). New links default the extra attributes to true and embed
// the referenced entity for display.
type CourseForm struct {
	Base

	api      courseAPI
	options  CourseOptionSource
	validate *validator.Validate

	editID int64

	Values            CourseValues
	InstructorOptions []models.Instructor
	ClassroomOptions  []models.Classroom
	Instructors       *assoc.JunctionSet[models.CourseInstructor]
	Classrooms        *assoc.JunctionSet[models.CourseClassroom]
}

// NewCourseForm builds an unloaded course form.
func NewCourseForm(api courseAPI, options CourseOptionSource, validate *validator.Validate) *CourseForm {
	if validate == nil {
		validate = NewValidator()
	}
	f := &CourseForm{
		api:      api,
		options:  options,
		validate: validate,
		Instructors: assoc.NewJunctionSet(func(j models.CourseInstructor) int64 {
			return j.InstructorID
		}),
		Classrooms: assoc.NewJunctionSet(func(j models.CourseClassroom) int64 {
			return j.ClassroomID
		}),
	}
	f.Values.IsActive = true
	return f
}

// Load fetches both option sets concurrently plus the existing course when
// editing, then reconciles the junction sets against the server rows.
func (f *CourseForm) Load(ctx context.Context, id int64) error {
	f.setPhase(PhaseLoading)
	f.editID = id

	var (
		wg       sync.WaitGroup
		existing *models.Course
		errs     = make([]error, 3)
	)

	wg.Add(2)
	go func() { defer wg.Done(); f.InstructorOptions, errs[0] = f.options.Instructors(ctx) }()
	go func() { defer wg.Done(); f.ClassroomOptions, errs[1] = f.options.Classrooms(ctx) }()
	if id != 0 {
		wg.Add(1)
		go func() { defer wg.Done(); existing, errs[2] = f.api.GetByID(ctx, id) }()
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			f.setLoadErr("failed to load course form data")
			return err
		}
	}

	if existing != nil {
		f.Values = CourseValues{
			Name:           existing.Name,
			Code:           existing.Code,
			DurationMonths: existing.DurationMonths,
			Fee:            existing.Fee,
			IsActive:       existing.IsActive,
			Remarks:        existing.Remarks,
		}
		f.Instructors.Reconcile(existing.Instructors)
		f.Classrooms.Reconcile(existing.Classrooms)
	}

	f.setPhase(PhaseEditing)
	return nil
}

// AddInstructor links an instructor, defaulting the new junction's
// IsPrimaryInstructor to true and embedding the instructor for display.
func (f *CourseForm) AddInstructor(instructorID int64) bool {
	var embedded *models.Instructor
	for i := range f.InstructorOptions {
		if f.InstructorOptions[i].ID == instructorID {
			embedded = &f.InstructorOptions[i]
			break
		}
	}
	return f.Instructors.Add(models.CourseInstructor{
		CourseID:            f.editID,
		InstructorID:        instructorID,
		IsPrimaryInstructor: true,
		Instructor:          embedded,
	})
}

// RemoveInstructor unlinks an instructor.
func (f *CourseForm) RemoveInstructor(instructorID int64) {
	f.Instructors.Remove(instructorID)
}

// AddClassroom links a classroom, defaulting IsAvailable to true.
func (f *CourseForm) AddClassroom(classroomID int64) bool {
	var embedded *models.Classroom
	for i := range f.ClassroomOptions {
		if f.ClassroomOptions[i].ID == classroomID {
			embedded = &f.ClassroomOptions[i]
			break
		}
	}
	return f.Classrooms.Add(models.CourseClassroom{
		CourseID:    f.editID,
		ClassroomID: classroomID,
		IsAvailable: true,
		Classroom:   embedded,
	})
}

// RemoveClassroom unlinks a classroom.
func (f *CourseForm) RemoveClassroom(classroomID int64) {
	f.Classrooms.Remove(classroomID)
}

// Validate runs the course's field rules.
func (f *CourseForm) Validate() bool {
	errs := FieldErrors{}
	CollectStruct(f.validate, errs, f.Values)
	CheckAlphaName(errs, "name", f.Values.Name)
	f.setErrors(errs)
	return !errs.Any()
}

// Submit validates and forwards the course with its junction rows.
func (f *CourseForm) Submit(ctx context.Context) backend.Result[models.Course] {
	if !f.Validate() {
		return backend.Failure[models.Course]("please correct the highlighted fields", 0)
	}
	if !f.beginSubmit() {
		return backend.Failure[models.Course]("a submission is already in progress", 0)
	}
	defer f.endSubmit()

	payload := models.Course{
		ID:             f.editID,
		Name:           f.Values.Name,
		Code:           f.Values.Code,
		DurationMonths: f.Values.DurationMonths,
		Fee:            f.Values.Fee,
		IsActive:       f.Values.IsActive,
		Remarks:        f.Values.Remarks,
		Instructors:    f.Instructors.Records(),
		Classrooms:     f.Classrooms.Records(),
	}

	if f.editID != 0 {
		return f.api.Update(ctx, f.editID, payload)
	}
	return f.api.Insert(ctx, payload)
}
