package form

import (
	"context"
	"strconv"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/tims-dev/tims-admin-bff/internal/assoc"
	"github.com/tims-dev/tims-admin-bff/internal/backend"
	"github.com/tims-dev/tims-admin-bff/internal/models"
)

type batchAPI interface {
	GetByID(ctx context.Context, id int64) (*models.Batch, error)
	GenerateName(ctx context.Context, courseID int64) (string, error)
	Insert(ctx context.Context, payload models.Batch) backend.Result[models.Batch]
	Update(ctx context.Context, id int64, payload models.Batch) backend.Result[models.Batch]
}

// BatchOptionSource supplies the dropdown option sets the batch form needs.
type BatchOptionSource interface {
	Courses(ctx context.Context) ([]models.Course, error)
	Instructors(ctx context.Context) ([]models.Instructor, error)
	Classrooms(ctx context.Context) ([]models.Classroom, error)
	Schedules(ctx context.Context) ([]models.Schedule, error)
}

// BatchValues are the scalar fields of the batch form.
type BatchValues struct {
	Name         string      `json:"name" validate:"required"`
	CourseID     int64       `json:"courseId" validate:"required"`
	InstructorID int64       `json:"instructorId"`
	ClassroomID  int64       `json:"classroomId"`
	StartDate    models.Date `json:"startDate"`
	EndDate      models.Date `json:"endDate"`
	IsActive     bool        `json:"isActive"`
	Remarks      string      `json:"remarks"`
}

// BatchForm drives the batch create/edit workflow: four option sets loaded as
// one concurrent batch, a schedule selection kept consistent with the
// server's junction rows, and a batch name derived from the selected course.
type BatchForm struct {
	Base

	api      batchAPI
	options  BatchOptionSource
	validate *validator.Validate

	editID int64

	Values          BatchValues
	Courses         []models.Course
	Instructors     []models.Instructor
	Classrooms      []models.Classroom
	ScheduleOptions []models.Schedule
	Selected        *assoc.Set
}

// NewBatchForm builds an unloaded batch form.
func NewBatchForm(api batchAPI, options BatchOptionSource, validate *validator.Validate) *BatchForm {
	if validate == nil {
		validate = NewValidator()
	}
	f := &BatchForm{
		api:      api,
		options:  options,
		validate: validate,
		Selected: assoc.NewSet(),
	}
	f.Values.IsActive = true
	return f
}

// Load fetches every option set concurrently, plus the existing batch when
// editing. All fetches must settle before the form opens; any failure aborts
// populating and surfaces a load error.
func (f *BatchForm) Load(ctx context.Context, id int64) error {
	f.setPhase(PhaseLoading)
	f.editID = id

	var (
		wg       sync.WaitGroup
		existing *models.Batch
		errs     = make([]error, 5)
	)

	wg.Add(4)
	go func() { defer wg.Done(); f.Courses, errs[0] = f.options.Courses(ctx) }()
	go func() { defer wg.Done(); f.Instructors, errs[1] = f.options.Instructors(ctx) }()
	go func() { defer wg.Done(); f.Classrooms, errs[2] = f.options.Classrooms(ctx) }()
	go func() { defer wg.Done(); f.ScheduleOptions, errs[3] = f.options.Schedules(ctx) }()
	if id != 0 {
		wg.Add(1)
		go func() { defer wg.Done(); existing, errs[4] = f.api.GetByID(ctx, id) }()
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			f.setLoadErr("failed to load batch form data")
			return err
		}
	}

	if existing != nil {
		f.Values = BatchValues{
			Name:         existing.Name,
			CourseID:     existing.CourseID,
			InstructorID: existing.InstructorID,
			ClassroomID:  existing.ClassroomID,
			StartDate:    existing.StartDate,
			EndDate:      existing.EndDate,
			IsActive:     existing.IsActive,
			Remarks:      existing.Remarks,
		}
		ids := make([]int64, 0, len(existing.Schedules))
		for _, junction := range existing.Schedules {
			ids = append(ids, junction.ForeignID())
		}
		f.Selected.Reconcile(ids)
	}

	f.setPhase(PhaseEditing)
	return nil
}

// SelectCourse records the course choice and asks the backend for the derived
// batch name. The suggestion overwrites the name field unconditionally, even
// on re-selecting the same course after a manual edit.
func (f *BatchForm) SelectCourse(ctx context.Context, courseID int64) error {
	f.Values.CourseID = courseID
	name, err := f.api.GenerateName(ctx, courseID)
	if err != nil {
		return err
	}
	f.Values.Name = name
	return nil
}

// AddSchedule selects a recurring schedule; duplicates are no-ops.
func (f *BatchForm) AddSchedule(scheduleID int64) {
	f.Selected.Add(scheduleID)
}

// RemoveSchedule deselects a schedule.
func (f *BatchForm) RemoveSchedule(scheduleID int64) {
	f.Selected.Remove(scheduleID)
}

// SelectedSchedules materialises the selection against the option set for
// display.
func (f *BatchForm) SelectedSchedules() []models.Schedule {
	byID := make(map[int64]models.Schedule, len(f.ScheduleOptions))
	for _, schedule := range f.ScheduleOptions {
		byID[schedule.ID] = schedule
	}
	out := make([]models.Schedule, 0, f.Selected.Len())
	for _, id := range f.Selected.IDs() {
		if schedule, ok := byID[id]; ok {
			out = append(out, schedule)
		}
	}
	return out
}

// Validate runs the whole-form checks and stores the field errors.
func (f *BatchForm) Validate() bool {
	errs := FieldErrors{}
	CollectStruct(f.validate, errs, f.Values)
	CheckDateOrder(errs, "endDate", f.Values.StartDate, f.Values.EndDate)
	if f.Selected.Len() == 0 {
		errs.Set("schedules", "select at least one schedule")
	}
	f.setErrors(errs)
	return !errs.Any()
}

// Submit validates, shapes the payload and forwards it to the backend. Only
// one submit may be in flight; a rejected or failed submit returns the form
// to Editing with the user's values intact.
func (f *BatchForm) Submit(ctx context.Context) backend.Result[models.Batch] {
	if !f.Validate() {
		return backend.Failure[models.Batch]("please correct the highlighted fields", 0)
	}
	if !f.beginSubmit() {
		return backend.Failure[models.Batch]("a submission is already in progress", 0)
	}
	defer f.endSubmit()

	payload := models.Batch{
		ID:           f.editID,
		Name:         f.Values.Name,
		CourseID:     f.Values.CourseID,
		InstructorID: f.Values.InstructorID,
		ClassroomID:  f.Values.ClassroomID,
		StartDate:    f.Values.StartDate,
		EndDate:      f.Values.EndDate,
		IsActive:     f.Values.IsActive,
		Remarks:      f.Values.Remarks,
	}
	for _, scheduleID := range f.Selected.IDs() {
		payload.Schedules = append(payload.Schedules, models.BatchSchedule{
			BatchID:    f.editID,
			ScheduleID: scheduleID,
		})
	}

	if f.editID != 0 {
		return f.api.Update(ctx, f.editID, payload)
	}
	return f.api.Insert(ctx, payload)
}

// ParseID coerces a route or query ID into the numeric key the backend uses.
func ParseID(raw string) int64 {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return id
}
