package form

import (
	"context"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/tims-dev/tims-admin-bff/internal/assoc"
	"github.com/tims-dev/tims-admin-bff/internal/backend"
	"github.com/tims-dev/tims-admin-bff/internal/models"
)

type comboAPI interface {
	GetByID(ctx context.Context, id int64) (*models.CourseCombo, error)
	IsNameTaken(ctx context.Context, name string, excludeID int64) (bool, error)
	Insert(ctx context.Context, payload models.CourseCombo) backend.Result[models.CourseCombo]
	Update(ctx context.Context, id int64, payload models.CourseCombo) backend.Result[models.CourseCombo]
}

// ComboOptionSource supplies the course option set for the combo picker.
type ComboOptionSource interface {
	Courses(ctx context.Context) ([]models.Course, error)
}

// ComboValues are the scalar fields of the course-combo form.
type ComboValues struct {
	Name            string      `json:"name" validate:"required"`
	DiscountPercent int         `json:"discountPercent"`
	ValidFrom       models.Date `json:"validFrom"`
	ValidTo         models.Date `json:"validTo"`
	IsActive        bool        `json:"isActive"`
	Remarks         string      `json:"remarks"`
}

// ComboForm drives the course-combo workflow: a checkbox-style course picker
// with a minimum of two selections and a backend-checked unique name.
type ComboForm struct {
	Base

	api      comboAPI
	options  ComboOptionSource
	validate *validator.Validate

	editID int64

	Values   ComboValues
	Courses  []models.Course
	Selected *assoc.Set
}

// NewComboForm builds an unloaded combo form.
func NewComboForm(api comboAPI, options ComboOptionSource, validate *validator.Validate) *ComboForm {
	if validate == nil {
		validate = NewValidator()
	}
	f := &ComboForm{
		api:      api,
		options:  options,
		validate: validate,
		Selected: assoc.NewSet(),
	}
	f.Values.IsActive = true
	return f
}

// Load fetches the course option set and, when editing, the existing combo.
func (f *ComboForm) Load(ctx context.Context, id int64) error {
	f.setPhase(PhaseLoading)
	f.editID = id

	var (
		wg       sync.WaitGroup
		existing *models.CourseCombo
		errs     = make([]error, 2)
	)

	wg.Add(1)
	go func() { defer wg.Done(); f.Courses, errs[0] = f.options.Courses(ctx) }()
	if id != 0 {
		wg.Add(1)
		go func() { defer wg.Done(); existing, errs[1] = f.api.GetByID(ctx, id) }()
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			f.setLoadErr("failed to load course combo form data")
			return err
		}
	}

	if existing != nil {
		f.Values = ComboValues{
			Name:            existing.Name,
			DiscountPercent: existing.DiscountPercent,
			ValidFrom:       existing.ValidFrom,
			ValidTo:         existing.ValidTo,
			IsActive:        existing.IsActive,
			Remarks:         existing.Remarks,
		}
		ids := existing.CourseIDs
		if len(ids) == 0 {
			for _, junction := range existing.Courses {
				ids = append(ids, junction.ForeignID())
			}
		}
		f.Selected.Reconcile(ids)
	}

	f.setPhase(PhaseEditing)
	return nil
}

// ToggleCourse flips a course in or out of the selection.
func (f *ComboForm) ToggleCourse(courseID int64) {
	f.Selected.Toggle(courseID)
}

// Validate runs the local checks first and only probes name uniqueness when
// they pass, so an under-filled form never triggers a network call.
func (f *ComboForm) Validate(ctx context.Context) bool {
	errs := FieldErrors{}
	CollectStruct(f.validate, errs, f.Values)
	CheckPercent(errs, "discountPercent", f.Values.DiscountPercent)
	CheckDateOrder(errs, "validTo", f.Values.ValidFrom, f.Values.ValidTo)
	if f.Selected.Len() < 2 {
		errs.Set("courses", "select at least 2 courses")
	}
	if !errs.Any() {
		taken, err := f.api.IsNameTaken(ctx, f.Values.Name, f.editID)
		if err != nil {
			errs.Set("name", "could not verify the combo name, try again")
		} else if taken {
			errs.Set("name", "a combo with this name already exists")
		}
	}
	f.setErrors(errs)
	return !errs.Any()
}

// Submit validates and forwards the shaped payload: the selected IDs plus the
// comma-joined course-name string the backend stores alongside them.
func (f *ComboForm) Submit(ctx context.Context) backend.Result[models.CourseCombo] {
	if !f.Validate(ctx) {
		return backend.Failure[models.CourseCombo]("please correct the highlighted fields", 0)
	}
	if !f.beginSubmit() {
		return backend.Failure[models.CourseCombo]("a submission is already in progress", 0)
	}
	defer f.endSubmit()

	payload := models.CourseCombo{
		ID:              f.editID,
		Name:            f.Values.Name,
		CourseIDs:       f.Selected.IDs(),
		CourseNames:     f.joinedCourseNames(),
		DiscountPercent: f.Values.DiscountPercent,
		ValidFrom:       f.Values.ValidFrom,
		ValidTo:         f.Values.ValidTo,
		IsActive:        f.Values.IsActive,
		Remarks:         f.Values.Remarks,
	}

	if f.editID != 0 {
		return f.api.Update(ctx, f.editID, payload)
	}
	return f.api.Insert(ctx, payload)
}

func (f *ComboForm) joinedCourseNames() string {
	byID := make(map[int64]string, len(f.Courses))
	for _, course := range f.Courses {
		byID[course.ID] = course.Name
	}
	names := make([]string, 0, f.Selected.Len())
	for _, id := range f.Selected.IDs() {
		if name, ok := byID[id]; ok {
			names = append(names, name)
		}
	}
	return strings.Join(names, ", ")
}
