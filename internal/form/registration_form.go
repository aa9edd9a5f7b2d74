package form

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/tims-dev/tims-admin-bff/internal/backend"
	"github.com/tims-dev/tims-admin-bff/internal/models"
	"github.com/tims-dev/tims-admin-bff/pkg/config"
)

type registrationAPI interface {
	InsertWithFiles(ctx context.Context, reg models.Registration, files []backend.Upload) backend.Result[models.Registration]
}

// RegistrationValues are the scalar fields of the registration form.
type RegistrationValues struct {
	Name         string      `json:"name" validate:"required"`
	Email        string      `json:"email" validate:"omitempty,email"`
	Phone        string      `json:"phone"`
	CourseID     int64       `json:"courseId" validate:"required"`
	RegisteredOn models.Date `json:"registeredOn"`
	Remarks      string      `json:"remarks"`
}

// RegistrationForm drives the registration workflow: scalar fields plus the
// applicant photo and identity document attached to one multipart submit.
type RegistrationForm struct {
	Base

	api      registrationAPI
	validate *validator.Validate
	uploads  config.UploadsConfig

	Values RegistrationValues
	files  []backend.Upload
}

// NewRegistrationForm builds a registration form with upload constraints.
func NewRegistrationForm(api registrationAPI, uploads config.UploadsConfig, validate *validator.Validate) *RegistrationForm {
	if validate == nil {
		validate = NewValidator()
	}
	f := &RegistrationForm{api: api, validate: validate, uploads: uploads}
	f.setPhase(PhaseEditing)
	return f
}

// Attach adds a file to the pending submit after checking size and type
// against the configured limits. A second attachment for the same field
// replaces the first.
func (f *RegistrationForm) Attach(field, filename, contentType string, data []byte) error {
	if f.uploads.MaxFileSizeBytes > 0 && int64(len(data)) > f.uploads.MaxFileSizeBytes {
		return fmt.Errorf("%s: %s", field, "file exceeds the size limit")
	}
	if len(f.uploads.AllowedMIMEs) > 0 && !contains(f.uploads.AllowedMIMEs, contentType) {
		return fmt.Errorf("%s: file type %s is not allowed", field, contentType)
	}

	for i := range f.files {
		if f.files[i].Field == field {
			f.files[i] = backend.Upload{Field: field, Filename: filename, ContentType: contentType, Data: data}
			return nil
		}
	}
	f.files = append(f.files, backend.Upload{Field: field, Filename: filename, ContentType: contentType, Data: data})
	return nil
}

// Validate runs the registration's field rules.
func (f *RegistrationForm) Validate() bool {
	errs := FieldErrors{}
	CollectStruct(f.validate, errs, f.Values)
	f.setErrors(errs)
	return !errs.Any()
}

// Submit validates and posts the registration with its attachments.
func (f *RegistrationForm) Submit(ctx context.Context) backend.Result[models.Registration] {
	if !f.Validate() {
		return backend.Failure[models.Registration]("please correct the highlighted fields", 0)
	}
	if !f.beginSubmit() {
		return backend.Failure[models.Registration]("a submission is already in progress", 0)
	}
	defer f.endSubmit()

	reg := models.Registration{
		Name:         f.Values.Name,
		Email:        f.Values.Email,
		Phone:        f.Values.Phone,
		CourseID:     f.Values.CourseID,
		RegisteredOn: f.Values.RegisteredOn,
		Remarks:      f.Values.Remarks,
	}
	return f.api.InsertWithFiles(ctx, reg, f.files)
}

func contains(values []string, candidate string) bool {
	for _, value := range values {
		if value == candidate {
			return true
		}
	}
	return false
}
