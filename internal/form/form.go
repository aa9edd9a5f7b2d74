// Package form implements the entity form controllers: option-set loading,
// field validation, derived-field computation and submit-time payload
// shaping for the admin screens.
package form

import (
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/tims-dev/tims-admin-bff/internal/models"
)

// Phase tracks where a form sits in its lifecycle.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseEditing
	PhaseSubmitting
)

// String renders the phase for logs and payloads.
func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseEditing:
		return "editing"
	case PhaseSubmitting:
		return "submitting"
	}
	return "unknown"
}

// FieldErrors maps field names to the message rendered next to the field.
type FieldErrors map[string]string

// Set records a message for the field; the first message wins.
func (e FieldErrors) Set(field, message string) {
	if _, exists := e[field]; !exists {
		e[field] = message
	}
}

// Any reports whether any field failed.
func (e FieldErrors) Any() bool {
	return len(e) > 0
}

// Base is the state every concrete form embeds.
type Base struct {
	mu      sync.Mutex
	phase   Phase
	loadErr string
	errors  FieldErrors

	submitting bool
}

// Phase returns the current lifecycle phase.
func (b *Base) Phase() Phase {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.phase
}

// LoadErr returns the load failure surfaced when option fetching aborted.
func (b *Base) LoadErr() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loadErr
}

// Errors returns the field-level validation messages from the last submit
// attempt.
func (b *Base) Errors() FieldErrors {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.errors
}

func (b *Base) setPhase(p Phase) {
	b.mu.Lock()
	b.phase = p
	b.mu.Unlock()
}

func (b *Base) setLoadErr(msg string) {
	b.mu.Lock()
	b.loadErr = msg
	b.mu.Unlock()
}

func (b *Base) setErrors(errs FieldErrors) {
	b.mu.Lock()
	b.errors = errs
	b.mu.Unlock()
}

// beginSubmit flips the form into Submitting unless a submit is already in
// flight or the form is not editable yet.
func (b *Base) beginSubmit() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.phase != PhaseEditing || b.submitting {
		return false
	}
	b.submitting = true
	b.phase = PhaseSubmitting
	return true
}

// endSubmit returns the form to Editing.
func (b *Base) endSubmit() {
	b.mu.Lock()
	b.submitting = false
	b.phase = PhaseEditing
	b.mu.Unlock()
}

var alphaNameRe = regexp.MustCompile(`^[A-Za-z][A-Za-z ]*$`)

// CheckRequired flags empty values.
func CheckRequired(errs FieldErrors, field, value string) {
	if strings.TrimSpace(value) == "" {
		errs.Set(field, "this field is required")
	}
}

// CheckAlphaName flags names containing anything beyond letters and spaces.
func CheckAlphaName(errs FieldErrors, field, value string) {
	if value == "" {
		return
	}
	if !alphaNameRe.MatchString(strings.TrimSpace(value)) {
		errs.Set(field, "only alphabetic characters are allowed")
	}
}

// CheckPercent flags values outside 1-100.
func CheckPercent(errs FieldErrors, field string, value int) {
	if value < 1 || value > 100 {
		errs.Set(field, "must be between 1 and 100")
	}
}

// CheckDateOrder flags a valid-from later than valid-to; the message lands on
// the valid-to field.
func CheckDateOrder(errs FieldErrors, field string, from, to models.Date) {
	if from.IsZero() || to.IsZero() {
		return
	}
	if from.After(to) {
		errs.Set(field, "must not be earlier than the valid-from date")
	}
}

// NewValidator builds the struct validator shared by the forms, reporting
// violations under json field names.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// CollectStruct runs tag validation and folds violations into FieldErrors.
func CollectStruct(v *validator.Validate, errs FieldErrors, value interface{}) {
	err := v.Struct(value)
	if err == nil {
		return
	}
	var violations validator.ValidationErrors
	if !asValidationErrors(err, &violations) {
		errs.Set("_form", "invalid form values")
		return
	}
	for _, violation := range violations {
		switch violation.Tag() {
		case "required":
			errs.Set(violation.Field(), "this field is required")
		case "min":
			errs.Set(violation.Field(), "value is too small")
		case "max":
			errs.Set(violation.Field(), "value is too large")
		case "email":
			errs.Set(violation.Field(), "must be a valid email address")
		default:
			errs.Set(violation.Field(), "invalid value")
		}
	}
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	v, ok := err.(validator.ValidationErrors)
	if ok {
		*target = v
	}
	return ok
}
