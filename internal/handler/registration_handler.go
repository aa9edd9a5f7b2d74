package handler

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/tims-dev/tims-admin-bff/internal/backend"
	"github.com/tims-dev/tims-admin-bff/internal/form"
	"github.com/tims-dev/tims-admin-bff/internal/models"
	"github.com/tims-dev/tims-admin-bff/internal/service"
	"github.com/tims-dev/tims-admin-bff/pkg/config"
	appErrors "github.com/tims-dev/tims-admin-bff/pkg/errors"
	"github.com/tims-dev/tims-admin-bff/pkg/response"
)

// Attachment field names accepted on a registration submit.
const (
	fieldPhoto    = "photo"
	fieldDocument = "identityDocument"
)

// RegistrationHandler serves the registration screens. Creation is a
// multipart submit carrying the applicant's photo and identity document.
type RegistrationHandler struct {
	api      *backend.RegistrationAPI
	screen   *service.Screen[models.Registration]
	uploads  config.UploadsConfig
	validate *validator.Validate
}

// NewRegistrationHandler constructs the registration handler.
func NewRegistrationHandler(api *backend.RegistrationAPI, screen *service.Screen[models.Registration], uploads config.UploadsConfig, validate *validator.Validate) *RegistrationHandler {
	if validate == nil {
		validate = form.NewValidator()
	}
	return &RegistrationHandler{api: api, screen: screen, uploads: uploads, validate: validate}
}

// Register mounts the registration routes onto the group.
func (h *RegistrationHandler) Register(group *gin.RouterGroup) {
	group.GET("", h.List)
	group.GET("/:id", h.Get)
	group.POST("", h.Create)
	group.DELETE("/:id", h.Delete)
}

// List returns the filtered, paginated registrations.
func (h *RegistrationHandler) List(c *gin.Context) {
	query, page, size := listParams(c)
	items, pagination, err := h.screen.List(c.Request.Context(), query, page, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

// Get returns one registration for the details view.
func (h *RegistrationHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, err := h.screen.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Create accepts a multipart form, attaches the photo and identity document
// to the form controller and submits to the backend.
func (h *RegistrationHandler) Create(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(h.uploads.MaxFileSizeBytes * 2); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid multipart payload"))
		return
	}

	f := form.NewRegistrationForm(h.api, h.uploads, h.validate)
	f.Values = form.RegistrationValues{
		Name:     c.PostForm("name"),
		Email:    c.PostForm("email"),
		Phone:    c.PostForm("phone"),
		CourseID: form.ParseID(c.PostForm("courseId")),
		Remarks:  c.PostForm("remarks"),
	}
	if raw := c.PostForm("registeredOn"); raw != "" {
		date, err := models.ParseDate(raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "registeredOn must be a YYYY-MM-DD date"))
			return
		}
		f.Values.RegisteredOn = date
	}

	for _, field := range []string{fieldPhoto, fieldDocument} {
		header, err := c.FormFile(field)
		if err != nil {
			continue
		}
		if err := h.attach(f, field, header); err != nil {
			response.Error(c, err)
			return
		}
	}

	result := f.Submit(c.Request.Context())
	if !result.IsSuccess {
		if f.Errors().Any() {
			fieldErrorResponse(c, result.Message, f.Errors())
			return
		}
		response.Error(c, resultError(result.Message, result.HTTPStatusCode))
		return
	}
	response.Created(c, result.Data)
}

func (h *RegistrationHandler) attach(f *form.RegistrationForm, field string, header *multipart.FileHeader) error {
	if h.uploads.MaxFileSizeBytes > 0 && header.Size > h.uploads.MaxFileSizeBytes {
		return appErrors.Clone(appErrors.ErrUploadTooLarge, field+" exceeds the size limit")
	}

	file, err := header.Open()
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read upload")
	}
	defer file.Close() //nolint:errcheck

	data, err := io.ReadAll(file)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read upload")
	}

	contentType := header.Header.Get("Content-Type")
	if err := f.Attach(field, header.Filename, contentType, data); err != nil {
		return appErrors.Wrap(err, appErrors.ErrUploadType.Code, appErrors.ErrUploadType.Status, err.Error())
	}
	return nil
}

// Delete runs the delete-then-refresh flow.
func (h *RegistrationHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	message, err := h.screen.Delete(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": message}, nil)
}
