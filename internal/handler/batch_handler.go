package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/tims-dev/tims-admin-bff/internal/backend"
	"github.com/tims-dev/tims-admin-bff/internal/form"
	"github.com/tims-dev/tims-admin-bff/internal/models"
	"github.com/tims-dev/tims-admin-bff/internal/service"
	appErrors "github.com/tims-dev/tims-admin-bff/pkg/errors"
	"github.com/tims-dev/tims-admin-bff/pkg/response"
)

// BatchHandler serves the batch screens: the list, the details view and the
// schedule-assignment form with its derived batch name.
type BatchHandler struct {
	api      *backend.BatchAPI
	options  *service.OptionsService
	screen   *service.Screen[models.Batch]
	validate *validator.Validate
}

// NewBatchHandler constructs the batch handler.
func NewBatchHandler(api *backend.BatchAPI, options *service.OptionsService, screen *service.Screen[models.Batch], validate *validator.Validate) *BatchHandler {
	if validate == nil {
		validate = form.NewValidator()
	}
	return &BatchHandler{api: api, options: options, screen: screen, validate: validate}
}

// Register mounts the batch routes onto the group.
func (h *BatchHandler) Register(group *gin.RouterGroup) {
	group.GET("", h.List)
	group.GET("/form", h.Form)
	group.GET("/suggest-name", h.SuggestName)
	group.GET("/:id", h.Get)
	group.POST("", h.Create)
	group.PUT("/:id", h.Update)
	group.DELETE("/:id", h.Delete)
}

type batchRequest struct {
	form.BatchValues
	ScheduleIDs []int64 `json:"selectedScheduleIds"`
}

type batchFormResponse struct {
	Phase       string              `json:"phase"`
	Values      form.BatchValues    `json:"values"`
	ScheduleIDs []int64             `json:"selectedScheduleIds"`
	Courses     []models.Course     `json:"courses"`
	Instructors []models.Instructor `json:"instructors"`
	Classrooms  []models.Classroom  `json:"classrooms"`
	Schedules   []models.Schedule   `json:"schedules"`
}

// List returns the filtered, paginated batches.
func (h *BatchHandler) List(c *gin.Context) {
	query, page, size := listParams(c)
	items, pagination, err := h.screen.List(c.Request.Context(), query, page, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

// Get returns one batch for the details view.
func (h *BatchHandler) Get(c *gin.Context) {
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

// Form loads the option sets, plus the existing batch when ?id= is present,
// and returns everything the form screen binds to.
func (h *BatchHandler) Form(c *gin.Context) {
	f := form.NewBatchForm(h.api, h.options, h.validate)
	id := form.ParseID(c.Query("id"))
	if err := f.Load(c.Request.Context(), id); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrBackend.Code, appErrors.ErrBackend.Status, f.LoadErr()))
		return
	}
	response.JSON(c, http.StatusOK, batchFormResponse{
		Phase:       f.Phase().String(),
		Values:      f.Values,
		ScheduleIDs: f.Selected.IDs(),
		Courses:     f.Courses,
		Instructors: f.Instructors,
		Classrooms:  f.Classrooms,
		Schedules:   f.ScheduleOptions,
	}, nil)
}

// SuggestName returns the backend-derived batch name for a course selection.
// The UI overwrites the name field with it unconditionally.
func (h *BatchHandler) SuggestName(c *gin.Context) {
	courseID := form.ParseID(c.Query("courseId"))
	if courseID == 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "courseId is required"))
		return
	}
	name, err := h.api.GenerateName(c.Request.Context(), courseID)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrBackend.Code, appErrors.ErrBackend.Status, "failed to derive batch name"))
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"name": name}, nil)
}

// Create submits a new batch through the form controller.
func (h *BatchHandler) Create(c *gin.Context) {
	h.submit(c, 0)
}

// Update submits changes to an existing batch.
func (h *BatchHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	h.submit(c, id)
}

func (h *BatchHandler) submit(c *gin.Context, id int64) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	f := form.NewBatchForm(h.api, h.options, h.validate)
	if err := f.Load(c.Request.Context(), id); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrBackend.Code, appErrors.ErrBackend.Status, f.LoadErr()))
		return
	}
	f.Values = req.BatchValues
	f.Selected.Reconcile(req.ScheduleIDs)

	result := f.Submit(c.Request.Context())
	if !result.IsSuccess {
		if f.Errors().Any() {
			fieldErrorResponse(c, result.Message, f.Errors())
			return
		}
		response.Error(c, resultError(result.Message, result.HTTPStatusCode))
		return
	}
	if id == 0 {
		response.Created(c, result.Data)
		return
	}
	response.JSON(c, http.StatusOK, result.Data, nil)
}

// Delete runs the delete-then-refresh flow.
func (h *BatchHandler) Delete(c *gin.Context) {
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

// fieldErrorResponse rejects a submit with the per-field messages the form
// renders next to its inputs.
func fieldErrorResponse(c *gin.Context, message string, fields form.FieldErrors) {
	appErr := appErrors.Clone(appErrors.ErrValidation, message)
	c.Header("Cache-Control", "no-store")
	c.JSON(appErr.Status, response.Envelope{
		Error: appErr,
		Meta:  map[string]interface{}{"fieldErrors": fields},
	})
}
