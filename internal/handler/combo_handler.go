package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/tims-dev/tims-admin-bff/internal/backend"
	"github.com/tims-dev/tims-admin-bff/internal/form"
	"github.com/tims-dev/tims-admin-bff/internal/models"
	"github.com/tims-dev/tims-admin-bff/internal/service"
	appErrors "github.com/tims-dev/tims-admin-bff/pkg/errors"
	"github.com/tims-dev/tims-admin-bff/pkg/response"
)

// ComboHandler serves the course-combo screens, including the name
// availability probe the form runs before submitting.
type ComboHandler struct {
	api      *backend.ComboAPI
	options  *service.OptionsService
	screen   *service.Screen[models.CourseCombo]
	validate *validator.Validate
}

// NewComboHandler constructs the course-combo handler.
func NewComboHandler(api *backend.ComboAPI, options *service.OptionsService, screen *service.Screen[models.CourseCombo], validate *validator.Validate) *ComboHandler {
	if validate == nil {
		validate = form.NewValidator()
	}
	return &ComboHandler{api: api, options: options, screen: screen, validate: validate}
}

// Register mounts the course-combo routes onto the group.
func (h *ComboHandler) Register(group *gin.RouterGroup) {
	group.GET("", h.List)
	group.GET("/form", h.Form)
	group.GET("/check-name", h.CheckName)
	group.GET("/:id", h.Get)
	group.POST("", h.Create)
	group.PUT("/:id", h.Update)
	group.DELETE("/:id", h.Delete)
}

type comboRequest struct {
	form.ComboValues
	CourseIDs []int64 `json:"selectedCourseIds"`
}

type comboFormResponse struct {
	Phase     string           `json:"phase"`
	Values    form.ComboValues `json:"values"`
	CourseIDs []int64          `json:"selectedCourseIds"`
	Courses   []models.Course  `json:"courses"`
}

// List returns the filtered, paginated combos.
func (h *ComboHandler) List(c *gin.Context) {
	query, page, size := listParams(c)
	items, pagination, err := h.screen.List(c.Request.Context(), query, page, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

// Get returns one combo for the details view.
func (h *ComboHandler) Get(c *gin.Context) {
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

// Form loads the course picker options plus the existing combo when ?id= is
// present.
func (h *ComboHandler) Form(c *gin.Context) {
	f := form.NewComboForm(h.api, h.options, h.validate)
	id := form.ParseID(c.Query("id"))
	if err := f.Load(c.Request.Context(), id); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrBackend.Code, appErrors.ErrBackend.Status, f.LoadErr()))
		return
	}
	response.JSON(c, http.StatusOK, comboFormResponse{
		Phase:     f.Phase().String(),
		Values:    f.Values,
		CourseIDs: f.Selected.IDs(),
		Courses:   f.Courses,
	}, nil)
}

// CheckName reports whether a combo name is already taken, excluding the
// combo being edited when ?excludeId= is present.
func (h *ComboHandler) CheckName(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "name is required"))
		return
	}
	taken, err := h.api.IsNameTaken(c.Request.Context(), name, form.ParseID(c.Query("excludeId")))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrBackend.Code, appErrors.ErrBackend.Status, "failed to verify combo name"))
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"taken": taken}, nil)
}

// Create submits a new combo through the form controller.
func (h *ComboHandler) Create(c *gin.Context) {
	h.submit(c, 0)
}

// Update submits changes to an existing combo.
func (h *ComboHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	h.submit(c, id)
}

func (h *ComboHandler) submit(c *gin.Context, id int64) {
	var req comboRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	f := form.NewComboForm(h.api, h.options, h.validate)
	if err := f.Load(c.Request.Context(), id); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrBackend.Code, appErrors.ErrBackend.Status, f.LoadErr()))
		return
	}
	f.Values = req.ComboValues
	f.Selected.Reconcile(req.CourseIDs)

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
func (h *ComboHandler) Delete(c *gin.Context) {
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
