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

// CourseHandler serves the course screens with their two junction-backed
// associations, instructors and classrooms.
type CourseHandler struct {
	api      *backend.Resource[models.Course]
	options  *service.OptionsService
	screen   *service.Screen[models.Course]
	validate *validator.Validate
}

// NewCourseHandler constructs the course handler.
func NewCourseHandler(api *backend.Resource[models.Course], options *service.OptionsService, screen *service.Screen[models.Course], validate *validator.Validate) *CourseHandler {
	if validate == nil {
		validate = form.NewValidator()
	}
	return &CourseHandler{api: api, options: options, screen: screen, validate: validate}
}

// Register mounts the course routes onto the group.
func (h *CourseHandler) Register(group *gin.RouterGroup) {
	group.GET("", h.List)
	group.GET("/form", h.Form)
	group.GET("/:id", h.Get)
	group.POST("", h.Create)
	group.PUT("/:id", h.Update)
	group.DELETE("/:id", h.Delete)
}

type courseRequest struct {
	form.CourseValues
	InstructorIDs []int64 `json:"instructorIds"`
	ClassroomIDs  []int64 `json:"classroomIds"`
}

type courseFormResponse struct {
	Phase             string                    `json:"phase"`
	Values            form.CourseValues         `json:"values"`
	Instructors       []models.CourseInstructor `json:"instructors"`
	Classrooms        []models.CourseClassroom  `json:"classrooms"`
	InstructorOptions []models.Instructor       `json:"instructorOptions"`
	ClassroomOptions  []models.Classroom        `json:"classroomOptions"`
}

// List returns the filtered, paginated courses.
func (h *CourseHandler) List(c *gin.Context) {
	query, page, size := listParams(c)
	items, pagination, err := h.screen.List(c.Request.Context(), query, page, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

// Get returns one course for the details view.
func (h *CourseHandler) Get(c *gin.Context) {
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

// Form loads the instructor and classroom options plus the existing course
// when ?id= is present.
func (h *CourseHandler) Form(c *gin.Context) {
	f := form.NewCourseForm(h.api, h.options, h.validate)
	id := form.ParseID(c.Query("id"))
	if err := f.Load(c.Request.Context(), id); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrBackend.Code, appErrors.ErrBackend.Status, f.LoadErr()))
		return
	}
	response.JSON(c, http.StatusOK, courseFormResponse{
		Phase:             f.Phase().String(),
		Values:            f.Values,
		Instructors:       f.Instructors.Records(),
		Classrooms:        f.Classrooms.Records(),
		InstructorOptions: f.InstructorOptions,
		ClassroomOptions:  f.ClassroomOptions,
	}, nil)
}

// Create submits a new course through the form controller.
func (h *CourseHandler) Create(c *gin.Context) {
	h.submit(c, 0)
}

// Update submits changes to an existing course.
func (h *CourseHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	h.submit(c, id)
}

func (h *CourseHandler) submit(c *gin.Context, id int64) {
	var req courseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	f := form.NewCourseForm(h.api, h.options, h.validate)
	if err := f.Load(c.Request.Context(), id); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrBackend.Code, appErrors.ErrBackend.Status, f.LoadErr()))
		return
	}
	f.Values = req.CourseValues
	reconcileLinks(f.Instructors.IDs(), req.InstructorIDs, f.AddInstructor, f.RemoveInstructor)
	reconcileLinks(f.Classrooms.IDs(), req.ClassroomIDs, f.AddClassroom, f.RemoveClassroom)

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
func (h *CourseHandler) Delete(c *gin.Context) {
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

// reconcileLinks drives a junction set towards the requested ID list through
// the form's add and remove operations, so existing rows keep their per-link
// attributes and new rows get the form's defaults.
func reconcileLinks(current, wanted []int64, add func(int64) bool, remove func(int64)) {
	want := make(map[int64]bool, len(wanted))
	for _, id := range wanted {
		want[id] = true
	}
	for _, id := range current {
		if !want[id] {
			remove(id)
		}
	}
	for _, id := range wanted {
		add(id)
	}
}
