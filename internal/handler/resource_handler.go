package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tims-dev/tims-admin-bff/internal/service"
	appErrors "github.com/tims-dev/tims-admin-bff/pkg/errors"
	"github.com/tims-dev/tims-admin-bff/pkg/response"
)

// ResourceHandler serves the list/detail/create/update/delete endpoints of a
// plain entity screen. Entities with richer forms (batches, combos, courses,
// offers, registrations) get dedicated handlers instead.
type ResourceHandler[T any] struct {
	screen *service.Screen[T]
}

// NewResourceHandler constructs a handler over the entity's screen service.
func NewResourceHandler[T any](screen *service.Screen[T]) *ResourceHandler[T] {
	return &ResourceHandler[T]{screen: screen}
}

// Register mounts the conventional route set onto the group.
func (h *ResourceHandler[T]) Register(group *gin.RouterGroup) {
	group.GET("", h.List)
	group.GET("/:id", h.Get)
	group.POST("", h.Create)
	group.PUT("/:id", h.Update)
	group.DELETE("/:id", h.Delete)
}

// List returns the filtered, paginated collection.
func (h *ResourceHandler[T]) List(c *gin.Context) {
	query, page, size := listParams(c)
	items, pagination, err := h.screen.List(c.Request.Context(), query, page, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

// Get returns one record for the details view.
func (h *ResourceHandler[T]) Get(c *gin.Context) {
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

// Create forwards a new record to the backend.
func (h *ResourceHandler[T]) Create(c *gin.Context) {
	var payload T
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result := h.screen.Create(c.Request.Context(), payload)
	if !result.IsSuccess {
		response.Error(c, resultError(result.Message, result.HTTPStatusCode))
		return
	}
	response.Created(c, result.Data)
}

// Update forwards changed fields to the backend.
func (h *ResourceHandler[T]) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var payload T
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result := h.screen.Update(c.Request.Context(), id, payload)
	if !result.IsSuccess {
		response.Error(c, resultError(result.Message, result.HTTPStatusCode))
		return
	}
	response.JSON(c, http.StatusOK, result.Data, nil)
}

// Delete runs the delete-then-refresh flow and reports the backend's message.
func (h *ResourceHandler[T]) Delete(c *gin.Context) {
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

func listParams(c *gin.Context) (query string, page, size int) {
	query = strings.TrimSpace(c.Query("search"))
	page = 1
	size = 10
	if parsed, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		page = parsed
	}
	if parsed, err := strconv.Atoi(c.DefaultQuery("limit", "10")); err == nil {
		size = parsed
	}
	return query, page, size
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid id"))
		return 0, false
	}
	return id, true
}

// resultError maps a backend failure envelope onto the gateway's error type,
// preserving the backend's status when it carried one.
func resultError(message string, status int) *appErrors.Error {
	if status < http.StatusBadRequest {
		status = appErrors.ErrBackend.Status
	}
	if message == "" {
		message = appErrors.ErrBackend.Message
	}
	return appErrors.New(appErrors.ErrBackend.Code, status, message)
}
