package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tims-dev/tims-admin-bff/internal/repository"
	appErrors "github.com/tims-dev/tims-admin-bff/pkg/errors"
	"github.com/tims-dev/tims-admin-bff/pkg/response"
)

// AuditHandler exposes the gateway-local trail of admin write operations.
type AuditHandler struct {
	repo *repository.AuditRepository
}

// NewAuditHandler constructs the audit handler.
func NewAuditHandler(repo *repository.AuditRepository) *AuditHandler {
	return &AuditHandler{repo: repo}
}

// Register mounts the audit routes onto the group.
func (h *AuditHandler) Register(group *gin.RouterGroup) {
	group.GET("", h.List)
}

// List returns the most recent entries, optionally scoped with ?resource=
// and ?limit=.
func (h *AuditHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	entries, err := h.repo.List(c.Request.Context(), c.Query("resource"), limit)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list audit entries"))
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}
