package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tims-dev/tims-admin-bff/internal/models"
)

type auditSink interface {
	Create(ctx context.Context, entry *models.AuditLog) error
}

// Audit records write operations after they complete. Reads are never
// audited; failed writes are recorded with a FAILED outcome so operators can
// trace rejected changes too.
func Audit(repo auditSink, resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if repo == nil || c.Request.Method == http.MethodGet {
			c.Next()
			return
		}

		start := time.Now().UTC()
		c.Next()

		status := c.Writer.Status()
		outcome := "OK"
		if status >= http.StatusBadRequest {
			outcome = "FAILED"
		}

		var resourceID *string
		if id := c.Param("id"); id != "" {
			resourceID = &id
		}

		payload, _ := json.Marshal(map[string]interface{}{
			"path":    c.FullPath(),
			"method":  c.Request.Method,
			"status":  status,
			"latency": time.Since(start).Milliseconds(),
		})

		_ = repo.Create(c.Request.Context(), &models.AuditLog{
			Action:     actionFor(c.Request.Method),
			Resource:   resource,
			ResourceID: resourceID,
			Payload:    payload,
			Outcome:    outcome,
			IPAddress:  c.ClientIP(),
			UserAgent:  c.GetHeader("User-Agent"),
		})
	}
}

func actionFor(method string) string {
	switch method {
	case http.MethodPost:
		return models.AuditActionCreate
	case http.MethodPut, http.MethodPatch:
		return models.AuditActionUpdate
	case http.MethodDelete:
		return models.AuditActionDelete
	}
	return method
}
