package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tims-dev/tims-admin-bff/internal/models"
)

// AuditRepository persists the gateway-local trail of admin write operations.
// Entity data itself lives on the institute backend; only the fact that an
// admin changed something through this gateway is recorded here.
type AuditRepository struct {
	db *sqlx.DB
}

// NewAuditRepository constructs the repository.
func NewAuditRepository(db *sqlx.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Create stores an audit entry.
func (r *AuditRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO audit_logs (id, action, resource, resource_id, payload, outcome, ip_address, user_agent, created_at)
VALUES (:id, :action, :resource, :resource_id, :payload, :outcome, :ip_address, :user_agent, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("create audit log: %w", err)
	}
	return nil
}

// List returns the most recent entries, optionally scoped to one resource.
func (r *AuditRepository) List(ctx context.Context, resource string, limit int) ([]models.AuditLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	query := `SELECT id, action, resource, resource_id, payload, outcome, ip_address, user_agent, created_at
FROM audit_logs`
	args := []interface{}{}
	if resource != "" {
		query += ` WHERE resource = $1`
		args = append(args, resource)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT %d`, limit)

	var entries []models.AuditLog
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	return entries, nil
}
