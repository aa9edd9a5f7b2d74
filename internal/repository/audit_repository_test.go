package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tims-dev/tims-admin-bff/internal/models"
)

func newAuditRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	return sqlxDB, mock, func() {
		sqlxDB.Close()
		db.Close()
	}
}

func TestAuditRepositoryCreateFillsDefaults(t *testing.T) {
	db, mock, cleanup := newAuditRepoMock(t)
	defer cleanup()

	repo := NewAuditRepository(db)
	mock.ExpectExec("INSERT INTO audit_logs").
		WillReturnResult(sqlmock.NewResult(1, 1))

	entry := &models.AuditLog{
		Action:   models.AuditActionDelete,
		Resource: "Department",
		Outcome:  "OK",
	}
	require.NoError(t, repo.Create(context.Background(), entry))

	assert.NotEmpty(t, entry.ID)
	assert.False(t, entry.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditRepositoryListWithResourceFilter(t *testing.T) {
	db, mock, cleanup := newAuditRepoMock(t)
	defer cleanup()

	repo := NewAuditRepository(db)
	rows := sqlmock.NewRows([]string{"id", "action", "resource", "resource_id", "payload", "outcome", "ip_address", "user_agent", "created_at"}).
		AddRow("a1", "CREATE", "Batch", nil, []byte(`{}`), "OK", "127.0.0.1", "test", time.Now())
	mock.ExpectQuery("SELECT id, action, resource").
		WithArgs("Batch").
		WillReturnRows(rows)

	entries, err := repo.List(context.Background(), "Batch", 50)

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Batch", entries[0].Resource)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditRepositoryListCapsLimit(t *testing.T) {
	db, mock, cleanup := newAuditRepoMock(t)
	defer cleanup()

	repo := NewAuditRepository(db)
	rows := sqlmock.NewRows([]string{"id", "action", "resource", "resource_id", "payload", "outcome", "ip_address", "user_agent", "created_at"})
	mock.ExpectQuery("LIMIT 100").WillReturnRows(rows)

	_, err := repo.List(context.Background(), "", 0)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
