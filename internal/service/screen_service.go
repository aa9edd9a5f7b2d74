package service

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/tims-dev/tims-admin-bff/internal/backend"
	"github.com/tims-dev/tims-admin-bff/internal/listview"
	"github.com/tims-dev/tims-admin-bff/internal/models"
	appErrors "github.com/tims-dev/tims-admin-bff/pkg/errors"
)

// Screen is the list/table workflow shared by every entity: load the full
// collection, filter it case-insensitively, paginate, and run the
// delete-then-refresh flow. One Screen serves one entity.
type Screen[T any] struct {
	resource *backend.Resource[T]
	loader   *listview.Loader[T]
	fields   listview.Fields[T]
	logger   *zap.Logger
}

// NewScreen wires a screen over the entity's backend resource.
func NewScreen[T any](resource *backend.Resource[T], fields listview.Fields[T], logger *zap.Logger) *Screen[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Screen[T]{
		resource: resource,
		loader:   listview.NewLoader(context.Background(), resource.GetAll, false),
		fields:   fields,
		logger:   logger,
	}
}

// List refreshes the collection and returns the requested page of the
// filtered result.
func (s *Screen[T]) List(ctx context.Context, query string, page, size int) ([]T, *models.Pagination, error) {
	if err := s.loader.Refresh(ctx); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrBackend.Code, appErrors.ErrBackend.Status, "failed to load "+s.resource.Name()+" list")
	}
	filtered := listview.Filter(s.loader.Data(), query, s.fields)
	items, pagination := listview.Paginate(filtered, page, size)
	return items, pagination, nil
}

// Get fetches one record for the details view.
func (s *Screen[T]) Get(ctx context.Context, id int64) (*T, error) {
	item, err := s.resource.GetByID(ctx, id)
	if err != nil {
		var statusErr *backend.StatusError
		if errors.As(err, &statusErr) && statusErr.Status == http.StatusNotFound {
			return nil, appErrors.Clone(appErrors.ErrNotFound, s.resource.Name()+" not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrBackend.Code, appErrors.ErrBackend.Status, "failed to load "+s.resource.Name())
	}
	return item, nil
}

// Create forwards a new record to the backend.
func (s *Screen[T]) Create(ctx context.Context, payload T) backend.Result[T] {
	return s.resource.Insert(ctx, payload)
}

// Update forwards changed fields to the backend.
func (s *Screen[T]) Update(ctx context.Context, id int64, payload T) backend.Result[T] {
	return s.resource.Update(ctx, id, payload)
}

// Delete removes the record and, on a success envelope, refreshes the held
// collection so the row disappears from the next render. On failure the held
// collection is left untouched.
func (s *Screen[T]) Delete(ctx context.Context, id int64) (string, error) {
	result := s.resource.Delete(ctx, id)
	if !result.IsSuccess {
		s.logger.Warn("delete rejected",
			zap.String("resource", s.resource.Name()),
			zap.Int64("id", id),
			zap.String("message", result.Message),
		)
		return "", appErrors.Clone(appErrors.ErrBackend, result.Message)
	}
	if err := s.loader.Refresh(ctx); err != nil {
		s.logger.Warn("refresh after delete failed",
			zap.String("resource", s.resource.Name()),
			zap.Error(err),
		)
	}
	return result.Message, nil
}

// Data exposes the currently held collection, mainly for tests and exports.
func (s *Screen[T]) Data() []T {
	return s.loader.Data()
}
