package backend

import (
	"context"
	"fmt"
	"net/http"
)

// Resource wraps the backend's conventional per-entity route set:
//
//	GET    {name}/Get{plural}
//	GET    {name}/Get{name}/{id}
//	POST   {name}/Insert{name}
//	PUT    {name}/Update{name}/{id}
//	DELETE {name}/Delete{name}/{id}
//
// Reads decode raw payloads; writes resolve to the uniform envelope.
type Resource[T any] struct {
	client *Client
	name   string
	plural string
}

// NewResource builds a resource API for the given entity route name.
func NewResource[T any](client *Client, name, plural string) *Resource[T] {
	return &Resource[T]{client: client, name: name, plural: plural}
}

// Name returns the backend route name of the entity.
func (r *Resource[T]) Name() string {
	return r.name
}

// GetAll fetches the full collection.
func (r *Resource[T]) GetAll(ctx context.Context) ([]T, error) {
	return Fetch[[]T](ctx, r.client, fmt.Sprintf("%s/Get%s", r.name, r.plural))
}

// GetByID fetches a single record.
func (r *Resource[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	out, err := Fetch[T](ctx, r.client, fmt.Sprintf("%s/Get%s/%d", r.name, r.name, id))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Insert creates a record.
func (r *Resource[T]) Insert(ctx context.Context, payload T) Result[T] {
	return Call[T](ctx, r.client, http.MethodPost, fmt.Sprintf("%s/Insert%s", r.name, r.name), payload)
}

// Update replaces a record.
func (r *Resource[T]) Update(ctx context.Context, id int64, payload T) Result[T] {
	return Call[T](ctx, r.client, http.MethodPut, fmt.Sprintf("%s/Update%s/%d", r.name, r.name, id), payload)
}

// Delete removes a record.
func (r *Resource[T]) Delete(ctx context.Context, id int64) Result[struct{}] {
	return Call[struct{}](ctx, r.client, http.MethodDelete, fmt.Sprintf("%s/Delete%s/%d", r.name, r.name, id), nil)
}
