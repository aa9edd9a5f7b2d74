package backend

import (
	"context"
	"fmt"

	"github.com/tims-dev/tims-admin-bff/internal/models"
)

// BatchAPI extends the plain batch resource with the server-side batch-name
// generator the batch form calls on every course selection.
type BatchAPI struct {
	*Resource[models.Batch]
}

// NewBatchAPI builds the batch API.
func NewBatchAPI(client *Client) *BatchAPI {
	return &BatchAPI{Resource: NewResource[models.Batch](client, "Batch", "Batches")}
}

// GenerateName asks the backend for the suggested batch name derived from the
// selected course.
func (a *BatchAPI) GenerateName(ctx context.Context, courseID int64) (string, error) {
	return Fetch[string](ctx, a.client, fmt.Sprintf("Batch/GenerateBatchName/%d", courseID))
}
