package backend

import (
	"context"
	"fmt"
	"net/url"

	"github.com/tims-dev/tims-admin-bff/internal/models"
)

// ComboAPI extends the course-combo resource with the name-uniqueness probe
// the combo form runs before submitting.
type ComboAPI struct {
	*Resource[models.CourseCombo]
}

// NewComboAPI builds the course-combo API.
func NewComboAPI(client *Client) *ComboAPI {
	return &ComboAPI{Resource: NewResource[models.CourseCombo](client, "CourseCombo", "CourseCombos")}
}

// IsNameTaken checks whether another combo already uses the given name.
// excludeID scopes the check past the record being edited.
func (a *ComboAPI) IsNameTaken(ctx context.Context, name string, excludeID int64) (bool, error) {
	path := fmt.Sprintf("CourseCombo/CheckComboName?name=%s&excludeId=%d", url.QueryEscape(name), excludeID)
	return Fetch[bool](ctx, a.client, path)
}
