package form

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tims-dev/tims-admin-bff/internal/backend"
	"github.com/tims-dev/tims-admin-bff/internal/models"
)

type comboAPISpy struct {
	existing       *models.CourseCombo
	taken          bool
	nameCheckCalls int
	lastInserted   *models.CourseCombo
}

func (s *comboAPISpy) GetByID(ctx context.Context, id int64) (*models.CourseCombo, error) {
	return s.existing, nil
}

func (s *comboAPISpy) IsNameTaken(ctx context.Context, name string, excludeID int64) (bool, error) {
	s.nameCheckCalls++
	return s.taken, nil
}

func (s *comboAPISpy) Insert(ctx context.Context, payload models.CourseCombo) backend.Result[models.CourseCombo] {
	s.lastInserted = &payload
	return backend.Result[models.CourseCombo]{IsSuccess: true, Message: "combo created", Data: payload}
}

func (s *comboAPISpy) Update(ctx context.Context, id int64, payload models.CourseCombo) backend.Result[models.CourseCombo] {
	return backend.Result[models.CourseCombo]{IsSuccess: true, Message: "combo updated", Data: payload}
}

type comboOptionsStub struct{}

func (comboOptionsStub) Courses(ctx context.Context) ([]models.Course, error) {
	return []models.Course{
		{ID: 1, Name: "Web Design"},
		{ID: 2, Name: "Graphics"},
		{ID: 3, Name: "Video Editing"},
	}, nil
}

func validComboValues() ComboValues {
	from, _ := models.ParseDate("2026-01-01")
	to, _ := models.ParseDate("2026-06-30")
	return ComboValues{Name: "Design Bundle", DiscountPercent: 20, ValidFrom: from, ValidTo: to, IsActive: true}
}

func TestComboFormUnderfilledSkipsNameProbe(t *testing.T) {
	api := &comboAPISpy{}
	f := NewComboForm(api, comboOptionsStub{}, nil)
	require.NoError(t, f.Load(context.Background(), 0))
	f.Values = validComboValues()
	f.ToggleCourse(1)

	assert.False(t, f.Validate(context.Background()))
	assert.Equal(t, "select at least 2 courses", f.Errors()["courses"])
	assert.Zero(t, api.nameCheckCalls)
}

func TestComboFormNameTaken(t *testing.T) {
	api := &comboAPISpy{taken: true}
	f := NewComboForm(api, comboOptionsStub{}, nil)
	require.NoError(t, f.Load(context.Background(), 0))
	f.Values = validComboValues()
	f.ToggleCourse(1)
	f.ToggleCourse(2)

	assert.False(t, f.Validate(context.Background()))
	assert.Equal(t, 1, api.nameCheckCalls)
	assert.Equal(t, "a combo with this name already exists", f.Errors()["name"])
}

func TestComboFormToggleFlipsSelection(t *testing.T) {
	f := NewComboForm(&comboAPISpy{}, comboOptionsStub{}, nil)
	require.NoError(t, f.Load(context.Background(), 0))

	f.ToggleCourse(1)
	f.ToggleCourse(2)
	f.ToggleCourse(1)

	assert.Equal(t, []int64{2}, f.Selected.IDs())
}

func TestComboFormSubmitJoinsCourseNames(t *testing.T) {
	api := &comboAPISpy{}
	f := NewComboForm(api, comboOptionsStub{}, nil)
	require.NoError(t, f.Load(context.Background(), 0))
	f.Values = validComboValues()
	f.ToggleCourse(1)
	f.ToggleCourse(3)

	result := f.Submit(context.Background())

	require.True(t, result.IsSuccess)
	require.NotNil(t, api.lastInserted)
	assert.Equal(t, []int64{1, 3}, api.lastInserted.CourseIDs)
	assert.Equal(t, "Web Design, Video Editing", api.lastInserted.CourseNames)
}

func TestComboFormLoadEditFallsBackToJunctionIDs(t *testing.T) {
	api := &comboAPISpy{existing: &models.CourseCombo{
		ID:   9,
		Name: "Old Bundle",
		Courses: []models.ComboCourse{
			{CourseID: 1},
			{LegacyCourseID: 2},
		},
	}}
	f := NewComboForm(api, comboOptionsStub{}, nil)

	require.NoError(t, f.Load(context.Background(), 9))
	assert.Equal(t, []int64{1, 2}, f.Selected.IDs())
}
