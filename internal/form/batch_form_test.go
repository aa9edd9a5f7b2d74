package form

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tims-dev/tims-admin-bff/internal/backend"
	"github.com/tims-dev/tims-admin-bff/internal/models"
)

type batchAPIStub struct {
	existing     *models.Batch
	getErr       error
	names        map[int64]string
	nameErr      error
	lastInserted *models.Batch
	lastUpdated  *models.Batch
}

func (s *batchAPIStub) GetByID(ctx context.Context, id int64) (*models.Batch, error) {
	return s.existing, s.getErr
}

func (s *batchAPIStub) GenerateName(ctx context.Context, courseID int64) (string, error) {
	if s.nameErr != nil {
		return "", s.nameErr
	}
	return s.names[courseID], nil
}

func (s *batchAPIStub) Insert(ctx context.Context, payload models.Batch) backend.Result[models.Batch] {
	s.lastInserted = &payload
	return backend.Result[models.Batch]{IsSuccess: true, Message: "batch created", Data: payload}
}

func (s *batchAPIStub) Update(ctx context.Context, id int64, payload models.Batch) backend.Result[models.Batch] {
	s.lastUpdated = &payload
	return backend.Result[models.Batch]{IsSuccess: true, Message: "batch updated", Data: payload}
}

type batchOptionsStub struct {
	courses    []models.Course
	coursesErr error
}

func (s *batchOptionsStub) Courses(ctx context.Context) ([]models.Course, error) {
	return s.courses, s.coursesErr
}

func (s *batchOptionsStub) Instructors(ctx context.Context) ([]models.Instructor, error) {
	return []models.Instructor{{ID: 1, Name: "Rahim"}}, nil
}

func (s *batchOptionsStub) Classrooms(ctx context.Context) ([]models.Classroom, error) {
	return []models.Classroom{{ID: 1, Name: "Lab A"}}, nil
}

func (s *batchOptionsStub) Schedules(ctx context.Context) ([]models.Schedule, error) {
	return []models.Schedule{
		{ID: 11, Day: "Sunday", SlotID: 1},
		{ID: 12, Day: "Tuesday", SlotID: 2},
	}, nil
}

func TestBatchFormSelectCourseOverwritesManualName(t *testing.T) {
	api := &batchAPIStub{names: map[int64]string{7: "CS101-B3"}}
	f := NewBatchForm(api, &batchOptionsStub{}, nil)
	require.NoError(t, f.Load(context.Background(), 0))

	f.Values.Name = "My Custom Batch"
	require.NoError(t, f.SelectCourse(context.Background(), 7))
	assert.Equal(t, "CS101-B3", f.Values.Name)

	// Re-selecting the same course after another manual edit overwrites again.
	f.Values.Name = "Edited Again"
	require.NoError(t, f.SelectCourse(context.Background(), 7))
	assert.Equal(t, "CS101-B3", f.Values.Name)
}

func TestBatchFormLoadFailureSurfacesLoadError(t *testing.T) {
	api := &batchAPIStub{}
	options := &batchOptionsStub{coursesErr: errors.New("boom")}
	f := NewBatchForm(api, options, nil)

	err := f.Load(context.Background(), 0)

	require.Error(t, err)
	assert.Equal(t, "failed to load batch form data", f.LoadErr())
}

func TestBatchFormLoadEditReconcilesSchedules(t *testing.T) {
	api := &batchAPIStub{existing: &models.Batch{
		ID:       5,
		Name:     "CS101-B1",
		CourseID: 7,
		IsActive: true,
		Schedules: []models.BatchSchedule{
			{ScheduleID: 11},
			{LegacyScheduleID: 12},
		},
	}}
	f := NewBatchForm(api, &batchOptionsStub{}, nil)

	require.NoError(t, f.Load(context.Background(), 5))

	assert.Equal(t, "CS101-B1", f.Values.Name)
	assert.Equal(t, []int64{11, 12}, f.Selected.IDs())
	assert.Equal(t, PhaseEditing, f.Phase())
}

func TestBatchFormValidateRequiresSchedule(t *testing.T) {
	f := NewBatchForm(&batchAPIStub{}, &batchOptionsStub{}, nil)
	require.NoError(t, f.Load(context.Background(), 0))
	f.Values = BatchValues{Name: "CS101-B1", CourseID: 7}

	assert.False(t, f.Validate())
	assert.Equal(t, "select at least one schedule", f.Errors()["schedules"])

	f.AddSchedule(11)
	assert.True(t, f.Validate())
}

func TestBatchFormSubmitShapesJunctions(t *testing.T) {
	api := &batchAPIStub{}
	f := NewBatchForm(api, &batchOptionsStub{}, nil)
	require.NoError(t, f.Load(context.Background(), 0))
	f.Values = BatchValues{Name: "CS101-B1", CourseID: 7, IsActive: true}
	f.AddSchedule(11)
	f.AddSchedule(12)
	f.AddSchedule(11)

	result := f.Submit(context.Background())

	require.True(t, result.IsSuccess)
	require.NotNil(t, api.lastInserted)
	require.Len(t, api.lastInserted.Schedules, 2)
	assert.Equal(t, int64(11), api.lastInserted.Schedules[0].ScheduleID)
	assert.Equal(t, int64(12), api.lastInserted.Schedules[1].ScheduleID)
}

func TestBatchFormSubmitInvalidKeepsValues(t *testing.T) {
	f := NewBatchForm(&batchAPIStub{}, &batchOptionsStub{}, nil)
	require.NoError(t, f.Load(context.Background(), 0))
	f.Values.Name = "Unsaved"

	result := f.Submit(context.Background())

	assert.False(t, result.IsSuccess)
	assert.Equal(t, "Unsaved", f.Values.Name)
	assert.Equal(t, PhaseEditing, f.Phase())
}

func TestParseID(t *testing.T) {
	assert.Equal(t, int64(42), ParseID("42"))
	assert.Equal(t, int64(0), ParseID(""))
	assert.Equal(t, int64(0), ParseID("abc"))
}
