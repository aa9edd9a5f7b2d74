package form

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tims-dev/tims-admin-bff/internal/backend"
	"github.com/tims-dev/tims-admin-bff/internal/models"
)

type courseAPIStub struct {
	existing     *models.Course
	lastInserted *models.Course
}

func (s *courseAPIStub) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	return s.existing, nil
}

func (s *courseAPIStub) Insert(ctx context.Context, payload models.Course) backend.Result[models.Course] {
	s.lastInserted = &payload
	return backend.Result[models.Course]{IsSuccess: true, Message: "course created", Data: payload}
}

func (s *courseAPIStub) Update(ctx context.Context, id int64, payload models.Course) backend.Result[models.Course] {
	return backend.Result[models.Course]{IsSuccess: true, Message: "course updated", Data: payload}
}

type courseOptionsStub struct{}

func (courseOptionsStub) Instructors(ctx context.Context) ([]models.Instructor, error) {
	return []models.Instructor{{ID: 1, Name: "Rahim"}, {ID: 2, Name: "Karim"}}, nil
}

func (courseOptionsStub) Classrooms(ctx context.Context) ([]models.Classroom, error) {
	return []models.Classroom{{ID: 1, Name: "Lab A"}}, nil
}

func TestCourseFormAddInstructorDefaultsPrimary(t *testing.T) {
	f := NewCourseForm(&courseAPIStub{}, courseOptionsStub{}, nil)
	require.NoError(t, f.Load(context.Background(), 0))

	assert.True(t, f.AddInstructor(1))
	assert.False(t, f.AddInstructor(1))

	records := f.Instructors.Records()
	require.Len(t, records, 1)
	assert.True(t, records[0].IsPrimaryInstructor)
	require.NotNil(t, records[0].Instructor)
	assert.Equal(t, "Rahim", records[0].Instructor.Name)
}

func TestCourseFormAddClassroomDefaultsAvailable(t *testing.T) {
	f := NewCourseForm(&courseAPIStub{}, courseOptionsStub{}, nil)
	require.NoError(t, f.Load(context.Background(), 0))

	assert.True(t, f.AddClassroom(1))

	records := f.Classrooms.Records()
	require.Len(t, records, 1)
	assert.True(t, records[0].IsAvailable)
}

func TestCourseFormLoadEditReconcilesJunctions(t *testing.T) {
	api := &courseAPIStub{existing: &models.Course{
		ID:   3,
		Name: "Web Design",
		Instructors: []models.CourseInstructor{
			{InstructorID: 2, IsPrimaryInstructor: false},
		},
	}}
	f := NewCourseForm(api, courseOptionsStub{}, nil)

	require.NoError(t, f.Load(context.Background(), 3))

	require.Equal(t, []int64{2}, f.Instructors.IDs())
	assert.False(t, f.Instructors.Records()[0].IsPrimaryInstructor)
}

func TestCourseFormSubmitCarriesJunctionRows(t *testing.T) {
	api := &courseAPIStub{}
	f := NewCourseForm(api, courseOptionsStub{}, nil)
	require.NoError(t, f.Load(context.Background(), 0))
	f.Values = CourseValues{Name: "Web Design", IsActive: true}
	f.AddInstructor(1)
	f.AddClassroom(1)

	result := f.Submit(context.Background())

	require.True(t, result.IsSuccess)
	require.NotNil(t, api.lastInserted)
	assert.Len(t, api.lastInserted.Instructors, 1)
	assert.Len(t, api.lastInserted.Classrooms, 1)
}
