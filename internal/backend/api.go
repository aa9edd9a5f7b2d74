package backend

import "github.com/tims-dev/tims-admin-bff/internal/models"

// API bundles every entity client the gateway talks to. One shared Client
// carries the base URL, timeout and token injection for all of them.
type API struct {
	Departments   *Resource[models.Department]
	Designations  *Resource[models.Designation]
	Courses       *Resource[models.Course]
	Classrooms    *Resource[models.Classroom]
	Instructors   *Resource[models.Instructor]
	Employees     *Resource[models.Employee]
	Visitors      *Resource[models.Visitor]
	Admissions    *Resource[models.Admission]
	Offers        *Resource[models.Offer]
	Slots         *Resource[models.Slot]
	Schedules     *Resource[models.Schedule]
	DailySales    *Resource[models.DailySales]
	Batches       *BatchAPI
	Combos        *ComboAPI
	Registrations *RegistrationAPI
}

// NewAPI wires every entity client onto the shared HTTP client.
func NewAPI(client *Client) *API {
	return &API{
		Departments:   NewResource[models.Department](client, "Department", "Departments"),
		Designations:  NewResource[models.Designation](client, "Designation", "Designations"),
		Courses:       NewResource[models.Course](client, "Course", "Courses"),
		Classrooms:    NewResource[models.Classroom](client, "Classroom", "Classrooms"),
		Instructors:   NewResource[models.Instructor](client, "Instructor", "Instructors"),
		Employees:     NewResource[models.Employee](client, "Employee", "Employees"),
		Visitors:      NewResource[models.Visitor](client, "Visitor", "Visitors"),
		Admissions:    NewResource[models.Admission](client, "Admission", "Admissions"),
		Offers:        NewResource[models.Offer](client, "Offer", "Offers"),
		Slots:         NewResource[models.Slot](client, "Slot", "Slots"),
		Schedules:     NewResource[models.Schedule](client, "Schedule", "Schedules"),
		DailySales:    NewResource[models.DailySales](client, "DailySales", "DailySales"),
		Batches:       NewBatchAPI(client),
		Combos:        NewComboAPI(client),
		Registrations: NewRegistrationAPI(client),
	}
}
