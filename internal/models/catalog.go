package models

// Department is an organisational unit of the institute.
type Department struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code,omitempty"`
	IsActive bool   `json:"isActive"`
	Remarks  string `json:"remarks,omitempty"`
}

// Designation is a staff job title.
type Designation struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
	Remarks  string `json:"remarks,omitempty"`
}

// Slot is a bookable time window for classes.
type Slot struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	IsActive  bool   `json:"isActive"`
}

// Classroom is a physical room where batches run.
type Classroom struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	IsActive bool   `json:"isActive"`
	Remarks  string `json:"remarks,omitempty"`
}

// Instructor teaches courses.
type Instructor struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	DepartmentID  int64  `json:"departmentId,omitempty"`
	DesignationID int64  `json:"designationId,omitempty"`
	IsActive      bool   `json:"isActive"`
}

// Employee is a non-teaching staff member.
type Employee struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	DepartmentID  int64  `json:"departmentId,omitempty"`
	DesignationID int64  `json:"designationId,omitempty"`
	JoinedOn      Date   `json:"joinedOn"`
	IsActive      bool   `json:"isActive"`
	Remarks       string `json:"remarks,omitempty"`
}

// Visitor records a walk-in enquiry.
type Visitor struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone,omitempty"`
	Purpose   string `json:"purpose,omitempty"`
	VisitedOn Date   `json:"visitedOn"`
	Remarks   string `json:"remarks,omitempty"`
}
