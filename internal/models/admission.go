package models

// Registration captures an enquiry that paid the registration fee. Image and
// document files are attached through a multipart submit.
type Registration struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	CourseID     int64  `json:"courseId,omitempty"`
	ImagePath    string `json:"imagePath,omitempty"`
	DocumentPath string `json:"documentPath,omitempty"`
	RegisteredOn Date   `json:"registeredOn"`
	Remarks      string `json:"remarks,omitempty"`
}

// Admission converts a registration into a batch seat.
type Admission struct {
	ID             int64 `json:"id"`
	RegistrationID int64 `json:"registrationId"`
	BatchID        int64 `json:"batchId"`
	OfferID        int64 `json:"offerId,omitempty"`
	AdmittedOn     Date  `json:"admittedOn"`
	IsActive       bool  `json:"isActive"`
}

// DailySales is the per-day counter sheet a counselor files.
type DailySales struct {
	ID            int64   `json:"id"`
	Date          Date    `json:"date"`
	Visitors      int     `json:"visitors"`
	Registrations int     `json:"registrations"`
	Admissions    int     `json:"admissions"`
	Collection    float64 `json:"collection"`
	Remarks       string  `json:"remarks,omitempty"`
}
