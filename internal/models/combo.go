package models

// CourseCombo bundles two or more courses under a single discounted price.
// The backend stores both the selected course IDs and a human-readable
// comma-joined name string alongside them.
type CourseCombo struct {
	ID              int64         `json:"id"`
	Name            string        `json:"name"`
	CourseIDs       []int64       `json:"selectedCourseIds,omitempty"`
	CourseNames     string        `json:"courseNames,omitempty"`
	DiscountPercent int           `json:"discountPercent"`
	ValidFrom       Date          `json:"validFrom"`
	ValidTo         Date          `json:"validTo"`
	IsActive        bool          `json:"isActive"`
	Remarks         string        `json:"remarks,omitempty"`
	Courses         []ComboCourse `json:"comboCourses,omitempty"`
}

// ComboCourse is the combo↔course junction row.
type ComboCourse struct {
	ComboID        int64   `json:"comboId,omitempty"`
	CourseID       int64   `json:"courseId,omitempty"`
	LegacyCourseID int64   `json:"coursesId,omitempty"`
	Course         *Course `json:"course,omitempty"`
}

// ForeignID resolves the course reference: courseId first, then the legacy
// coursesId spelling.
func (cc ComboCourse) ForeignID() int64 {
	if cc.CourseID != 0 {
		return cc.CourseID
	}
	return cc.LegacyCourseID
}
