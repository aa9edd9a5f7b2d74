package models

// Schedule is a recurring class occurrence: a weekday paired with a time slot.
// Batches reference schedules by ID; the slot is joined in for display.
type Schedule struct {
	ID       int64  `json:"id"`
	Day      string `json:"day"`
	SlotID   int64  `json:"slotId"`
	IsActive bool   `json:"isActive"`
	Slot     *Slot  `json:"slot,omitempty"`
}

// Batch is a running instance of a course with an instructor, a classroom and
// a set of recurring schedules.
type Batch struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	CourseID     int64           `json:"courseId"`
	InstructorID int64           `json:"instructorId,omitempty"`
	ClassroomID  int64           `json:"classroomId,omitempty"`
	StartDate    Date            `json:"startDate"`
	EndDate      Date            `json:"endDate"`
	IsActive     bool            `json:"isActive"`
	Remarks      string          `json:"remarks,omitempty"`
	Schedules    []BatchSchedule `json:"batchSchedules,omitempty"`
}

// BatchSchedule is the batch↔schedule junction row. Older backend responses
// carry the foreign key as schedulesId instead of scheduleId; ForeignID is the
// single place that resolution order lives.
type BatchSchedule struct {
	BatchID          int64     `json:"batchId,omitempty"`
	ScheduleID       int64     `json:"scheduleId,omitempty"`
	LegacyScheduleID int64     `json:"schedulesId,omitempty"`
	Schedule         *Schedule `json:"schedule,omitempty"`
}

// ForeignID resolves the schedule reference: scheduleId first, then the
// legacy schedulesId spelling.
func (bs BatchSchedule) ForeignID() int64 {
	if bs.ScheduleID != 0 {
		return bs.ScheduleID
	}
	return bs.LegacyScheduleID
}
