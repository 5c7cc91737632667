package attendance

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusNotMarked  = "not_marked"
	StatusClockedIn  = "clocked_in"
	StatusClockedOut = "clocked_out"
)

type Attendance struct {
	ID             uuid.UUID    `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID     uuid.UUID    `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_attendance_employee_date"`
	AttendanceDate string       `gorm:"column:attendance_date;type:varchar(10);not null;uniqueIndex:uq_attendance_employee_date"`
	ClockIn        time.Time    `gorm:"column:clock_in;type:timestamptz;not null"`
	ClockOut       *time.Time   `gorm:"column:clock_out;type:timestamptz"`
	TotalMinutes   int          `gorm:"column:total_minutes;type:int;not null;default:0"`
	CreatedAt      time.Time    `gorm:"column:created_at"`
	UpdatedAt      time.Time    `gorm:"column:updated_at"`
	Employee       *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (Attendance) TableName() string {
	return "attendances"
}

// Status derives the day's state. A missing row is not_marked; rows are
// only ever created by a clock-in, so ClockIn is always set.
func (a Attendance) Status() string {
	if a.ClockOut != nil {
		return StatusClockedOut
	}
	return StatusClockedIn
}

type EmployeeRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string    `gorm:"column:full_name"`
	Email    string    `gorm:"column:email"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
