package events

import "time"

const AttendanceCompletedTopic = "ems.attendance.completed.v1"

// AttendanceCompletedEvent is emitted once a day reaches its terminal
// clocked_out state, for downstream payroll consumers.
type AttendanceCompletedEvent struct {
	EventType    string    `json:"event_type"`
	AttendanceID string    `json:"attendance_id"`
	EmployeeID   string    `json:"employee_id"`
	Date         string    `json:"date"`
	TotalMinutes int       `json:"total_minutes"`
	OccurredAt   time.Time `json:"occurred_at"`
}
