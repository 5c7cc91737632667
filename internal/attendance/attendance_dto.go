package attendance

type AttendanceResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	EmployeeName   string  `json:"employee_name,omitempty"`
	EmployeeEmail  string  `json:"employee_email,omitempty"`
	AttendanceDate string  `json:"attendance_date"`
	ClockIn        string  `json:"clock_in"`
	ClockOut       *string `json:"clock_out,omitempty"`
	TotalMinutes   int     `json:"total_minutes"`
	Status         string  `json:"status"`
}

// TodayResponse reports the day's state even when no record exists yet.
type TodayResponse struct {
	Date   string              `json:"date"`
	Status string              `json:"status"`
	Record *AttendanceResponse `json:"record,omitempty"`
}
