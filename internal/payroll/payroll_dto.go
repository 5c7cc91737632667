package payroll

import "go-empms/internal/payrollstructure"

// PayrollResponse is the month-to-date view: the assigned structure
// with raw head definitions plus the minutes worked this calendar
// month. Pay computation itself happens downstream.
type PayrollResponse struct {
	Structure       payrollstructure.StructureResponse `json:"payroll_structure"`
	PeriodStart     string                             `json:"period_start"`
	PeriodEnd       string                             `json:"period_end"`
	TotalMinutes    int                                `json:"total_minutes"`
	AttendanceCount int                                `json:"attendance_count"`
}
