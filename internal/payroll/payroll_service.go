package payroll

import (
	"context"
	"errors"
	"time"

	"go-empms/internal/attendance"
	"go-empms/internal/employee"
	employeeerrors "go-empms/internal/employee/errors"
	payrollerrors "go-empms/internal/payroll/errors"
	"go-empms/internal/payrollstructure"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service interface {
	GetEmployeePayroll(ctx context.Context, employeeID string) (PayrollResponse, error)
}

type service struct {
	employeeRepo   employee.Repository
	structureRepo  payrollstructure.Repository
	attendanceRepo attendance.Repository
}

func NewService(
	employeeRepo employee.Repository,
	structureRepo payrollstructure.Repository,
	attendanceRepo attendance.Repository,
) Service {
	return &service{
		employeeRepo:   employeeRepo,
		structureRepo:  structureRepo,
		attendanceRepo: attendanceRepo,
	}
}

// GetEmployeePayroll resolves the employee's assigned structure and
// aggregates this calendar month's attendance. Incomplete days (no
// clock-out yet) are counted but contribute zero minutes; that count
// behavior is the documented contract.
func (s *service) GetEmployeePayroll(ctx context.Context, employeeID string) (PayrollResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return PayrollResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	emp, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return PayrollResponse{}, err
	}

	if emp.PayrollStructureID == nil {
		return PayrollResponse{}, payrollerrors.ErrStructureNotAssigned
	}

	structure, err := s.structureRepo.FindByID(ctx, emp.PayrollStructureID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Structure was deleted after assignment; the reference dangles
			return PayrollResponse{}, payrollerrors.ErrAssignedStructureMissing
		}
		return PayrollResponse{}, err
	}

	from, to := currentMonthWindow(time.Now().UTC())

	records, err := s.attendanceRepo.FindByEmployeeBetween(ctx, employeeID, from, to)
	if err != nil {
		return PayrollResponse{}, err
	}

	totalMinutes := 0
	for _, record := range records {
		totalMinutes += record.TotalMinutes
	}

	return PayrollResponse{
		Structure:       payrollstructure.MapToResponse(*structure),
		PeriodStart:     from,
		PeriodEnd:       to,
		TotalMinutes:    totalMinutes,
		AttendanceCount: len(records),
	}, nil
}

// currentMonthWindow returns the inclusive [first, last] days of now's
// calendar month as YYYY-MM-DD strings.
func currentMonthWindow(now time.Time) (string, string) {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first.Format("2006-01-02"), last.Format("2006-01-02")
}
