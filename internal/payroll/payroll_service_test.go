package payroll

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-empms/internal/attendance"
	"go-empms/internal/employee"
	employeeerrors "go-empms/internal/employee/errors"
	payrollerrors "go-empms/internal/payroll/errors"
	"go-empms/internal/payrollstructure"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeEmployeeRepo struct {
	findByIDFn func(ctx context.Context, id string) (*employee.Employee, error)
}

func (f *fakeEmployeeRepo) WithTx(tx *sql.Tx) employee.Repository { return f }
func (f *fakeEmployeeRepo) Create(ctx context.Context, emp *employee.Employee) error { return nil }
func (f *fakeEmployeeRepo) FindAll(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeRepo) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeEmployeeRepo) FindByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeEmployeeRepo) Update(ctx context.Context, emp *employee.Employee) error { return nil }
func (f *fakeEmployeeRepo) Delete(ctx context.Context, id string) error { return nil }

type fakeStructureRepo struct {
	findByIDFn func(ctx context.Context, id string) (*payrollstructure.PayrollStructure, error)
}

func (f *fakeStructureRepo) WithTx(tx *sql.Tx) payrollstructure.Repository { return f }
func (f *fakeStructureRepo) Create(ctx context.Context, s *payrollstructure.PayrollStructure) error {
	return nil
}
func (f *fakeStructureRepo) FindAll(ctx context.Context) ([]payrollstructure.PayrollStructure, error) {
	return nil, nil
}
func (f *fakeStructureRepo) FindByID(ctx context.Context, id string) (*payrollstructure.PayrollStructure, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeStructureRepo) Update(ctx context.Context, s *payrollstructure.PayrollStructure) error {
	return nil
}
func (f *fakeStructureRepo) DeleteHeads(ctx context.Context, structureID string) error { return nil }
func (f *fakeStructureRepo) Delete(ctx context.Context, id string) error { return nil }

type fakeAttendanceRepo struct {
	findByEmployeeBetweenFn func(ctx context.Context, employeeID, from, to string) ([]attendance.Attendance, error)
}

func (f *fakeAttendanceRepo) WithTx(tx *sql.Tx) attendance.Repository { return f }
func (f *fakeAttendanceRepo) Create(ctx context.Context, a *attendance.Attendance) error {
	return nil
}
func (f *fakeAttendanceRepo) FindByEmployeeAndDate(ctx context.Context, employeeID, date string) (*attendance.Attendance, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeAttendanceRepo) FindAllByEmployee(ctx context.Context, employeeID string, limit int) ([]attendance.Attendance, error) {
	return nil, nil
}
func (f *fakeAttendanceRepo) FindByEmployeeBetween(ctx context.Context, employeeID, from, to string) ([]attendance.Attendance, error) {
	return f.findByEmployeeBetweenFn(ctx, employeeID, from, to)
}
func (f *fakeAttendanceRepo) FindPage(ctx context.Context, page, pageSize int) ([]attendance.Attendance, int64, error) {
	return nil, 0, nil
}
func (f *fakeAttendanceRepo) Complete(ctx context.Context, a *attendance.Attendance) error { return nil }

func TestService_GetEmployeePayroll(t *testing.T) {
	employeeID := uuid.New()
	structureID := uuid.New()

	empRepo := &fakeEmployeeRepo{
		findByIDFn: func(ctx context.Context, id string) (*employee.Employee, error) {
			return &employee.Employee{ID: employeeID, PayrollStructureID: &structureID}, nil
		},
	}
	structRepo := &fakeStructureRepo{
		findByIDFn: func(ctx context.Context, id string) (*payrollstructure.PayrollStructure, error) {
			assert.Equal(t, structureID.String(), id)
			return &payrollstructure.PayrollStructure{ID: structureID, Name: "Standard Grade"}, nil
		},
	}

	var gotFrom, gotTo string
	now := time.Now().UTC()
	out := now
	attRepo := &fakeAttendanceRepo{
		findByEmployeeBetweenFn: func(ctx context.Context, eid, from, to string) ([]attendance.Attendance, error) {
			assert.Equal(t, employeeID.String(), eid)
			gotFrom, gotTo = from, to
			// two completed days plus one still open; the open day counts
			// toward attendance but adds no minutes
			return []attendance.Attendance{
				{ID: uuid.New(), ClockIn: now, ClockOut: &out, TotalMinutes: 480},
				{ID: uuid.New(), ClockIn: now, ClockOut: &out, TotalMinutes: 450},
				{ID: uuid.New(), ClockIn: now},
			}, nil
		},
	}

	svc := NewService(empRepo, structRepo, attRepo)
	resp, err := svc.GetEmployeePayroll(context.Background(), employeeID.String())
	assert.NoError(t, err)
	assert.Equal(t, 930, resp.TotalMinutes)
	assert.Equal(t, 3, resp.AttendanceCount)
	assert.Equal(t, "Standard Grade", resp.Structure.Name)

	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, first.Format("2006-01-02"), gotFrom)
	assert.Equal(t, first.AddDate(0, 1, -1).Format("2006-01-02"), gotTo)
	assert.Equal(t, gotFrom, resp.PeriodStart)
	assert.Equal(t, gotTo, resp.PeriodEnd)
}

func TestService_GetEmployeePayroll_NoStructureAssigned(t *testing.T) {
	empRepo := &fakeEmployeeRepo{
		findByIDFn: func(ctx context.Context, id string) (*employee.Employee, error) {
			return &employee.Employee{ID: uuid.New()}, nil
		},
	}

	svc := NewService(empRepo, &fakeStructureRepo{}, &fakeAttendanceRepo{})
	_, err := svc.GetEmployeePayroll(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, payrollerrors.ErrStructureNotAssigned)
}

func TestService_GetEmployeePayroll_DanglingStructure(t *testing.T) {
	structureID := uuid.New()
	empRepo := &fakeEmployeeRepo{
		findByIDFn: func(ctx context.Context, id string) (*employee.Employee, error) {
			return &employee.Employee{ID: uuid.New(), PayrollStructureID: &structureID}, nil
		},
	}
	structRepo := &fakeStructureRepo{
		findByIDFn: func(ctx context.Context, id string) (*payrollstructure.PayrollStructure, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewService(empRepo, structRepo, &fakeAttendanceRepo{})
	_, err := svc.GetEmployeePayroll(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, payrollerrors.ErrAssignedStructureMissing)
}

func TestService_GetEmployeePayroll_EmployeeNotFound(t *testing.T) {
	empRepo := &fakeEmployeeRepo{
		findByIDFn: func(ctx context.Context, id string) (*employee.Employee, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewService(empRepo, &fakeStructureRepo{}, &fakeAttendanceRepo{})
	_, err := svc.GetEmployeePayroll(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
}

func TestService_GetEmployeePayroll_NoAttendanceThisMonth(t *testing.T) {
	structureID := uuid.New()
	empRepo := &fakeEmployeeRepo{
		findByIDFn: func(ctx context.Context, id string) (*employee.Employee, error) {
			return &employee.Employee{ID: uuid.New(), PayrollStructureID: &structureID}, nil
		},
	}
	structRepo := &fakeStructureRepo{
		findByIDFn: func(ctx context.Context, id string) (*payrollstructure.PayrollStructure, error) {
			return &payrollstructure.PayrollStructure{ID: structureID, Name: "Standard Grade"}, nil
		},
	}
	attRepo := &fakeAttendanceRepo{
		findByEmployeeBetweenFn: func(ctx context.Context, eid, from, to string) ([]attendance.Attendance, error) {
			return nil, nil
		},
	}

	svc := NewService(empRepo, structRepo, attRepo)
	resp, err := svc.GetEmployeePayroll(context.Background(), uuid.New().String())
	assert.NoError(t, err)
	assert.Zero(t, resp.TotalMinutes)
	assert.Zero(t, resp.AttendanceCount)
}

func TestCurrentMonthWindow(t *testing.T) {
	from, to := currentMonthWindow(time.Date(2026, time.February, 14, 10, 0, 0, 0, time.UTC))
	assert.Equal(t, "2026-02-01", from)
	assert.Equal(t, "2026-02-28", to)

	from, to = currentMonthWindow(time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "2024-02-01", from)
	assert.Equal(t, "2024-02-29", to)
}
