package attendance

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attendance) error
	FindByEmployeeAndDate(ctx context.Context, employeeID, date string) (*Attendance, error)
	FindAllByEmployee(ctx context.Context, employeeID string, limit int) ([]Attendance, error)
	FindByEmployeeBetween(ctx context.Context, employeeID, from, to string) ([]Attendance, error)
	FindPage(ctx context.Context, page, pageSize int) ([]Attendance, int64, error)
	Complete(ctx context.Context, a *Attendance) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

// conn returns a session bound to the open transaction when one is set,
// so reads and writes share the caller's tx instead of the pool.
func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.conn(ctx).Create(a).Error
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeID, date string) (*Attendance, error) {
	var a Attendance
	err := r.conn(ctx).
		Where("employee_id = ?", employeeID).
		Where("attendance_date = ?", date).
		First(&a).Error
	return &a, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string, limit int) ([]Attendance, error) {
	var rows []Attendance
	q := r.conn(ctx).
		Where("employee_id = ?", employeeID).
		Order("attendance_date DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&rows).Error
	return rows, err
}

func (r *repository) FindByEmployeeBetween(ctx context.Context, employeeID, from, to string) ([]Attendance, error) {
	var rows []Attendance
	err := r.conn(ctx).
		Where("employee_id = ?", employeeID).
		Where("attendance_date BETWEEN ? AND ?", from, to).
		Order("attendance_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindPage(ctx context.Context, page, pageSize int) ([]Attendance, int64, error) {
	var total int64
	if err := r.conn(ctx).Model(&Attendance{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []Attendance
	err := r.conn(ctx).
		Preload("Employee").
		Order("attendance_date DESC, clock_in DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&rows).Error
	return rows, total, err
}

// Complete closes the day with a conditional write. The clock_out IS NULL
// guard makes the transition single-shot: a row already closed by a
// concurrent caller matches nothing and surfaces as ErrRecordNotFound.
func (r *repository) Complete(ctx context.Context, a *Attendance) error {
	res := r.conn(ctx).Model(&Attendance{}).
		Where("id = ?", a.ID).
		Where("clock_out IS NULL").
		Updates(map[string]interface{}{
			"clock_out":     a.ClockOut,
			"total_minutes": a.TotalMinutes,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
