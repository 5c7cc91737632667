package attendance

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	attendanceerrors "go-empms/internal/attendance/errors"
	"go-empms/internal/events"
	"go-empms/internal/messaging/kafka"
	"go-empms/internal/shared/contextutil"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service interface {
	ClockIn(ctx context.Context, employeeID string) (AttendanceResponse, error)
	ClockOut(ctx context.Context, employeeID string) (AttendanceResponse, error)
	GetToday(ctx context.Context, employeeID string) (TodayResponse, error)
	GetHistory(ctx context.Context, employeeID string, limit int) ([]AttendanceResponse, error)
	GetAll(ctx context.Context, page, pageSize int) ([]AttendanceResponse, int64, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func NewServiceWithOutbox(db *sql.DB, repo Repository, outboxRepo kafka.OutboxRepository) Service {
	return &service{db: db, repo: repo, outbox: outboxRepo}
}

// today is the server's UTC calendar date, YYYY-MM-DD.
func today(now time.Time) string {
	return now.UTC().Format("2006-01-02")
}

// ClockIn creates today's record. The check and the insert run inside
// one transaction, and the unique (employee_id, attendance_date) index
// backstops it: of two concurrent calls exactly one row wins and the
// other caller gets AlreadyClockedIn.
func (s *service) ClockIn(ctx context.Context, employeeID string) (AttendanceResponse, error) {
	empUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := time.Now().UTC()
	date := today(now)

	existing, err := qtx.FindByEmployeeAndDate(ctx, employeeID, date)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return AttendanceResponse{}, err
	}
	if err == nil && existing != nil {
		if existing.ClockOut != nil {
			// Terminal for the day; no same-day re-entry
			return AttendanceResponse{}, attendanceerrors.ErrAlreadyClockedOut
		}
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyClockedIn
	}

	row := &Attendance{
		ID:             uuid.New(),
		EmployeeID:     empUUID,
		AttendanceDate: date,
		ClockIn:        now,
	}

	if err := qtx.Create(ctx, row); err != nil {
		return AttendanceResponse{}, mapCreateError(err)
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, mapCreateError(err)
	}
	return mapToResponse(*row), nil
}

// ClockOut moves today's record to its terminal state and fixes
// total_minutes as the minute-rounded difference. The guarded update in
// Complete is the authoritative check: when a concurrent caller closed
// the row first, zero rows match and the loser gets AlreadyClockedOut.
func (s *service) ClockOut(ctx context.Context, employeeID string) (AttendanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := time.Now().UTC()
	date := today(now)

	row, err := qtx.FindByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrNotClockedIn
		}
		return AttendanceResponse{}, err
	}
	if row.ClockOut != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyClockedOut
	}
	if !now.After(row.ClockIn) {
		return AttendanceResponse{}, attendanceerrors.ErrClockOutBeforeClockIn
	}

	row.ClockOut = &now
	row.TotalMinutes = int(now.Sub(row.ClockIn).Round(time.Minute) / time.Minute)

	if err := qtx.Complete(ctx, row); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrAlreadyClockedOut
		}
		return AttendanceResponse{}, err
	}

	if s.outbox != nil {
		event := events.AttendanceCompletedEvent{
			EventType:    "attendance.completed",
			AttendanceID: row.ID.String(),
			EmployeeID:   row.EmployeeID.String(),
			Date:         row.AttendanceDate,
			TotalMinutes: row.TotalMinutes,
			OccurredAt:   now,
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return AttendanceResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.New().String(),
			RequestID:     contextutil.GetRequestID(ctx),
			AggregateType: "attendance",
			AggregateID:   row.ID.String(),
			EventType:     event.EventType,
			Topic:         events.AttendanceCompletedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			return AttendanceResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) GetToday(ctx context.Context, employeeID string) (TodayResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return TodayResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	date := today(time.Now())

	row, err := s.repo.FindByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TodayResponse{Date: date, Status: StatusNotMarked}, nil
		}
		return TodayResponse{}, err
	}

	resp := mapToResponse(*row)
	return TodayResponse{Date: date, Status: resp.Status, Record: &resp}, nil
}

func (s *service) GetHistory(ctx context.Context, employeeID string, limit int) ([]AttendanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, attendanceerrors.ErrInvalidEmployeeID
	}

	rows, err := s.repo.FindAllByEmployee(ctx, employeeID, limit)
	if err != nil {
		return nil, err
	}

	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func (s *service) GetAll(ctx context.Context, page, pageSize int) ([]AttendanceResponse, int64, error) {
	rows, total, err := s.repo.FindPage(ctx, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, total, nil
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:             a.ID.String(),
		EmployeeID:     a.EmployeeID.String(),
		AttendanceDate: a.AttendanceDate,
		ClockIn:        a.ClockIn.Format(time.RFC3339),
		TotalMinutes:   a.TotalMinutes,
		Status:         a.Status(),
	}
	if a.ClockOut != nil {
		v := a.ClockOut.Format(time.RFC3339)
		resp.ClockOut = &v
	}
	if a.Employee != nil {
		resp.EmployeeName = a.Employee.FullName
		resp.EmployeeEmail = a.Employee.Email
	}
	return resp
}
