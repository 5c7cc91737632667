package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	employeeerrors "go-empms/internal/employee/errors"
	"go-empms/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeRepo struct {
	withTxFn      func(tx *sql.Tx) Repository
	createFn      func(ctx context.Context, emp *Employee) error
	findAllFn     func(ctx context.Context) ([]Employee, error)
	findByIDFn    func(ctx context.Context, id string) (*Employee, error)
	findByEmailFn func(ctx context.Context, email string) (*Employee, error)
	updateFn      func(ctx context.Context, emp *Employee) error
	deleteFn      func(ctx context.Context, id string) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}
func (f *fakeRepo) Create(ctx context.Context, emp *Employee) error { return f.createFn(ctx, emp) }
func (f *fakeRepo) FindAll(ctx context.Context) ([]Employee, error) { return f.findAllFn(ctx) }
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Employee, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) FindByEmail(ctx context.Context, email string) (*Employee, error) {
	return f.findByEmailFn(ctx, email)
}
func (f *fakeRepo) Update(ctx context.Context, emp *Employee) error { return f.updateFn(ctx, emp) }
func (f *fakeRepo) Delete(ctx context.Context, id string) error { return f.deleteFn(ctx, id) }

type fakeOutbox struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}
func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error { return nil }
func (f *fakeOutbox) MarkFailed(ctx context.Context, id string, reason string) error { return nil }

func TestService_Create(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	var saved Employee
	repo := &fakeRepo{}
	repo.createFn = func(ctx context.Context, emp *Employee) error { saved = *emp; return nil }

	svc := NewService(db, repo, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Create(context.Background(), CreateEmployeeRequest{
		FullName:    "Jordan Reed",
		Email:       "jordan@corp.test",
		Password:    "s3cret-pass",
		Role:        RoleEmployee,
		JoiningDate: "2026-03-15",
	})
	assert.NoError(t, err)
	assert.Equal(t, "Jordan Reed", resp.FullName)
	assert.Equal(t, RoleEmployee, resp.Role)
	assert.NotNil(t, resp.JoiningDate)
	assert.Equal(t, "2026-03-15", *resp.JoiningDate)

	// password stored hashed, never verbatim
	assert.NotEqual(t, "s3cret-pass", saved.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.Password), []byte("s3cret-pass")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_DuplicateEmail(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.createFn = func(ctx context.Context, emp *Employee) error {
		return &pgconn.PgError{Code: "23505", ConstraintName: "uq_employee_email"}
	}

	svc := NewService(db, repo, nil)
	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Create(context.Background(), CreateEmployeeRequest{
		FullName: "Jordan Reed",
		Email:    "jordan@corp.test",
		Password: "s3cret-pass",
		Role:     RoleEmployee,
	})
	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_BadJoiningDate(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, nil)
	_, err := svc.Create(context.Background(), CreateEmployeeRequest{
		FullName:    "Jordan Reed",
		Email:       "jordan@corp.test",
		Password:    "s3cret-pass",
		Role:        RoleEmployee,
		JoiningDate: "15-03-2026",
	})
	assert.ErrorIs(t, err, employeeerrors.ErrInvalidJoiningDate)
}

func TestService_Create_WritesOutboxEvent(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.createFn = func(ctx context.Context, emp *Employee) error { return nil }

	outbox := &fakeOutbox{}
	svc := NewServiceWithOutbox(db, repo, outbox, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err := svc.Create(context.Background(), CreateEmployeeRequest{
		FullName: "Jordan Reed",
		Email:    "jordan@corp.test",
		Password: "s3cret-pass",
		Role:     RoleAdmin,
	})
	assert.NoError(t, err)
	assert.Len(t, outbox.created, 1)
	assert.Equal(t, "employee.created", outbox.created[0].EventType)
	assert.Equal(t, kafka.OutboxStatusPending, outbox.created[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_GetOptions_CacheHit(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	rdb, rmock := redismock.NewClientMock()
	opts := []EmployeeOptionResponse{{ID: uuid.New().String(), FullName: "Jordan Reed"}}
	payload, _ := json.Marshal(opts)
	rmock.ExpectGet(optionsCacheKey).SetVal(string(payload))

	// repo must not be touched on a cache hit
	repo := &fakeRepo{}
	repo.findAllFn = func(ctx context.Context) ([]Employee, error) {
		t.Fatal("unexpected FindAll call")
		return nil, nil
	}

	svc := NewService(db, repo, rdb)
	got, err := svc.GetOptions(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, opts, got)
	assert.NoError(t, rmock.ExpectationsWereMet())
}

func TestService_GetOptions_CacheMiss(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	emp := Employee{ID: uuid.New(), FullName: "Jordan Reed"}
	opts := []EmployeeOptionResponse{{ID: emp.ID.String(), FullName: emp.FullName}}
	payload, _ := json.Marshal(opts)

	rdb, rmock := redismock.NewClientMock()
	rmock.ExpectGet(optionsCacheKey).RedisNil()
	rmock.ExpectSet(optionsCacheKey, payload, 5*time.Minute).SetVal("OK")

	repo := &fakeRepo{}
	repo.findAllFn = func(ctx context.Context) ([]Employee, error) { return []Employee{emp}, nil }

	svc := NewService(db, repo, rdb)
	got, err := svc.GetOptions(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, opts, got)
	assert.NoError(t, rmock.ExpectationsWereMet())
}

func TestService_UpdateProfile(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	employeeID := uuid.New()
	company := "Initech"

	var updated Employee
	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*Employee, error) {
		return &Employee{ID: employeeID, FullName: "Old Name", Email: "jordan@corp.test", Role: RoleEmployee}, nil
	}
	repo.updateFn = func(ctx context.Context, emp *Employee) error { updated = *emp; return nil }

	svc := NewService(db, repo, nil)
	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.UpdateProfile(context.Background(), employeeID.String(), UpdateProfileRequest{
		FullName: "New Name",
		Company:  &company,
	})
	assert.NoError(t, err)
	assert.Equal(t, "New Name", resp.FullName)
	assert.Equal(t, "New Name", updated.FullName)
	// email and role stay as stored
	assert.Equal(t, "jordan@corp.test", updated.Email)
	assert.Equal(t, RoleEmployee, updated.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_UpdateProfile_OmittedFieldsKeepStored(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	company := "Initech"
	department := "Accounts"

	var updated Employee
	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*Employee, error) {
		return &Employee{ID: uuid.New(), FullName: "Old Name", Company: &company, Department: &department}, nil
	}
	repo.updateFn = func(ctx context.Context, emp *Employee) error { updated = *emp; return nil }

	svc := NewService(db, repo, nil)
	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err := svc.UpdateProfile(context.Background(), uuid.New().String(), UpdateProfileRequest{
		FullName: "New Name",
	})
	assert.NoError(t, err)
	assert.Equal(t, "New Name", updated.FullName)
	// absent company/department stay as stored
	assert.Equal(t, &company, updated.Company)
	assert.Equal(t, &department, updated.Department)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_GetProfile_NotFound(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*Employee, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewService(db, repo, nil)
	_, err := svc.GetProfile(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
}

func TestService_Delete(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	employeeID := uuid.New()
	deleted := false
	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*Employee, error) {
		return &Employee{ID: employeeID}, nil
	}
	repo.deleteFn = func(ctx context.Context, id string) error {
		assert.Equal(t, employeeID.String(), id)
		deleted = true
		return nil
	}

	svc := NewService(db, repo, nil)
	mock.ExpectBegin()
	mock.ExpectCommit()
	err := svc.Delete(context.Background(), employeeID.String())
	assert.NoError(t, err)
	assert.True(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Delete_WithAttendanceRows(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*Employee, error) {
		return &Employee{ID: uuid.New()}, nil
	}
	repo.deleteFn = func(ctx context.Context, id string) error {
		return &pgconn.PgError{Code: "23503", ConstraintName: "fk_attendances_employee"}
	}

	svc := NewService(db, repo, nil)
	mock.ExpectBegin()
	mock.ExpectRollback()
	err := svc.Delete(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeHasRecords)
	assert.NoError(t, mock.ExpectationsWereMet())
}
