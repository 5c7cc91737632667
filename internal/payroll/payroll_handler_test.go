package payroll_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-empms/internal/payroll"
	payrollerrors "go-empms/internal/payroll/errors"
	"go-empms/internal/payrollstructure"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	getEmployeePayrollFn func(ctx context.Context, employeeID string) (payroll.PayrollResponse, error)
}

func (f *fakeService) GetEmployeePayroll(ctx context.Context, employeeID string) (payroll.PayrollResponse, error) {
	return f.getEmployeePayrollFn(ctx, employeeID)
}

func cacheKeyFor(employeeID string) string {
	return fmt.Sprintf("payroll:%s:%s", employeeID, time.Now().UTC().Format("2006-01"))
}

func TestHandler_GetMyPayroll(t *testing.T) {
	gin.SetMode(gin.TestMode)
	employeeID := uuid.New().String()

	resp := payroll.PayrollResponse{
		Structure:       payrollstructure.StructureResponse{ID: uuid.New().String(), Name: "Standard Grade"},
		TotalMinutes:    930,
		AttendanceCount: 3,
	}
	payload, _ := json.Marshal(resp)

	rdb, rmock := redismock.NewClientMock()
	rmock.ExpectGet(cacheKeyFor(employeeID)).RedisNil()
	rmock.ExpectSet(cacheKeyFor(employeeID), payload, 60*time.Second).SetVal("OK")

	svc := &fakeService{
		getEmployeePayrollFn: func(ctx context.Context, eid string) (payroll.PayrollResponse, error) {
			assert.Equal(t, employeeID, eid)
			return resp, nil
		},
	}

	h := payroll.NewHandler(svc, rdb)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", employeeID)
	c.Request = httptest.NewRequest(http.MethodGet, "/payroll/me", nil)
	h.GetMyPayroll(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "\"total_minutes\":930")
	assert.Contains(t, w.Body.String(), "\"attendance_count\":3")
	assert.NoError(t, rmock.ExpectationsWereMet())
}

func TestHandler_GetMyPayroll_CacheHit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	employeeID := uuid.New().String()

	resp := payroll.PayrollResponse{TotalMinutes: 480, AttendanceCount: 1}
	payload, _ := json.Marshal(resp)

	rdb, rmock := redismock.NewClientMock()
	rmock.ExpectGet(cacheKeyFor(employeeID)).SetVal(string(payload))

	svc := &fakeService{
		getEmployeePayrollFn: func(ctx context.Context, eid string) (payroll.PayrollResponse, error) {
			t.Fatal("service must not be called on a cache hit")
			return payroll.PayrollResponse{}, nil
		},
	}

	h := payroll.NewHandler(svc, rdb)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", employeeID)
	c.Request = httptest.NewRequest(http.MethodGet, "/payroll/me", nil)
	h.GetMyPayroll(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "\"total_minutes\":480")
	assert.NoError(t, rmock.ExpectationsWereMet())
}

func TestHandler_GetMyPayroll_NotAssigned(t *testing.T) {
	gin.SetMode(gin.TestMode)
	employeeID := uuid.New().String()

	rdb, rmock := redismock.NewClientMock()
	rmock.ExpectGet(cacheKeyFor(employeeID)).RedisNil()

	svc := &fakeService{
		getEmployeePayrollFn: func(ctx context.Context, eid string) (payroll.PayrollResponse, error) {
			return payroll.PayrollResponse{}, payrollerrors.ErrStructureNotAssigned
		},
	}

	h := payroll.NewHandler(svc, rdb)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", employeeID)
	c.Request = httptest.NewRequest(http.MethodGet, "/payroll/me", nil)
	h.GetMyPayroll(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not assigned")
	assert.NoError(t, rmock.ExpectationsWereMet())
}
