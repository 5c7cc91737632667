package payroll

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go-empms/internal/shared/apperror"
	"go-empms/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const payrollCacheTTL = 60 * time.Second

type Handler struct {
	service Service
	rdb     *redis.Client
}

func NewHandler(service Service, rdb *redis.Client) *Handler {
	return &Handler{service: service, rdb: rdb}
}

func (h *Handler) GetMyPayroll(c *gin.Context) {
	employeeID := c.GetString("employee_id")
	cacheKey := fmt.Sprintf("payroll:%s:%s", employeeID, time.Now().UTC().Format("2006-01"))

	if h.rdb != nil {
		if cached, err := h.rdb.Get(c.Request.Context(), cacheKey).Bytes(); err == nil {
			var resp PayrollResponse
			if json.Unmarshal(cached, &resp) == nil {
				response.Success(c, http.StatusOK, resp, nil)
				return
			}
		}
	}

	resp, err := h.service.GetEmployeePayroll(c.Request.Context(), employeeID)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	if h.rdb != nil {
		if payload, err := json.Marshal(resp); err == nil {
			if err := h.rdb.Set(c.Request.Context(), cacheKey, payload, payrollCacheTTL).Err(); err != nil {
				zap.L().Named("payroll").Warn("failed to cache payroll", zap.Error(err))
			}
		}
	}

	response.Success(c, http.StatusOK, resp, nil)
}
