package app

import (
	"database/sql"
	"os"
	"path/filepath"

	"go-empms/internal/attendance"
	"go-empms/internal/auth"
	"go-empms/internal/employee"
	"go-empms/internal/messaging/kafka"
	"go-empms/internal/payroll"
	"go-empms/internal/payrollstructure"
	"go-empms/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	attendanceRepo := attendance.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	structureRepo := payrollstructure.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	modelPath := os.Getenv("RBAC_MODEL_PATH")
	if modelPath == "" {
		modelPath = filepath.Join("internal", "rbac", "model.conf")
	}
	policyPath := os.Getenv("RBAC_POLICY_PATH")
	if policyPath == "" {
		policyPath = filepath.Join("internal", "rbac", "policy.csv")
	}
	enforcer, err := rbac.NewEnforcer(modelPath, policyPath)
	if err != nil {
		return err
	}

	// --- Services ---
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, outboxRepo, rdb)
	authService := auth.NewService(employeeRepo, employeeService)
	attendanceService := attendance.NewServiceWithOutbox(db, attendanceRepo, outboxRepo)
	structureService := payrollstructure.NewService(db, structureRepo, employeeRepo)
	payrollService := payroll.NewService(employeeRepo, structureRepo, attendanceRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	employeeHandler := employee.NewHandler(employeeService)
	attendanceHandler := attendance.NewHandlerWithRedis(attendanceService, rdb)
	structureHandler := payrollstructure.NewHandlerWithRedis(structureService, rdb)
	payrollHandler := payroll.NewHandler(payrollService, rdb)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		employee.RegisterRoutes(api, employeeHandler, enforcer)
		attendance.RegisterRoutes(api, attendanceHandler, enforcer, rdb)
		payrollstructure.RegisterRoutes(api, structureHandler, enforcer, rdb)
		payroll.RegisterRoutes(api, payrollHandler, enforcer)
	}

	return nil
}
