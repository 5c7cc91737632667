package payrollstructure

import (
	"go-empms/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer middleware.Enforcer, rdb *redis.Client) {
	structures := r.Group("/payroll-structures")
	structures.Use(middleware.AuthMiddleware())
	{
		structures.GET("", middleware.RBACAuthorize(enforcer, "payroll_structure", "read"), h.GetAll)
		structures.GET("/:id", middleware.RBACAuthorize(enforcer, "payroll_structure", "read"), h.GetByID)
		structures.POST("",
			middleware.RBACAuthorize(enforcer, "payroll_structure", "create"),
			middleware.Idempotency(rdb),
			h.Create,
		)
		structures.PUT("/:id", middleware.RBACAuthorize(enforcer, "payroll_structure", "update"), h.Update)
		structures.DELETE("/:id", middleware.RBACAuthorize(enforcer, "payroll_structure", "delete"), h.Delete)
		structures.POST("/assign", middleware.RBACAuthorize(enforcer, "payroll_structure", "assign"), h.Assign)
	}
}
