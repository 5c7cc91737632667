package payroll

import (
	"go-empms/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer middleware.Enforcer) {
	payrolls := r.Group("/payroll")
	payrolls.Use(middleware.AuthMiddleware())
	{
		payrolls.GET("/me", middleware.RBACAuthorize(enforcer, "payroll", "read"), h.GetMyPayroll)
	}
}
