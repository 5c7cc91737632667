package employee

import (
	"go-empms/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer middleware.Enforcer) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("", middleware.RBACAuthorize(enforcer, "employee", "read"), h.GetAll)
		employees.GET("/options", middleware.RBACAuthorize(enforcer, "employee", "read"), h.GetOptions)
		employees.POST("", middleware.RBACAuthorize(enforcer, "employee", "create"), h.Create)
		employees.DELETE("/:id", middleware.RBACAuthorize(enforcer, "employee", "delete"), h.Delete)
	}

	profile := r.Group("/profile")
	profile.Use(middleware.AuthMiddleware())
	{
		profile.GET("", middleware.RBACAuthorize(enforcer, "profile", "read"), h.GetProfile)
		profile.PUT("", middleware.RBACAuthorize(enforcer, "profile", "update"), h.UpdateProfile)
	}
}
