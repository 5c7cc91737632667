package attendance

import (
	"go-empms/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer middleware.Enforcer, rdb *redis.Client) {
	attendances := r.Group("/attendances")
	attendances.Use(middleware.AuthMiddleware())
	{
		mark := middleware.RateLimitByEmployee(1, 3)
		attendances.POST("/clock-in",
			mark,
			middleware.RBACAuthorize(enforcer, "attendance", "create"),
			middleware.Idempotency(rdb),
			h.ClockIn,
		)
		attendances.POST("/clock-out",
			mark,
			middleware.RBACAuthorize(enforcer, "attendance", "create"),
			middleware.Idempotency(rdb),
			h.ClockOut,
		)
		attendances.GET("/today", middleware.RBACAuthorize(enforcer, "attendance", "read"), h.GetToday)
		attendances.GET("/history", middleware.RBACAuthorize(enforcer, "attendance", "read"), h.GetHistory)
		attendances.GET("", middleware.RBACAuthorize(enforcer, "attendance", "read_all"), h.GetAll)
	}
}
