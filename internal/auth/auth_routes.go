package auth

import (
	"go-empms/internal/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	authGroup := r.Group("/auth")
	{
		// Credential endpoints get a tight per-IP budget
		authGroup.POST("/register", middleware.RateLimitByIP(rate.Limit(1), 5), h.Register)
		authGroup.POST("/login", middleware.RateLimitByIP(rate.Limit(1), 5), h.Login)
		authGroup.POST("/refresh", h.Refresh)
		authGroup.GET("/me", middleware.AuthMiddleware(), h.GetMe)
	}
}
