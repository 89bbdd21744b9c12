package routes

import (
	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes 设置认证相关路由
func SetupAuthRoutes(router *gin.RouterGroup, deps Deps) {
	// 公共认证路由组 (登录/注册)
	publicAuthGroup := router.Group("/auth")
	{
		publicAuthGroup.POST("/login", deps.AuthH.Login)
		publicAuthGroup.POST("/register", deps.AuthH.Register)
	}

	// 受保护的认证路由组 (需要有效Token)
	protectedAuthGroup := router.Group("/auth")
	protectedAuthGroup.Use(deps.Auth.Authenticate())
	{
		protectedAuthGroup.POST("/refresh", deps.AuthH.Refresh)
		protectedAuthGroup.POST("/logout", deps.AuthH.Logout)
		protectedAuthGroup.GET("/me", deps.AuthH.Me)
		protectedAuthGroup.POST("/change-password", deps.AuthH.ChangePassword)
	}
}
