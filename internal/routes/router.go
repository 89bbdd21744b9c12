package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/campus_management/internal/auth"
	"github.com/campus_management/internal/handlers"
)

// Deps 汇集了路由注册所需的全部处理器与中间件，由 main 显式装配
type Deps struct {
	Auth       *auth.Middleware
	AuthH      *handlers.AuthHandler
	RoleH      *handlers.RoleHandler
	StudentH   *handlers.StudentHandler
	ClassroomH *handlers.ClassroomHandler
	PaymentH   *handlers.PaymentHandler
	CacheH     *handlers.CacheHandler
	TestH      *handlers.TestHandler
}

// SetupRouter 创建 gin 引擎并注册全部路由
func SetupRouter(deps Deps) *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())

	// Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	SetupTestRoutes(api, deps)
	SetupAuthRoutes(api, deps)
	SetupStudentRoutes(api, deps)
	SetupPaymentRoutes(api, deps)
	SetupRoleRoutes(api, deps)
	SetupClassroomRoutes(api, deps)
	SetupCacheRoutes(api, deps)

	return router
}

// SetupTestRoutes 注册无需认证的连通性探测路由
func SetupTestRoutes(router *gin.RouterGroup, deps Deps) {
	testGroup := router.Group("/test")
	{
		testGroup.GET("/ping", deps.TestH.Ping)
		testGroup.GET("/hello", deps.TestH.Hello)
		testGroup.GET("/time", deps.TestH.Time)
	}
}
