package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/campus_management/internal/models"
)

// SetupStudentRoutes 设置学生相关路由，登录即可访问
func SetupStudentRoutes(router *gin.RouterGroup, deps Deps) {
	studentGroup := router.Group("/students")
	studentGroup.Use(deps.Auth.Authenticate())
	{
		studentGroup.GET("", deps.StudentH.GetStudents)
		studentGroup.POST("", deps.StudentH.CreateStudent)
		studentGroup.GET("/form-options", deps.StudentH.GetFormOptions)
		studentGroup.GET("/:id", deps.StudentH.GetStudentByID)
		studentGroup.PUT("/:id", deps.StudentH.UpdateStudent)
		studentGroup.DELETE("/:id", deps.StudentH.DeleteStudent)
	}
}

// SetupPaymentRoutes 设置缴费相关路由。
// 读取对 ADMIN/FINANCE/STUDENT 开放，写操作仅限 ADMIN/FINANCE。
func SetupPaymentRoutes(router *gin.RouterGroup, deps Deps) {
	paymentGroup := router.Group("/payments/records")
	paymentGroup.Use(deps.Auth.Authenticate())

	readGroup := paymentGroup.Group("")
	readGroup.Use(deps.Auth.RequireRoles(models.RoleKeyAdmin, models.RoleKeyFinance, models.RoleKeyStudent))
	{
		readGroup.GET("", deps.PaymentH.GetPayments)
		readGroup.GET("/stats", deps.PaymentH.GetStats)
		readGroup.GET("/student/:studentId", deps.PaymentH.GetPaymentsByStudent)
		readGroup.GET("/:id", deps.PaymentH.GetPaymentByID)
	}

	writeGroup := paymentGroup.Group("")
	writeGroup.Use(deps.Auth.RequireRoles(models.RoleKeyAdmin, models.RoleKeyFinance))
	{
		writeGroup.POST("", deps.PaymentH.CreatePayment)
		writeGroup.PUT("/:id", deps.PaymentH.UpdatePayment)
		writeGroup.DELETE("/:id", deps.PaymentH.DeletePayment)
		writeGroup.POST("/:id/pay", deps.PaymentH.MarkPaid)
		writeGroup.POST("/:id/refund", deps.PaymentH.Refund)
	}
}

// SetupRoleRoutes 设置角色相关路由，仅限系统管理员角色
func SetupRoleRoutes(router *gin.RouterGroup, deps Deps) {
	roleGroup := router.Group("/v1/roles")
	roleGroup.Use(deps.Auth.Authenticate())
	roleGroup.Use(deps.Auth.RequireRoles(models.RoleKeyAdmin, models.RoleKeySystemAdmin))
	{
		roleGroup.GET("", deps.RoleH.GetRoles)
		roleGroup.POST("", deps.RoleH.CreateRole)
		roleGroup.GET("/:id", deps.RoleH.GetRoleByID)
		roleGroup.PUT("/:id", deps.RoleH.UpdateRole)
		roleGroup.DELETE("/:id", deps.RoleH.DeleteRole)
		roleGroup.PATCH("/:id/status", deps.RoleH.ToggleRoleStatus)
		roleGroup.PUT("/users/:userId", deps.RoleH.SyncUserRoles)
	}
}

// SetupClassroomRoutes 设置教室相关路由。
// 查询对所有已登录用户开放，写操作仅限 ADMIN/ACADEMIC_ADMIN。
func SetupClassroomRoutes(router *gin.RouterGroup, deps Deps) {
	classroomGroup := router.Group("/v1/classrooms")
	classroomGroup.Use(deps.Auth.Authenticate())
	{
		classroomGroup.GET("", deps.ClassroomH.GetClassrooms)
		classroomGroup.GET("/available", deps.ClassroomH.GetAvailableClassrooms)
		classroomGroup.GET("/:id", deps.ClassroomH.GetClassroomByID)
		classroomGroup.GET("/:id/bookings", deps.ClassroomH.GetClassroomBookings)
		classroomGroup.POST("/:id/bookings", deps.ClassroomH.BookClassroom)
	}

	adminGroup := router.Group("/v1/classrooms")
	adminGroup.Use(deps.Auth.Authenticate())
	adminGroup.Use(deps.Auth.RequireRoles(models.RoleKeyAdmin, models.RoleKeyAcademicAdmin))
	{
		adminGroup.POST("", deps.ClassroomH.CreateClassroom)
		adminGroup.PUT("/:id", deps.ClassroomH.UpdateClassroom)
		adminGroup.DELETE("/:id", deps.ClassroomH.DeleteClassroom)
	}
}

// SetupCacheRoutes 设置缓存管理路由，仅限系统管理员角色
func SetupCacheRoutes(router *gin.RouterGroup, deps Deps) {
	cacheGroup := router.Group("/v1/cache")
	cacheGroup.Use(deps.Auth.Authenticate())
	cacheGroup.Use(deps.Auth.RequireRoles(models.RoleKeyAdmin, models.RoleKeySystemAdmin))
	{
		cacheGroup.GET("/info", deps.CacheH.GetInfo)
		cacheGroup.GET("/stats", deps.CacheH.GetStats)
		cacheGroup.GET("/health", deps.CacheH.GetHealth)
		cacheGroup.POST("/clear", deps.CacheH.Clear)
		cacheGroup.POST("/warm", deps.CacheH.Warm)
	}
}
