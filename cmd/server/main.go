package main

import (
	"log"
	"time"

	"github.com/campus_management/configs"
	_ "github.com/campus_management/docs" // swagger 文档注册
	"github.com/campus_management/internal/auth"
	"github.com/campus_management/internal/handlers"
	"github.com/campus_management/internal/repositories"
	"github.com/campus_management/internal/routes"
	"github.com/campus_management/internal/services"
	"github.com/campus_management/pkg/cache"
	"github.com/campus_management/pkg/db"
)

// @title 校园管理系统 API
// @version 1.0
// @description 校园管理后端：认证、学生、教室、角色、缴费与缓存管理接口
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	configs.LoadConfig()
	cfg := configs.AppConfig

	// 初始化数据库连接
	gormDB, err := db.InitDB(cfg.SQLitePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.CloseDB(gormDB)

	// 仓库层
	userRepo := repositories.NewGormUserRepository(gormDB)
	roleRepo := repositories.NewGormRoleRepository(gormDB)
	studentRepo := repositories.NewGormStudentRepository(gormDB)
	classroomRepo := repositories.NewGormClassroomRepository(gormDB)
	paymentRepo := repositories.NewGormPaymentRepository(gormDB)

	// Token服务与认证中间件
	tokenService := auth.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer,
		time.Duration(cfg.JWTExpirationHours)*time.Hour)
	authMiddleware := auth.NewMiddleware(tokenService)

	// 业务服务层
	cacheStore := cache.NewStore(30 * time.Minute)
	authService := services.NewAuthService(userRepo, tokenService)
	roleService := services.NewRoleService(roleRepo, userRepo)
	studentService := services.NewStudentService(studentRepo)
	classroomService := services.NewClassroomService(classroomRepo)
	paymentService := services.NewPaymentService(paymentRepo, studentRepo)
	cacheService := services.NewCacheService(cacheStore, roleRepo, classroomRepo)

	// 路由装配
	router := routes.SetupRouter(routes.Deps{
		Auth:       authMiddleware,
		AuthH:      handlers.NewAuthHandler(authService),
		RoleH:      handlers.NewRoleHandler(roleService),
		StudentH:   handlers.NewStudentHandler(studentService),
		ClassroomH: handlers.NewClassroomHandler(classroomService),
		PaymentH:   handlers.NewPaymentHandler(paymentService),
		CacheH:     handlers.NewCacheHandler(cacheService),
		TestH:      handlers.NewTestHandler(),
	})

	log.Printf("Server starting on port %s...", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
