package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/campus_management/internal/auth"
	"github.com/campus_management/internal/handlers"
	"github.com/campus_management/internal/models"
	"github.com/campus_management/internal/repositories"
	"github.com/campus_management/internal/routes"
	"github.com/campus_management/internal/services"
	"github.com/campus_management/pkg/cache"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupTestRouter 在内存数据库上装配一套完整的路由用于端到端测试
func setupTestRouter(t *testing.T) (*gin.Engine, *auth.TokenService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := gormDB.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Student{},
		&models.Classroom{},
		&models.ClassroomBooking{},
		&models.PaymentRecord{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	userRepo := repositories.NewGormUserRepository(gormDB)
	roleRepo := repositories.NewGormRoleRepository(gormDB)
	studentRepo := repositories.NewGormStudentRepository(gormDB)
	classroomRepo := repositories.NewGormClassroomRepository(gormDB)
	paymentRepo := repositories.NewGormPaymentRepository(gormDB)

	tokens := auth.NewTokenService("test-secret", "campus_test", time.Hour)
	cacheStore := cache.NewStore(time.Minute)

	router := routes.SetupRouter(routes.Deps{
		Auth:       auth.NewMiddleware(tokens),
		AuthH:      handlers.NewAuthHandler(services.NewAuthService(userRepo, tokens)),
		RoleH:      handlers.NewRoleHandler(services.NewRoleService(roleRepo, userRepo)),
		StudentH:   handlers.NewStudentHandler(services.NewStudentService(studentRepo)),
		ClassroomH: handlers.NewClassroomHandler(services.NewClassroomService(classroomRepo)),
		PaymentH:   handlers.NewPaymentHandler(services.NewPaymentService(paymentRepo, studentRepo)),
		CacheH:     handlers.NewCacheHandler(services.NewCacheService(cacheStore, roleRepo, classroomRepo)),
		TestH:      handlers.NewTestHandler(),
	})
	return router, tokens, gormDB
}

// doJSON 发起一次 JSON 请求，token 为空表示匿名请求
func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// decodeBody 把响应体解析成通用 map 便于断言
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return body
}

// issueToken 直接签发一个带指定角色的 Token，绕过注册流程
func issueToken(t *testing.T, tokens *auth.TokenService, username string, roles ...string) string {
	t.Helper()
	token, err := tokens.Generate(&models.User{
		ID:       999,
		Username: username,
		Email:    username + "@test.local",
		Status:   models.UserStatusEnabled,
	}, roles)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

var aliceRegisterBody = map[string]interface{}{
	"username": "alice",
	"password": "Secr3t!",
	"email":    "a@x.com",
	"realName": "Alice",
}

func TestRegisterEndpoint(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/auth/register", "", aliceRegisterBody)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	if body["status"] != "success" {
		t.Errorf("status field = %v, want success", body["status"])
	}
	data, _ := body["data"].(map[string]interface{})
	if data == nil {
		t.Fatal("expected a data object")
	}
	if token, _ := data["token"].(string); token == "" {
		t.Error("expected a non-empty token")
	}
	userInfo, _ := data["userInfo"].(map[string]interface{})
	if userInfo == nil || userInfo["username"] != "alice" {
		t.Errorf("userInfo = %v, want username alice", data["userInfo"])
	}

	// 重复注册同一用户名必须返回错误包体
	w = doJSON(t, router, http.MethodPost, "/api/auth/register", "", aliceRegisterBody)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate register status = %d, want 400", w.Code)
	}
	errBody := decodeBody(t, w)
	if errBody["code"] != float64(http.StatusBadRequest) {
		t.Errorf("error code = %v, want 400", errBody["code"])
	}
	if msg, _ := errBody["message"].(string); msg == "" {
		t.Error("expected a non-empty error message")
	}
}

func TestLoginThenMe(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	doJSON(t, router, http.MethodPost, "/api/auth/register", "", aliceRegisterBody)

	w := doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "alice",
		"password": "Secr3t!",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, body: %s", w.Code, w.Body.String())
	}
	data, _ := decodeBody(t, w)["data"].(map[string]interface{})
	token, _ := data["token"].(string)
	if token == "" {
		t.Fatal("login should return a token")
	}

	w = doJSON(t, router, http.MethodGet, "/api/auth/me", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("me status = %d, body: %s", w.Code, w.Body.String())
	}
	me, _ := decodeBody(t, w)["data"].(map[string]interface{})
	if me == nil || me["username"] != "alice" {
		t.Errorf("me data = %v, want username alice", me)
	}
	if _, leaked := me["passwordHash"]; leaked {
		t.Error("me response must not expose the password hash")
	}
}

func TestLoginWrongPasswordEndpoint(t *testing.T) {
	router, _, _ := setupTestRouter(t)
	doJSON(t, router, http.MethodPost, "/api/auth/register", "", aliceRegisterBody)

	w := doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "alice",
		"password": "wrong",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestMeWithoutToken(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/auth/me", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	router, _, _ := setupTestRouter(t)
	doJSON(t, router, http.MethodPost, "/api/auth/register", "", aliceRegisterBody)

	w := doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "alice",
		"password": "Secr3t!",
	})
	data, _ := decodeBody(t, w)["data"].(map[string]interface{})
	token, _ := data["token"].(string)

	if w := doJSON(t, router, http.MethodPost, "/api/auth/logout", token, nil); w.Code != http.StatusOK {
		t.Fatalf("logout status = %d, body: %s", w.Code, w.Body.String())
	}

	// 登出后同一 Token 不再可用
	if w := doJSON(t, router, http.MethodGet, "/api/auth/me", token, nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("me after logout status = %d, want 401", w.Code)
	}
}
