package handlers_test

import (
	"net/http"
	"testing"

	"github.com/campus_management/internal/models"
)

func TestCacheEndpointsRequireSystemAdmin(t *testing.T) {
	router, tokens, _ := setupTestRouter(t)

	teacherToken := issueToken(t, tokens, "teacher", models.RoleKeyTeacher)
	if w := doJSON(t, router, http.MethodGet, "/api/v1/cache/info", teacherToken, nil); w.Code != http.StatusForbidden {
		t.Fatalf("teacher info status = %d, want 403", w.Code)
	}
	if w := doJSON(t, router, http.MethodGet, "/api/v1/cache/info", "", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous info status = %d, want 401", w.Code)
	}
}

func TestCacheWarmAndClear(t *testing.T) {
	router, tokens, _ := setupTestRouter(t)
	token := issueToken(t, tokens, "ops", models.RoleKeySystemAdmin)

	w := doJSON(t, router, http.MethodPost, "/api/v1/cache/warm", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("warm status = %d, body: %s", w.Code, w.Body.String())
	}
	data, _ := decodeBody(t, w)["data"].(map[string]interface{})
	if data["warmed"] != float64(2) {
		t.Errorf("warmed = %v, want 2 (roles + classrooms)", data["warmed"])
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/cache/info", token, nil)
	info, _ := decodeBody(t, w)["data"].(map[string]interface{})
	if info["entries"] != float64(2) {
		t.Errorf("entries after warm = %v, want 2", info["entries"])
	}

	// 按前缀清除只影响匹配的键
	w = doJSON(t, router, http.MethodPost, "/api/v1/cache/clear?prefix=roles:", token, nil)
	cleared, _ := decodeBody(t, w)["data"].(map[string]interface{})
	if cleared["removed"] != float64(1) {
		t.Errorf("removed = %v, want 1", cleared["removed"])
	}

	w = doJSON(t, router, http.MethodPost, "/api/v1/cache/clear", token, nil)
	cleared, _ = decodeBody(t, w)["data"].(map[string]interface{})
	if cleared["removed"] != float64(1) {
		t.Errorf("removed = %v, want 1 remaining key", cleared["removed"])
	}
}

func TestCacheHealth(t *testing.T) {
	router, tokens, _ := setupTestRouter(t)
	token := issueToken(t, tokens, "ops", models.RoleKeyAdmin)

	w := doJSON(t, router, http.MethodGet, "/api/v1/cache/health", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("health status = %d, body: %s", w.Code, w.Body.String())
	}
	data, _ := decodeBody(t, w)["data"].(map[string]interface{})
	if data["healthy"] != true {
		t.Errorf("healthy = %v, want true", data["healthy"])
	}
}
