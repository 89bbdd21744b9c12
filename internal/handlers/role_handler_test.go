package handlers_test

import (
	"net/http"
	"testing"

	"github.com/campus_management/internal/models"
)

func TestGetRolesEmptyStore(t *testing.T) {
	router, tokens, _ := setupTestRouter(t)
	token := issueToken(t, tokens, "root", models.RoleKeyAdmin)

	// page=0 会被归一为第1页，空库返回空列表而不是错误
	w := doJSON(t, router, http.MethodGet, "/api/v1/roles?page=0&size=20", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", w.Code, w.Body.String())
	}

	data, _ := decodeBody(t, w)["data"].(map[string]interface{})
	if data == nil {
		t.Fatal("expected a data object")
	}
	records, ok := data["records"].([]interface{})
	if !ok {
		t.Fatalf("records = %v, want an empty JSON array", data["records"])
	}
	if len(records) != 0 {
		t.Errorf("records length = %d, want 0", len(records))
	}
	if data["total"] != float64(0) {
		t.Errorf("total = %v, want 0", data["total"])
	}
	if data["current"] != float64(1) {
		t.Errorf("current = %v, want 1 (page=0 normalized)", data["current"])
	}
}

func TestRolesRequireAdminRole(t *testing.T) {
	router, tokens, _ := setupTestRouter(t)

	// 未认证
	if w := doJSON(t, router, http.MethodGet, "/api/v1/roles", "", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous status = %d, want 401", w.Code)
	}

	// 已认证但角色不匹配
	studentToken := issueToken(t, tokens, "stu", models.RoleKeyStudent)
	if w := doJSON(t, router, http.MethodGet, "/api/v1/roles", studentToken, nil); w.Code != http.StatusForbidden {
		t.Fatalf("student status = %d, want 403", w.Code)
	}

	// 多角色中包含任一允许角色即放行
	mixedToken := issueToken(t, tokens, "mixed", models.RoleKeyTeacher, models.RoleKeySystemAdmin)
	if w := doJSON(t, router, http.MethodGet, "/api/v1/roles", mixedToken, nil); w.Code != http.StatusOK {
		t.Fatalf("mixed-role status = %d, want 200, body: %s", w.Code, w.Body.String())
	}
}

func TestCreateRoleLifecycle(t *testing.T) {
	router, tokens, _ := setupTestRouter(t)
	token := issueToken(t, tokens, "root", models.RoleKeyAdmin)

	w := doJSON(t, router, http.MethodPost, "/api/v1/roles", token, map[string]string{
		"roleKey":  "librarian",
		"roleName": "图书管理员",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body: %s", w.Code, w.Body.String())
	}
	created, _ := decodeBody(t, w)["data"].(map[string]interface{})
	if created["roleKey"] != "LIBRARIAN" {
		t.Errorf("roleKey = %v, want LIBRARIAN (uppercased)", created["roleKey"])
	}

	// 同名角色键冲突
	w = doJSON(t, router, http.MethodPost, "/api/v1/roles", token, map[string]string{
		"roleKey":  "LIBRARIAN",
		"roleName": "另一个名字",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate create status = %d, want 409", w.Code)
	}

	// 列表应包含新角色
	w = doJSON(t, router, http.MethodGet, "/api/v1/roles?page=1&size=10", token, nil)
	data, _ := decodeBody(t, w)["data"].(map[string]interface{})
	if data["total"] != float64(1) {
		t.Errorf("total = %v, want 1", data["total"])
	}
}

func TestGetRoleByIDNotFound(t *testing.T) {
	router, tokens, _ := setupTestRouter(t)
	token := issueToken(t, tokens, "root", models.RoleKeyAdmin)

	w := doJSON(t, router, http.MethodGet, "/api/v1/roles/9999", token, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404, body: %s", w.Code, w.Body.String())
	}
}

func TestSyncUserRolesEndpoint(t *testing.T) {
	router, tokens, _ := setupTestRouter(t)
	adminToken := issueToken(t, tokens, "root", models.RoleKeyAdmin)

	// 注册产生待分配角色的用户
	doJSON(t, router, http.MethodPost, "/api/auth/register", "", aliceRegisterBody)

	for _, body := range []map[string]string{
		{"roleKey": "TEACHER", "roleName": "教师"},
		{"roleKey": "LIBRARIAN", "roleName": "图书管理员"},
	} {
		if w := doJSON(t, router, http.MethodPost, "/api/v1/roles", adminToken, body); w.Code != http.StatusCreated {
			t.Fatalf("create role status = %d, body: %s", w.Code, w.Body.String())
		}
	}

	w := doJSON(t, router, http.MethodPut, "/api/v1/roles/users/1", adminToken, map[string]interface{}{
		"roleKeys": []string{"teacher", "librarian"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("sync status = %d, body: %s", w.Code, w.Body.String())
	}
	data, _ := decodeBody(t, w)["data"].(map[string]interface{})
	keys, _ := data["roleKeys"].([]interface{})
	if len(keys) != 2 || keys[0] != "LIBRARIAN" || keys[1] != "TEACHER" {
		t.Fatalf("roleKeys = %v, want [LIBRARIAN TEACHER]", data["roleKeys"])
	}

	// 再次提交同一集合应保持不变
	w = doJSON(t, router, http.MethodPut, "/api/v1/roles/users/1", adminToken, map[string]interface{}{
		"roleKeys": []string{"LIBRARIAN", "TEACHER"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("repeat sync status = %d, body: %s", w.Code, w.Body.String())
	}

	// 未知用户返回 404
	w = doJSON(t, router, http.MethodPut, "/api/v1/roles/users/424242", adminToken, map[string]interface{}{
		"roleKeys": []string{"TEACHER"},
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown user status = %d, want 404, body: %s", w.Code, w.Body.String())
	}

	// 非管理员无权同步
	teacherToken := issueToken(t, tokens, "teacher", models.RoleKeyTeacher)
	w = doJSON(t, router, http.MethodPut, "/api/v1/roles/users/1", teacherToken, map[string]interface{}{
		"roleKeys": []string{"TEACHER"},
	})
	if w.Code != http.StatusForbidden {
		t.Fatalf("non-admin sync status = %d, want 403", w.Code)
	}
}
