package services

import (
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/campus_management/internal/models"
	"github.com/campus_management/internal/repositories"
)

func newTestRoleService(t *testing.T) (RoleService, *gorm.DB) {
	t.Helper()
	gormDB := setupTestDB(t)
	return NewRoleService(
		repositories.NewGormRoleRepository(gormDB),
		repositories.NewGormUserRepository(gormDB),
	), gormDB
}

func TestCreateRoleUppercasesKey(t *testing.T) {
	svc, _ := newTestRoleService(t)

	created, err := svc.CreateRole(&models.Role{
		RoleKey:  " librarian ",
		RoleName: "图书管理员",
		Status:   models.RoleStatusEnabled,
	})
	if err != nil {
		t.Fatalf("CreateRole failed: %v", err)
	}
	if created.RoleKey != "LIBRARIAN" {
		t.Errorf("roleKey = %q, want LIBRARIAN", created.RoleKey)
	}
}

func TestCreateRoleConflicts(t *testing.T) {
	svc, _ := newTestRoleService(t)

	if _, err := svc.CreateRole(&models.Role{RoleKey: "LIBRARIAN", RoleName: "图书管理员"}); err != nil {
		t.Fatalf("CreateRole failed: %v", err)
	}

	// 大小写不同仍视为同一角色键
	if _, err := svc.CreateRole(&models.Role{RoleKey: "librarian", RoleName: "别名"}); !errors.Is(err, ErrRoleKeyTaken) {
		t.Fatalf("err = %v, want ErrRoleKeyTaken", err)
	}
	if _, err := svc.CreateRole(&models.Role{RoleKey: "OTHER", RoleName: "图书管理员"}); !errors.Is(err, ErrRoleNameTaken) {
		t.Fatalf("err = %v, want ErrRoleNameTaken", err)
	}
}

func TestToggleRoleStatus(t *testing.T) {
	svc, _ := newTestRoleService(t)

	created, err := svc.CreateRole(&models.Role{
		RoleKey:  "LIBRARIAN",
		RoleName: "图书管理员",
		Status:   models.RoleStatusEnabled,
	})
	if err != nil {
		t.Fatalf("CreateRole failed: %v", err)
	}

	toggled, err := svc.ToggleRoleStatus(created.ID)
	if err != nil {
		t.Fatalf("ToggleRoleStatus failed: %v", err)
	}
	if toggled.Status != models.RoleStatusDisabled {
		t.Errorf("status = %d, want disabled", toggled.Status)
	}

	toggled, err = svc.ToggleRoleStatus(created.ID)
	if err != nil {
		t.Fatalf("ToggleRoleStatus failed: %v", err)
	}
	if toggled.Status != models.RoleStatusEnabled {
		t.Errorf("status = %d, want enabled", toggled.Status)
	}
}

func TestDeleteRoleNotFound(t *testing.T) {
	svc, _ := newTestRoleService(t)
	if err := svc.DeleteRole(9999); !errors.Is(err, ErrRoleNotFound) {
		t.Fatalf("err = %v, want ErrRoleNotFound", err)
	}
}

func TestSyncUserRoles(t *testing.T) {
	svc, gormDB := newTestRoleService(t)
	userRepo := repositories.NewGormUserRepository(gormDB)

	user := models.User{Username: "alice", PasswordHash: "x", Email: "a@x.com"}
	if err := gormDB.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	for _, role := range []models.Role{
		{RoleKey: "TEACHER", RoleName: "教师", Status: models.RoleStatusEnabled},
		{RoleKey: "LIBRARIAN", RoleName: "图书管理员", Status: models.RoleStatusEnabled},
	} {
		r := role
		if _, err := svc.CreateRole(&r); err != nil {
			t.Fatalf("create role %s: %v", role.RoleKey, err)
		}
	}

	keys, err := svc.SyncUserRoles(user.ID, []string{"teacher", " librarian "})
	if err != nil {
		t.Fatalf("SyncUserRoles failed: %v", err)
	}
	if len(keys) != 2 || keys[0] != "LIBRARIAN" || keys[1] != "TEACHER" {
		t.Fatalf("keys = %v, want [LIBRARIAN TEACHER]", keys)
	}

	// 集合未变化时是无写入的幂等操作
	keys, err = svc.SyncUserRoles(user.ID, []string{"LIBRARIAN", "TEACHER"})
	if err != nil {
		t.Fatalf("idempotent sync failed: %v", err)
	}
	if len(keys) != 2 {
		t.Fatalf("keys after idempotent sync = %v", keys)
	}

	// 收缩集合应解除多余的关联
	keys, err = svc.SyncUserRoles(user.ID, []string{"TEACHER"})
	if err != nil {
		t.Fatalf("shrink sync failed: %v", err)
	}
	if len(keys) != 1 || keys[0] != "TEACHER" {
		t.Fatalf("keys = %v, want [TEACHER]", keys)
	}
	stored, err := userRepo.GetRoleKeys(user.ID)
	if err != nil {
		t.Fatalf("GetRoleKeys failed: %v", err)
	}
	if len(stored) != 1 || stored[0] != "TEACHER" {
		t.Errorf("stored keys = %v, want [TEACHER]", stored)
	}

	if _, err := svc.SyncUserRoles(user.ID, []string{"NOPE"}); !errors.Is(err, ErrRoleNotFound) {
		t.Fatalf("unknown role key: err = %v, want ErrRoleNotFound", err)
	}
	if _, err := svc.SyncUserRoles(424242, nil); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("unknown user: err = %v, want ErrUserNotFound", err)
	}
}
