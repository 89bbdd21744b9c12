package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus_management/internal/models"
	"github.com/campus_management/internal/services"
	"github.com/campus_management/pkg/utils"
)

// RoleHandler 封装了角色相关的 HTTP 处理逻辑
type RoleHandler struct {
	service services.RoleService
}

// NewRoleHandler 创建一个新的 RoleHandler 实例
func NewRoleHandler(service services.RoleService) *RoleHandler {
	return &RoleHandler{service: service}
}

// CreateRolePayload 定义了创建角色请求的 JSON 结构体
type CreateRolePayload struct {
	RoleKey  string  `json:"roleKey" binding:"required,max=64"`
	RoleName string  `json:"roleName" binding:"required,max=64"`
	Remark   *string `json:"remark,omitempty" binding:"omitempty,max=255"`
}

// PagedRolesData 定义了角色列表的分页响应结构
type PagedRolesData struct {
	Records []models.Role `json:"records"`
	PaginationInfo
}

// SyncUserRolesPayload 定义了同步用户角色请求的 JSON 结构体
type SyncUserRolesPayload struct {
	RoleKeys []string `json:"roleKeys" binding:"required"`
}

// CreateRole godoc
// @Summary 新增一个角色
// @Description 角色键和角色名都需唯一，角色键统一转为大写
// @Tags Roles
// @Accept json
// @Produce json
// @Param role body CreateRolePayload true "角色信息"
// @Success 201 {object} utils.SuccessResponse{data=models.Role} "创建成功的角色对象"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误"
// @Failure 401 {object} utils.APIErrorResponse "未认证或 Token 无效/过期"
// @Failure 403 {object} utils.APIErrorResponse "当前角色无权访问"
// @Failure 409 {object} utils.APIErrorResponse "角色键或角色名已存在"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /v1/roles [post]
// @Security BearerAuth
func (h *RoleHandler) CreateRole(c *gin.Context) {
	var payload CreateRolePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	roleToCreate := &models.Role{
		RoleKey:  payload.RoleKey,
		RoleName: payload.RoleName,
		Remark:   payload.Remark,
		Status:   models.RoleStatusEnabled,
	}

	created, err := h.service.CreateRole(roleToCreate)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRoleKeyTaken):
			utils.RespondConflictError(c, services.ErrRoleKeyTaken.Error())
		case errors.Is(err, services.ErrRoleNameTaken):
			utils.RespondConflictError(c, services.ErrRoleNameTaken.Error())
		default:
			utils.RespondInternalServerError(c, "创建角色失败", err.Error())
		}
		return
	}

	utils.RespondSuccess(c, http.StatusCreated, created, "角色创建成功")
}

// GetRoles godoc
// @Summary 获取角色列表
// @Description 分页获取角色，支持按关键词（角色键/角色名）和状态筛选
// @Tags Roles
// @Produce json
// @Param page query int false "页码" default(1)
// @Param size query int false "每页数量" default(10)
// @Param keyword query string false "搜索关键词"
// @Param status query int false "状态筛选 (1=启用, 0=禁用)"
// @Success 200 {object} utils.SuccessResponse{data=PagedRolesData} "成功响应，包含角色列表和分页信息"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误"
// @Failure 401 {object} utils.APIErrorResponse "未认证或 Token 无效/过期"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /v1/roles [get]
// @Security BearerAuth
func (h *RoleHandler) GetRoles(c *gin.Context) {
	type GetRolesQuery struct {
		Page    int    `form:"page,default=1"`
		Size    int    `form:"size,default=10"`
		Keyword string `form:"keyword"`
		Status  *int   `form:"status" binding:"omitempty,oneof=0 1"`
	}

	var queryParams GetRolesQuery
	if err := c.ShouldBindQuery(&queryParams); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	page, size := NormalizePageParams(queryParams.Page, queryParams.Size)
	roles, totalItems, err := h.service.GetRoles(page, size, queryParams.Keyword, queryParams.Status)
	if err != nil {
		utils.RespondInternalServerError(c, "获取角色列表失败", err.Error())
		return
	}
	if roles == nil {
		roles = []models.Role{}
	}

	pagedData := PagedRolesData{
		Records:        roles,
		PaginationInfo: BuildPagination(totalItems, page, size),
	}
	utils.RespondSuccess(c, http.StatusOK, pagedData, "角色列表获取成功")
}

// GetRoleByID godoc
// @Summary 获取指定角色详情
// @Tags Roles
// @Produce json
// @Param id path int true "角色ID"
// @Success 200 {object} utils.SuccessResponse{data=models.Role} "角色详情"
// @Failure 400 {object} utils.APIErrorResponse "无效的角色ID"
// @Failure 401 {object} utils.APIErrorResponse "未认证或 Token 无效/过期"
// @Failure 404 {object} utils.APIErrorResponse "角色未找到"
// @Router /v1/roles/{id} [get]
// @Security BearerAuth
func (h *RoleHandler) GetRoleByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.RespondValidationError(c, "无效的角色ID")
		return
	}

	role, err := h.service.GetRoleByID(id)
	if err != nil {
		if errors.Is(err, services.ErrRoleNotFound) {
			utils.RespondNotFoundError(c, "角色")
		} else {
			utils.RespondInternalServerError(c, "获取角色详情失败", err.Error())
		}
		return
	}
	utils.RespondSuccess(c, http.StatusOK, role, "角色详情获取成功")
}

// UpdateRole godoc
// @Summary 更新指定角色
// @Description 更新角色键、角色名或备注，键/名仍需唯一
// @Tags Roles
// @Accept json
// @Produce json
// @Param id path int true "角色ID"
// @Param role body services.UpdateRolePayload true "要更新的角色字段"
// @Success 200 {object} utils.SuccessResponse{data=models.Role} "更新后的角色对象"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误"
// @Failure 401 {object} utils.APIErrorResponse "未认证或 Token 无效/过期"
// @Failure 404 {object} utils.APIErrorResponse "角色未找到"
// @Failure 409 {object} utils.APIErrorResponse "角色键或角色名已存在"
// @Router /v1/roles/{id} [put]
// @Security BearerAuth
func (h *RoleHandler) UpdateRole(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.RespondValidationError(c, "无效的角色ID")
		return
	}

	var payload services.UpdateRolePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	updated, err := h.service.UpdateRole(id, payload)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRoleNotFound):
			utils.RespondNotFoundError(c, "角色")
		case errors.Is(err, services.ErrRoleKeyTaken):
			utils.RespondConflictError(c, services.ErrRoleKeyTaken.Error())
		case errors.Is(err, services.ErrRoleNameTaken):
			utils.RespondConflictError(c, services.ErrRoleNameTaken.Error())
		default:
			utils.RespondInternalServerError(c, "更新角色失败", err.Error())
		}
		return
	}
	utils.RespondSuccess(c, http.StatusOK, updated, "角色更新成功")
}

// DeleteRole godoc
// @Summary 删除指定角色
// @Description 删除不存在的角色返回 404
// @Tags Roles
// @Produce json
// @Param id path int true "角色ID"
// @Success 200 {object} utils.SuccessResponse "删除成功"
// @Failure 400 {object} utils.APIErrorResponse "无效的角色ID"
// @Failure 401 {object} utils.APIErrorResponse "未认证或 Token 无效/过期"
// @Failure 404 {object} utils.APIErrorResponse "角色未找到"
// @Router /v1/roles/{id} [delete]
// @Security BearerAuth
func (h *RoleHandler) DeleteRole(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.RespondValidationError(c, "无效的角色ID")
		return
	}

	if err := h.service.DeleteRole(id); err != nil {
		if errors.Is(err, services.ErrRoleNotFound) {
			utils.RespondNotFoundError(c, "角色")
		} else {
			utils.RespondInternalServerError(c, "删除角色失败", err.Error())
		}
		return
	}
	utils.RespondSuccess(c, http.StatusOK, nil, "角色删除成功")
}

// ToggleRoleStatus godoc
// @Summary 切换角色启用/禁用状态
// @Description 在启用和禁用之间切换，不删除记录
// @Tags Roles
// @Produce json
// @Param id path int true "角色ID"
// @Success 200 {object} utils.SuccessResponse{data=models.Role} "切换后的角色对象"
// @Failure 400 {object} utils.APIErrorResponse "无效的角色ID"
// @Failure 401 {object} utils.APIErrorResponse "未认证或 Token 无效/过期"
// @Failure 404 {object} utils.APIErrorResponse "角色未找到"
// @Router /v1/roles/{id}/status [patch]
// @Security BearerAuth
func (h *RoleHandler) ToggleRoleStatus(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.RespondValidationError(c, "无效的角色ID")
		return
	}

	updated, err := h.service.ToggleRoleStatus(id)
	if err != nil {
		if errors.Is(err, services.ErrRoleNotFound) {
			utils.RespondNotFoundError(c, "角色")
		} else {
			utils.RespondInternalServerError(c, "切换角色状态失败", err.Error())
		}
		return
	}
	utils.RespondSuccess(c, http.StatusOK, updated, "角色状态已切换")
}

// SyncUserRoles godoc
// @Summary 同步指定用户的角色集合
// @Description 以给定的角色键集合为准增删用户的角色关联，集合未变化时不做任何写入
// @Tags Roles
// @Accept json
// @Produce json
// @Param userId path int true "用户ID"
// @Param roles body SyncUserRolesPayload true "期望的角色键集合"
// @Success 200 {object} utils.SuccessResponse{data=SyncUserRolesPayload} "同步后的角色键集合"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误"
// @Failure 401 {object} utils.APIErrorResponse "未认证或 Token 无效/过期"
// @Failure 403 {object} utils.APIErrorResponse "当前角色无权访问"
// @Failure 404 {object} utils.APIErrorResponse "用户或角色未找到"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /v1/roles/users/{userId} [put]
// @Security BearerAuth
func (h *RoleHandler) SyncUserRoles(c *gin.Context) {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		utils.RespondValidationError(c, "无效的用户ID")
		return
	}

	var payload SyncUserRolesPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	keys, err := h.service.SyncUserRoles(userID, payload.RoleKeys)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			utils.RespondNotFoundError(c, "用户")
		case errors.Is(err, services.ErrRoleNotFound):
			utils.RespondNotFoundError(c, "角色")
		default:
			utils.RespondInternalServerError(c, "同步用户角色失败", err.Error())
		}
		return
	}
	utils.RespondSuccess(c, http.StatusOK, SyncUserRolesPayload{RoleKeys: keys}, "用户角色同步成功")
}
