package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campus_management/internal/auth"
	"github.com/campus_management/internal/services"
	"github.com/campus_management/pkg/utils"
)

// AuthHandler 封装了认证相关的 HTTP 处理逻辑
type AuthHandler struct {
	service services.AuthService
}

// NewAuthHandler 创建一个新的 AuthHandler 实例
func NewAuthHandler(service services.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Username string  `json:"username" binding:"required,min=3,max=64"`
	Password string  `json:"password" binding:"required,min=6,max=64"`
	Email    string  `json:"email" binding:"required,email"`
	Phone    *string `json:"phone,omitempty" binding:"omitempty,max=20"`
	RealName string  `json:"realName" binding:"required,max=64"`
	Gender   *string `json:"gender,omitempty" binding:"omitempty,oneof=M F"`
}

type RefreshRequest struct {
	Token string `json:"token" binding:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6,max=64"`
}

// Login godoc
// @Summary 用户登录
// @Description 验证用户名密码并返回 JWT 与用户信息
// @Tags auth
// @Accept  json
// @Produce  json
// @Param credentials body LoginRequest true "登录凭证"
// @Success 200 {object} utils.SuccessResponse{data=services.LoginResult} "登录成功，返回 Token 和用户信息"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误"
// @Failure 401 {object} utils.APIErrorResponse "无效的用户名或密码"
// @Failure 403 {object} utils.APIErrorResponse "账号已被禁用"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	result, err := h.service.Login(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			utils.RespondUnauthorizedError(c, services.ErrInvalidCredentials.Error())
		case errors.Is(err, services.ErrUserDisabled):
			utils.RespondForbiddenError(c, services.ErrUserDisabled.Error())
		default:
			utils.RespondInternalServerError(c, "登录失败", err.Error())
		}
		return
	}

	utils.RespondSuccess(c, http.StatusOK, result, "登录成功")
}

// Register godoc
// @Summary 注册新账号
// @Description 创建新账号并立即签发 Token（注册即登录）
// @Tags auth
// @Accept  json
// @Produce  json
// @Param account body RegisterRequest true "注册信息"
// @Success 200 {object} utils.SuccessResponse{data=services.LoginResult} "注册成功"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误或用户名/邮箱已存在"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	result, err := h.service.Register(services.RegisterPayload{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Phone:    req.Phone,
		RealName: req.RealName,
		Gender:   req.Gender,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUsernameExists):
			utils.RespondAPIError(c, http.StatusBadRequest, services.ErrUsernameExists.Error(), nil)
		case errors.Is(err, services.ErrEmailExists):
			utils.RespondAPIError(c, http.StatusBadRequest, services.ErrEmailExists.Error(), nil)
		default:
			utils.RespondInternalServerError(c, "注册失败", err.Error())
		}
		return
	}

	utils.RespondSuccess(c, http.StatusOK, result, "注册成功")
}

// Refresh godoc
// @Summary 刷新 Token
// @Description 校验现有 Token 并签发带新有效期的 Token，无需重新提交密码
// @Tags auth
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param token body RefreshRequest true "待刷新的 Token"
// @Success 200 {object} utils.SuccessResponse{data=services.RefreshResult} "刷新成功"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误"
// @Failure 401 {object} utils.APIErrorResponse "Token 无效或已过期"
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	result, err := h.service.Refresh(req.Token)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidToken):
			utils.RespondUnauthorizedError(c)
		case errors.Is(err, services.ErrUserNotFound):
			utils.RespondUnauthorizedError(c, services.ErrUserNotFound.Error())
		case errors.Is(err, services.ErrUserDisabled):
			utils.RespondForbiddenError(c, services.ErrUserDisabled.Error())
		default:
			utils.RespondInternalServerError(c, "刷新Token失败", err.Error())
		}
		return
	}

	utils.RespondSuccess(c, http.StatusOK, result, "Token已刷新")
}

// Logout godoc
// @Summary 用户登出
// @Description 将当前 Token 的 JTI 加入拒绝列表，直到其自然过期
// @Tags auth
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Success 200 {object} utils.SuccessResponse "成功登出"
// @Failure 400 {object} utils.APIErrorResponse "上下文中缺少JTI或过期时间"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	jtiVal, jtiExists := c.Get(auth.ContextJTIKey)
	expVal, expExists := c.Get(auth.ContextExpKey)

	if !jtiExists || !expExists {
		utils.RespondAPIError(c, http.StatusBadRequest, "登出失败：上下文中缺少JTI或过期时间", nil)
		return
	}

	jti, okJTI := jtiVal.(string)
	exp, okEXP := expVal.(time.Time)
	if !okJTI || jti == "" || !okEXP {
		utils.RespondAPIError(c, http.StatusBadRequest, "登出失败：无效的JTI或过期时间", nil)
		return
	}

	h.service.Logout(jti, exp)
	utils.RespondSuccess(c, http.StatusOK, nil, "成功登出")
}

// Me godoc
// @Summary 当前用户信息
// @Description 根据 Token 主体返回当前用户的安全投影（不含密码哈希）
// @Tags auth
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} utils.SuccessResponse{data=models.UserInfo} "当前用户信息"
// @Failure 401 {object} utils.APIErrorResponse "未认证或 Token 无效/过期"
// @Failure 404 {object} utils.APIErrorResponse "用户不存在"
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	username, ok := auth.CurrentUsername(c)
	if !ok {
		utils.RespondUnauthorizedError(c)
		return
	}

	info, err := h.service.CurrentUser(username)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			utils.RespondNotFoundError(c, "用户")
		} else {
			utils.RespondInternalServerError(c, "获取用户信息失败", err.Error())
		}
		return
	}

	utils.RespondSuccess(c, http.StatusOK, info, "获取成功")
}

// ChangePassword godoc
// @Summary 修改密码
// @Description 校验旧密码后替换为新密码，必须提供正确的旧密码
// @Tags auth
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param passwords body ChangePasswordRequest true "旧密码与新密码"
// @Success 200 {object} utils.SuccessResponse "密码修改成功"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误或旧密码不正确"
// @Failure 401 {object} utils.APIErrorResponse "未认证或 Token 无效/过期"
// @Failure 404 {object} utils.APIErrorResponse "用户不存在"
// @Router /auth/change-password [post]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	username, ok := auth.CurrentUsername(c)
	if !ok {
		utils.RespondUnauthorizedError(c)
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	if err := h.service.ChangePassword(username, req.OldPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			utils.RespondNotFoundError(c, "用户")
		case errors.Is(err, services.ErrWrongOldPassword):
			utils.RespondAPIError(c, http.StatusBadRequest, services.ErrWrongOldPassword.Error(), nil)
		default:
			utils.RespondInternalServerError(c, "修改密码失败", err.Error())
		}
		return
	}

	utils.RespondSuccess(c, http.StatusOK, nil, "密码修改成功")
}
