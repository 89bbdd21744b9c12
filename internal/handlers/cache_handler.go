package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus_management/internal/services"
	"github.com/campus_management/pkg/utils"
)

// CacheHandler 封装了缓存管理相关的 HTTP 处理逻辑
type CacheHandler struct {
	service services.CacheService
}

// NewCacheHandler 创建一个新的 CacheHandler 实例
func NewCacheHandler(service services.CacheService) *CacheHandler {
	return &CacheHandler{service: service}
}

// GetInfo godoc
// @Summary 缓存概览
// @Description 返回缓存后端类型与当前全部键
// @Tags Cache
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=services.CacheInfo} "缓存概览"
// @Failure 401 {object} utils.APIErrorResponse "未认证或 Token 无效/过期"
// @Failure 403 {object} utils.APIErrorResponse "当前角色无权访问"
// @Router /v1/cache/info [get]
// @Security BearerAuth
func (h *CacheHandler) GetInfo(c *gin.Context) {
	utils.RespondSuccess(c, http.StatusOK, h.service.Info(), "缓存概览获取成功")
}

// GetStats godoc
// @Summary 缓存统计
// @Description 返回条目数、命中/未命中次数与命中率
// @Tags Cache
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=cache.Stats} "缓存统计"
// @Failure 401 {object} utils.APIErrorResponse "未认证或 Token 无效/过期"
// @Failure 403 {object} utils.APIErrorResponse "当前角色无权访问"
// @Router /v1/cache/stats [get]
// @Security BearerAuth
func (h *CacheHandler) GetStats(c *gin.Context) {
	utils.RespondSuccess(c, http.StatusOK, h.service.Stats(), "缓存统计获取成功")
}

// GetHealth godoc
// @Summary 缓存健康检查
// @Description 做一次写后读自检并返回结果
// @Tags Cache
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=services.CacheHealth} "健康检查结果"
// @Failure 401 {object} utils.APIErrorResponse "未认证或 Token 无效/过期"
// @Failure 403 {object} utils.APIErrorResponse "当前角色无权访问"
// @Router /v1/cache/health [get]
// @Security BearerAuth
func (h *CacheHandler) GetHealth(c *gin.Context) {
	utils.RespondSuccess(c, http.StatusOK, h.service.Health(), "缓存健康检查完成")
}

// Clear godoc
// @Summary 清空缓存
// @Description prefix 查询参数为空时清空全部，否则只清指定前缀
// @Tags Cache
// @Produce json
// @Param prefix query string false "只清除该前缀的键"
// @Success 200 {object} utils.SuccessResponse "清空完成，data 中包含删除数量"
// @Failure 401 {object} utils.APIErrorResponse "未认证或 Token 无效/过期"
// @Failure 403 {object} utils.APIErrorResponse "当前角色无权访问"
// @Router /v1/cache/clear [post]
// @Security BearerAuth
func (h *CacheHandler) Clear(c *gin.Context) {
	removed := h.service.Clear(c.Query("prefix"))
	utils.RespondSuccess(c, http.StatusOK, gin.H{"removed": removed}, "缓存清空完成")
}

// Warm godoc
// @Summary 预热缓存
// @Description 从数据库加载角色与教室数据写入缓存；预热不是原子操作
// @Tags Cache
// @Produce json
// @Success 200 {object} utils.SuccessResponse "预热完成，data 中包含预热键数量"
// @Failure 401 {object} utils.APIErrorResponse "未认证或 Token 无效/过期"
// @Failure 403 {object} utils.APIErrorResponse "当前角色无权访问"
// @Failure 500 {object} utils.APIErrorResponse "预热失败"
// @Router /v1/cache/warm [post]
// @Security BearerAuth
func (h *CacheHandler) Warm(c *gin.Context) {
	warmed, err := h.service.Warm()
	if err != nil {
		utils.RespondInternalServerError(c, "缓存预热失败", err.Error())
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"warmed": warmed}, "缓存预热完成")
}
