package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campus_management/pkg/utils"
)

// TestHandler 提供无需认证的连通性探测接口
type TestHandler struct{}

// NewTestHandler 创建一个新的 TestHandler 实例
func NewTestHandler() *TestHandler {
	return &TestHandler{}
}

// Ping godoc
// @Summary 存活探测
// @Tags Test
// @Produce json
// @Success 200 {object} utils.SuccessResponse "pong"
// @Router /test/ping [get]
func (h *TestHandler) Ping(c *gin.Context) {
	utils.RespondSuccess(c, http.StatusOK, gin.H{"pong": true}, "pong")
}

// Hello godoc
// @Summary 欢迎信息
// @Tags Test
// @Produce json
// @Success 200 {object} utils.SuccessResponse "欢迎信息"
// @Router /test/hello [get]
func (h *TestHandler) Hello(c *gin.Context) {
	utils.RespondSuccess(c, http.StatusOK, gin.H{"service": "campus_management"}, "欢迎使用校园管理系统")
}

// Time godoc
// @Summary 服务器时间
// @Tags Test
// @Produce json
// @Success 200 {object} utils.SuccessResponse "服务器当前时间"
// @Router /test/time [get]
func (h *TestHandler) Time(c *gin.Context) {
	utils.RespondSuccess(c, http.StatusOK, gin.H{"now": time.Now().Format(time.RFC3339)}, "服务器时间获取成功")
}
