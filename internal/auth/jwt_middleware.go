package auth

import (
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campus_management/pkg/utils"
)

// Gin上下文中存放认证信息的键
const (
	ContextUserIDKey   = "userID"
	ContextUsernameKey = "username"
	ContextRolesKey    = "roles"
	ContextJTIKey      = "jti"
	ContextExpKey      = "exp"
)

var (
	// tokenDenylist 存储已登出Token的JTI及其原始过期时间。
	// key: JTI (JWT ID), value: 该JTI的原始过期时间点。
	// 注意: 这是一个内存列表，服务重启会丢失。生产环境应使用Redis等持久化存储。
	tokenDenylist = make(map[string]time.Time)
	denylistMutex = &sync.RWMutex{}
)

// AddToDenylist 将JTI添加到拒绝列表，并清理已过期的条目。
func AddToDenylist(jti string, expiresAt time.Time) {
	denylistMutex.Lock()
	defer denylistMutex.Unlock()

	tokenDenylist[jti] = expiresAt

	// 清理拒绝列表中其他已完全过期的JTI
	now := time.Now()
	for id, exp := range tokenDenylist {
		if now.After(exp) {
			delete(tokenDenylist, id)
		}
	}
}

// IsTokenDenylisted 检查JTI是否在拒绝列表中且尚未过期。
func IsTokenDenylisted(jti string) bool {
	denylistMutex.RLock()
	defer denylistMutex.RUnlock()

	expTime, found := tokenDenylist[jti]
	if !found {
		return false
	}
	return time.Now().Before(expTime)
}

// StripBearerPrefix 去掉 "Bearer " 前缀（大小写不敏感），没有前缀时原样返回
func StripBearerPrefix(raw string) string {
	trimmed := strings.TrimSpace(raw)
	parts := strings.SplitN(trimmed, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return trimmed
}

// Middleware 封装了依赖 TokenService 的认证中间件，由 main 显式构造
type Middleware struct {
	tokens *TokenService
}

// NewMiddleware 创建认证中间件实例
func NewMiddleware(tokens *TokenService) *Middleware {
	return &Middleware{tokens: tokens}
}

// Authenticate 是一个Gin中间件，用于验证JWT。
// 它从 Authorization 请求头中提取 Bearer Token，校验通过后把声明写入上下文。
// 任何校验失败都以 401 响应短路，绝不落到 500。
func (m *Middleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondUnauthorizedError(c, "缺少 Authorization 请求头")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			utils.RespondUnauthorizedError(c, "Authorization 请求头格式必须为 Bearer {token}")
			return
		}

		claims, err := m.tokens.Parse(parts[1])
		if err != nil {
			utils.RespondUnauthorizedError(c)
			return
		}

		// 检查Token是否已在拒绝列表（已登出）
		if IsTokenDenylisted(claims.ID) {
			utils.RespondUnauthorizedError(c, "Token 已失效（已登出）")
			return
		}

		// 将声明和关键信息存储在Gin上下文中，以便后续处理程序使用
		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextUsernameKey, claims.Username)
		c.Set(ContextRolesKey, claims.Roles)
		c.Set(ContextJTIKey, claims.ID)
		if claims.ExpiresAt != nil {
			c.Set(ContextExpKey, claims.ExpiresAt.Time)
		}

		c.Next()
	}
}

// RequireRoles 返回一个角色门禁中间件：调用者的角色集合与 allowed 有交集才放行。
// 必须挂在 Authenticate 之后；上下文中没有角色信息时按未认证处理。
func (m *Middleware) RequireRoles(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		rolesVal, exists := c.Get(ContextRolesKey)
		if !exists {
			utils.RespondUnauthorizedError(c)
			return
		}
		roles, ok := rolesVal.([]string)
		if !ok {
			utils.RespondUnauthorizedError(c)
			return
		}
		if !utils.HasAnyRole(roles, allowed) {
			utils.RespondForbiddenError(c)
			return
		}
		c.Next()
	}
}

// CurrentUsername 从上下文中取出已认证的用户名，未认证时第二个返回值为 false
func CurrentUsername(c *gin.Context) (string, bool) {
	val, exists := c.Get(ContextUsernameKey)
	if !exists {
		return "", false
	}
	name, ok := val.(string)
	return name, ok && name != ""
}
