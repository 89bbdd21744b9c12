package services

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/campus_management/internal/auth"
	"github.com/campus_management/internal/models"
	"github.com/campus_management/internal/repositories"
)

// ErrInvalidCredentials 表示用户名或密码错误。
// 用户不存在与密码错误共用同一个错误，避免暴露用户名是否存在。
var ErrInvalidCredentials = errors.New("无效的用户名或密码")

// ErrUserDisabled 表示账号已被禁用
var ErrUserDisabled = errors.New("账号已被禁用")

// ErrUsernameExists 表示用户名已被占用
var ErrUsernameExists = errors.New("用户名已存在")

// ErrEmailExists 表示邮箱已被占用
var ErrEmailExists = errors.New("邮箱已存在")

// ErrUserNotFound 表示用户不存在
var ErrUserNotFound = errors.New("用户不存在")

// ErrWrongOldPassword 表示修改密码时旧密码校验失败
var ErrWrongOldPassword = errors.New("旧密码不正确")

// LoginResult 是登录/注册成功后返回给客户端的内容
type LoginResult struct {
	Token     string          `json:"token"`
	TokenType string          `json:"tokenType"`
	ExpiresIn int64           `json:"expiresIn"`
	User      models.UserInfo `json:"userInfo"`
}

// RefreshResult 是刷新Token成功后返回的内容
type RefreshResult struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType"`
	ExpiresIn int64  `json:"expiresIn"`
}

// RegisterPayload 是注册时需要的字段
type RegisterPayload struct {
	Username string
	Password string
	Email    string
	Phone    *string
	RealName string
	Gender   *string
}

// AuthService 定义了认证服务的接口
type AuthService interface {
	Login(username, password string) (*LoginResult, error)
	Register(payload RegisterPayload) (*LoginResult, error)
	Refresh(tokenString string) (*RefreshResult, error)
	Logout(jti string, expiresAt time.Time)
	CurrentUser(username string) (*models.UserInfo, error)
	ChangePassword(username, oldPassword, newPassword string) error
}

// authService 是 AuthService 的实现
type authService struct {
	users  repositories.UserRepository
	tokens *auth.TokenService
}

// NewAuthService 创建一个新的 authService 实例
func NewAuthService(users repositories.UserRepository, tokens *auth.TokenService) AuthService {
	return &authService{users: users, tokens: tokens}
}

// Login 校验凭证并签发Token。
// 密码比较通过 bcrypt 完成，绝不做明文比较。
func (s *authService) Login(username, password string) (*LoginResult, error) {
	user, err := s.users.GetByUsername(username)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsEnabled() {
		return nil, ErrUserDisabled
	}

	return s.issueFor(user)
}

// Register 创建新账号并立即签发Token（注册即登录）
func (s *authService) Register(payload RegisterPayload) (*LoginResult, error) {
	if _, err := s.users.GetByUsername(payload.Username); err == nil {
		return nil, ErrUsernameExists
	} else if !errors.Is(err, repositories.ErrRecordNotFound) {
		return nil, err
	}

	if _, err := s.users.GetByEmail(payload.Email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, repositories.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     payload.Username,
		PasswordHash: string(hashed),
		Email:        payload.Email,
		Phone:        payload.Phone,
		RealName:     payload.RealName,
		Gender:       payload.Gender,
		Status:       models.UserStatusEnabled, // 新注册账号默认启用
	}

	created, err := s.users.Create(user)
	if err != nil {
		return nil, err
	}

	return s.issueFor(created)
}

// Refresh 校验旧Token并签发一个带新有效期的Token，无需重新提交密码
func (s *authService) Refresh(tokenString string) (*RefreshResult, error) {
	claims, err := s.tokens.Parse(auth.StripBearerPrefix(tokenString))
	if err != nil {
		return nil, err // auth.ErrInvalidToken
	}

	user, err := s.users.GetByUsername(claims.Subject)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !user.IsEnabled() {
		return nil, ErrUserDisabled
	}

	roleKeys, err := s.users.GetRoleKeys(user.ID)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Generate(user, roleKeys)
	if err != nil {
		return nil, err
	}
	return &RefreshResult{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: s.tokens.ExpirationSeconds(),
	}, nil
}

// Logout 将Token的JTI加入拒绝列表，直到其自然过期
func (s *authService) Logout(jti string, expiresAt time.Time) {
	auth.AddToDenylist(jti, expiresAt)
}

// CurrentUser 根据Token主体（用户名）返回当前用户投影
func (s *authService) CurrentUser(username string) (*models.UserInfo, error) {
	user, err := s.users.GetByUsername(username)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	roleKeys, err := s.users.GetRoleKeys(user.ID)
	if err != nil {
		return nil, err
	}
	info := user.ToUserInfo(roleKeys)
	return &info, nil
}

// ChangePassword 校验旧密码后替换为新密码的哈希
func (s *authService) ChangePassword(username, oldPassword, newPassword string) error {
	user, err := s.users.GetByUsername(username)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrWrongOldPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.users.UpdatePasswordHash(user.ID, string(hashed))
}

// issueFor 为用户签发Token并组装登录结果，同时记录最近登录时间
func (s *authService) issueFor(user *models.User) (*LoginResult, error) {
	roleKeys, err := s.users.GetRoleKeys(user.ID)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Generate(user, roleKeys)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	// 最近登录时间只作展示用，更新失败不影响登录结果
	if err := s.users.UpdateLastLoginAt(user.ID, now); err == nil {
		user.LastLoginAt = &now
	}

	return &LoginResult{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: s.tokens.ExpirationSeconds(),
		User:      user.ToUserInfo(roleKeys),
	}, nil
}
