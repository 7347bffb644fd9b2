package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/online-bookstore/pkg/errors"
	"github.com/xiebiao/online-bookstore/pkg/jwt"
	"github.com/xiebiao/online-bookstore/pkg/response"
)

// Context key
const (
	ctxUserID    = "user_id"
	ctxEmail     = "email"
	ctxRoles     = "roles"
	ctxToken     = "access_token"
	ctxExpiresAt = "token_expires_at"
)

// TokenBlacklist Token黑名单(由redis.SessionStore实现)
type TokenBlacklist interface {
	IsInBlacklist(ctx context.Context, token string) (bool, error)
}

// AuthMiddleware JWT认证中间件
// 1. 从Header提取Bearer Token
// 2. 检查Token黑名单(已登出)
// 3. 验证Token并把用户ID、邮箱、角色注入Context
type AuthMiddleware struct {
	jwtManager *jwt.Manager
	blacklist  TokenBlacklist
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(jwtManager *jwt.Manager, blacklist TokenBlacklist) *AuthMiddleware {
	return &AuthMiddleware{jwtManager: jwtManager, blacklist: blacklist}
}

// RequireAuth 要求登录
//
//	authorized := r.Group("/api/v1")
//	authorized.Use(auth.RequireAuth())
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, apperrors.ErrUnauthorized)
			return
		}

		// 格式:Authorization: Bearer <token>
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			abort(c, apperrors.New(apperrors.ErrCodeInvalidToken, "Token格式错误"))
			return
		}
		tokenString := parts[1]

		revoked, err := m.blacklist.IsInBlacklist(c.Request.Context(), tokenString)
		if err != nil {
			abort(c, err)
			return
		}
		if revoked {
			abort(c, apperrors.New(apperrors.ErrCodeTokenExpired, "Token已失效,请重新登录"))
			return
		}

		// Refresh Token不能访问业务接口
		claims, err := m.jwtManager.ParseAccessToken(tokenString)
		if err != nil {
			abort(c, err)
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxEmail, claims.Email)
		c.Set(ctxRoles, claims.Roles)
		c.Set(ctxToken, tokenString)
		if claims.ExpiresAt != nil {
			c.Set(ctxExpiresAt, claims.ExpiresAt.Time)
		}
		c.Next()
	}
}

// RequireRole 要求拥有任一角色,必须在RequireAuth之后使用
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		owned := GetRoles(c)
		for _, want := range roles {
			for _, r := range owned {
				if r == want {
					c.Next()
					return
				}
			}
		}
		abort(c, apperrors.ErrForbidden)
	}
}

func abort(c *gin.Context, err error) {
	response.Error(c, err)
	c.Abort()
}

// =========================================
// Context辅助函数(供Handler使用)
// =========================================

// GetUserID 当前登录用户ID,未登录返回0
func GetUserID(c *gin.Context) uint {
	if v, ok := c.Get(ctxUserID); ok {
		if uid, ok := v.(uint); ok {
			return uid
		}
	}
	return 0
}

// GetEmail 当前登录用户邮箱
func GetEmail(c *gin.Context) string {
	return c.GetString(ctxEmail)
}

// GetRoles 当前登录用户角色
func GetRoles(c *gin.Context) []string {
	return c.GetStringSlice(ctxRoles)
}

// GetAccessToken 当前请求携带的Access Token及其过期时间
func GetAccessToken(c *gin.Context) (string, time.Time) {
	return c.GetString(ctxToken), c.GetTime(ctxExpiresAt)
}
