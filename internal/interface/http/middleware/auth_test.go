package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/online-bookstore/pkg/errors"
	"github.com/xiebiao/online-bookstore/pkg/jwt"
)

type fakeBlacklist map[string]bool

func (f fakeBlacklist) IsInBlacklist(_ context.Context, token string) (bool, error) {
	return f[token], nil
}

func setupRouter(t *testing.T, blacklist fakeBlacklist) (*gin.Engine, *jwt.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	manager := jwt.NewManager("test-secret", time.Hour, 24*time.Hour)
	auth := NewAuthMiddleware(manager, blacklist)

	r := gin.New()
	r.GET("/me", auth.RequireAuth(), func(c *gin.Context) {
		token, _ := GetAccessToken(c)
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c), "email": GetEmail(c), "has_token": token != ""})
	})
	r.GET("/admin", auth.RequireAuth(), RequireRole("ROLE_ADMIN"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r, manager
}

func request(r *gin.Engine, path, authHeader string) (*httptest.ResponseRecorder, int) {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body struct {
		Code int `json:"code"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body.Code
}

func TestRequireAuth(t *testing.T) {
	blacklist := fakeBlacklist{}
	r, manager := setupRouter(t, blacklist)

	pair, err := manager.GenerateToken(42, "reader@example.com", []string{"ROLE_USER"})
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantCode   int
	}{
		{"缺少Header", "", http.StatusUnauthorized, apperrors.ErrCodeUnauthorized},
		{"格式错误", "Token " + pair.AccessToken, http.StatusUnauthorized, apperrors.ErrCodeInvalidToken},
		{"伪造Token", "Bearer not-a-jwt", http.StatusUnauthorized, apperrors.ErrCodeInvalidToken},
		{"Refresh Token不能访问", "Bearer " + pair.RefreshToken, http.StatusUnauthorized, apperrors.ErrCodeInvalidToken},
		{"合法Token", "Bearer " + pair.AccessToken, http.StatusOK, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, code := request(r, "/me", tt.header)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCode, code)
		})
	}

	t.Run("注入用户信息", func(t *testing.T) {
		w, _ := request(r, "/me", "Bearer "+pair.AccessToken)
		assert.JSONEq(t, `{"user_id":42,"email":"reader@example.com","has_token":true}`, w.Body.String())
	})

	t.Run("黑名单Token被拒绝", func(t *testing.T) {
		blacklist[pair.AccessToken] = true
		w, code := request(r, "/me", "Bearer "+pair.AccessToken)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, apperrors.ErrCodeTokenExpired, code)
	})
}

func TestRequireRole(t *testing.T) {
	r, manager := setupRouter(t, fakeBlacklist{})

	user, err := manager.GenerateToken(1, "u@example.com", []string{"ROLE_USER"})
	require.NoError(t, err)
	admin, err := manager.GenerateToken(2, "a@example.com", []string{"ROLE_USER", "ROLE_ADMIN"})
	require.NoError(t, err)

	w, code := request(r, "/admin", "Bearer "+user.AccessToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, apperrors.ErrCodeForbidden, code)

	w, _ = request(r, "/admin", "Bearer "+admin.AccessToken)
	assert.Equal(t, http.StatusOK, w.Code)
}
