package handler

import (
	"github.com/gin-gonic/gin"

	appuser "github.com/xiebiao/online-bookstore/internal/application/user"
	"github.com/xiebiao/online-bookstore/internal/interface/http/dto"
	"github.com/xiebiao/online-bookstore/internal/interface/http/middleware"
	"github.com/xiebiao/online-bookstore/pkg/response"
)

// UserHandler 注册/登录/登出
type UserHandler struct {
	register *appuser.RegisterUseCase
	login    *appuser.LoginUseCase
	logout   *appuser.LogoutUseCase
	refresh  *appuser.RefreshTokenUseCase
}

// NewUserHandler 创建用户处理器
func NewUserHandler(
	register *appuser.RegisterUseCase,
	login *appuser.LoginUseCase,
	logout *appuser.LogoutUseCase,
	refresh *appuser.RefreshTokenUseCase,
) *UserHandler {
	return &UserHandler{register: register, login: login, logout: logout, refresh: refresh}
}

// Register 用户注册
// @Summary      用户注册
// @Description  创建账号(ROLE_USER)并创建空购物车
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "注册信息"
// @Success      201 {object} response.Response{data=appuser.UserResponse} "注册成功"
// @Failure      400 {object} response.Response "参数错误"
// @Failure      409 {object} response.Response "邮箱已存在"
// @Router       /api/v1/auth/registration [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.register.Execute(c.Request.Context(), appuser.RegisterRequest{
		Email:           req.Email,
		Password:        req.Password,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Login 用户登录
// @Summary      用户登录
// @Description  验证邮箱密码,返回JWT Token
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "登录信息"
// @Success      200 {object} response.Response{data=appuser.LoginResponse} "登录成功"
// @Failure      401 {object} response.Response "邮箱或密码错误"
// @Router       /api/v1/auth/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.login.Execute(c.Request.Context(), appuser.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
		ClientIP: c.ClientIP(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Refresh 刷新Access Token
// @Summary      刷新Token
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        request body dto.RefreshTokenRequest true "Refresh Token"
// @Success      200 {object} response.Response{data=appuser.RefreshResponse}
// @Failure      401 {object} response.Response "Token无效或已登出"
// @Router       /api/v1/auth/refresh [post]
func (h *UserHandler) Refresh(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.refresh.Execute(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Logout 登出
// @Summary      登出
// @Description  删除会话,当前Access Token加入黑名单
// @Tags         认证
// @Security     BearerAuth
// @Success      204
// @Failure      401 {object} response.Response "未登录"
// @Router       /api/v1/auth/logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	token, expiresAt := middleware.GetAccessToken(c)
	if err := h.logout.Execute(c.Request.Context(), middleware.GetUserID(c), token, expiresAt); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
