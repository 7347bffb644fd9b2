package user

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/online-bookstore/internal/application"
	"github.com/xiebiao/online-bookstore/internal/domain/cart"
	"github.com/xiebiao/online-bookstore/internal/domain/user"
)

// RegisterUseCase 用户注册用例
// 1. 创建用户(默认ROLE_USER)
// 2. 为用户创建空购物车
// 两步在同一事务中完成,任一失败都不会留下半个账号
type RegisterUseCase struct {
	userService user.Service
	cartService cart.Service
	txManager   application.TxManager
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(userService user.Service, cartService cart.Service, txManager application.TxManager) *RegisterUseCase {
	return &RegisterUseCase{
		userService: userService,
		cartService: cartService,
		txManager:   txManager,
	}
}

// Execute 执行注册
// 返回应用层DTO,不返回密码字段
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	var created *user.User
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		u, err := uc.userService.Register(txCtx, user.RegisterInput(req))
		if err != nil {
			return err
		}
		if _, err := uc.cartService.CreateCart(txCtx, u.ID); err != nil {
			return err
		}
		created = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("用户注册成功", zap.Uint("user_id", created.ID), zap.String("email", created.Email))
	return toUserResponse(created), nil
}

// BootstrapAdminUseCase 启动时引导管理员账号
type BootstrapAdminUseCase struct {
	userService user.Service
	cartService cart.Service
	txManager   application.TxManager
}

// NewBootstrapAdminUseCase 创建管理员引导用例
func NewBootstrapAdminUseCase(userService user.Service, cartService cart.Service, txManager application.TxManager) *BootstrapAdminUseCase {
	return &BootstrapAdminUseCase{userService: userService, cartService: cartService, txManager: txManager}
}

// Execute 不存在则创建(含购物车),已存在则授予ROLE_ADMIN
func (uc *BootstrapAdminUseCase) Execute(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	var admin *user.User
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		u, created, err := uc.userService.EnsureAdmin(txCtx, user.RegisterInput(req))
		if err != nil {
			return err
		}
		if created {
			if _, err := uc.cartService.CreateCart(txCtx, u.ID); err != nil {
				return err
			}
		}
		admin = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("✓ 管理员账号就绪", zap.String("email", admin.Email))
	return toUserResponse(admin), nil
}

// =========================================
// 应用层DTO
// =========================================

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email           string
	Password        string
	FirstName       string
	LastName        string
	ShippingAddress string
}

// UserResponse 用户信息
type UserResponse struct {
	ID              uint     `json:"id"`
	Email           string   `json:"email"`
	FirstName       string   `json:"first_name"`
	LastName        string   `json:"last_name"`
	ShippingAddress string   `json:"shipping_address,omitempty"`
	Roles           []string `json:"roles"`
}

func toUserResponse(u *user.User) *UserResponse {
	return &UserResponse{
		ID:              u.ID,
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		ShippingAddress: u.ShippingAddress,
		Roles:           u.RoleStrings(),
	}
}
