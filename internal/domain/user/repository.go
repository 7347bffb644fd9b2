package user

import (
	"context"
)

// Repository 用户仓储接口
// 接口定义在domain层,实现在infrastructure/persistence/mysql
type Repository interface {
	// Create 创建用户并写入user_roles
	// 邮箱已存在时返回ErrEmailConflict
	Create(ctx context.Context, user *User) error

	// FindByID 根据ID查找用户(包含角色),不存在返回ErrUserNotFound
	FindByID(ctx context.Context, id uint) (*User, error)

	// FindByEmail 根据邮箱查找用户(包含角色),不存在返回ErrUserNotFound
	FindByEmail(ctx context.Context, email string) (*User, error)

	// ExistsByEmail 邮箱是否已注册
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// AddRole 为用户追加角色
	AddRole(ctx context.Context, userID uint, role RoleName) error
}
