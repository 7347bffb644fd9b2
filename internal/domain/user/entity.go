package user

import (
	"time"
)

// RoleName 角色名称(封闭枚举)
type RoleName string

const (
	RoleUser  RoleName = "ROLE_USER"
	RoleAdmin RoleName = "ROLE_ADMIN"
)

// AllRoles 迁移时需要写入roles表的全部角色
var AllRoles = []RoleName{RoleUser, RoleAdmin}

// IsValid 是否为已定义角色
func (r RoleName) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User 用户实体(聚合根)
// 1. 密码只保存bcrypt哈希值
// 2. 领域实体不依赖GORM tag,映射由infrastructure层处理
// 3. 角色通过roles/user_roles表多对多关联
type User struct {
	ID              uint
	Email           string
	Password        string // bcrypt哈希值
	FirstName       string
	LastName        string
	ShippingAddress string // 默认收货地址(可选)
	Roles           []RoleName
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewUser 创建新用户(默认角色ROLE_USER)
// hashedPassword必须是bcrypt加密后的密码
func NewUser(email, hashedPassword, firstName, lastName, shippingAddress string) *User {
	now := time.Now()
	return &User{
		Email:           email,
		Password:        hashedPassword,
		FirstName:       firstName,
		LastName:        lastName,
		ShippingAddress: shippingAddress,
		Roles:           []RoleName{RoleUser},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// HasRole 是否拥有角色
func (u *User) HasRole(role RoleName) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// GrantRole 授予角色,已拥有时返回false
func (u *User) GrantRole(role RoleName) bool {
	if u.HasRole(role) {
		return false
	}
	u.Roles = append(u.Roles, role)
	u.UpdatedAt = time.Now()
	return true
}

// RoleStrings 角色名列表(写入JWT)
func (u *User) RoleStrings() []string {
	out := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		out = append(out, string(r))
	}
	return out
}
