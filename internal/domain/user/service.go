package user

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/online-bookstore/pkg/errors"
)

// DefaultBcryptCost 密码加密强度
const DefaultBcryptCost = 12

// RegisterInput 注册参数
type RegisterInput struct {
	Email           string
	Password        string
	FirstName       string
	LastName        string
	ShippingAddress string
}

// Service 用户领域服务
// 1. 包含不属于单个实体的业务逻辑(密码加密、验证)
// 2. 不处理HTTP请求,事务边界由应用层控制
type Service interface {
	// Register 用户注册
	Register(ctx context.Context, in RegisterInput) (*User, error)

	// Login 校验邮箱和密码
	Login(ctx context.Context, email, password string) (*User, error)

	// GetUser 查询用户
	GetUser(ctx context.Context, id uint) (*User, error)

	// EnsureAdmin 引导管理员账号:不存在则创建,已存在则授予ROLE_ADMIN
	// created表示是否新建了用户
	EnsureAdmin(ctx context.Context, in RegisterInput) (u *User, created bool, err error)

	// ValidatePassword 验证密码
	ValidatePassword(hashedPassword, plainPassword string) error
}

type service struct {
	repo       Repository
	bcryptCost int
}

// Option 服务选项
type Option func(*service)

// WithBcryptCost 设置bcrypt cost(测试中使用bcrypt.MinCost加速)
func WithBcryptCost(cost int) Option {
	return func(s *service) {
		s.bcryptCost = cost
	}
}

// NewService 创建用户服务
func NewService(repo Repository, opts ...Option) Service {
	s := &service{repo: repo, bcryptCost: DefaultBcryptCost}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register 用户注册
// 业务规则:
// 1. 邮箱格式校验、密码强度校验(6-16位,包含字母和数字)
// 2. 邮箱已存在返回冲突,数据库UNIQUE索引兜底并发注册
// 3. 密码bcrypt加密,默认角色ROLE_USER
func (s *service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	u, err := s.newUser(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, ErrEmailConflict) {
			return nil, EmailExistsError(u.Email)
		}
		return nil, err
	}
	return u, nil
}

func (s *service) newUser(ctx context.Context, in RegisterInput) (*User, error) {
	email := strings.TrimSpace(in.Email)
	if !isValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if err := validatePasswordStrength(in.Password); err != nil {
		return nil, err
	}
	firstName, lastName := strings.TrimSpace(in.FirstName), strings.TrimSpace(in.LastName)
	if firstName == "" || lastName == "" {
		return nil, ErrNameRequired
	}

	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, EmailExistsError(email)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, apperrors.Wrap(err, "密码加密失败")
	}
	return NewUser(email, string(hashed), firstName, lastName, strings.TrimSpace(in.ShippingAddress)), nil
}

// Login 用户登录
// 邮箱不存在和密码错误返回同一个错误,避免泄露账号是否存在
func (s *service) Login(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperrors.ErrInvalidPassword
		}
		return nil, err
	}

	if err := s.ValidatePassword(u.Password, password); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) GetUser(ctx context.Context, id uint) (*User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperrors.Newf(apperrors.ErrCodeUserNotFound, "用户不存在: id=%d", id)
		}
		return nil, err
	}
	return u, nil
}

func (s *service) EnsureAdmin(ctx context.Context, in RegisterInput) (*User, bool, error) {
	existing, err := s.repo.FindByEmail(ctx, strings.TrimSpace(in.Email))
	switch {
	case err == nil:
		if existing.GrantRole(RoleAdmin) {
			if err := s.repo.AddRole(ctx, existing.ID, RoleAdmin); err != nil {
				return nil, false, err
			}
		}
		return existing, false, nil
	case !errors.Is(err, ErrUserNotFound):
		return nil, false, err
	}

	u, err := s.newUser(ctx, in)
	if err != nil {
		return nil, false, err
	}
	u.GrantRole(RoleAdmin)
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, false, err
	}
	return u, true, nil
}

// ValidatePassword 验证明文密码与哈希值是否匹配
func (s *service) ValidatePassword(hashedPassword, plainPassword string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return apperrors.ErrInvalidPassword
		}
		return apperrors.Wrap(err, "密码验证失败")
	}
	return nil
}

// =========================================
// 辅助函数:业务规则校验
// =========================================

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	letterRe     = regexp.MustCompile(`[a-zA-Z]`)
	digitRe      = regexp.MustCompile(`[0-9]`)
)

func isValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// validatePasswordStrength 规则:6-16位,必须包含字母和数字
func validatePasswordStrength(password string) error {
	if len(password) < 6 || len(password) > 16 {
		return ErrWeakPassword
	}
	if !letterRe.MatchString(password) || !digitRe.MatchString(password) {
		return ErrWeakPassword
	}
	return nil
}
