package user

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/online-bookstore/pkg/errors"
)

type mockRepo struct{ mock.Mock }

func (m *mockRepo) Create(ctx context.Context, u *User) error {
	args := m.Called(ctx, u)
	if args.Error(0) == nil {
		u.ID = 1
	}
	return args.Error(0)
}

func (m *mockRepo) FindByID(ctx context.Context, id uint) (*User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*User)
	return u, args.Error(1)
}

func (m *mockRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*User)
	return u, args.Error(1)
}

func (m *mockRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepo) AddRole(ctx context.Context, userID uint, role RoleName) error {
	return m.Called(ctx, userID, role).Error(0)
}

func validInput() RegisterInput {
	return RegisterInput{
		Email:     "reader@example.com",
		Password:  "secret123",
		FirstName: "San",
		LastName:  "Zhang",
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("注册成功默认ROLE_USER", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewService(repo, WithBcryptCost(bcrypt.MinCost))
		repo.On("ExistsByEmail", ctx, "reader@example.com").Return(false, nil)
		repo.On("Create", ctx, mock.AnythingOfType("*user.User")).Return(nil)

		u, err := svc.Register(ctx, validInput())
		require.NoError(t, err)
		assert.Equal(t, []RoleName{RoleUser}, u.Roles)
		assert.NotEqual(t, "secret123", u.Password)
		assert.NoError(t, svc.ValidatePassword(u.Password, "secret123"))
	})

	t.Run("邮箱已存在", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewService(repo, WithBcryptCost(bcrypt.MinCost))
		repo.On("ExistsByEmail", ctx, "reader@example.com").Return(true, nil)

		_, err := svc.Register(ctx, validInput())
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrEmailConflict))
		assert.Equal(t, "User with email reader@example.com already exists", apperrors.GetAppError(err).Message)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("密码强度不足", func(t *testing.T) {
		for _, pwd := range []string{"abc12", "abcdefgh", "12345678", "abcdefgh123456789"} {
			in := validInput()
			in.Password = pwd
			_, err := NewService(new(mockRepo)).Register(ctx, in)
			assert.True(t, errors.Is(err, ErrWeakPassword), pwd)
		}
	})

	t.Run("邮箱格式错误", func(t *testing.T) {
		in := validInput()
		in.Email = "not-an-email"
		_, err := NewService(new(mockRepo)).Register(ctx, in)
		assert.True(t, errors.Is(err, ErrInvalidEmail))
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := new(mockRepo)
	svc := NewService(repo)
	repo.On("FindByEmail", ctx, "reader@example.com").Return(&User{ID: 3, Password: string(hashed)}, nil)
	repo.On("FindByEmail", ctx, "nobody@example.com").Return(nil, ErrUserNotFound)

	u, err := svc.Login(ctx, "reader@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, uint(3), u.ID)

	_, err = svc.Login(ctx, "reader@example.com", "wrong123")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidPassword))

	_, err = svc.Login(ctx, "nobody@example.com", "secret123")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidPassword))
}

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("新建管理员", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewService(repo, WithBcryptCost(bcrypt.MinCost))
		repo.On("FindByEmail", ctx, "reader@example.com").Return(nil, ErrUserNotFound)
		repo.On("ExistsByEmail", ctx, "reader@example.com").Return(false, nil)
		repo.On("Create", ctx, mock.AnythingOfType("*user.User")).Return(nil)

		u, created, err := svc.EnsureAdmin(ctx, validInput())
		require.NoError(t, err)
		assert.True(t, created)
		assert.True(t, u.HasRole(RoleAdmin))
		assert.True(t, u.HasRole(RoleUser))
	})

	t.Run("已有用户授予ROLE_ADMIN", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewService(repo)
		repo.On("FindByEmail", ctx, "reader@example.com").Return(&User{ID: 5, Roles: []RoleName{RoleUser}}, nil)
		repo.On("AddRole", ctx, uint(5), RoleAdmin).Return(nil)

		u, created, err := svc.EnsureAdmin(ctx, validInput())
		require.NoError(t, err)
		assert.False(t, created)
		assert.True(t, u.HasRole(RoleAdmin))
		repo.AssertExpectations(t)
	})
}
