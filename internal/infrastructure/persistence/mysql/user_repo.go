package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/online-bookstore/internal/domain/user"
	apperrors "github.com/xiebiao/online-bookstore/pkg/errors"
)

// userRepository 用户仓储实现
// 1. 负责domain实体与GORM模型之间的转换
// 2. 角色保存在user_roles,与用户在同一事务中写入
// 3. 邮箱唯一性由数据库UNIQUE索引兜底
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储
func NewUserRepository(db *gorm.DB) user.Repository {
	return &userRepository{db: db}
}

// Create 创建用户及其角色
func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	model := &UserModel{
		Email:           u.Email,
		Password:        u.Password,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		ShippingAddress: u.ShippingAddress,
	}

	err := dbFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			return err
		}
		for _, role := range u.Roles {
			if err := addRole(tx, model.ID, role); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isDuplicateError(err) {
			return user.ErrEmailConflict
		}
		if apperrors.IsAppError(err) {
			return err
		}
		return apperrors.WrapCode(apperrors.ErrCodeDatabaseError, err, "创建用户失败")
	}

	u.ID = model.ID
	u.CreatedAt = model.CreatedAt
	u.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找用户
func (r *userRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	return r.findOne(dbFromContext(ctx, r.db).Where("id = ?", id))
}

// FindByEmail 根据邮箱查找用户(email有UNIQUE索引)
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.findOne(dbFromContext(ctx, r.db).Where("email = ?", email))
}

func (r *userRepository) findOne(query *gorm.DB) (*user.User, error) {
	var model UserModel
	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, apperrors.WrapCode(apperrors.ErrCodeDatabaseError, err, "查询用户失败")
	}

	u := toUserEntity(&model)
	roles, err := r.loadRoles(query.Session(&gorm.Session{NewDB: true}), model.ID)
	if err != nil {
		return nil, err
	}
	u.Roles = roles
	return u, nil
}

// ExistsByEmail 邮箱是否已注册(包含软删除的用户,与唯一索引保持一致)
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := dbFromContext(ctx, r.db).Unscoped().Model(&UserModel{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, apperrors.WrapCode(apperrors.ErrCodeDatabaseError, err, "查询用户失败")
	}
	return count > 0, nil
}

// AddRole 追加角色(已存在时忽略)
func (r *userRepository) AddRole(ctx context.Context, userID uint, role user.RoleName) error {
	if err := addRole(dbFromContext(ctx, r.db), userID, role); err != nil {
		if apperrors.IsAppError(err) {
			return err
		}
		return apperrors.WrapCode(apperrors.ErrCodeDatabaseError, err, "授予角色失败")
	}
	return nil
}

func (r *userRepository) loadRoles(db *gorm.DB, userID uint) ([]user.RoleName, error) {
	var names []string
	err := db.Table("roles").
		Joins("JOIN user_roles ON user_roles.role_id = roles.id").
		Where("user_roles.user_id = ?", userID).
		Order("roles.id ASC").
		Pluck("roles.name", &names).Error
	if err != nil {
		return nil, apperrors.WrapCode(apperrors.ErrCodeDatabaseError, err, "查询用户角色失败")
	}

	roles := make([]user.RoleName, 0, len(names))
	for _, n := range names {
		roles = append(roles, user.RoleName(n))
	}
	return roles, nil
}

func addRole(db *gorm.DB, userID uint, role user.RoleName) error {
	var r RoleModel
	if err := db.Where("name = ?", string(role)).First(&r).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Newf(apperrors.ErrCodeRoleNotFound, "角色不存在: %s", role)
		}
		return err
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&UserRoleModel{UserID: userID, RoleID: r.ID}).Error
}

func toUserEntity(m *UserModel) *user.User {
	return &user.User{
		ID:              m.ID,
		Email:           m.Email,
		Password:        m.Password,
		FirstName:       m.FirstName,
		LastName:        m.LastName,
		ShippingAddress: m.ShippingAddress,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
