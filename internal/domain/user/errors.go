package user

import (
	apperrors "github.com/xiebiao/online-bookstore/pkg/errors"
)

var (
	ErrUserNotFound  = apperrors.New(apperrors.ErrCodeUserNotFound, "用户不存在")
	ErrRoleNotFound  = apperrors.New(apperrors.ErrCodeRoleNotFound, "角色不存在")
	ErrInvalidEmail  = apperrors.New(apperrors.ErrCodeInvalidParams, "邮箱格式不正确")
	ErrNameRequired  = apperrors.New(apperrors.ErrCodeInvalidParams, "姓名不能为空")
	ErrWeakPassword  = apperrors.ErrWeakPassword
	ErrEmailConflict = apperrors.ErrEmailDuplicate
)

// EmailExistsError 邮箱已被注册
func EmailExistsError(email string) error {
	return apperrors.Newf(apperrors.ErrCodeEmailDuplicate, "User with email %s already exists", email)
}
