package category

import (
	apperrors "github.com/xiebiao/online-bookstore/pkg/errors"
)

var (
	ErrCategoryNotFound   = apperrors.New(apperrors.ErrCodeCategoryNotFound, "分类不存在")
	ErrNameDuplicate      = apperrors.New(apperrors.ErrCodeDuplicateEntry, "分类名称已存在")
	ErrInvalidName        = apperrors.New(apperrors.ErrCodeInvalidParams, "分类名称不能为空且不超过255个字符")
	ErrInvalidDescription = apperrors.New(apperrors.ErrCodeInvalidParams, "分类描述不超过1024个字符")
)

// NotFoundError 带ID的分类不存在错误
func NotFoundError(id uint) error {
	return apperrors.Newf(apperrors.ErrCodeCategoryNotFound, "分类不存在: id=%d", id)
}

// DuplicateNameError 分类名称重复
func DuplicateNameError(name string) error {
	return apperrors.Newf(apperrors.ErrCodeDuplicateEntry, "分类名称已存在: %s", name)
}
