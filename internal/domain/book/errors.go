package book

import (
	apperrors "github.com/xiebiao/online-bookstore/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在(用errors.Is按错误码匹配)
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrISBNDuplicate ISBN已存在
	ErrISBNDuplicate = apperrors.New(apperrors.ErrCodeISBNDuplicate, "ISBN号已存在")

	// ErrInvalidPrice 无效的价格
	ErrInvalidPrice = apperrors.New(apperrors.ErrCodeInvalidParams, "价格必须大于0且不超过999999.99,最多两位小数")

	ErrTitleRequired  = apperrors.New(apperrors.ErrCodeInvalidParams, "书名不能为空")
	ErrAuthorRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "作者不能为空")
)

// NotFoundError 带ID的图书不存在错误
func NotFoundError(id uint) error {
	return apperrors.Newf(apperrors.ErrCodeBookNotFound, "图书不存在: id=%d", id)
}

// DuplicateISBNError 带ISBN的重复错误
func DuplicateISBNError(isbn string) error {
	return apperrors.Newf(apperrors.ErrCodeISBNDuplicate, "ISBN号已存在: %s", isbn)
}

// InvalidISBNError ISBN格式不正确
func InvalidISBNError(isbn string) error {
	return apperrors.Newf(apperrors.ErrCodeInvalidParams, "ISBN格式不正确: %q", isbn)
}
