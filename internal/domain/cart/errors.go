package cart

import (
	apperrors "github.com/xiebiao/online-bookstore/pkg/errors"
)

var (
	ErrCartNotFound     = apperrors.New(apperrors.ErrCodeCartNotFound, "购物车不存在")
	ErrCartItemNotFound = apperrors.New(apperrors.ErrCodeCartItemNotFound, "购物车明细不存在")
	ErrInvalidQuantity  = apperrors.New(apperrors.ErrCodeInvalidParams, "数量必须在1-999之间")
)

// CartNotFoundError 用户的购物车不存在
func CartNotFoundError(userID uint) error {
	return apperrors.Newf(apperrors.ErrCodeCartNotFound, "购物车不存在: user_id=%d", userID)
}

// ItemNotFoundError 明细不存在或不属于当前用户
func ItemNotFoundError(itemID uint) error {
	return apperrors.Newf(apperrors.ErrCodeCartItemNotFound, "购物车明细不存在: id=%d", itemID)
}
