package order

import (
	apperrors "github.com/xiebiao/online-bookstore/pkg/errors"
)

// 订单领域错误定义
var (
	ErrOrderNotFound     = apperrors.New(apperrors.ErrCodeOrderNotFound, "订单不存在")
	ErrOrderItemNotFound = apperrors.New(apperrors.ErrCodeOrderItemNotFound, "订单明细不存在")

	// ErrEmptyCart 购物车为空,不能下单
	ErrEmptyCart = apperrors.New(apperrors.ErrCodeEmptyCart, "购物车为空,无法下单")

	// ErrInvalidStatusTransition 非法的状态转换
	ErrInvalidStatusTransition = apperrors.New(apperrors.ErrCodeInvalidOrderStatus, "订单状态不允许此操作")

	ErrShippingAddressRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "收货地址不能为空")
	ErrInvalidQuantity         = apperrors.New(apperrors.ErrCodeInvalidParams, "购买数量必须大于0")
)

func NotFoundError(id uint) error {
	return apperrors.Newf(apperrors.ErrCodeOrderNotFound, "订单不存在: id=%d", id)
}

func ItemNotFoundError(orderID, itemID uint) error {
	return apperrors.Newf(apperrors.ErrCodeOrderItemNotFound, "订单明细不存在: order_id=%d, id=%d", orderID, itemID)
}

func UnknownStatusError(name string) error {
	return apperrors.Newf(apperrors.ErrCodeInvalidParams, "未知的订单状态: %q", name)
}

func InvalidTransitionError(from, to OrderStatus) error {
	return apperrors.Newf(apperrors.ErrCodeInvalidOrderStatus, "订单状态不允许从%s变更为%s", from, to)
}
