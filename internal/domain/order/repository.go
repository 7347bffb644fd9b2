package order

import (
	"context"

	"github.com/xiebiao/online-bookstore/pkg/pagination"
)

// Repository 订单仓储接口
// 事务通过context传递(见TxManager)
type Repository interface {
	// Create 创建订单(包含订单明细)
	Create(ctx context.Context, order *Order) error

	// FindByID 根据ID查找订单(包含明细),不存在返回ErrOrderNotFound
	FindByID(ctx context.Context, id uint) (*Order, error)

	// FindByIDAndUserID 查询用户自己的订单(WHERE id=? AND user_id=?)
	FindByIDAndUserID(ctx context.Context, id, userID uint) (*Order, error)

	// UpdateStatus 更新订单状态
	UpdateStatus(ctx context.Context, order *Order) error

	// ListByUserID 分页查询用户订单(按下单时间倒序,包含明细)
	ListByUserID(ctx context.Context, userID uint, page pagination.Params) ([]*Order, int64, error)
}
