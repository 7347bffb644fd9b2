package cart

import "context"

// Repository 购物车仓储接口
type Repository interface {
	// Create 创建空购物车
	Create(ctx context.Context, c *ShoppingCart) error

	// FindByUserID 加载用户购物车及明细(包含书名和当前价格)
	// 不存在返回ErrCartNotFound
	FindByUserID(ctx context.Context, userID uint) (*ShoppingCart, error)

	// Save 保存明细:ID为0的插入,其余更新数量
	Save(ctx context.Context, c *ShoppingCart) error

	// DeleteItem 删除属于cartID的明细,返回是否删除了行
	DeleteItem(ctx context.Context, cartID, itemID uint) (bool, error)

	// ClearItems 删除购物车全部明细
	ClearItems(ctx context.Context, cartID uint) error
}
