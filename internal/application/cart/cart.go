package cart

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/online-bookstore/internal/application"
	"github.com/xiebiao/online-bookstore/internal/domain/cart"
	"github.com/xiebiao/online-bookstore/pkg/metrics"
)

// CartItemResponse 购物车明细
type CartItemResponse struct {
	ID        uint   `json:"id"`
	BookID    uint   `json:"book_id"`
	BookTitle string `json:"book_title"`
	BookPrice string `json:"book_price"`
	Quantity  int    `json:"quantity"`
}

// CartResponse 购物车视图
type CartResponse struct {
	UserID    uint               `json:"user_id"`
	CartItems []CartItemResponse `json:"cart_items"`
	Subtotal  string             `json:"subtotal"`
}

func toCartResponse(c *cart.ShoppingCart) *CartResponse {
	items := make([]CartItemResponse, len(c.Items))
	for i, item := range c.Items {
		items[i] = CartItemResponse{
			ID:        item.ID,
			BookID:    item.BookID,
			BookTitle: item.BookTitle,
			BookPrice: item.BookPrice.StringFixed(2),
			Quantity:  item.Quantity,
		}
	}
	return &CartResponse{UserID: c.UserID, CartItems: items, Subtotal: c.Subtotal().StringFixed(2)}
}

// CartUseCase 购物车用例
// 1. 所有写操作在一个事务中完成(读购物车 → 修改 → 保存 → 重新加载)
// 2. 操作范围由userID限定,不能操作别人的购物车明细
type CartUseCase struct {
	cartService cart.Service
	txManager   application.TxManager
}

// NewCartUseCase 创建购物车用例
func NewCartUseCase(cartService cart.Service, txManager application.TxManager) *CartUseCase {
	return &CartUseCase{cartService: cartService, txManager: txManager}
}

// Get 查询当前用户的购物车
func (uc *CartUseCase) Get(ctx context.Context, userID uint) (*CartResponse, error) {
	c, err := uc.cartService.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toCartResponse(c), nil
}

// AddBook 加入图书,同一本书累加数量
func (uc *CartUseCase) AddBook(ctx context.Context, userID, bookID uint, quantity int) (*CartResponse, error) {
	return uc.write(ctx, "add", func(ctx context.Context) (*cart.ShoppingCart, error) {
		return uc.cartService.AddBook(ctx, userID, bookID, quantity)
	})
}

// UpdateItem 修改明细数量
func (uc *CartUseCase) UpdateItem(ctx context.Context, userID, itemID uint, quantity int) (*CartResponse, error) {
	return uc.write(ctx, "update", func(ctx context.Context) (*cart.ShoppingCart, error) {
		return uc.cartService.UpdateItem(ctx, userID, itemID, quantity)
	})
}

// RemoveItem 删除明细
func (uc *CartUseCase) RemoveItem(ctx context.Context, userID, itemID uint) (*CartResponse, error) {
	return uc.write(ctx, "remove", func(ctx context.Context) (*cart.ShoppingCart, error) {
		return uc.cartService.RemoveItem(ctx, userID, itemID)
	})
}

func (uc *CartUseCase) write(ctx context.Context, op string, fn func(ctx context.Context) (*cart.ShoppingCart, error)) (*CartResponse, error) {
	var c *cart.ShoppingCart
	err := uc.txManager.Transaction(ctx, func(ctx context.Context) error {
		var err error
		c, err = fn(ctx)
		return err
	})
	if err != nil {
		zap.L().Debug("购物车操作失败", zap.String("operation", op), zap.Error(err))
		return nil, err
	}

	metrics.IncCounterVec(metrics.CartOperationsTotal, op)
	return toCartResponse(c), nil
}
