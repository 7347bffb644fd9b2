package order

import (
	"context"
	"errors"
	"strings"

	"github.com/xiebiao/online-bookstore/internal/domain/book"
	"github.com/xiebiao/online-bookstore/internal/domain/cart"
	"github.com/xiebiao/online-bookstore/internal/domain/user"
	"github.com/xiebiao/online-bookstore/pkg/pagination"
)

// UserLookup 查询下单用户(取默认收货地址)
type UserLookup interface {
	FindByID(ctx context.Context, id uint) (*user.User, error)
}

// Service 订单领域服务
// PlaceOrder包含多个写操作,调用方必须在同一个事务中执行
type Service interface {
	// PlaceOrder 根据购物车下单
	// 1. 加载购物车(含明细和当前书价),为空返回ErrEmptyCart,含已删除的图书返回图书NotFound
	// 2. 收货地址:请求非空则使用请求值,否则使用用户默认地址
	// 3. 复制明细为订单行(价格快照),计算总价
	// 4. 保存订单,清空购物车
	PlaceOrder(ctx context.Context, userID uint, shippingAddress string) (*Order, error)

	// GetOrder 查询用户自己的订单
	GetOrder(ctx context.Context, userID, orderID uint) (*Order, error)

	// ListOrders 分页查询用户订单
	ListOrders(ctx context.Context, userID uint, page pagination.Params) ([]*Order, int64, error)

	// GetOrderItem 查询用户订单中的一条明细
	GetOrderItem(ctx context.Context, userID, orderID, itemID uint) (*OrderItem, error)

	// UpdateStatus 修改订单状态(管理员),返回修改前的状态
	UpdateStatus(ctx context.Context, orderID uint, status OrderStatus) (*Order, OrderStatus, error)
}

type service struct {
	repo  Repository
	carts cart.Repository
	users UserLookup
}

// NewService 创建订单领域服务
func NewService(repo Repository, carts cart.Repository, users UserLookup) Service {
	return &service{repo: repo, carts: carts, users: users}
}

func (s *service) PlaceOrder(ctx context.Context, userID uint, shippingAddress string) (*Order, error) {
	// 1. 加载购物车
	c, err := s.carts.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, cart.ErrCartNotFound) {
			return nil, cart.CartNotFoundError(userID)
		}
		return nil, err
	}
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}
	for _, item := range c.Items {
		if !item.Available {
			return nil, book.NotFoundError(item.BookID)
		}
	}

	// 2. 确定收货地址
	address, err := s.resolveAddress(ctx, userID, shippingAddress)
	if err != nil {
		return nil, err
	}

	// 3. 生成订单(价格快照)
	o, err := NewOrderFromCart(GenerateOrderNo(), userID, address, c.Items)
	if err != nil {
		return nil, err
	}

	// 4. 保存订单并清空购物车
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}
	if err := s.carts.ClearItems(ctx, c.ID); err != nil {
		return nil, err
	}
	c.Clear()

	return o, nil
}

func (s *service) resolveAddress(ctx context.Context, userID uint, requested string) (string, error) {
	if addr := strings.TrimSpace(requested); addr != "" {
		return addr, nil
	}
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if addr := strings.TrimSpace(u.ShippingAddress); addr != "" {
		return addr, nil
	}
	return "", ErrShippingAddressRequired
}

func (s *service) GetOrder(ctx context.Context, userID, orderID uint) (*Order, error) {
	o, err := s.repo.FindByIDAndUserID(ctx, orderID, userID)
	if err != nil {
		return nil, wrapNotFound(err, orderID)
	}
	return o, nil
}

func (s *service) ListOrders(ctx context.Context, userID uint, page pagination.Params) ([]*Order, int64, error) {
	return s.repo.ListByUserID(ctx, userID, page.Normalize())
}

func (s *service) GetOrderItem(ctx context.Context, userID, orderID, itemID uint) (*OrderItem, error) {
	o, err := s.GetOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	item, ok := o.FindItem(itemID)
	if !ok {
		return nil, ItemNotFoundError(orderID, itemID)
	}
	return item, nil
}

func (s *service) UpdateStatus(ctx context.Context, orderID uint, status OrderStatus) (*Order, OrderStatus, error) {
	o, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, 0, wrapNotFound(err, orderID)
	}

	from := o.Status
	if err := o.TransitionTo(status); err != nil {
		return nil, from, err
	}
	if from == o.Status {
		return o, from, nil
	}

	if err := s.repo.UpdateStatus(ctx, o); err != nil {
		return nil, from, err
	}
	return o, from, nil
}

func wrapNotFound(err error, id uint) error {
	if errors.Is(err, ErrOrderNotFound) {
		return NotFoundError(id)
	}
	return err
}
