package order

import (
	"context"

	"github.com/xiebiao/online-bookstore/internal/domain/order"
	"github.com/xiebiao/online-bookstore/pkg/pagination"
)

// QueryOrdersUseCase 订单查询用例
// 所有查询都限定在当前用户范围内(WHERE id=? AND user_id=?)
type QueryOrdersUseCase struct {
	orderService order.Service
}

// NewQueryOrdersUseCase 创建订单查询用例
func NewQueryOrdersUseCase(orderService order.Service) *QueryOrdersUseCase {
	return &QueryOrdersUseCase{orderService: orderService}
}

// List 分页查询用户订单(按下单时间倒序)
func (uc *QueryOrdersUseCase) List(ctx context.Context, userID uint, page, pageSize int) (*ListOrdersResponse, error) {
	p := pagination.New(page, pageSize)
	orders, total, err := uc.orderService.ListOrders(ctx, userID, p)
	if err != nil {
		return nil, err
	}

	list := make([]OrderResponse, len(orders))
	for i, o := range orders {
		list[i] = *toOrderResponse(o)
	}
	return &ListOrdersResponse{List: list, Total: total, Page: p.Page, PageSize: p.PageSize}, nil
}

// Get 查询订单详情
func (uc *QueryOrdersUseCase) Get(ctx context.Context, userID, orderID uint) (*OrderResponse, error) {
	o, err := uc.orderService.GetOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(o), nil
}

// ListItems 查询订单明细
func (uc *QueryOrdersUseCase) ListItems(ctx context.Context, userID, orderID uint) ([]OrderItemResponse, error) {
	o, err := uc.orderService.GetOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	return toOrderItemResponses(o.Items), nil
}

// GetItem 查询单条明细
func (uc *QueryOrdersUseCase) GetItem(ctx context.Context, userID, orderID, itemID uint) (*OrderItemResponse, error) {
	item, err := uc.orderService.GetOrderItem(ctx, userID, orderID, itemID)
	if err != nil {
		return nil, err
	}
	resp := toOrderItemResponse(item)
	return &resp, nil
}
