package order

import (
	"time"

	"github.com/xiebiao/online-bookstore/internal/domain/order"
)

// OrderItemResponse 订单明细
type OrderItemResponse struct {
	ID       uint   `json:"id"`
	BookID   uint   `json:"book_id"`
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
	Subtotal string `json:"subtotal"`
}

// OrderResponse 订单视图
type OrderResponse struct {
	ID              uint                `json:"id"`
	OrderNo         string              `json:"order_no"`
	UserID          uint                `json:"user_id"`
	Status          string              `json:"status"`
	Total           string              `json:"total"`
	ShippingAddress string              `json:"shipping_address"`
	OrderDate       string              `json:"order_date"`
	Items           []OrderItemResponse `json:"order_items"`
}

// ListOrdersResponse 分页结果
type ListOrdersResponse struct {
	List     []OrderResponse
	Total    int64
	Page     int
	PageSize int
}

func toOrderItemResponse(i *order.OrderItem) OrderItemResponse {
	return OrderItemResponse{
		ID:       i.ID,
		BookID:   i.BookID,
		Quantity: i.Quantity,
		Price:    i.Price.StringFixed(2),
		Subtotal: i.Subtotal().StringFixed(2),
	}
}

func toOrderItemResponses(items []order.OrderItem) []OrderItemResponse {
	out := make([]OrderItemResponse, len(items))
	for i := range items {
		out[i] = toOrderItemResponse(&items[i])
	}
	return out
}

func toOrderResponse(o *order.Order) *OrderResponse {
	return &OrderResponse{
		ID:              o.ID,
		OrderNo:         o.OrderNo,
		UserID:          o.UserID,
		Status:          o.Status.String(),
		Total:           o.Total.StringFixed(2),
		ShippingAddress: o.ShippingAddress,
		OrderDate:       o.OrderDate.Format(time.DateTime),
		Items:           toOrderItemResponses(o.Items),
	}
}
