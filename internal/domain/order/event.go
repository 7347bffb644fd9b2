package order

import "context"

// EventPublisher 订单事件发布
// 在事务提交后调用,发布失败不影响业务结果
type EventPublisher interface {
	OrderPlaced(ctx context.Context, o *Order) error
	OrderStatusChanged(ctx context.Context, o *Order, from OrderStatus) error
}
