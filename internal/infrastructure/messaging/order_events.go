package messaging

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/xiebiao/online-bookstore/internal/domain/order"
	"github.com/xiebiao/online-bookstore/pkg/circuitbreaker"
	apperrors "github.com/xiebiao/online-bookstore/pkg/errors"
	"github.com/xiebiao/online-bookstore/pkg/metrics"
)

// 订单事件的routing key
const (
	RoutingKeyOrderPlaced        = "order.placed"
	RoutingKeyOrderStatusChanged = "order.status_changed"
)

// OrderPlacedEvent 下单成功事件
type OrderPlacedEvent struct {
	OrderID         uint            `json:"order_id"`
	OrderNo         string          `json:"order_no"`
	UserID          uint            `json:"user_id"`
	Total           decimal.Decimal `json:"total"`
	ItemCount       int             `json:"item_count"`
	ShippingAddress string          `json:"shipping_address"`
	OccurredAt      time.Time       `json:"occurred_at"`
}

// OrderStatusChangedEvent 订单状态变更事件
type OrderStatusChangedEvent struct {
	OrderID    uint      `json:"order_id"`
	OrderNo    string    `json:"order_no"`
	UserID     uint      `json:"user_id"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher 消息发布(由mq.Publisher实现)
type Publisher interface {
	Exchange() string
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

// OrderEventPublisher 通过RabbitMQ发布订单事件
// 发布经过熔断器保护:MQ不可用时快速失败,不拖慢下单
type OrderEventPublisher struct {
	pub     Publisher
	breaker *circuitbreaker.CircuitBreaker
	timeout time.Duration
}

var _ order.EventPublisher = (*OrderEventPublisher)(nil)

const breakerName = "order-events"

// NewOrderEventPublisher 创建订单事件发布者
// 连续失败5次熔断,30秒后进入半开
func NewOrderEventPublisher(pub Publisher) *OrderEventPublisher {
	breaker := circuitbreaker.New(breakerName, circuitbreaker.Config{
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: circuitbreaker.ConsecutiveFailures(5),
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			metrics.SetGaugeVec(metrics.CircuitBreakerState, float64(to), name)
			zap.L().Warn("熔断器状态变化",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	metrics.SetGaugeVec(metrics.CircuitBreakerState, float64(circuitbreaker.StateClosed), breakerName)

	return &OrderEventPublisher{pub: pub, breaker: breaker, timeout: 5 * time.Second}
}

// OrderPlaced 发布下单事件
func (p *OrderEventPublisher) OrderPlaced(ctx context.Context, o *order.Order) error {
	return p.publish(ctx, RoutingKeyOrderPlaced, OrderPlacedEvent{
		OrderID:         o.ID,
		OrderNo:         o.OrderNo,
		UserID:          o.UserID,
		Total:           o.Total,
		ItemCount:       len(o.Items),
		ShippingAddress: o.ShippingAddress,
		OccurredAt:      time.Now(),
	})
}

// OrderStatusChanged 发布状态变更事件
func (p *OrderEventPublisher) OrderStatusChanged(ctx context.Context, o *order.Order, from order.OrderStatus) error {
	return p.publish(ctx, RoutingKeyOrderStatusChanged, OrderStatusChangedEvent{
		OrderID:    o.ID,
		OrderNo:    o.OrderNo,
		UserID:     o.UserID,
		From:       from.String(),
		To:         o.Status.String(),
		OccurredAt: time.Now(),
	})
}

// State 熔断器当前状态
func (p *OrderEventPublisher) State() circuitbreaker.State {
	return p.breaker.State()
}

func (p *OrderEventPublisher) publish(ctx context.Context, routingKey string, event interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	err := p.breaker.Execute(ctx, func(ctx context.Context) error {
		return p.pub.Publish(ctx, routingKey, event)
	})

	switch {
	case err == nil:
		metrics.IncCounterVec(metrics.CircuitBreakerRequests, breakerName, "success")
		metrics.IncCounterVec(metrics.MessagesPublishedTotal, p.pub.Exchange(), routingKey, "success")
	case errors.Is(err, circuitbreaker.ErrOpenState):
		metrics.IncCounterVec(metrics.CircuitBreakerRequests, breakerName, "rejected")
		metrics.IncCounterVec(metrics.MessagesPublishedTotal, p.pub.Exchange(), routingKey, "rejected")
	default:
		metrics.IncCounterVec(metrics.CircuitBreakerRequests, breakerName, "failure")
		metrics.IncCounterVec(metrics.MessagesPublishedTotal, p.pub.Exchange(), routingKey, "failure")
	}
	if err != nil {
		return apperrors.WrapCode(apperrors.ErrCodeMQError, err, "发布订单事件失败: "+routingKey)
	}
	return nil
}

// NopPublisher 未启用MQ时使用,只记录日志
type NopPublisher struct{}

var _ order.EventPublisher = NopPublisher{}

func (NopPublisher) OrderPlaced(_ context.Context, o *order.Order) error {
	zap.L().Debug("MQ未启用,跳过下单事件", zap.Uint("order_id", o.ID))
	return nil
}

func (NopPublisher) OrderStatusChanged(_ context.Context, o *order.Order, _ order.OrderStatus) error {
	zap.L().Debug("MQ未启用,跳过状态变更事件", zap.Uint("order_id", o.ID))
	return nil
}
