package messaging

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/xiebiao/online-bookstore/pkg/metrics"
	"github.com/xiebiao/online-bookstore/pkg/mq"
)

// NotificationRoutingKey notifier订阅的全部订单事件
const NotificationRoutingKey = "order.*"

// Notifier 消费订单事件,每个事件输出一行通知日志
// 消息体无法解析时直接丢弃(返回nil),避免毒消息反复重新入队
type Notifier struct {
	queue  string
	logger *zap.Logger
}

// NewNotifier 创建通知处理器
func NewNotifier(queue string, logger *zap.Logger) *Notifier {
	return &Notifier{queue: queue, logger: logger}
}

// Handle 实现mq.HandlerFunc
func (n *Notifier) Handle(_ context.Context, d mq.Delivery) error {
	result := "success"
	defer func() {
		metrics.IncCounterVec(metrics.MessagesConsumedTotal, n.queue, result)
	}()

	switch d.RoutingKey {
	case RoutingKeyOrderPlaced:
		var e OrderPlacedEvent
		if err := json.Unmarshal(d.Body, &e); err != nil {
			result = "invalid"
			n.logger.Warn("无法解析下单事件,丢弃", zap.Error(err))
			return nil
		}
		n.logger.Info("📦 通知:订单已创建",
			zap.String("order_no", e.OrderNo),
			zap.Uint("user_id", e.UserID),
			zap.String("total", e.Total.StringFixed(2)),
			zap.Int("items", e.ItemCount),
		)

	case RoutingKeyOrderStatusChanged:
		var e OrderStatusChangedEvent
		if err := json.Unmarshal(d.Body, &e); err != nil {
			result = "invalid"
			n.logger.Warn("无法解析状态变更事件,丢弃", zap.Error(err))
			return nil
		}
		n.logger.Info("🔔 通知:订单状态变更",
			zap.String("order_no", e.OrderNo),
			zap.Uint("user_id", e.UserID),
			zap.String("from", e.From),
			zap.String("to", e.To),
		)

	default:
		result = "ignored"
		n.logger.Debug("忽略未知事件", zap.String("routing_key", d.RoutingKey))
	}
	return nil
}
