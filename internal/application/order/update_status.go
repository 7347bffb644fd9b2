package order

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/online-bookstore/internal/application"
	"github.com/xiebiao/online-bookstore/internal/domain/order"
	"github.com/xiebiao/online-bookstore/pkg/metrics"
)

// UpdateStatusUseCase 修改订单状态(管理员)
// 合法流转:PENDING→PAID|CANCELLED, PAID→SHIPPED|CANCELLED, SHIPPED→DELIVERED
type UpdateStatusUseCase struct {
	orderService order.Service
	txManager    application.TxManager
	events       order.EventPublisher
}

// NewUpdateStatusUseCase 创建修改状态用例
func NewUpdateStatusUseCase(
	orderService order.Service,
	txManager application.TxManager,
	events order.EventPublisher,
) *UpdateStatusUseCase {
	return &UpdateStatusUseCase{orderService: orderService, txManager: txManager, events: events}
}

// Execute status为状态名(如"PAID")
func (uc *UpdateStatusUseCase) Execute(ctx context.Context, orderID uint, status string) (*OrderResponse, error) {
	target, err := order.ParseOrderStatus(status)
	if err != nil {
		return nil, err
	}

	var (
		updated *order.Order
		from    order.OrderStatus
	)
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		var err error
		updated, from, err = uc.orderService.UpdateStatus(txCtx, orderID, target)
		return err
	})
	if err != nil {
		return nil, err
	}

	if from != updated.Status {
		metrics.IncCounterVec(metrics.OrderStatusChangesTotal, from.String(), updated.Status.String())
		zap.L().Info("订单状态已修改",
			zap.Uint("order_id", updated.ID),
			zap.String("from", from.String()),
			zap.String("to", updated.Status.String()),
		)
		if perr := uc.events.OrderStatusChanged(ctx, updated, from); perr != nil {
			zap.L().Warn("发布状态变更事件失败", zap.Uint("order_id", updated.ID), zap.Error(perr))
		}
	}

	return toOrderResponse(updated), nil
}
