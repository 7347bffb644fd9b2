package order

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/online-bookstore/internal/application"
	"github.com/xiebiao/online-bookstore/internal/domain/order"
	apperrors "github.com/xiebiao/online-bookstore/pkg/errors"
	"github.com/xiebiao/online-bookstore/pkg/metrics"
	"github.com/xiebiao/online-bookstore/pkg/tracing"
)

const tracerName = "application/order"

// PlaceOrderUseCase 下单用例
// 整个流程在一个事务中完成:
//  1. 加载用户购物车(含明细),为空直接失败
//  2. 确定收货地址(请求值优先,其次用户默认地址)
//  3. 按当前书价生成订单明细并计算总价
//  4. 保存订单和明细
//  5. 清空购物车
//
// 任一步骤失败整体回滚,订单不会落库,购物车保持不变
// 事务提交后才发布order.placed事件
type PlaceOrderUseCase struct {
	orderService order.Service
	txManager    application.TxManager
	events       order.EventPublisher
}

// NewPlaceOrderUseCase 创建下单用例
func NewPlaceOrderUseCase(
	orderService order.Service,
	txManager application.TxManager,
	events order.EventPublisher,
) *PlaceOrderUseCase {
	return &PlaceOrderUseCase{
		orderService: orderService,
		txManager:    txManager,
		events:       events,
	}
}

// PlaceOrderRequest 下单请求
type PlaceOrderRequest struct {
	UserID          uint // 从JWT中提取
	ShippingAddress string
}

// Execute 执行下单
func (uc *PlaceOrderUseCase) Execute(ctx context.Context, req PlaceOrderRequest) (resp *OrderResponse, err error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, tracerName, "PlaceOrder")
	span.SetAttributes(attribute.Int64("user.id", int64(req.UserID)))
	defer func() { tracing.End(span, err) }()

	var placed *order.Order
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		o, err := uc.orderService.PlaceOrder(txCtx, req.UserID, req.ShippingAddress)
		if err != nil {
			return err
		}
		placed = o
		return nil
	})
	if err != nil {
		metrics.IncCounterVec(metrics.OrdersFailedTotal, failureReason(err))
		return nil, err
	}

	metrics.IncCounter(metrics.OrdersPlacedTotal)
	metrics.ObserveHistogram(metrics.OrderPlacementDuration, time.Since(start).Seconds())
	span.SetAttributes(attribute.String("order.no", placed.OrderNo))

	zap.L().Info("下单成功",
		zap.Uint("order_id", placed.ID),
		zap.String("order_no", placed.OrderNo),
		zap.Uint("user_id", placed.UserID),
		zap.String("total", placed.Total.StringFixed(2)),
		zap.String("trace_id", tracing.ExtractTraceID(ctx)),
	)

	// 事件发布失败不影响下单结果
	if perr := uc.events.OrderPlaced(ctx, placed); perr != nil {
		zap.L().Warn("发布下单事件失败", zap.Uint("order_id", placed.ID), zap.Error(perr))
	}

	return toOrderResponse(placed), nil
}

// failureReason 下单失败原因(metrics label)
func failureReason(err error) string {
	switch code := apperrors.GetAppError(err).Code; {
	case code == apperrors.ErrCodeEmptyCart:
		return "empty_cart"
	case code >= 40400 && code < 40500:
		return "not_found"
	case code >= 40900 && code < 41000:
		return "invalid_params"
	default:
		return "internal"
	}
}
