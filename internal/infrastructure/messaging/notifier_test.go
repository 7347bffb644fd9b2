package messaging

import (
	"context"
	"encoding/json"
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/xiebiao/online-bookstore/pkg/metrics"
	"github.com/xiebiao/online-bookstore/pkg/mq"
)

func TestNotifier_Handle(t *testing.T) {
	metrics.InitMetrics()
	core, logs := observer.New(zap.DebugLevel)
	n := NewNotifier("test.notifications", zap.New(core))
	ctx := context.Background()

	consumed := func(result string) float64 {
		var m dto.Metric
		require.NoError(t, metrics.MessagesConsumedTotal.WithLabelValues("test.notifications", result).Write(&m))
		return m.GetCounter().GetValue()
	}
	success := func() float64 { return consumed("success") }
	before := success()

	t.Run("下单事件", func(t *testing.T) {
		body, err := json.Marshal(OrderPlacedEvent{OrderNo: "ORD1", UserID: 7, Total: decimal.RequireFromString("25.5"), ItemCount: 2})
		require.NoError(t, err)

		require.NoError(t, n.Handle(ctx, mq.Delivery{RoutingKey: RoutingKeyOrderPlaced, Body: body}))

		entries := logs.FilterMessageSnippet("订单已创建").All()
		require.Len(t, entries, 1)
		assert.Equal(t, "25.50", entries[0].ContextMap()["total"])
	})

	t.Run("状态变更事件", func(t *testing.T) {
		body, err := json.Marshal(OrderStatusChangedEvent{OrderNo: "ORD1", From: "PENDING", To: "PAID"})
		require.NoError(t, err)

		require.NoError(t, n.Handle(ctx, mq.Delivery{RoutingKey: RoutingKeyOrderStatusChanged, Body: body}))

		entries := logs.FilterMessageSnippet("订单状态变更").All()
		require.Len(t, entries, 1)
		assert.Equal(t, "PAID", entries[0].ContextMap()["to"])
	})

	t.Run("消息体损坏时丢弃不重试", func(t *testing.T) {
		err := n.Handle(ctx, mq.Delivery{RoutingKey: RoutingKeyOrderPlaced, Body: []byte("{oops")})
		assert.NoError(t, err)
		assert.Equal(t, 1.0, consumed("invalid"))
	})

	assert.Equal(t, before+2, success())
}
