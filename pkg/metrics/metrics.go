package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 指标命名遵循Prometheus规范：<namespace>_<name>_<unit>
// Counter只增不减，Gauge可增可减，Histogram统计分布

var (
	initOnce sync.Once

	// ========== HTTP指标 ==========

	HTTPRequestsTotal      *prometheus.CounterVec
	HTTPRequestDuration    *prometheus.HistogramVec
	HTTPRequestsInProgress prometheus.Gauge

	// ========== 订单指标 ==========

	OrdersPlacedTotal       prometheus.Counter
	OrdersFailedTotal       *prometheus.CounterVec
	OrderPlacementDuration  prometheus.Histogram
	OrderStatusChangesTotal *prometheus.CounterVec

	// ========== 购物车与目录指标 ==========

	CartOperationsTotal *prometheus.CounterVec
	BookSearchesTotal   prometheus.Counter
	BookSearchResults   prometheus.Histogram
	CacheRequestsTotal  *prometheus.CounterVec

	// ========== 熔断器与消息指标 ==========

	CircuitBreakerState    *prometheus.GaugeVec
	CircuitBreakerRequests *prometheus.CounterVec
	MessagesPublishedTotal *prometheus.CounterVec
	MessagesConsumedTotal  *prometheus.CounterVec
)

// InitMetrics 注册所有指标（可重复调用，只注册一次）
func InitMetrics() {
	initOnce.Do(register)
}

func register() {
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP请求耗时（秒）",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	OrdersPlacedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_placed_total",
			Help: "下单成功总数",
		},
	)

	OrdersFailedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_failed_total",
			Help: "下单失败总数",
		},
		[]string{"reason"}, // empty_cart | not_found | internal ...
	)

	OrderPlacementDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "order_placement_duration_seconds",
			Help:    "下单耗时（秒）",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	OrderStatusChangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_status_changes_total",
			Help: "订单状态变更次数",
		},
		[]string{"from", "to"},
	)

	CartOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_operations_total",
			Help: "购物车操作次数",
		},
		[]string{"operation"}, // add | update | remove
	)

	BookSearchesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "book_searches_total",
			Help: "图书搜索次数",
		},
	)

	BookSearchResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "book_search_results",
			Help:    "单次搜索返回的图书数量",
			Buckets: []float64{0, 1, 5, 10, 50, 100, 500},
		},
	)

	CacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_requests_total",
			Help: "缓存访问次数",
		},
		[]string{"cache", "result"}, // result: hit | miss | error
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "熔断器请求总数",
		},
		[]string{"name", "result"}, // success | failure | rejected
	)

	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_published_total",
			Help: "消息发布总数",
		},
		[]string{"exchange", "routing_key", "result"},
	)

	MessagesConsumedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_consumed_total",
			Help: "消息消费总数",
		},
		[]string{"queue", "result"},
	)
}

// Handler 暴露/metrics端点
func Handler() http.Handler {
	return promhttp.Handler()
}

// =========================================
// 辅助函数
// =========================================

// IncCounter 递增Counter
func IncCounter(counter prometheus.Counter) {
	if counter != nil {
		counter.Inc()
	}
}

// IncCounterVec 递增带标签的Counter
func IncCounterVec(counter *prometheus.CounterVec, labels ...string) {
	if counter != nil {
		counter.WithLabelValues(labels...).Inc()
	}
}

// SetGaugeVec 设置带标签的Gauge
func SetGaugeVec(gauge *prometheus.GaugeVec, value float64, labels ...string) {
	if gauge != nil {
		gauge.WithLabelValues(labels...).Set(value)
	}
}

// ObserveHistogram 记录Histogram观测值
func ObserveHistogram(histogram prometheus.Observer, value float64) {
	if histogram != nil {
		histogram.Observe(value)
	}
}
