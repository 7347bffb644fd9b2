package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/xiebiao/online-bookstore/internal/infrastructure/config"
	"github.com/xiebiao/online-bookstore/internal/infrastructure/messaging"
	"github.com/xiebiao/online-bookstore/pkg/logger"
	"github.com/xiebiao/online-bookstore/pkg/metrics"
	"github.com/xiebiao/online-bookstore/pkg/mq"
)

// main 订单通知消费者
// 订阅order.*,每个事件输出一行通知日志
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	syncLogger, err := logger.Init(logger.Config{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       cfg.Log.Output,
		EnableCaller: cfg.Log.EnableCaller,
	})
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer syncLogger()
	lg := logger.L()

	if !cfg.MQ.Enabled {
		lg.Fatal("mq.enabled=false,notifier无事可做")
	}

	metrics.InitMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer, err := mq.NewConsumer(cfg.MQ.URL, cfg.MQ.Exchange, mq.ExchangeTopic, cfg.MQ.Queue,
		[]string{messaging.NotificationRoutingKey})
	if err != nil {
		lg.Fatal("创建消费者失败", zap.Error(err))
	}
	defer consumer.Close()

	// 指标单独监听,端口为HTTP端口+1
	if cfg.Metrics.Enabled {
		go serveMetrics(cfg, lg)
	}

	notifier := messaging.NewNotifier(consumer.Queue(), lg)
	if err := consumer.Consume(ctx, notifier.Handle); err != nil {
		lg.Error("消费异常退出", zap.Error(err))
	}
	lg.Info("✓ notifier已退出")
}

func serveMetrics(cfg *config.Config, lg *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle(cfg.Metrics.Path, metrics.Handler())

	addr := fmt.Sprintf(":%d", cfg.Server.Port+1)
	lg.Info("指标端点", zap.String("addr", addr+cfg.Metrics.Path))
	if err := http.ListenAndServe(addr, mux); err != nil {
		lg.Warn("指标端点退出", zap.Error(err))
	}
}
