package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/xiebiao/online-bookstore/docs"
	"github.com/xiebiao/online-bookstore/internal/app"
	"github.com/xiebiao/online-bookstore/internal/domain/order"
	"github.com/xiebiao/online-bookstore/internal/infrastructure/config"
	"github.com/xiebiao/online-bookstore/internal/infrastructure/messaging"
	"github.com/xiebiao/online-bookstore/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/online-bookstore/internal/infrastructure/persistence/redis"
	grpchealth "github.com/xiebiao/online-bookstore/internal/interface/grpc"
	"github.com/xiebiao/online-bookstore/internal/interface/http/validator"
	"github.com/xiebiao/online-bookstore/pkg/logger"
	"github.com/xiebiao/online-bookstore/pkg/metrics"
	"github.com/xiebiao/online-bookstore/pkg/mq"
	"github.com/xiebiao/online-bookstore/pkg/tracing"
)

// @title           Online Bookstore API
// @version         1.0
// @description     在线书店:图书目录、购物车、订单
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 2. 初始化日志
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
	lg.Info("✓ 配置加载成功",
		zap.Int("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("redis", cfg.Redis.Addr()),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, lg); err != nil {
		lg.Fatal("服务异常退出", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, lg *zap.Logger) error {
	// 3. 可观测性
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(ctx, tracing.Config{
			ServiceName: cfg.Tracing.ServiceName,
			Endpoint:    cfg.Tracing.Endpoint,
			SampleRatio: cfg.Tracing.SampleRatio,
			Insecure:    true,
		})
		if err != nil {
			return fmt.Errorf("初始化链路追踪失败: %w", err)
		}
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdown(sctx)
		}()
	}
	if cfg.Metrics.Enabled {
		metrics.InitMetrics()
	}
	if err := validator.Register(); err != nil {
		return fmt.Errorf("注册校验规则失败: %w", err)
	}

	// 4. 数据库和Redis
	db, err := mysql.NewDB(cfg)
	if err != nil {
		return fmt.Errorf("初始化数据库失败: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	redisClient, err := redis.NewClient(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("初始化Redis失败: %w", err)
	}
	defer redisClient.Close()

	// 5. 订单事件(未启用MQ时只记日志)
	events, closeEvents, err := newEventPublisher(cfg.MQ)
	if err != nil {
		return err
	}
	defer closeEvents()

	// 6. 组装应用
	application := app.New(app.Deps{
		Config: cfg,
		DB:     db,
		Redis:  redisClient,
		Events: events,
		Logger: lg,
	})
	if err := application.EnsureAdmin(ctx, cfg.Admin); err != nil {
		return fmt.Errorf("引导管理员账号失败: %w", err)
	}

	// 7. gRPC健康检查
	if cfg.GRPC.Enabled {
		hs := grpchealth.NewHealthServer(application.Checker, 10*time.Second, lg)
		go func() {
			if err := hs.Serve(ctx, cfg.GRPC.Port); err != nil {
				lg.Error("gRPC服务异常", zap.Error(err))
			}
		}()
	}

	// 8. 启动HTTP服务,收到信号后优雅关闭
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      application.Engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		lg.Info("🚀 服务启动成功", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("启动服务失败: %w", err)
	case <-ctx.Done():
	}

	lg.Info("📴 收到关闭信号,开始优雅关闭...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("关闭HTTP服务失败: %w", err)
	}
	lg.Info("✓ 服务已安全关闭")
	return nil
}

func newEventPublisher(cfg config.MQConfig) (order.EventPublisher, func(), error) {
	if !cfg.Enabled {
		return messaging.NopPublisher{}, func() {}, nil
	}

	pub, err := mq.NewPublisher(cfg.URL, cfg.Exchange, mq.ExchangeTopic, "online-bookstore")
	if err != nil {
		return nil, nil, fmt.Errorf("连接消息队列失败: %w", err)
	}
	closeFn := func() {
		if err := pub.Close(); err != nil {
			zap.L().Warn("关闭消息队列连接失败", zap.Error(err))
		}
	}
	return messaging.NewOrderEventPublisher(pub), closeFn, nil
}
