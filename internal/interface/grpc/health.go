package grpc

import (
	"context"
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	healthcheck "github.com/xiebiao/online-bookstore/internal/infrastructure/health"
)

// ServiceName 对外暴露的健康检查服务名
const ServiceName = "bookstore"

// Checker 依赖探测
type Checker interface {
	Check(ctx context.Context) (healthcheck.Result, bool)
}

// HealthServer gRPC健康检查服务
// 定时探测数据库和Redis，把结果同步到grpc_health_v1的服务状态
type HealthServer struct {
	server   *grpc.Server
	health   *health.Server
	checker  Checker
	interval time.Duration
	logger   *zap.Logger
}

// NewHealthServer 创建健康检查服务，interval<=0时默认10秒
func NewHealthServer(checker Checker, interval time.Duration, logger *zap.Logger) *HealthServer {
	if interval <= 0 {
		interval = 10 * time.Second
	}

	hs := health.NewServer()
	srv := grpc.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	reflection.Register(srv)

	return &HealthServer{
		server:   srv,
		health:   hs,
		checker:  checker,
		interval: interval,
		logger:   logger,
	}
}

// Probe 执行一次探测并更新状态
func (s *HealthServer) Probe(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	result, healthy := s.checker.Check(ctx)

	status := healthpb.HealthCheckResponse_SERVING
	if !healthy {
		status = healthpb.HealthCheckResponse_NOT_SERVING
		s.logger.Warn("依赖健康检查失败", zap.Any("result", result))
	}

	s.health.SetServingStatus(ServiceName, status)
	s.health.SetServingStatus("", status)
	return status
}

// Serve 监听端口并阻塞，ctx取消时优雅关闭
func (s *HealthServer) Serve(ctx context.Context, port int) error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return fmt.Errorf("监听gRPC端口失败: %w", err)
	}
	return s.ServeListener(ctx, lis)
}

// ServeListener 在给定listener上提供服务
func (s *HealthServer) ServeListener(ctx context.Context, lis net.Listener) error {
	s.Probe(ctx)
	go s.loop(ctx)

	go func() {
		<-ctx.Done()
		s.health.Shutdown()
		s.server.GracefulStop()
	}()

	s.logger.Info("gRPC健康检查服务启动", zap.String("addr", lis.Addr().String()))
	if err := s.server.Serve(lis); err != nil && err != grpc.ErrServerStopped {
		return err
	}
	return nil
}

func (s *HealthServer) loop(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Probe(ctx)
		}
	}
}
