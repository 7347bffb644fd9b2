package grpc

import (
	"context"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"

	healthcheck "github.com/xiebiao/online-bookstore/internal/infrastructure/health"
)

type fakeChecker struct {
	healthy atomic.Bool
}

func (f *fakeChecker) Check(context.Context) (healthcheck.Result, bool) {
	if f.healthy.Load() {
		return healthcheck.Result{"database": "ok"}, true
	}
	return healthcheck.Result{"database": "error: down"}, false
}

func TestHealthServer(t *testing.T) {
	checker := &fakeChecker{}
	checker.healthy.Store(true)

	srv := NewHealthServer(checker, 20*time.Millisecond, zap.NewNop())

	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	done := make(chan error, 1)
	go func() { done <- srv.ServeListener(ctx, lis) }()

	conn, err := grpc.Dial("bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	client := healthpb.NewHealthClient(conn)

	t.Run("依赖正常", func(t *testing.T) {
		resp, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: ServiceName})
		require.NoError(t, err)
		assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.Status)
	})

	t.Run("依赖故障后切换为NOT_SERVING", func(t *testing.T) {
		checker.healthy.Store(false)
		assert.Eventually(t, func() bool {
			resp, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: ServiceName})
			return err == nil && resp.Status == healthpb.HealthCheckResponse_NOT_SERVING
		}, time.Second, 10*time.Millisecond)
	})

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("服务未在取消后退出")
	}
}
