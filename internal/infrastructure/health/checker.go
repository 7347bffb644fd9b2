package health

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Probe 单个依赖的探测函数
type Probe func(ctx context.Context) error

// Checker 依赖健康检查(/ping和gRPC Health共用)
type Checker struct {
	probes  map[string]Probe
	order   []string
	timeout time.Duration
}

// NewChecker 创建健康检查器,默认每个探测超时2秒
func NewChecker() *Checker {
	return &Checker{probes: make(map[string]Probe), timeout: 2 * time.Second}
}

// Add 注册探测,name重复时覆盖
func (c *Checker) Add(name string, p Probe) *Checker {
	if _, ok := c.probes[name]; !ok {
		c.order = append(c.order, name)
	}
	c.probes[name] = p
	return c
}

// WithDB 探测数据库连接
func (c *Checker) WithDB(db *gorm.DB) *Checker {
	return c.Add("database", func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	})
}

// WithRedis 探测Redis连接
func (c *Checker) WithRedis(client redis.UniversalClient) *Checker {
	return c.Add("redis", func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	})
}

// Result 探测结果,key为依赖名,value为"ok"或错误信息
type Result map[string]string

// Check 依次执行所有探测,全部成功时healthy为true
func (c *Checker) Check(ctx context.Context) (result Result, healthy bool) {
	result = make(Result, len(c.order))
	healthy = true
	for _, name := range c.order {
		pctx, cancel := context.WithTimeout(ctx, c.timeout)
		err := c.probes[name](pctx)
		cancel()

		if err != nil {
			result[name] = fmt.Sprintf("error: %v", err)
			healthy = false
			continue
		}
		result[name] = "ok"
	}
	return result, healthy
}
