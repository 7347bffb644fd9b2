//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/xiebiao/online-bookstore/internal/app"
	"github.com/xiebiao/online-bookstore/internal/domain/order"
	"github.com/xiebiao/online-bookstore/internal/infrastructure/config"
)

// InitializeApp Wire注入器
// 运行 wire ./cmd/api 生成 wire_gen.go,与app.New组装出相同的依赖图
// 连接由main创建并负责关闭,这里只作为输入
func InitializeApp(
	cfg *config.Config,
	db *gorm.DB,
	client *goredis.Client,
	events order.EventPublisher,
	logger *zap.Logger,
) (*app.App, error) {
	wire.Build(app.ProviderSet)
	return nil, nil
}
