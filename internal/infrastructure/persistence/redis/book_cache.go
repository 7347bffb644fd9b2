package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/online-bookstore/internal/domain/book"
	"github.com/xiebiao/online-bookstore/pkg/metrics"
)

const bookCacheName = "book_detail"

// BookCache 图书详情缓存(Cache-Aside)
// 1. 先查缓存,未命中再查数据库并回填
// 2. 更新/删除图书后删除缓存,而不是更新缓存
// 3. Key格式:catalog:detail:{book_id}
type BookCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewBookCache 创建图书缓存
func NewBookCache(client redis.UniversalClient, ttl time.Duration) *BookCache {
	return &BookCache{client: client, ttl: ttl}
}

var _ book.Cache = (*BookCache)(nil)

// Get 未命中返回(nil, nil)
func (c *BookCache) Get(ctx context.Context, id uint) (*book.Book, error) {
	val, err := c.client.Get(ctx, detailKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.IncCounterVec(metrics.CacheRequestsTotal, bookCacheName, "miss")
			return nil, nil
		}
		metrics.IncCounterVec(metrics.CacheRequestsTotal, bookCacheName, "error")
		return nil, fmt.Errorf("获取缓存失败: %w", err)
	}

	var b book.Book
	if err := json.Unmarshal(val, &b); err != nil {
		metrics.IncCounterVec(metrics.CacheRequestsTotal, bookCacheName, "error")
		return nil, fmt.Errorf("反序列化失败: %w", err)
	}
	metrics.IncCounterVec(metrics.CacheRequestsTotal, bookCacheName, "hit")
	return &b, nil
}

// Set 写入缓存
func (c *BookCache) Set(ctx context.Context, b *book.Book) error {
	val, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("序列化失败: %w", err)
	}
	if err := c.client.Set(ctx, detailKey(b.ID), val, c.ttl).Err(); err != nil {
		return fmt.Errorf("设置缓存失败: %w", err)
	}
	return nil
}

// Delete 删除缓存
func (c *BookCache) Delete(ctx context.Context, id uint) error {
	if err := c.client.Del(ctx, detailKey(id)).Err(); err != nil {
		return fmt.Errorf("删除缓存失败: %w", err)
	}
	return nil
}

func detailKey(id uint) string {
	return fmt.Sprintf("catalog:detail:%d", id)
}
