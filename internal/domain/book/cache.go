package book

import "context"

// Cache 图书详情缓存(Cache-Aside)
// Get未命中时返回(nil, nil)
type Cache interface {
	Get(ctx context.Context, id uint) (*Book, error)
	Set(ctx context.Context, b *Book) error
	Delete(ctx context.Context, id uint) error
}

// NopCache 不做任何缓存
type NopCache struct{}

func (NopCache) Get(context.Context, uint) (*Book, error) { return nil, nil }
func (NopCache) Set(context.Context, *Book) error          { return nil }
func (NopCache) Delete(context.Context, uint) error        { return nil }
