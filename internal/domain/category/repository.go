package category

import (
	"context"

	"github.com/xiebiao/online-bookstore/pkg/pagination"
)

// Repository 分类仓储接口
type Repository interface {
	Create(ctx context.Context, c *Category) error
	// FindByID 不存在返回ErrCategoryNotFound
	FindByID(ctx context.Context, id uint) (*Category, error)
	Update(ctx context.Context, c *Category) error
	// Delete 先删除book_categories中的关联,再删除分类
	// 返回被解除关联的图书ID
	Delete(ctx context.Context, id uint) ([]uint, error)
	List(ctx context.Context, page pagination.Params) ([]*Category, int64, error)
	// FindMissingIDs 返回ids中不存在的分类ID(保持输入顺序)
	FindMissingIDs(ctx context.Context, ids []uint) ([]uint, error)
}
