package book

import (
	"context"

	"github.com/xiebiao/online-bookstore/pkg/pagination"
)

// Repository 图书仓储接口(依赖倒置原则)
// 由domain层定义接口,infrastructure层实现
type Repository interface {
	// Create 创建图书,同时写入分类关联
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书(包含分类ID),不存在返回ErrBookNotFound
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindByISBN 根据ISBN查找图书,已软删除的图书也会返回
	// 删除后ISBN仍被占用,不能再用于新图书
	FindByISBN(ctx context.Context, isbn string) (*Book, error)

	// Update 更新图书信息并替换分类关联
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书(软删除)
	Delete(ctx context.Context, id uint) error

	// List 分页查询图书列表(按ID排序,包含分类ID)
	List(ctx context.Context, page pagination.Params) ([]*Book, int64, error)

	// ListByCategory 分页查询某个分类下的图书(不加载分类ID)
	ListByCategory(ctx context.Context, categoryID uint, page pagination.Params) ([]*Book, int64, error)

	// Search 按字段条件搜索,返回全部匹配的图书(包含分类ID)
	// 价格/分类条件无法解析时返回参数错误
	Search(ctx context.Context, params SearchParams) ([]*Book, error)
}
