package category

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/online-bookstore/internal/domain/book"
	"github.com/xiebiao/online-bookstore/internal/domain/category"
	"github.com/xiebiao/online-bookstore/pkg/pagination"
)

// CategoryRequest 创建/更新分类请求
type CategoryRequest struct {
	Name        string
	Description string
}

// CategoryResponse 分类响应
type CategoryResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// ListCategoriesResponse 分页结果
type ListCategoriesResponse struct {
	List     []CategoryResponse
	Total    int64
	Page     int
	PageSize int
}

func toCategoryResponse(c *category.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt.Format(time.DateTime),
		UpdatedAt:   c.UpdatedAt.Format(time.DateTime),
	}
}

// CategoryUseCase 分类管理用例
// 分类的读写都只涉及单个聚合,合并为一个用例对象
// 删除分类会改变图书详情中的分类ID,需要同时清理图书缓存
type CategoryUseCase struct {
	categoryService category.Service
	bookCache       book.Cache
}

// NewCategoryUseCase 创建分类用例,bookCache为nil时不清理缓存
func NewCategoryUseCase(categoryService category.Service, bookCache book.Cache) *CategoryUseCase {
	if bookCache == nil {
		bookCache = book.NopCache{}
	}
	return &CategoryUseCase{categoryService: categoryService, bookCache: bookCache}
}

// Create 新增分类,名称重复返回Conflict
func (uc *CategoryUseCase) Create(ctx context.Context, req CategoryRequest) (*CategoryResponse, error) {
	c, err := uc.categoryService.CreateCategory(ctx, req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// Get 查询分类
func (uc *CategoryUseCase) Get(ctx context.Context, id uint) (*CategoryResponse, error) {
	c, err := uc.categoryService.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// Update 修改分类,不存在时不写入
func (uc *CategoryUseCase) Update(ctx context.Context, id uint, req CategoryRequest) (*CategoryResponse, error) {
	c, err := uc.categoryService.UpdateCategory(ctx, id, req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// Delete 删除分类(同时删除与图书的关联),删除成功后清理受影响图书的缓存
func (uc *CategoryUseCase) Delete(ctx context.Context, id uint) error {
	bookIDs, err := uc.categoryService.DeleteCategory(ctx, id)
	if err != nil {
		return err
	}
	for _, bookID := range bookIDs {
		if err := uc.bookCache.Delete(ctx, bookID); err != nil {
			zap.L().Warn("删除图书缓存失败", zap.Uint("book_id", bookID), zap.Uint("category_id", id), zap.Error(err))
		}
	}
	return nil
}

// List 分页查询
func (uc *CategoryUseCase) List(ctx context.Context, page, pageSize int) (*ListCategoriesResponse, error) {
	p := pagination.New(page, pageSize)
	categories, total, err := uc.categoryService.ListCategories(ctx, p)
	if err != nil {
		return nil, err
	}

	list := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		list[i] = *toCategoryResponse(c)
	}
	return &ListCategoriesResponse{List: list, Total: total, Page: p.Page, PageSize: p.PageSize}, nil
}
