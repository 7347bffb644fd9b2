package book

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/xiebiao/online-bookstore/pkg/pagination"
)

// CategoryChecker 校验分类是否存在(由category.Service实现)
type CategoryChecker interface {
	EnsureExist(ctx context.Context, ids []uint) error
}

// Service 图书领域服务接口
// 设计说明:
// 1. 领域服务封装业务规则校验,不依赖具体的Repository实现
// 2. 详情查询走Cache-Aside,写操作后删除缓存
type Service interface {
	// CreateBook 创建图书
	// 业务规则:
	// - 书名/作者非空,ISBN格式合法,价格在(0, 999999.99]
	// - ISBN不能重复
	// - 分类ID必须全部存在(不会隐式创建分类)
	CreateBook(ctx context.Context, d Draft) (*Book, error)

	// GetBook 获取图书详情
	GetBook(ctx context.Context, id uint) (*Book, error)

	// UpdateBook 整体替换图书信息,图书不存在时不做任何写入
	UpdateBook(ctx context.Context, id uint, d Draft) (*Book, error)

	// DeleteBook 删除图书
	DeleteBook(ctx context.Context, id uint) error

	// ListBooks 分页查询图书列表
	ListBooks(ctx context.Context, page pagination.Params) ([]*Book, int64, error)

	// ListBooksByCategory 分页查询分类下的图书
	ListBooksByCategory(ctx context.Context, categoryID uint, page pagination.Params) ([]*Book, int64, error)

	// SearchBooks 按字段条件搜索
	SearchBooks(ctx context.Context, params SearchParams) ([]*Book, error)
}

type service struct {
	repo       Repository
	categories CategoryChecker
	cache      Cache
}

// NewService 创建图书领域服务,cache为nil时不使用缓存
func NewService(repo Repository, categories CategoryChecker, cache Cache) Service {
	if cache == nil {
		cache = NopCache{}
	}
	return &service{repo: repo, categories: categories, cache: cache}
}

func (s *service) CreateBook(ctx context.Context, d Draft) (*Book, error) {
	// 1. 实体校验
	b, err := NewBook(d)
	if err != nil {
		return nil, err
	}

	// 2. 分类必须存在
	if err := s.categories.EnsureExist(ctx, b.CategoryIDs); err != nil {
		return nil, err
	}

	// 3. ISBN唯一(数据库唯一索引兜底)
	if err := s.ensureISBNFree(ctx, b.ISBN, 0); err != nil {
		return nil, err
	}

	// 4. 持久化
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) GetBook(ctx context.Context, id uint) (*Book, error) {
	if cached, err := s.cache.Get(ctx, id); err != nil {
		zap.L().Warn("读取图书缓存失败", zap.Uint("book_id", id), zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, wrapNotFound(err, id)
	}

	if err := s.cache.Set(ctx, b); err != nil {
		zap.L().Warn("写入图书缓存失败", zap.Uint("book_id", id), zap.Error(err))
	}
	return b, nil
}

func (s *service) UpdateBook(ctx context.Context, id uint, d Draft) (*Book, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, wrapNotFound(err, id)
	}

	if err := b.Replace(d); err != nil {
		return nil, err
	}
	if err := s.categories.EnsureExist(ctx, b.CategoryIDs); err != nil {
		return nil, err
	}
	if err := s.ensureISBNFree(ctx, b.ISBN, b.ID); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	s.evict(ctx, id)
	return b, nil
}

func (s *service) DeleteBook(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return wrapNotFound(err, id)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.evict(ctx, id)
	return nil
}

func (s *service) ListBooks(ctx context.Context, page pagination.Params) ([]*Book, int64, error) {
	return s.repo.List(ctx, page.Normalize())
}

func (s *service) ListBooksByCategory(ctx context.Context, categoryID uint, page pagination.Params) ([]*Book, int64, error) {
	if err := s.categories.EnsureExist(ctx, []uint{categoryID}); err != nil {
		return nil, 0, err
	}
	return s.repo.ListByCategory(ctx, categoryID, page.Normalize())
}

func (s *service) SearchBooks(ctx context.Context, params SearchParams) ([]*Book, error) {
	return s.repo.Search(ctx, params)
}

// =========================================
// 辅助函数
// =========================================

// ensureISBNFree 检查ISBN是否被其他图书占用(selfID为当前图书,创建时为0)
func (s *service) ensureISBNFree(ctx context.Context, isbn string, selfID uint) error {
	existing, err := s.repo.FindByISBN(ctx, isbn)
	if err != nil {
		if errors.Is(err, ErrBookNotFound) {
			return nil
		}
		return err
	}
	if existing != nil && existing.ID != selfID {
		return DuplicateISBNError(isbn)
	}
	return nil
}

func (s *service) evict(ctx context.Context, id uint) {
	if err := s.cache.Delete(ctx, id); err != nil {
		zap.L().Warn("删除图书缓存失败", zap.Uint("book_id", id), zap.Error(err))
	}
}

func wrapNotFound(err error, id uint) error {
	if errors.Is(err, ErrBookNotFound) {
		return NotFoundError(id)
	}
	return err
}
