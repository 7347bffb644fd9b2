package category

import (
	"context"
	"errors"

	"github.com/xiebiao/online-bookstore/pkg/pagination"
)

// Service 分类领域服务
type Service interface {
	CreateCategory(ctx context.Context, name, description string) (*Category, error)
	GetCategory(ctx context.Context, id uint) (*Category, error)
	// UpdateCategory 分类不存在时不做任何写入
	UpdateCategory(ctx context.Context, id uint, name, description string) (*Category, error)
	// DeleteCategory 删除分类,返回受影响的图书ID(调用方据此清理图书缓存)
	DeleteCategory(ctx context.Context, id uint) ([]uint, error)
	ListCategories(ctx context.Context, page pagination.Params) ([]*Category, int64, error)

	// EnsureExist 校验分类ID全部存在,第一个缺失的ID作为NotFound返回
	EnsureExist(ctx context.Context, ids []uint) error
}

type service struct {
	repo Repository
}

// NewService 创建分类领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateCategory(ctx context.Context, name, description string) (*Category, error) {
	c, err := NewCategory(name, description)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) GetCategory(ctx context.Context, id uint) (*Category, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, wrapNotFound(err, id)
	}
	return c, nil
}

func (s *service) UpdateCategory(ctx context.Context, id uint, name, description string) (*Category, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, wrapNotFound(err, id)
	}
	if err := c.Rename(name, description); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) DeleteCategory(ctx context.Context, id uint) ([]uint, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, wrapNotFound(err, id)
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) ListCategories(ctx context.Context, page pagination.Params) ([]*Category, int64, error) {
	return s.repo.List(ctx, page.Normalize())
}

func (s *service) EnsureExist(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	missing, err := s.repo.FindMissingIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return NotFoundError(missing[0])
	}
	return nil
}

// wrapNotFound 仓储层的通用NotFound补充上ID
func wrapNotFound(err error, id uint) error {
	if errors.Is(err, ErrCategoryNotFound) {
		return NotFoundError(id)
	}
	return err
}
