package cart

import (
	"context"
	"errors"

	"github.com/xiebiao/online-bookstore/internal/domain/book"
)

// BookLookup 查询图书(由book.Repository实现)
type BookLookup interface {
	FindByID(ctx context.Context, id uint) (*book.Book, error)
}

// Service 购物车领域服务
// 所有操作都以userID限定范围,调用方负责事务边界
type Service interface {
	// CreateCart 为新用户创建空购物车(注册时调用一次)
	CreateCart(ctx context.Context, userID uint) (*ShoppingCart, error)

	// GetCart 查询用户购物车
	GetCart(ctx context.Context, userID uint) (*ShoppingCart, error)

	// AddBook 加入图书,已存在则累加数量
	AddBook(ctx context.Context, userID, bookID uint, quantity int) (*ShoppingCart, error)

	// UpdateItem 修改明细数量,明细必须属于该用户的购物车
	UpdateItem(ctx context.Context, userID, itemID uint, quantity int) (*ShoppingCart, error)

	// RemoveItem 删除明细,没有删除任何行时返回NotFound
	RemoveItem(ctx context.Context, userID, itemID uint) (*ShoppingCart, error)
}

type service struct {
	repo  Repository
	books BookLookup
}

// NewService 创建购物车领域服务
func NewService(repo Repository, books BookLookup) Service {
	return &service{repo: repo, books: books}
}

func (s *service) CreateCart(ctx context.Context, userID uint) (*ShoppingCart, error) {
	c := NewShoppingCart(userID)
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) GetCart(ctx context.Context, userID uint) (*ShoppingCart, error) {
	c, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrCartNotFound) {
			return nil, CartNotFoundError(userID)
		}
		return nil, err
	}
	return c, nil
}

func (s *service) AddBook(ctx context.Context, userID, bookID uint, quantity int) (*ShoppingCart, error) {
	// 1. 图书必须存在
	if _, err := s.books.FindByID(ctx, bookID); err != nil {
		if errors.Is(err, book.ErrBookNotFound) {
			return nil, book.NotFoundError(bookID)
		}
		return nil, err
	}

	// 2. 加载购物车(含明细)
	c, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	// 3. 合并数量
	if _, err := c.AddBook(bookID, quantity); err != nil {
		return nil, err
	}

	// 4. 持久化后重新加载,带出书名和价格
	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	return s.GetCart(ctx, userID)
}

func (s *service) UpdateItem(ctx context.Context, userID, itemID uint, quantity int) (*ShoppingCart, error) {
	c, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := c.UpdateQuantity(itemID, quantity); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) RemoveItem(ctx context.Context, userID, itemID uint) (*ShoppingCart, error) {
	c, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	deleted, err := s.repo.DeleteItem(ctx, c.ID, itemID)
	if err != nil {
		return nil, err
	}
	if !deleted {
		return nil, ItemNotFoundError(itemID)
	}

	remaining := c.Items[:0]
	for _, item := range c.Items {
		if item.ID != itemID {
			remaining = append(remaining, item)
		}
	}
	c.Items = remaining
	return c, nil
}
