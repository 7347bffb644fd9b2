package book

import (
	"context"

	"github.com/xiebiao/online-bookstore/internal/domain/book"
	"github.com/xiebiao/online-bookstore/pkg/pagination"
)

// GetBookUseCase 图书详情用例
type GetBookUseCase struct {
	bookService book.Service
}

// NewGetBookUseCase 创建详情用例
func NewGetBookUseCase(bookService book.Service) *GetBookUseCase {
	return &GetBookUseCase{bookService: bookService}
}

// Execute 查询详情(领域服务内部走缓存)
func (uc *GetBookUseCase) Execute(ctx context.Context, id uint) (*BookResponse, error) {
	b, err := uc.bookService.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toBookResponse(b)
	return &resp, nil
}

// ListBooksUseCase 图书列表查询用例
// 1. 按id排序分页
// 2. CategoryID非0时查询分类下的图书(分类必须存在)
type ListBooksUseCase struct {
	bookService book.Service
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{bookService: bookService}
}

// ListBooksRequest 列表查询请求
type ListBooksRequest struct {
	Page       int
	PageSize   int
	CategoryID uint
}

// Execute 执行列表查询
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) (*ListBooksResponse, error) {
	page := pagination.New(req.Page, req.PageSize)

	var (
		books []*book.Book
		total int64
		err   error
	)
	if req.CategoryID != 0 {
		books, total, err = uc.bookService.ListBooksByCategory(ctx, req.CategoryID, page)
	} else {
		books, total, err = uc.bookService.ListBooks(ctx, page)
	}
	if err != nil {
		return nil, err
	}

	return &ListBooksResponse{
		List:     toBookResponses(books),
		Total:    total,
		Page:     page.Page,
		PageSize: page.PageSize,
	}, nil
}
