package book

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/online-bookstore/internal/domain/book"
)

// CreateBookUseCase 新增图书用例(管理员)
type CreateBookUseCase struct {
	bookService book.Service
}

// NewCreateBookUseCase 创建新增图书用例
func NewCreateBookUseCase(bookService book.Service) *CreateBookUseCase {
	return &CreateBookUseCase{bookService: bookService}
}

// Execute 执行新增
// 业务规则校验(ISBN格式/唯一、价格范围、分类存在)由领域服务负责
func (uc *CreateBookUseCase) Execute(ctx context.Context, req BookRequest) (*BookResponse, error) {
	b, err := uc.bookService.CreateBook(ctx, req.draft())
	if err != nil {
		return nil, err
	}

	zap.L().Info("图书已创建", zap.Uint("book_id", b.ID), zap.String("isbn", b.ISBN))
	resp := toBookResponse(b)
	return &resp, nil
}

// UpdateBookUseCase 修改图书用例(管理员)
type UpdateBookUseCase struct {
	bookService book.Service
}

// NewUpdateBookUseCase 创建修改图书用例
func NewUpdateBookUseCase(bookService book.Service) *UpdateBookUseCase {
	return &UpdateBookUseCase{bookService: bookService}
}

// Execute 整体替换图书字段和分类集合
func (uc *UpdateBookUseCase) Execute(ctx context.Context, id uint, req BookRequest) (*BookResponse, error) {
	b, err := uc.bookService.UpdateBook(ctx, id, req.draft())
	if err != nil {
		return nil, err
	}
	resp := toBookResponse(b)
	return &resp, nil
}

// DeleteBookUseCase 删除图书用例(管理员)
type DeleteBookUseCase struct {
	bookService book.Service
}

// NewDeleteBookUseCase 创建删除图书用例
func NewDeleteBookUseCase(bookService book.Service) *DeleteBookUseCase {
	return &DeleteBookUseCase{bookService: bookService}
}

// Execute 执行删除
func (uc *DeleteBookUseCase) Execute(ctx context.Context, id uint) error {
	if err := uc.bookService.DeleteBook(ctx, id); err != nil {
		return err
	}
	zap.L().Info("图书已删除", zap.Uint("book_id", id))
	return nil
}
