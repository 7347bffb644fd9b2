package book

import (
	"context"

	"github.com/xiebiao/online-bookstore/internal/domain/book"
	"github.com/xiebiao/online-bookstore/pkg/metrics"
	"github.com/xiebiao/online-bookstore/pkg/tracing"
)

const tracerName = "application/book"

// SearchBooksUseCase 动态条件搜索
// 同一字段的多个值是OR关系,不同字段之间是AND关系
// 没有任何条件时返回全部图书
type SearchBooksUseCase struct {
	bookService book.Service
}

// NewSearchBooksUseCase 创建搜索用例
func NewSearchBooksUseCase(bookService book.Service) *SearchBooksUseCase {
	return &SearchBooksUseCase{bookService: bookService}
}

// SearchBooksRequest 每个字段可以有多个值
type SearchBooksRequest struct {
	Titles       []string
	Authors      []string
	ISBNs        []string
	Prices       []string // "12.5" | "10-20" | "10-" | "-20"
	Descriptions []string
	CategoryIDs  []string
}

// Execute 执行搜索
func (uc *SearchBooksUseCase) Execute(ctx context.Context, req SearchBooksRequest) (list []BookResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "SearchBooks")
	defer func() { tracing.End(span, err) }()

	metrics.IncCounter(metrics.BookSearchesTotal)

	books, err := uc.bookService.SearchBooks(ctx, book.SearchParams{
		Titles:       req.Titles,
		Authors:      req.Authors,
		ISBNs:        req.ISBNs,
		Prices:       req.Prices,
		Descriptions: req.Descriptions,
		CategoryIDs:  req.CategoryIDs,
	})
	if err != nil {
		return nil, err
	}

	metrics.ObserveHistogram(metrics.BookSearchResults, float64(len(books)))
	return toBookResponses(books), nil
}
