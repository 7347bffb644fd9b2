package book

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/online-bookstore/internal/domain/book"
)

// =========================================
// 应用层DTO
// =========================================

// BookRequest 创建/更新图书请求
type BookRequest struct {
	Title       string
	Author      string
	ISBN        string
	Price       decimal.Decimal
	Description string
	CoverImage  string
	CategoryIDs []uint
}

func (r BookRequest) draft() book.Draft {
	return book.Draft{
		Title:       r.Title,
		Author:      r.Author,
		ISBN:        r.ISBN,
		Price:       r.Price,
		Description: r.Description,
		CoverImage:  r.CoverImage,
		CategoryIDs: r.CategoryIDs,
	}
}

// BookResponse 图书响应
// 价格序列化为两位小数的字符串
type BookResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	ISBN        string `json:"isbn"`
	Price       string `json:"price"`
	Description string `json:"description"`
	CoverImage  string `json:"cover_image"`
	CategoryIDs []uint `json:"category_ids"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// ListBooksResponse 分页结果
type ListBooksResponse struct {
	List     []BookResponse
	Total    int64
	Page     int
	PageSize int
}

func toBookResponse(b *book.Book) BookResponse {
	ids := b.CategoryIDs
	if ids == nil {
		ids = []uint{}
	}
	return BookResponse{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		ISBN:        b.ISBN,
		Price:       b.Price.StringFixed(2),
		Description: b.Description,
		CoverImage:  b.CoverImage,
		CategoryIDs: ids,
		CreatedAt:   b.CreatedAt.Format(time.DateTime),
		UpdatedAt:   b.UpdatedAt.Format(time.DateTime),
	}
}

func toBookResponses(books []*book.Book) []BookResponse {
	list := make([]BookResponse, len(books))
	for i, b := range books {
		list[i] = toBookResponse(b)
	}
	return list
}
