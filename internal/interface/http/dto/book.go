package dto

import "github.com/shopspring/decimal"

// BookRequest HTTP创建/更新图书请求
// validator tag说明:
// - isbn: 自定义ISBN格式校验(在validator包中注册)
// - price: 必填,范围(0, 999999.99]由领域层校验
type BookRequest struct {
	Title       string           `json:"title" binding:"required,max=255" example:"三体"`
	Author      string           `json:"author" binding:"required,max=255" example:"刘慈欣"`
	ISBN        string           `json:"isbn" binding:"required,isbn" example:"9787536692930"`
	Price       *decimal.Decimal `json:"price" binding:"required" swaggertype:"string" example:"23.00"`
	Description string           `json:"description" binding:"max=5000" example:"地球往事三部曲之一"`
	CoverImage  string           `json:"cover_image" binding:"max=500" example:"https://example.com/cover.jpg"`
	CategoryIDs []uint           `json:"category_ids" binding:"omitempty,dive,gt=0" example:"1,2"`
}

// ListRequest 分页参数
type ListRequest struct {
	Page     int `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
}

// SearchBooksRequest 按字段搜索
// 每个参数可以重复出现;isbn、price、category_id也接受逗号分隔的列表
type SearchBooksRequest struct {
	Title       []string `form:"title"`
	Author      []string `form:"author"`
	ISBN        []string `form:"isbn"`
	Price       []string `form:"price" example:"10-20"`
	Description []string `form:"description"`
	CategoryID  []string `form:"category_id"`
}

// CategoryRequest HTTP创建/更新分类请求
type CategoryRequest struct {
	Name        string `json:"name" binding:"required,max=255" example:"科幻"`
	Description string `json:"description" binding:"max=1024" example:"科幻小说"`
}
