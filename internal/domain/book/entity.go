package book

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MaxPrice 单本图书价格上限(对应decimal(10,2))
var MaxPrice = decimal.RequireFromString("999999.99")

// Book 图书实体(聚合根)
// 设计说明:
// 1. 价格使用decimal存储,保留两位小数,避免浮点误差
// 2. ISBN作为业务唯一标识(数据库层保证唯一性)
// 3. 分类只保存ID集合,不跨聚合持有Category对象
type Book struct {
	ID          uint
	Title       string
	Author      string
	ISBN        string
	Price       decimal.Decimal
	Description string
	CoverImage  string // 封面图片地址(可选)
	CategoryIDs []uint
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Draft 创建/更新图书时的输入
type Draft struct {
	Title       string
	Author      string
	ISBN        string
	Price       decimal.Decimal
	Description string
	CoverImage  string
	CategoryIDs []uint
}

// NewBook 创建新图书(工厂方法),同时校验业务规则
func NewBook(d Draft) (*Book, error) {
	b := &Book{}
	if err := b.apply(d); err != nil {
		return nil, err
	}
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now
	return b, nil
}

// Replace 用新的输入整体替换图书信息(PUT语义)
func (b *Book) Replace(d Draft) error {
	if err := b.apply(d); err != nil {
		return err
	}
	b.UpdatedAt = time.Now()
	return nil
}

func (b *Book) apply(d Draft) error {
	title := strings.TrimSpace(d.Title)
	author := strings.TrimSpace(d.Author)
	if title == "" {
		return ErrTitleRequired
	}
	if author == "" {
		return ErrAuthorRequired
	}
	if err := ValidatePrice(d.Price); err != nil {
		return err
	}
	isbn := strings.TrimSpace(d.ISBN)
	if !IsValidISBN(isbn) {
		return InvalidISBNError(isbn)
	}

	b.Title = title
	b.Author = author
	b.ISBN = isbn
	b.Price = d.Price.Round(2)
	b.Description = d.Description
	b.CoverImage = strings.TrimSpace(d.CoverImage)
	b.CategoryIDs = UniqueIDs(d.CategoryIDs)
	return nil
}

// ValidatePrice 价格必须>0且不超过MaxPrice,最多两位小数
func ValidatePrice(price decimal.Decimal) error {
	if !price.IsPositive() || price.GreaterThan(MaxPrice) {
		return ErrInvalidPrice
	}
	if !price.Equal(price.Round(2)) {
		return ErrInvalidPrice
	}
	return nil
}

// IsValidISBN 校验ISBN格式
// 允许数字、连字符和空格,ISBN-10最后一位可以是X;去掉分隔符后必须是10位或13位
func IsValidISBN(isbn string) bool {
	s := strings.TrimSpace(isbn)
	if s == "" {
		return false
	}

	n := 0
	hasX := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			if hasX {
				return false
			}
			n++
		case c == '-' || c == ' ':
		case (c == 'X' || c == 'x') && !hasX:
			hasX = true
			n++
		default:
			return false
		}
	}

	if hasX {
		// X只能出现在ISBN-10的末尾
		last := s[len(s)-1]
		return n == 10 && (last == 'X' || last == 'x')
	}
	return n == 10 || n == 13
}

// UniqueIDs 去重并过滤0,保持原有顺序
func UniqueIDs(ids []uint) []uint {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
