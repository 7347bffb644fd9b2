package book

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	apperrors "github.com/xiebiao/online-bookstore/pkg/errors"
)

// SearchField 可搜索的字段(封闭枚举)
// 声明顺序即组合条件时的固定顺序
type SearchField int

const (
	FieldTitle SearchField = iota
	FieldAuthor
	FieldISBN
	FieldPrice
	FieldDescription
	FieldCategory

	// NumSearchFields 字段数量,用于定长数组
	NumSearchFields
)

// SearchFields 按固定顺序列出全部字段
var SearchFields = [NumSearchFields]SearchField{
	FieldTitle, FieldAuthor, FieldISBN, FieldPrice, FieldDescription, FieldCategory,
}

var fieldNames = [NumSearchFields]string{"title", "author", "isbn", "price", "description", "category_id"}

// String 返回字段对应的查询参数名
func (f SearchField) String() string {
	if f < 0 || f >= NumSearchFields {
		return "unknown"
	}
	return fieldNames[f]
}

// SearchParams 搜索参数:每个字段一组原始值,空表示不约束该字段
type SearchParams struct {
	Titles       []string
	Authors      []string
	ISBNs        []string
	Prices       []string
	Descriptions []string
	CategoryIDs  []string
}

// Values 返回字段的有效值(去掉首尾空白,丢弃空串)
func (p SearchParams) Values(f SearchField) []string {
	var raw []string
	switch f {
	case FieldTitle:
		raw = p.Titles
	case FieldAuthor:
		raw = p.Authors
	case FieldISBN:
		raw = p.ISBNs
	case FieldPrice:
		raw = p.Prices
	case FieldDescription:
		raw = p.Descriptions
	case FieldCategory:
		raw = p.CategoryIDs
	}

	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// IsEmpty 是否没有任何约束
func (p SearchParams) IsEmpty() bool {
	for _, f := range SearchFields {
		if len(p.Values(f)) > 0 {
			return false
		}
	}
	return true
}

// PriceTerm 一个价格条件:Min/Max为nil表示该端不限
// Min与Max相等且都不为nil时表示等值匹配
type PriceTerm struct {
	Min *decimal.Decimal
	Max *decimal.Decimal
}

// IsExact 是否为等值条件
func (t PriceTerm) IsExact() bool {
	return t.Min != nil && t.Max != nil && t.Min.Equal(*t.Max)
}

// ParsePriceTerm 解析价格条件
// 支持:"12.5"(等值)、"10-20"(闭区间)、"10-"(下限)、"-20"(上限)
func ParsePriceTerm(raw string) (PriceTerm, error) {
	s := strings.TrimSpace(raw)
	invalid := func() (PriceTerm, error) {
		return PriceTerm{}, apperrors.Newf(apperrors.ErrCodeInvalidParams, "无效的价格条件: %q", raw)
	}
	if s == "" {
		return invalid()
	}

	idx := strings.Index(s, "-")
	if idx < 0 {
		v, ok := parseAmount(s)
		if !ok {
			return invalid()
		}
		return PriceTerm{Min: &v, Max: &v}, nil
	}

	lo, hi := strings.TrimSpace(s[:idx]), strings.TrimSpace(s[idx+1:])
	if lo == "" && hi == "" {
		return invalid()
	}

	var term PriceTerm
	if lo != "" {
		v, ok := parseAmount(lo)
		if !ok {
			return invalid()
		}
		term.Min = &v
	}
	if hi != "" {
		v, ok := parseAmount(hi)
		if !ok {
			return invalid()
		}
		term.Max = &v
	}
	if term.Min != nil && term.Max != nil && term.Min.GreaterThan(*term.Max) {
		return invalid()
	}
	return term, nil
}

// parseAmount 解析非负金额
func parseAmount(s string) (decimal.Decimal, bool) {
	v, err := decimal.NewFromString(s)
	if err != nil || v.IsNegative() {
		return decimal.Zero, false
	}
	return v, true
}

// ParseCategoryTerm 解析分类ID条件(正整数)
func ParseCategoryTerm(raw string) (uint, error) {
	s := strings.TrimSpace(raw)
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.Newf(apperrors.ErrCodeInvalidParams, "无效的分类ID: %q", raw)
	}
	return uint(id), nil
}
