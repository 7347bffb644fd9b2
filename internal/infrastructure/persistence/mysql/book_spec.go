package mysql

import (
	"strings"

	"gorm.io/gorm/clause"

	"github.com/xiebiao/online-bookstore/internal/domain/book"
)

// predicateProvider 把一个字段的原始值列表转换为查询条件
// 同一字段的多个值之间是OR关系
type predicateProvider func(values []string) (clause.Expression, error)

// providers 按SearchField下标索引的条件构造器
// 定长数组保证每个字段都有对应的实现,不存在运行时按名字查找
var providers = [book.NumSearchFields]predicateProvider{
	book.FieldTitle:       likeProvider("books.title"),
	book.FieldAuthor:      inProvider("books.author"),
	book.FieldISBN:        inProvider("books.isbn"),
	book.FieldPrice:       priceProvider,
	book.FieldDescription: likeProvider("books.description"),
	book.FieldCategory:    categoryProvider,
}

// buildBookSpec 按固定字段顺序组合条件(字段之间AND)
// 没有任何约束时返回nil,表示查询全部图书
func buildBookSpec(params book.SearchParams) ([]clause.Expression, error) {
	var exprs []clause.Expression
	for _, field := range book.SearchFields {
		values := params.Values(field)
		if len(values) == 0 {
			continue
		}
		expr, err := providers[field](values)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

// likeProvider 包含匹配: column LIKE %v%
func likeProvider(column string) predicateProvider {
	return func(values []string) (clause.Expression, error) {
		exprs := make([]clause.Expression, 0, len(values))
		for _, v := range values {
			exprs = append(exprs, clause.Expr{
				SQL:  column + " LIKE ? ESCAPE '!'",
				Vars: []interface{}{"%" + escapeLike(v) + "%"},
			})
		}
		return orOf(exprs), nil
	}
}

// inProvider 精确匹配: column IN (...)
func inProvider(column string) predicateProvider {
	return func(values []string) (clause.Expression, error) {
		return clause.Expr{SQL: column + " IN ?", Vars: []interface{}{values}}, nil
	}
}

// priceProvider 价格等值或区间
func priceProvider(values []string) (clause.Expression, error) {
	exprs := make([]clause.Expression, 0, len(values))
	for _, v := range values {
		term, err := book.ParsePriceTerm(v)
		if err != nil {
			return nil, err
		}
		switch {
		case term.IsExact():
			exprs = append(exprs, clause.Expr{SQL: "books.price = ?", Vars: []interface{}{*term.Min}})
		case term.Min != nil && term.Max != nil:
			exprs = append(exprs, clause.Expr{SQL: "books.price BETWEEN ? AND ?", Vars: []interface{}{*term.Min, *term.Max}})
		case term.Min != nil:
			exprs = append(exprs, clause.Expr{SQL: "books.price >= ?", Vars: []interface{}{*term.Min}})
		default:
			exprs = append(exprs, clause.Expr{SQL: "books.price <= ?", Vars: []interface{}{*term.Max}})
		}
	}
	return orOf(exprs), nil
}

// categoryProvider 属于任一分类
func categoryProvider(values []string) (clause.Expression, error) {
	ids := make([]uint, 0, len(values))
	for _, v := range values {
		id, err := book.ParseCategoryTerm(v)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return clause.Expr{
		SQL:  "books.id IN (SELECT book_id FROM book_categories WHERE category_id IN ?)",
		Vars: []interface{}{ids},
	}, nil
}

func orOf(exprs []clause.Expression) clause.Expression {
	if len(exprs) == 1 {
		return exprs[0]
	}
	return clause.Or(exprs...)
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// escapeLike 转义LIKE通配符(MySQL和SQLite都支持ESCAPE子句)
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
