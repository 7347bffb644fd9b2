package mysql

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/online-bookstore/internal/domain/book"
	apperrors "github.com/xiebiao/online-bookstore/pkg/errors"
)

// seedSearchData 准备搜索用的图书:
//
//	1 The Hobbit        tolkien  10.00  fantasy
//	2 Harry Potter      rowling   5.50  fantasy, kids
//	3 100% Go           pike     42.00  tech
//	4 Go_In_Action      kennedy  30.00  tech
func seedSearchData(t *testing.T) (book.Repository, map[string]uint) {
	t.Helper()
	db := newTestDB(t)
	books := NewBookRepository(db)
	categories := NewCategoryRepository(db)

	fantasy := mustCategory(t, categories, "fantasy")
	kids := mustCategory(t, categories, "kids")
	tech := mustCategory(t, categories, "tech")

	ids := map[string]uint{
		"hobbit": mustBook(t, books, "The Hobbit", "tolkien", "9780000000011", "10.00", "There and back again", fantasy.ID).ID,
		"potter": mustBook(t, books, "Harry Potter", "rowling", "9780000000012", "5.50", "The boy who lived", fantasy.ID, kids.ID).ID,
		"pct":    mustBook(t, books, "100% Go", "pike", "9780000000013", "42.00", "all about go", tech.ID).ID,
		"under":  mustBook(t, books, "Go_In_Action", "kennedy", "9780000000014", "30.00", "go in practice", tech.ID).ID,
		"cat:fantasy": fantasy.ID,
		"cat:kids":    kids.ID,
		"cat:tech":    tech.ID,
	}
	return books, ids
}

func titles(list []*book.Book) []string {
	out := make([]string, 0, len(list))
	for _, b := range list {
		out = append(out, b.Title)
	}
	return out
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	repo, ids := seedSearchData(t)

	tests := []struct {
		name   string
		params book.SearchParams
		want   []string
	}{
		{"无条件返回全部", book.SearchParams{}, []string{"The Hobbit", "Harry Potter", "100% Go", "Go_In_Action"}},
		{"空白值视为未提供", book.SearchParams{Titles: []string{" "}}, []string{"The Hobbit", "Harry Potter", "100% Go", "Go_In_Action"}},
		{"标题包含", book.SearchParams{Titles: []string{"hob"}}, []string{"The Hobbit"}},
		{"标题多值OR", book.SearchParams{Titles: []string{"hobbit", "potter"}}, []string{"The Hobbit", "Harry Potter"}},
		{"百分号按字面匹配", book.SearchParams{Titles: []string{"%"}}, []string{"100% Go"}},
		{"下划线按字面匹配", book.SearchParams{Titles: []string{"_"}}, []string{"Go_In_Action"}},
		{"作者IN", book.SearchParams{Authors: []string{"tolkien", "rowling"}}, []string{"The Hobbit", "Harry Potter"}},
		{"作者精确匹配", book.SearchParams{Authors: []string{"tolk"}}, []string{}},
		{"ISBN", book.SearchParams{ISBNs: []string{"9780000000013"}}, []string{"100% Go"}},
		{"价格等值", book.SearchParams{Prices: []string{"5.5"}}, []string{"Harry Potter"}},
		{"价格区间", book.SearchParams{Prices: []string{"10-30"}}, []string{"The Hobbit", "Go_In_Action"}},
		{"价格下限", book.SearchParams{Prices: []string{"30-"}}, []string{"100% Go", "Go_In_Action"}},
		{"价格上限或等值", book.SearchParams{Prices: []string{"-6", "42"}}, []string{"Harry Potter", "100% Go"}},
		{"描述包含", book.SearchParams{Descriptions: []string{"go"}}, []string{"100% Go", "Go_In_Action"}},
		{"分类", book.SearchParams{CategoryIDs: []string{uintString(ids["cat:kids"])}}, []string{"Harry Potter"}},
		{"多字段AND", book.SearchParams{
			CategoryIDs: []string{uintString(ids["cat:fantasy"]), uintString(ids["cat:tech"])},
			Prices:      []string{"-20"},
		}, []string{"The Hobbit", "Harry Potter"}},
		{"多字段AND无结果", book.SearchParams{Authors: []string{"tolkien"}, Titles: []string{"potter"}}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.Search(ctx, tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(got))
		})
	}
}

func TestSearch_AttachesCategoriesAndIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo, ids := seedSearchData(t)
	params := book.SearchParams{Authors: []string{"rowling"}}

	first, err := repo.Search(ctx, params)
	require.NoError(t, err)
	second, err := repo.Search(ctx, params)
	require.NoError(t, err)

	require.Len(t, first, 1)
	assert.ElementsMatch(t, []uint{ids["cat:fantasy"], ids["cat:kids"]}, first[0].CategoryIDs)
	assert.Equal(t, first, second)
}

func TestSearch_InvalidTerms(t *testing.T) {
	ctx := context.Background()
	repo, _ := seedSearchData(t)

	for _, p := range []book.SearchParams{
		{Prices: []string{"cheap"}},
		{Prices: []string{"50-10"}},
		{Prices: []string{"10", "-5-"}},
		{CategoryIDs: []string{"abc"}},
	} {
		_, err := repo.Search(ctx, p)
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidParams))
		assert.Equal(t, 400, apperrors.GetAppError(err).HTTPStatus())
	}
}

func TestBuildBookSpec_FixedOrder(t *testing.T) {
	exprs, err := buildBookSpec(book.SearchParams{
		Descriptions: []string{"x"},
		Titles:       []string{"y"},
	})
	require.NoError(t, err)
	require.Len(t, exprs, 2)

	exprs, err = buildBookSpec(book.SearchParams{})
	require.NoError(t, err)
	assert.Empty(t, exprs)

	for _, f := range book.SearchFields {
		assert.NotNil(t, providers[f], f.String())
	}
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50!% off!_now!!`, escapeLike("50% off_now!"))
}
