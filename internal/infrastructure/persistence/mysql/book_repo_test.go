package mysql

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/online-bookstore/internal/domain/book"
	apperrors "github.com/xiebiao/online-bookstore/pkg/errors"
	"github.com/xiebiao/online-bookstore/pkg/pagination"
)

func TestBookRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	books := NewBookRepository(db)
	categories := NewCategoryRepository(db)

	fiction := mustCategory(t, categories, "小说")
	classic := mustCategory(t, categories, "经典")

	created := mustBook(t, books, "三体", "刘慈欣", "9787536692930", "23.00", "地球往事", fiction.ID, classic.ID)
	require.NotZero(t, created.ID)

	t.Run("按ID查询带分类", func(t *testing.T) {
		got, err := books.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "三体", got.Title)
		assert.Equal(t, "23.00", got.Price.StringFixed(2))
		assert.ElementsMatch(t, []uint{fiction.ID, classic.ID}, got.CategoryIDs)
	})

	t.Run("ISBN重复", func(t *testing.T) {
		b, err := book.NewBook(book.Draft{Title: "盗版", Author: "某人", ISBN: "9787536692930", Price: decimal.NewFromInt(1)})
		require.NoError(t, err)
		err = books.Create(ctx, b)
		assert.True(t, errors.Is(err, book.ErrISBNDuplicate))
	})

	t.Run("更新替换分类", func(t *testing.T) {
		got, err := books.FindByID(ctx, created.ID)
		require.NoError(t, err)
		require.NoError(t, got.Replace(book.Draft{
			Title: "三体(典藏版)", Author: "刘慈欣", ISBN: "9787536692930",
			Price: decimal.RequireFromString("59.90"), CategoryIDs: []uint{classic.ID},
		}))
		require.NoError(t, books.Update(ctx, got))

		reloaded, err := books.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "三体(典藏版)", reloaded.Title)
		assert.Equal(t, "59.90", reloaded.Price.StringFixed(2))
		assert.Equal(t, []uint{classic.ID}, reloaded.CategoryIDs)
	})

	t.Run("按分类分页", func(t *testing.T) {
		list, total, err := books.ListByCategory(ctx, classic.ID, pagination.New(1, 10))
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, list, 1)
		assert.Empty(t, list[0].CategoryIDs)

		_, total, err = books.ListByCategory(ctx, fiction.ID, pagination.New(1, 10))
		require.NoError(t, err)
		assert.Zero(t, total)
	})

	t.Run("软删除", func(t *testing.T) {
		require.NoError(t, books.Delete(ctx, created.ID))

		_, err := books.FindByID(ctx, created.ID)
		assert.True(t, errors.Is(err, book.ErrBookNotFound))

		err = books.Delete(ctx, created.ID)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeBookNotFound))
	})

	t.Run("删除后ISBN仍被占用", func(t *testing.T) {
		got, err := books.FindByISBN(ctx, "9787536692930")
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)

		b, err := book.NewBook(book.Draft{Title: "三体", Author: "刘慈欣", ISBN: "9787536692930", Price: decimal.NewFromInt(30)})
		require.NoError(t, err)
		err = books.Create(ctx, b)
		assert.True(t, errors.Is(err, book.ErrISBNDuplicate))
	})
}

func TestBookRepository_List(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	books := NewBookRepository(db)

	isbns := []string{"9780000000001", "9780000000002", "9780000000003", "9780000000004", "9780000000005"}
	for _, isbn := range isbns {
		mustBook(t, books, "Book", "Author", isbn, "10.00", "")
	}

	list, total, err := books.List(ctx, pagination.New(2, 2))
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, list, 2)
	assert.Equal(t, "9780000000003", list[0].ISBN)
	assert.Equal(t, "9780000000004", list[1].ISBN)
}
