package mysql

import (
	"context"
	"strconv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/xiebiao/online-bookstore/internal/domain/book"
	"github.com/xiebiao/online-bookstore/internal/domain/category"
)

// newTestDB 每个测试独立的SQLite内存库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := OpenSQLite("file::memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func mustCategory(t *testing.T, repo category.Repository, name string) *category.Category {
	t.Helper()
	c, err := category.NewCategory(name, name+"类图书")
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), c))
	return c
}

func mustBook(t *testing.T, repo book.Repository, title, author, isbn, price, desc string, categoryIDs ...uint) *book.Book {
	t.Helper()
	b, err := book.NewBook(book.Draft{
		Title:       title,
		Author:      author,
		ISBN:        isbn,
		Price:       decimal.RequireFromString(price),
		Description: desc,
		CategoryIDs: categoryIDs,
	})
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), b))
	return b
}

func uintString(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

func newCategoryForTest(name string) (*category.Category, error) {
	return category.NewCategory(name, "")
}
