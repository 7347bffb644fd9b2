package book

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/online-bookstore/pkg/errors"
)

func validDraft() Draft {
	return Draft{
		Title:       " Go语言圣经 ",
		Author:      "Alan Donovan",
		ISBN:        "978-7-111-55842-2",
		Price:       decimal.RequireFromString("79.00"),
		Description: "The Go Programming Language",
		CategoryIDs: []uint{2, 1, 2, 0},
	}
}

func TestNewBook(t *testing.T) {
	t.Run("合法输入", func(t *testing.T) {
		b, err := NewBook(validDraft())
		require.NoError(t, err)
		assert.Equal(t, "Go语言圣经", b.Title)
		assert.Equal(t, "79.00", b.Price.StringFixed(2))
		assert.Equal(t, []uint{2, 1}, b.CategoryIDs)
		assert.False(t, b.CreatedAt.IsZero())
	})

	t.Run("书名为空", func(t *testing.T) {
		d := validDraft()
		d.Title = "  "
		_, err := NewBook(d)
		assert.True(t, errors.Is(err, ErrTitleRequired))
	})

	t.Run("价格非法", func(t *testing.T) {
		for _, p := range []string{"0", "-1", "1000000", "9.999"} {
			d := validDraft()
			d.Price = decimal.RequireFromString(p)
			_, err := NewBook(d)
			assert.Error(t, err, p)
			assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidParams), p)
		}
	})

	t.Run("ISBN非法", func(t *testing.T) {
		d := validDraft()
		d.ISBN = "12345"
		_, err := NewBook(d)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "12345")
	})
}

func TestIsValidISBN(t *testing.T) {
	tests := []struct {
		isbn string
		want bool
	}{
		{"9787115428028", true},
		{"978-7-115-42802-8", true},
		{"0 306 40615 2", true},
		{"080442957X", true},
		{"080442957x", true},
		{"08044295X7", false},
		{"97871154280", false},
		{"978711542802X", false},
		{"978711542802a", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.isbn, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidISBN(tt.isbn))
		})
	}
}

func TestReplace(t *testing.T) {
	b, err := NewBook(validDraft())
	require.NoError(t, err)

	d := validDraft()
	d.Title = "新书名"
	d.CategoryIDs = nil
	require.NoError(t, b.Replace(d))
	assert.Equal(t, "新书名", b.Title)
	assert.Empty(t, b.CategoryIDs)

	d.Author = ""
	assert.Error(t, b.Replace(d))
	assert.Equal(t, "Alan Donovan", b.Author)
}
