package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/online-bookstore/pkg/errors"
)

func TestSearchParamsValues(t *testing.T) {
	p := SearchParams{
		Titles:  []string{" go ", "", "  "},
		Authors: []string{"tolkien", "rowling"},
	}

	assert.Equal(t, []string{"go"}, p.Values(FieldTitle))
	assert.Equal(t, []string{"tolkien", "rowling"}, p.Values(FieldAuthor))
	assert.Empty(t, p.Values(FieldPrice))
	assert.False(t, p.IsEmpty())
	assert.True(t, SearchParams{Titles: []string{" "}}.IsEmpty())
}

func TestSearchFieldOrder(t *testing.T) {
	names := make([]string, 0, NumSearchFields)
	for _, f := range SearchFields {
		names = append(names, f.String())
	}
	assert.Equal(t, []string{"title", "author", "isbn", "price", "description", "category_id"}, names)
}

func TestParsePriceTerm(t *testing.T) {
	t.Run("等值", func(t *testing.T) {
		term, err := ParsePriceTerm("12.50")
		require.NoError(t, err)
		assert.True(t, term.IsExact())
		assert.Equal(t, "12.5", term.Min.String())
	})

	t.Run("闭区间", func(t *testing.T) {
		term, err := ParsePriceTerm("10-20")
		require.NoError(t, err)
		assert.False(t, term.IsExact())
		assert.Equal(t, "10", term.Min.String())
		assert.Equal(t, "20", term.Max.String())
	})

	t.Run("只有下限", func(t *testing.T) {
		term, err := ParsePriceTerm("10-")
		require.NoError(t, err)
		assert.NotNil(t, term.Min)
		assert.Nil(t, term.Max)
	})

	t.Run("只有上限", func(t *testing.T) {
		term, err := ParsePriceTerm("-20")
		require.NoError(t, err)
		assert.Nil(t, term.Min)
		assert.Equal(t, "20", term.Max.String())
	})

	t.Run("非法值", func(t *testing.T) {
		for _, raw := range []string{"abc", "-", "20-10", "1-2-3", "--5", ""} {
			_, err := ParsePriceTerm(raw)
			require.Error(t, err, raw)
			assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidParams), raw)
		}
	})
}

func TestParseCategoryTerm(t *testing.T) {
	id, err := ParseCategoryTerm(" 7 ")
	require.NoError(t, err)
	assert.Equal(t, uint(7), id)

	for _, raw := range []string{"0", "-1", "x"} {
		_, err := ParseCategoryTerm(raw)
		assert.Error(t, err, raw)
	}
}
