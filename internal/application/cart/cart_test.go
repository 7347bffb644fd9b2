package cart

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/online-bookstore/internal/domain/book"
	"github.com/xiebiao/online-bookstore/internal/domain/cart"
	"github.com/xiebiao/online-bookstore/internal/domain/user"
	"github.com/xiebiao/online-bookstore/internal/infrastructure/persistence/mysql"
	apperrors "github.com/xiebiao/online-bookstore/pkg/errors"
	"github.com/xiebiao/online-bookstore/pkg/metrics"
)

func setup(t *testing.T) (*CartUseCase, uint, uint, *book.Book) {
	t.Helper()
	metrics.InitMetrics()
	ctx := context.Background()

	db, err := mysql.OpenSQLite("file::memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	users := mysql.NewUserRepository(db)
	books := mysql.NewBookRepository(db)
	service := cart.NewService(mysql.NewCartRepository(db), books)

	var ids []uint
	for _, email := range []string{"alice@example.com", "bob@example.com"} {
		u := user.NewUser(email, "hash", "A", "B", "")
		require.NoError(t, users.Create(ctx, u))
		_, err := service.CreateCart(ctx, u.ID)
		require.NoError(t, err)
		ids = append(ids, u.ID)
	}

	b, err := book.NewBook(book.Draft{Title: "三体", Author: "刘慈欣", ISBN: "9787536692930", Price: decimal.RequireFromString("23.00")})
	require.NoError(t, err)
	require.NoError(t, books.Create(ctx, b))

	return NewCartUseCase(service, mysql.NewTxManager(db)), ids[0], ids[1], b
}

func TestCartUseCase(t *testing.T) {
	ctx := context.Background()
	uc, alice, bob, b := setup(t)

	t.Run("同一本书加两次合并数量", func(t *testing.T) {
		_, err := uc.AddBook(ctx, alice, b.ID, 2)
		require.NoError(t, err)
		resp, err := uc.AddBook(ctx, alice, b.ID, 3)
		require.NoError(t, err)

		require.Len(t, resp.CartItems, 1)
		assert.Equal(t, 5, resp.CartItems[0].Quantity)
		assert.Equal(t, "三体", resp.CartItems[0].BookTitle)
		assert.Equal(t, "115.00", resp.Subtotal)
	})

	t.Run("图书不存在", func(t *testing.T) {
		_, err := uc.AddBook(ctx, alice, 999, 1)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeBookNotFound))
	})

	t.Run("修改数量", func(t *testing.T) {
		c, err := uc.Get(ctx, alice)
		require.NoError(t, err)

		resp, err := uc.UpdateItem(ctx, alice, c.CartItems[0].ID, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, resp.CartItems[0].Quantity)
	})

	t.Run("不能操作别人的明细", func(t *testing.T) {
		c, err := uc.Get(ctx, alice)
		require.NoError(t, err)
		itemID := c.CartItems[0].ID

		_, err = uc.UpdateItem(ctx, bob, itemID, 4)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeCartItemNotFound))

		_, err = uc.RemoveItem(ctx, bob, itemID)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeCartItemNotFound))

		after, err := uc.Get(ctx, alice)
		require.NoError(t, err)
		assert.Len(t, after.CartItems, 1)
	})

	t.Run("删除明细", func(t *testing.T) {
		c, err := uc.Get(ctx, alice)
		require.NoError(t, err)

		resp, err := uc.RemoveItem(ctx, alice, c.CartItems[0].ID)
		require.NoError(t, err)
		assert.Empty(t, resp.CartItems)

		_, err = uc.RemoveItem(ctx, alice, c.CartItems[0].ID)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeCartItemNotFound))
	})

	t.Run("购物车不存在", func(t *testing.T) {
		_, err := uc.Get(ctx, 12345)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeCartNotFound))
	})
}
