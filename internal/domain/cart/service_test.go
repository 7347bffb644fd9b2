package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/online-bookstore/internal/domain/book"
	apperrors "github.com/xiebiao/online-bookstore/pkg/errors"
)

type mockRepo struct{ mock.Mock }

func (m *mockRepo) Create(ctx context.Context, c *ShoppingCart) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockRepo) FindByUserID(ctx context.Context, userID uint) (*ShoppingCart, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(*ShoppingCart)
	return c, args.Error(1)
}

func (m *mockRepo) Save(ctx context.Context, c *ShoppingCart) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockRepo) DeleteItem(ctx context.Context, cartID, itemID uint) (bool, error) {
	args := m.Called(ctx, cartID, itemID)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepo) ClearItems(ctx context.Context, cartID uint) error {
	return m.Called(ctx, cartID).Error(0)
}

type mockBooks struct{ mock.Mock }

func (m *mockBooks) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*book.Book)
	return b, args.Error(1)
}

func cartWithItem() *ShoppingCart {
	return &ShoppingCart{ID: 10, UserID: 1, Items: []*CartItem{{ID: 100, CartID: 10, BookID: 7, Quantity: 2}}}
}

func TestAddBook(t *testing.T) {
	ctx := context.Background()

	t.Run("图书不存在", func(t *testing.T) {
		repo, books := new(mockRepo), new(mockBooks)
		books.On("FindByID", ctx, uint(9)).Return(nil, book.ErrBookNotFound)

		_, err := NewService(repo, books).AddBook(ctx, 1, 9, 1)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeBookNotFound))
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("同一本书累加数量", func(t *testing.T) {
		repo, books := new(mockRepo), new(mockBooks)
		c := cartWithItem()
		books.On("FindByID", ctx, uint(7)).Return(&book.Book{ID: 7}, nil)
		repo.On("FindByUserID", ctx, uint(1)).Return(c, nil)
		repo.On("Save", ctx, mock.MatchedBy(func(saved *ShoppingCart) bool {
			return len(saved.Items) == 1 && saved.Items[0].Quantity == 5
		})).Return(nil)

		got, err := NewService(repo, books).AddBook(ctx, 1, 7, 3)
		require.NoError(t, err)
		assert.Equal(t, 5, got.Items[0].Quantity)
		repo.AssertExpectations(t)
	})

	t.Run("超过上限", func(t *testing.T) {
		repo, books := new(mockRepo), new(mockBooks)
		books.On("FindByID", ctx, uint(7)).Return(&book.Book{ID: 7}, nil)
		repo.On("FindByUserID", ctx, uint(1)).Return(cartWithItem(), nil)

		_, err := NewService(repo, books).AddBook(ctx, 1, 7, MaxQuantity)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("购物车不存在", func(t *testing.T) {
		repo, books := new(mockRepo), new(mockBooks)
		books.On("FindByID", ctx, uint(7)).Return(&book.Book{ID: 7}, nil)
		repo.On("FindByUserID", ctx, uint(1)).Return(nil, ErrCartNotFound)

		_, err := NewService(repo, books).AddBook(ctx, 1, 7, 1)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeCartNotFound))
	})
}

func TestRemoveItem(t *testing.T) {
	ctx := context.Background()

	t.Run("删除成功", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("FindByUserID", ctx, uint(1)).Return(cartWithItem(), nil)
		repo.On("DeleteItem", ctx, uint(10), uint(100)).Return(true, nil)

		got, err := NewService(repo, new(mockBooks)).RemoveItem(ctx, 1, 100)
		require.NoError(t, err)
		assert.Empty(t, got.Items)
	})

	t.Run("没有删除任何行返回NotFound", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("FindByUserID", ctx, uint(1)).Return(cartWithItem(), nil)
		repo.On("DeleteItem", ctx, uint(10), uint(999)).Return(false, nil)

		_, err := NewService(repo, new(mockBooks)).RemoveItem(ctx, 1, 999)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeCartItemNotFound))
	})
}

func TestUpdateItem_OtherUsersItem(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepo)
	repo.On("FindByUserID", ctx, uint(1)).Return(cartWithItem(), nil)

	_, err := NewService(repo, new(mockBooks)).UpdateItem(ctx, 1, 555, 3)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeCartItemNotFound))
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
