package book

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/online-bookstore/pkg/errors"
	"github.com/xiebiao/online-bookstore/pkg/pagination"
)

type mockRepo struct{ mock.Mock }

func (m *mockRepo) Create(ctx context.Context, b *Book) error {
	args := m.Called(ctx, b)
	if args.Error(0) == nil {
		b.ID = 1
	}
	return args.Error(0)
}

func (m *mockRepo) FindByID(ctx context.Context, id uint) (*Book, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*Book)
	return b, args.Error(1)
}

func (m *mockRepo) FindByISBN(ctx context.Context, isbn string) (*Book, error) {
	args := m.Called(ctx, isbn)
	b, _ := args.Get(0).(*Book)
	return b, args.Error(1)
}

func (m *mockRepo) Update(ctx context.Context, b *Book) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepo) List(ctx context.Context, page pagination.Params) ([]*Book, int64, error) {
	args := m.Called(ctx, page)
	books, _ := args.Get(0).([]*Book)
	return books, args.Get(1).(int64), args.Error(2)
}

func (m *mockRepo) ListByCategory(ctx context.Context, categoryID uint, page pagination.Params) ([]*Book, int64, error) {
	args := m.Called(ctx, categoryID, page)
	books, _ := args.Get(0).([]*Book)
	return books, args.Get(1).(int64), args.Error(2)
}

func (m *mockRepo) Search(ctx context.Context, params SearchParams) ([]*Book, error) {
	args := m.Called(ctx, params)
	books, _ := args.Get(0).([]*Book)
	return books, args.Error(1)
}

type mockCategories struct{ mock.Mock }

func (m *mockCategories) EnsureExist(ctx context.Context, ids []uint) error {
	return m.Called(ctx, ids).Error(0)
}

type mapCache struct {
	items   map[uint]*Book
	deleted []uint
}

func newMapCache() *mapCache { return &mapCache{items: map[uint]*Book{}} }

func (c *mapCache) Get(_ context.Context, id uint) (*Book, error) { return c.items[id], nil }
func (c *mapCache) Set(_ context.Context, b *Book) error {
	c.items[b.ID] = b
	return nil
}
func (c *mapCache) Delete(_ context.Context, id uint) error {
	delete(c.items, id)
	c.deleted = append(c.deleted, id)
	return nil
}

func TestCreateBook(t *testing.T) {
	ctx := context.Background()

	t.Run("创建成功", func(t *testing.T) {
		repo := new(mockRepo)
		cats := new(mockCategories)
		svc := NewService(repo, cats, nil)

		cats.On("EnsureExist", ctx, []uint{2, 1}).Return(nil)
		repo.On("FindByISBN", ctx, "978-7-111-55842-2").Return(nil, ErrBookNotFound)
		repo.On("Create", ctx, mock.AnythingOfType("*book.Book")).Return(nil)

		b, err := svc.CreateBook(ctx, validDraft())
		require.NoError(t, err)
		assert.Equal(t, uint(1), b.ID)
		repo.AssertExpectations(t)
	})

	t.Run("分类不存在不写入", func(t *testing.T) {
		repo := new(mockRepo)
		cats := new(mockCategories)
		svc := NewService(repo, cats, nil)

		cats.On("EnsureExist", ctx, []uint{2, 1}).Return(apperrors.Newf(apperrors.ErrCodeCategoryNotFound, "分类不存在: id=%d", 2))

		_, err := svc.CreateBook(ctx, validDraft())
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeCategoryNotFound))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("ISBN重复", func(t *testing.T) {
		repo := new(mockRepo)
		cats := new(mockCategories)
		svc := NewService(repo, cats, nil)

		cats.On("EnsureExist", ctx, mock.Anything).Return(nil)
		repo.On("FindByISBN", ctx, mock.Anything).Return(&Book{ID: 9}, nil)

		_, err := svc.CreateBook(ctx, validDraft())
		assert.True(t, errors.Is(err, ErrISBNDuplicate))
	})
}

func TestGetBook_CacheAside(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepo)
	cache := newMapCache()
	svc := NewService(repo, new(mockCategories), cache)

	repo.On("FindByID", ctx, uint(5)).Return(&Book{ID: 5, Title: "缓存测试"}, nil).Once()

	first, err := svc.GetBook(ctx, 5)
	require.NoError(t, err)
	second, err := svc.GetBook(ctx, 5)
	require.NoError(t, err)

	assert.Equal(t, first.Title, second.Title)
	repo.AssertNumberOfCalls(t, "FindByID", 1)

	t.Run("不存在返回带ID的错误", func(t *testing.T) {
		repo.On("FindByID", ctx, uint(7)).Return(nil, ErrBookNotFound)
		_, err := svc.GetBook(ctx, 7)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrBookNotFound))
		assert.Contains(t, err.Error(), "id=7")
	})
}

func TestUpdateBook(t *testing.T) {
	ctx := context.Background()

	t.Run("图书不存在不写入", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewService(repo, new(mockCategories), nil)
		repo.On("FindByID", ctx, uint(3)).Return(nil, ErrBookNotFound)

		_, err := svc.UpdateBook(ctx, 3, validDraft())
		assert.True(t, errors.Is(err, ErrBookNotFound))
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("更新后删除缓存", func(t *testing.T) {
		repo := new(mockRepo)
		cats := new(mockCategories)
		cache := newMapCache()
		svc := NewService(repo, cats, cache)

		existing, err := NewBook(validDraft())
		require.NoError(t, err)
		existing.ID = 3
		cache.items[3] = existing

		repo.On("FindByID", ctx, uint(3)).Return(existing, nil)
		cats.On("EnsureExist", ctx, mock.Anything).Return(nil)
		repo.On("FindByISBN", ctx, mock.Anything).Return(existing, nil)
		repo.On("Update", ctx, existing).Return(nil)

		d := validDraft()
		d.Title = "第二版"
		b, err := svc.UpdateBook(ctx, 3, d)
		require.NoError(t, err)
		assert.Equal(t, "第二版", b.Title)
		assert.Equal(t, []uint{3}, cache.deleted)
	})
}

func TestListBooksByCategory_CategoryMissing(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepo)
	cats := new(mockCategories)
	svc := NewService(repo, cats, nil)

	cats.On("EnsureExist", ctx, []uint{42}).Return(apperrors.New(apperrors.ErrCodeCategoryNotFound, "分类不存在: id=42"))

	_, _, err := svc.ListBooksByCategory(ctx, 42, pagination.Params{})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeCategoryNotFound))
	repo.AssertNotCalled(t, "ListByCategory", mock.Anything, mock.Anything, mock.Anything)
}
