package order

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/xiebiao/online-bookstore/internal/domain/book"
	"github.com/xiebiao/online-bookstore/internal/domain/cart"
	"github.com/xiebiao/online-bookstore/internal/domain/order"
	"github.com/xiebiao/online-bookstore/internal/domain/user"
	"github.com/xiebiao/online-bookstore/internal/infrastructure/persistence/mysql"
	apperrors "github.com/xiebiao/online-bookstore/pkg/errors"
	"github.com/xiebiao/online-bookstore/pkg/metrics"
)

// recordingPublisher 记录发布的事件
type recordingPublisher struct {
	placed  []*order.Order
	changed []order.OrderStatus
}

func (p *recordingPublisher) OrderPlaced(_ context.Context, o *order.Order) error {
	p.placed = append(p.placed, o)
	return nil
}

func (p *recordingPublisher) OrderStatusChanged(_ context.Context, _ *order.Order, from order.OrderStatus) error {
	p.changed = append(p.changed, from)
	return nil
}

type fixture struct {
	db          *gorm.DB
	users       user.Repository
	books       book.Repository
	carts       cart.Service
	orders      order.Service
	events      *recordingPublisher
	placeOrder  *PlaceOrderUseCase
	queryOrders *QueryOrdersUseCase
	updateState *UpdateStatusUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	metrics.InitMetrics()

	db, err := mysql.OpenSQLite("file::memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	users := mysql.NewUserRepository(db)
	books := mysql.NewBookRepository(db)
	cartRepo := mysql.NewCartRepository(db)
	orderService := order.NewService(mysql.NewOrderRepository(db), cartRepo, users)
	tx := mysql.NewTxManager(db)
	events := &recordingPublisher{}

	return &fixture{
		db:          db,
		users:       users,
		books:       books,
		carts:       cart.NewService(cartRepo, books),
		orders:      orderService,
		events:      events,
		placeOrder:  NewPlaceOrderUseCase(orderService, tx, events),
		queryOrders: NewQueryOrdersUseCase(orderService),
		updateState: NewUpdateStatusUseCase(orderService, tx, events),
	}
}

func (f *fixture) newUser(t *testing.T, email, address string) *user.User {
	t.Helper()
	u := user.NewUser(email, "hash", "San", "Zhang", address)
	require.NoError(t, f.users.Create(context.Background(), u))
	_, err := f.carts.CreateCart(context.Background(), u.ID)
	require.NoError(t, err)
	return u
}

func (f *fixture) newBook(t *testing.T, title, isbn, price string) *book.Book {
	t.Helper()
	b, err := book.NewBook(book.Draft{
		Title:  title,
		Author: "作者",
		ISBN:   isbn,
		Price:  decimal.RequireFromString(price),
	})
	require.NoError(t, err)
	require.NoError(t, f.books.Create(context.Background(), b))
	return b
}

func (f *fixture) countOrders(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&mysql.OrderModel{}).Count(&n).Error)
	return n
}

func TestPlaceOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("下单成功:价格快照,总价,清空购物车", func(t *testing.T) {
		f := newFixture(t)
		u := f.newUser(t, "buyer@example.com", "")
		b1 := f.newBook(t, "三体", "9787536692930", "10.00")
		b2 := f.newBook(t, "球状闪电", "9787536693968", "5.50")

		_, err := f.carts.AddBook(ctx, u.ID, b1.ID, 2)
		require.NoError(t, err)
		_, err = f.carts.AddBook(ctx, u.ID, b2.ID, 1)
		require.NoError(t, err)

		resp, err := f.placeOrder.Execute(ctx, PlaceOrderRequest{UserID: u.ID, ShippingAddress: "北京市海淀区"})
		require.NoError(t, err)

		assert.Equal(t, "25.50", resp.Total)
		assert.Equal(t, "PENDING", resp.Status)
		assert.Equal(t, "北京市海淀区", resp.ShippingAddress)
		require.Len(t, resp.Items, 2)
		assert.Equal(t, "10.00", resp.Items[0].Price)
		assert.Equal(t, "20.00", resp.Items[0].Subtotal)

		c, err := f.carts.GetCart(ctx, u.ID)
		require.NoError(t, err)
		assert.True(t, c.IsEmpty())

		require.Len(t, f.events.placed, 1)
		assert.Equal(t, resp.ID, f.events.placed[0].ID)
	})

	t.Run("购物车为空:不创建订单", func(t *testing.T) {
		f := newFixture(t)
		u := f.newUser(t, "empty@example.com", "上海")

		_, err := f.placeOrder.Execute(ctx, PlaceOrderRequest{UserID: u.ID})
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeEmptyCart))
		assert.Equal(t, int64(0), f.countOrders(t))
		assert.Empty(t, f.events.placed)
	})

	t.Run("请求未填地址时使用用户默认地址", func(t *testing.T) {
		f := newFixture(t)
		u := f.newUser(t, "default@example.com", "杭州市西湖区")
		b := f.newBook(t, "活着", "9787506365437", "20.00")
		_, err := f.carts.AddBook(ctx, u.ID, b.ID, 1)
		require.NoError(t, err)

		resp, err := f.placeOrder.Execute(ctx, PlaceOrderRequest{UserID: u.ID, ShippingAddress: "  "})
		require.NoError(t, err)
		assert.Equal(t, "杭州市西湖区", resp.ShippingAddress)
	})

	t.Run("没有任何地址:回滚,购物车保持不变", func(t *testing.T) {
		f := newFixture(t)
		u := f.newUser(t, "noaddr@example.com", "")
		b := f.newBook(t, "活着", "9787506365437", "20.00")
		_, err := f.carts.AddBook(ctx, u.ID, b.ID, 3)
		require.NoError(t, err)

		_, err = f.placeOrder.Execute(ctx, PlaceOrderRequest{UserID: u.ID})
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidParams))
		assert.Equal(t, int64(0), f.countOrders(t))

		c, err := f.carts.GetCart(ctx, u.ID)
		require.NoError(t, err)
		require.Len(t, c.Items, 1)
		assert.Equal(t, 3, c.Items[0].Quantity)
	})
}

func TestPlaceOrder_DeletedBook(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.newUser(t, "deleted@example.com", "上海")
	kept := f.newBook(t, "三体", "9787536692930", "10.00")
	removed := f.newBook(t, "球状闪电", "9787536693968", "5.50")

	_, err := f.carts.AddBook(ctx, u.ID, kept.ID, 1)
	require.NoError(t, err)
	_, err = f.carts.AddBook(ctx, u.ID, removed.ID, 2)
	require.NoError(t, err)
	require.NoError(t, f.books.Delete(ctx, removed.ID))

	_, err = f.placeOrder.Execute(ctx, PlaceOrderRequest{UserID: u.ID})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeBookNotFound))
	assert.Contains(t, err.Error(), "id=")
	assert.Equal(t, int64(0), f.countOrders(t))
	assert.Empty(t, f.events.placed)

	c, err := f.carts.GetCart(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, c.Items, 2)
}

func TestQueryOrders(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := f.newUser(t, "owner@example.com", "广州")
	other := f.newUser(t, "other@example.com", "深圳")
	b := f.newBook(t, "围城", "9787020090006", "12.00")

	_, err := f.carts.AddBook(ctx, owner.ID, b.ID, 2)
	require.NoError(t, err)
	placed, err := f.placeOrder.Execute(ctx, PlaceOrderRequest{UserID: owner.ID})
	require.NoError(t, err)

	t.Run("分页查询自己的订单", func(t *testing.T) {
		resp, err := f.queryOrders.List(ctx, owner.ID, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.Total)
		assert.Equal(t, placed.OrderNo, resp.List[0].OrderNo)
	})

	t.Run("不能查询别人的订单", func(t *testing.T) {
		_, err := f.queryOrders.Get(ctx, other.ID, placed.ID)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeOrderNotFound))
	})

	t.Run("订单明细", func(t *testing.T) {
		items, err := f.queryOrders.ListItems(ctx, owner.ID, placed.ID)
		require.NoError(t, err)
		require.Len(t, items, 1)

		item, err := f.queryOrders.GetItem(ctx, owner.ID, placed.ID, items[0].ID)
		require.NoError(t, err)
		assert.Equal(t, "24.00", item.Subtotal)

		_, err = f.queryOrders.GetItem(ctx, owner.ID, placed.ID, 999)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeOrderItemNotFound))
	})
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.newUser(t, "status@example.com", "成都")
	b := f.newBook(t, "平凡的世界", "9787530216781", "30.00")
	_, err := f.carts.AddBook(ctx, u.ID, b.ID, 1)
	require.NoError(t, err)
	placed, err := f.placeOrder.Execute(ctx, PlaceOrderRequest{UserID: u.ID})
	require.NoError(t, err)

	t.Run("PENDING → PAID", func(t *testing.T) {
		resp, err := f.updateState.Execute(ctx, placed.ID, "paid")
		require.NoError(t, err)
		assert.Equal(t, "PAID", resp.Status)
		assert.Equal(t, []order.OrderStatus{order.OrderStatusPending}, f.events.changed)
	})

	t.Run("重复设置相同状态不发布事件", func(t *testing.T) {
		_, err := f.updateState.Execute(ctx, placed.ID, "PAID")
		require.NoError(t, err)
		assert.Len(t, f.events.changed, 1)
	})

	t.Run("PAID → DELIVERED 非法", func(t *testing.T) {
		_, err := f.updateState.Execute(ctx, placed.ID, "DELIVERED")
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidOrderStatus))

		got, err := f.queryOrders.Get(ctx, u.ID, placed.ID)
		require.NoError(t, err)
		assert.Equal(t, "PAID", got.Status)
	})

	t.Run("未知状态", func(t *testing.T) {
		_, err := f.updateState.Execute(ctx, placed.ID, "LOST")
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidParams))
	})

	t.Run("订单不存在", func(t *testing.T) {
		_, err := f.updateState.Execute(ctx, 999, "PAID")
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeOrderNotFound))
	})
}
