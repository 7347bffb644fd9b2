package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxQuantity 单行最大数量
const MaxQuantity = 999

// ShoppingCart 购物车(聚合根)
// 每个用户在注册时创建一个购物车,之后只会被清空,不会被删除
type ShoppingCart struct {
	ID        uint
	UserID    uint
	Items     []*CartItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CartItem 购物车明细
// BookTitle/BookPrice/Available是仓储加载时关联出来的只读字段,不会被持久化
// Available为false表示图书已被删除,不能下单
type CartItem struct {
	ID        uint
	CartID    uint
	BookID    uint
	Quantity  int
	BookTitle string
	BookPrice decimal.Decimal
	Available bool
}

// NewShoppingCart 创建空购物车
func NewShoppingCart(userID uint) *ShoppingCart {
	now := time.Now()
	return &ShoppingCart{UserID: userID, CreatedAt: now, UpdatedAt: now}
}

// AddBook 加入图书
// 同一本书已存在时累加数量,不会产生重复行
func (c *ShoppingCart) AddBook(bookID uint, quantity int) (*CartItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	if item := c.FindItemByBook(bookID); item != nil {
		if item.Quantity+quantity > MaxQuantity {
			return nil, ErrInvalidQuantity
		}
		item.Quantity += quantity
		c.UpdatedAt = time.Now()
		return item, nil
	}

	if quantity > MaxQuantity {
		return nil, ErrInvalidQuantity
	}
	item := &CartItem{CartID: c.ID, BookID: bookID, Quantity: quantity}
	c.Items = append(c.Items, item)
	c.UpdatedAt = time.Now()
	return item, nil
}

// FindItem 按明细ID查找
func (c *ShoppingCart) FindItem(itemID uint) *CartItem {
	for _, item := range c.Items {
		if item.ID == itemID {
			return item
		}
	}
	return nil
}

// FindItemByBook 按图书ID查找
func (c *ShoppingCart) FindItemByBook(bookID uint) *CartItem {
	for _, item := range c.Items {
		if item.BookID == bookID {
			return item
		}
	}
	return nil
}

// UpdateQuantity 修改明细数量
func (c *ShoppingCart) UpdateQuantity(itemID uint, quantity int) (*CartItem, error) {
	if quantity <= 0 || quantity > MaxQuantity {
		return nil, ErrInvalidQuantity
	}
	item := c.FindItem(itemID)
	if item == nil {
		return nil, ItemNotFoundError(itemID)
	}
	item.Quantity = quantity
	c.UpdatedAt = time.Now()
	return item, nil
}

// Clear 清空购物车
func (c *ShoppingCart) Clear() {
	c.Items = nil
	c.UpdatedAt = time.Now()
}

// IsEmpty 是否为空
func (c *ShoppingCart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Subtotal 按当前书价计算合计
func (c *ShoppingCart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.BookPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}
