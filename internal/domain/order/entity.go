package order

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/online-bookstore/internal/domain/cart"
)

// OrderStatus 订单状态
// 使用int存储(节省空间,便于索引),对外使用大写名称
type OrderStatus int

const (
	OrderStatusPending   OrderStatus = 1 // 待支付
	OrderStatusPaid      OrderStatus = 2 // 已支付
	OrderStatusShipped   OrderStatus = 3 // 已发货
	OrderStatusDelivered OrderStatus = 4 // 已送达
	OrderStatusCancelled OrderStatus = 5 // 已取消
)

var statusNames = map[OrderStatus]string{
	OrderStatusPending:   "PENDING",
	OrderStatusPaid:      "PAID",
	OrderStatusShipped:   "SHIPPED",
	OrderStatusDelivered: "DELIVERED",
	OrderStatusCancelled: "CANCELLED",
}

// 合法的状态转换规则,终态没有后续状态
var transitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending: {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:    {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped: {OrderStatusDelivered},
}

// String 返回大写名称(JSON/日志使用)
func (s OrderStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsValid 是否为已定义的状态
func (s OrderStatus) IsValid() bool {
	_, ok := statusNames[s]
	return ok
}

// ParseOrderStatus 解析状态名称(忽略大小写)
func ParseOrderStatus(name string) (OrderStatus, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for s, n := range statusNames {
		if n == upper {
			return s, nil
		}
	}
	return 0, UnknownStatusError(name)
}

// Order 订单实体(聚合根)
// 1. OrderItem是子实体,只能通过Order访问
// 2. Total在创建时计算并冗余存储,书价变化不影响历史订单
type Order struct {
	ID              uint
	OrderNo         string
	UserID          uint
	Status          OrderStatus
	Total           decimal.Decimal
	ShippingAddress string
	OrderDate       time.Time
	Items           []OrderItem
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderItem 订单明细
// Price是下单时的单价快照,只保存BookID(避免跨聚合引用)
type OrderItem struct {
	ID       uint
	OrderID  uint
	BookID   uint
	Quantity int
	Price    decimal.Decimal
}

// Subtotal 单价×数量
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// NewOrderFromCart 根据购物车明细生成订单
// 每一行复制图书ID、数量和当前价格,初始状态为PENDING
func NewOrderFromCart(orderNo string, userID uint, shippingAddress string, items []*cart.CartItem) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	lines := make([]OrderItem, 0, len(items))
	for _, ci := range items {
		if ci.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		lines = append(lines, OrderItem{
			BookID:   ci.BookID,
			Quantity: ci.Quantity,
			Price:    ci.BookPrice,
		})
	}

	now := time.Now()
	o := &Order{
		OrderNo:         orderNo,
		UserID:          userID,
		Status:          OrderStatusPending,
		ShippingAddress: shippingAddress,
		OrderDate:       now,
		Items:           lines,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	o.Total = o.CalculateTotal()
	return o, nil
}

// CalculateTotal 按明细计算订单总金额
func (o *Order) CalculateTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// CanTransitionTo 检查是否可以转换到目标状态
func (o *Order) CanTransitionTo(target OrderStatus) bool {
	for _, allowed := range transitions[o.Status] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo 状态转换,目标与当前状态相同时不做任何修改
func (o *Order) TransitionTo(target OrderStatus) error {
	if !target.IsValid() {
		return UnknownStatusError(target.String())
	}
	if o.Status == target {
		return nil
	}
	if !o.CanTransitionTo(target) {
		return InvalidTransitionError(o.Status, target)
	}
	o.Status = target
	o.UpdatedAt = time.Now()
	return nil
}

// FindItem 查找订单明细
func (o *Order) FindItem(itemID uint) (*OrderItem, bool) {
	for i := range o.Items {
		if o.Items[i].ID == itemID {
			return &o.Items[i], true
		}
	}
	return nil, false
}

// IsOwnedBy 订单是否属于指定用户
func (o *Order) IsOwnedBy(userID uint) bool {
	return o.UserID == userID
}
