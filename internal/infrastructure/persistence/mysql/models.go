package mysql

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// 说明:这里是infrastructure层的数据模型(带GORM tag),
// domain层实体不依赖GORM,由各Repository负责转换

// UserModel 用户表
type UserModel struct {
	ID              uint           `gorm:"primaryKey"`
	Email           string         `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	Password        string         `gorm:"size:255;not null;comment:密码(bcrypt)"`
	FirstName       string         `gorm:"size:100;not null"`
	LastName        string         `gorm:"size:100;not null"`
	ShippingAddress string         `gorm:"size:255;comment:默认收货地址"`
	CreatedAt       time.Time      `gorm:"comment:创建时间"`
	UpdatedAt       time.Time      `gorm:"comment:更新时间"`
	DeletedAt       gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

func (UserModel) TableName() string { return "users" }

// RoleModel 角色表(迁移时写入ROLE_USER/ROLE_ADMIN)
type RoleModel struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;size:32;not null"`
}

func (RoleModel) TableName() string { return "roles" }

// UserRoleModel 用户-角色关联表
type UserRoleModel struct {
	UserID uint `gorm:"primaryKey"`
	RoleID uint `gorm:"primaryKey"`
}

func (UserRoleModel) TableName() string { return "user_roles" }

// BookModel 图书表
// 1. 价格使用decimal(10,2)
// 2. ISBN唯一索引
type BookModel struct {
	ID          uint            `gorm:"primaryKey"`
	Title       string          `gorm:"index:idx_search;size:255;not null;comment:书名"`
	Author      string          `gorm:"index:idx_search;size:255;not null;comment:作者"`
	ISBN        string          `gorm:"column:isbn;uniqueIndex;size:32;not null;comment:ISBN号"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);index;not null;comment:价格"`
	Description string          `gorm:"type:text;comment:图书描述"`
	CoverImage  string          `gorm:"size:500;comment:封面图片"`
	CreatedAt   time.Time       `gorm:"comment:创建时间"`
	UpdatedAt   time.Time       `gorm:"comment:更新时间"`
	DeletedAt   gorm.DeletedAt  `gorm:"index;comment:删除时间(软删除)"`
}

func (BookModel) TableName() string { return "books" }

// CategoryModel 分类表
type CategoryModel struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"uniqueIndex;size:255;not null"`
	Description string    `gorm:"size:1024"`
	CreatedAt   time.Time `gorm:"comment:创建时间"`
	UpdatedAt   time.Time `gorm:"comment:更新时间"`
}

func (CategoryModel) TableName() string { return "categories" }

// BookCategoryModel 图书-分类关联表
type BookCategoryModel struct {
	BookID     uint `gorm:"primaryKey"`
	CategoryID uint `gorm:"primaryKey;index"`
}

func (BookCategoryModel) TableName() string { return "book_categories" }

// ShoppingCartModel 购物车表(每个用户一个)
type ShoppingCartModel struct {
	ID        uint            `gorm:"primaryKey"`
	UserID    uint            `gorm:"uniqueIndex;not null"`
	Items     []CartItemModel `gorm:"foreignKey:CartID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ShoppingCartModel) TableName() string { return "shopping_carts" }

// CartItemModel 购物车明细表
type CartItemModel struct {
	ID       uint `gorm:"primaryKey"`
	CartID   uint `gorm:"index;not null"`
	BookID   uint `gorm:"index;not null"`
	Quantity int  `gorm:"not null"`
}

func (CartItemModel) TableName() string { return "cart_items" }

// OrderModel 订单表
// Status使用int存储(1待支付2已支付3已发货4已送达5已取消)
type OrderModel struct {
	ID              uint             `gorm:"primaryKey"`
	OrderNo         string           `gorm:"uniqueIndex;size:32;not null;comment:订单号"`
	UserID          uint             `gorm:"index;not null;comment:买家用户ID"`
	Status          int              `gorm:"index;default:1;comment:订单状态"`
	Total           decimal.Decimal  `gorm:"type:decimal(10,2);not null;comment:订单总金额"`
	ShippingAddress string           `gorm:"size:255;not null;comment:收货地址"`
	OrderDate       time.Time        `gorm:"index;comment:下单时间"`
	Items           []OrderItemModel `gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (OrderModel) TableName() string { return "orders" }

// OrderItemModel 订单明细表(下单时的价格快照)
type OrderItemModel struct {
	ID       uint            `gorm:"primaryKey"`
	OrderID  uint            `gorm:"index;not null;comment:订单ID"`
	BookID   uint            `gorm:"index;not null;comment:图书ID"`
	Quantity int             `gorm:"not null;comment:购买数量"`
	Price    decimal.Decimal `gorm:"type:decimal(10,2);not null;comment:下单时单价"`
}

func (OrderItemModel) TableName() string { return "order_items" }
