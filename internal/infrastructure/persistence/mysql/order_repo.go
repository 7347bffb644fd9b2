package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/online-bookstore/internal/domain/order"
	apperrors "github.com/xiebiao/online-bookstore/pkg/errors"
	"github.com/xiebiao/online-bookstore/pkg/pagination"
)

// orderRepository 订单仓储实现
// 1. Order和OrderItem是聚合关系,必须一起保存
// 2. 查询时使用Preload预加载明细,避免N+1问题
// 3. 事务通过context传递
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepository{db: db}
}

// Create 创建订单(GORM自动保存关联的Items)
func (r *orderRepository) Create(ctx context.Context, o *order.Order) error {
	model := toOrderModel(o)

	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.WrapCode(apperrors.ErrCodeDatabaseError, err, "创建订单失败")
	}

	o.ID = model.ID
	for i := range o.Items {
		o.Items[i].ID = model.Items[i].ID
		o.Items[i].OrderID = model.ID
	}
	return nil
}

// FindByID 根据ID查找订单
func (r *orderRepository) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	return r.findOne(dbFromContext(ctx, r.db).Where("id = ?", id))
}

// FindByIDAndUserID 只能查到自己的订单
func (r *orderRepository) FindByIDAndUserID(ctx context.Context, id, userID uint) (*order.Order, error) {
	return r.findOne(dbFromContext(ctx, r.db).Where("id = ? AND user_id = ?", id, userID))
}

func (r *orderRepository) findOne(query *gorm.DB) (*order.Order, error) {
	var model OrderModel
	err := query.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_items.id ASC")
	}).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.WrapCode(apperrors.ErrCodeDatabaseError, err, "查询订单失败")
	}
	return toOrderEntity(&model), nil
}

// UpdateStatus 只更新Status和UpdatedAt,不改动明细
func (r *orderRepository) UpdateStatus(ctx context.Context, o *order.Order) error {
	result := dbFromContext(ctx, r.db).Model(&OrderModel{}).Where("id = ?", o.ID).Updates(map[string]interface{}{
		"status":     int(o.Status),
		"updated_at": o.UpdatedAt,
	})
	if result.Error != nil {
		return apperrors.WrapCode(apperrors.ErrCodeDatabaseError, result.Error, "更新订单失败")
	}
	if result.RowsAffected == 0 {
		return order.NotFoundError(o.ID)
	}
	return nil
}

// ListByUserID 查询用户的订单列表
func (r *orderRepository) ListByUserID(ctx context.Context, userID uint, page pagination.Params) ([]*order.Order, int64, error) {
	query := dbFromContext(ctx, r.db).Model(&OrderModel{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.WrapCode(apperrors.ErrCodeDatabaseError, err, "查询订单总数失败")
	}

	var models []OrderModel
	err := query.Preload("Items").
		Order("order_date DESC, id DESC").
		Limit(page.Limit()).
		Offset(page.Offset()).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.WrapCode(apperrors.ErrCodeDatabaseError, err, "查询订单列表失败")
	}

	orders := make([]*order.Order, len(models))
	for i := range models {
		orders[i] = toOrderEntity(&models[i])
	}
	return orders, total, nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

func toOrderModel(o *order.Order) *OrderModel {
	items := make([]OrderItemModel, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemModel{
			ID:       item.ID,
			OrderID:  item.OrderID,
			BookID:   item.BookID,
			Quantity: item.Quantity,
			Price:    item.Price,
		}
	}

	return &OrderModel{
		ID:              o.ID,
		OrderNo:         o.OrderNo,
		UserID:          o.UserID,
		Status:          int(o.Status),
		Total:           o.Total,
		ShippingAddress: o.ShippingAddress,
		OrderDate:       o.OrderDate,
		Items:           items,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func toOrderEntity(m *OrderModel) *order.Order {
	items := make([]order.OrderItem, len(m.Items))
	for i, item := range m.Items {
		items[i] = order.OrderItem{
			ID:       item.ID,
			OrderID:  item.OrderID,
			BookID:   item.BookID,
			Quantity: item.Quantity,
			Price:    item.Price,
		}
	}

	return &order.Order{
		ID:              m.ID,
		OrderNo:         m.OrderNo,
		UserID:          m.UserID,
		Status:          order.OrderStatus(m.Status),
		Total:           m.Total,
		ShippingAddress: m.ShippingAddress,
		OrderDate:       m.OrderDate,
		Items:           items,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
