package mysql

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/xiebiao/online-bookstore/internal/domain/cart"
	apperrors "github.com/xiebiao/online-bookstore/pkg/errors"
)

type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓储
func NewCartRepository(db *gorm.DB) cart.Repository {
	return &cartRepository{db: db}
}

func (r *cartRepository) Create(ctx context.Context, c *cart.ShoppingCart) error {
	model := &ShoppingCartModel{UserID: c.UserID}
	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.WrapCode(apperrors.ErrCodeDatabaseError, err, "创建购物车失败")
	}
	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	c.UpdatedAt = model.UpdatedAt
	return nil
}

// cartItemRow 明细+图书的联表查询结果
type cartItemRow struct {
	ID        uint
	CartID    uint
	BookID    uint
	Quantity  int
	BookTitle string
	BookPrice decimal.NullDecimal
}

// FindByUserID 加载购物车,明细关联出书名和当前价格
// 图书已删除(含软删除)时书价为NULL,明细标记为不可购买
func (r *cartRepository) FindByUserID(ctx context.Context, userID uint) (*cart.ShoppingCart, error) {
	db := dbFromContext(ctx, r.db)

	var model ShoppingCartModel
	if err := db.Where("user_id = ?", userID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cart.ErrCartNotFound
		}
		return nil, apperrors.WrapCode(apperrors.ErrCodeDatabaseError, err, "查询购物车失败")
	}

	var rows []cartItemRow
	err := db.Table("cart_items").
		Select("cart_items.id, cart_items.cart_id, cart_items.book_id, cart_items.quantity, COALESCE(books.title, '') AS book_title, books.price AS book_price").
		Joins("LEFT JOIN books ON books.id = cart_items.book_id AND books.deleted_at IS NULL").
		Where("cart_items.cart_id = ?", model.ID).
		Order("cart_items.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.WrapCode(apperrors.ErrCodeDatabaseError, err, "查询购物车明细失败")
	}

	c := &cart.ShoppingCart{
		ID:        model.ID,
		UserID:    model.UserID,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
	for _, row := range rows {
		c.Items = append(c.Items, &cart.CartItem{
			ID:        row.ID,
			CartID:    row.CartID,
			BookID:    row.BookID,
			Quantity:  row.Quantity,
			BookTitle: row.BookTitle,
			BookPrice: row.BookPrice.Decimal,
			Available: row.BookPrice.Valid,
		})
	}
	return c, nil
}

// Save 新明细插入,已有明细更新数量
func (r *cartRepository) Save(ctx context.Context, c *cart.ShoppingCart) error {
	err := dbFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		for _, item := range c.Items {
			if item.ID == 0 {
				model := &CartItemModel{CartID: c.ID, BookID: item.BookID, Quantity: item.Quantity}
				if err := tx.Create(model).Error; err != nil {
					return err
				}
				item.ID = model.ID
				item.CartID = c.ID
				continue
			}
			err := tx.Model(&CartItemModel{}).
				Where("id = ? AND cart_id = ?", item.ID, c.ID).
				Update("quantity", item.Quantity).Error
			if err != nil {
				return err
			}
		}
		return tx.Model(&ShoppingCartModel{}).Where("id = ?", c.ID).Update("updated_at", c.UpdatedAt).Error
	})
	if err != nil {
		return apperrors.WrapCode(apperrors.ErrCodeDatabaseError, err, "保存购物车失败")
	}
	return nil
}

func (r *cartRepository) DeleteItem(ctx context.Context, cartID, itemID uint) (bool, error) {
	result := dbFromContext(ctx, r.db).Where("id = ? AND cart_id = ?", itemID, cartID).Delete(&CartItemModel{})
	if result.Error != nil {
		return false, apperrors.WrapCode(apperrors.ErrCodeDatabaseError, result.Error, "删除购物车明细失败")
	}
	return result.RowsAffected > 0, nil
}

func (r *cartRepository) ClearItems(ctx context.Context, cartID uint) error {
	if err := dbFromContext(ctx, r.db).Where("cart_id = ?", cartID).Delete(&CartItemModel{}).Error; err != nil {
		return apperrors.WrapCode(apperrors.ErrCodeDatabaseError, err, "清空购物车失败")
	}
	return nil
}
