package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/online-bookstore/internal/domain/category"
	apperrors "github.com/xiebiao/online-bookstore/pkg/errors"
	"github.com/xiebiao/online-bookstore/pkg/pagination"
)

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓储
func NewCategoryRepository(db *gorm.DB) category.Repository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, c *category.Category) error {
	model := &CategoryModel{Name: c.Name, Description: c.Description}
	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return category.DuplicateNameError(c.Name)
		}
		return apperrors.WrapCode(apperrors.ErrCodeDatabaseError, err, "创建分类失败")
	}
	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	c.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *categoryRepository) FindByID(ctx context.Context, id uint) (*category.Category, error) {
	var model CategoryModel
	if err := dbFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, category.ErrCategoryNotFound
		}
		return nil, apperrors.WrapCode(apperrors.ErrCodeDatabaseError, err, "查询分类失败")
	}
	return toCategoryEntity(&model), nil
}

func (r *categoryRepository) Update(ctx context.Context, c *category.Category) error {
	result := dbFromContext(ctx, r.db).Model(&CategoryModel{}).Where("id = ?", c.ID).Updates(map[string]interface{}{
		"name":        c.Name,
		"description": c.Description,
		"updated_at":  c.UpdatedAt,
	})
	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return category.DuplicateNameError(c.Name)
		}
		return apperrors.WrapCode(apperrors.ErrCodeDatabaseError, result.Error, "更新分类失败")
	}
	if result.RowsAffected == 0 {
		return category.NotFoundError(c.ID)
	}
	return nil
}

// Delete 先删除关联再删除分类,返回被解除关联的图书ID
func (r *categoryRepository) Delete(ctx context.Context, id uint) ([]uint, error) {
	var bookIDs []uint
	err := dbFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&BookCategoryModel{}).Where("category_id = ?", id).Order("book_id ASC").Pluck("book_id", &bookIDs).Error; err != nil {
			return err
		}
		if err := tx.Where("category_id = ?", id).Delete(&BookCategoryModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&CategoryModel{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return category.ErrCategoryNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, category.ErrCategoryNotFound) {
			return nil, category.NotFoundError(id)
		}
		return nil, apperrors.WrapCode(apperrors.ErrCodeDatabaseError, err, "删除分类失败")
	}
	return bookIDs, nil
}

func (r *categoryRepository) List(ctx context.Context, page pagination.Params) ([]*category.Category, int64, error) {
	query := dbFromContext(ctx, r.db).Model(&CategoryModel{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.WrapCode(apperrors.ErrCodeDatabaseError, err, "查询分类总数失败")
	}

	var models []CategoryModel
	if err := query.Order("id ASC").Limit(page.Limit()).Offset(page.Offset()).Find(&models).Error; err != nil {
		return nil, 0, apperrors.WrapCode(apperrors.ErrCodeDatabaseError, err, "查询分类列表失败")
	}

	list := make([]*category.Category, len(models))
	for i := range models {
		list[i] = toCategoryEntity(&models[i])
	}
	return list, total, nil
}

func (r *categoryRepository) FindMissingIDs(ctx context.Context, ids []uint) ([]uint, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var found []uint
	err := dbFromContext(ctx, r.db).Model(&CategoryModel{}).Where("id IN ?", ids).Pluck("id", &found).Error
	if err != nil {
		return nil, apperrors.WrapCode(apperrors.ErrCodeDatabaseError, err, "查询分类失败")
	}

	exists := make(map[uint]struct{}, len(found))
	for _, id := range found {
		exists[id] = struct{}{}
	}
	var missing []uint
	for _, id := range ids {
		if _, ok := exists[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

func toCategoryEntity(m *CategoryModel) *category.Category {
	return &category.Category{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
