package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/online-bookstore/internal/domain/book"
	apperrors "github.com/xiebiao/online-bookstore/pkg/errors"
	"github.com/xiebiao/online-bookstore/pkg/pagination"
)

// bookRepository 图书仓储实现
// 1. 负责domain实体与GORM模型之间的转换
// 2. 分类关联保存在book_categories,与图书在同一事务中写入
// 3. 数据库错误(如ISBN重复)转换为业务错误
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)

	err := dbFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			return err
		}
		return replaceBookCategories(tx, model.ID, b.CategoryIDs)
	})
	if err != nil {
		if isDuplicateError(err) {
			return book.DuplicateISBNError(b.ISBN)
		}
		return apperrors.WrapCode(apperrors.ErrCodeDatabaseError, err, "创建图书失败")
	}

	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	db := dbFromContext(ctx, r.db)

	var model BookModel
	if err := db.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.WrapCode(apperrors.ErrCodeDatabaseError, err, "查询图书失败")
	}

	books := []*book.Book{toBookEntity(&model)}
	if err := attachCategoryIDs(db, books); err != nil {
		return nil, err
	}
	return books[0], nil
}

// FindByISBN 根据ISBN查找图书(包含软删除的图书,与唯一索引保持一致)
func (r *bookRepository) FindByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	var model BookModel
	err := dbFromContext(ctx, r.db).Unscoped().Where("isbn = ?", isbn).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.WrapCode(apperrors.ErrCodeDatabaseError, err, "查询图书失败")
	}
	return toBookEntity(&model), nil
}

// Update 更新全部字段并替换分类关联
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)

	err := dbFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&BookModel{}).Where("id = ?", b.ID).Updates(map[string]interface{}{
			"title":       model.Title,
			"author":      model.Author,
			"isbn":        model.ISBN,
			"price":       model.Price,
			"description": model.Description,
			"cover_image": model.CoverImage,
			"updated_at":  b.UpdatedAt,
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return book.ErrBookNotFound
		}
		return replaceBookCategories(tx, b.ID, b.CategoryIDs)
	})
	if err != nil {
		switch {
		case errors.Is(err, book.ErrBookNotFound):
			return book.NotFoundError(b.ID)
		case isDuplicateError(err):
			return book.DuplicateISBNError(b.ISBN)
		}
		return apperrors.WrapCode(apperrors.ErrCodeDatabaseError, err, "更新图书失败")
	}
	return nil
}

// Delete 删除图书(软删除),分类关联一并删除
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	err := dbFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&BookModel{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return book.ErrBookNotFound
		}
		return tx.Where("book_id = ?", id).Delete(&BookCategoryModel{}).Error
	})
	if err != nil {
		if errors.Is(err, book.ErrBookNotFound) {
			return book.NotFoundError(id)
		}
		return apperrors.WrapCode(apperrors.ErrCodeDatabaseError, err, "删除图书失败")
	}
	return nil
}

// List 分页查询图书列表(按ID排序)
func (r *bookRepository) List(ctx context.Context, page pagination.Params) ([]*book.Book, int64, error) {
	db := dbFromContext(ctx, r.db)

	books, total, err := r.page(db.Model(&BookModel{}), page)
	if err != nil {
		return nil, 0, err
	}
	if err := attachCategoryIDs(db, books); err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

// ListByCategory 分页查询某个分类下的图书
func (r *bookRepository) ListByCategory(ctx context.Context, categoryID uint, page pagination.Params) ([]*book.Book, int64, error) {
	query := dbFromContext(ctx, r.db).Model(&BookModel{}).
		Joins("JOIN book_categories ON book_categories.book_id = books.id").
		Where("book_categories.category_id = ?", categoryID)
	return r.page(query, page)
}

// Search 按字段条件搜索
func (r *bookRepository) Search(ctx context.Context, params book.SearchParams) ([]*book.Book, error) {
	exprs, err := buildBookSpec(params)
	if err != nil {
		return nil, err
	}

	db := dbFromContext(ctx, r.db)
	query := db.Model(&BookModel{})
	if len(exprs) > 0 {
		query = query.Clauses(clause.Where{Exprs: exprs})
	}

	var models []BookModel
	if err := query.Order("books.id ASC").Find(&models).Error; err != nil {
		return nil, apperrors.WrapCode(apperrors.ErrCodeDatabaseError, err, "搜索图书失败")
	}

	books := toBookEntities(models)
	if err := attachCategoryIDs(db, books); err != nil {
		return nil, err
	}
	return books, nil
}

func (r *bookRepository) page(query *gorm.DB, page pagination.Params) ([]*book.Book, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.WrapCode(apperrors.ErrCodeDatabaseError, err, "查询图书总数失败")
	}

	var models []BookModel
	err := query.Order("books.id ASC").
		Limit(page.Limit()).
		Offset(page.Offset()).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.WrapCode(apperrors.ErrCodeDatabaseError, err, "查询图书列表失败")
	}
	return toBookEntities(models), total, nil
}

// =========================================
// 辅助函数:分类关联
// =========================================

// replaceBookCategories 先删后插,整体替换图书的分类
func replaceBookCategories(tx *gorm.DB, bookID uint, categoryIDs []uint) error {
	if err := tx.Where("book_id = ?", bookID).Delete(&BookCategoryModel{}).Error; err != nil {
		return err
	}
	if len(categoryIDs) == 0 {
		return nil
	}
	links := make([]BookCategoryModel, 0, len(categoryIDs))
	for _, cid := range categoryIDs {
		links = append(links, BookCategoryModel{BookID: bookID, CategoryID: cid})
	}
	return tx.Create(&links).Error
}

// attachCategoryIDs 一次查询为多本图书补充分类ID(避免N+1)
func attachCategoryIDs(db *gorm.DB, books []*book.Book) error {
	if len(books) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(books))
	index := make(map[uint]*book.Book, len(books))
	for _, b := range books {
		ids = append(ids, b.ID)
		index[b.ID] = b
	}

	var links []BookCategoryModel
	err := db.Where("book_id IN ?", ids).Order("book_id, category_id").Find(&links).Error
	if err != nil {
		return apperrors.WrapCode(apperrors.ErrCodeDatabaseError, err, "查询图书分类失败")
	}
	for _, l := range links {
		if b, ok := index[l.BookID]; ok {
			b.CategoryIDs = append(b.CategoryIDs, l.CategoryID)
		}
	}
	return nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

func toBookModel(b *book.Book) *BookModel {
	return &BookModel{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		ISBN:        b.ISBN,
		Price:       b.Price,
		Description: b.Description,
		CoverImage:  b.CoverImage,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func toBookEntity(m *BookModel) *book.Book {
	return &book.Book{
		ID:          m.ID,
		Title:       m.Title,
		Author:      m.Author,
		ISBN:        m.ISBN,
		Price:       m.Price,
		Description: m.Description,
		CoverImage:  m.CoverImage,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toBookEntities(models []BookModel) []*book.Book {
	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books
}
