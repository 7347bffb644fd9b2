package handler

import (
	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/online-bookstore/internal/application/book"
	appcategory "github.com/xiebiao/online-bookstore/internal/application/category"
	"github.com/xiebiao/online-bookstore/internal/interface/http/dto"
	"github.com/xiebiao/online-bookstore/pkg/response"
)

// CategoryHandler 分类HTTP处理器
type CategoryHandler struct {
	categories *appcategory.CategoryUseCase
	listBooks  *appbook.ListBooksUseCase
}

// NewCategoryHandler 创建分类处理器
func NewCategoryHandler(categories *appcategory.CategoryUseCase, listBooks *appbook.ListBooksUseCase) *CategoryHandler {
	return &CategoryHandler{categories: categories, listBooks: listBooks}
}

// ListCategories 分类列表
// @Summary      分类列表
// @Tags         分类
// @Produce      json
// @Security     BearerAuth
// @Param        page      query int false "页码" default(1)
// @Param        page_size query int false "每页数量" default(20)
// @Success      200 {object} response.Response{data=response.PageData{list=[]appcategory.CategoryResponse}}
// @Router       /api/v1/categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.categories.List(c.Request.Context(), req.Page, req.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, result.List, result.Total, result.Page, result.PageSize)
}

// GetCategory 分类详情
// @Summary      分类详情
// @Tags         分类
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "分类ID"
// @Success      200 {object} response.Response{data=appcategory.CategoryResponse}
// @Failure      404 {object} response.Response "分类不存在"
// @Router       /api/v1/categories/{id} [get]
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	result, err := h.categories.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListCategoryBooks 分类下的图书
// @Summary      分类下的图书
// @Tags         分类
// @Produce      json
// @Security     BearerAuth
// @Param        id        path  int true  "分类ID"
// @Param        page      query int false "页码" default(1)
// @Param        page_size query int false "每页数量" default(20)
// @Success      200 {object} response.Response{data=response.PageData{list=[]appbook.BookResponse}}
// @Failure      404 {object} response.Response "分类不存在"
// @Router       /api/v1/categories/{id}/books [get]
func (h *CategoryHandler) ListCategoryBooks(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.listBooks.Execute(c.Request.Context(), appbook.ListBooksRequest{
		Page:       req.Page,
		PageSize:   req.PageSize,
		CategoryID: id,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, result.List, result.Total, result.Page, result.PageSize)
}

// CreateCategory 新增分类
// @Summary      新增分类
// @Tags         分类
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CategoryRequest true "分类信息"
// @Success      201 {object} response.Response{data=appcategory.CategoryResponse}
// @Failure      409 {object} response.Response "名称已存在"
// @Router       /api/v1/categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	result, err := h.categories.Create(c.Request.Context(), appcategory.CategoryRequest{Name: req.Name, Description: req.Description})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// UpdateCategory 修改分类
// @Summary      修改分类
// @Tags         分类
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                 true "分类ID"
// @Param        request body dto.CategoryRequest true "分类信息"
// @Success      200 {object} response.Response{data=appcategory.CategoryResponse}
// @Failure      404 {object} response.Response "分类不存在"
// @Router       /api/v1/categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	result, err := h.categories.Update(c.Request.Context(), id, appcategory.CategoryRequest{Name: req.Name, Description: req.Description})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// DeleteCategory 删除分类
// @Summary      删除分类
// @Tags         分类
// @Security     BearerAuth
// @Param        id path int true "分类ID"
// @Success      204
// @Failure      404 {object} response.Response "分类不存在"
// @Router       /api/v1/categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.categories.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
