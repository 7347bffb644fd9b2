package handler

import (
	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/online-bookstore/internal/application/book"
	"github.com/xiebiao/online-bookstore/internal/interface/http/dto"
	"github.com/xiebiao/online-bookstore/pkg/response"
)

// BookHandler 图书HTTP处理器
// Handler只负责解析请求、调用应用层、返回响应
type BookHandler struct {
	createBook *appbook.CreateBookUseCase
	updateBook *appbook.UpdateBookUseCase
	deleteBook *appbook.DeleteBookUseCase
	getBook    *appbook.GetBookUseCase
	listBooks  *appbook.ListBooksUseCase
	search     *appbook.SearchBooksUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	createBook *appbook.CreateBookUseCase,
	updateBook *appbook.UpdateBookUseCase,
	deleteBook *appbook.DeleteBookUseCase,
	getBook *appbook.GetBookUseCase,
	listBooks *appbook.ListBooksUseCase,
	search *appbook.SearchBooksUseCase,
) *BookHandler {
	return &BookHandler{
		createBook: createBook,
		updateBook: updateBook,
		deleteBook: deleteBook,
		getBook:    getBook,
		listBooks:  listBooks,
		search:     search,
	}
}

func toBookRequest(req *dto.BookRequest) appbook.BookRequest {
	return appbook.BookRequest{
		Title:       req.Title,
		Author:      req.Author,
		ISBN:        req.ISBN,
		Price:       *req.Price,
		Description: req.Description,
		CoverImage:  req.CoverImage,
		CategoryIDs: req.CategoryIDs,
	}
}

// ListBooks 图书列表
// @Summary      图书列表
// @Description  按id排序分页查询
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        page      query int false "页码" default(1)
// @Param        page_size query int false "每页数量" default(20)
// @Success      200 {object} response.Response{data=response.PageData{list=[]appbook.BookResponse}}
// @Failure      401 {object} response.Response "未登录"
// @Router       /api/v1/books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.listBooks.Execute(c.Request.Context(), appbook.ListBooksRequest{Page: req.Page, PageSize: req.PageSize})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, result.List, result.Total, result.Page, result.PageSize)
}

// SearchBooks 按字段搜索图书
// @Summary      搜索图书
// @Description  同一字段多个值为OR,不同字段之间为AND;price支持 a、a-b、a-、-b
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        title       query []string false "书名(模糊匹配)" collectionFormat(multi)
// @Param        author      query []string false "作者" collectionFormat(multi)
// @Param        isbn        query []string false "ISBN" collectionFormat(multi)
// @Param        price       query []string false "价格或价格区间" collectionFormat(multi)
// @Param        description query []string false "描述(模糊匹配)" collectionFormat(multi)
// @Param        category_id query []string false "分类ID" collectionFormat(multi)
// @Success      200 {object} response.Response{data=[]appbook.BookResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/v1/books/search [get]
func (h *BookHandler) SearchBooks(c *gin.Context) {
	var req dto.SearchBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	list, err := h.search.Execute(c.Request.Context(), appbook.SearchBooksRequest{
		Titles:       req.Title,
		Authors:      req.Author,
		ISBNs:        splitValues(req.ISBN),
		Prices:       splitValues(req.Price),
		Descriptions: req.Description,
		CategoryIDs:  splitValues(req.CategoryID),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

// GetBook 图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=appbook.BookResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.getBook.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// CreateBook 新增图书
// @Summary      新增图书
// @Description  管理员新增图书,分类ID必须全部存在
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.BookRequest true "图书信息"
// @Success      201 {object} response.Response{data=appbook.BookResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      403 {object} response.Response "无权限"
// @Failure      404 {object} response.Response "分类不存在"
// @Failure      409 {object} response.Response "ISBN已存在"
// @Router       /api/v1/books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.createBook.Execute(c.Request.Context(), toBookRequest(&req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// UpdateBook 修改图书
// @Summary      修改图书
// @Description  整体替换图书字段和分类
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int             true "图书ID"
// @Param        request body dto.BookRequest true "图书信息"
// @Success      200 {object} response.Response{data=appbook.BookResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.updateBook.Execute(c.Request.Context(), id, toBookRequest(&req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// DeleteBook 删除图书
// @Summary      删除图书
// @Tags         图书
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      204
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.deleteBook.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
