package handler

import (
	"github.com/gin-gonic/gin"

	appcart "github.com/xiebiao/online-bookstore/internal/application/cart"
	"github.com/xiebiao/online-bookstore/internal/interface/http/dto"
	"github.com/xiebiao/online-bookstore/internal/interface/http/middleware"
	"github.com/xiebiao/online-bookstore/pkg/response"
)

// CartHandler 购物车HTTP处理器
// 购物车始终属于当前登录用户,不接受路径中的用户ID
type CartHandler struct {
	carts *appcart.CartUseCase
}

// NewCartHandler 创建购物车处理器
func NewCartHandler(carts *appcart.CartUseCase) *CartHandler {
	return &CartHandler{carts: carts}
}

// GetCart 查看购物车
// @Summary      查看购物车
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=appcart.CartResponse}
// @Failure      404 {object} response.Response "购物车不存在"
// @Router       /api/v1/cart [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	result, err := h.carts.Get(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// AddBook 加入购物车
// @Summary      加入购物车
// @Description  同一本书重复加入时累加数量
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AddToCartRequest true "图书和数量"
// @Success      200 {object} response.Response{data=appcart.CartResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/cart [post]
func (h *CartHandler) AddBook(c *gin.Context) {
	var req dto.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.carts.AddBook(c.Request.Context(), middleware.GetUserID(c), req.BookID, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// UpdateItem 修改数量
// @Summary      修改购物车明细数量
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                       true "明细ID"
// @Param        request body dto.UpdateCartItemRequest true "数量"
// @Success      200 {object} response.Response{data=appcart.CartResponse}
// @Failure      404 {object} response.Response "明细不存在"
// @Router       /api/v1/cart/items/{id} [put]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	itemID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.carts.UpdateItem(c.Request.Context(), middleware.GetUserID(c), itemID, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// RemoveItem 删除明细
// @Summary      删除购物车明细
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "明细ID"
// @Success      200 {object} response.Response{data=appcart.CartResponse}
// @Failure      404 {object} response.Response "明细不存在"
// @Router       /api/v1/cart/items/{id} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	itemID, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.carts.RemoveItem(c.Request.Context(), middleware.GetUserID(c), itemID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
