package handler

import (
	"github.com/gin-gonic/gin"

	apporder "github.com/xiebiao/online-bookstore/internal/application/order"
	"github.com/xiebiao/online-bookstore/internal/interface/http/dto"
	"github.com/xiebiao/online-bookstore/internal/interface/http/middleware"
	"github.com/xiebiao/online-bookstore/pkg/response"
)

// OrderHandler 订单HTTP处理器
type OrderHandler struct {
	placeOrder   *apporder.PlaceOrderUseCase
	queryOrders  *apporder.QueryOrdersUseCase
	updateStatus *apporder.UpdateStatusUseCase
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(
	placeOrder *apporder.PlaceOrderUseCase,
	queryOrders *apporder.QueryOrdersUseCase,
	updateStatus *apporder.UpdateStatusUseCase,
) *OrderHandler {
	return &OrderHandler{placeOrder: placeOrder, queryOrders: queryOrders, updateStatus: updateStatus}
}

// PlaceOrder 下单
// @Summary      下单
// @Description  把购物车中的全部图书生成订单,并清空购物车
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.PlaceOrderRequest false "收货地址"
// @Success      201 {object} response.Response{data=apporder.OrderResponse}
// @Failure      400 {object} response.Response "缺少收货地址"
// @Failure      422 {object} response.Response "购物车为空"
// @Router       /api/v1/orders [post]
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req dto.PlaceOrderRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
	}

	result, err := h.placeOrder.Execute(c.Request.Context(), apporder.PlaceOrderRequest{
		UserID:          middleware.GetUserID(c),
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// ListOrders 我的订单
// @Summary      我的订单
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        page      query int false "页码" default(1)
// @Param        page_size query int false "每页数量" default(20)
// @Success      200 {object} response.Response{data=response.PageData{list=[]apporder.OrderResponse}}
// @Router       /api/v1/orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.queryOrders.List(c.Request.Context(), middleware.GetUserID(c), req.Page, req.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, result.List, result.Total, result.Page, result.PageSize)
}

// GetOrder 订单详情
// @Summary      订单详情
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response{data=apporder.OrderResponse}
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /api/v1/orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	result, err := h.queryOrders.Get(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListOrderItems 订单明细
// @Summary      订单明细
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response{data=[]apporder.OrderItemResponse}
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /api/v1/orders/{id}/items [get]
func (h *OrderHandler) ListOrderItems(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	result, err := h.queryOrders.ListItems(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetOrderItem 单条订单明细
// @Summary      单条订单明细
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        id     path int true "订单ID"
// @Param        itemId path int true "明细ID"
// @Success      200 {object} response.Response{data=apporder.OrderItemResponse}
// @Failure      404 {object} response.Response "明细不存在"
// @Router       /api/v1/orders/{id}/items/{itemId} [get]
func (h *OrderHandler) GetOrderItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}
	result, err := h.queryOrders.GetItem(c.Request.Context(), middleware.GetUserID(c), id, itemID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// UpdateStatus 修改订单状态
// @Summary      修改订单状态
// @Description  管理员操作;PENDING→PAID|CANCELLED, PAID→SHIPPED|CANCELLED, SHIPPED→DELIVERED
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                          true "订单ID"
// @Param        request body dto.UpdateOrderStatusRequest true "目标状态"
// @Success      200 {object} response.Response{data=apporder.OrderResponse}
// @Failure      404 {object} response.Response "订单不存在"
// @Failure      422 {object} response.Response "状态流转非法"
// @Router       /api/v1/orders/{id} [patch]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.updateStatus.Execute(c.Request.Context(), id, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
