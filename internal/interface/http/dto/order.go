package dto

// PlaceOrderRequest 下单,收货地址为空时使用用户默认地址
type PlaceOrderRequest struct {
	ShippingAddress string `json:"shipping_address" binding:"max=255" example:"北京市海淀区中关村大街1号"`
}

// UpdateOrderStatusRequest 修改订单状态(管理员)
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING PAID SHIPPED DELIVERED CANCELLED pending paid shipped delivered cancelled" example:"PAID"`
}
