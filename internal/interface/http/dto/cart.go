package dto

// AddToCartRequest 加入购物车
type AddToCartRequest struct {
	BookID   uint `json:"book_id" binding:"required,gt=0" example:"1"`
	Quantity int  `json:"quantity" binding:"required,min=1,max=999" example:"2"`
}

// UpdateCartItemRequest 修改购物车明细数量
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1,max=999" example:"3"`
}
