package dto

// RegisterRequest HTTP注册请求
// 密码强度(字母+数字)由领域层校验
type RegisterRequest struct {
	Email           string `json:"email" binding:"required,email,max=255" example:"alice@example.com"`
	Password        string `json:"password" binding:"required,min=6,max=16" example:"secret123"`
	RepeatPassword  string `json:"repeat_password" binding:"required,eqfield=Password" example:"secret123"`
	FirstName       string `json:"first_name" binding:"required,max=255" example:"Alice"`
	LastName        string `json:"last_name" binding:"required,max=255" example:"Liddell"`
	ShippingAddress string `json:"shipping_address" binding:"max=255" example:"上海市浦东新区"`
}

// LoginRequest HTTP登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"alice@example.com"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

// RefreshTokenRequest 刷新Token请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
