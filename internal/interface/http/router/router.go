package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/xiebiao/online-bookstore/internal/domain/user"
	"github.com/xiebiao/online-bookstore/internal/infrastructure/health"
	"github.com/xiebiao/online-bookstore/internal/interface/http/handler"
	"github.com/xiebiao/online-bookstore/internal/interface/http/middleware"
	"github.com/xiebiao/online-bookstore/pkg/metrics"
)

// Handlers 路由需要的全部Handler
type Handlers struct {
	User     *handler.UserHandler
	Book     *handler.BookHandler
	Category *handler.CategoryHandler
	Cart     *handler.CartHandler
	Order    *handler.OrderHandler
}

// HealthChecker /ping使用的依赖探测
type HealthChecker interface {
	Check(ctx context.Context) (health.Result, bool)
}

// Options 路由可选项
type Options struct {
	Mode        string // gin模式，为空时不修改
	MetricsPath string // 为空时不暴露/metrics
	Swagger     bool
}

// New 创建Gin引擎并注册全部路由
// 中间件顺序：Recovery → 请求日志 → Tracing → Metrics → 路由级认证/鉴权
func New(opts Options, h Handlers, auth *middleware.AuthMiddleware, checker HealthChecker, logger *zap.Logger) *gin.Engine {
	if opts.Mode != "" {
		gin.SetMode(opts.Mode)
	}

	r := gin.New()
	r.Use(
		middleware.Recovery(logger),
		middleware.RequestLogger(logger),
		middleware.Tracing(),
		middleware.Metrics(),
	)

	registerOps(r, opts, checker)
	registerAPI(r.Group("/api/v1"), h, auth)

	return r
}

// registerOps 运维端点
func registerOps(r *gin.Engine, opts Options, checker HealthChecker) {
	r.GET("/ping", func(c *gin.Context) {
		result, healthy := checker.Check(c.Request.Context())
		status := http.StatusOK
		message := "pong"
		if !healthy {
			status = http.StatusServiceUnavailable
			message = "unhealthy"
		}
		c.JSON(status, gin.H{"message": message, "checks": result})
	})

	if opts.MetricsPath != "" {
		r.GET(opts.MetricsPath, gin.WrapH(metrics.Handler()))
	}

	// 访问 /swagger/index.html 查看API文档
	if opts.Swagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}

func registerAPI(api *gin.RouterGroup, h Handlers, auth *middleware.AuthMiddleware) {
	requireUser := middleware.RequireRole(string(user.RoleUser), string(user.RoleAdmin))
	requireAdmin := middleware.RequireRole(string(user.RoleAdmin))

	// ===== 公开接口 =====
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/registration", h.User.Register)
		authGroup.POST("/login", h.User.Login)
		authGroup.POST("/refresh", h.User.Refresh)
		authGroup.POST("/logout", auth.RequireAuth(), h.User.Logout)
	}

	// ===== 需要登录的接口 =====
	authorized := api.Group("")
	authorized.Use(auth.RequireAuth())

	books := authorized.Group("/books")
	{
		books.GET("", requireUser, h.Book.ListBooks)
		books.GET("/search", requireUser, h.Book.SearchBooks)
		books.GET("/:id", requireUser, h.Book.GetBook)
		books.POST("", requireAdmin, h.Book.CreateBook)
		books.PUT("/:id", requireAdmin, h.Book.UpdateBook)
		books.DELETE("/:id", requireAdmin, h.Book.DeleteBook)
	}

	categories := authorized.Group("/categories")
	{
		categories.GET("", requireUser, h.Category.ListCategories)
		categories.GET("/:id", requireUser, h.Category.GetCategory)
		categories.GET("/:id/books", requireUser, h.Category.ListCategoryBooks)
		categories.POST("", requireAdmin, h.Category.CreateCategory)
		categories.PUT("/:id", requireAdmin, h.Category.UpdateCategory)
		categories.DELETE("/:id", requireAdmin, h.Category.DeleteCategory)
	}

	cart := authorized.Group("/cart", requireUser)
	{
		cart.GET("", h.Cart.GetCart)
		cart.POST("", h.Cart.AddBook)
		cart.PUT("/items/:id", h.Cart.UpdateItem)
		cart.DELETE("/items/:id", h.Cart.RemoveItem)
	}

	orders := authorized.Group("/orders")
	{
		orders.GET("", requireUser, h.Order.ListOrders)
		orders.POST("", requireUser, h.Order.PlaceOrder)
		orders.GET("/:id", requireUser, h.Order.GetOrder)
		orders.PATCH("/:id", requireAdmin, h.Order.UpdateStatus)
		orders.GET("/:id/items", requireUser, h.Order.ListOrderItems)
		orders.GET("/:id/items/:itemId", requireUser, h.Order.GetOrderItem)
	}
}
