package app

import (
	"context"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	appbook "github.com/xiebiao/online-bookstore/internal/application/book"
	appcart "github.com/xiebiao/online-bookstore/internal/application/cart"
	appcategory "github.com/xiebiao/online-bookstore/internal/application/category"
	apporder "github.com/xiebiao/online-bookstore/internal/application/order"
	appuser "github.com/xiebiao/online-bookstore/internal/application/user"
	"github.com/xiebiao/online-bookstore/internal/domain/book"
	"github.com/xiebiao/online-bookstore/internal/domain/cart"
	"github.com/xiebiao/online-bookstore/internal/domain/category"
	"github.com/xiebiao/online-bookstore/internal/domain/order"
	"github.com/xiebiao/online-bookstore/internal/domain/user"
	"github.com/xiebiao/online-bookstore/internal/infrastructure/config"
	"github.com/xiebiao/online-bookstore/internal/infrastructure/health"
	"github.com/xiebiao/online-bookstore/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/online-bookstore/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/online-bookstore/internal/interface/http/handler"
	"github.com/xiebiao/online-bookstore/internal/interface/http/middleware"
	"github.com/xiebiao/online-bookstore/internal/interface/http/router"
	"github.com/xiebiao/online-bookstore/pkg/jwt"
)

// Deps 组装应用所需的外部资源
// 连接的创建和关闭由调用方负责
type Deps struct {
	Config *config.Config
	DB     *gorm.DB
	Redis  goredis.UniversalClient
	Events order.EventPublisher
	Logger *zap.Logger

	// 用户服务选项(测试中传user.WithBcryptCost(bcrypt.MinCost))
	UserOptions []user.Option
}

// App 组装完成的应用
type App struct {
	Engine         *gin.Engine
	Checker        *health.Checker
	BootstrapAdmin *appuser.BootstrapAdminUseCase
}

// New 手动依赖注入
// 依赖链:仓储 → 领域服务 → 用例 → Handler → 路由
func New(d Deps) *App {
	cfg := d.Config

	// 步骤1:仓储和基础设施
	txManager := mysql.NewTxManager(d.DB)
	userRepo := mysql.NewUserRepository(d.DB)
	categoryRepo := mysql.NewCategoryRepository(d.DB)
	bookRepo := mysql.NewBookRepository(d.DB)
	cartRepo := mysql.NewCartRepository(d.DB)
	orderRepo := mysql.NewOrderRepository(d.DB)
	sessionStore := redis.NewSessionStore(d.Redis)
	bookCache := redis.NewBookCache(d.Redis, cfg.Redis.CacheTTL)
	jwtManager := provideJWTManager(cfg)
	checker := health.NewChecker().WithDB(d.DB).WithRedis(d.Redis)

	// 步骤2:领域服务
	userService := user.NewService(userRepo, d.UserOptions...)
	categoryService := category.NewService(categoryRepo)
	bookService := book.NewService(bookRepo, categoryService, bookCache)
	cartService := cart.NewService(cartRepo, bookRepo)
	orderService := order.NewService(orderRepo, cartRepo, userRepo)

	// 步骤3:应用层用例
	registerUC := appuser.NewRegisterUseCase(userService, cartService, txManager)
	bootstrapUC := appuser.NewBootstrapAdminUseCase(userService, cartService, txManager)
	loginUC := appuser.NewLoginUseCase(userService, jwtManager, sessionStore)
	logoutUC := appuser.NewLogoutUseCase(sessionStore)
	refreshUC := appuser.NewRefreshTokenUseCase(userService, jwtManager, sessionStore)

	listBooksUC := appbook.NewListBooksUseCase(bookService)
	bookHandler := handler.NewBookHandler(
		appbook.NewCreateBookUseCase(bookService),
		appbook.NewUpdateBookUseCase(bookService),
		appbook.NewDeleteBookUseCase(bookService),
		appbook.NewGetBookUseCase(bookService),
		listBooksUC,
		appbook.NewSearchBooksUseCase(bookService),
	)

	// 步骤4:Handler和路由
	handlers := router.Handlers{
		User:     handler.NewUserHandler(registerUC, loginUC, logoutUC, refreshUC),
		Book:     bookHandler,
		Category: handler.NewCategoryHandler(appcategory.NewCategoryUseCase(categoryService, bookCache), listBooksUC),
		Cart:     handler.NewCartHandler(appcart.NewCartUseCase(cartService, txManager)),
		Order: handler.NewOrderHandler(
			apporder.NewPlaceOrderUseCase(orderService, txManager, d.Events),
			apporder.NewQueryOrdersUseCase(orderService),
			apporder.NewUpdateStatusUseCase(orderService, txManager, d.Events),
		),
	}
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionStore)

	engine := router.New(routerOptions(cfg), handlers, authMiddleware, checker, d.Logger)

	return &App{Engine: engine, Checker: checker, BootstrapAdmin: bootstrapUC}
}

// EnsureAdmin 按配置引导管理员账号,admin.email为空时跳过
func (a *App) EnsureAdmin(ctx context.Context, admin config.AdminConfig) error {
	if admin.Email == "" {
		return nil
	}
	_, err := a.BootstrapAdmin.Execute(ctx, appuser.RegisterRequest{
		Email:     admin.Email,
		Password:  admin.Password,
		FirstName: admin.FirstName,
		LastName:  admin.LastName,
	})
	return err
}

func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpire, cfg.JWT.RefreshTokenExpire)
}

func routerOptions(cfg *config.Config) router.Options {
	opts := router.Options{
		Mode:    cfg.Server.Mode,
		Swagger: cfg.Server.Mode != "release",
	}
	if cfg.Metrics.Enabled {
		opts.MetricsPath = cfg.Metrics.Path
	}
	return opts
}
