package app

import (
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/xiebiao/online-bookstore/internal/application"
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
)

// =========================================
// Wire Provider Sets
// cmd/api/wire.go使用这些Set生成依赖注入代码,
// New是等价的手写版本
// =========================================

// InfrastructureSet 基础设施层
var InfrastructureSet = wire.NewSet(
	mysql.NewTxManager,
	wire.Bind(new(application.TxManager), new(*mysql.TxManager)),
	provideSessionStore,
	wire.Bind(new(appuser.SessionStore), new(*redis.SessionStore)),
	wire.Bind(new(middleware.TokenBlacklist), new(*redis.SessionStore)),
	provideBookCache,
	wire.Bind(new(book.Cache), new(*redis.BookCache)),
	provideJWTManager,
	provideChecker,
	wire.Bind(new(router.HealthChecker), new(*health.Checker)),
)

// RepositorySet 仓储层
var RepositorySet = wire.NewSet(
	mysql.NewUserRepository,
	mysql.NewCategoryRepository,
	mysql.NewBookRepository,
	mysql.NewCartRepository,
	mysql.NewOrderRepository,
	wire.Bind(new(order.UserLookup), new(user.Repository)),
	wire.Bind(new(cart.BookLookup), new(book.Repository)),
)

// DomainSet 领域服务
var DomainSet = wire.NewSet(
	provideUserService,
	category.NewService,
	wire.Bind(new(book.CategoryChecker), new(category.Service)),
	book.NewService,
	cart.NewService,
	order.NewService,
)

// ApplicationSet 应用层用例
var ApplicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	appuser.NewBootstrapAdminUseCase,
	appuser.NewLoginUseCase,
	appuser.NewLogoutUseCase,
	appuser.NewRefreshTokenUseCase,
	appbook.NewCreateBookUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewDeleteBookUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewListBooksUseCase,
	appbook.NewSearchBooksUseCase,
	appcategory.NewCategoryUseCase,
	appcart.NewCartUseCase,
	apporder.NewPlaceOrderUseCase,
	apporder.NewQueryOrdersUseCase,
	apporder.NewUpdateStatusUseCase,
)

// InterfaceSet 接口层
var InterfaceSet = wire.NewSet(
	middleware.NewAuthMiddleware,
	handler.NewUserHandler,
	handler.NewBookHandler,
	handler.NewCategoryHandler,
	handler.NewCartHandler,
	handler.NewOrderHandler,
	wire.Struct(new(router.Handlers), "*"),
	routerOptions,
	router.New,
	wire.Struct(new(App), "*"),
)

// ProviderSet 全部Provider
var ProviderSet = wire.NewSet(InfrastructureSet, RepositorySet, DomainSet, ApplicationSet, InterfaceSet)

// ===== 自定义Provider =====

func provideSessionStore(client *goredis.Client) *redis.SessionStore {
	return redis.NewSessionStore(client)
}

func provideBookCache(client *goredis.Client, cfg *config.Config) *redis.BookCache {
	return redis.NewBookCache(client, cfg.Redis.CacheTTL)
}

func provideChecker(db *gorm.DB, client *goredis.Client) *health.Checker {
	return health.NewChecker().WithDB(db).WithRedis(client)
}

// provideUserService 生产环境使用默认bcrypt cost
func provideUserService(repo user.Repository) user.Service {
	return user.NewService(repo)
}
