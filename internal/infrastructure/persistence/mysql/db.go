package mysql

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/online-bookstore/internal/domain/user"
	"github.com/xiebiao/online-bookstore/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 1. database.driver=mysql使用MySQL,sqlite用于本地开发和测试
// 2. 配置连接池参数
// 3. 开发环境开启SQL日志
// 4. 自动迁移表结构并写入角色数据
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info
	}

	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.Database.SQLitePath)
	default:
		dialector = mysql.Open(cfg.Database.DSN())
	}

	db, err := open(dialector, logLevel)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}
	if cfg.Database.Driver == config.DriverSQLite {
		// SQLite单写者,内存库在不同连接之间不共享
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}
	zap.L().Info("✓ 数据库连接成功", zap.String("driver", cfg.Database.Driver))

	// 生产环境应使用版本化的迁移脚本
	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}
	return db, nil
}

// OpenSQLite 打开SQLite数据库并完成迁移(测试和本地开发使用)
// path为"file::memory:"时是独立的内存库
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := open(sqlite.Open(path), logger.Silent)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func open(dialector gorm.Dialector, level logger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true, // 唯一索引冲突转换为gorm.ErrDuplicatedKey
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}
	return db, nil
}

// Migrate 自动迁移表结构,并写入角色数据
// AutoMigrate只会创建表、添加字段,不会删除或修改现有字段
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&UserModel{},
		&RoleModel{},
		&UserRoleModel{},
		&CategoryModel{},
		&BookModel{},
		&BookCategoryModel{},
		&ShoppingCartModel{},
		&CartItemModel{},
		&OrderModel{},
		&OrderItemModel{},
	); err != nil {
		return err
	}
	return seedRoles(db)
}

func seedRoles(db *gorm.DB) error {
	roles := make([]RoleModel, 0, len(user.AllRoles))
	for _, r := range user.AllRoles {
		roles = append(roles, RoleModel{Name: string(r)})
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&roles).Error
}

// isDuplicateError 判断是否为唯一索引冲突
// MySQL: 1062 Duplicate entry; SQLite: UNIQUE constraint failed
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}
