package database

import (
	"fmt"
	"log"
	"os"

	"github.com/SlpAus/clone-pool-backend/internal/platform/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB 是一个全局的GORM实例，供项目其他部分使用
var DB *gorm.DB

// InitDB 根据配置初始化数据库连接。
// 后端在启动时由 database.driver 显式选择，业务代码不感知具体驱动。
func InitDB(cfg config.DatabaseConfig) {
	// GORM日志配置
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: 0,
			LogLevel:      logger.Silent, // 在生产环境中可以设为Silent
			Colorful:      true,
		},
	)

	gormCfg := &gorm.Config{
		Logger: newLogger,
		// 将底层驱动的唯一约束冲突统一翻译为 gorm.ErrDuplicatedKey
		TranslateError: true,
	}

	var err error
	switch cfg.Driver {
	case "postgres":
		DB, err = gorm.Open(postgres.Open(cfg.Postgres.DSN), gormCfg)
	default:
		DB, err = gorm.Open(sqlite.Open(cfg.Sqlite.Path), gormCfg)
	}

	if err != nil {
		fmt.Println("连接数据库失败", err)
		panic(err)
	}

	fmt.Printf("数据库连接成功！(driver=%s)\n", cfg.Driver)
}
