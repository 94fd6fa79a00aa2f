// package dao 数据访问层包，负责数据库连接和表结构迁移
package dao

import (
	"fmt"

	"messenger/internal/config" // 配置包，用于获取数据库连接配置
	"messenger/internal/model"  // 模型包，定义数据库表结构

	"gorm.io/driver/mysql"    // MySQL 驱动
	"gorm.io/driver/postgres" // PostgreSQL 驱动
	"gorm.io/driver/sqlite"   // SQLite 驱动，本地开发与测试使用
	"gorm.io/gorm"            // GORM 框架
	"gorm.io/gorm/logger"
)

// GormDB 全局数据库实例，供其他模块使用
var GormDB *gorm.DB

// dialector 根据驱动名称选择 gorm 方言
func dialector(conf config.DatabaseConfig) (gorm.Dialector, error) {
	switch conf.Driver {
	case "mysql":
		// 格式：用户名@unix(socket路径)/数据库名?参数 或 用户名:密码@tcp(主机:端口)/数据库名?参数
		return mysql.Open(conf.Dsn), nil
	case "postgres":
		return postgres.Open(conf.Dsn), nil
	case "sqlite":
		return sqlite.Open(conf.Dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", conf.Driver)
	}
}

// Init 连接数据库并自动迁移表结构，成功后设置 GormDB
func Init(conf config.DatabaseConfig) error {
	d, err := dialector(conf)
	if err != nil {
		return err
	}

	db, err := gorm.Open(d, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return err
	}

	if conf.Driver == "sqlite" {
		// sqlite 只允许单连接写入，:memory: 库在多个连接间也不共享
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	// 当数据库中不存在对应表时，会自动创建
	err = db.AutoMigrate(
		&model.ChannelUser{},      // 用户表
		&model.Notification{},     // 未读通知表
		&model.UserTextMessage{},  // 单聊文本消息表
		&model.GroupTextMessage{}, // 群聊文本消息表，含两张关联表
	)
	if err != nil {
		return err
	}

	GormDB = db
	return nil
}
