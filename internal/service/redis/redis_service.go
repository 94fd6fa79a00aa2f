// Package redis 提供Redis服务的封装，用于在多个实例间共享频道组成员
package redis

import (
	"context"
	"strconv"

	"messenger/internal/config"
	"messenger/pkg/zlog"

	"github.com/go-redis/redis/v8"
)

// redisClient Redis客户端实例，用于执行Redis命令
var redisClient *redis.Client

/*
 * Init 连接到Redis服务器并初始化客户端
 * go-redis 在首次执行命令时才真正建立连接
 */
func Init(conf config.RedisConfig) {
	SetClient(redis.NewClient(&redis.Options{
		Addr:     conf.Host + ":" + strconv.Itoa(conf.Port), // 服务器地址
		Password: conf.Password,                             // 密码（如果没有设置密码则为空字符串）
		DB:       conf.Db,                                   // 选择的数据库编号
	}))
}

// SetClient 替换全局客户端，旧客户端会被关闭
func SetClient(client *redis.Client) {
	if redisClient != nil {
		_ = redisClient.Close()
	}
	redisClient = client
}

// Ping 检查Redis是否可用
func Ping(ctx context.Context) error {
	return redisClient.Ping(ctx).Err()
}

// Close 关闭客户端连接
func Close() {
	if redisClient == nil {
		return
	}
	if err := redisClient.Close(); err != nil {
		zlog.Error(err.Error())
	}
	redisClient = nil
}
