// Package main 包含通知服务器的主入口函数
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"messenger/internal/config"                // 配置管理
	"messenger/internal/dao"                   // 数据库连接
	"messenger/internal/https_server"          // HTTPS服务器
	"messenger/internal/service/chat"          // 通知服务
	mygorm "messenger/internal/service/gorm"   // 业务服务
	"messenger/internal/service/kafka"         // Kafka服务
	myredis "messenger/internal/service/redis" // Redis服务
	"messenger/pkg/constants"
	"messenger/pkg/zlog" // 日志工具

	"go.uber.org/zap"
)

// main 通知服务器的入口
//  1. 加载配置并连接数据库
//  2. 按配置选择频道组记录（memory 或 redis）
//  3. 初始化分发模式（channel 或 kafka）
//  4. 启动HTTP(S)服务器
//  5. 收到信号后依次关闭，并清理 Redis 中的频道组记录
func main() {
	conf := config.GetConfig()
	addr := fmt.Sprintf("%s:%d", conf.MainConfig.Host, conf.MainConfig.Port)

	if err := dao.Init(conf.DatabaseConfig); err != nil {
		zlog.Fatal("数据库初始化失败", zap.Error(err))
	}

	if conf.GroupRegistryConfig.Mode == "redis" {
		myredis.Init(conf.RedisConfig)
		ctx, cancel := context.WithTimeout(context.Background(), constants.REDIS_TIMEOUT*time.Second)
		if err := myredis.Ping(ctx); err != nil {
			zlog.Fatal("Redis连接失败", zap.Error(err))
		}
		cancel()
		chat.ChatServer.SetRegistry(myredis.GroupRegistry)
	}

	// 未读数变化后推送给在线连接
	mygorm.NotificationService.SetNotifier(chat.ChatServer)

	if conf.KafkaConfig.MessageMode == "kafka" {
		kafka.KafkaService.KafkaInit(*conf)
		kafka.KafkaService.CreateTopic(conf.KafkaConfig)
		chat.KafkaChatServer.SetTransport(kafka.KafkaService.NotifyWriter, kafka.KafkaService.NotifyReader)
		chat.ChatServer.SetPublisher(chat.KafkaChatServer.Publish)
		go chat.KafkaChatServer.Start()
	}
	go chat.ChatServer.Start()

	go func() {
		var err error
		if conf.Tls {
			err = https_server.GE.RunTLS(addr, conf.CertFile, conf.KeyFile)
		} else {
			err = https_server.GE.Run(addr)
		}
		if err != nil {
			zlog.Fatal("server running fault", zap.Error(err))
		}
	}()
	zlog.Info("服务器已启动", zap.String("addr", addr), zap.String("mode", conf.KafkaConfig.MessageMode))

	// 设置信号监听，用于优雅关闭服务器
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info("关闭服务器...")

	if conf.KafkaConfig.MessageMode == "kafka" {
		chat.KafkaChatServer.Close()
		kafka.KafkaService.KafkaClose()
	}

	// 等待主循环断开全部连接，并从频道组记录中移除本实例的连接
	chat.ChatServer.Close()
	if conf.GroupRegistryConfig.Mode == "redis" {
		myredis.Close()
	}

	zlog.Info("服务器已关闭")
	zlog.Sync()
}
