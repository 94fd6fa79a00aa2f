// Package https_server 实现HTTP(S)服务器的初始化和路由配置
package https_server

import (
	v1 "messenger/api/v1"       // 导入API v1版本的控制器
	"messenger/internal/config" // 导入配置管理包
	"messenger/pkg/ssl"         // 导入SSL/TLS处理包

	"github.com/gin-contrib/cors" // Gin框架的CORS中间件
	"github.com/gin-gonic/gin"    // Gin Web框架
)

// GE 全局Gin引擎实例，用于处理HTTP请求
var GE *gin.Engine

// init 初始化函数，在包被导入时自动执行
func init() {
	GE = NewEngine(config.GetConfig())
}

// NewEngine 配置Gin引擎、CORS中间件、SSL处理以及API路由
func NewEngine(conf *config.Config) *gin.Engine {
	engine := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}                                                         // 允许所有来源访问
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}                                    // 允许的HTTP方法
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"} // 允许的请求头
	engine.Use(cors.New(corsConfig))

	// 启用 TLS 时强制HTTP请求重定向到HTTPS
	if conf.Tls {
		engine.Use(ssl.TlsHandler(conf.MainConfig.Host, conf.MainConfig.Port))
	}

	// 用户侧API路由
	engine.GET("/notifications", v1.GetNotification) // 获取未读通知
	engine.GET("/overview", v1.MessageOverview)      // 消息概览
	engine.GET("/user/:id", v1.ReadUserMessage)      // 阅读单聊消息
	engine.GET("/group/:id", v1.ReadGroupMessage)    // 阅读群聊消息
	engine.GET("/messageTypes", v1.GetMessageTypes)  // 消息类型列表

	// 管理API路由
	admin := engine.Group("/admin")
	admin.POST("/user", v1.CreateUser)                           // 创建用户
	admin.POST("/disableUser", v1.DisableUser)                   // 禁用用户
	admin.POST("/userMessage", v1.CreateUserTextMessage)         // 创建单聊消息
	admin.POST("/groupMessage", v1.CreateGroupTextMessage)       // 创建群聊消息
	admin.POST("/deleteUserMessage", v1.DeleteUserTextMessage)   // 删除单聊消息
	admin.POST("/deleteGroupMessage", v1.DeleteGroupTextMessage) // 删除群聊消息
	admin.POST("/resetNotification", v1.ResetNotification)       // 重新统计未读数

	// WebSocket相关API路由
	engine.GET("/ws/notify", v1.WsLogin) // WebSocket连接入口

	return engine
}
