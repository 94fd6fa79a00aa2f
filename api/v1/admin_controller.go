package v1

import (
	"messenger/internal/dto/request"
	mygorm "messenger/internal/service/gorm"
	"messenger/pkg/zlog"

	"github.com/gin-gonic/gin"
)

func bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		zlog.Warn(err.Error())
		JsonBack(c, "请求参数错误", -2, nil)
		return false
	}
	return true
}

// CreateUser 创建用户
func CreateUser(c *gin.Context) {
	var req request.CreateUserRequest
	if !bind(c, &req) {
		return
	}
	message, user, ret := mygorm.UserService.CreateUser(req.Username)
	if user == nil {
		JsonBack(c, message, ret, nil)
		return
	}
	JsonBack(c, message, ret, user)
}

// CreateUserTextMessage 创建单聊文本消息
func CreateUserTextMessage(c *gin.Context) {
	var req request.CreateUserTextMessageRequest
	if !bind(c, &req) {
		return
	}
	message, msg, ret := mygorm.MessageService.CreateUserTextMessage(req.UserId, req.Title, req.Content)
	if msg == nil {
		JsonBack(c, message, ret, nil)
		return
	}
	JsonBack(c, message, ret, gin.H{"id": msg.Id})
}

// CreateGroupTextMessage 创建群聊文本消息
func CreateGroupTextMessage(c *gin.Context) {
	var req request.CreateGroupTextMessageRequest
	if !bind(c, &req) {
		return
	}
	message, msg, ret := mygorm.MessageService.CreateGroupTextMessage(req.Title, req.Content, req.TargetIds)
	if msg == nil {
		JsonBack(c, message, ret, nil)
		return
	}
	JsonBack(c, message, ret, gin.H{"id": msg.Id})
}

// DeleteUserTextMessage 删除单聊文本消息
func DeleteUserTextMessage(c *gin.Context) {
	var req request.IdRequest
	if !bind(c, &req) {
		return
	}
	message, ret := mygorm.MessageService.DeleteUserTextMessage(req.Id)
	JsonBack(c, message, ret, nil)
}

// DeleteGroupTextMessage 删除群聊文本消息
func DeleteGroupTextMessage(c *gin.Context) {
	var req request.IdRequest
	if !bind(c, &req) {
		return
	}
	message, ret := mygorm.MessageService.DeleteGroupTextMessage(req.Id)
	JsonBack(c, message, ret, nil)
}

// ResetNotification 重新统计用户未读数
func ResetNotification(c *gin.Context) {
	var req request.IdRequest
	if !bind(c, &req) {
		return
	}
	message, ret := mygorm.NotificationService.Reset(req.Id)
	JsonBack(c, message, ret, nil)
}

// DisableUser 禁用用户，禁用后无法建立通知连接
func DisableUser(c *gin.Context) {
	var req request.IdRequest
	if !bind(c, &req) {
		return
	}
	message, ret := mygorm.UserService.DisableUser(req.Id)
	JsonBack(c, message, ret, nil)
}
