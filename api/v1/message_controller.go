package v1

import (
	"messenger/internal/dto/respond"
	mygorm "messenger/internal/service/gorm"
	"messenger/pkg/enum/message/message_type_enum"

	"github.com/gin-gonic/gin"
)

// GetNotification 获取当前未读通知
func GetNotification(c *gin.Context) {
	userId, ok := queryUserId(c)
	if !ok {
		return
	}
	message, note, ret := mygorm.NotificationService.Get(userId)
	if note == nil {
		JsonBack(c, message, ret, nil)
		return
	}
	JsonBack(c, message, ret, note)
}

// MessageOverview 获取消息概览，按创建时间升序
func MessageOverview(c *gin.Context) {
	userId, ok := queryUserId(c)
	if !ok {
		return
	}
	message, list, ret := mygorm.MessageService.Overview(userId)
	JsonBack(c, message, ret, list)
}

// ReadUserMessage 阅读单聊消息
func ReadUserMessage(c *gin.Context) {
	userId, ok := queryUserId(c)
	if !ok {
		return
	}
	id, ok := parseId(c, c.Param("id"), "id")
	if !ok {
		return
	}
	message, detail, ret := mygorm.MessageService.ReadUserTextMessage(userId, id)
	if detail == nil {
		JsonBack(c, message, ret, nil)
		return
	}
	JsonBack(c, message, ret, detail)
}

// ReadGroupMessage 阅读群聊消息
func ReadGroupMessage(c *gin.Context) {
	userId, ok := queryUserId(c)
	if !ok {
		return
	}
	id, ok := parseId(c, c.Param("id"), "id")
	if !ok {
		return
	}
	message, detail, ret := mygorm.MessageService.ReadGroupTextMessage(userId, id)
	if detail == nil {
		JsonBack(c, message, ret, nil)
		return
	}
	JsonBack(c, message, ret, detail)
}

// GetMessageTypes 获取消息类型列表
func GetMessageTypes(c *gin.Context) {
	JsonBack(c, "获取消息类型成功", 0, respond.MessageTypesRespond{
		Choices:    message_type_enum.Choices(),
		Dictionary: message_type_enum.Dictionary(),
	})
}
