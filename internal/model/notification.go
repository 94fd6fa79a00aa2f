package model

import (
	"messenger/pkg/enum/message/message_type_enum"
)

// Notification 用户未读消息计数，与 ChannelUser 一对一
type Notification struct {
	Id             int64       `gorm:"column:id;primaryKey;comment:自增id"`
	UnreadMessages uint        `gorm:"column:unread_messages;default:0;not null;comment:未读消息数"`
	UserId         int64       `gorm:"column:user_id;uniqueIndex;not null;comment:所属用户id"`
	User           ChannelUser `gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
}

func (Notification) TableName() string {
	return "notification"
}

func (Notification) MessageType() message_type_enum.MessageType {
	return message_type_enum.Notification
}
