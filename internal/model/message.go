package model

import (
	"time"

	"messenger/pkg/enum/message/message_type_enum"
)

// UserTextMessage 发送给单个用户的文本消息
type UserTextMessage struct {
	Id        int64       `gorm:"column:id;primaryKey;comment:自增id"`
	CreatedAt time.Time   `gorm:"column:created_at;Index;comment:创建时间"`
	Title     string      `gorm:"column:title;type:varchar(255);not null;comment:标题"`
	Content   string      `gorm:"column:content;type:TEXT;comment:内容"`
	Received  bool        `gorm:"column:received;default:false;comment:是否已读"`
	UserId    int64       `gorm:"column:user_id;Index;not null;comment:接收用户id"`
	User      ChannelUser `gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
}

func (UserTextMessage) TableName() string {
	return "user_text_message"
}

func (UserTextMessage) MessageType() message_type_enum.MessageType {
	return message_type_enum.UserTextMessage
}

// GroupTextMessage 发送给一组用户的文本消息
// TargetGroup 为接收者，ReceivedGroup 为其中已读的用户
type GroupTextMessage struct {
	Id            int64          `gorm:"column:id;primaryKey;comment:自增id"`
	CreatedAt     time.Time      `gorm:"column:created_at;Index;comment:创建时间"`
	Title         string         `gorm:"column:title;type:varchar(255);not null;comment:标题"`
	Content       string         `gorm:"column:content;type:TEXT;comment:内容"`
	TargetGroup   []*ChannelUser `gorm:"many2many:group_text_message_target;constraint:OnDelete:CASCADE"`
	ReceivedGroup []*ChannelUser `gorm:"many2many:group_text_message_received;constraint:OnDelete:CASCADE"`
}

func (GroupTextMessage) TableName() string {
	return "group_text_message"
}

func (GroupTextMessage) MessageType() message_type_enum.MessageType {
	return message_type_enum.GroupTextMessage
}

// HasRead 判断用户是否已读，需预加载 ReceivedGroup
func (m *GroupTextMessage) HasRead(userId int64) bool {
	for _, u := range m.ReceivedGroup {
		if u.Id == userId {
			return true
		}
	}
	return false
}
