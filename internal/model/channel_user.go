package model

import (
	"strconv"
	"time"
)

// ChannelUser 可以建立 websocket 连接并接收消息的用户
type ChannelUser struct {
	Id        int64     `gorm:"column:id;primaryKey;comment:自增id"`
	Username  string    `gorm:"column:username;uniqueIndex;type:varchar(150);not null;comment:用户名"`
	IsActive  bool      `gorm:"column:is_active;default:true;comment:是否启用"`
	CreatedAt time.Time `gorm:"column:created_at;comment:创建时间"`
}

func (ChannelUser) TableName() string {
	return "channel_user"
}

// ChannelName 用户所属的频道组名称，只包含 ASCII 字母数字、连字符和句点
func (u *ChannelUser) ChannelName() string {
	return ChannelNameOf(u.Id)
}

// ChannelNameOf 根据用户id拼出频道组名称
func ChannelNameOf(userId int64) string {
	return "message_" + strconv.FormatInt(userId, 10)
}
