package respond

import (
	"time"

	"messenger/pkg/enum/message/message_type_enum"
)

// MessageMetaData 消息概览中的一条记录
type MessageMetaData struct {
	MessageType message_type_enum.MessageType `json:"message_type"`
	Id          int64                         `json:"id"`
	Created     time.Time                     `json:"created"`
	Title       string                        `json:"title"`
	Received    bool                          `json:"received"`
}

// MessageDetailRespond 单条文本消息详情
type MessageDetailRespond struct {
	MessageType message_type_enum.MessageType `json:"message_type"`
	Id          int64                         `json:"id"`
	Created     string                        `json:"created"`
	Title       string                        `json:"title"`
	Content     string                        `json:"content"`
}

// MessageTypesRespond 消息类型列表
type MessageTypesRespond struct {
	Choices    []message_type_enum.Choice `json:"choices"`
	Dictionary map[string]int             `json:"dictionary"`
}
