// Package message 定义通过 websocket 收发的消息结构
// 每条消息都是一个 JSON 对象，其中 messageType 键携带消息类型编号
package message

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"messenger/pkg/enum/message/message_type_enum"
)

// ErrMalformedFrame 消息体不是合法的 JSON 对象
var ErrMalformedFrame = errors.New("malformed message frame")

// DTO 所有 websocket 消息结构都实现该接口
type DTO interface {
	MessageType() message_type_enum.MessageType
}

// UnknownDTO 收到无法识别的消息类型时回传，告知对端出错
type UnknownDTO struct{}

// ErrorDTO 请求处理出错时回传
type ErrorDTO struct {
	ErrorCode    int    `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
}

// NotificationDTO 未读消息数更新
type NotificationDTO struct {
	UnreadMessages uint `json:"unreadMessages"`
}

// UserTextMessageDTO 单聊文本消息
type UserTextMessageDTO struct {
	Id         int64     `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Created    time.Time `json:"created"`
	ReceiverId int64     `json:"receiverId"`
}

// GroupTextMessageDTO 群聊文本消息
type GroupTextMessageDTO struct {
	Id        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Created   time.Time `json:"created"`
	TargetIds []int64   `json:"targetIds"`
}

// AlertDTO 告警消息
type AlertDTO struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (UnknownDTO) MessageType() message_type_enum.MessageType {
	return message_type_enum.Unknown
}

func (ErrorDTO) MessageType() message_type_enum.MessageType {
	return message_type_enum.Error
}

func (NotificationDTO) MessageType() message_type_enum.MessageType {
	return message_type_enum.Notification
}

func (UserTextMessageDTO) MessageType() message_type_enum.MessageType {
	return message_type_enum.UserTextMessage
}

func (GroupTextMessageDTO) MessageType() message_type_enum.MessageType {
	return message_type_enum.GroupTextMessage
}

func (AlertDTO) MessageType() message_type_enum.MessageType {
	return message_type_enum.Alert
}

/* Encode 将消息序列化为 JSON，并写入自身的消息类型编号
 * 返回值:
 *	[]byte: 形如 {"messageType":2,"unreadMessages":3} 的 JSON
 *	error: 序列化失败时返回
 */
func Encode(dto DTO) ([]byte, error) {
	raw, err := json.Marshal(dto)
	if err != nil {
		return nil, err
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	fields[message_type_enum.KEYWORD] = json.RawMessage(strconv.Itoa(int(dto.MessageType())))
	return json.Marshal(fields)
}

// MustEncode 用于编码不可能失败的固定结构
func MustEncode(dto DTO) []byte {
	b, err := Encode(dto)
	if err != nil {
		panic(err)
	}
	return b
}

// PeekType 只读取消息类型编号
// 缺少该键、不是整数或编号未定义时返回 ErrUnknownMessageType
func PeekType(data []byte) (message_type_enum.MessageType, error) {
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return message_type_enum.Unknown, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}
	raw, ok := fields[message_type_enum.KEYWORD]
	if !ok {
		return message_type_enum.Unknown, fmt.Errorf("%w: missing %s", message_type_enum.ErrUnknownMessageType, message_type_enum.KEYWORD)
	}
	var t message_type_enum.MessageType
	if err := json.Unmarshal(raw, &t); err != nil {
		return message_type_enum.Unknown, err
	}
	return t, nil
}

// Decode 根据消息类型编号反序列化为对应的消息结构
func Decode(data []byte) (DTO, error) {
	t, err := PeekType(data)
	if err != nil {
		return nil, err
	}

	var dto DTO
	switch t {
	case message_type_enum.Unknown:
		return UnknownDTO{}, nil
	case message_type_enum.Error:
		var d ErrorDTO
		err = json.Unmarshal(data, &d)
		dto = d
	case message_type_enum.Notification:
		var d NotificationDTO
		err = json.Unmarshal(data, &d)
		dto = d
	case message_type_enum.UserTextMessage:
		var d UserTextMessageDTO
		err = json.Unmarshal(data, &d)
		dto = d
	case message_type_enum.GroupTextMessage:
		var d GroupTextMessageDTO
		err = json.Unmarshal(data, &d)
		dto = d
	case message_type_enum.Alert:
		var d AlertDTO
		err = json.Unmarshal(data, &d)
		dto = d
	default:
		// 枚举新增类型但这里没有对应结构
		return nil, fmt.Errorf("%w: %s", message_type_enum.ErrUnknownMessageType, t)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}
	return dto, nil
}
