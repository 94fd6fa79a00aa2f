// message_type_enum 包定义了消息类型的枚举常量
// 数值与服务端 messenger MessageType 保持一致，前后端通过该编号识别消息类别
package message_type_enum

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// KEYWORD 每条 websocket 消息中携带消息类型编号的 JSON 键
const KEYWORD = "messageType"

// MessageType 消息类型编号
type MessageType int

// 编号是跨系统契约，新增类型只能追加，不能重排
const (
	Unknown          MessageType = 0 // 未知消息类型，对端无法识别上一条消息时回传
	Error            MessageType = 1 // 错误消息
	Notification     MessageType = 2 // 未读通知
	UserTextMessage  MessageType = 3 // 单聊文本消息
	GroupTextMessage MessageType = 4 // 群聊文本消息
	Alert            MessageType = 5 // 告警消息
)

// ErrUnknownMessageType 按名称或编号查找失败时返回
var ErrUnknownMessageType = errors.New("unknown message type")

// values 按编号升序排列
var values = []MessageType{Unknown, Error, Notification, UserTextMessage, GroupTextMessage, Alert}

var names = map[MessageType]string{
	Unknown:          "UNKNOWN",
	Error:            "ERROR",
	Notification:     "NOTIFICATION",
	UserTextMessage:  "USER_TEXT_MESSAGE",
	GroupTextMessage: "GROUP_TEXT_MESSAGE",
	Alert:            "ALERT",
}

var codes = func() map[string]MessageType {
	m := make(map[string]MessageType, len(names))
	for t, name := range names {
		m[name] = t
	}
	return m
}()

// Choice 编号与名称对，用于下拉选项等列表展示
type Choice struct {
	Value int    `json:"value"`
	Name  string `json:"name"`
}

/* CodeOf 根据符号名称获取消息类型
 * 参数:
 *	name: 符号名称，区分大小写，如 "ALERT"
 * 返回值:
 *	MessageType: 对应的消息类型
 *	error: 名称未定义时返回 ErrUnknownMessageType
 */
func CodeOf(name string) (MessageType, error) {
	if t, ok := codes[name]; ok {
		return t, nil
	}
	return Unknown, fmt.Errorf("%w: %q", ErrUnknownMessageType, name)
}

// NameOf 根据编号获取符号名称
func NameOf(code int) (string, error) {
	t, err := Parse(code)
	if err != nil {
		return "", err
	}
	return names[t], nil
}

// Parse 将整数编号转换为消息类型，编号未定义时返回 ErrUnknownMessageType
func Parse(code int) (MessageType, error) {
	t := MessageType(code)
	if _, ok := names[t]; !ok {
		return Unknown, fmt.Errorf("%w: %d", ErrUnknownMessageType, code)
	}
	return t, nil
}

// Valid 判断是否为已定义的消息类型
func (t MessageType) Valid() bool {
	_, ok := names[t]
	return ok
}

func (t MessageType) String() string {
	if name, ok := names[t]; ok {
		return name
	}
	return "MessageType(" + strconv.Itoa(int(t)) + ")"
}

// Values 返回全部消息类型，按编号升序
func Values() []MessageType {
	out := make([]MessageType, len(values))
	copy(out, values)
	return out
}

// Dictionary 返回名称到编号的映射，如 {"UNKNOWN": 0, "ERROR": 1, ...}
func Dictionary() map[string]int {
	dict := make(map[string]int, len(values))
	for _, t := range values {
		dict[names[t]] = int(t)
	}
	return dict
}

// Choices 返回 (编号, 名称) 列表，按编号升序
func Choices() []Choice {
	choices := make([]Choice, 0, len(values))
	for _, t := range values {
		choices = append(choices, Choice{Value: int(t), Name: names[t]})
	}
	return choices
}

// UnmarshalJSON 只接受已定义的整数编号
func (t *MessageType) UnmarshalJSON(data []byte) error {
	var code int
	if string(data) == "null" {
		return fmt.Errorf("%w: null", ErrUnknownMessageType)
	}
	if err := json.Unmarshal(data, &code); err != nil {
		return fmt.Errorf("%w: %s", ErrUnknownMessageType, string(data))
	}
	parsed, err := Parse(code)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
