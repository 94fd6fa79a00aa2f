package chat

import (
	"messenger/internal/dto/message"
	mygorm "messenger/internal/service/gorm"
	"messenger/pkg/constants"
	"messenger/pkg/enum/message/message_type_enum"
	"messenger/pkg/zlog"

	"go.uber.org/zap"
)

/* HandleFrame 按消息类型处理客户端发来的一条消息
 * 参数:
 *	client: 发送该消息的连接
 *	frame: 原始 JSON 消息
 * 返回值:
 *	message.DTO: 需要回复给该连接的消息，无需回复时为 nil
 */
func (s *Server) HandleFrame(client *Client, frame []byte) message.DTO {
	dto, err := message.Decode(frame)
	if err != nil {
		zlog.Error("无法识别的消息", zap.Int64("user_id", client.UserId), zap.Error(err))
		return message.UnknownDTO{}
	}

	switch d := dto.(type) {
	case message.UnknownDTO:
		// 对端无法识别上一条发给它的消息
		zlog.Error("客户端无法处理上一条消息的类型", zap.Int64("user_id", client.UserId))
		return nil

	case message.ErrorDTO:
		zlog.Error("客户端报告错误",
			zap.Int64("user_id", client.UserId),
			zap.Int("error_code", d.ErrorCode),
			zap.String("error_message", d.ErrorMessage))
		return nil

	case message.NotificationDTO:
		// 客户端请求最新的未读数
		msg, note, ret := mygorm.NotificationService.Get(client.UserId)
		if ret != 0 {
			return message.ErrorDTO{ErrorCode: 500, ErrorMessage: msg}
		}
		return *note

	default:
		typ := dto.MessageType()
		zlog.Warn("暂不支持的消息类型", zap.Int64("user_id", client.UserId), zap.Stringer("message_type", typ))
		return message.ErrorDTO{
			ErrorCode:    constants.NOT_IMPLEMENTED,
			ErrorMessage: unsupportedMessage(typ),
		}
	}
}

func unsupportedMessage(typ message_type_enum.MessageType) string {
	switch typ {
	case message_type_enum.UserTextMessage:
		return "User text message type currently not supported"
	case message_type_enum.GroupTextMessage:
		return "Group text message type currently not supported"
	case message_type_enum.Alert:
		return "Alert message type currently not supported"
	}
	return typ.String() + " message type currently not supported"
}
