package gorm

import (
	"errors"
	"sort"
	"unicode/utf8"

	"messenger/internal/dao"
	"messenger/internal/dto/respond"
	"messenger/internal/model"
	"messenger/pkg/constants"
	"messenger/pkg/enum/message/message_type_enum"
	"messenger/pkg/zlog"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type messageService struct {
}

var MessageService = new(messageService)

var errUserNotFound = errors.New("user not found")

func checkTitle(title string) (string, int) {
	if title == "" {
		return "标题不能为空", -2
	}
	if utf8.RuneCountInString(title) > constants.TITLE_MAX_LENGTH {
		return "标题过长", -2
	}
	return "", 0
}

// CreateUserTextMessage 创建单聊文本消息，接收者未读数加一
// 参数：userId - 接收用户ID，title - 标题，content - 内容
// 返回值:
//   - string: 操作结果消息
//   - *model.UserTextMessage: 新建的消息
//   - int: 状态码，0表示成功，-1表示系统错误，-2表示参数错误
func (m *messageService) CreateUserTextMessage(userId int64, title, content string) (string, *model.UserTextMessage, int) {
	if msg, ret := checkTitle(title); ret != 0 {
		return msg, nil, ret
	}

	message := model.UserTextMessage{Title: title, Content: content, UserId: userId}
	err := dao.GormDB.Transaction(func(tx *gorm.DB) error {
		// 只能发给已启用的用户
		var active int64
		if err := tx.Model(&model.ChannelUser{}).Where("id = ? AND is_active = ?", userId, true).Count(&active).Error; err != nil {
			return err
		}
		if active == 0 {
			return errUserNotFound
		}
		if _, err := getNotification(tx, userId); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errUserNotFound
			}
			return err
		}
		if err := tx.Omit(clause.Associations).Create(&message).Error; err != nil {
			return err
		}
		return incrementUnread(tx, []int64{userId})
	})
	if err != nil {
		if errors.Is(err, errUserNotFound) {
			return "用户不存在", nil, -2
		}
		zlog.Error(err.Error())
		return constants.SYSTEM_ERROR, nil, -1
	}

	NotificationService.push(userId)
	return "创建消息成功", &message, 0
}

// DeleteUserTextMessage 删除单聊文本消息，若接收者尚未读过则未读数减一
func (m *messageService) DeleteUserTextMessage(id int64) (string, int) {
	var message model.UserTextMessage
	err := dao.GormDB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&message, id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&message).Error; err != nil {
			return err
		}
		if !message.Received {
			return decrementUnread(tx, []int64{message.UserId})
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "消息不存在", -2
		}
		zlog.Error(err.Error())
		return constants.SYSTEM_ERROR, -1
	}

	if !message.Received {
		NotificationService.push(message.UserId)
	}
	return "删除消息成功", 0
}

// CreateGroupTextMessage 创建群聊文本消息，每个接收者未读数加一
// 重复的接收者ID只计一次
func (m *messageService) CreateGroupTextMessage(title, content string, targetIds []int64) (string, *model.GroupTextMessage, int) {
	if msg, ret := checkTitle(title); ret != 0 {
		return msg, nil, ret
	}
	targetIds = uniqueIds(targetIds)
	if len(targetIds) == 0 {
		return "接收者不能为空", nil, -2
	}

	message := model.GroupTextMessage{Title: title, Content: content}
	err := dao.GormDB.Transaction(func(tx *gorm.DB) error {
		var targets []*model.ChannelUser
		if err := tx.Where("id IN ? AND is_active = ?", targetIds, true).Find(&targets).Error; err != nil {
			return err
		}
		if len(targets) != len(targetIds) {
			return errUserNotFound
		}
		message.TargetGroup = targets
		if err := tx.Omit("TargetGroup.*", "ReceivedGroup").Create(&message).Error; err != nil {
			return err
		}
		return incrementUnread(tx, targetIds)
	})
	if err != nil {
		if errors.Is(err, errUserNotFound) {
			return "用户不存在", nil, -2
		}
		zlog.Error(err.Error())
		return constants.SYSTEM_ERROR, nil, -1
	}

	zlog.Info("创建群聊消息成功", zap.Int64("id", message.Id), zap.Int("targets", len(targetIds)))
	NotificationService.push(targetIds...)
	return "创建消息成功", &message, 0
}

// DeleteGroupTextMessage 删除群聊文本消息，所有尚未读过的接收者未读数减一
func (m *messageService) DeleteGroupTextMessage(id int64) (string, int) {
	var unreadIds []int64
	err := dao.GormDB.Transaction(func(tx *gorm.DB) error {
		var message model.GroupTextMessage
		if err := tx.First(&message, id).Error; err != nil {
			return err
		}
		received := tx.Table("group_text_message_received").Select("channel_user_id").Where("group_text_message_id = ?", id)
		if err := tx.Table("group_text_message_target").
			Where("group_text_message_id = ? AND channel_user_id NOT IN (?)", id, received).
			Pluck("channel_user_id", &unreadIds).Error; err != nil {
			return err
		}
		if len(unreadIds) > 0 {
			if err := decrementUnread(tx, unreadIds); err != nil {
				return err
			}
		}
		// 同时删除两张关联表中的记录
		return tx.Select(clause.Associations).Delete(&message).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "消息不存在", -2
		}
		zlog.Error(err.Error())
		return constants.SYSTEM_ERROR, -1
	}

	NotificationService.push(unreadIds...)
	return "删除消息成功", 0
}

// ReadUserTextMessage 用户阅读单聊消息，首次阅读时标记为已读并将未读数减一
func (m *messageService) ReadUserTextMessage(userId, id int64) (string, *respond.MessageDetailRespond, int) {
	var message model.UserTextMessage
	firstRead := false
	err := dao.GormDB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", id, userId).First(&message).Error; err != nil {
			return err
		}
		if message.Received {
			return nil
		}
		firstRead = true
		message.Received = true
		if err := tx.Model(&message).UpdateColumn("received", true).Error; err != nil {
			return err
		}
		return decrementUnread(tx, []int64{userId})
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "消息不存在", nil, -2
		}
		zlog.Error(err.Error())
		return constants.SYSTEM_ERROR, nil, -1
	}

	if firstRead {
		NotificationService.push(userId)
	}
	return "获取消息成功", &respond.MessageDetailRespond{
		MessageType: message.MessageType(),
		Id:          message.Id,
		Created:     message.CreatedAt.Format("2006-01-02 15:04:05"),
		Title:       message.Title,
		Content:     message.Content,
	}, 0
}

// ReadGroupTextMessage 用户阅读群聊消息，首次阅读时加入已读列表并将未读数减一
// 只有接收者可以阅读
func (m *messageService) ReadGroupTextMessage(userId, id int64) (string, *respond.MessageDetailRespond, int) {
	var message model.GroupTextMessage
	firstRead := false
	err := dao.GormDB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&message, id).Error; err != nil {
			return err
		}
		var targeted int64
		if err := tx.Table("group_text_message_target").
			Where("group_text_message_id = ? AND channel_user_id = ?", id, userId).
			Count(&targeted).Error; err != nil {
			return err
		}
		if targeted == 0 {
			return gorm.ErrRecordNotFound
		}
		var received int64
		if err := tx.Table("group_text_message_received").
			Where("group_text_message_id = ? AND channel_user_id = ?", id, userId).
			Count(&received).Error; err != nil {
			return err
		}
		if received > 0 {
			return nil
		}
		firstRead = true
		if err := tx.Table("group_text_message_received").Create(map[string]interface{}{
			"group_text_message_id": id,
			"channel_user_id":       userId,
		}).Error; err != nil {
			return err
		}
		return decrementUnread(tx, []int64{userId})
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "消息不存在", nil, -2
		}
		zlog.Error(err.Error())
		return constants.SYSTEM_ERROR, nil, -1
	}

	if firstRead {
		NotificationService.push(userId)
	}
	return "获取消息成功", &respond.MessageDetailRespond{
		MessageType: message.MessageType(),
		Id:          message.Id,
		Created:     message.CreatedAt.Format("2006-01-02 15:04:05"),
		Title:       message.Title,
		Content:     message.Content,
	}, 0
}

// Overview 获取用户收到的全部文本消息概览，按创建时间升序
func (m *messageService) Overview(userId int64) (string, []respond.MessageMetaData, int) {
	var userMessages []model.UserTextMessage
	if res := dao.GormDB.Where("user_id = ?", userId).Order("created_at ASC").Find(&userMessages); res.Error != nil {
		zlog.Error(res.Error.Error())
		return constants.SYSTEM_ERROR, nil, -1
	}

	var groupMessages []model.GroupTextMessage
	if res := dao.GormDB.
		Joins("JOIN group_text_message_target t ON t.group_text_message_id = group_text_message.id").
		Where("t.channel_user_id = ?", userId).
		Preload("ReceivedGroup", "id = ?", userId).
		Order("group_text_message.created_at ASC").
		Find(&groupMessages); res.Error != nil {
		zlog.Error(res.Error.Error())
		return constants.SYSTEM_ERROR, nil, -1
	}

	rspList := make([]respond.MessageMetaData, 0, len(userMessages)+len(groupMessages))
	for _, msg := range userMessages {
		rspList = append(rspList, respond.MessageMetaData{
			MessageType: message_type_enum.UserTextMessage,
			Id:          msg.Id,
			Created:     msg.CreatedAt,
			Title:       msg.Title,
			Received:    msg.Received,
		})
	}
	for _, msg := range groupMessages {
		rspList = append(rspList, respond.MessageMetaData{
			MessageType: message_type_enum.GroupTextMessage,
			Id:          msg.Id,
			Created:     msg.CreatedAt,
			Title:       msg.Title,
			Received:    msg.HasRead(userId),
		})
	}
	sort.SliceStable(rspList, func(i, j int) bool {
		return rspList[i].Created.Before(rspList[j].Created)
	})
	return "获取消息概览成功", rspList, 0
}

// UnreadUserMessages 统计用户未读的单聊消息数
func (m *messageService) UnreadUserMessages(userId int64) (int64, error) {
	return countUnreadUserMessages(dao.GormDB, userId)
}

// UnreadGroupMessages 统计用户未读的群聊消息数
func (m *messageService) UnreadGroupMessages(userId int64) (int64, error) {
	return countUnreadGroupMessages(dao.GormDB, userId)
}

func uniqueIds(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
