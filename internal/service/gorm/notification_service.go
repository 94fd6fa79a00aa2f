package gorm

import (
	"errors"

	"messenger/internal/dao"
	"messenger/internal/dto/message"
	"messenger/internal/model"
	"messenger/pkg/constants"
	"messenger/pkg/zlog"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Notifier 将消息推送给指定用户的所有 websocket 连接
type Notifier interface {
	SendNotification(userId int64, dto message.DTO)
}

type notificationService struct {
	notifier Notifier
}

var NotificationService = new(notificationService)

// SetNotifier 设置未读数变化时的推送器，为 nil 时只更新数据库
func (n *notificationService) SetNotifier(notifier Notifier) {
	n.notifier = notifier
}

// Get 获取用户当前的未读通知
func (n *notificationService) Get(userId int64) (string, *message.NotificationDTO, int) {
	note, err := getNotification(dao.GormDB, userId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "用户不存在", nil, -2
		}
		zlog.Error(err.Error())
		return constants.SYSTEM_ERROR, nil, -1
	}
	return "获取通知成功", &message.NotificationDTO{UnreadMessages: note.UnreadMessages}, 0
}

// Trigger 未读数加一
func (n *notificationService) Trigger(userId int64) (string, int) {
	return n.update(userId, "未读数增加成功", func(tx *gorm.DB) error {
		return incrementUnread(tx, []int64{userId})
	})
}

// ReadOne 未读数减一，不会小于零
func (n *notificationService) ReadOne(userId int64) (string, int) {
	return n.update(userId, "未读数减少成功", func(tx *gorm.DB) error {
		return decrementUnread(tx, []int64{userId})
	})
}

// Clear 未读数清零
func (n *notificationService) Clear(userId int64) (string, int) {
	return n.update(userId, "清空通知成功", func(tx *gorm.DB) error {
		return tx.Model(&model.Notification{}).Where("user_id = ?", userId).UpdateColumn("unread_messages", 0).Error
	})
}

// Reset 重新统计用户未读的单聊消息与群聊消息，覆盖当前计数
func (n *notificationService) Reset(userId int64) (string, int) {
	return n.update(userId, "重置通知成功", func(tx *gorm.DB) error {
		userUnread, err := countUnreadUserMessages(tx, userId)
		if err != nil {
			return err
		}
		groupUnread, err := countUnreadGroupMessages(tx, userId)
		if err != nil {
			return err
		}
		return tx.Model(&model.Notification{}).Where("user_id = ?", userId).
			UpdateColumn("unread_messages", userUnread+groupUnread).Error
	})
}

// update 在事务中执行修改，提交后推送最新未读数
func (n *notificationService) update(userId int64, okMessage string, fn func(tx *gorm.DB) error) (string, int) {
	err := dao.GormDB.Transaction(func(tx *gorm.DB) error {
		if _, err := getNotification(tx, userId); err != nil {
			return err
		}
		return fn(tx)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "用户不存在", -2
		}
		zlog.Error(err.Error())
		return constants.SYSTEM_ERROR, -1
	}
	n.push(userId)
	return okMessage, 0
}

// push 将用户最新的未读数推送出去
func (n *notificationService) push(userIds ...int64) {
	if n.notifier == nil || len(userIds) == 0 {
		return
	}
	var notes []model.Notification
	if res := dao.GormDB.Where("user_id IN ?", userIds).Find(&notes); res.Error != nil {
		zlog.Error(res.Error.Error())
		return
	}
	for _, note := range notes {
		zlog.Debug("推送未读数", zap.Int64("user_id", note.UserId), zap.Uint("unread", note.UnreadMessages))
		n.notifier.SendNotification(note.UserId, message.NotificationDTO{UnreadMessages: note.UnreadMessages})
	}
}

func getNotification(db *gorm.DB, userId int64) (*model.Notification, error) {
	var note model.Notification
	if err := db.Where("user_id = ?", userId).First(&note).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

func incrementUnread(tx *gorm.DB, userIds []int64) error {
	return tx.Model(&model.Notification{}).Where("user_id IN ?", userIds).
		UpdateColumn("unread_messages", gorm.Expr("unread_messages + ?", 1)).Error
}

func decrementUnread(tx *gorm.DB, userIds []int64) error {
	return tx.Model(&model.Notification{}).Where("user_id IN ? AND unread_messages > ?", userIds, 0).
		UpdateColumn("unread_messages", gorm.Expr("unread_messages - ?", 1)).Error
}

func countUnreadUserMessages(db *gorm.DB, userId int64) (int64, error) {
	var count int64
	err := db.Model(&model.UserTextMessage{}).Where("user_id = ? AND received = ?", userId, false).Count(&count).Error
	return count, err
}

func countUnreadGroupMessages(db *gorm.DB, userId int64) (int64, error) {
	var count int64
	received := db.Table("group_text_message_received").Select("group_text_message_id").Where("channel_user_id = ?", userId)
	err := db.Table("group_text_message_target").
		Where("channel_user_id = ? AND group_text_message_id NOT IN (?)", userId, received).
		Count(&count).Error
	return count, err
}
