package gorm

import (
	"errors"
	"strings"

	"messenger/internal/dao"
	"messenger/internal/model"
	"messenger/pkg/constants"
	"messenger/pkg/zlog"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type userService struct {
}

var UserService = new(userService)

// ErrUnauthorized 用户不存在或已被禁用
var ErrUnauthorized = errors.New("unauthorized user")

// CreateUser 创建用户，同时创建与之一对一的未读通知记录
// 返回值:
//   - string: 操作结果消息
//   - *model.ChannelUser: 新建的用户
//   - int: 状态码，0表示成功，-1表示系统错误，-2表示参数错误
func (u *userService) CreateUser(username string) (string, *model.ChannelUser, int) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "用户名不能为空", nil, -2
	}

	user := model.ChannelUser{Username: username, IsActive: true}
	err := dao.GormDB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.ChannelUser{}).Where("username = ?", username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errDuplicateUser
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(&model.Notification{UserId: user.Id}).Error
	})
	if err != nil {
		if errors.Is(err, errDuplicateUser) {
			return "用户名已存在", nil, -2
		}
		zlog.Error(err.Error())
		return constants.SYSTEM_ERROR, nil, -1
	}

	zlog.Info("创建用户成功", zap.Int64("user_id", user.Id), zap.String("username", username))
	return "创建用户成功", &user, 0
}

var errDuplicateUser = errors.New("duplicate username")

// DisableUser 禁用用户，禁用后无法建立 websocket 连接
// 已禁用的用户再次禁用视为成功
func (u *userService) DisableUser(userId int64) (string, int) {
	var user model.ChannelUser
	if err := dao.GormDB.Select("id", "is_active").First(&user, userId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "用户不存在", -2
		}
		zlog.Error(err.Error())
		return constants.SYSTEM_ERROR, -1
	}
	if !user.IsActive {
		return "禁用用户成功", 0
	}
	if err := dao.GormDB.Model(&user).Update("is_active", false).Error; err != nil {
		zlog.Error(err.Error())
		return constants.SYSTEM_ERROR, -1
	}
	zlog.Info("禁用用户", zap.Int64("user_id", userId))
	return "禁用用户成功", 0
}

// GetActiveUser 获取已启用的用户，不存在或已禁用时返回 ErrUnauthorized
func (u *userService) GetActiveUser(userId int64) (*model.ChannelUser, error) {
	var user model.ChannelUser
	if err := dao.GormDB.Where("id = ? AND is_active = ?", userId, true).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	return &user, nil
}
