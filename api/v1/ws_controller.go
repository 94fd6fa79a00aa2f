package v1

import (
	"errors"
	"net/http"

	"messenger/internal/service/chat"
	mygorm "messenger/internal/service/gorm"
	"messenger/pkg/constants"
	"messenger/pkg/zlog"

	"github.com/gin-gonic/gin"
)

// WsLogin 建立通知 websocket 连接 Get
// 用户不存在或已禁用时拒绝连接
func WsLogin(c *gin.Context) {
	userId, ok := queryUserId(c)
	if !ok {
		return
	}
	user, err := mygorm.UserService.GetActiveUser(userId)
	if err != nil {
		if errors.Is(err, mygorm.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    401,
				"message": "Unauthorized user",
			})
			return
		}
		zlog.Error(err.Error())
		JsonBack(c, constants.SYSTEM_ERROR, -1, nil)
		return
	}
	chat.ChatServer.ServeWs(c, user)
}
