// Package v1 包含API的第一版控制器函数
package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// JsonBack 统一的JSON响应处理函数
// 参数说明:
// - c: Gin框架的上下文对象
// - message: 响应消息文本
// - ret: 服务层返回的状态码，0表示成功，-1表示服务器错误，-2表示客户端错误
// - data: 响应数据，可为nil
func JsonBack(c *gin.Context, message string, ret int, data interface{}) {
	switch ret {
	case 0:
		body := gin.H{
			"code":    200,
			"message": message,
		}
		if data != nil {
			body["data"] = data
		}
		c.JSON(http.StatusOK, body)
	case -2:
		c.JSON(http.StatusOK, gin.H{
			"code":    400,
			"message": message,
		})
	default:
		c.JSON(http.StatusOK, gin.H{
			"code":    500,
			"message": message,
		})
	}
}

// parseId 解析路径或查询参数中的整数ID，失败时直接返回400
func parseId(c *gin.Context, raw, name string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		JsonBack(c, name+"参数错误", -2, nil)
		return 0, false
	}
	return id, true
}

func queryUserId(c *gin.Context) (int64, bool) {
	return parseId(c, c.Query("user_id"), "user_id")
}
