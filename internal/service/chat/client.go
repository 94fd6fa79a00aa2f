package chat

import (
	"fmt"
	"net/http"

	"messenger/internal/model"
	"messenger/pkg/constants"
	"messenger/pkg/util/random"
	"messenger/pkg/zlog"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Client 定义WebSocket客户端连接结构
type Client struct {
	Conn     *websocket.Conn // WebSocket连接对象
	Uuid     string          // 连接唯一标识
	UserId   int64           // 连接所属用户
	Group    string          // 用户所属频道组
	SendBack chan []byte     // 服务器回传消息到客户端的通道，只由 Server 关闭
}

// upgrader 用于将HTTP连接升级为WebSocket连接
var upgrader = websocket.Upgrader{
	ReadBufferSize:  2048, // 读取缓冲区大小
	WriteBufferSize: 2048, // 写入缓冲区大小
	// 检查连接的Origin头，此处返回true表示允许所有跨域请求
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Read 从WebSocket连接读取消息并交给服务器处理
// 每个客户端连接会启动一个goroutine执行此方法，连接断开后通知服务器登出
func (c *Client) Read(s *Server) {
	defer s.SendClientToLogout(c)
	for {
		_, frame, err := c.Conn.ReadMessage() // 阻塞状态
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				zlog.Error(err.Error())
			}
			return
		}
		if reply := s.HandleFrame(c, frame); reply != nil {
			s.reply(c, reply)
		}
	}
}

// Write 从SendBack通道读取消息并发送到WebSocket连接
// SendBack 被关闭后关闭连接
func (c *Client) Write() {
	defer c.Conn.Close()
	for frame := range c.SendBack { // 阻塞状态
		if err := c.Conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			// 写入失败后继续消费，直到服务器关闭通道
			zlog.Error(err.Error())
		}
	}
	_ = c.Conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// ServeWs 将HTTP连接升级为WebSocket连接并加入用户的频道组
func (s *Server) ServeWs(c *gin.Context, user *model.ChannelUser) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade 失败时已向客户端写入错误响应
		zlog.Error(err.Error())
		return
	}

	client := &Client{
		Conn:     conn,
		Uuid:     fmt.Sprintf("C%s", random.GetNowAndLenRandomString(11)),
		UserId:   user.Id,
		Group:    user.ChannelName(),
		SendBack: make(chan []byte, constants.CHANNEL_SIZE),
	}
	s.SendClientToLogin(client)

	go client.Read(s)
	go client.Write()

	zlog.Info("ws连接成功", zap.Int64("user_id", user.Id), zap.String("channel", client.Uuid))
}
