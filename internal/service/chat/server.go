// Package chat 实现WebSocket通知服务器的核心功能
// 包含客户端连接管理、频道组维护、消息分发等功能
package chat

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"messenger/internal/dto/message"
	"messenger/internal/model"
	"messenger/pkg/constants"
	"messenger/pkg/zlog"

	"go.uber.org/zap"
)

// Delivery 一次待分发的消息
// Channel 非空时只发给该连接，否则发给 Group 内的全部连接
type Delivery struct {
	Group   string          `json:"group"`
	Channel string          `json:"channel,omitempty"`
	Frame   json.RawMessage `json:"frame"`
}

// Server 定义通知服务器结构体
// Clients 和 groups 只在 Start 所在的 goroutine 中读写
type Server struct {
	Clients  map[string]*Client            // 存储所有已连接的客户端，以连接ID为键
	groups   map[string]map[string]*Client // 频道组到本实例连接的映射
	registry GroupRegistry                 // 频道组记录，可能由多个实例共享
	publish  func(*Delivery) error         // 分发出口，默认投递到本实例的 Transmit
	Transmit chan *Delivery                // 消息转发通道
	Login    chan *Client                  // 登录通道，接收新连接的客户端
	Logout   chan *Client                  // 退出通道，接收要断开的客户端
	done     chan struct{}
	stopped  chan struct{} // Start 返回后关闭
	once     sync.Once
}

var ChatServer = NewServer(NewMemoryGroupRegistry())

// NewServer 创建通知服务器，需调用 Start 后才会处理事件
func NewServer(registry GroupRegistry) *Server {
	s := &Server{
		Clients:  make(map[string]*Client),
		groups:   make(map[string]map[string]*Client),
		registry: registry,
		Transmit: make(chan *Delivery, constants.CHANNEL_SIZE),
		Login:    make(chan *Client, constants.CHANNEL_SIZE),
		Logout:   make(chan *Client, constants.CHANNEL_SIZE),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	s.publish = s.SendDeliveryToTransmit
	return s
}

// SetRegistry 替换频道组记录，必须在 Start 之前调用
func (s *Server) SetRegistry(registry GroupRegistry) {
	s.registry = registry
}

// SetPublisher 替换分发出口，kafka 模式下由 KafkaChatServer 转发
func (s *Server) SetPublisher(publish func(*Delivery) error) {
	s.publish = publish
}

func registryContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), constants.REDIS_TIMEOUT*time.Second)
}

// Start 启动服务器主循环
// 1. 监听Login通道：加入频道组并记录到 registry
// 2. 监听Logout通道：移出频道组并关闭客户端的发送通道
// 3. 监听Transmit通道：按频道组或连接分发消息
// 关闭时只从 registry 中移除本实例的连接，其他实例的记录保持不变
func (s *Server) Start() {
	defer close(s.stopped)
	for {
		select {
		case <-s.done:
			for _, client := range s.Clients {
				s.removeClient(client)
			}
			s.dropLogin()
			return

		case client := <-s.Login:
			s.addClient(client)

		case client := <-s.Logout:
			s.drainLogin()
			if _, ok := s.Clients[client.Uuid]; ok {
				s.removeClient(client)
				zlog.Info("客户端离开频道组", zap.String("group", client.Group), zap.String("channel", client.Uuid))
			}

		case delivery := <-s.Transmit:
			s.drainLogin()
			s.deliver(delivery)
		}
	}
}

func (s *Server) addClient(client *Client) {
	s.Clients[client.Uuid] = client
	members, ok := s.groups[client.Group]
	if !ok {
		members = make(map[string]*Client)
		s.groups[client.Group] = members
	}
	members[client.Uuid] = client

	ctx, cancel := registryContext()
	if err := s.registry.Remember(ctx, client.Group, client.Uuid); err != nil {
		zlog.Error(err.Error())
	}
	cancel()
	zlog.Info("客户端加入频道组", zap.String("group", client.Group), zap.String("channel", client.Uuid))
}

// drainLogin 处理已排队的登录
// 客户端在启动读协程前已进入登录队列，登出和回复之前先处理登录，保证顺序
func (s *Server) drainLogin() {
	for {
		select {
		case client := <-s.Login:
			s.addClient(client)
		default:
			return
		}
	}
}

// dropLogin 关闭时丢弃尚未加入的连接，它们从未写入 registry
func (s *Server) dropLogin() {
	for {
		select {
		case client := <-s.Login:
			close(client.SendBack)
		default:
			return
		}
	}
}

func (s *Server) removeClient(client *Client) {
	delete(s.Clients, client.Uuid)
	if members, ok := s.groups[client.Group]; ok {
		delete(members, client.Uuid)
		if len(members) == 0 {
			delete(s.groups, client.Group)
		}
	}

	ctx, cancel := registryContext()
	if err := s.registry.Forget(ctx, client.Group, client.Uuid); err != nil {
		zlog.Error(err.Error())
	}
	cancel()
	close(client.SendBack)
}

func (s *Server) deliver(delivery *Delivery) {
	if delivery.Channel != "" {
		if client, ok := s.Clients[delivery.Channel]; ok {
			s.sendBack(client, delivery.Frame)
		}
		return
	}

	// 只有频道组仍存在时才推送
	ctx, cancel := registryContext()
	exists, err := s.registry.Exists(ctx, delivery.Group)
	cancel()
	if err != nil {
		zlog.Error(err.Error())
		return
	}
	if !exists {
		return
	}
	for _, client := range s.groups[delivery.Group] {
		s.sendBack(client, delivery.Frame)
	}
}

// sendBack 客户端发送通道已满时丢弃该消息，避免阻塞主循环
func (s *Server) sendBack(client *Client, frame []byte) {
	select {
	case client.SendBack <- frame:
	default:
		zlog.Warn("客户端发送通道已满，丢弃消息", zap.String("channel", client.Uuid))
	}
}

// Close 停止主循环，等待全部客户端断开并从 registry 中移除后返回
// 必须在 Start 启动之后调用，返回后才可以关闭 registry 依赖的连接
func (s *Server) Close() {
	s.once.Do(func() {
		close(s.done)
	})
	<-s.stopped
}

// SendClientToLogin 将客户端添加到登录队列
func (s *Server) SendClientToLogin(client *Client) {
	select {
	case s.Login <- client:
	case <-s.done:
	}
}

// SendClientToLogout 将客户端添加到登出队列
func (s *Server) SendClientToLogout(client *Client) {
	select {
	case s.Logout <- client:
	case <-s.done:
	}
}

// SendDeliveryToTransmit 将消息添加到本实例的传输队列
func (s *Server) SendDeliveryToTransmit(delivery *Delivery) error {
	select {
	case s.Transmit <- delivery:
	case <-s.done:
	}
	return nil
}

// SendNotification 将消息推送给用户所在频道组的全部连接
func (s *Server) SendNotification(userId int64, dto message.DTO) {
	frame, err := message.Encode(dto)
	if err != nil {
		zlog.Error(err.Error())
		return
	}
	if err := s.publish(&Delivery{Group: model.ChannelNameOf(userId), Frame: frame}); err != nil {
		zlog.Error(err.Error())
	}
}

// reply 回复单个连接，始终只投递到本实例
func (s *Server) reply(client *Client, dto message.DTO) {
	frame, err := message.Encode(dto)
	if err != nil {
		zlog.Error(err.Error())
		return
	}
	s.SendDeliveryToTransmit(&Delivery{Group: client.Group, Channel: client.Uuid, Frame: frame})
}
