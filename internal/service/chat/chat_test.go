package chat

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"messenger/internal/config"
	"messenger/internal/dao"
	"messenger/internal/dto/message"
	"messenger/internal/model"
	mygorm "messenger/internal/service/gorm"
	myredis "messenger/internal/service/redis"
	"messenger/pkg/constants"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGroupRegistry(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	r := NewMemoryGroupRegistry()

	ok, _ := r.Exists(ctx, "message_1")
	assert.False(ok)

	r.Remember(ctx, "message_1", "C1")
	r.Remember(ctx, "message_1", "C2")
	r.Forget(ctx, "message_1", "C1")
	ok, _ = r.Exists(ctx, "message_1")
	assert.True(ok)

	r.Forget(ctx, "message_1", "C2")
	r.Forget(ctx, "message_1", "C2")
	ok, _ = r.Exists(ctx, "message_1")
	assert.False(ok)
}

func setupUser(t *testing.T) *model.ChannelUser {
	require.NoError(t, dao.Init(config.DatabaseConfig{Driver: "sqlite", Dsn: ":memory:"}))
	_, user, ret := mygorm.UserService.CreateUser("frank")
	require.Equal(t, 0, ret)
	return user
}

func TestHandleFrame(t *testing.T) {
	assert := assert.New(t)
	user := setupUser(t)
	mygorm.NotificationService.Trigger(user.Id)

	s := NewServer(NewMemoryGroupRegistry())
	client := &Client{Uuid: "C1", UserId: user.Id, Group: user.ChannelName()}

	assert.Equal(message.NotificationDTO{UnreadMessages: 1}, s.HandleFrame(client, []byte(`{"messageType":2}`)))
	assert.Nil(s.HandleFrame(client, []byte(`{"messageType":0}`)))
	assert.Nil(s.HandleFrame(client, []byte(`{"messageType":1,"errorCode":3,"errorMessage":"x"}`)))

	assert.Equal(message.UnknownDTO{}, s.HandleFrame(client, []byte(`{"messageType":99}`)))
	assert.Equal(message.UnknownDTO{}, s.HandleFrame(client, []byte(`{"nothing":1}`)))
	assert.Equal(message.UnknownDTO{}, s.HandleFrame(client, []byte(`garbage`)))

	for _, frame := range []string{`{"messageType":3}`, `{"messageType":4}`, `{"messageType":5}`} {
		reply, ok := s.HandleFrame(client, []byte(frame)).(message.ErrorDTO)
		if assert.True(ok, frame) {
			assert.Equal(constants.NOT_IMPLEMENTED, reply.ErrorCode)
			assert.True(strings.HasSuffix(reply.ErrorMessage, "currently not supported"))
		}
	}

	other := &Client{Uuid: "C2", UserId: 4242}
	_, ok := s.HandleFrame(other, []byte(`{"messageType":2}`)).(message.ErrorDTO)
	assert.True(ok)
}

func readDTO(t *testing.T, conn *websocket.Conn) message.DTO {
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, frame, err := conn.ReadMessage()
	require.NoError(t, err)
	dto, err := message.Decode(frame)
	require.NoError(t, err)
	return dto
}

func TestWebsocket(t *testing.T) {
	assert, require := assert.New(t), require.New(t)
	user := setupUser(t)

	registry := NewMemoryGroupRegistry()
	s := NewServer(registry)
	go s.Start()
	defer s.Close()

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/ws/notify", func(c *gin.Context) {
		s.ServeWs(c, user)
	})
	srv := httptest.NewServer(engine)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws/notify", nil)
	require.NoError(err)

	require.NoError(conn.WriteMessage(websocket.TextMessage, []byte(`{"messageType":2}`)))
	assert.Equal(message.NotificationDTO{UnreadMessages: 0}, readDTO(t, conn))

	require.NoError(conn.WriteMessage(websocket.TextMessage, []byte(`{"messageType":77}`)))
	assert.Equal(message.UnknownDTO{}, readDTO(t, conn))

	ok, _ := registry.Exists(context.Background(), user.ChannelName())
	assert.True(ok)

	// 服务端推送
	s.SendNotification(user.Id, message.NotificationDTO{UnreadMessages: 5})
	assert.Equal(message.NotificationDTO{UnreadMessages: 5}, readDTO(t, conn))

	// 其他用户的通知不会送达
	s.SendNotification(user.Id+1, message.NotificationDTO{UnreadMessages: 9})
	s.SendNotification(user.Id, message.NotificationDTO{UnreadMessages: 6})
	assert.Equal(message.NotificationDTO{UnreadMessages: 6}, readDTO(t, conn))

	conn.Close()
	assert.Eventually(func() bool {
		ok, _ := registry.Exists(context.Background(), user.ChannelName())
		return !ok
	}, 5*time.Second, 10*time.Millisecond)
}

func newTestClient(uuid string, userId int64) *Client {
	return &Client{
		Uuid:     uuid,
		UserId:   userId,
		Group:    model.ChannelNameOf(userId),
		SendBack: make(chan []byte, constants.CHANNEL_SIZE),
	}
}

// 两个实例共享 Redis 中的频道组记录，一个实例关闭后另一个实例的连接仍可收到推送
func TestCloseWithRedisRegistry(t *testing.T) {
	assert, require := assert.New(t), require.New(t)
	mr := miniredis.RunT(t)
	myredis.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(myredis.Close)

	first := NewServer(myredis.GroupRegistry)
	second := NewServer(myredis.GroupRegistry)
	go first.Start()
	go second.Start()
	defer second.Close()

	a := newTestClient("C_first", 1)
	b := newTestClient("C_second", 2)
	shared := newTestClient("C_second_shared", 1)
	first.SendClientToLogin(a)
	second.SendClientToLogin(b)
	second.SendClientToLogin(shared)

	assert.Eventually(func() bool {
		return mr.Exists("group_message_1_members") && mr.Exists("group_message_2_members")
	}, 5*time.Second, 10*time.Millisecond)

	first.Close()
	_, open := <-a.SendBack
	assert.False(open)

	// Close 返回时本实例的连接已从 Redis 中移除，此后关闭 Redis 客户端是安全的
	members, err := mr.SMembers("group_message_1_members")
	require.NoError(err)
	assert.Equal([]string{"C_second_shared"}, members)
	assert.True(mr.Exists("group_message_2_members"))

	second.SendNotification(2, message.NotificationDTO{UnreadMessages: 4})
	select {
	case frame := <-b.SendBack:
		dto, err := message.Decode(frame)
		require.NoError(err)
		assert.Equal(message.NotificationDTO{UnreadMessages: 4}, dto)
	case <-time.After(5 * time.Second):
		t.Fatal("notification not delivered")
	}

	second.Close()
	assert.False(mr.Exists("group_message_1_members"))
	assert.False(mr.Exists("group_message_2_members"))
	myredis.Close()
}
