package chat

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"messenger/pkg/zlog"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// NotifyWriter 通知写入端，*kafka.Writer 满足该接口
type NotifyWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// NotifyReader 通知读取端，*kafka.Reader 满足该接口
type NotifyReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// KafkaServer 把频道组通知写入 Kafka，并把读到的通知交给本实例的 Server 分发
type KafkaServer struct {
	local  *Server
	writer NotifyWriter
	reader NotifyReader
	ctx    context.Context
	cancel context.CancelFunc
}

var KafkaChatServer = NewKafkaServer(ChatServer)

func NewKafkaServer(local *Server) *KafkaServer {
	ctx, cancel := context.WithCancel(context.Background())
	return &KafkaServer{local: local, ctx: ctx, cancel: cancel}
}

// SetTransport 设置读写端，必须在 Start 和 Publish 之前调用
func (k *KafkaServer) SetTransport(writer NotifyWriter, reader NotifyReader) {
	k.writer = writer
	k.reader = reader
}

// Publish 以频道组名称为 key 写入 Kafka，同一用户的通知保持顺序
func (k *KafkaServer) Publish(delivery *Delivery) error {
	value, err := json.Marshal(delivery)
	if err != nil {
		return err
	}
	return k.writer.WriteMessages(k.ctx, kafka.Message{
		Key:   []byte(delivery.Group),
		Value: value,
	})
}

// Start 持续读取 Kafka 中的通知，直到 Close 被调用
func (k *KafkaServer) Start() {
	for {
		msg, err := k.reader.ReadMessage(k.ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return
			}
			zlog.Error(err.Error())
			continue
		}

		var delivery Delivery
		if err := json.Unmarshal(msg.Value, &delivery); err != nil {
			zlog.Error("无法解析的通知", zap.Error(err), zap.Int64("offset", msg.Offset))
			continue
		}
		k.local.SendDeliveryToTransmit(&delivery)
	}
}

// Close 停止读取
func (k *KafkaServer) Close() {
	k.cancel()
}
