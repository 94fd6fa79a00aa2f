// kafka 包提供了与 Apache Kafka 消息队列系统的集成服务
// 多实例部署时，未读通知经由 Kafka 广播到每个实例，再由实例推送给本地连接
package kafka

import (
	"fmt"
	"os"
	"time"

	"messenger/internal/config"
	"messenger/pkg/util/random"
	"messenger/pkg/zlog"

	"github.com/segmentio/kafka-go"
)

// kafkaService 结构体定义了 Kafka 服务的相关组件
type kafkaService struct {
	NotifyWriter *kafka.Writer // 通知写入器，用于发送通知到 Kafka
	NotifyReader *kafka.Reader // 通知读取器，用于从 Kafka 接收通知
}

// KafkaService 全局唯一的 Kafka 服务实例
var KafkaService = new(kafkaService)

// groupId 每个进程使用独立的消费组，保证每条通知被所有实例收到
// 组名带启动时生成的随机后缀，重启后是新的消费组，从最新位置开始读取，不会重放停机期间的旧通知
func groupId(conf config.Config) string {
	host, err := os.Hostname()
	if err != nil {
		host = "local"
	}
	return fmt.Sprintf("%s_%s_%d_%s", conf.AppName, host, conf.MainConfig.Port, random.GetNowAndLenRandomString(8))
}

// KafkaInit 初始化 Kafka 服务
// 根据配置创建通知的读写器
func (k *kafkaService) KafkaInit(conf config.Config) {
	kafkaConfig := conf.KafkaConfig
	timeout := time.Duration(kafkaConfig.Timeout) * time.Second

	k.NotifyWriter = &kafka.Writer{
		Addr:                   kafka.TCP(kafkaConfig.HostPort),
		Topic:                  kafkaConfig.NotifyTopic,
		Balancer:               &kafka.Hash{},
		WriteTimeout:           timeout,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: false,
	}

	k.NotifyReader = kafka.NewReader(kafka.ReaderConfig{
		Brokers:        []string{kafkaConfig.HostPort},
		Topic:          kafkaConfig.NotifyTopic,
		CommitInterval: timeout,
		GroupID:        groupId(conf),
		StartOffset:    kafka.LastOffset,
	})
}

// KafkaClose 关闭 Kafka 服务
func (k *kafkaService) KafkaClose() {
	if k.NotifyWriter != nil {
		if err := k.NotifyWriter.Close(); err != nil {
			zlog.Error(err.Error())
		}
	}
	if k.NotifyReader != nil {
		if err := k.NotifyReader.Close(); err != nil {
			zlog.Error(err.Error())
		}
	}
}

// CreateTopic 创建通知主题，已存在时 Kafka 返回错误并被记录
func (k *kafkaService) CreateTopic(kafkaConfig config.KafkaConfig) {
	conn, err := kafka.Dial("tcp", kafkaConfig.HostPort)
	if err != nil {
		zlog.Error("Failed to connect to Kafka: " + err.Error())
		return
	}
	defer conn.Close()

	topicConfigs := []kafka.TopicConfig{
		{
			Topic:             kafkaConfig.NotifyTopic,
			NumPartitions:     kafkaConfig.Partition + 1,
			ReplicationFactor: 1,
		},
	}
	if err = conn.CreateTopics(topicConfigs...); err != nil {
		zlog.Error("Failed to create topics: " + err.Error())
	}
}
