// Package config 负责加载服务配置，配置文件格式为 TOML
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// DefaultPath 未设置 MESSENGER_CONFIG 环境变量时读取的配置文件
const DefaultPath = "configs/config.toml"

type MainConfig struct {
	AppName  string `toml:"appName"`
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Tls      bool   `toml:"tls"`
	CertFile string `toml:"certFile"`
	KeyFile  string `toml:"keyFile"`
}

type DatabaseConfig struct {
	Driver string `toml:"driver"` // mysql / postgres / sqlite
	Dsn    string `toml:"dsn"`
}

type RedisConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Password string `toml:"password"`
	Db       int    `toml:"db"`
}

type KafkaConfig struct {
	MessageMode string `toml:"messageMode"` // channel / kafka
	HostPort    string `toml:"hostPort"`
	NotifyTopic string `toml:"notifyTopic"`
	Partition   int    `toml:"partition"`
	Timeout     int    `toml:"timeout"` // 秒
}

type GroupRegistryConfig struct {
	Mode string `toml:"mode"` // memory / redis
}

type LogConfig struct {
	LogPath  string `toml:"logPath"` // 为空时只输出到控制台
	LogLevel string `toml:"logLevel"`
}

type Config struct {
	MainConfig          `toml:"mainConfig"`
	DatabaseConfig      `toml:"databaseConfig"`
	RedisConfig         `toml:"redisConfig"`
	KafkaConfig         `toml:"kafkaConfig"`
	GroupRegistryConfig `toml:"groupRegistry"`
	LogConfig           `toml:"logConfig"`
}

var (
	config   *Config
	loadOnce sync.Once
)

// Default 返回默认配置，适用于本地开发
func Default() *Config {
	return &Config{
		MainConfig: MainConfig{
			AppName: "messenger",
			Host:    "127.0.0.1",
			Port:    8000,
		},
		DatabaseConfig: DatabaseConfig{
			Driver: "sqlite",
			Dsn:    "messenger.db",
		},
		RedisConfig: RedisConfig{
			Host: "127.0.0.1",
			Port: 6379,
		},
		KafkaConfig: KafkaConfig{
			MessageMode: "channel",
			HostPort:    "127.0.0.1:9092",
			NotifyTopic: "messenger_notify",
			Partition:   0,
			Timeout:     1,
		},
		GroupRegistryConfig: GroupRegistryConfig{
			Mode: "memory",
		},
		LogConfig: LogConfig{
			LogLevel: "info",
		},
	}
}

// Decode 在默认配置的基础上解析 TOML，未出现的字段保持默认值
func Decode(r io.Reader) (*Config, error) {
	conf := Default()
	if err := toml.NewDecoder(r).Decode(conf); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

// Load 读取配置文件，文件不存在时使用默认配置
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

func (c *Config) Validate() error {
	switch c.MessageMode {
	case "channel", "kafka":
	default:
		return fmt.Errorf("invalid messageMode %q", c.MessageMode)
	}
	switch c.GroupRegistryConfig.Mode {
	case "memory", "redis":
	default:
		return fmt.Errorf("invalid groupRegistry mode %q", c.GroupRegistryConfig.Mode)
	}
	switch c.Driver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("invalid database driver %q", c.Driver)
	}
	return nil
}

// GetConfig 返回全局配置，首次调用时加载
// 配置文件加载失败直接 panic，此时日志尚未初始化
func GetConfig() *Config {
	loadOnce.Do(func() {
		path := os.Getenv("MESSENGER_CONFIG")
		if path == "" {
			path = DefaultPath
		}
		conf, err := Load(path)
		if err != nil {
			panic(err)
		}
		config = conf
	})
	return config
}
