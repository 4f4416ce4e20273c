package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App   AppConfig   `mapstructure:"app"`
	Node  NodeConfig  `mapstructure:"node"`
	Peers PeersConfig `mapstructure:"peers"`
	DB    DBConfig    `mapstructure:"db"`
	Redis RedisConfig `mapstructure:"redis"`
	Kafka KafkaConfig `mapstructure:"kafka"`
	Event EventConfig `mapstructure:"event"`
}

type AppConfig struct {
	Env      string `mapstructure:"env"`
	HttpPort string `mapstructure:"http_port"`
}

// NodeConfig 默认节点配置 (没有 Profile / Peer 时的兜底连接目标)
type NodeConfig struct {
	Host         string        `mapstructure:"host"`
	ApiVersion   int           `mapstructure:"api_version"`
	ProbeTimeout time.Duration `mapstructure:"probe_timeout"`
}

// PeersConfig 种子节点配置, key 为网络 ID
type PeersConfig struct {
	Seeds           map[string][]string `mapstructure:"seeds"`
	RefreshInterval time.Duration       `mapstructure:"refresh_interval"`
}

type DBConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
}

// EventConfig 事件外发配置
// mq_type: "redis" 或 "kafka"; relay 关闭时事件只在进程内广播
type EventConfig struct {
	Relay  bool   `mapstructure:"relay"`
	MQType string `mapstructure:"mq_type"`
	Topic  string `mapstructure:"topic"`
}

var Global Config

func Init() {
	viper.SetConfigName("config") // name of config file (without extension)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// 环境变量设置
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 设置默认值
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Printf("Warning: Config file not found, using defaults and environment variables")
		} else {
			log.Fatalf("Fatal error config file: %s \n", err)
		}
	}

	if err := viper.Unmarshal(&Global); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	log.Printf("Configuration loaded successfully. Env: %s", Global.App.Env)
}

func setDefaults() {
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.http_port", "8080")

	viper.SetDefault("node.host", "http://127.0.0.1:4003")
	viper.SetDefault("node.api_version", 2)
	viper.SetDefault("node.probe_timeout", "3s")

	viper.SetDefault("peers.refresh_interval", "5m")

	viper.SetDefault("db.enabled", false)
	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.user", "wallet_user")
	viper.SetDefault("db.password", "wallet_password")
	viper.SetDefault("db.name", "wallet_db")

	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.db", 0)

	viper.SetDefault("kafka.brokers", []string{"localhost:9092"})

	viper.SetDefault("event.relay", false)
	viper.SetDefault("event.mq_type", "redis")
	viper.SetDefault("event.topic", "wallet:events:client")
}
