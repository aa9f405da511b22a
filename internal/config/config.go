package config

import (
	"fmt"
	"os"
	"strconv"
)

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// GetDSN 获取数据库连接字符串
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// RedisConfig Redis配置
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// SourceAPIConfig 外部排班 API 拉取配置
type SourceAPIConfig struct {
	BaseURL string
	Token   string
	Enabled bool
}

// Config 快照服务配置
type Config struct {
	Database DatabaseConfig
	Redis    RedisConfig
	Source   SourceAPIConfig

	// 快照服务特定配置
	Snapshot struct {
		// Redis Streams 配置
		Streams struct {
			Uploads string // 上传事件流，如 "schedule:uploads:stream"
			Output  string // 快照完成通知流，如 "schedule:snapshots:stream"
		}
		ConsumerGroup string
		ConsumerName  string
		SnapshotTTL   int // 当前快照的 TTL（秒，0 = 永久）
	}

	HTTP struct {
		Addr string
	}

	Log struct {
		Level  string
		Format string
	}
}

// Load 加载配置
func Load() (*Config, error) {
	cfg := &Config{}

	// 从环境变量加载（默认值）
	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = getEnvInt("DB_PORT", 5432)
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "schedview")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = 0

	cfg.Source.BaseURL = getEnv("SOURCE_API_BASE_URL", "")
	cfg.Source.Token = getEnv("SOURCE_API_TOKEN", "")
	cfg.Source.Enabled = cfg.Source.BaseURL != ""

	// 快照服务配置
	cfg.Snapshot.Streams.Uploads = getEnv("STREAM_UPLOADS", "schedule:uploads:stream")
	cfg.Snapshot.Streams.Output = getEnv("STREAM_OUTPUT", "schedule:snapshots:stream")
	cfg.Snapshot.ConsumerGroup = getEnv("CONSUMER_GROUP", "snapshot-service-group")
	cfg.Snapshot.ConsumerName = getEnv("CONSUMER_NAME", "snapshot-service-1")
	cfg.Snapshot.SnapshotTTL = getEnvInt("SNAPSHOT_TTL", 0)

	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
