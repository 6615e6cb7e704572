package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server ServerConfig `yaml:"server"`

	// Database Configuration (MySQL)
	Database DatabaseConfig `yaml:"database"`

	// MongoDB Configuration (notifications feed)
	Mongo MongoConfig `yaml:"mongo"`

	// Redis Configuration (presence)
	Redis RedisConfig `yaml:"redis"`

	// Notification Configuration
	Notification NotificationConfig `yaml:"notification"`

	// Logging Configuration
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	Port         string `yaml:"port"`
	Host         string `yaml:"host"`
	ReadTimeout  int    `yaml:"read_timeout"`  // seconds
	WriteTimeout int    `yaml:"write_timeout"` // seconds
	Environment  string `yaml:"environment"`   // development, staging, production
}

// DatabaseConfig contains MySQL connection configuration
type DatabaseConfig struct {
	Host         string `yaml:"host"`
	Port         string `yaml:"port"`
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
	DatabaseName string `yaml:"database_name"`
	MaxOpenConns int    `yaml:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
}

// MongoConfig contains MongoDB connection configuration
type MongoConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// NotificationConfig contains notification fan-out configuration
type NotificationConfig struct {
	Workers           int `yaml:"workers"`             // Number of worker goroutines
	ChannelBufferSize int `yaml:"channel_buffer_size"` // Event channel buffer size
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level      string `yaml:"level"`       // debug, info, warn, error
	Filename   string `yaml:"filename"`    // empty means stdout only
	MaxSize    int    `yaml:"max_size"`    // MB per rotated file
	MaxBackups int    `yaml:"max_backups"` // rotated files kept
	MaxAge     int    `yaml:"max_age"`     // days
	Compress   bool   `yaml:"compress"`
}

// Load reads the yaml config file when present, then applies environment
// variable overrides on top. A missing or malformed file is not fatal;
// defaults apply.
func Load(path string) *Config {
	cfg := defaults()

	if data, err := os.ReadFile(path); err == nil {
		_ = yaml.Unmarshal(data, cfg)
	}

	overrideWithEnv(cfg)
	return cfg
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         "8080",
			Host:         "0.0.0.0",
			ReadTimeout:  15,
			WriteTimeout: 15,
			Environment:  "development",
		},
		Database: DatabaseConfig{
			Host:         "localhost",
			Port:         "3306",
			Username:     "linkup",
			DatabaseName: "linkup_db",
			MaxOpenConns: 25,
			MaxIdleConns: 5,
		},
		Mongo: MongoConfig{
			Host:     "localhost",
			Port:     "27017",
			Database: "linkup_feed",
		},
		Redis: RedisConfig{
			Host: "localhost",
			Port: "6379",
		},
		Notification: NotificationConfig{
			Workers:           5,
			ChannelBufferSize: 1000,
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSize:    100,
			MaxBackups: 3,
			MaxAge:     28,
		},
	}
}

func overrideWithEnv(cfg *Config) {
	setString(&cfg.Server.Port, "SERVER_PORT")
	setString(&cfg.Server.Host, "SERVER_HOST")
	setString(&cfg.Server.Environment, "ENVIRONMENT")

	setString(&cfg.Database.Host, "DB_HOST")
	setString(&cfg.Database.Port, "DB_PORT")
	setString(&cfg.Database.Username, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.DatabaseName, "DB_NAME")

	setString(&cfg.Mongo.Host, "MONGO_HOST")
	setString(&cfg.Mongo.Port, "MONGO_PORT")
	setString(&cfg.Mongo.Username, "MONGO_USER")
	setString(&cfg.Mongo.Password, "MONGO_PASSWORD")
	setString(&cfg.Mongo.Database, "MONGO_DB")

	setString(&cfg.Redis.Host, "REDIS_HOST")
	setString(&cfg.Redis.Port, "REDIS_PORT")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "REDIS_DB")

	setInt(&cfg.Notification.Workers, "NOTIF_WORKERS")

	setString(&cfg.Logging.Level, "LOG_LEVEL")
	setString(&cfg.Logging.Filename, "LOG_FILE")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

// DSN builds the MySQL connection string
func (cfg *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DatabaseName,
	)
}

// MongoURI builds the MongoDB connection string
func (cfg *Config) MongoURI() string {
	if cfg.Mongo.Username != "" {
		return fmt.Sprintf("mongodb://%s:%s@%s:%s",
			cfg.Mongo.Username, cfg.Mongo.Password, cfg.Mongo.Host, cfg.Mongo.Port)
	}
	return fmt.Sprintf("mongodb://%s:%s", cfg.Mongo.Host, cfg.Mongo.Port)
}

// RedisAddr builds the host:port address for the Redis client
func (cfg *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port)
}
