package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ServiceName string
	Env         string
	LogLevel    string

	HTTPPort int
	GRPCPort int

	// Empty RedisAddr keeps carts in process memory; empty MySQLDSN serves
	// the built-in catalog and keeps orders in memory.
	RedisAddr    string
	MySQLDSN     string
	KafkaBrokers []string
	KafkaTopic   string

	Workers       int
	QueueSize     int
	FeaturedLimit int
	CartKeyPrefix string
	CartTTL       time.Duration

	ShutdownTimeout time.Duration
}

type configFile struct {
	Service struct {
		Name     string `yaml:"name"`
		Env      string `yaml:"env"`
		LogLevel string `yaml:"log_level"`
		HTTPPort int    `yaml:"http_port"`
		GRPCPort int    `yaml:"grpc_port"`
	} `yaml:"service"`
	Dependencies struct {
		RedisAddr    string   `yaml:"redis_addr"`
		MySQLDSN     string   `yaml:"mysql_dsn"`
		KafkaBrokers []string `yaml:"kafka_brokers"`
		KafkaTopic   string   `yaml:"kafka_topic"`
	} `yaml:"dependencies"`
	Storefront struct {
		FeaturedLimit  int    `yaml:"featured_limit"`
		CartKeyPrefix  string `yaml:"cart_key_prefix"`
		CartTTLHours   int    `yaml:"cart_ttl_hours"`
		Workers        int    `yaml:"workers"`
		QueueSize      int    `yaml:"queue_size"`
		ShutdownSecond int    `yaml:"shutdown_seconds"`
	} `yaml:"storefront"`
}

func Default() Config {
	return Config{
		ServiceName:     "fitgear",
		Env:             "development",
		LogLevel:        "info",
		HTTPPort:        8080,
		GRPCPort:        50051,
		KafkaTopic:      "order.placed",
		Workers:         10,
		QueueSize:       10000,
		FeaturedLimit:   4,
		CartKeyPrefix:   "fitgear_cart:",
		CartTTL:         30 * 24 * time.Hour,
		ShutdownTimeout: 5 * time.Second,
	}
}

// Load layers defaults, the YAML file at path (skipped when missing) and
// environment variables, in that order.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := applyFile(&cfg, raw); err != nil {
				return Config{}, err
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg.ServiceName = envOrDefault("SERVICE_NAME", cfg.ServiceName)
	cfg.Env = envOrDefault("APP_ENV", cfg.Env)
	cfg.LogLevel = envOrDefault("LOG_LEVEL", cfg.LogLevel)
	cfg.HTTPPort = envInt("HTTP_PORT", cfg.HTTPPort)
	cfg.GRPCPort = envInt("GRPC_PORT", cfg.GRPCPort)
	cfg.RedisAddr = envOrDefault("REDIS_ADDR", cfg.RedisAddr)
	cfg.MySQLDSN = envOrDefault("MYSQL_DSN", cfg.MySQLDSN)
	cfg.KafkaBrokers = envCSV("KAFKA_BROKERS", cfg.KafkaBrokers)
	cfg.KafkaTopic = envOrDefault("KAFKA_TOPIC_ORDER_PLACED", cfg.KafkaTopic)
	cfg.Workers = envInt("WORKERS", cfg.Workers)
	cfg.QueueSize = envInt("QUEUE_SIZE", cfg.QueueSize)
	cfg.FeaturedLimit = envInt("FEATURED_LIMIT", cfg.FeaturedLimit)
	cfg.CartKeyPrefix = envOrDefault("CART_KEY_PREFIX", cfg.CartKeyPrefix)
	cfg.CartTTL = time.Duration(envInt("CART_TTL_HOURS", int(cfg.CartTTL.Hours()))) * time.Hour
	cfg.ShutdownTimeout = time.Duration(envInt("SHUTDOWN_SECONDS", int(cfg.ShutdownTimeout.Seconds()))) * time.Second

	if cfg.Workers <= 0 {
		return Config{}, fmt.Errorf("workers must be positive, got %d", cfg.Workers)
	}
	if cfg.QueueSize <= 0 {
		return Config{}, fmt.Errorf("queue size must be positive, got %d", cfg.QueueSize)
	}
	return cfg, nil
}

func applyFile(cfg *Config, raw []byte) error {
	var f configFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	if f.Service.Name != "" {
		cfg.ServiceName = f.Service.Name
	}
	if f.Service.Env != "" {
		cfg.Env = f.Service.Env
	}
	if f.Service.LogLevel != "" {
		cfg.LogLevel = f.Service.LogLevel
	}
	if f.Service.HTTPPort > 0 {
		cfg.HTTPPort = f.Service.HTTPPort
	}
	if f.Service.GRPCPort > 0 {
		cfg.GRPCPort = f.Service.GRPCPort
	}
	if f.Dependencies.RedisAddr != "" {
		cfg.RedisAddr = f.Dependencies.RedisAddr
	}
	if f.Dependencies.MySQLDSN != "" {
		cfg.MySQLDSN = f.Dependencies.MySQLDSN
	}
	if len(f.Dependencies.KafkaBrokers) > 0 {
		cfg.KafkaBrokers = trimNonEmpty(f.Dependencies.KafkaBrokers)
	}
	if f.Dependencies.KafkaTopic != "" {
		cfg.KafkaTopic = f.Dependencies.KafkaTopic
	}
	if f.Storefront.FeaturedLimit != 0 {
		cfg.FeaturedLimit = f.Storefront.FeaturedLimit
	}
	if f.Storefront.CartKeyPrefix != "" {
		cfg.CartKeyPrefix = f.Storefront.CartKeyPrefix
	}
	if f.Storefront.CartTTLHours > 0 {
		cfg.CartTTL = time.Duration(f.Storefront.CartTTLHours) * time.Hour
	}
	if f.Storefront.Workers > 0 {
		cfg.Workers = f.Storefront.Workers
	}
	if f.Storefront.QueueSize > 0 {
		cfg.QueueSize = f.Storefront.QueueSize
	}
	if f.Storefront.ShutdownSecond > 0 {
		cfg.ShutdownTimeout = time.Duration(f.Storefront.ShutdownSecond) * time.Second
	}
	return nil
}

func (c Config) HTTPAddr() string {
	return ":" + strconv.Itoa(c.HTTPPort)
}

func (c Config) GRPCAddr() string {
	return ":" + strconv.Itoa(c.GRPCPort)
}

func envOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

func envInt(name string, fallback int) int {
	value := os.Getenv(name)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

func envCSV(name string, fallback []string) []string {
	value := os.Getenv(name)
	if value == "" {
		return fallback
	}
	return trimNonEmpty(strings.Split(value, ","))
}

func trimNonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
