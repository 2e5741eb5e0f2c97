package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads so the host environment
// cannot leak into assertions.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"SERVICE_NAME", "APP_ENV", "LOG_LEVEL", "HTTP_PORT", "GRPC_PORT",
		"REDIS_ADDR", "MYSQL_DSN", "KAFKA_BROKERS", "KAFKA_TOPIC_ORDER_PLACED",
		"WORKERS", "QUEUE_SIZE", "FEATURED_LIMIT", "CART_TTL_HOURS",
		"CART_KEY_PREFIX", "SHUTDOWN_SECONDS",
	} {
		t.Setenv(name, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, ":8080", cfg.HTTPAddr())
	assert.Equal(t, ":50051", cfg.GRPCAddr())
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
service:
  env: staging
  http_port: 9000
dependencies:
  redis_addr: redis:6379
  kafka_brokers: [" kafka-1:9092 ", "", "kafka-2:9092"]
storefront:
  featured_limit: 6
  cart_ttl_hours: 48
  workers: 3
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.Env)
	assert.Equal(t, 9000, cfg.HTTPPort)
	assert.Equal(t, 50051, cfg.GRPCPort)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 6, cfg.FeaturedLimit)
	assert.Equal(t, 48*time.Hour, cfg.CartTTL)
	assert.Equal(t, 3, cfg.Workers)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
service:
  http_port: 9000
dependencies:
  redis_addr: redis:6379
`)
	t.Setenv("HTTP_PORT", "9100")
	t.Setenv("REDIS_ADDR", "localhost:6380")
	t.Setenv("KAFKA_BROKERS", "a:1, b:2")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.HTTPPort)
	assert.Equal(t, "localhost:6380", cfg.RedisAddr)
	assert.Equal(t, []string{"a:1", "b:2"}, cfg.KafkaBrokers)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_EnvCartPrefixAndShutdown(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
storefront:
  cart_key_prefix: "yaml_cart:"
  shutdown_seconds: 9
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "yaml_cart:", cfg.CartKeyPrefix)
	assert.Equal(t, 9*time.Second, cfg.ShutdownTimeout)

	t.Setenv("CART_KEY_PREFIX", "env_cart:")
	t.Setenv("SHUTDOWN_SECONDS", "12")

	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env_cart:", cfg.CartKeyPrefix)
	assert.Equal(t, 12*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_InvalidEnvIntKeepsFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("QUEUE_SIZE", "lots")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().QueueSize, cfg.QueueSize)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)
	_, err := Load(writeConfig(t, "service: [unclosed"))
	assert.ErrorContains(t, err, "parse config file")

	t.Setenv("WORKERS", "0")
	_, err = Load("")
	assert.ErrorContains(t, err, "workers must be positive")
}
