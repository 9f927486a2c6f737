package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root application configuration. Values are resolved in three
// layers: defaults, then the optional YAML file, then environment overrides.
type Config struct {
	Server         ServerConfig         `yaml:"server"`
	MongoDB        MongoDBConfig        `yaml:"mongodb"`
	Kafka          KafkaConfig          `yaml:"kafka"`
	Pooling        PoolingConfig        `yaml:"pooling"`
	Auth           AuthConfig           `yaml:"auth"`
	Reconciliation ReconciliationConfig `yaml:"reconciliation"`
	Company        CompanyConfig        `yaml:"company"`
	LogLevel       string               `yaml:"logLevel"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"readTimeout"`
	WriteTimeout time.Duration `yaml:"writeTimeout"`
}

// MongoDBConfig holds MongoDB connection settings
type MongoDBConfig struct {
	URI            string        `yaml:"uri"`
	Database       string        `yaml:"database"`
	ConnectTimeout time.Duration `yaml:"connectTimeout"`
	MaxPoolSize    uint64        `yaml:"maxPoolSize"`
	MinPoolSize    uint64        `yaml:"minPoolSize"`
	ReplicaSet     string        `yaml:"replicaSet"`
}

// KafkaConfig holds Kafka producer settings
type KafkaConfig struct {
	Brokers      []string      `yaml:"brokers"`
	ClientID     string        `yaml:"clientId"`
	BatchSize    int           `yaml:"batchSize"`
	BatchTimeout time.Duration `yaml:"batchTimeout"`
	RequiredAcks int           `yaml:"requiredAcks"`
}

// PoolingConfig holds external pooling API settings
type PoolingConfig struct {
	BaseURL string        `yaml:"baseUrl"`
	APIKey  string        `yaml:"apiKey"`
	Timeout time.Duration `yaml:"timeout"`
}

// AuthConfig holds JWT verification settings
type AuthConfig struct {
	SigningKey string `yaml:"signingKey"`
	Issuer     string `yaml:"issuer"`
}

// ReconciliationConfig holds the pooling slot reconciliation poller settings
type ReconciliationConfig struct {
	Enabled      bool          `yaml:"enabled"`
	PollInterval time.Duration `yaml:"pollInterval"`
	BatchSize    int           `yaml:"batchSize"`
}

// CompanyConfig holds tenant-level business settings
type CompanyConfig struct {
	// PoolingRequiresConfirmedOrders switches the SendToPooling availability
	// predicate between all-orders-confirmed and confirmed-or-created.
	PoolingRequiresConfirmedOrders bool `yaml:"poolingRequiresConfirmedOrders"`
}

// Default returns a Config with sensible defaults
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		MongoDB: MongoDBConfig{
			URI:            "mongodb://localhost:27017",
			Database:       "tms_backoffice",
			ConnectTimeout: 10 * time.Second,
			MaxPoolSize:    100,
			MinPoolSize:    10,
		},
		Kafka: KafkaConfig{
			Brokers:      []string{"localhost:9092"},
			ClientID:     "tms-backoffice",
			BatchSize:    100,
			BatchTimeout: 10 * time.Millisecond,
			RequiredAcks: -1,
		},
		Pooling: PoolingConfig{
			BaseURL: "http://localhost:9090",
			Timeout: 15 * time.Second,
		},
		Auth: AuthConfig{
			SigningKey: "dev-only-signing-key",
			Issuer:     "tms-backoffice",
		},
		Reconciliation: ReconciliationConfig{
			Enabled:      true,
			PollInterval: time.Minute,
			BatchSize:    50,
		},
		LogLevel: "info",
	}
}

// Load resolves configuration from defaults, an optional YAML file and
// environment variables, in that order.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Server.Addr = getEnv("SERVER_ADDR", c.Server.Addr)
	c.MongoDB.URI = getEnv("MONGODB_URI", c.MongoDB.URI)
	c.MongoDB.Database = getEnv("MONGODB_DATABASE", c.MongoDB.Database)
	c.Pooling.BaseURL = getEnv("POOLING_BASE_URL", c.Pooling.BaseURL)
	c.Pooling.APIKey = getEnv("POOLING_API_KEY", c.Pooling.APIKey)
	c.Auth.SigningKey = getEnv("AUTH_SIGNING_KEY", c.Auth.SigningKey)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)

	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("RECONCILIATION_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Reconciliation.Enabled = b
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
