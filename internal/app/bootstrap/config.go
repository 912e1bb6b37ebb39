package bootstrap

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ServiceID string

	HTTPPort int
	GRPCPort int

	DatabaseURL string
	RedisURL    string

	KafkaBrokers              []string
	KafkaTopicFollowRecorded  string
	KafkaTopicProfileInitDone string

	ReceiptRegistryURL string
	StreamLedgerURL    string
	ModuleRegistryURL  string
	TokenTransferURL   string

	HostAuthSecret string
	HostAuthIssuer string

	MaxDBConns         int32
	OutboxPollInterval time.Duration
	OutboxBatchSize    int
	ConfigCacheTTL     time.Duration
}

type configFile struct {
	Service struct {
		ID       string `yaml:"id"`
		HTTPPort int    `yaml:"http_port"`
		GRPCPort int    `yaml:"grpc_port"`
	} `yaml:"service"`
	Dependencies struct {
		PostgresURL               string   `yaml:"postgres_url"`
		RedisURL                  string   `yaml:"redis_url"`
		KafkaBrokers              []string `yaml:"kafka_brokers"`
		KafkaTopicFollowRecorded  string   `yaml:"kafka_topic_follow_recorded"`
		KafkaTopicProfileInitDone string   `yaml:"kafka_topic_profile_initialized"`
		ReceiptRegistryURL        string   `yaml:"receipt_registry_url"`
		StreamLedgerURL           string   `yaml:"stream_ledger_url"`
		ModuleRegistryURL         string   `yaml:"module_registry_url"`
		TokenTransferURL          string   `yaml:"token_transfer_url"`
	} `yaml:"dependencies"`
	Auth struct {
		HostSecret string `yaml:"host_secret"`
		HostIssuer string `yaml:"host_issuer"`
	} `yaml:"auth"`
}

func LoadConfig(path string) (Config, error) {
	cfg := Config{
		ServiceID:                 "follow-gate-service",
		HTTPPort:                  8080,
		GRPCPort:                  9090,
		MaxDBConns:                20,
		KafkaTopicFollowRecorded:  "follow.recorded",
		KafkaTopicProfileInitDone: "follow.profile_initialized",
		OutboxPollInterval:        2 * time.Second,
		OutboxBatchSize:           100,
		ConfigCacheTTL:            5 * time.Minute,
	}

	raw, err := os.ReadFile(path)
	if err == nil {
		var f configFile
		if unmarshalErr := yaml.Unmarshal(raw, &f); unmarshalErr != nil {
			return Config{}, fmt.Errorf("parse config file: %w", unmarshalErr)
		}
		if f.Service.ID != "" {
			cfg.ServiceID = f.Service.ID
		}
		if f.Service.HTTPPort > 0 {
			cfg.HTTPPort = f.Service.HTTPPort
		}
		if f.Service.GRPCPort > 0 {
			cfg.GRPCPort = f.Service.GRPCPort
		}
		if f.Dependencies.PostgresURL != "" {
			cfg.DatabaseURL = f.Dependencies.PostgresURL
		}
		if f.Dependencies.RedisURL != "" {
			cfg.RedisURL = f.Dependencies.RedisURL
		}
		if len(f.Dependencies.KafkaBrokers) > 0 {
			cfg.KafkaBrokers = trimNonEmpty(f.Dependencies.KafkaBrokers)
		}
		if f.Dependencies.KafkaTopicFollowRecorded != "" {
			cfg.KafkaTopicFollowRecorded = f.Dependencies.KafkaTopicFollowRecorded
		}
		if f.Dependencies.KafkaTopicProfileInitDone != "" {
			cfg.KafkaTopicProfileInitDone = f.Dependencies.KafkaTopicProfileInitDone
		}
		cfg.ReceiptRegistryURL = f.Dependencies.ReceiptRegistryURL
		cfg.StreamLedgerURL = f.Dependencies.StreamLedgerURL
		cfg.ModuleRegistryURL = f.Dependencies.ModuleRegistryURL
		cfg.TokenTransferURL = f.Dependencies.TokenTransferURL
		cfg.HostAuthSecret = f.Auth.HostSecret
		cfg.HostAuthIssuer = f.Auth.HostIssuer
	}

	cfg.DatabaseURL = envOrDefault("DB_URL", envOrDefault("POSTGRES_URL", cfg.DatabaseURL))
	cfg.RedisURL = envOrDefault("REDIS_URL", cfg.RedisURL)
	cfg.KafkaBrokers = envCSV("KAFKA_BROKERS", cfg.KafkaBrokers)
	cfg.KafkaTopicFollowRecorded = envOrDefault("KAFKA_TOPIC_FOLLOW_RECORDED", cfg.KafkaTopicFollowRecorded)
	cfg.KafkaTopicProfileInitDone = envOrDefault("KAFKA_TOPIC_PROFILE_INITIALIZED", cfg.KafkaTopicProfileInitDone)
	cfg.ReceiptRegistryURL = envOrDefault("RECEIPT_REGISTRY_URL", cfg.ReceiptRegistryURL)
	cfg.StreamLedgerURL = envOrDefault("STREAM_LEDGER_URL", cfg.StreamLedgerURL)
	cfg.ModuleRegistryURL = envOrDefault("MODULE_REGISTRY_URL", cfg.ModuleRegistryURL)
	cfg.TokenTransferURL = envOrDefault("TOKEN_TRANSFER_URL", cfg.TokenTransferURL)
	cfg.HostAuthSecret = envOrDefault("HOST_AUTH_SECRET", cfg.HostAuthSecret)
	cfg.HostAuthIssuer = envOrDefault("HOST_AUTH_ISSUER", cfg.HostAuthIssuer)
	cfg.HTTPPort = envInt("HTTP_PORT", cfg.HTTPPort)
	cfg.GRPCPort = envInt("GRPC_PORT", cfg.GRPCPort)
	cfg.MaxDBConns = int32(envInt("DB_MAX_CONNS", int(cfg.MaxDBConns)))
	cfg.OutboxPollInterval = time.Duration(envInt("OUTBOX_POLL_SECONDS", int(cfg.OutboxPollInterval.Seconds()))) * time.Second
	cfg.OutboxBatchSize = envInt("OUTBOX_BATCH_SIZE", cfg.OutboxBatchSize)
	cfg.ConfigCacheTTL = time.Duration(envInt("CONFIG_CACHE_SECONDS", int(cfg.ConfigCacheTTL.Seconds()))) * time.Second

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("missing DB_URL/POSTGRES_URL")
	}
	return cfg, nil
}

func envOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func envCSV(name string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	return trimNonEmpty(strings.Split(raw, ","))
}

func trimNonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
