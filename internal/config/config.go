package config

import (
	"fmt"

	"github.com/Kilat-Pet-Delivery/service-adoption/pkg/config"
)

// Store drivers.
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Event brokers.
const (
	BrokerKafka = "kafka"
	BrokerNATS  = "nats"
	BrokerNone  = "none"
)

// ServiceConfig holds all configuration for the adoption service.
type ServiceConfig struct {
	Port                    string
	AppEnv                  string
	StoreDriver             string
	EventBroker             string
	IdentityConsumerEnabled bool
	DBConfig                config.DatabaseConfig
	JWTConfig               config.JWTConfig
	KafkaConfig             config.KafkaConfig
	RedisConfig             config.RedisConfig
	NATSConfig              config.NATSConfig
	S3Config                config.S3Config
}

// Load reads configuration from ADOPTION_* environment variables.
func Load() (*ServiceConfig, error) {
	v, err := config.Load("ADOPTION")
	if err != nil {
		return nil, err
	}
	v.SetDefault("DB_NAME", "adoption_db")
	v.SetDefault("STORE_DRIVER", StorePostgres)
	v.SetDefault("EVENT_BROKER", BrokerKafka)
	v.SetDefault("IDENTITY_CONSUMER_ENABLED", true)

	cfg := &ServiceConfig{
		Port:                    config.GetServicePort(v, "SERVICE_PORT"),
		AppEnv:                  config.GetAppEnv(v),
		StoreDriver:             v.GetString("STORE_DRIVER"),
		EventBroker:             v.GetString("EVENT_BROKER"),
		IdentityConsumerEnabled: v.GetBool("IDENTITY_CONSUMER_ENABLED"),
		DBConfig:                config.LoadDatabaseConfig(v, "DB_NAME"),
		JWTConfig:               config.LoadJWTConfig(v),
		KafkaConfig:             config.LoadKafkaConfig(v),
		RedisConfig:             config.LoadRedisConfig(v),
		NATSConfig:              config.LoadNATSConfig(v),
		S3Config:                config.LoadS3Config(v),
	}

	switch cfg.StoreDriver {
	case StorePostgres, StoreMemory:
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
	switch cfg.EventBroker {
	case BrokerKafka, BrokerNATS, BrokerNone:
	default:
		return nil, fmt.Errorf("unknown event broker %q", cfg.EventBroker)
	}
	return cfg, nil
}
