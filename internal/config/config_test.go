package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ADOPTION_APP_ENV", "development")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, StorePostgres, cfg.StoreDriver)
	assert.Equal(t, BrokerKafka, cfg.EventBroker)
	assert.True(t, cfg.IdentityConsumerEnabled)
	assert.Equal(t, "adoption_db", cfg.DBConfig.DBName)
	assert.Equal(t, "pet-adoption", cfg.S3Config.Folder)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ADOPTION_SERVICE_PORT", "9090")
	t.Setenv("ADOPTION_STORE_DRIVER", "memory")
	t.Setenv("ADOPTION_EVENT_BROKER", "nats")
	t.Setenv("ADOPTION_KAFKA_BROKERS", "k1:9092, k2:9092")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Port)
	assert.Equal(t, StoreMemory, cfg.StoreDriver)
	assert.Equal(t, BrokerNATS, cfg.EventBroker)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaConfig.Brokers)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("ADOPTION_STORE_DRIVER", "sqlite")

	_, err := Load()
	assert.Error(t, err)
}
