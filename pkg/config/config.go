package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// JWTConfig holds the identity token verification settings.
type JWTConfig struct {
	Secret string
	Issuer string
}

// KafkaConfig holds broker addresses and the consumer group prefix.
type KafkaConfig struct {
	Brokers     []string
	GroupPrefix string
}

// RedisConfig holds the feed cache connection settings.
type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// NATSConfig holds the NATS server URL.
type NATSConfig struct {
	URL string
}

// S3Config holds the media bucket settings.
type S3Config struct {
	Endpoint        string
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
	PublicBaseURL   string
	Folder          string
}

// Load builds a viper instance reading PREFIX_* environment variables.
// A .env file in the working directory is loaded first when present.
func Load(prefix string) (*viper.Viper, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(prefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("KAFKA_BROKERS", "localhost:9092")
	v.SetDefault("KAFKA_GROUP_PREFIX", "")
	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_TTL", "5m")
	v.SetDefault("NATS_URL", "nats://localhost:4222")
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("S3_FOLDER", "pet-adoption")

	if v.GetString("APP_ENV") == "production" && v.GetString("JWT_SECRET") == "" {
		return nil, fmt.Errorf("%s_JWT_SECRET is required in production", prefix)
	}
	return v, nil
}

// GetServicePort returns the listen address for key, defaulting to :8080.
func GetServicePort(v *viper.Viper, key string) string {
	port := v.GetString(key)
	if port == "" {
		port = "8080"
	}
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}
	return port
}

// GetAppEnv returns the application environment.
func GetAppEnv(v *viper.Viper) string {
	return v.GetString("APP_ENV")
}

// LoadDatabaseConfig reads DB_* settings; dbNameKey names the database key.
func LoadDatabaseConfig(v *viper.Viper, dbNameKey string) DatabaseConfig {
	return DatabaseConfig{
		Host:     v.GetString("DB_HOST"),
		Port:     v.GetString("DB_PORT"),
		User:     v.GetString("DB_USER"),
		Password: v.GetString("DB_PASSWORD"),
		DBName:   v.GetString(dbNameKey),
		SSLMode:  v.GetString("DB_SSLMODE"),
	}
}

// LoadJWTConfig reads JWT_* settings.
func LoadJWTConfig(v *viper.Viper) JWTConfig {
	return JWTConfig{
		Secret: v.GetString("JWT_SECRET"),
		Issuer: v.GetString("JWT_ISSUER"),
	}
}

// LoadKafkaConfig reads KAFKA_* settings. Brokers are comma separated.
func LoadKafkaConfig(v *viper.Viper) KafkaConfig {
	return KafkaConfig{
		Brokers:     splitList(v.GetString("KAFKA_BROKERS")),
		GroupPrefix: v.GetString("KAFKA_GROUP_PREFIX"),
	}
}

// LoadRedisConfig reads REDIS_* settings.
func LoadRedisConfig(v *viper.Viper) RedisConfig {
	return RedisConfig{
		Enabled:  v.GetBool("REDIS_ENABLED"),
		Addr:     v.GetString("REDIS_ADDR"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
		TTL:      v.GetDuration("REDIS_TTL"),
	}
}

// LoadNATSConfig reads NATS_* settings.
func LoadNATSConfig(v *viper.Viper) NATSConfig {
	return NATSConfig{URL: v.GetString("NATS_URL")}
}

// LoadS3Config reads S3_* settings.
func LoadS3Config(v *viper.Viper) S3Config {
	return S3Config{
		Endpoint:        v.GetString("S3_ENDPOINT"),
		Region:          v.GetString("S3_REGION"),
		Bucket:          v.GetString("S3_BUCKET"),
		AccessKeyID:     v.GetString("S3_ACCESS_KEY_ID"),
		SecretAccessKey: v.GetString("S3_SECRET_ACCESS_KEY"),
		UsePathStyle:    v.GetBool("S3_USE_PATH_STYLE"),
		PublicBaseURL:   v.GetString("S3_PUBLIC_BASE_URL"),
		Folder:          v.GetString("S3_FOLDER"),
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
