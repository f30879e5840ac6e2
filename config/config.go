package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Auth modes. Demo mode mirrors the original DialPro behavior: the demo
// credential table plus a permissive fallback that accepts any
// syntactically valid email address. Strict mode gates on the table only.
const (
	AuthModeDemo   = "demo"
	AuthModeStrict = "strict"
)

type Config struct {
	ServerPort   int
	DataProvider string // "postgres" or "mock"
	Database     DatabaseConfig
	Auth         AuthConfig
	Session      SessionConfig
	MQ           MQConfig
	Storage      StorageConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	UseSSL   bool
}

type AuthConfig struct {
	// Mode selects the login rule: AuthModeDemo or AuthModeStrict.
	Mode string

	// LoginDelayMillis is the artificial suspension applied to every
	// login attempt, standing in for a future provider round trip.
	LoginDelayMillis int
}

type SessionConfig struct {
	// FilePath is where the single persisted session record lives.
	FilePath string
}

type MQConfig struct {
	// Backend selects the intent event broker: "rabbitmq", "pubsub" or
	// "" to disable publishing.
	Backend  string
	Channel  string
	RabbitMQ RabbitMQConfig
	PubSub   PubSubConfig
}

type RabbitMQConfig struct {
	URL             string
	QueueDurable    bool
	QueueAutoDelete bool
	PrefetchCount   int
}

type PubSubConfig struct {
	ProjectID          string
	CredentialsFile    string
	SubscriptionSuffix string
}

type StorageConfig struct {
	// Backend selects the export target: "minio", "gcs" or "" to
	// disable exports.
	Backend string
	Minio   MinioConfig
	GCS     GCSConfig
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type GCSConfig struct {
	Bucket          string
	ProjectID       string
	CredentialsFile string
}

func LoadConfig() Config {
	if os.Getenv("ENV") == "dev" {
		godotenv.Load()
	}

	dbConfig := DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnvInt("DB_PORT", 5432),
		User:     getEnv("DB_USER", "dialpro"),
		Password: getEnv("DB_PASSWORD", "password"),
		DBName:   getEnv("DB_NAME", "dialpro_db"),
		UseSSL:   getEnvBool("DB_USE_SSL", false),
	}

	return Config{
		ServerPort:   getEnvInt("SERVER_PORT", 8080),
		DataProvider: getEnv("DATA_PROVIDER", "mock"),
		Database:     dbConfig,
		Auth: AuthConfig{
			Mode:             getEnv("AUTH_MODE", AuthModeDemo),
			LoginDelayMillis: getEnvInt("LOGIN_DELAY_MS", 1000),
		},
		Session: SessionConfig{
			FilePath: getEnv("SESSION_FILE", "dialpro_session.json"),
		},
		MQ: MQConfig{
			Backend: getEnv("MQ_BACKEND", ""),
			Channel: getEnv("MQ_INTENT_CHANNEL", "call-intents"),
			RabbitMQ: RabbitMQConfig{
				URL:             getEnv("RABBITMQ_URL", ""),
				QueueDurable:    getEnvBool("RABBITMQ_QUEUE_DURABLE", true),
				QueueAutoDelete: getEnvBool("RABBITMQ_QUEUE_AUTO_DELETE", false),
				PrefetchCount:   getEnvInt("RABBITMQ_PREFETCH_COUNT", 0),
			},
			PubSub: PubSubConfig{
				ProjectID:          getEnv("PUBSUB_PROJECT_ID", ""),
				CredentialsFile:    getEnv("PUBSUB_CREDENTIALS_FILE", ""),
				SubscriptionSuffix: getEnv("PUBSUB_SUBSCRIPTION_SUFFIX", "-sub"),
			},
		},
		Storage: StorageConfig{
			Backend: getEnv("STORAGE_BACKEND", ""),
			Minio: MinioConfig{
				Endpoint:  getEnv("MINIO_ENDPOINT", ""),
				AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
				SecretKey: getEnv("MINIO_SECRET_KEY", ""),
				Bucket:    getEnv("MINIO_BUCKET", "dialpro-exports"),
				UseSSL:    getEnvBool("MINIO_USE_SSL", false),
			},
			GCS: GCSConfig{
				Bucket:          getEnv("GCS_BUCKET", ""),
				ProjectID:       getEnv("GCS_PROJECT_ID", ""),
				CredentialsFile: getEnv("GCS_CREDENTIALS_FILE", ""),
			},
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		var value int
		fmt.Sscanf(valueStr, "%d", &value)
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if valueStr, exists := os.LookupEnv(key); exists {
		switch strings.ToLower(strings.TrimSpace(valueStr)) {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultValue
}
