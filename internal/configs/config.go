package configs

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMySQL    = "mysql"
	StorageDriverMemory   = "memory"
)

type StorageConfig struct {
	Driver string
}

type PostgresConfig struct {
	URL             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
}

type MySQLConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type MemoryConfig struct {
	SeedFile string
}

type RESTconfig struct {
	PORT           string
	AllowedOrigins []string
}

type SearchConfig struct {
	DefaultPageSize int
	MaxPageSize     int
}

type RabbitMQConfig struct {
	Enabled bool
	URL     string
}

type AuthConfig struct {
	JWTSigningKey string
	JWTIssuer     string
}

type StdoutLogConfig struct {
	Level  string
	IsJSON bool
}

type FluentBitConfig struct {
	Host    string
	Port    int
	Enabled bool
	Level   string
}

// AppConfig хранит всю конфигурацию приложения
type AppConfig struct {
	AppName      string
	Storage      StorageConfig
	Postgres     PostgresConfig
	MySQL        MySQLConfig
	Memory       MemoryConfig
	Rest         RESTconfig
	Search       SearchConfig
	RabbitMQ     RabbitMQConfig
	Auth         AuthConfig
	FluentBit    FluentBitConfig
	StdoutLogger StdoutLogConfig
}

// LoadConfig загружает конфигурацию из переменных окружения. Файл .env необязателен.
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		log.Printf("Info: Could not load .env file (path: %v): %v. Using process environment.\n", envPath, err)
	}

	cfg := &AppConfig{}

	cfg.AppName = getEnvAsString("APP_NAME", "listings-service")

	cfg.Storage.Driver = strings.ToLower(getEnvAsString("STORAGE_DRIVER", StorageDriverPostgres))
	switch cfg.Storage.Driver {
	case StorageDriverPostgres:
		cfg.Postgres.URL = os.Getenv("DATABASE_URL")
		if cfg.Postgres.URL == "" {
			return nil, fmt.Errorf("DATABASE_URL environment variable is required for the postgres storage driver")
		}
		cfg.Postgres.MaxConns = int32(getEnvAsInt("DATABASE_MAX_CONNS", 10))
		cfg.Postgres.MinConns = int32(getEnvAsInt("DATABASE_MIN_CONNS", 2))
		cfg.Postgres.MaxConnLifetime = getEnvAsDuration("DATABASE_MAX_CONN_LIFETIME", time.Hour)
	case StorageDriverMySQL:
		cfg.MySQL.DSN = os.Getenv("MYSQL_DSN")
		if cfg.MySQL.DSN == "" {
			return nil, fmt.Errorf("MYSQL_DSN environment variable is required for the mysql storage driver")
		}
		cfg.MySQL.MaxOpenConns = getEnvAsInt("MYSQL_MAX_OPEN_CONNS", 10)
		cfg.MySQL.MaxIdleConns = getEnvAsInt("MYSQL_MAX_IDLE_CONNS", 5)
		cfg.MySQL.ConnMaxLifetime = getEnvAsDuration("MYSQL_CONN_MAX_LIFETIME", time.Hour)
	case StorageDriverMemory:
		cfg.Memory.SeedFile = getEnvAsString("MEMORY_SEED_FILE", "")
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q: expected postgres, mysql or memory", cfg.Storage.Driver)
	}

	cfg.Rest.PORT = getEnvAsString("PORT", "8085")
	cfg.Rest.AllowedOrigins = getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"})

	cfg.Search.MaxPageSize = getEnvAsInt("SEARCH_MAX_PAGE_SIZE", 100)
	cfg.Search.DefaultPageSize = getEnvAsInt("SEARCH_DEFAULT_PAGE_SIZE", 20)
	if cfg.Search.MaxPageSize <= 0 {
		return nil, fmt.Errorf("SEARCH_MAX_PAGE_SIZE must be positive, got %d", cfg.Search.MaxPageSize)
	}
	if cfg.Search.DefaultPageSize <= 0 || cfg.Search.DefaultPageSize > cfg.Search.MaxPageSize {
		return nil, fmt.Errorf("SEARCH_DEFAULT_PAGE_SIZE must be between 1 and %d, got %d", cfg.Search.MaxPageSize, cfg.Search.DefaultPageSize)
	}

	cfg.RabbitMQ.Enabled = getEnvAsBool("RABBITMQ_ENABLED", false)
	if cfg.RabbitMQ.Enabled {
		cfg.RabbitMQ.URL = os.Getenv("RABBITMQ_URL")
		if cfg.RabbitMQ.URL == "" {
			return nil, fmt.Errorf("RABBITMQ_URL environment variable is required when RABBITMQ_ENABLED is true")
		}
	}

	cfg.Auth.JWTSigningKey = os.Getenv("JWT_SIGNING_KEY")
	cfg.Auth.JWTIssuer = getEnvAsString("JWT_ISSUER", "")

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}

		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.Level = getEnvAsString("FLUENTBIT_LOG_LEVEL", "info")
	}

	cfg.StdoutLogger.Level = getEnvAsString("STDOUT_LOG_LEVEL", "debug")
	cfg.StdoutLogger.IsJSON = getEnvAsBool("STDOUT_LOG_JSON", false)

	return cfg, nil
}

func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

// getEnvAsBool читает переменную окружения как bool или возвращает значение по умолчанию
func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as bool: %v. Using default value: %t\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valBool
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valDuration, err := time.ParseDuration(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as duration: %v. Using default value: %s\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valDuration
}

// getEnvAsSlice - список через запятую, пустые элементы отбрасываются.
func getEnvAsSlice(key string, defaultValue []string) []string {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	var values []string
	for _, part := range strings.Split(valStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}
