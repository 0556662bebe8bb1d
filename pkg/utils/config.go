package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Scheduling SchedulingConfig
	Redis      RedisConfig
	RabbitMQ   RabbitMQConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

// SchedulingConfig carries the business constants of the scheduling engine.
// They are injected into the engine instead of living as package constants so
// tests can run with varied policies.
type SchedulingConfig struct {
	BufferMinutes    int
	MaxBasePrice     float64
	ConflictRetries  int
	ListCacheTTLSecs int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type RabbitMQConfig struct {
	URL string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("SCHEDULE_BUFFER_MINUTES", 20)
	viper.SetDefault("SCHEDULE_MAX_BASE_PRICE", 10000)
	viper.SetDefault("SCHEDULE_CONFLICT_RETRIES", 3)
	viper.SetDefault("SCHEDULE_LIST_CACHE_TTL_SECS", 30)
	viper.SetDefault("REDIS_DB", 0)

	if err := viper.ReadInConfig(); err != nil {
		// Missing .env is fine, environment variables still apply
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Scheduling: SchedulingConfig{
			BufferMinutes:    viper.GetInt("SCHEDULE_BUFFER_MINUTES"),
			MaxBasePrice:     viper.GetFloat64("SCHEDULE_MAX_BASE_PRICE"),
			ConflictRetries:  viper.GetInt("SCHEDULE_CONFLICT_RETRIES"),
			ListCacheTTLSecs: viper.GetInt("SCHEDULE_LIST_CACHE_TTL_SECS"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		RabbitMQ: RabbitMQConfig{
			URL: viper.GetString("RABBITMQ_URL"),
		},
	}

	return config, nil
}
