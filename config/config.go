package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// MongoDB.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr      string        `mapstructure:"REDIS_ADDR"`
	RedisPassword  string        `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB   int           `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB   int           `mapstructure:"REDIS_QUEUE_DB"`
	SearchCacheTTL time.Duration `mapstructure:"SEARCH_CACHE_TTL"`

	// Hotel content supplier (basic auth).
	HotelAPIBaseURL  string `mapstructure:"HOTEL_API_BASE_URL"`
	HotelAPIUsername string `mapstructure:"HOTEL_API_USERNAME"`
	HotelAPIPassword string `mapstructure:"HOTEL_API_PASSWORD"`

	// Activity and transfer supplier (signed requests).
	ActivityAPIBaseURL string `mapstructure:"ACTIVITY_API_BASE_URL"`
	ActivityAPIKey     string `mapstructure:"ACTIVITY_API_KEY"`
	ActivityAPISecret  string `mapstructure:"ACTIVITY_API_SECRET"`
	TransferAPIBaseURL string `mapstructure:"TRANSFER_API_BASE_URL"`

	SupplierTimeout time.Duration `mapstructure:"SUPPLIER_TIMEOUT"`

	// Cloudinary, used for package images.
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`
}

var AppConfig Config

// LoadConfig reads config.yaml (if present) and the environment into AppConfig
// and returns a copy for injection.
func LoadConfig() Config {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017/?replicaSet=rs0")
	viper.SetDefault("DATABASE_NAME", "travelhub")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("SEARCH_CACHE_TTL", "30m")
	viper.SetDefault("HOTEL_API_BASE_URL", "https://api.worldota.net")
	viper.SetDefault("HOTEL_API_USERNAME", "")
	viper.SetDefault("HOTEL_API_PASSWORD", "")
	viper.SetDefault("ACTIVITY_API_BASE_URL", "https://api.test.hotelbeds.com")
	viper.SetDefault("ACTIVITY_API_KEY", "")
	viper.SetDefault("ACTIVITY_API_SECRET", "")
	viper.SetDefault("TRANSFER_API_BASE_URL", "https://api.test.hotelbeds.com")
	viper.SetDefault("SUPPLIER_TIMEOUT", "30s")
	viper.SetDefault("CLOUDINARY_CLOUD_NAME", "")
	viper.SetDefault("CLOUDINARY_API_KEY", "")
	viper.SetDefault("CLOUDINARY_API_SECRET", "")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return AppConfig
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
