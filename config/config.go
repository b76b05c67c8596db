package config

import (
	"errors"
	"fmt"
	"log"

	"github.com/spf13/viper"
)

const (
	LockBackendMemory = "memory"
	LockBackendRedis  = "redis"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	LogFile           string `mapstructure:"LOG_FILE"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Shared secret for the admin and backup endpoints. There is no default.
	AdminPassword string `mapstructure:"ADMIN_PASSWORD"`

	// Redis configuration. An empty address disables caching and the distributed lock.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisLockDB   int    `mapstructure:"REDIS_LOCK_DB"`

	// BotTimeoutSeconds bounds one chat turn, lock wait included.
	BotTimeoutSeconds      int      `mapstructure:"BOT_TIMEOUT_SECONDS"`
	LockBackend            string   `mapstructure:"LOCK_BACKEND"`
	LockTTLSeconds         int      `mapstructure:"LOCK_TTL_SECONDS"`
	CatalogCacheTTLSeconds int      `mapstructure:"CATALOG_CACHE_TTL_SECONDS"`
	CORSAllowOrigins       []string `mapstructure:"CORS_ALLOW_ORIGINS"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE", "")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "inkbook")
	// Registered empty so Unmarshal still picks ADMIN_PASSWORD up from the environment.
	v.SetDefault("ADMIN_PASSWORD", "")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("REDIS_LOCK_DB", 1)
	v.SetDefault("BOT_TIMEOUT_SECONDS", 5)
	v.SetDefault("LOCK_BACKEND", LockBackendMemory)
	v.SetDefault("LOCK_TTL_SECONDS", 10)
	v.SetDefault("CATALOG_CACHE_TTL_SECONDS", 300)
	v.SetDefault("CORS_ALLOW_ORIGINS", []string{"*"})
}

// Validate rejects configurations the server must not start with.
func (c Config) Validate() error {
	var errs []error
	if c.AdminPassword == "" {
		errs = append(errs, errors.New("ADMIN_PASSWORD must be set"))
	}
	switch c.LockBackend {
	case LockBackendMemory:
	case LockBackendRedis:
		if c.RedisAddr == "" {
			errs = append(errs, errors.New("LOCK_BACKEND=redis requires REDIS_ADDR"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown LOCK_BACKEND %q", c.LockBackend))
	}
	if c.BotTimeoutSeconds <= 0 {
		errs = append(errs, errors.New("BOT_TIMEOUT_SECONDS must be positive"))
	}
	// A lease must outlive the turn it guards, or a slow turn loses its lock.
	if c.LockTTLSeconds <= c.BotTimeoutSeconds {
		errs = append(errs, fmt.Errorf("LOCK_TTL_SECONDS (%d) must exceed BOT_TIMEOUT_SECONDS (%d)",
			c.LockTTLSeconds, c.BotTimeoutSeconds))
	}
	if c.MaxRequestsPerMin <= 0 {
		errs = append(errs, errors.New("MAX_REQUESTS_PER_MIN must be positive"))
	}
	return errors.Join(errs...)
}

// RedisEnabled reports whether a Redis address was configured.
func (c Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
