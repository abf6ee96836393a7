package config

import (
	"maroon_shop/structs"
	"sync"
	"time"
)

var (
	configInstance *structs.Config
	configOnce     sync.Once
)

func GetConfig() *structs.Config {
	configOnce.Do(func() {
		configInstance = Load()
	})
	return configInstance
}

// Load reads a fresh configuration from the environment without touching the singleton.
func Load() *structs.Config {
	return &structs.Config{
		Server: &structs.ServerConfig{
			AppName:        getEnvAsString("APP_NAME", "Maroon Shop"),
			Environment:    getEnvAsString("APP_ENV", "development"),
			Port:           getEnvAsString("APP_PORT", ":8080"),
			PublicURL:      getEnvAsString("APP_PUBLIC_URL", "http://localhost:8080"),
			ReadTimeout:    getEnvAsTimeDuration("SERVER_READ_TIME_OUT", 15*time.Second),
			WriteTimeout:   getEnvAsTimeDuration("SERVER_WRITE_TIME_OUT", 15*time.Second),
			IdleTimeout:    getEnvAsTimeDuration("SERVER_IDLE_TIME_OUT", 60*time.Second),
			MaxHeaderBytes: getEnvAsInt("SERVER_MAX_HEADER_BYTES", 1<<20), // 1 MB
			MaxBodyBytes:   int64(getEnvAsInt("SERVER_MAX_BODY_BYTES", 1<<20)),
		},
		Web: &structs.WebConfig{
			Port:          getEnvAsString("WEB_PORT", ":8081"),
			APIBaseURL:    getEnvAsString("WEB_API_BASE_URL", "http://localhost:8080"),
			CookieName:    getEnvAsString("WEB_COOKIE_NAME", "maroon_session"),
			CookieDomain:  getEnvAsString("WEB_COOKIE_DOMAIN", ""),
			ClientTimeout: getEnvAsTimeDuration("WEB_API_TIMEOUT", 10*time.Second),
		},
		Cors: &structs.CorsConfig{
			AllowedOrigins:   getEnvAsSlice("CORS_ALLOW_ORIGINS", []string{"http://localhost:8081"}),
			AllowedMethods:   getEnvAsSlice("CORS_ALLOW_METHODS", []string{"GET", "POST", "PUT", "OPTIONS"}),
			AllowedHeaders:   getEnvAsSlice("CORS_ALLOW_HEADERS", []string{"Origin", "Content-Type", "Accept"}),
			AllowCredentials: getEnvAsBool("CORS_ALLOW_CREDENTIALS", false),
			ExposedHeaders:   getEnvAsSlice("CORS_EXPOSED_HEADERS", []string{"Content-Length", "Location"}),
			MaxAge:           getEnvAsInt("CORS_MAX_AGE", 300),
		},
		Database: &structs.DatabaseConfig{
			Driver:       getEnvAsString("DB_DRIVER", "pg"),
			Host:         getEnvAsString("DB_HOST", "localhost"),
			Port:         getEnvAsInt("DB_PORT", 5432),
			User:         getEnvAsString("DB_USER", "postgres"),
			Password:     getEnvAsString("DB_PASSWORD", "password"),
			Name:         getEnvAsString("DB_NAME", "maroon_shop"),
			SQLitePath:   getEnvAsString("DB_SQLITE_PATH", "file:maroon_shop.db?cache=shared"),
			MaxConns:     getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:     getEnvAsInt("DB_MIN_CONNS", 2),
			MaxLifetime:  getEnvAsTimeDuration("DB_MAX_LIFETIME", 30*time.Minute),
			MaxIdleTime:  getEnvAsTimeDuration("DB_MAX_IDLE_TIME", 5*time.Minute),
			ReadTimeout:  getEnvAsTimeDuration("DB_READ_TIMEOUT", 5*time.Second),
			WriteTimeout: getEnvAsTimeDuration("DB_WRITE_TIMEOUT", 5*time.Second),
		},
		Cache: &structs.CacheConfig{
			Enabled:         getEnvAsBool("CACHE_ENABLED", false),
			Address:         getEnvAsString("CACHE_ADDRESS", "localhost:6379"),
			Username:        getEnvAsString("CACHE_USERNAME", ""),
			Password:        getEnvAsString("CACHE_PASSWORD", ""),
			DB:              getEnvAsInt("CACHE_DB", 0),
			PoolSize:        getEnvAsInt("CACHE_POOL_SIZE", 10),
			MinIdleConns:    getEnvAsInt("CACHE_MIN_IDLE_CONNS", 2),
			MaxIdleConns:    getEnvAsInt("CACHE_MAX_IDLE_CONNS", 5),
			PoolTimeout:     getEnvAsTimeDuration("CACHE_POOL_TIMEOUT", 4*time.Second),
			IdleTimeout:     getEnvAsTimeDuration("CACHE_IDLE_TIMEOUT", 5*time.Minute),
			DialTimeout:     getEnvAsTimeDuration("CACHE_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:     getEnvAsTimeDuration("CACHE_READ_TIMEOUT", 3*time.Second),
			WriteTimeout:    getEnvAsTimeDuration("CACHE_WRITE_TIMEOUT", 3*time.Second),
			MaxRetries:      getEnvAsInt("CACHE_MAX_RETRIES", 3),
			MinRetryBackoff: getEnvAsTimeDuration("CACHE_MIN_RETRY_BACKOFF", 8*time.Millisecond),
			MaxRetryBackoff: getEnvAsTimeDuration("CACHE_MAX_RETRY_BACKOFF", 512*time.Millisecond),
			ProductTTL:      getEnvAsTimeDuration("CACHE_PRODUCT_TTL", 10*time.Minute),
		},
		Auth: &structs.AuthConfig{
			SessionSecret: getEnvAsString("AUTH_SESSION_SECRET", "default_session_secret"),
			SessionExpiry: getEnvAsTimeDuration("AUTH_SESSION_EXPIRY", 7*24*time.Hour),
		},
		RateLimit: &structs.RateLimitConfig{
			Enabled:         getEnvAsBool("RATE_LIMIT_ENABLED", false),
			GeneralLimit:    getEnvAsInt("RATE_LIMIT_GENERAL", 300),
			GeneralWindow:   getEnvAsTimeDuration("RATE_LIMIT_GENERAL_WINDOW", time.Minute),
			ExpensiveLimit:  getEnvAsInt("RATE_LIMIT_EXPENSIVE", 120),
			ExpensiveWindow: getEnvAsTimeDuration("RATE_LIMIT_EXPENSIVE_WINDOW", time.Minute),
			WriteLimit:      getEnvAsInt("RATE_LIMIT_WRITE", 60),
			WriteWindow:     getEnvAsTimeDuration("RATE_LIMIT_WRITE_WINDOW", time.Minute),
		},
		Email: &structs.EmailConfig{
			ApiKey: getEnvAsString("EMAIL_API_KEY", ""),
			From:   getEnvAsString("EMAIL_FROM", "Maroon Shop <orders@maroon.shop>"),
		},
		Broker: &structs.BrokerConfig{
			URL:      getEnvAsString("BROKER_URL", ""),
			Queue:    getEnvAsString("BROKER_QUEUE", "orders.placed"),
			PoolSize: getEnvAsInt("BROKER_POOL_SIZE", 4),
		},
	}
}

func GetLogLevel() string {
	if level, ok := lookupEnv("LOG_LEVEL"); ok && level != "" {
		return level
	}
	if GetConfig().Server.Environment == "production" {
		return "info"
	}
	return "debug"
}

func IsProduction() bool {
	return GetConfig().Server.Environment == "production"
}
