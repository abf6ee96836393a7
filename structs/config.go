package structs

import "time"

type Config struct {
	Server    *ServerConfig
	Web       *WebConfig
	Cors      *CorsConfig
	Database  *DatabaseConfig
	Cache     *CacheConfig
	Auth      *AuthConfig
	RateLimit *RateLimitConfig
	Email     *EmailConfig
	Broker    *BrokerConfig
}

type ServerConfig struct {
	AppName        string        // Maroon Shop
	Environment    string        // development, production
	Port           string        // :8080
	PublicURL      string        // used when a link must be built outside a request
	ReadTimeout    time.Duration // in seconds
	WriteTimeout   time.Duration // in seconds
	IdleTimeout    time.Duration // in seconds
	MaxHeaderBytes int           // in bytes
	MaxBodyBytes   int64
}

type WebConfig struct {
	Port          string // :8081
	APIBaseURL    string // http://localhost:8080
	CookieName    string
	CookieDomain  string
	ClientTimeout time.Duration
}

type CorsConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

type DatabaseConfig struct {
	Driver       string // pg, pgx, sqlite
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SQLitePath   string
	MaxConns     int
	MinConns     int
	MaxLifetime  time.Duration
	MaxIdleTime  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type CacheConfig struct {
	Enabled         bool
	Address         string
	Username        string
	Password        string
	DB              int
	PoolSize        int
	MinIdleConns    int
	MaxIdleConns    int
	PoolTimeout     time.Duration
	IdleTimeout     time.Duration
	DialTimeout     time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	MaxRetries      int
	MinRetryBackoff time.Duration
	MaxRetryBackoff time.Duration
	ProductTTL      time.Duration
}

type AuthConfig struct {
	SessionSecret string
	SessionExpiry time.Duration
}

type RateLimitConfig struct {
	Enabled         bool
	GeneralLimit    int
	GeneralWindow   time.Duration
	ExpensiveLimit  int
	ExpensiveWindow time.Duration
	WriteLimit      int
	WriteWindow     time.Duration
}

type EmailConfig struct {
	ApiKey string
	From   string
}

type BrokerConfig struct {
	URL      string
	Queue    string
	PoolSize int
}
