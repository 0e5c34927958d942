package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Mongo   MongoConfig
	Redis   RedisConfig
	Auth    AuthConfig
	Session SessionConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=inventory_system"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// AuthConfig selects and configures the identity provider.
type AuthConfig struct {
	// Mode is "oidc" for the hosted identity service, "dev" for a
	// static local identity (development only).
	Mode         string `env:"AUTH_MODE,          default=oidc"`
	IssuerURL    string `env:"OIDC_ISSUER_URL"`
	ClientID     string `env:"OIDC_CLIENT_ID"`
	ClientSecret string `env:"OIDC_CLIENT_SECRET"`
	RedirectURL  string `env:"OIDC_REDIRECT_URL,  default=http://localhost:8080/auth/callback"`
	Scopes       string `env:"OIDC_SCOPES,        default=openid profile email"`

	DevUserID string `env:"DEV_AUTH_USER_ID, default=dev-user"`
	DevEmail  string `env:"DEV_AUTH_EMAIL,   default=dev@soportec.cl"`
	DevName   string `env:"DEV_AUTH_NAME,    default=Dev User"`
}

// SessionConfig holds session cookie and idle-policy settings.
type SessionConfig struct {
	CookieName string        `env:"SESSION_COOKIE, default=session_id"`
	TTL        time.Duration `env:"SESSION_TTL,    default=8h"`
	// IdleTimeout is the total inactivity after which a session is
	// force-logged-out; IdleWarning is the lead time of the warning
	// window before that instant.
	IdleTimeout      time.Duration `env:"SESSION_IDLE_TIMEOUT,      default=30m"`
	IdleWarning      time.Duration `env:"SESSION_IDLE_WARNING,      default=2m"`
	ActivityThrottle time.Duration `env:"SESSION_ACTIVITY_THROTTLE, default=5s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	if cfg.Session.IdleWarning >= cfg.Session.IdleTimeout {
		return nil, fmt.Errorf("SESSION_IDLE_WARNING must be shorter than SESSION_IDLE_TIMEOUT")
	}
	return &cfg, nil
}
