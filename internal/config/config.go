package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates all runtime settings required by the application.
type Config struct {
	AppName     string
	Environment string
	HTTP        HTTPConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Auth        AuthConfig
	Buffer      BufferConfig
	Context     ContextConfig
	Logger      LoggerConfig
	Migrations  MigrationsConfig
}

type HTTPConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	MaxConn      int
}

type DatabaseConfig struct {
	URL             string
	Host            string
	Port            string
	Name            string
	User            string
	Password        string
	MaxOpenConns    int
	MaxIdleConns    int
	MaxConnLifetime time.Duration
	SSLMode         string
}

type RedisConfig struct {
	URL      string
	Password string
	DB       int
}

// AuthConfig drives session issuance and the admin gate.
type AuthConfig struct {
	Secret     string
	Issuer     string
	CookieName string
	// AdminPrefix and AdminAPIPrefix delimit the gated surface.
	AdminPrefix    string
	AdminAPIPrefix string
	LoginPath      string
	// PublicPaths are exempt from the gate so a signed-out operator can
	// still reach the login flow.
	PublicPaths       []string
	TokenTTL          time.Duration
	RefreshWindow     time.Duration
	RevocationRefresh time.Duration
	SecureCookies     bool
}

type BufferConfig struct {
	Path           string
	MaxSize        int
	RetentionHours int
	SyncInterval   time.Duration
	MaxRetry       int
}

type ContextConfig struct {
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

type MigrationsConfig struct {
	Enabled bool
	Path    string
}

// Load reads configuration from environment variables (optionally .env)
// and applies sane defaults so the service can boot in any environment.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	env := getString("APP_ENV", "development")

	cfg := &Config{
		AppName:     getString("APP_NAME", "academy-backend"),
		Environment: env,
		HTTP: HTTPConfig{
			Host:         getString("SERVER_HOST", "0.0.0.0"),
			Port:         getString("SERVER_PORT", "8080"),
			ReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
			MaxConn:      getInt("SERVER_MAX_CONN", 0),
		},
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			Host:            getString("DB_HOST", "localhost"),
			Port:            getString("DB_PORT", "5432"),
			Name:            getString("DB_NAME", "academy_db"),
			User:            getString("DB_USER", "academy_user"),
			Password:        os.Getenv("DB_PASSWORD"),
			MaxOpenConns:    getInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getInt("DB_MAX_IDLE_CONNS", 10),
			MaxConnLifetime: getDuration("DB_CONN_LIFETIME", time.Hour),
			SSLMode:         getString("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getString("REDIS_URL", "redis://localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getInt("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			Secret:         os.Getenv("SESSION_SECRET"),
			Issuer:         getString("SESSION_ISSUER", "academy-backend"),
			CookieName:     getString("SESSION_COOKIE_NAME", "admin_session"),
			AdminPrefix:    getString("ADMIN_PAGE_PREFIX", "/admin"),
			AdminAPIPrefix: getString("ADMIN_API_PREFIX", "/api/admin"),
			LoginPath:      getString("ADMIN_LOGIN_PATH", "/admin/login"),
			PublicPaths: getStrings("ADMIN_PUBLIC_PATHS",
				"/admin/login",
				"/admin/unauthorized",
				"/api/admin/auth/login",
				"/api/admin/auth/refresh",
				"/api/admin/auth/logout",
			),
			TokenTTL:          getDuration("SESSION_TOKEN_TTL", time.Hour),
			RefreshWindow:     getDuration("SESSION_REFRESH_WINDOW", 24*time.Hour),
			RevocationRefresh: getDuration("REVOCATION_REFRESH_INTERVAL", 30*time.Second),
			SecureCookies:     getBool("SESSION_SECURE_COOKIES", env != "development"),
		},
		Buffer: BufferConfig{
			Path:           getString("BOLTDB_PATH", "./data/buffer.db"),
			MaxSize:        getInt("BUFFER_MAX_SIZE", 1_000_000),
			RetentionHours: getInt("BUFFER_RETENTION_HOURS", 24),
			SyncInterval:   getDuration("SYNC_INTERVAL_SECONDS", 30*time.Second),
			MaxRetry:       getInt("MAX_RETRY_ATTEMPTS", 3),
		},
		Context: ContextConfig{
			RequestTimeout:  getDuration("REQUEST_TIMEOUT_SECONDS", 5*time.Second),
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT_SECONDS", 15*time.Second),
		},
		Logger: LoggerConfig{
			Level:    getString("LOG_LEVEL", "info"),
			Encoding: getString("LOG_ENCODING", "json"),
		},
		Migrations: MigrationsConfig{
			Enabled: getBool("RUN_MIGRATIONS", true),
			Path:    getString("MIGRATIONS_PATH", "./assets/migrations"),
		},
	}

	if cfg.Database.URL == "" {
		cfg.Database.URL = buildPostgresURL(cfg)
	}
	if cfg.Auth.Secret == "" {
		return nil, fmt.Errorf("config: SESSION_SECRET is required")
	}

	return cfg, nil
}

// MustLoad panics if configuration cannot be loaded.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func buildPostgresURL(cfg *Config) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.Name,
		cfg.Database.SSLMode,
	)
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getStrings(key string, fallback ...string) []string {
	if val := os.Getenv(key); val != "" {
		parts := strings.Split(val, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}

// Address returns the HTTP listen address for the fasthttp server.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%s", c.HTTP.Host, c.HTTP.Port)
}
