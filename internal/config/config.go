package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin123"
)

type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Database DatabaseConfig
	Admin    AdminConfig
	External ExternalConfig
	Email    EmailConfig
}

type ServerConfig struct {
	Port           string
	Env            string
	LogLevel       string
	AllowedOrigins []string
	TrustedProxies []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
}

// StoreConfig selects the backend holding per-browser-session guard records.
type StoreConfig struct {
	Driver          string // "memory", "sqlite" or "postgres"
	SQLitePath      string
	ScopeIdleTTL    time.Duration
	CleanupInterval time.Duration
	CookieSecure    bool
}

type DatabaseConfig struct {
	Host              string
	Port              int
	User              string
	Password          string
	Name              string
	SSLMode           string
	MaxConns          int32
	MinConns          int32
	MaxConnLifetime   time.Duration
	MaxConnIdleTime   time.Duration
	HealthCheckPeriod time.Duration
}

// AdminConfig configures the observatory guard.
type AdminConfig struct {
	Username            string
	Password            string
	PasswordHash        string // bcrypt; takes precedence over Password when set
	MaxAttempts         int
	LockDuration        time.Duration
	SessionTimeout      time.Duration
	RoutePrefix         string
	LoginRequestsPerMin int
	TimingDelayBaseMs   int
	TimingDelayRandomMs int
}

type ExternalConfig struct {
	GitHubUser      string
	CredlyUser      string
	MediumUser      string
	GitHubBaseURL   string
	CredlyBaseURL   string
	RSSProxyURL     string
	Timeout         time.Duration
	RefreshInterval time.Duration
}

type EmailConfig struct {
	Enabled     bool
	AWSRegion   string
	FromAddress string
	ToAddress   string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	env := getEnv("ENV", "development")

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			Env:            env,
			LogLevel:       getEnv("LOG_LEVEL", "info"),
			AllowedOrigins: parseAllowedOrigins(env),
			TrustedProxies: parseList(getEnv("TRUSTED_PROXIES", "")),
			ReadTimeout:    getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:   getEnvAsDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:    getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Store: StoreConfig{
			Driver:          strings.ToLower(getEnv("STORE_DRIVER", "memory")),
			SQLitePath:      getEnv("SQLITE_PATH", "portfolio.db"),
			ScopeIdleTTL:    getEnvAsDuration("SCOPE_IDLE_TTL", 24*time.Hour),
			CleanupInterval: getEnvAsDuration("SCOPE_CLEANUP_INTERVAL", 1*time.Hour),
			CookieSecure:    getEnvAsBool("COOKIE_SECURE", env == "production"),
		},
		Database: DatabaseConfig{
			Host:              getEnv("DB_HOST", "localhost"),
			Port:              getEnvAsInt("DB_PORT", 5432),
			User:              getEnv("DB_USER", "postgres"),
			Password:          getEnv("DB_PASSWORD", ""),
			Name:              getEnv("DB_NAME", "portfolio"),
			SSLMode:           getEnv("DB_SSLMODE", "disable"),
			MaxConns:          int32(getEnvAsInt("DB_MAX_CONNS", 10)),
			MinConns:          int32(getEnvAsInt("DB_MIN_CONNS", 2)),
			MaxConnLifetime:   getEnvAsDuration("DB_MAX_CONN_LIFETIME", 5*time.Minute),
			MaxConnIdleTime:   getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 1*time.Minute),
			HealthCheckPeriod: getEnvAsDuration("DB_HEALTH_CHECK_PERIOD", 1*time.Minute),
		},
		Admin: AdminConfig{
			Username:            getEnv("ADMIN_USERNAME", defaultAdminUsername),
			Password:            getEnv("ADMIN_PASSWORD", defaultAdminPassword),
			PasswordHash:        getEnv("ADMIN_PASSWORD_HASH", ""),
			MaxAttempts:         getEnvAsInt("ADMIN_MAX_ATTEMPTS", 5),
			LockDuration:        getEnvAsDuration("ADMIN_LOCK_DURATION", 15*time.Minute),
			SessionTimeout:      getEnvAsDuration("ADMIN_SESSION_TIMEOUT", 30*time.Minute),
			RoutePrefix:         normalizePrefix(getEnv("ADMIN_ROUTE_PREFIX", "/observatory-9x7k2m")),
			LoginRequestsPerMin: getEnvAsInt("ADMIN_LOGIN_REQUESTS_PER_MINUTE", 10),
			TimingDelayBaseMs:   getEnvAsInt("ADMIN_TIMING_DELAY_BASE_MS", 250),
			TimingDelayRandomMs: getEnvAsInt("ADMIN_TIMING_DELAY_RANDOM_MS", 150),
		},
		External: ExternalConfig{
			GitHubUser:      getEnv("GITHUB_USER", "ABHIJATSARARI"),
			CredlyUser:      getEnv("CREDLY_USER", "abhijatsarari"),
			MediumUser:      getEnv("MEDIUM_USER", "AbhijatSarari"),
			GitHubBaseURL:   getEnv("GITHUB_API_URL", "https://api.github.com"),
			CredlyBaseURL:   getEnv("CREDLY_URL", "https://www.credly.com"),
			RSSProxyURL:     getEnv("RSS_PROXY_URL", "https://api.rss2json.com/v1/api.json"),
			Timeout:         getEnvAsDuration("EXTERNAL_TIMEOUT", 5*time.Second),
			RefreshInterval: getEnvAsDuration("EXTERNAL_REFRESH_INTERVAL", 30*time.Minute),
		},
		Email: EmailConfig{
			Enabled:     getEnvAsBool("CONTACT_EMAIL_ENABLED", false),
			AWSRegion:   getEnv("AWS_REGION", "us-east-1"),
			FromAddress: getEnv("CONTACT_FROM_ADDRESS", ""),
			ToAddress:   getEnv("CONTACT_TO_ADDRESS", ""),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case "memory", "sqlite":
	case "postgres":
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required when STORE_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q (want memory, sqlite or postgres)", c.Store.Driver)
	}

	if err := validateAdminCredentials(&c.Admin, c.Server.Env); err != nil {
		return err
	}

	if c.Admin.MaxAttempts < 1 {
		return fmt.Errorf("ADMIN_MAX_ATTEMPTS must be at least 1")
	}
	if c.Admin.LockDuration <= 0 || c.Admin.SessionTimeout <= 0 {
		return fmt.Errorf("ADMIN_LOCK_DURATION and ADMIN_SESSION_TIMEOUT must be positive")
	}

	// Purging a scope while it still holds a live lock or session would reset the guard.
	if c.Store.ScopeIdleTTL < c.Admin.LockDuration || c.Store.ScopeIdleTTL < c.Admin.SessionTimeout {
		return fmt.Errorf("SCOPE_IDLE_TTL (%s) must not be shorter than the lock duration or session timeout",
			c.Store.ScopeIdleTTL)
	}

	if c.Email.Enabled && (c.Email.FromAddress == "" || c.Email.ToAddress == "") {
		return fmt.Errorf("CONTACT_FROM_ADDRESS and CONTACT_TO_ADDRESS are required when contact email is enabled")
	}

	return nil
}

// validateAdminCredentials refuses the development defaults outside development.
func validateAdminCredentials(admin *AdminConfig, env string) error {
	if admin.Username == "" {
		return fmt.Errorf("ADMIN_USERNAME cannot be empty")
	}
	if admin.Password == "" && admin.PasswordHash == "" {
		return fmt.Errorf("ADMIN_PASSWORD or ADMIN_PASSWORD_HASH is required")
	}

	if env == "production" && admin.PasswordHash == "" && admin.Password == defaultAdminPassword {
		return fmt.Errorf("ADMIN_PASSWORD must be changed from the development default in production")
	}

	return nil
}

// UsesDefaultCredentials reports whether the guard still runs on the development defaults.
func (a *AdminConfig) UsesDefaultCredentials() bool {
	return a.PasswordHash == "" && a.Username == defaultAdminUsername && a.Password == defaultAdminPassword
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultVal
}

func normalizePrefix(prefix string) string {
	prefix = "/" + strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix == "/" {
		return "/observatory-9x7k2m"
	}
	return prefix
}

func parseList(raw string) []string {
	if raw == "" {
		return []string{}
	}
	items := strings.Split(raw, ",")
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func parseAllowedOrigins(env string) []string {
	if env == "production" {
		return parseList(getEnv("ALLOWED_ORIGINS", ""))
	}

	// Development: allow localhost variants
	return []string{
		"http://localhost:3000",
		"http://localhost:8080",
		"http://localhost:5173", // Vite default
		"http://127.0.0.1:3000",
		"http://127.0.0.1:8080",
		"http://127.0.0.1:5173",
	}
}
