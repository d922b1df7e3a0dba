package internal

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env           string              `mapstructure:"env" validate:"omitempty,oneof=development test staging production"`
	Server        ServerConfig        `mapstructure:"http_server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Security      SecurityConfig      `mapstructure:"security"`
	Identity      IdentityConfig      `mapstructure:"identity"`
	Workforce     WorkforceConfig     `mapstructure:"workforce"`
	Slack         SlackConfig         `mapstructure:"slack"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

type ServerConfig struct {
	Port              int           `mapstructure:"port" validate:"required,min=1,max=65535"`
	BaseURL           string        `mapstructure:"base_url"`
	AllowedOrigins    string        `mapstructure:"allowed_origins"`
	OpenAPIPath       string        `mapstructure:"openapi_path"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"required,min=1"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"required,min=1"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" validate:"required,min=1m"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time" validate:"required,min=1m"`
	Source          string        `mapstructure:"source" validate:"required"`
}

type SecurityConfig struct {
	JWTAccessSecret      string        `mapstructure:"jwt_access_secret"`
	JWTRefreshSecret     string        `mapstructure:"jwt_refresh_secret"`
	AccessTokenDuration  time.Duration `mapstructure:"access_token_duration" validate:"required,min=1m,max=1h"`
	RefreshTokenDuration time.Duration `mapstructure:"refresh_token_duration" validate:"required,min=1h"`
	BCryptCost           int           `mapstructure:"bcrypt_cost" validate:"required,min=10,max=15"`
}

// IdentityConfig selects who owns credentials: the service itself ("local")
// or Firebase Authentication ("firebase").
type IdentityConfig struct {
	Provider                string `mapstructure:"provider" validate:"required,oneof=local firebase"`
	FirebaseProjectID       string `mapstructure:"firebase_project_id"`
	FirebaseCredentialsFile string `mapstructure:"firebase_credentials_file"`
}

type WorkforceConfig struct {
	Timezone               string        `mapstructure:"timezone"`
	NotificationInterval   time.Duration `mapstructure:"notification_interval" validate:"min=0"`
	NotificationRetention  time.Duration `mapstructure:"notification_retention" validate:"min=0"`
	NotificationMaxEntries int           `mapstructure:"notification_max_entries" validate:"min=0"`
	ChecklistTemplatesFile string        `mapstructure:"checklist_templates_file"`
	EventWorkers           int           `mapstructure:"event_workers" validate:"min=0,max=256"`
}

type SlackConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	BotToken    string `mapstructure:"bot_token" validate:"required_if=Enabled true"`
	ChannelID   string `mapstructure:"channel_id" validate:"required_if=Enabled true"`
	MinPriority string `mapstructure:"min_priority" validate:"omitempty,oneof=low medium high"`
}

type ObservabilityConfig struct {
	Logging LoggingConfig `mapstructure:"logging"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"omitempty,oneof=json text"`
}

const (
	DefaultTimezone               = "UTC"
	DefaultNotificationInterval   = time.Minute
	DefaultNotificationRetention  = 24 * time.Hour
	DefaultNotificationMaxEntries = 200
	DefaultEventWorkers           = 8
)

// ApplyDefaults fills optional settings that were left empty.
func (c *Config) ApplyDefaults() {
	if c.Env == "" {
		c.Env = "development"
	}
	if c.Identity.Provider == "" {
		c.Identity.Provider = "local"
	}
	if c.Workforce.Timezone == "" {
		c.Workforce.Timezone = DefaultTimezone
	}
	if c.Workforce.NotificationInterval == 0 {
		c.Workforce.NotificationInterval = DefaultNotificationInterval
	}
	if c.Workforce.NotificationRetention == 0 {
		c.Workforce.NotificationRetention = DefaultNotificationRetention
	}
	if c.Workforce.NotificationMaxEntries == 0 {
		c.Workforce.NotificationMaxEntries = DefaultNotificationMaxEntries
	}
	if c.Workforce.EventWorkers == 0 {
		c.Workforce.EventWorkers = DefaultEventWorkers
	}
	if c.Slack.MinPriority == "" {
		c.Slack.MinPriority = "high"
	}
	if c.Server.OpenAPIPath == "" {
		c.Server.OpenAPIPath = "./api/openapi.yml"
	}
}

// LoadConfigFromEnv builds the configuration purely from environment variables.
func LoadConfigFromEnv() *Config {
	cfg := &Config{
		Env: getEnv("APP_ENV", "production"),
		Server: ServerConfig{
			Port:              getEnvAsInt("HTTP_PORT", 8080),
			BaseURL:           getEnv("HTTP_BASE_URL", ""),
			AllowedOrigins:    getEnv("HTTP_ALLOWED_ORIGINS", "*"),
			OpenAPIPath:       getEnv("HTTP_OPENAPI_PATH", "./api/openapi.yml"),
			ReadHeaderTimeout: getEnvAsDuration("HTTP_READ_HEADER_TIMEOUT", 5*time.Second),
			ReadTimeout:       getEnvAsDuration("HTTP_READ_TIMEOUT", 15*time.Second),
			IdleTimeout:       getEnvAsDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
			WriteTimeout:      getEnvAsDuration("HTTP_WRITE_TIMEOUT", 15*time.Second),
		},
		Database: DatabaseConfig{
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			ConnMaxIdleTime: getEnvAsDuration("DB_CONN_MAX_IDLE_TIME", 5*time.Minute),
			Source:          getEnv("DB_SOURCE", ""),
		},
		Security: SecurityConfig{
			JWTAccessSecret:      getEnv("JWT_ACCESS_SECRET", ""),
			JWTRefreshSecret:     getEnv("JWT_REFRESH_SECRET", ""),
			AccessTokenDuration:  getEnvAsDuration("ACCESS_TOKEN_DURATION", 15*time.Minute),
			RefreshTokenDuration: getEnvAsDuration("REFRESH_TOKEN_DURATION", 7*24*time.Hour),
			BCryptCost:           getEnvAsInt("BCRYPT_COST", 12),
		},
		Identity: IdentityConfig{
			Provider:                getEnv("IDENTITY_PROVIDER", "local"),
			FirebaseProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
			FirebaseCredentialsFile: getEnv("FIREBASE_CREDENTIALS_FILE", ""),
		},
		Workforce: WorkforceConfig{
			Timezone:               getEnv("WORKFORCE_TIMEZONE", DefaultTimezone),
			NotificationInterval:   getEnvAsDuration("WORKFORCE_NOTIFICATION_INTERVAL", DefaultNotificationInterval),
			NotificationRetention:  getEnvAsDuration("WORKFORCE_NOTIFICATION_RETENTION", DefaultNotificationRetention),
			NotificationMaxEntries: getEnvAsInt("WORKFORCE_NOTIFICATION_MAX_ENTRIES", DefaultNotificationMaxEntries),
			ChecklistTemplatesFile: getEnv("WORKFORCE_CHECKLIST_TEMPLATES_FILE", ""),
			EventWorkers:           getEnvAsInt("WORKFORCE_EVENT_WORKERS", DefaultEventWorkers),
		},
		Slack: SlackConfig{
			Enabled:     getEnv("SLACK_ENABLED", "false") == "true",
			BotToken:    getEnv("SLACK_BOT_TOKEN", ""),
			ChannelID:   getEnv("SLACK_CHANNEL_ID", ""),
			MinPriority: getEnv("SLACK_MIN_PRIORITY", "high"),
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{
				Level:  getEnv("LOG_LEVEL", "info"),
				Format: getEnv("LOG_FORMAT", "json"),
			},
		},
	}
	cfg.ApplyDefaults()
	return cfg
}

// ----------------- HELPERS -----------------

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

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultVal
}

// ----------------- VALIDATION -----------------

func (c *Config) Validate() error {
	var errs []string

	if err := validator.New().Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				errs = append(errs, fmt.Sprintf("%s failed on %q", fe.Namespace(), fe.Tag()))
			}
		} else {
			errs = append(errs, err.Error())
		}
	}

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("server config: %v", err))
	}

	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("database config: %v", err))
	}

	if c.Identity.Provider == "local" {
		if err := c.Security.Validate(); err != nil {
			errs = append(errs, fmt.Sprintf("security config: %v", err))
		}
	}

	if err := c.Identity.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("identity config: %v", err))
	}

	if _, err := c.Workforce.Location(); err != nil {
		errs = append(errs, fmt.Sprintf("workforce config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *ServerConfig) Validate() error {
	if c.AllowedOrigins != "" {
		origins := strings.Split(c.AllowedOrigins, ",")
		for _, origin := range origins {
			origin = strings.TrimSpace(origin)
			if origin == "*" {
				continue
			}
			if _, err := url.Parse(origin); err != nil {
				return fmt.Errorf("invalid allowed origin %s: %w", origin, err)
			}
		}
	}
	if c.ReadTimeout < c.ReadHeaderTimeout {
		return errors.New("read_timeout must be >= read_header_timeout")
	}
	return nil
}

func (c *DatabaseConfig) Validate() error {
	if c.MaxIdleConns > c.MaxOpenConns {
		return errors.New("max_idle_conns cannot be greater than max_open_conns")
	}
	return nil
}

func (c *DatabaseConfig) GetDSN() string {
	return c.Source
}

func (c *SecurityConfig) Validate() error {
	if len(c.JWTAccessSecret) < 32 {
		return errors.New("jwt_access_secret must be at least 32 characters")
	}
	if len(c.JWTRefreshSecret) < 32 {
		return errors.New("jwt_refresh_secret must be at least 32 characters")
	}
	if c.JWTAccessSecret == c.JWTRefreshSecret {
		return errors.New("access and refresh secrets must differ")
	}
	return nil
}

func (c *IdentityConfig) Validate() error {
	if c.Provider == "firebase" && c.FirebaseCredentialsFile == "" && c.FirebaseProjectID == "" {
		return errors.New("firebase provider needs firebase_credentials_file or firebase_project_id")
	}
	return nil
}

// Location resolves the time zone used to stamp submission dates and hours.
func (c *WorkforceConfig) Location() (*time.Location, error) {
	tz := c.Timezone
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	return loc, nil
}
