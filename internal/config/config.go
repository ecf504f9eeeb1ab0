package config

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/imanage/imanage-api/internal/secrets"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	ApiKey    ApiKeyConfig
	Storage   StorageConfig
	Secrets   SecretsConfig
	Logging   LoggingConfig
	Server    ServerConfig
	CORS      CORSConfig
	Security  SecurityConfig
	RateLimit RateLimitConfig
	Backup    BackupConfig
}

type AppConfig struct {
	Name        string
	Environment string
	Port        int
}

// DatabaseConfig describes the local SQLite file
type DatabaseConfig struct {
	// Path is the SQLite file location, relative to the working directory unless absolute
	Path string
	// UserDataDir is set by the desktop shell in packaged builds and overrides Path's directory
	UserDataDir   string
	BusyTimeoutMS int
	JournalMode   string
	MaxOpenConns  int
}

type ApiKeyConfig struct {
	Value string // Empty disables API key enforcement
}

type StorageConfig struct {
	// Mode is one of "local", "azure" or "gcs"
	Mode                  string
	LocalBasePath         string
	CloudConnectionString string
	CloudContainer        string
	GCSBucket             string
	GCSCredentialsJSON    string
	MaxUploadSizeMB       int64
}

type SecretsConfig struct {
	// Source determines where secrets are loaded from: "environment", "vault", or "auto"
	Source       string
	KeyVaultName string
	CacheEnabled bool
	CacheTTL     int // seconds
}

type LoggingConfig struct {
	Level  string
	Format string
}

type ServerConfig struct {
	ReadTimeout    int
	WriteTimeout   int
	RequestTimeout int
	EnableSwagger  bool
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// SecurityConfig holds security header configuration
type SecurityConfig struct {
	ContentSecurityPolicy string
	FrameOptions          string
	ContentTypeNosniff    bool
	ReferrerPolicy        string
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled           bool
	RequestsPerMinute int
	WhitelistIPs      []string
	WhitelistPaths    []string
}

// BackupConfig controls the periodic database snapshot job
type BackupConfig struct {
	Enabled bool
	// Cron uses the six-field format with seconds, e.g. "0 0 2 * * *"
	Cron string
	// Prefix is prepended to snapshot object names
	Prefix string
}

// FilePath resolves the SQLite file location
func (d *DatabaseConfig) FilePath() string {
	if d.Path == ":memory:" {
		return d.Path
	}
	if d.UserDataDir != "" {
		return filepath.Join(d.UserDataDir, filepath.Base(d.Path))
	}
	return d.Path
}

// DSN builds the go-sqlite3 connection string with foreign keys enabled
func (d *DatabaseConfig) DSN() string {
	params := fmt.Sprintf("_foreign_keys=on&_busy_timeout=%d", d.BusyTimeoutMS)
	if d.JournalMode != "" && d.Path != ":memory:" {
		params += "&_journal_mode=" + d.JournalMode
	}
	if d.Path == ":memory:" {
		return "file::memory:?" + params
	}
	return "file:" + d.FilePath() + "?" + params
}

// ReadTimeoutDuration returns read timeout as duration
func (s *ServerConfig) ReadTimeoutDuration() time.Duration {
	return time.Duration(s.ReadTimeout) * time.Second
}

// WriteTimeoutDuration returns write timeout as duration
func (s *ServerConfig) WriteTimeoutDuration() time.Duration {
	return time.Duration(s.WriteTimeout) * time.Second
}

// RequestTimeoutDuration returns request timeout as duration
func (s *ServerConfig) RequestTimeoutDuration() time.Duration {
	return time.Duration(s.RequestTimeout) * time.Second
}

// Load loads configuration from file and environment variables.
// Secrets for cloud storage are resolved separately by LoadWithSecrets.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables override config file
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.ApiKey.Value == "" {
		cfg.ApiKey.Value = v.GetString("IMANAGE_API_KEY")
	}

	// Packaged desktop builds keep the database in the OS user-data directory
	if cfg.Database.UserDataDir == "" {
		cfg.Database.UserDataDir = v.GetString("IMANAGE_USER_DATA_DIR")
	}

	if cfg.Secrets.KeyVaultName == "" {
		cfg.Secrets.KeyVaultName = v.GetString("AZURE_KEY_VAULT_NAME")
	}

	return &cfg, nil
}

// LoadWithSecrets loads configuration and resolves cloud storage credentials
// from the configured secret source. Local storage needs no secrets, so the
// provider is only consulted for the azure and gcs storage modes.
func LoadWithSecrets(ctx context.Context, logger *zap.Logger) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	if cfg.Storage.Mode == "local" || cfg.Storage.Mode == "" {
		return cfg, nil
	}

	provider, err := secrets.NewProvider(&secrets.ProviderConfig{
		Source:       secrets.SecretSource(cfg.Secrets.Source),
		VaultName:    cfg.Secrets.KeyVaultName,
		Environment:  cfg.App.Environment,
		CacheEnabled: cfg.Secrets.CacheEnabled,
		CacheTTL:     time.Duration(cfg.Secrets.CacheTTL) * time.Second,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize secrets provider: %w", err)
	}

	switch cfg.Storage.Mode {
	case "azure", "cloud":
		if cfg.Storage.CloudConnectionString == "" {
			connStr, err := provider.GetSecretOrEnv(ctx, "storage-connection-string", "STORAGE_CLOUDCONNECTIONSTRING")
			if err != nil {
				return nil, fmt.Errorf("azure storage requires a connection string: %w", err)
			}
			cfg.Storage.CloudConnectionString = connStr
		}
	case "gcs":
		if cfg.Storage.GCSCredentialsJSON == "" {
			// Application default credentials are used when no JSON is configured
			cfg.Storage.GCSCredentialsJSON = provider.GetSecretOrEnvWithDefault(ctx, "gcs-credentials-json", "GCS_CREDENTIALS_JSON", "")
		}
	}

	logger.Info("Storage secrets resolved",
		zap.String("storage_mode", cfg.Storage.Mode),
		zap.String("secret_source", string(provider.Source())),
	)
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "iManage")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.port", 3001)

	v.SetDefault("database.path", filepath.Join("data", "imanage.db"))
	v.SetDefault("database.busyTimeoutMS", 5000)
	v.SetDefault("database.journalMode", "WAL")
	v.SetDefault("database.maxOpenConns", 1)

	v.SetDefault("secrets.source", "auto")
	v.SetDefault("secrets.cacheEnabled", true)
	v.SetDefault("secrets.cacheTTL", 300)

	v.SetDefault("storage.mode", "local")
	v.SetDefault("storage.localBasePath", filepath.Join("data", "files"))
	v.SetDefault("storage.cloudContainer", "imanage")
	v.SetDefault("storage.maxUploadSizeMB", 5)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("server.readTimeout", 30)
	v.SetDefault("server.writeTimeout", 30)
	v.SetDefault("server.requestTimeout", 60)
	v.SetDefault("server.enableSwagger", true)

	// The renderer runs on the Next.js dev server in development
	v.SetDefault("cors.allowedOrigins", []string{"http://localhost:3000"})
	v.SetDefault("cors.allowedMethods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowedHeaders", []string{"Accept", "Content-Type", "X-API-Key", "X-Request-ID"})
	v.SetDefault("cors.exposedHeaders", []string{"Location", "X-Request-ID"})
	v.SetDefault("cors.allowCredentials", false)
	v.SetDefault("cors.maxAge", 300)

	v.SetDefault("security.contentSecurityPolicy", "default-src 'self'")
	v.SetDefault("security.frameOptions", "DENY")
	v.SetDefault("security.contentTypeNosniff", true)
	v.SetDefault("security.referrerPolicy", "strict-origin-when-cross-origin")

	v.SetDefault("rateLimit.enabled", false)
	v.SetDefault("rateLimit.requestsPerMinute", 600)
	v.SetDefault("rateLimit.whitelistIPs", []string{"127.0.0.1", "::1"})
	v.SetDefault("rateLimit.whitelistPaths", []string{"/health", "/health/db"})

	v.SetDefault("backup.enabled", false)
	v.SetDefault("backup.cron", "0 0 2 * * *")
	v.SetDefault("backup.prefix", "backups")
}
