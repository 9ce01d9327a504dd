package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Seed sources for the entity store.
const (
	SeedSourceFixtures = "fixtures"
	SeedSourcePostgres = "postgres"
)

// Mail drivers.
const (
	MailDriverConsole  = "console"
	MailDriverSendGrid = "sendgrid"
)

// Export storage drivers.
const (
	StorageDriverLocal = "local"
	StorageDriverS3    = "s3"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string
	AppName   string

	Seed          SeedConfig
	Database      DatabaseConfig
	Redis         RedisConfig
	CORS          CORSConfig
	Log           LogConfig
	Dashboard     DashboardConfig
	Interventions InterventionConfig
	Toasts        ToastConfig
	Compare       CompareConfig
	TimeTravel    TimeTravelConfig
	Mail          MailConfig
	Exports       ExportsConfig
	Snapshot      SnapshotConfig
	Realtime      RealtimeConfig
}

// SeedConfig selects where the entity collections are loaded from.
type SeedConfig struct {
	Source string
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level        string
	Format       string
	RollbarToken string
}

// DashboardConfig governs overview composition and cache tuning.
type DashboardConfig struct {
	CacheEnabled       bool
	CacheTTL           time.Duration
	AtRiskPreviewLimit int
}

// InterventionConfig tunes the simulated intervention lifecycle.
type InterventionConfig struct {
	CompletionDelay time.Duration
}

// ToastConfig controls toast auto-expiry.
type ToastConfig struct {
	TTL time.Duration
}

// CompareConfig bounds the compare selection.
type CompareConfig struct {
	MaxItems int
}

// TimeTravelConfig controls playback speed.
type TimeTravelConfig struct {
	Interval time.Duration
}

// MailConfig configures outbound intervention emails.
type MailConfig struct {
	Driver         string
	SendGridAPIKey string
	FromName       string
	FromAddress    string
	Workers        int
	Retries        int
}

// ExportsConfig controls export rendering storage and download signing.
type ExportsConfig struct {
	Driver          string
	StorageDir      string
	S3Bucket        string
	S3Region        string
	S3Endpoint      string
	S3PathStyle     bool
	SignedURLSecret string
	SignedURLTTL    time.Duration
}

// SnapshotConfig toggles SQLite snapshots of the mutation stores.
type SnapshotConfig struct {
	Enabled  bool
	Path     string
	Interval time.Duration
}

// RealtimeConfig toggles the websocket event stream.
type RealtimeConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")
	cfg.AppName = v.GetString("APP_NAME")

	cfg.Seed = SeedConfig{Source: strings.ToLower(v.GetString("SEED_SOURCE"))}

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:        v.GetString("LOG_LEVEL"),
		Format:       v.GetString("LOG_FORMAT"),
		RollbarToken: v.GetString("ROLLBAR_TOKEN"),
	}

	cfg.Dashboard = DashboardConfig{
		CacheEnabled:       v.GetBool("ENABLE_CACHE"),
		CacheTTL:           parseDuration(v.GetString("DASHBOARD_CACHE_TTL"), 5*time.Minute),
		AtRiskPreviewLimit: v.GetInt("AT_RISK_PREVIEW_LIMIT"),
	}

	cfg.Interventions = InterventionConfig{
		CompletionDelay: parseDuration(v.GetString("INTERVENTION_COMPLETION_DELAY"), 2*time.Second),
	}

	cfg.Toasts = ToastConfig{
		TTL: parseDuration(v.GetString("TOAST_TTL"), 5*time.Second),
	}

	cfg.Compare = CompareConfig{MaxItems: v.GetInt("COMPARE_MAX_ITEMS")}

	cfg.TimeTravel = TimeTravelConfig{
		Interval: parseDuration(v.GetString("TIME_TRAVEL_INTERVAL"), 1500*time.Millisecond),
	}

	cfg.Mail = MailConfig{
		Driver:         strings.ToLower(v.GetString("MAIL_DRIVER")),
		SendGridAPIKey: v.GetString("SENDGRID_API_KEY"),
		FromName:       v.GetString("MAIL_FROM_NAME"),
		FromAddress:    v.GetString("MAIL_FROM_ADDRESS"),
		Workers:        v.GetInt("MAIL_WORKERS"),
		Retries:        v.GetInt("MAIL_RETRIES"),
	}

	cfg.Exports = ExportsConfig{
		Driver:          strings.ToLower(v.GetString("EXPORTS_DRIVER")),
		StorageDir:      v.GetString("EXPORTS_STORAGE_DIR"),
		S3Bucket:        v.GetString("EXPORTS_S3_BUCKET"),
		S3Region:        v.GetString("EXPORTS_S3_REGION"),
		S3Endpoint:      v.GetString("EXPORTS_S3_ENDPOINT"),
		S3PathStyle:     v.GetBool("EXPORTS_S3_PATH_STYLE"),
		SignedURLSecret: v.GetString("EXPORTS_SIGNED_URL_SECRET"),
		SignedURLTTL:    parseDuration(v.GetString("EXPORTS_SIGNED_URL_TTL"), time.Hour),
	}

	cfg.Snapshot = SnapshotConfig{
		Enabled:  v.GetBool("SNAPSHOT_ENABLED"),
		Path:     v.GetString("SNAPSHOT_PATH"),
		Interval: parseDuration(v.GetString("SNAPSHOT_INTERVAL"), 30*time.Second),
	}

	cfg.Realtime = RealtimeConfig{Enabled: v.GetBool("ENABLE_REALTIME")}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")
	v.SetDefault("APP_NAME", "District Dashboard")

	v.SetDefault("SEED_SOURCE", SeedSourceFixtures)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "district_dashboard")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("ROLLBAR_TOKEN", "")

	v.SetDefault("ENABLE_CACHE", false)
	v.SetDefault("DASHBOARD_CACHE_TTL", "5m")
	v.SetDefault("AT_RISK_PREVIEW_LIMIT", 5)

	v.SetDefault("INTERVENTION_COMPLETION_DELAY", "2s")
	v.SetDefault("TOAST_TTL", "5s")
	v.SetDefault("COMPARE_MAX_ITEMS", 3)
	v.SetDefault("TIME_TRAVEL_INTERVAL", "1500ms")

	v.SetDefault("MAIL_DRIVER", MailDriverConsole)
	v.SetDefault("SENDGRID_API_KEY", "")
	v.SetDefault("MAIL_FROM_NAME", "District Office")
	v.SetDefault("MAIL_FROM_ADDRESS", "noreply@district.local")
	v.SetDefault("MAIL_WORKERS", 2)
	v.SetDefault("MAIL_RETRIES", 3)

	v.SetDefault("EXPORTS_DRIVER", StorageDriverLocal)
	v.SetDefault("EXPORTS_STORAGE_DIR", "./exports")
	v.SetDefault("EXPORTS_S3_BUCKET", "")
	v.SetDefault("EXPORTS_S3_REGION", "us-east-1")
	v.SetDefault("EXPORTS_S3_ENDPOINT", "")
	v.SetDefault("EXPORTS_S3_PATH_STYLE", false)
	v.SetDefault("EXPORTS_SIGNED_URL_SECRET", "dev_exports_secret")
	v.SetDefault("EXPORTS_SIGNED_URL_TTL", "1h")

	v.SetDefault("SNAPSHOT_ENABLED", false)
	v.SetDefault("SNAPSHOT_PATH", "./data/dashboard.db")
	v.SetDefault("SNAPSHOT_INTERVAL", "30s")

	v.SetDefault("ENABLE_REALTIME", true)
}

func isMissingFile(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
