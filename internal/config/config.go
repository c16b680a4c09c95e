// internal/config/config.go
package config

import (
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Monitor  MonitorConfig
	Deal     DealConfig
	Reports  ReportsConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type CacheConfig struct {
	Enabled         bool
	RedisURL        string
	RedisHost       string
	RedisPort       string
	RedisPassword   string
	RedisDB         int
	AlertTTLSeconds int
}

// MonitorConfig tunes the periodic stock monitor.
type MonitorConfig struct {
	IntervalMinutes       int
	LeadTimeDays          int
	DedupWindowHours      int
	AlertRetentionDays    int
	AnalysisRetentionDays int
	LocationWorkers       int
}

// DealConfig tunes the deal scorer's travel model.
type DealConfig struct {
	AverageSpeedKmh float64
	CostPerKm       float64
}

// ReportsConfig configures the optional object-storage archive for monitor run reports.
type ReportsConfig struct {
	Enabled   bool
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		// Set default values
		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_READ_TIMEOUT", 15)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 15)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
		viper.SetDefault("DB_HOST", "localhost")
		viper.SetDefault("DB_PORT", "5432")
		viper.SetDefault("DB_USER", "postgres")
		viper.SetDefault("DB_PASSWORD", "postgres")
		viper.SetDefault("DB_NAME", "precivox")
		viper.SetDefault("DB_SSLMODE", "disable")
		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_ALERT_TTL_SECONDS", 60)
		viper.SetDefault("MONITOR_INTERVAL_MINUTES", 30)
		viper.SetDefault("MONITOR_LEAD_TIME_DAYS", 5)
		viper.SetDefault("MONITOR_DEDUP_WINDOW_HOURS", 24)
		viper.SetDefault("MONITOR_ALERT_RETENTION_DAYS", 7)
		viper.SetDefault("MONITOR_ANALYSIS_RETENTION_DAYS", 30)
		viper.SetDefault("MONITOR_LOCATION_WORKERS", 4)
		viper.SetDefault("DEAL_AVERAGE_SPEED_KMH", 30.0)
		viper.SetDefault("DEAL_COST_PER_KM", 0.50)
		viper.SetDefault("REPORTS_ENABLED", false)
		viper.SetDefault("REPORTS_ENDPOINT", "")
		viper.SetDefault("REPORTS_ACCESS_KEY", "")
		viper.SetDefault("REPORTS_SECRET_KEY", "")
		viper.SetDefault("REPORTS_BUCKET", "monitor-reports")
		viper.SetDefault("REPORTS_USE_SSL", true)

		// Read from environment variables
		viper.AutomaticEnv()

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			Database: DatabaseConfig{
				Host:     viper.GetString("DB_HOST"),
				Port:     viper.GetString("DB_PORT"),
				User:     viper.GetString("DB_USER"),
				Password: viper.GetString("DB_PASSWORD"),
				DBName:   viper.GetString("DB_NAME"),
				SSLMode:  viper.GetString("DB_SSLMODE"),
			},
			Cache: CacheConfig{
				Enabled:         viper.GetBool("CACHE_ENABLED"),
				RedisURL:        viper.GetString("REDIS_URL"),
				RedisHost:       viper.GetString("REDIS_HOST"),
				RedisPort:       viper.GetString("REDIS_PORT"),
				RedisPassword:   viper.GetString("REDIS_PASSWORD"),
				RedisDB:         viper.GetInt("REDIS_DB"),
				AlertTTLSeconds: viper.GetInt("CACHE_ALERT_TTL_SECONDS"),
			},
			Monitor: MonitorConfig{
				IntervalMinutes:       viper.GetInt("MONITOR_INTERVAL_MINUTES"),
				LeadTimeDays:          viper.GetInt("MONITOR_LEAD_TIME_DAYS"),
				DedupWindowHours:      viper.GetInt("MONITOR_DEDUP_WINDOW_HOURS"),
				AlertRetentionDays:    viper.GetInt("MONITOR_ALERT_RETENTION_DAYS"),
				AnalysisRetentionDays: viper.GetInt("MONITOR_ANALYSIS_RETENTION_DAYS"),
				LocationWorkers:       viper.GetInt("MONITOR_LOCATION_WORKERS"),
			},
			Deal: DealConfig{
				AverageSpeedKmh: viper.GetFloat64("DEAL_AVERAGE_SPEED_KMH"),
				CostPerKm:       viper.GetFloat64("DEAL_COST_PER_KM"),
			},
			Reports: ReportsConfig{
				Enabled:   viper.GetBool("REPORTS_ENABLED"),
				Endpoint:  viper.GetString("REPORTS_ENDPOINT"),
				AccessKey: viper.GetString("REPORTS_ACCESS_KEY"),
				SecretKey: viper.GetString("REPORTS_SECRET_KEY"),
				Bucket:    viper.GetString("REPORTS_BUCKET"),
				UseSSL:    viper.GetBool("REPORTS_USE_SSL"),
			},
		}
	})

	return instance
}

// Interval returns the monitor cadence as a duration.
func (m MonitorConfig) Interval() time.Duration {
	return time.Duration(m.IntervalMinutes) * time.Minute
}

// DedupWindow returns the alert deduplication window as a duration.
func (m MonitorConfig) DedupWindow() time.Duration {
	return time.Duration(m.DedupWindowHours) * time.Hour
}
