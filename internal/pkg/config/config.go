package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server   ServerConfig
	DB       DBConfig
	Redis    RedisConfig
	CORS     CORSConfig
	Log      LogConfig
	JWT      JWTConfig
	Dispatch DispatchConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
}

type RedisConfig struct {
	URL string `envconfig:"REDIS_URL" default:"redis://127.0.0.1:6379"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,Correlation-Key"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Retry-After"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

// DispatchConfig tunes the orchestrator and the background worker runtime.
type DispatchConfig struct {
	PlanPath                 string        `envconfig:"DISPATCH_PLAN_PATH" default:"dispatch.yaml"`
	DedupWindow              time.Duration `envconfig:"DISPATCH_DEDUP_WINDOW" default:"24h"`
	LaneBatchSize            int           `envconfig:"DISPATCH_LANE_BATCH_SIZE" default:"100"`
	LaneConcurrency          int           `envconfig:"DISPATCH_LANE_CONCURRENCY" default:"8"`
	BulkSendPerSec           float64       `envconfig:"DISPATCH_BULK_SEND_PER_SEC" default:"20"`
	PriorityInterval         time.Duration `envconfig:"DISPATCH_PRIORITY_INTERVAL" default:"5s"`
	StandardInterval         time.Duration `envconfig:"DISPATCH_STANDARD_INTERVAL" default:"30s"`
	BulkInterval             time.Duration `envconfig:"DISPATCH_BULK_INTERVAL" default:"1m"`
	RetryInterval            time.Duration `envconfig:"DISPATCH_RETRY_INTERVAL" default:"1m"`
	BudgetScanInterval       time.Duration `envconfig:"DISPATCH_BUDGET_SCAN_INTERVAL" default:"1h"`
	CorrelationSweepInterval time.Duration `envconfig:"DISPATCH_CORRELATION_SWEEP_INTERVAL" default:"1h"`
	PolicyReloadInterval     time.Duration `envconfig:"DISPATCH_POLICY_RELOAD_INTERVAL" default:"1m"`
	ProbeInterval            time.Duration `envconfig:"DISPATCH_PROBE_INTERVAL" default:"1m"`
	WorkerCount              int           `envconfig:"DISPATCH_WORKER_COUNT" default:"4"`
	JobLockTTL               time.Duration `envconfig:"DISPATCH_JOB_LOCK_TTL" default:"50s"`
	BreakerThreshold         int           `envconfig:"DISPATCH_BREAKER_THRESHOLD" default:"5"`
	BreakerCooldown          time.Duration `envconfig:"DISPATCH_BREAKER_COOLDOWN" default:"60s"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
		},
		Redis: RedisConfig{
			URL: "redis://127.0.0.1:16380",
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "UTC",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 0,
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "1h",
		},
		Dispatch: DispatchConfig{
			DedupWindow:              24 * time.Hour,
			LaneBatchSize:            10,
			LaneConcurrency:          2,
			BulkSendPerSec:           100,
			PriorityInterval:         5 * time.Second,
			StandardInterval:         30 * time.Second,
			BulkInterval:             time.Minute,
			RetryInterval:            time.Minute,
			BudgetScanInterval:       time.Hour,
			CorrelationSweepInterval: time.Hour,
			PolicyReloadInterval:     time.Minute,
			ProbeInterval:            time.Minute,
			WorkerCount:              2,
			JobLockTTL:               50 * time.Second,
			BreakerThreshold:         5,
			BreakerCooldown:          time.Minute,
		},
	}
}
