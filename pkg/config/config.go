package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"RiskFill/internal/domain/models"
	"RiskFill/pkg/logger"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// ErrMissingCredential is returned when no FRED API key is configured.
var ErrMissingCredential = errors.New("FRED_API_KEY is not set")

type Config struct {
	Environment string        `yaml:"environment" default:"dev" validate:"required"`
	Log         logger.Config `yaml:"log"`
	Fred        struct {
		APIKey     string              `yaml:"api_key"`
		BaseURL    string              `yaml:"base_url" default:"https://api.stlouisfed.org/fred/series/observations" validate:"required,url"`
		Timeout    time.Duration       `yaml:"timeout" default:"10s" validate:"gt=0"`
		RatePerSec float64             `yaml:"rate_per_sec" default:"2" validate:"gte=0"`
		Parallel   int                 `yaml:"parallel" default:"3" validate:"gte=1,lte=9"`
		Series     []models.SeriesSpec `yaml:"series" validate:"omitempty,dive"`
	} `yaml:"fred"`
	Backfill struct {
		WindowDays int    `yaml:"window_days" default:"730" validate:"gte=0"`
		Output     string `yaml:"output" default:"risk_history.json" validate:"required"`
		Format     string `yaml:"format" default:"json" validate:"oneof=json xlsx"`
	} `yaml:"backfill"`
	Cache struct {
		Enabled  bool          `yaml:"enabled"`
		Backend  string        `yaml:"backend" default:"memory" validate:"oneof=memory redis layered"`
		TTL      time.Duration `yaml:"ttl" default:"6h"`
		Host     string        `yaml:"host" default:"localhost"`
		Port     int           `yaml:"port" default:"6379"`
		Password string        `yaml:"password"`
		DB       int           `yaml:"db"`
		Prefix   string        `yaml:"prefix" default:"riskfill"`
		// in-process layer, used by the memory and layered backends
		MemoryMaxSize   int           `yaml:"memory_max_size" default:"64" validate:"gte=1"`
		CleanupInterval time.Duration `yaml:"cleanup_interval" default:"5m" validate:"gt=0"`
		L1TTL           time.Duration `yaml:"l1_ttl" default:"10m" validate:"gt=0"`
	} `yaml:"cache"`
	ClickHouse struct {
		Enabled          bool          `yaml:"enabled"`
		Host             string        `yaml:"host" default:"localhost"`
		Port             int           `yaml:"port" default:"9000"`
		Database         string        `yaml:"database" default:"riskfill"`
		Table            string        `yaml:"table" default:"risk_history"`
		User             string        `yaml:"user" default:"default"`
		Password         string        `yaml:"password"`
		UseHTTP          bool          `yaml:"use_http"`
		DialTimeout      time.Duration `yaml:"dial_timeout" default:"5s"`
		ReadTimeout      time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout     time.Duration `yaml:"write_timeout" default:"10s"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time" default:"60s"`
	} `yaml:"clickhouse"`
	Kafka struct {
		Enabled      bool          `yaml:"enabled"`
		Brokers      []string      `yaml:"brokers" validate:"required_if=Enabled true"`
		Topic        string        `yaml:"topic" default:"riskfill.daily_risk"`
		RequiredAcks int           `yaml:"required_acks" default:"-1"`
		Compression  string        `yaml:"compression" default:"gzip" validate:"oneof=gzip snappy lz4 zstd"`
		MaxAttempts  int           `yaml:"max_attempts" default:"3"`
		BatchSize    int           `yaml:"batch_size" default:"500"`
		WriteTimeout time.Duration `yaml:"write_timeout" default:"10s"`
	} `yaml:"kafka"`
	Server struct {
		Port            int           `yaml:"port" default:"8080" validate:"gte=1,lte=65535"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"30s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"60s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
}

// envOverlay lists the variables that override YAML values.
type envOverlay struct {
	FredAPIKey  string   `envconfig:"FRED_API_KEY"`
	Environment string   `envconfig:"RISKFILL_ENV"`
	LogLevel    string   `envconfig:"RISKFILL_LOG_LEVEL"`
	Output      string   `envconfig:"RISKFILL_OUTPUT"`
	WindowDays  *int     `envconfig:"RISKFILL_WINDOW_DAYS"`
	RedisAddr   string   `envconfig:"RISKFILL_REDIS_HOST"`
	KafkaBroker []string `envconfig:"KAFKA_BROKERS"`
}

var validate = validator.New()

// Load reads a YAML configuration file, applies defaults and validates it.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return parse(b)
}

// LoadWithEnv loads config from YAML (optional: a missing file yields pure
// defaults), overlays environment variables and .env, and requires the credential.
func LoadWithEnv(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	b, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	c, err := parse(b)
	if err != nil {
		return nil, err
	}

	var env envOverlay
	if err := envconfig.Process("", &env); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	c.applyEnv(env)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	if strings.TrimSpace(c.Fred.APIKey) == "" {
		return nil, ErrMissingCredential
	}
	return c, nil
}

func parse(b []byte) (*Config, error) {
	var c Config
	if len(b) > 0 {
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}
	if len(c.Fred.Series) == 0 {
		c.Fred.Series = models.DefaultSeries()
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &c, nil
}

func (c *Config) applyEnv(env envOverlay) {
	if env.FredAPIKey != "" {
		c.Fred.APIKey = env.FredAPIKey
	}
	if env.Environment != "" {
		c.Environment = env.Environment
	}
	if env.LogLevel != "" {
		c.Log.Level = env.LogLevel
	}
	if env.Output != "" {
		c.Backfill.Output = env.Output
	}
	if env.WindowDays != nil {
		c.Backfill.WindowDays = *env.WindowDays
	}
	if env.RedisAddr != "" {
		c.Cache.Host = env.RedisAddr
	}
	if len(env.KafkaBroker) > 0 {
		c.Kafka.Brokers = env.KafkaBroker
	}
}

// Validate checks struct tags and cross-field rules.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	seen := make(map[models.Indicator]bool, len(c.Fred.Series))
	for _, s := range c.Fred.Series {
		if seen[s.Indicator] {
			return fmt.Errorf("fred.series: indicator %s listed twice", s.Indicator)
		}
		seen[s.Indicator] = true
	}
	return nil
}
